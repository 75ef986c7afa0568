// Package pattern provides the catalog of recognized value patterns and the
// column-level shape discovery that feeds it.
//
// The catalog is a priority-ordered list of polymorphic recognizers rather
// than a chain of conditional branches, so new structured patterns can be
// added without touching classification control flow. The priority order is
// the tie-break when a value matches multiple patterns.
//
// Shape discovery is a separate first pass over a column: each value is
// abstracted to a shape signature (digit runs, letter runs, literal
// separators), and signatures shared by at least two distinct values are
// promoted into an immutable ShapeSet consulted by the structured recognizer.
// Requiring two distinct values prevents a single coincidental value from
// becoming the column's pattern.
package pattern
