// Package inspect implements the column-type inference and outlier-detection
// engine, the decision core of tablescan.
//
// The engine works in two passes per column. Pass 1 discovers structured
// shapes shared by at least two distinct values (see the pattern package) and
// freezes them into an immutable context. Pass 2 classifies every present
// cell against the priority-ordered pattern catalog using that context,
// tallies votes per candidate type, and infers the column type when the
// majority candidate reaches the confidence threshold. The outlier detector
// then re-examines every present cell of each determinate column and records
// the ones whose classification disagrees with the inferred type.
//
// The engine is single-threaded, synchronous, and stateless across
// invocations: it receives a complete in-memory dataset, returns results by
// value, and never mutates its input. Malformed cell content is never an
// error; at worst a cell classifies as text and the mismatch is reported.
package inspect
