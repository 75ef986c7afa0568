// Package loader acquires tabular data and materializes it as an in-memory
// dataset before any check runs.
//
// The loader is the only component that can fail on bad input: empty input,
// duplicate column names, and ragged rows are hard errors surfaced here, so
// the analysis engine downstream never sees a malformed table. Cell content
// is preserved exactly as entered; the loader marks missing cells and detects
// per-column storage types but never coerces values.
package loader
