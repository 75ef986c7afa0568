// Package model defines the core data structures used throughout tablescan.
//
// This package contains the following main types:
//   - Dataset: An in-memory table of named columns and raw cell values
//   - TypeCandidate: A semantic type a cell value may conform to
//   - ColumnInference: The confidence-weighted type inferred for a column
//   - OutlierRecord / ConsistencyIssue: Per-defect records produced by checks
//   - QualityReport: The aggregated result of one analysis run
//   - Summary: A severity-grouped view of a report for human-readable output
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (pattern, inspect, checks, report) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
