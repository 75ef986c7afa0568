// Package pipeline orchestrates the analysis of one dataset as an ordered
// sequence of steps: row count, type inference with outlier detection,
// consistency checks, and the optional schema and range validations.
//
// Each step computes its records independently from the read-only dataset and
// appends them to the accumulated quality report. Per-cell anomalies are
// never step errors; a step fails only when something outside the data goes
// wrong. The package also provides a BatchProcessor for analyzing many files
// concurrently with a bounded worker count.
package pipeline
