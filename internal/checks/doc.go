// Package checks implements the dataset-level validations that run alongside
// type inference: baseline consistency (missing values, mixed broad shapes,
// constant columns), minimum row count, declared-schema conformance, and
// value-range rules.
//
// Each checker is stateless and synchronous. Checkers read the dataset and
// return findings by value; none of them mutates its input, and none of them
// treats defective data as an error. The only error conditions live upstream
// in the loader and the rules parser.
package checks
