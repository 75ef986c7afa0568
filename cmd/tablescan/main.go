// Package main provides the entry point for the tablescan CLI.
//
// Tablescan is a data quality inspection tool for tabular data (CSV files).
// It infers column types from cell content, flags values that contradict the
// established types, and reports consistency issues.
//
// Usage:
//
//	tablescan check <file.csv>
//	tablescan check --schema-file rules.yaml <file.csv>
//
// See --help for all available options.
package main

// main is the entry point for tablescan.
func main() {
	Execute()
}
