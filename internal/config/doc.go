// Package config provides configuration structures and utilities for tablescan.
// It defines the main configuration options for type inference, consistency
// checking, and report generation, plus the YAML rules file that declares
// expected schemas and per-column value constraints.
package config
