// Package log provides logging with automatic masking of dataset content,
// built on top of the standard slog package.
//
// Analyzed datasets routinely contain personal data. Cell values surface in
// debug logs (outlier values, sample values, classification traces), so this
// package extends slog to keep that content out of shared log output:
//   - Values that look like email addresses, ID numbers, or account numbers
//     are masked regardless of attribute key
//   - Cell-valued attributes (value, raw, cell, sample) are length-bounded
//   - Configurable log levels with verbose mode support
//
// Even in verbose mode, personal-looking values are masked to prevent
// accidental exposure in logs that may be shared or stored.
//
// # Usage
//
//	// Create a masking logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("outlier detected",
//	    "column", "email",
//	    "value", "alice@example.com",  // Will be masked
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
