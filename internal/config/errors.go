package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoInput is returned when no CSV file is specified and paste mode
	// is disabled. This error occurs when the check command is invoked
	// without positional arguments and without --paste.
	ErrNoInput = errors.New("no input specified: provide a CSV file or use --paste")

	// ErrInvalidThreshold is returned when the confidence threshold is not
	// in (0, 1]. The threshold is a proportion of non-missing values.
	ErrInvalidThreshold = errors.New("invalid threshold: must be in (0, 1]")

	// ErrInvalidMinRows is returned when the minimum row count is not positive.
	// A minimum of zero would accept empty datasets.
	ErrInvalidMinRows = errors.New("invalid min rows: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent analyses, effectively
	// stopping the batch run.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
