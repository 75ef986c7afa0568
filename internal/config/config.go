package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/tablescan/internal/checks"
	"github.com/nao1215/tablescan/internal/inspect"
	"github.com/nao1215/tablescan/internal/pattern"
)

// Default configuration values.
const (
	// DefaultThreshold is the minimum share of non-missing values that must
	// agree on a type before a column type is established. Below this the
	// column stays undetermined and produces no outliers.
	DefaultThreshold = inspect.DefaultConfidenceThreshold

	// DefaultMinRows is the minimum number of data rows a dataset must have.
	// One row is enough to analyze; stricter minimums come from rule files
	// or the --min-rows flag.
	DefaultMinRows = checks.DefaultMinRows

	// DefaultMinShapeValues is the number of distinct values sharing a
	// structural pattern required before that pattern becomes a column shape.
	DefaultMinShapeValues = pattern.DefaultMinShapeValues

	// DefaultBatchSize of 4 concurrent analyses balances throughput with
	// memory usage: each in-flight file holds its full cell table in memory.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "tablescan"
)

// Config holds all configuration options for tablescan.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., InferenceConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// If the configuration grows significantly, consider refactoring into sub-structs.
type Config struct {
	// Threshold is the confidence threshold for establishing column types.
	// Must be in (0, 1]. Columns whose majority type falls below this
	// threshold are reported as undetermined.
	Threshold float64

	// MinRows is the minimum number of data rows required by the row-count
	// check. A rules file may override this value.
	MinRows int

	// MinShapeValues is the distinct-value support required to promote a
	// structural pattern to a column shape.
	MinShapeValues int

	// NullTokens is the set of values treated as missing, matched
	// case-insensitively after trimming. Empty means the built-in defaults.
	NullTokens []string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of concurrent analyses when processing
	// multiple files. Higher values increase throughput but hold more
	// datasets in memory at once.
	BatchSize int

	// RulesPath is the path to the rules file (--schema-file).
	// If empty, the tool searches for .tablescan in the current directory
	// and then in the user's home directory.
	RulesPath string

	// Rules holds the declared schema and value constraints loaded from the
	// rules file. Nil when no rules file was found.
	Rules *RulesFile

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable
	// format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// Targets is the list of CSV files to analyze.
	// Empty is only valid in paste mode.
	Targets []string

	// Paste reads CSV content from stdin instead of files.
	// The analyzed source is reported as "stdin".
	Paste bool

	// DBDir is the directory path for storing the SQLite history database.
	// Defaults to the XDG data directory (~/.local/share/tablescan on Linux).
	DBDir string

	// SaveToDB indicates whether to save reports to the history database.
	// Disabled via --no-save.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., threshold, batch
// size). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Threshold:      DefaultThreshold,
		MinRows:        DefaultMinRows,
		MinShapeValues: DefaultMinShapeValues,
		BatchSize:      DefaultBatchSize,
		DBDir:          XDGDataDir(),
		SaveToDB:       true,
	}
}

// XDGDataDir returns the XDG data directory for tablescan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/tablescan
// On macOS: ~/Library/Application Support/tablescan
// On Windows: %LOCALAPPDATA%\tablescan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for tablescan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/tablescan
// On macOS: ~/Library/Application Support/tablescan
// On Windows: %APPDATA%\tablescan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for tablescan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.cache/tablescan
// On macOS: ~/Library/Caches/tablescan
// On Windows: %LOCALAPPDATA%\tablescan\cache
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any analysis begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We need either files to analyze or pasted stdin content
	if len(c.Targets) == 0 && !c.Paste {
		return ErrNoInput
	}

	// Threshold must be a usable proportion; zero would establish a type
	// for every column and above one no type could ever be established
	if c.Threshold <= 0 || c.Threshold > 1 {
		return ErrInvalidThreshold
	}

	// MinRows must be positive; an empty dataset is never acceptable
	if c.MinRows <= 0 {
		return ErrInvalidMinRows
	}

	// BatchSize must be positive; zero would mean no analysis
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
