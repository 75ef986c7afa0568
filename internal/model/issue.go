package model

// IssueKind identifies a baseline consistency defect detected independently
// of type inference.
type IssueKind string

const (
	// IssueMissingValues flags a column containing empty or null-token cells.
	IssueMissingValues IssueKind = "missing_values"

	// IssueMixedTypes flags a column whose present cells span at least two
	// distinct broad shapes (numeric, date, boolean, text).
	IssueMixedTypes IssueKind = "mixed_types"

	// IssueConstantValue flags a column whose present cells are all
	// textually identical. Such columns carry no discriminative signal.
	IssueConstantValue IssueKind = "constant_value"
)

// ConsistencyIssue is one defect found by the consistency checker.
// The payload fields are kind-specific; unused fields are zero.
type ConsistencyIssue struct {
	// Column is the column name.
	Column string `json:"column"`

	// Kind is the issue kind.
	Kind IssueKind `json:"kind"`

	// MissingCount is the number of missing cells (missing_values only).
	MissingCount int `json:"missing_count,omitempty"`

	// MissingPercent is MissingCount divided by the total row count,
	// in [0,1] (missing_values only).
	MissingPercent float64 `json:"missing_percent,omitempty"`

	// Shapes maps broad shape names to their value counts (mixed_types only).
	Shapes map[string]int `json:"shapes,omitempty"`

	// Value is the single repeated value (constant_value only).
	Value string `json:"value,omitempty"`
}

// MissingStat reports missing-value statistics for one column. Unlike
// ConsistencyIssue, a MissingStat is produced for every column including
// fully-populated ones, where the percentage is 0.0.
type MissingStat struct {
	// Column is the column name.
	Column string `json:"column"`

	// Count is the number of missing cells.
	Count int `json:"count"`

	// Percent is Count divided by the total row count, in [0,1].
	// Total includes missing cells.
	Percent float64 `json:"percent"`
}

// SchemaViolationKind identifies a declared-schema conformance defect.
type SchemaViolationKind string

const (
	// SchemaMissingColumn means the schema names a column absent from the
	// dataset.
	SchemaMissingColumn SchemaViolationKind = "missing_column"

	// SchemaUnexpectedColumn means the dataset contains a column the schema
	// does not declare.
	SchemaUnexpectedColumn SchemaViolationKind = "unexpected_column"

	// SchemaTypeMismatch means a column's storage type differs from the
	// declared type.
	SchemaTypeMismatch SchemaViolationKind = "type_mismatch"
)

// SchemaViolation is one defect found by the schema validator.
type SchemaViolation struct {
	// Column is the column name.
	Column string `json:"column"`

	// Kind is the violation kind.
	Kind SchemaViolationKind `json:"kind"`

	// Expected is the declared type (missing_column and type_mismatch).
	Expected string `json:"expected,omitempty"`

	// Actual is the detected storage type (type_mismatch and
	// unexpected_column).
	Actual string `json:"actual,omitempty"`

	// Samples holds up to a few raw values from the column to aid diagnosis.
	Samples []string `json:"samples,omitempty"`
}

// RangeViolation is one per-row defect found by the range validator:
// a numeric value outside [min, max] or a categorical value outside the
// allowed set.
type RangeViolation struct {
	// Row is the 0-based row index. It is -1 for column-level violations
	// (rule references a column absent from the dataset).
	Row int `json:"row"`

	// Column is the column name.
	Column string `json:"column"`

	// Value is the raw cell content.
	Value string `json:"value,omitempty"`

	// Rule describes the constraint that was violated,
	// e.g. "min_value >= 0" or "value must be in [M F Other]".
	Rule string `json:"rule"`
}

// RowCountResult is the outcome of the minimum-row-count check.
type RowCountResult struct {
	// Rows is the number of data rows in the dataset.
	Rows int `json:"rows"`

	// MinRows is the required minimum.
	MinRows int `json:"min_rows"`

	// Passed is true when Rows >= MinRows.
	Passed bool `json:"passed"`
}
