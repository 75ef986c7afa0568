package model

import "time"

// QualityReport is the aggregated result of one analysis run.
//
// Design decision: The report is built by accumulation, not mutation-in-place:
// each pipeline step computes its records independently and appends them once.
// A fresh report is constructed per invocation and never mutated after the
// pipeline returns, which keeps runs idempotent and leaves the door open to
// per-column parallelism without changing output ordering.
type QualityReport struct {
	// Source identifies the analyzed input (file path or "stdin").
	Source string `json:"source"`

	// AnalyzedAt is the timestamp when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// RowCount and ColumnCount describe the dataset dimensions.
	RowCount    int `json:"row_count"`
	ColumnCount int `json:"column_count"`

	// Columns lists the column names in original order.
	Columns []string `json:"columns,omitempty"`

	// Inferences holds one ColumnInference per column, in column order.
	Inferences []ColumnInference `json:"inferences,omitempty"`

	// Outliers holds type-conformance defects found against inferred types,
	// ordered by column then row.
	Outliers []OutlierRecord `json:"outliers,omitempty"`

	// Issues holds baseline consistency defects.
	Issues []ConsistencyIssue `json:"issues,omitempty"`

	// MissingStats holds missing-value statistics for every column,
	// including fully-populated ones.
	MissingStats []MissingStat `json:"missing_stats,omitempty"`

	// SchemaViolations holds declared-schema defects. Empty when no schema
	// was supplied.
	SchemaViolations []SchemaViolation `json:"schema_violations,omitempty"`

	// RangeViolations holds range/allowed-set defects. Empty when no rules
	// were supplied.
	RangeViolations []RangeViolation `json:"range_violations,omitempty"`

	// RowCountCheck is the outcome of the minimum-row-count check, or nil
	// if the check did not run.
	RowCountCheck *RowCountResult `json:"row_count_check,omitempty"`

	// PerformedChecks lists the pipeline steps that actually ran.
	PerformedChecks []string `json:"performed_checks,omitempty"`

	// Error contains any step error when the pipeline was configured to
	// continue on error. Per-cell anomalies are never errors; they appear
	// as records above.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewQualityReport creates an empty report for the given source.
func NewQualityReport(source string) *QualityReport {
	return &QualityReport{
		Source:     source,
		AnalyzedAt: time.Now(),
	}
}

// Inference returns the inference for the named column, or false if absent.
func (r *QualityReport) Inference(column string) (*ColumnInference, bool) {
	for i := range r.Inferences {
		if r.Inferences[i].Column == column {
			return &r.Inferences[i], true
		}
	}
	return nil, false
}

// OutliersFor returns the outlier records for the named column in row order.
func (r *QualityReport) OutliersFor(column string) []OutlierRecord {
	var result []OutlierRecord
	for _, o := range r.Outliers {
		if o.Column == column {
			result = append(result, o)
		}
	}
	return result
}

// TotalDefects returns the number of defect records across all checks.
// MissingStats are statistics, not defects, and are excluded; missing values
// surface through Issues instead.
func (r *QualityReport) TotalDefects() int {
	n := len(r.Outliers) + len(r.Issues) + len(r.SchemaViolations) + len(r.RangeViolations)
	if r.RowCountCheck != nil && !r.RowCountCheck.Passed {
		n++
	}
	return n
}

// Passed reports whether the run found no defects at all.
func (r *QualityReport) Passed() bool {
	return r.TotalDefects() == 0 && r.Error == nil
}

// CheckStatus describes the pass/fail outcome of one named check.
type CheckStatus struct {
	// Name is the check name as reported by the pipeline step.
	Name string `json:"name"`

	// Passed is true when the check produced no defect records.
	Passed bool `json:"passed"`

	// Defects is the number of defect records the check produced.
	Defects int `json:"defects"`
}

// CheckStatuses derives per-check pass/fail outcomes from the report.
// Only checks that actually ran (per PerformedChecks) are included.
func (r *QualityReport) CheckStatuses() []CheckStatus {
	statuses := make([]CheckStatus, 0, len(r.PerformedChecks))
	for _, name := range r.PerformedChecks {
		var defects int
		switch name {
		case "row_count":
			if r.RowCountCheck != nil && !r.RowCountCheck.Passed {
				defects = 1
			}
		case "type_inference":
			defects = len(r.Outliers)
		case "consistency":
			defects = len(r.Issues)
		case "schema":
			defects = len(r.SchemaViolations)
		case "ranges":
			defects = len(r.RangeViolations)
		}
		statuses = append(statuses, CheckStatus{Name: name, Passed: defects == 0, Defects: defects})
	}
	return statuses
}
