package model

import (
	"fmt"
	"time"
)

// Summary is a severity-grouped, human-readable view of a QualityReport.
//
// Design decision: We create a separate summary rather than just printing
// parts of QualityReport because:
//  1. It provides a consistent, curated view of the most important findings
//  2. It can be serialized to JSON for tools that want structured but simple output
//  3. It separates presentation concerns from the raw check results
type Summary struct {
	// Source identifies the analyzed input.
	Source string `json:"source"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// RowCount and ColumnCount describe the dataset dimensions.
	RowCount    int `json:"row_count"`
	ColumnCount int `json:"column_count"`

	// === Severity Summary ===

	// CriticalCount is the number of critical findings.
	CriticalCount int `json:"critical_count"`

	// HighCount is the number of high severity findings.
	HighCount int `json:"high_count"`

	// MediumCount is the number of medium severity findings.
	MediumCount int `json:"medium_count"`

	// LowCount is the number of low severity findings.
	LowCount int `json:"low_count"`

	// InfoCount is the number of informational findings.
	InfoCount int `json:"info_count"`

	// === Checks ===

	// Checks lists the pass/fail outcome of every check that ran.
	Checks []CheckStatus `json:"checks,omitempty"`

	// === Findings ===

	// Findings contains all defects flattened into severity-tagged records.
	Findings []Finding `json:"findings,omitempty"`

	// === Inference overview ===

	// Inferences holds the per-column inference results for display.
	Inferences []ColumnInference `json:"inferences,omitempty"`

	// Error contains any pipeline error message if the run partially failed.
	Error string `json:"error,omitempty"`
}

// Finding is a single defect in the summary, normalized across the different
// record types so writers can render them uniformly.
type Finding struct {
	// Type is the finding type identifier.
	// This maps to the findingInfoMapping in severity.go.
	Type string `json:"type"`

	// Severity is the ranked level.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Title is a short description of the finding.
	Title string `json:"title"`

	// Description provides more detail about the finding.
	Description string `json:"description,omitempty"`

	// Impact explains why this finding matters.
	Impact string `json:"impact,omitempty"`

	// Recommendation provides guidance on how to address this finding.
	Recommendation string `json:"recommendation,omitempty"`

	// Column is the affected column, if column-scoped.
	Column string `json:"column,omitempty"`

	// Row is the affected 0-based row index, or -1 if not row-scoped.
	Row int `json:"row"`

	// Value is the offending raw value, if any.
	Value string `json:"value,omitempty"`
}

// NewSummary builds a Summary from a QualityReport.
func NewSummary(report *QualityReport) *Summary {
	s := &Summary{
		Source:      report.Source,
		AnalyzedAt:  report.AnalyzedAt,
		RowCount:    report.RowCount,
		ColumnCount: report.ColumnCount,
		Checks:      report.CheckStatuses(),
		Inferences:  report.Inferences,
		Error:       report.ErrorMessage,
	}

	s.collectFindings(report)
	s.countBySeverity()

	return s
}

// collectFindings flattens all defect records into findings.
func (s *Summary) collectFindings(report *QualityReport) {
	if report.RowCountCheck != nil && !report.RowCountCheck.Passed {
		s.addFinding("row_count", "Too Few Rows",
			fmt.Sprintf("dataset has %d rows but at least %d are required",
				report.RowCountCheck.Rows, report.RowCountCheck.MinRows),
			"", -1, "")
	}

	for _, o := range report.Outliers {
		s.addFinding("outlier", "Type Outlier", o.Reason, o.Column, o.Row, o.Value)
	}

	for _, issue := range report.Issues {
		switch issue.Kind {
		case IssueMissingValues:
			s.addFinding("missing_values", "Missing Values",
				fmt.Sprintf("%d of %d cells are missing (%.1f%%)",
					issue.MissingCount, report.RowCount, issue.MissingPercent*100),
				issue.Column, -1, "")
		case IssueMixedTypes:
			s.addFinding("mixed_types", "Mixed Types",
				fmt.Sprintf("column mixes %d broad shapes: %s", len(issue.Shapes), shapeList(issue.Shapes)),
				issue.Column, -1, "")
		case IssueConstantValue:
			s.addFinding("constant_value", "Constant Column",
				"all present values are identical", issue.Column, -1, issue.Value)
		}
	}

	for _, v := range report.SchemaViolations {
		switch v.Kind {
		case SchemaMissingColumn:
			s.addFinding("schema_missing_column", "Missing Column",
				fmt.Sprintf("schema declares %q (%s) but the dataset has no such column", v.Column, v.Expected),
				v.Column, -1, "")
		case SchemaUnexpectedColumn:
			s.addFinding("schema_unexpected_column", "Unexpected Column",
				fmt.Sprintf("dataset column %q is not declared in the schema", v.Column),
				v.Column, -1, "")
		case SchemaTypeMismatch:
			s.addFinding("schema_type_mismatch", "Schema Type Mismatch",
				fmt.Sprintf("declared %s but stored as %s", v.Expected, v.Actual),
				v.Column, -1, "")
		}
	}

	for _, v := range report.RangeViolations {
		row := v.Row
		s.addFinding("range_violation", "Range Violation", v.Rule, v.Column, row, v.Value)
	}
}

// shapeList formats a shape-count map deterministically for display.
func shapeList(shapes map[string]int) string {
	// Fixed ordering keeps summaries stable across runs.
	order := []string{"numeric", "date", "boolean", "text"}
	out := ""
	for _, name := range order {
		if n, ok := shapes[name]; ok {
			if out != "" {
				out += ", "
			}
			out += fmt.Sprintf("%s(%d)", name, n)
		}
	}
	return out
}

// addFinding appends a finding with metadata from the central mapping.
func (s *Summary) addFinding(findingType, title, description, column string, row int, value string) {
	info := GetFindingInfo(findingType)
	s.Findings = append(s.Findings, Finding{
		Type:           findingType,
		Severity:       info.Severity,
		SeverityText:   info.Severity.String(),
		Title:          title,
		Description:    description,
		Impact:         info.Impact,
		Recommendation: info.Recommendation,
		Column:         column,
		Row:            row,
		Value:          value,
	})
}

// countBySeverity counts findings by severity level.
func (s *Summary) countBySeverity() {
	for _, f := range s.Findings {
		switch f.Severity {
		case SeverityCritical:
			s.CriticalCount++
		case SeverityHigh:
			s.HighCount++
		case SeverityMedium:
			s.MediumCount++
		case SeverityLow:
			s.LowCount++
		case SeverityInfo:
			s.InfoCount++
		}
	}
}

// TotalFindings returns the total number of findings.
func (s *Summary) TotalFindings() int {
	return len(s.Findings)
}

// HasFindings returns true if there are any findings.
func (s *Summary) HasFindings() bool {
	return len(s.Findings) > 0
}

// GetFindingsBySeverity returns findings filtered by severity.
func (s *Summary) GetFindingsBySeverity(severity Severity) []Finding {
	var result []Finding
	for _, f := range s.Findings {
		if f.Severity == severity {
			result = append(result, f)
		}
	}
	return result
}

// Passed reports whether all checks passed.
func (s *Summary) Passed() bool {
	for _, c := range s.Checks {
		if !c.Passed {
			return false
		}
	}
	return s.Error == ""
}

// SuccessRate returns the fraction of checks that passed, in [0,1].
// It returns 0 when no checks ran.
func (s *Summary) SuccessRate() float64 {
	if len(s.Checks) == 0 {
		return 0
	}
	passed := 0
	for _, c := range s.Checks {
		if c.Passed {
			passed++
		}
	}
	return float64(passed) / float64(len(s.Checks))
}
