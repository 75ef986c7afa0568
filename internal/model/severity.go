package model

// Severity represents how strongly a finding threatens the usability of the
// dataset. It lets report writers group and rank findings.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityInfo indicates informational findings with no direct quality
	// impact. Examples: constant columns, columns the schema does not declare.
	SeverityInfo Severity = iota

	// SeverityLow indicates minor issues with limited impact.
	// Examples: small fractions of missing values.
	SeverityLow

	// SeverityMedium indicates moderate issues that warrant attention.
	// Examples: mixed broad shapes within one column, range violations.
	SeverityMedium

	// SeverityHigh indicates serious issues that undermine downstream use.
	// Examples: cells that contradict the column's inferred type, declared
	// schema type mismatches.
	SeverityHigh

	// SeverityCritical indicates defects that make the dataset unusable
	// as-is. Examples: columns the schema requires but the data lacks,
	// datasets below the minimum row count.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// FindingInfo contains metadata about a finding type: its severity, why it
// matters, and what to do about it.
type FindingInfo struct {
	Severity       Severity
	Impact         string
	Recommendation string
}

// findingInfoMapping maps finding types to their metadata.
// This centralized mapping ensures consistent ranking across the application.
//
// Design decision: We use a map rather than embedding severity in each record
// type because:
//  1. It allows updating assessments without modifying type definitions
//  2. It provides a single source of truth for severity levels
//  3. It makes it easy to generate documentation of the ranking
var findingInfoMapping = map[string]FindingInfo{
	// CRITICAL - dataset unusable as-is
	"row_count": {
		Severity:       SeverityCritical,
		Impact:         "The dataset has fewer rows than the required minimum, so any analysis of it is unreliable.",
		Recommendation: "Verify the export or upload completed; re-acquire the data if rows were truncated.",
	},
	"schema_missing_column": {
		Severity:       SeverityCritical,
		Impact:         "A column required by the declared schema is absent, which breaks consumers that depend on it.",
		Recommendation: "Check the source export for renamed or dropped columns and restore the expected header.",
	},

	// HIGH - content contradicts the expected type
	"outlier": {
		Severity:       SeverityHigh,
		Impact:         "The cell does not conform to the type the rest of the column established, so numeric or date processing of the column will fail or silently skip it.",
		Recommendation: "Correct the value at the reported row, or mark it as missing if the true value is unknown.",
	},
	"schema_type_mismatch": {
		Severity:       SeverityHigh,
		Impact:         "The column is stored under a different type than the schema declares, so typed consumers will misread it.",
		Recommendation: "Fix the offending values or update the declared schema if the new type is intentional.",
	},

	// MEDIUM - suspicious structure
	"mixed_types": {
		Severity:       SeverityMedium,
		Impact:         "The column mixes values of different broad shapes (numeric, date, boolean, text), which usually indicates entry errors or a merged column.",
		Recommendation: "Inspect the distinct shapes and split or clean the column at the source.",
	},
	"range_violation": {
		Severity:       SeverityMedium,
		Impact:         "The value falls outside the declared valid range or allowed set for its column.",
		Recommendation: "Correct the value or widen the rule if the constraint is outdated.",
	},

	// LOW - reduces data quality without corrupting it
	"missing_values": {
		Severity:       SeverityLow,
		Impact:         "Missing cells reduce the usable sample and may bias aggregates if not random.",
		Recommendation: "Confirm whether the gaps are expected; consider imputation or filtering downstream.",
	},

	// INFO - worth knowing, not necessarily wrong
	"constant_value": {
		Severity:       SeverityInfo,
		Impact:         "Every present value is identical, so the column provides no discriminative signal.",
		Recommendation: "Drop the column downstream, or verify the export included the intended values.",
	},
	"schema_unexpected_column": {
		Severity:       SeverityInfo,
		Impact:         "The dataset contains a column the declared schema does not mention.",
		Recommendation: "Add the column to the schema or remove it from the export.",
	},
}

// GetFindingInfo returns metadata for the given finding type.
// Unknown finding types default to SeverityInfo with empty guidance.
func GetFindingInfo(findingType string) FindingInfo {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info
	}
	return FindingInfo{Severity: SeverityInfo}
}

// GetSeverity returns the severity for the given finding type.
// Unknown finding types default to SeverityInfo.
func GetSeverity(findingType string) Severity {
	return GetFindingInfo(findingType).Severity
}
