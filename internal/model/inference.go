package model

// ColumnInference is the result of type inference for a single column.
// It is computed once per column per analysis run and is immutable after
// creation; it is never persisted across runs except as part of a saved
// QualityReport.
type ColumnInference struct {
	// Column is the column name.
	Column string `json:"column"`

	// Type is the inferred type, or Undetermined when no candidate reached
	// the confidence threshold (including columns with zero present cells).
	Type TypeCandidate `json:"type"`

	// Confidence is the fraction of non-missing cells matching the inferred
	// type, in [0,1]. Missing cells are excluded from both numerator and
	// denominator. For an all-missing column it is 0.0.
	Confidence float64 `json:"confidence"`

	// Distribution maps candidate keys (e.g. "integer",
	// "structured:number/number") to the number of non-missing cells that
	// classified as that candidate. The counts sum to NonMissing.
	Distribution map[string]int `json:"distribution,omitempty"`

	// NonMissing is the number of present cells considered during inference.
	NonMissing int `json:"non_missing"`

	// Missing is the number of missing cells in the column.
	Missing int `json:"missing"`

	// MajorityCount is the match count of the winning candidate. It equals
	// the largest value in Distribution, or 0 for an empty column.
	MajorityCount int `json:"majority_count"`
}

// Determined reports whether the column has a concrete inferred type that
// the outlier detector should check cells against.
func (ci *ColumnInference) Determined() bool {
	return ci.Type.IsDeterminate()
}

// OutlierRecord describes one present cell that does not conform to its
// column's inferred type. Records are produced only for present,
// non-matching cells.
type OutlierRecord struct {
	// Row is the 0-based row index in the original dataset, including rows
	// where other columns are missing.
	Row int `json:"row"`

	// Column is the column name.
	Column string `json:"column"`

	// Value is the raw cell content.
	Value string `json:"value"`

	// Expected is the canonical name of the inferred type the cell was
	// expected to match.
	Expected string `json:"expected"`

	// Observed is the canonical name of the type the cell actually
	// classified as.
	Observed string `json:"observed"`

	// Reason is the human-readable explanation, of the form
	// "expected <inferred type> but found <observed shape>".
	Reason string `json:"reason"`
}
