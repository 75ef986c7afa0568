package model

// CandidateKind identifies the semantic type family of a TypeCandidate.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed. Structured candidates additionally carry
// the discovered shape, so equality is defined on (Kind, Shape) pairs via
// TypeCandidate.Equal.
type CandidateKind int

const (
	// KindUndetermined means no single candidate reached the confidence
	// threshold for a column. It is never produced for individual cells.
	KindUndetermined CandidateKind = iota

	// KindInteger matches whole numbers: optional leading sign, digits only,
	// no decimal point, no exponent.
	KindInteger

	// KindFloat matches decimal numbers that are not integers, including
	// exponent notation.
	KindFloat

	// KindDate matches the accepted date grammar (YYYY-MM-DD and a small set
	// of unambiguous variants, validated as real calendar dates).
	KindDate

	// KindBoolean matches a fixed, case-insensitive vocabulary of boolean
	// tokens (true/false, yes/no).
	KindBoolean

	// KindStructured matches a regular shape discovered from repeated
	// occurrence within a column, e.g. digits "/" digits.
	KindStructured

	// KindShortCategorical matches 1-3 character alphabetic codes treated as
	// enumerated categories rather than free text.
	KindShortCategorical

	// KindText is the fallback; it matches anything.
	KindText
)

// String returns a human-readable name for the candidate kind.
func (k CandidateKind) String() string {
	switch k {
	case KindUndetermined:
		return "undetermined"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	case KindBoolean:
		return "boolean"
	case KindStructured:
		return "structured"
	case KindShortCategorical:
		return "short_categorical"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// TypeCandidate is one semantic type a cell value can be classified as.
// Structured candidates carry the discovered shape name (e.g. "number/number")
// and its regular-expression source so later classification reuses the same
// shape consistently within one column.
type TypeCandidate struct {
	// Kind is the type family.
	Kind CandidateKind `json:"kind"`

	// Shape is the discovered shape name for structured candidates,
	// e.g. "number/number". Empty for all other kinds.
	Shape string `json:"shape,omitempty"`

	// Pattern is the regular-expression source of the discovered shape,
	// e.g. `^\d+/\d+$`. Empty for all other kinds.
	Pattern string `json:"pattern,omitempty"`
}

// Undetermined is the TypeCandidate used for columns where no candidate
// reached the confidence threshold.
var Undetermined = TypeCandidate{Kind: KindUndetermined}

// String returns the canonical name of the candidate, e.g. "integer" or
// "structured:number/number". This is the form used in report messages.
func (t TypeCandidate) String() string {
	if t.Kind == KindStructured && t.Shape != "" {
		return "structured:" + t.Shape
	}
	return t.Kind.String()
}

// Key returns a stable identifier suitable for use as a map key when
// tallying per-candidate match counts. It is identical to String().
func (t TypeCandidate) Key() string {
	return t.String()
}

// Equal reports whether two candidates denote the same type. Structured
// candidates are equal only when their discovered shapes match.
func (t TypeCandidate) Equal(other TypeCandidate) bool {
	return t.Kind == other.Kind && t.Shape == other.Shape
}

// IsDeterminate reports whether the candidate is a concrete type that can be
// checked for outliers. Undetermined columns are skipped by the outlier
// detector, and short-categorical columns are exempt by policy: categorical
// vocabularies cannot be judged by pattern alone.
func (t TypeCandidate) IsDeterminate() bool {
	return t.Kind != KindUndetermined && t.Kind != KindShortCategorical
}
