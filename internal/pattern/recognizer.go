package pattern

import (
	"github.com/nao1215/tablescan/internal/model"
)

// Recognizer tests whether a raw value conforms to one pattern in the
// catalog. Recognizers are stateless; column-level context (the discovered
// ShapeSet) is passed in rather than stored, so the same catalog instance can
// serve every column.
//
// Design decision: We use an interface rather than predicate functions
// because:
//  1. Structured recognizers need the discovered-shape context to build
//     their candidate, not just to match
//  2. It provides a Name() method for logging and debugging
//  3. New structured patterns can be added without touching classification
//     control flow
type Recognizer interface {
	// Match reports whether raw conforms to this pattern. The discovered
	// shape context from pass 1 is supplied for structured recognizers;
	// others ignore it.
	Match(raw string, shapes *ShapeSet) bool

	// Candidate returns the type candidate this recognizer produces for raw.
	// It is only meaningful when Match returned true.
	Candidate(raw string, shapes *ShapeSet) model.TypeCandidate

	// Name returns the recognizer's name for logging purposes.
	Name() string
}

// DefaultRecognizers returns the catalog in priority order. The order is the
// tie-break when a value matches multiple patterns: integer beats boolean
// for "1"/"0"-style tokens, and every pattern beats the text fallback.
func DefaultRecognizers() []Recognizer {
	return []Recognizer{
		integerRecognizer{},
		floatRecognizer{},
		dateRecognizer{},
		booleanRecognizer{},
		structuredRecognizer{},
		shortCategoricalRecognizer{},
		textRecognizer{},
	}
}

type integerRecognizer struct{}

func (integerRecognizer) Match(raw string, _ *ShapeSet) bool {
	return IsInteger(raw)
}

func (integerRecognizer) Candidate(_ string, _ *ShapeSet) model.TypeCandidate {
	return model.TypeCandidate{Kind: model.KindInteger}
}

func (integerRecognizer) Name() string { return "integer" }

type floatRecognizer struct{}

func (floatRecognizer) Match(raw string, _ *ShapeSet) bool {
	return IsFloat(raw)
}

func (floatRecognizer) Candidate(_ string, _ *ShapeSet) model.TypeCandidate {
	return model.TypeCandidate{Kind: model.KindFloat}
}

func (floatRecognizer) Name() string { return "float" }

type dateRecognizer struct{}

func (dateRecognizer) Match(raw string, _ *ShapeSet) bool {
	return IsDate(raw)
}

func (dateRecognizer) Candidate(_ string, _ *ShapeSet) model.TypeCandidate {
	return model.TypeCandidate{Kind: model.KindDate}
}

func (dateRecognizer) Name() string { return "date" }

type booleanRecognizer struct{}

func (booleanRecognizer) Match(raw string, _ *ShapeSet) bool {
	return IsBoolean(raw)
}

func (booleanRecognizer) Candidate(_ string, _ *ShapeSet) model.TypeCandidate {
	return model.TypeCandidate{Kind: model.KindBoolean}
}

func (booleanRecognizer) Name() string { return "boolean" }

// structuredRecognizer matches values against the shapes discovered during
// the column's first pass. A value that conforms to any promoted shape
// classifies as structured:<shape-name>.
type structuredRecognizer struct{}

func (structuredRecognizer) Match(raw string, shapes *ShapeSet) bool {
	if shapes == nil {
		return false
	}
	_, ok := shapes.Find(raw)
	return ok
}

func (structuredRecognizer) Candidate(raw string, shapes *ShapeSet) model.TypeCandidate {
	if shapes != nil {
		if s, ok := shapes.Find(raw); ok {
			return model.TypeCandidate{
				Kind:    model.KindStructured,
				Shape:   s.Name,
				Pattern: s.Pattern,
			}
		}
	}
	return model.TypeCandidate{Kind: model.KindStructured}
}

func (structuredRecognizer) Name() string { return "structured" }

type shortCategoricalRecognizer struct{}

func (shortCategoricalRecognizer) Match(raw string, _ *ShapeSet) bool {
	return IsShortCategorical(raw)
}

func (shortCategoricalRecognizer) Candidate(_ string, _ *ShapeSet) model.TypeCandidate {
	return model.TypeCandidate{Kind: model.KindShortCategorical}
}

func (shortCategoricalRecognizer) Name() string { return "short_categorical" }

// textRecognizer is the fallback; it matches anything.
type textRecognizer struct{}

func (textRecognizer) Match(_ string, _ *ShapeSet) bool { return true }

func (textRecognizer) Candidate(_ string, _ *ShapeSet) model.TypeCandidate {
	return model.TypeCandidate{Kind: model.KindText}
}

func (textRecognizer) Name() string { return "text" }
