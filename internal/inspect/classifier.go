package inspect

import (
	"strings"

	"github.com/nao1215/tablescan/internal/model"
	"github.com/nao1215/tablescan/internal/pattern"
)

// DefaultNullTokens are the placeholders treated as missing values, compared
// case-insensitively after trimming. The empty string is always missing.
//
// A literal "NaN" is deliberately not in this set: when a missing-lookalike
// token survives acquisition as text, it is exactly the kind of defect the
// engine exists to report, so it must stay present and classify as text.
var DefaultNullTokens = []string{"na", "n/a", "null", "none"}

// Classifier assigns a single best-matching type candidate to one raw cell
// value per the catalog's priority order. It is side-effect-free and
// deterministic, and never consults other cells directly: column-level shape
// discovery happens once in the inferer and is passed in as context.
type Classifier struct {
	// recognizers is the priority-ordered pattern catalog.
	recognizers []pattern.Recognizer

	// nullTokens are the lowercase placeholders treated as missing.
	nullTokens map[string]struct{}
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithNullTokens overrides the placeholders treated as missing values.
// Tokens are compared case-insensitively.
func WithNullTokens(tokens []string) ClassifierOption {
	return func(c *Classifier) {
		c.nullTokens = make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			c.nullTokens[strings.ToLower(t)] = struct{}{}
		}
	}
}

// NewClassifier creates a Classifier with the default pattern catalog and
// null tokens.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		recognizers: pattern.DefaultRecognizers(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.nullTokens == nil {
		WithNullTokens(DefaultNullTokens)(c)
	}

	return c
}

// IsMissing reports whether raw is empty or a null token after trimming.
func (c *Classifier) IsMissing(raw string) bool {
	v := strings.TrimSpace(raw)
	if v == "" {
		return true
	}
	_, ok := c.nullTokens[strings.ToLower(v)]
	return ok
}

// Classify returns the single best-matching candidate for raw per the
// priority order, using the discovered shape context. The second return is
// false when the value is missing; no candidate is produced in that case.
//
// The text fallback matches anything, so a present value always classifies.
func (c *Classifier) Classify(raw string, shapes *pattern.ShapeSet) (model.TypeCandidate, bool) {
	if c.IsMissing(raw) {
		return model.TypeCandidate{}, false
	}

	v := strings.TrimSpace(raw)
	for _, r := range c.recognizers {
		if r.Match(v, shapes) {
			return r.Candidate(v, shapes), true
		}
	}

	// Unreachable: the text recognizer matches everything.
	return model.TypeCandidate{Kind: model.KindText}, true
}

// candidatePriority returns the catalog priority of a candidate's kind,
// used to break ties deterministically when two candidates have equal votes.
func candidatePriority(t model.TypeCandidate) int {
	switch t.Kind {
	case model.KindInteger:
		return 0
	case model.KindFloat:
		return 1
	case model.KindDate:
		return 2
	case model.KindBoolean:
		return 3
	case model.KindStructured:
		return 4
	case model.KindShortCategorical:
		return 5
	case model.KindText:
		return 6
	default:
		return 7
	}
}
