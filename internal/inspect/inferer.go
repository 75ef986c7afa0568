package inspect

import (
	"log/slog"

	"github.com/nao1215/tablescan/internal/model"
	"github.com/nao1215/tablescan/internal/pattern"
)

// DefaultConfidenceThreshold is the minimum fraction of non-missing cells
// that must agree on one candidate before the column's type is inferred.
// Below it the column is reported as undetermined and outlier detection is
// skipped, since flagging cells against a type the column never established
// would produce noise.
const DefaultConfidenceThreshold = 0.70

// Analysis bundles a column's inference result with the shape context it was
// computed under. The outlier detector needs the same context so that
// structured cells classify identically in both passes.
type Analysis struct {
	// Inference is the confidence-weighted type inference for the column.
	Inference model.ColumnInference

	// Shapes is the immutable pass-1 shape discovery result.
	Shapes *pattern.ShapeSet
}

// Inferer performs two-pass type inference over single columns.
type Inferer struct {
	// classifier assigns candidates to individual cells.
	classifier *Classifier

	// threshold is the minimum confidence for a determinate inference.
	threshold float64

	// minShapeValues is the number of distinct values required to promote a
	// structured shape.
	minShapeValues int

	// logger for structured logging.
	logger *slog.Logger
}

// InfererOption configures an Inferer.
type InfererOption func(*Inferer)

// WithThreshold sets the confidence threshold. Values outside (0,1] are
// ignored in favor of the default.
func WithThreshold(threshold float64) InfererOption {
	return func(inf *Inferer) {
		if threshold > 0 && threshold <= 1 {
			inf.threshold = threshold
		}
	}
}

// WithMinShapeValues sets the distinct-value requirement for shape promotion.
func WithMinShapeValues(n int) InfererOption {
	return func(inf *Inferer) {
		if n > 0 {
			inf.minShapeValues = n
		}
	}
}

// WithClassifier sets a custom classifier, e.g. one with different null
// tokens.
func WithClassifier(c *Classifier) InfererOption {
	return func(inf *Inferer) {
		inf.classifier = c
	}
}

// WithLogger sets a custom logger for the inferer.
func WithLogger(logger *slog.Logger) InfererOption {
	return func(inf *Inferer) {
		inf.logger = logger
	}
}

// NewInferer creates an Inferer with default threshold and shape settings.
func NewInferer(opts ...InfererOption) *Inferer {
	inf := &Inferer{
		threshold:      DefaultConfidenceThreshold,
		minShapeValues: pattern.DefaultMinShapeValues,
	}

	for _, opt := range opts {
		opt(inf)
	}

	if inf.classifier == nil {
		inf.classifier = NewClassifier()
	}
	if inf.logger == nil {
		inf.logger = slog.Default()
	}

	return inf
}

// InferColumn runs both passes over one column and returns the inference
// together with the shape context. The column is read-only input; the result
// is computed fresh and returned by value.
func (inf *Inferer) InferColumn(col *model.Column) Analysis {
	// Pass 1: discover structured shapes from present values. Cells the
	// loader marked missing and cells holding null tokens contribute nothing.
	present := make([]string, 0, len(col.Cells))
	for _, cell := range col.Cells {
		if cell.Missing || inf.classifier.IsMissing(cell.Raw) {
			continue
		}
		present = append(present, cell.Raw)
	}
	shapes := pattern.DiscoverShapes(present, inf.minShapeValues)

	// Pass 2: classify every present cell and tally votes per candidate.
	distribution := make(map[string]int)
	candidates := make(map[string]model.TypeCandidate)
	nonMissing := 0

	for _, cell := range col.Cells {
		if cell.Missing {
			continue
		}
		candidate, ok := inf.classifier.Classify(cell.Raw, shapes)
		if !ok {
			continue
		}
		nonMissing++
		key := candidate.Key()
		distribution[key]++
		candidates[key] = candidate
	}

	inference := model.ColumnInference{
		Column:       col.Name,
		Type:         model.Undetermined,
		Distribution: distribution,
		NonMissing:   nonMissing,
		Missing:      len(col.Cells) - nonMissing,
	}

	if nonMissing == 0 {
		inf.logger.Debug("column has no present values", "column", col.Name)
		return Analysis{Inference: inference, Shapes: shapes}
	}

	majority, count := majorityCandidate(distribution, candidates)
	inference.MajorityCount = count
	inference.Confidence = float64(count) / float64(nonMissing)

	if inference.Confidence >= inf.threshold {
		inference.Type = majority
	}

	inf.logger.Debug("column inferred",
		"column", col.Name,
		"type", inference.Type.String(),
		"confidence", inference.Confidence,
		"nonMissing", nonMissing,
	)

	return Analysis{Inference: inference, Shapes: shapes}
}

// majorityCandidate selects the candidate with the most votes. Ties are
// broken by catalog priority, then by key, so the result is deterministic
// regardless of map iteration order.
func majorityCandidate(distribution map[string]int, candidates map[string]model.TypeCandidate) (model.TypeCandidate, int) {
	var best model.TypeCandidate
	bestCount := -1

	for key, count := range distribution {
		candidate := candidates[key]
		switch {
		case count > bestCount:
			best, bestCount = candidate, count
		case count == bestCount:
			if candidatePriority(candidate) < candidatePriority(best) ||
				(candidatePriority(candidate) == candidatePriority(best) && candidate.Key() < best.Key()) {
				best = candidate
			}
		}
	}

	return best, bestCount
}
