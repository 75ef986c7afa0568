package inspect

import (
	"log/slog"

	"github.com/nao1215/tablescan/internal/model"
)

// Engine is the facade over the inferer and the outlier detector. It analyzes
// a whole dataset column by column and returns results in column order.
type Engine struct {
	// inferer performs two-pass type inference per column.
	inferer *Inferer

	// detector records type-conformance outliers per column.
	detector *Detector

	// logger for structured logging.
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineSettings)

// engineSettings collects configuration before the inferer and detector are
// assembled, so a shared classifier can be built from the null tokens.
type engineSettings struct {
	threshold      float64
	minShapeValues int
	nullTokens     []string
	logger         *slog.Logger
}

// WithEngineThreshold sets the confidence threshold for type inference.
func WithEngineThreshold(threshold float64) EngineOption {
	return func(s *engineSettings) {
		s.threshold = threshold
	}
}

// WithEngineMinShapeValues sets the distinct-value requirement for shape
// promotion.
func WithEngineMinShapeValues(n int) EngineOption {
	return func(s *engineSettings) {
		s.minShapeValues = n
	}
}

// WithEngineNullTokens overrides the placeholders treated as missing values.
func WithEngineNullTokens(tokens []string) EngineOption {
	return func(s *engineSettings) {
		s.nullTokens = tokens
	}
}

// WithEngineLogger sets a custom logger for the engine and its components.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(s *engineSettings) {
		s.logger = logger
	}
}

// NewEngine creates an Engine. Both passes share one classifier so that a
// cell classifies identically during inference and outlier detection.
func NewEngine(opts ...EngineOption) *Engine {
	settings := &engineSettings{
		threshold:      DefaultConfidenceThreshold,
		minShapeValues: 0,
		nullTokens:     DefaultNullTokens,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(settings)
	}

	classifier := NewClassifier(WithNullTokens(settings.nullTokens))

	infererOpts := []InfererOption{
		WithClassifier(classifier),
		WithThreshold(settings.threshold),
		WithLogger(settings.logger),
	}
	if settings.minShapeValues > 0 {
		infererOpts = append(infererOpts, WithMinShapeValues(settings.minShapeValues))
	}

	return &Engine{
		inferer: NewInferer(infererOpts...),
		detector: NewDetector(
			WithDetectorClassifier(classifier),
			WithDetectorLogger(settings.logger),
		),
		logger: settings.logger,
	}
}

// AnalyzeColumn infers one column's type and detects its outliers.
func (e *Engine) AnalyzeColumn(col *model.Column) (model.ColumnInference, []model.OutlierRecord) {
	analysis := e.inferer.InferColumn(col)
	return analysis.Inference, e.detector.Detect(col, analysis)
}

// Analyze runs inference and outlier detection over every column of the
// dataset. Inferences come back one per column in dataset column order;
// outliers are concatenated in column order, row order within a column.
// Running Analyze twice on the same dataset yields identical results.
func (e *Engine) Analyze(ds *model.Dataset) ([]model.ColumnInference, []model.OutlierRecord) {
	inferences := make([]model.ColumnInference, 0, len(ds.Columns))
	var outliers []model.OutlierRecord

	for i := range ds.Columns {
		inference, records := e.AnalyzeColumn(&ds.Columns[i])
		inferences = append(inferences, inference)
		outliers = append(outliers, records...)
	}

	e.logger.Debug("dataset analyzed",
		"source", ds.Source,
		"columns", len(inferences),
		"outliers", len(outliers),
	)

	return inferences, outliers
}
