package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/tablescan/internal/checks"
	"github.com/nao1215/tablescan/internal/inspect"
	"github.com/nao1215/tablescan/internal/model"
)

// RowCountStep verifies the dataset has enough rows to analyze. It runs
// first because statistics over a near-empty table are noise, but it never
// aborts the pipeline: downstream checks still run and the result is
// recorded on the report.
type RowCountStep struct {
	// minRows is the required minimum number of data rows.
	minRows int
}

// NewRowCountStep creates a row-count step.
func NewRowCountStep(minRows int) *RowCountStep {
	return &RowCountStep{minRows: minRows}
}

// Name returns the step name.
func (s *RowCountStep) Name() string {
	return "row_count"
}

// Do executes the row-count check.
func (s *RowCountStep) Do(_ context.Context, ds *model.Dataset, report *model.QualityReport) error {
	result := checks.CheckRowCount(ds, s.minRows)
	report.RowCountCheck = &result
	return nil
}

// InferenceStep runs type inference and outlier detection over every column.
type InferenceStep struct {
	// engine is the two-pass inference and detection engine.
	engine *inspect.Engine
}

// NewInferenceStep creates an inference step backed by the given engine.
func NewInferenceStep(engine *inspect.Engine) *InferenceStep {
	return &InferenceStep{engine: engine}
}

// Name returns the step name.
func (s *InferenceStep) Name() string {
	return "type_inference"
}

// Do executes type inference and outlier detection.
func (s *InferenceStep) Do(_ context.Context, ds *model.Dataset, report *model.QualityReport) error {
	inferences, outliers := s.engine.Analyze(ds)
	report.Inferences = append(report.Inferences, inferences...)
	report.Outliers = append(report.Outliers, outliers...)
	return nil
}

// ConsistencyStep runs the baseline consistency checks.
type ConsistencyStep struct {
	// checker computes missing stats and consistency issues.
	checker *checks.ConsistencyChecker
}

// NewConsistencyStep creates a consistency step.
func NewConsistencyStep(checker *checks.ConsistencyChecker) *ConsistencyStep {
	return &ConsistencyStep{checker: checker}
}

// Name returns the step name.
func (s *ConsistencyStep) Name() string {
	return "consistency"
}

// Do executes the consistency checks.
func (s *ConsistencyStep) Do(_ context.Context, ds *model.Dataset, report *model.QualityReport) error {
	stats, issues := s.checker.Check(ds)
	report.MissingStats = append(report.MissingStats, stats...)
	report.Issues = append(report.Issues, issues...)
	return nil
}

// SchemaStep validates the dataset against a declared schema. It is added to
// the pipeline only when a schema was supplied.
type SchemaStep struct {
	// validator compares declared types against storage types.
	validator *checks.SchemaValidator
}

// NewSchemaStep creates a schema validation step.
func NewSchemaStep(validator *checks.SchemaValidator) *SchemaStep {
	return &SchemaStep{validator: validator}
}

// Name returns the step name.
func (s *SchemaStep) Name() string {
	return "schema"
}

// Do executes the schema validation.
func (s *SchemaStep) Do(_ context.Context, ds *model.Dataset, report *model.QualityReport) error {
	report.SchemaViolations = append(report.SchemaViolations, s.validator.Validate(ds)...)
	return nil
}

// RangeStep validates values against the configured range rules. It is added
// to the pipeline only when rules were supplied.
type RangeStep struct {
	// checker applies per-column value constraints.
	checker *checks.RangeChecker
}

// NewRangeStep creates a range validation step.
func NewRangeStep(checker *checks.RangeChecker) *RangeStep {
	return &RangeStep{checker: checker}
}

// Name returns the step name.
func (s *RangeStep) Name() string {
	return "ranges"
}

// Do executes the range validation.
func (s *RangeStep) Do(_ context.Context, ds *model.Dataset, report *model.QualityReport) error {
	report.RangeViolations = append(report.RangeViolations, s.checker.Check(ds)...)
	return nil
}

// Settings collects everything needed to assemble the standard pipeline.
type Settings struct {
	// Threshold is the inference confidence threshold.
	Threshold float64

	// MinShapeValues is the distinct-value requirement for shape promotion.
	MinShapeValues int

	// MinRows is the required minimum number of data rows.
	MinRows int

	// NullTokens overrides the default missing-value placeholders when
	// non-empty.
	NullTokens []string

	// Schema maps column names to declared types. Nil disables the schema
	// step.
	Schema map[string]string

	// Rules maps column names to value constraints. Nil disables the range
	// step.
	Rules map[string]checks.Rule

	// Logger for all steps. Nil falls back to slog.Default().
	Logger *slog.Logger
}

// Default assembles the standard pipeline: row count, type inference,
// consistency, then schema and range validation when configured.
func Default(settings Settings, opts ...Option) *Pipeline {
	logger := settings.Logger
	if logger == nil {
		logger = slog.Default()
	}

	engineOpts := []inspect.EngineOption{inspect.WithEngineLogger(logger)}
	if settings.Threshold > 0 {
		engineOpts = append(engineOpts, inspect.WithEngineThreshold(settings.Threshold))
	}
	if settings.MinShapeValues > 0 {
		engineOpts = append(engineOpts, inspect.WithEngineMinShapeValues(settings.MinShapeValues))
	}
	if len(settings.NullTokens) > 0 {
		engineOpts = append(engineOpts, inspect.WithEngineNullTokens(settings.NullTokens))
	}

	p := New(append([]Option{WithLogger(logger)}, opts...)...)
	p.AddSteps(
		NewRowCountStep(settings.MinRows),
		NewInferenceStep(inspect.NewEngine(engineOpts...)),
		NewConsistencyStep(checks.NewConsistencyChecker(checks.WithConsistencyLogger(logger))),
	)
	if settings.Schema != nil {
		p.AddStep(NewSchemaStep(checks.NewSchemaValidator(settings.Schema, checks.WithSchemaLogger(logger))))
	}
	if settings.Rules != nil {
		p.AddStep(NewRangeStep(checks.NewRangeChecker(settings.Rules, checks.WithRangeLogger(logger))))
	}
	return p
}
