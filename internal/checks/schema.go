package checks

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/nao1215/tablescan/internal/model"
)

// maxSchemaSamples is how many raw values a type-mismatch violation carries
// to aid diagnosis.
const maxSchemaSamples = 3

// declaredTypes is the vocabulary accepted in a schema declaration. It
// matches the storage types the loader can detect.
var declaredTypes = map[string]struct{}{
	string(model.StorageInteger): {},
	string(model.StorageFloat):   {},
	string(model.StorageBoolean): {},
	string(model.StorageDate):    {},
	string(model.StorageString):  {},
}

// ValidateSchemaTypes rejects schema declarations using an unknown type name.
// It runs at configuration-load time so that a malformed schema never reaches
// the validator.
func ValidateSchemaTypes(schema map[string]string) error {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, ok := declaredTypes[schema[name]]; !ok {
			return fmt.Errorf("schema column %q: unknown type %q (want integer, float, string, boolean, or date)", name, schema[name])
		}
	}
	return nil
}

// SchemaValidator compares a declared column-to-type mapping against the
// dataset's physical storage types. It inspects how values were stored, not
// what the inference engine concluded about their content; the two checks are
// independent and both contribute to the report.
type SchemaValidator struct {
	// schema maps column names to declared type names.
	schema map[string]string

	// logger for structured logging.
	logger *slog.Logger
}

// SchemaValidatorOption configures a SchemaValidator.
type SchemaValidatorOption func(*SchemaValidator)

// WithSchemaLogger sets a custom logger.
func WithSchemaLogger(logger *slog.Logger) SchemaValidatorOption {
	return func(v *SchemaValidator) {
		v.logger = logger
	}
}

// NewSchemaValidator creates a SchemaValidator for the given declaration.
func NewSchemaValidator(schema map[string]string, opts ...SchemaValidatorOption) *SchemaValidator {
	v := &SchemaValidator{schema: schema}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}
	return v
}

// Validate returns schema violations in deterministic order: declared columns
// absent from the dataset first (sorted by name), then per-column findings in
// dataset column order.
func (v *SchemaValidator) Validate(ds *model.Dataset) []model.SchemaViolation {
	var violations []model.SchemaViolation

	missing := make([]string, 0, len(v.schema))
	for name := range v.schema {
		if _, ok := ds.Column(name); !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	for _, name := range missing {
		violations = append(violations, model.SchemaViolation{
			Column:   name,
			Kind:     model.SchemaMissingColumn,
			Expected: v.schema[name],
		})
	}

	for i := range ds.Columns {
		col := &ds.Columns[i]
		declared, ok := v.schema[col.Name]
		if !ok {
			violations = append(violations, model.SchemaViolation{
				Column: col.Name,
				Kind:   model.SchemaUnexpectedColumn,
				Actual: string(col.Storage),
			})
			continue
		}
		if declared != string(col.Storage) {
			violations = append(violations, model.SchemaViolation{
				Column:   col.Name,
				Kind:     model.SchemaTypeMismatch,
				Expected: declared,
				Actual:   string(col.Storage),
				Samples:  sampleValues(col, maxSchemaSamples),
			})
		}
	}

	v.logger.Debug("schema validation complete",
		"source", ds.Source,
		"declared", len(v.schema),
		"violations", len(violations),
	)

	return violations
}

// sampleValues returns up to limit present values from the column.
func sampleValues(col *model.Column, limit int) []string {
	var samples []string
	for _, cell := range col.Cells {
		if cell.Missing {
			continue
		}
		samples = append(samples, cell.Raw)
		if len(samples) == limit {
			break
		}
	}
	return samples
}
