package inspect

import (
	"fmt"
	"log/slog"

	"github.com/nao1215/tablescan/internal/model"
)

// Detector re-examines columns with a determinate inferred type and records
// every present cell whose classification disagrees with it.
//
// The detector never raises on malformed input: at worst a cell classifies
// as text and the mismatch is reported. Undetermined columns produce zero
// records. Short-categorical columns are also exempt: all short alphabetic
// codes in such a column are mutually valid categories, so flagging one for
// differing textually from the most frequent would be a false positive.
type Detector struct {
	// classifier must be configured identically to the inferer's, so both
	// passes classify a cell the same way.
	classifier *Classifier

	// logger for structured logging.
	logger *slog.Logger
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithDetectorClassifier sets a custom classifier.
func WithDetectorClassifier(c *Classifier) DetectorOption {
	return func(d *Detector) {
		d.classifier = c
	}
}

// WithDetectorLogger sets a custom logger.
func WithDetectorLogger(logger *slog.Logger) DetectorOption {
	return func(d *Detector) {
		d.logger = logger
	}
}

// NewDetector creates a Detector with default settings.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{}

	for _, opt := range opts {
		opt(d)
	}

	if d.classifier == nil {
		d.classifier = NewClassifier()
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}

	return d
}

// Detect returns one OutlierRecord per present, non-matching cell of the
// column, in row order. Row indices match the original dataset indexing
// exactly, including rows where other columns are missing. Columns whose
// inference is undetermined or short-categorical yield nil.
func (d *Detector) Detect(col *model.Column, analysis Analysis) []model.OutlierRecord {
	inferred := analysis.Inference.Type
	if !inferred.IsDeterminate() {
		return nil
	}

	var records []model.OutlierRecord
	for _, cell := range col.Cells {
		if cell.Missing {
			continue
		}
		observed, ok := d.classifier.Classify(cell.Raw, analysis.Shapes)
		if !ok {
			continue
		}
		if observed.Equal(inferred) {
			continue
		}

		records = append(records, model.OutlierRecord{
			Row:      cell.Row,
			Column:   col.Name,
			Value:    cell.Raw,
			Expected: inferred.String(),
			Observed: observed.String(),
			Reason:   fmt.Sprintf("expected %s but found %s", inferred, observed),
		})
	}

	if len(records) > 0 {
		d.logger.Debug("outliers detected",
			"column", col.Name,
			"expected", inferred.String(),
			"count", len(records),
		)
	}

	return records
}
