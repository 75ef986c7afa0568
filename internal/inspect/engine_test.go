package inspect

import (
	"math"
	"reflect"
	"testing"

	"github.com/nao1215/tablescan/internal/model"
)

// newPatientDataset builds the canonical mixed-quality test table: a date
// column with two bad values, an integer column with two bad values, a
// categorical column, a structured column with one bad value, and a constant
// column.
func newPatientDataset() *model.Dataset {
	return &model.Dataset{
		Source: "patients.csv",
		Columns: []model.Column{
			*newTestColumn("visit_date", []string{
				"2025-01-15", "not a date", "2025-02-20", "2025-03-10", "2025-13-45",
				"2025-04-01", "2025-05-12", "2025-06-30", "2025-07-04", "2025-08-19",
			}),
			*newTestColumn("age", []string{
				"34", "29", "41", "56", "38", "NaN", "62", "27", "45", "invalid_age",
			}),
			*newTestColumn("gender", []string{
				"M", "F", "M", "X", "F", "F", "M", "F", "M", "X",
			}),
			*newTestColumn("blood_pressure", []string{
				"120/80", "130/85", "118/76", "140/90", "125/82",
				"135/88", "110/70", "145/95", "abc", "122/79",
			}),
			*newTestColumn("country", []string{
				"USA", "USA", "USA", "USA", "USA", "USA", "USA", "USA", "USA", "USA",
			}),
		},
	}
}

func TestEngineAnalyze(t *testing.T) {
	t.Parallel()

	ds := newPatientDataset()
	inferences, outliers := NewEngine().Analyze(ds)

	if len(inferences) != 5 {
		t.Fatalf("got %d inferences, want 5", len(inferences))
	}

	wantTypes := []struct {
		column     string
		kind       model.CandidateKind
		confidence float64
	}{
		{column: "visit_date", kind: model.KindDate, confidence: 0.8},
		{column: "age", kind: model.KindInteger, confidence: 0.8},
		{column: "gender", kind: model.KindShortCategorical, confidence: 1.0},
		{column: "blood_pressure", kind: model.KindStructured, confidence: 0.9},
		{column: "country", kind: model.KindShortCategorical, confidence: 1.0},
	}
	for i, want := range wantTypes {
		got := inferences[i]
		if got.Column != want.column {
			t.Errorf("inference[%d].Column = %q, want %q", i, got.Column, want.column)
		}
		if got.Type.Kind != want.kind {
			t.Errorf("column %s: type = %s, want %s", want.column, got.Type, want.kind)
		}
		if math.Abs(got.Confidence-want.confidence) > 1e-9 {
			t.Errorf("column %s: confidence = %v, want %v", want.column, got.Confidence, want.confidence)
		}
	}

	if len(outliers) != 5 {
		t.Fatalf("got %d outliers, want 5: %v", len(outliers), outliers)
	}

	wantOutliers := []struct {
		column string
		row    int
		value  string
	}{
		{column: "visit_date", row: 1, value: "not a date"},
		{column: "visit_date", row: 4, value: "2025-13-45"},
		{column: "age", row: 5, value: "NaN"},
		{column: "age", row: 9, value: "invalid_age"},
		{column: "blood_pressure", row: 8, value: "abc"},
	}
	for i, want := range wantOutliers {
		got := outliers[i]
		if got.Column != want.column || got.Row != want.row || got.Value != want.value {
			t.Errorf("outlier[%d] = %s row %d %q, want %s row %d %q",
				i, got.Column, got.Row, got.Value, want.column, want.row, want.value)
		}
	}
}

func TestEngineAnalyzeIsIdempotent(t *testing.T) {
	t.Parallel()

	ds := newPatientDataset()
	engine := NewEngine()

	inf1, out1 := engine.Analyze(ds)
	inf2, out2 := engine.Analyze(ds)

	if !reflect.DeepEqual(inf1, inf2) {
		t.Error("inferences differ between identical runs")
	}
	if !reflect.DeepEqual(out1, out2) {
		t.Error("outliers differ between identical runs")
	}
}

func TestEngineNullTokenOverride(t *testing.T) {
	t.Parallel()

	// With NaN configured as a null token, the age column loses one present
	// value and the NaN cell can no longer be an outlier.
	engine := NewEngine(WithEngineNullTokens([]string{"na", "n/a", "null", "none", "nan"}))

	col := newTestColumn("age", []string{
		"34", "29", "41", "56", "38", "NaN", "62", "27", "45", "invalid_age",
	})
	ds := &model.Dataset{Source: "inline", Columns: []model.Column{*col}}

	inferences, outliers := engine.Analyze(ds)

	inf := inferences[0]
	if inf.Type.Kind != model.KindInteger {
		t.Fatalf("type = %s, want integer", inf.Type)
	}
	if inf.NonMissing != 9 {
		t.Errorf("nonMissing = %d, want 9", inf.NonMissing)
	}
	if math.Abs(inf.Confidence-8.0/9.0) > 1e-9 {
		t.Errorf("confidence = %v, want 8/9", inf.Confidence)
	}

	if len(outliers) != 1 {
		t.Fatalf("got %d outliers, want 1", len(outliers))
	}
	if outliers[0].Row != 9 || outliers[0].Value != "invalid_age" {
		t.Errorf("outlier = row %d %q, want row 9 invalid_age", outliers[0].Row, outliers[0].Value)
	}
}

func TestEngineThresholdOption(t *testing.T) {
	t.Parallel()

	col := newTestColumn("mixed", []string{
		"1", "2", "3", "4", "5", "6",
		"apple pie", "banana split", "cherry cake", "plum tart",
	})
	ds := &model.Dataset{Source: "inline", Columns: []model.Column{*col}}

	strict, _ := NewEngine(WithEngineThreshold(0.9)).Analyze(ds)
	if !strict[0].Type.Equal(model.Undetermined) {
		t.Errorf("strict threshold: type = %s, want undetermined", strict[0].Type)
	}

	lenient, _ := NewEngine(WithEngineThreshold(0.5)).Analyze(ds)
	if lenient[0].Type.Kind != model.KindInteger {
		t.Errorf("lenient threshold: type = %s, want integer", lenient[0].Type)
	}
}
