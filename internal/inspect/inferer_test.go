package inspect

import (
	"math"
	"testing"

	"github.com/nao1215/tablescan/internal/model"
)

// newTestColumn builds a column the way the loader would: empty values are
// marked missing, everything else stays present with its row index.
func newTestColumn(name string, values []string) *model.Column {
	cells := make([]model.Cell, len(values))
	for i, v := range values {
		cells[i] = model.Cell{Row: i, Raw: v, Missing: v == ""}
	}
	return &model.Column{Name: name, Cells: cells, Storage: model.StorageString}
}

func TestInferColumnDates(t *testing.T) {
	t.Parallel()

	col := newTestColumn("visit_date", []string{
		"2025-01-15",
		"not a date",
		"2025-02-20",
		"2025-03-10",
		"2025-13-45",
		"2025-04-01",
		"2025-05-12",
		"2025-06-30",
		"2025-07-04",
		"2025-08-19",
	})

	analysis := NewInferer().InferColumn(col)
	inf := analysis.Inference

	if inf.Type.Kind != model.KindDate {
		t.Fatalf("type = %s, want date", inf.Type)
	}
	if math.Abs(inf.Confidence-0.8) > 1e-9 {
		t.Errorf("confidence = %v, want 0.8", inf.Confidence)
	}
	if inf.NonMissing != 10 {
		t.Errorf("nonMissing = %d, want 10", inf.NonMissing)
	}
	if inf.Distribution["date"] != 8 {
		t.Errorf("date votes = %d, want 8", inf.Distribution["date"])
	}
	if inf.Distribution["text"] != 2 {
		t.Errorf("text votes = %d, want 2", inf.Distribution["text"])
	}
}

func TestInferColumnIntegersWithNaN(t *testing.T) {
	t.Parallel()

	// A literal NaN is not a null token, so it stays in the denominator and
	// votes as text.
	col := newTestColumn("age", []string{
		"34", "29", "41", "56", "38", "NaN", "62", "27", "45", "invalid_age",
	})

	analysis := NewInferer().InferColumn(col)
	inf := analysis.Inference

	if inf.Type.Kind != model.KindInteger {
		t.Fatalf("type = %s, want integer", inf.Type)
	}
	if math.Abs(inf.Confidence-0.8) > 1e-9 {
		t.Errorf("confidence = %v, want 0.8", inf.Confidence)
	}
	if inf.NonMissing != 10 {
		t.Errorf("nonMissing = %d, want 10", inf.NonMissing)
	}
	if inf.MajorityCount != 8 {
		t.Errorf("majorityCount = %d, want 8", inf.MajorityCount)
	}
}

func TestInferColumnShortCategorical(t *testing.T) {
	t.Parallel()

	col := newTestColumn("gender", []string{
		"M", "F", "M", "X", "F", "F", "M", "F", "M", "X",
	})

	analysis := NewInferer().InferColumn(col)
	inf := analysis.Inference

	if inf.Type.Kind != model.KindShortCategorical {
		t.Fatalf("type = %s, want short_categorical", inf.Type)
	}
	if inf.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", inf.Confidence)
	}
	if inf.Type.IsDeterminate() {
		t.Error("short_categorical must not be subject to outlier detection")
	}
}

func TestInferColumnStructured(t *testing.T) {
	t.Parallel()

	col := newTestColumn("blood_pressure", []string{
		"120/80", "130/85", "118/76", "140/90", "125/82",
		"135/88", "110/70", "145/95", "abc", "122/79",
	})

	analysis := NewInferer().InferColumn(col)
	inf := analysis.Inference

	if inf.Type.Kind != model.KindStructured {
		t.Fatalf("type = %s, want structured", inf.Type)
	}
	if inf.Type.Shape != "number/number" {
		t.Errorf("shape = %q, want %q", inf.Type.Shape, "number/number")
	}
	if math.Abs(inf.Confidence-0.9) > 1e-9 {
		t.Errorf("confidence = %v, want 0.9", inf.Confidence)
	}
	if analysis.Shapes.Len() != 1 {
		t.Errorf("discovered %d shapes, want 1", analysis.Shapes.Len())
	}
}

func TestInferColumnMissingHandling(t *testing.T) {
	t.Parallel()

	t.Run("null tokens reduce the denominator", func(t *testing.T) {
		t.Parallel()

		col := newTestColumn("score", []string{
			"10", "20", "", "N/A", "30", "40", "na", "50",
		})

		inf := NewInferer().InferColumn(col).Inference
		if inf.NonMissing != 5 {
			t.Fatalf("nonMissing = %d, want 5", inf.NonMissing)
		}
		if inf.Missing != 3 {
			t.Fatalf("missing = %d, want 3", inf.Missing)
		}
		if inf.Type.Kind != model.KindInteger {
			t.Errorf("type = %s, want integer", inf.Type)
		}
		if inf.Confidence != 1.0 {
			t.Errorf("confidence = %v, want 1.0", inf.Confidence)
		}
	})

	t.Run("all missing yields undetermined", func(t *testing.T) {
		t.Parallel()

		col := newTestColumn("empty", []string{"", "null", "NA", ""})

		inf := NewInferer().InferColumn(col).Inference
		if !inf.Type.Equal(model.Undetermined) {
			t.Errorf("type = %s, want undetermined", inf.Type)
		}
		if inf.Confidence != 0 {
			t.Errorf("confidence = %v, want 0", inf.Confidence)
		}
		if inf.NonMissing != 0 {
			t.Errorf("nonMissing = %d, want 0", inf.NonMissing)
		}
	})

	t.Run("zero length column yields undetermined", func(t *testing.T) {
		t.Parallel()

		col := newTestColumn("empty", nil)

		inf := NewInferer().InferColumn(col).Inference
		if !inf.Type.Equal(model.Undetermined) {
			t.Errorf("type = %s, want undetermined", inf.Type)
		}
	})
}

func TestInferColumnBelowThreshold(t *testing.T) {
	t.Parallel()

	values := []string{
		"1", "2", "3", "4", "5",
		"apple pie", "banana split", "cherry cake", "plum tart", "pear crumble",
	}

	t.Run("even split stays undetermined at default threshold", func(t *testing.T) {
		t.Parallel()

		inf := NewInferer().InferColumn(newTestColumn("mixed", values)).Inference
		if !inf.Type.Equal(model.Undetermined) {
			t.Fatalf("type = %s, want undetermined", inf.Type)
		}
		if math.Abs(inf.Confidence-0.5) > 1e-9 {
			t.Errorf("confidence = %v, want 0.5", inf.Confidence)
		}
		if inf.Distribution["integer"] != 5 || inf.Distribution["text"] != 5 {
			t.Errorf("distribution = %v, want 5 integer and 5 text", inf.Distribution)
		}
	})

	t.Run("lower threshold determines the majority", func(t *testing.T) {
		t.Parallel()

		inf := NewInferer(WithThreshold(0.5)).InferColumn(newTestColumn("mixed", values)).Inference
		if inf.Type.Kind != model.KindInteger {
			t.Errorf("type = %s, want integer (priority tie-break)", inf.Type)
		}
	})
}

func TestInferColumnConfidenceBounds(t *testing.T) {
	t.Parallel()

	columns := []*model.Column{
		newTestColumn("a", []string{"1", "2", "x", "2025-01-15", "true"}),
		newTestColumn("b", []string{"only"}),
		newTestColumn("c", []string{"", "", "1"}),
	}

	inferer := NewInferer()
	for _, col := range columns {
		inf := inferer.InferColumn(col).Inference

		if inf.Confidence < 0 || inf.Confidence > 1 {
			t.Errorf("column %s: confidence %v out of [0,1]", col.Name, inf.Confidence)
		}

		total := 0
		for _, n := range inf.Distribution {
			total += n
		}
		if total != inf.NonMissing {
			t.Errorf("column %s: distribution sums to %d, want %d", col.Name, total, inf.NonMissing)
		}
	}
}
