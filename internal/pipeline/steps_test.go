package pipeline

import (
	"context"
	"testing"

	"github.com/nao1215/tablescan/internal/checks"
	"github.com/nao1215/tablescan/internal/inspect"
	"github.com/nao1215/tablescan/internal/model"
)

// newMixedDataset builds a two-column dataset with known defects: one bad
// value in an integer column and one constant column.
func newMixedDataset() *model.Dataset {
	ages := []string{"34", "29", "41", "oops", "56"}
	countries := []string{"USA", "USA", "USA", "USA", "USA"}

	build := func(name string, values []string, storage model.StorageType) model.Column {
		cells := make([]model.Cell, len(values))
		for i, v := range values {
			cells[i] = model.Cell{Row: i, Raw: v}
		}
		return model.Column{Name: name, Cells: cells, Storage: storage}
	}

	return &model.Dataset{
		Source: "test.csv",
		Columns: []model.Column{
			build("age", ages, model.StorageString),
			build("country", countries, model.StorageString),
		},
	}
}

func TestRowCountStep(t *testing.T) {
	t.Parallel()

	report := model.NewQualityReport("test.csv")
	step := NewRowCountStep(10)

	if step.Name() != "row_count" {
		t.Errorf("Name = %q", step.Name())
	}
	if err := step.Do(context.Background(), newMixedDataset(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.RowCountCheck == nil {
		t.Fatal("RowCountCheck not recorded")
	}
	if report.RowCountCheck.Passed {
		t.Error("5 rows should fail a minimum of 10")
	}
	if report.RowCountCheck.Rows != 5 || report.RowCountCheck.MinRows != 10 {
		t.Errorf("result = %+v", report.RowCountCheck)
	}
}

func TestInferenceStep(t *testing.T) {
	t.Parallel()

	report := model.NewQualityReport("test.csv")
	step := NewInferenceStep(inspect.NewEngine())

	if step.Name() != "type_inference" {
		t.Errorf("Name = %q", step.Name())
	}
	if err := step.Do(context.Background(), newMixedDataset(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Inferences) != 2 {
		t.Fatalf("got %d inferences, want 2", len(report.Inferences))
	}
	if report.Inferences[0].Type.Kind != model.KindInteger {
		t.Errorf("age type = %s, want integer", report.Inferences[0].Type)
	}

	outliers := report.OutliersFor("age")
	if len(outliers) != 1 || outliers[0].Value != "oops" {
		t.Errorf("age outliers = %+v, want one for oops", outliers)
	}
}

func TestConsistencyStep(t *testing.T) {
	t.Parallel()

	report := model.NewQualityReport("test.csv")
	step := NewConsistencyStep(checks.NewConsistencyChecker())

	if step.Name() != "consistency" {
		t.Errorf("Name = %q", step.Name())
	}
	if err := step.Do(context.Background(), newMixedDataset(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.MissingStats) != 2 {
		t.Errorf("got %d missing stats, want one per column", len(report.MissingStats))
	}

	var constant bool
	for _, issue := range report.Issues {
		if issue.Kind == model.IssueConstantValue && issue.Column == "country" {
			constant = true
		}
	}
	if !constant {
		t.Error("constant country column not flagged")
	}
}

func TestSchemaStep(t *testing.T) {
	t.Parallel()

	report := model.NewQualityReport("test.csv")
	schema := map[string]string{"age": "integer", "country": "string"}
	step := NewSchemaStep(checks.NewSchemaValidator(schema))

	if step.Name() != "schema" {
		t.Errorf("Name = %q", step.Name())
	}
	if err := step.Do(context.Background(), newMixedDataset(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The age column stores strings because of the bad value, so the
	// declared integer type is a mismatch.
	if len(report.SchemaViolations) != 1 {
		t.Fatalf("got %d violations, want 1: %+v", len(report.SchemaViolations), report.SchemaViolations)
	}
	if report.SchemaViolations[0].Kind != model.SchemaTypeMismatch {
		t.Errorf("violation = %+v", report.SchemaViolations[0])
	}
}

func TestRangeStep(t *testing.T) {
	t.Parallel()

	report := model.NewQualityReport("test.csv")
	maxAge := 40.0
	rules := map[string]checks.Rule{"age": {Max: &maxAge}}
	step := NewRangeStep(checks.NewRangeChecker(rules))

	if step.Name() != "ranges" {
		t.Errorf("Name = %q", step.Name())
	}
	if err := step.Do(context.Background(), newMixedDataset(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.RangeViolations) != 2 {
		t.Fatalf("got %d violations, want 2: %+v", len(report.RangeViolations), report.RangeViolations)
	}
	if report.RangeViolations[0].Value != "41" || report.RangeViolations[1].Value != "56" {
		t.Errorf("violations = %+v", report.RangeViolations)
	}
}

func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	t.Run("base steps only", func(t *testing.T) {
		t.Parallel()

		p := Default(Settings{MinRows: 1})

		want := []string{"row_count", "type_inference", "consistency"}
		got := p.StepNames()
		if len(got) != len(want) {
			t.Fatalf("steps = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("step[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("schema and rules add optional steps", func(t *testing.T) {
		t.Parallel()

		p := Default(Settings{
			MinRows: 1,
			Schema:  map[string]string{"age": "integer"},
			Rules:   map[string]checks.Rule{"age": {}},
		})

		got := p.StepNames()
		if len(got) != 5 || got[3] != "schema" || got[4] != "ranges" {
			t.Errorf("steps = %v, want base plus schema and ranges", got)
		}
	})

	t.Run("full run over a defective dataset", func(t *testing.T) {
		t.Parallel()

		p := Default(Settings{MinRows: 1})
		report := model.NewQualityReport("test.csv")
		if err := p.Execute(context.Background(), newMixedDataset(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.Passed() {
			t.Error("defective dataset reported as passed")
		}
		if len(report.PerformedChecks) != 3 {
			t.Errorf("PerformedChecks = %v", report.PerformedChecks)
		}
		statuses := report.CheckStatuses()
		if len(statuses) != 3 {
			t.Fatalf("statuses = %+v", statuses)
		}
		if !statuses[0].Passed {
			t.Error("row_count should pass")
		}
		if statuses[1].Passed {
			t.Error("type_inference should fail on the bad age value")
		}
	})
}
