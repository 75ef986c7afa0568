package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/tablescan/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, ds *model.Dataset, report *model.QualityReport) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, ds *model.Dataset, report *model.QualityReport) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, ds, report)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// newTestDataset builds a one-column dataset for pipeline wiring tests.
func newTestDataset() *model.Dataset {
	return &model.Dataset{
		Source: "test.csv",
		Columns: []model.Column{
			{
				Name: "id",
				Cells: []model.Cell{
					{Row: 0, Raw: "1"},
					{Row: 1, Raw: "2"},
				},
				Storage: model.StorageInteger,
			},
		},
	}
}

func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))

		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "first"})
	p.AddSteps(&mockStep{name: "second"}, &mockStep{name: "third"})

	if p.StepCount() != 3 {
		t.Fatalf("expected 3 steps, got %d", p.StepCount())
	}

	want := []string{"first", "second", "third"}
	for i, name := range p.StepNames() {
		if name != want[i] {
			t.Errorf("step[%d] = %q, want %q", i, name, want[i])
		}
	}
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order and records them", func(t *testing.T) {
		t.Parallel()

		var order []string
		step1 := &mockStep{name: "one", doFunc: func(_ context.Context, _ *model.Dataset, _ *model.QualityReport) error {
			order = append(order, "one")
			return nil
		}}
		step2 := &mockStep{name: "two", doFunc: func(_ context.Context, _ *model.Dataset, _ *model.QualityReport) error {
			order = append(order, "two")
			return nil
		}}

		p := New()
		p.AddSteps(step1, step2)

		report := model.NewQualityReport("test.csv")
		if err := p.Execute(context.Background(), newTestDataset(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(order) != 2 || order[0] != "one" || order[1] != "two" {
			t.Errorf("execution order = %v", order)
		}
		if len(report.PerformedChecks) != 2 {
			t.Errorf("PerformedChecks = %v, want both steps", report.PerformedChecks)
		}
	})

	t.Run("records dataset dimensions", func(t *testing.T) {
		t.Parallel()

		report := model.NewQualityReport("test.csv")
		if err := New().Execute(context.Background(), newTestDataset(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.RowCount != 2 || report.ColumnCount != 1 {
			t.Errorf("dimensions = %dx%d, want 2x1", report.RowCount, report.ColumnCount)
		}
		if len(report.Columns) != 1 || report.Columns[0] != "id" {
			t.Errorf("Columns = %v, want [id]", report.Columns)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("step broke")
		failing := &mockStep{name: "failing", doFunc: func(_ context.Context, _ *model.Dataset, _ *model.QualityReport) error {
			return wantErr
		}}
		next := &mockStep{name: "next"}

		p := New()
		p.AddSteps(failing, next)

		report := model.NewQualityReport("test.csv")
		err := p.Execute(context.Background(), newTestDataset(), report)

		if !errors.Is(err, wantErr) {
			t.Errorf("error = %v, want %v", err, wantErr)
		}
		if next.callCount != 0 {
			t.Error("subsequent step ran after failure")
		}
		if report.ErrorMessage != wantErr.Error() {
			t.Errorf("ErrorMessage = %q", report.ErrorMessage)
		}
	})

	t.Run("continues after error when configured", func(t *testing.T) {
		t.Parallel()

		failing := &mockStep{name: "failing", doFunc: func(_ context.Context, _ *model.Dataset, _ *model.QualityReport) error {
			return errors.New("step broke")
		}}
		next := &mockStep{name: "next"}

		p := New(WithContinueOnError(true))
		p.AddSteps(failing, next)

		report := model.NewQualityReport("test.csv")
		if err := p.Execute(context.Background(), newTestDataset(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if next.callCount != 1 {
			t.Error("subsequent step did not run")
		}
		if report.Error == nil {
			t.Error("step error not recorded in report")
		}

		// A failed step is not recorded as performed.
		if len(report.PerformedChecks) != 1 || report.PerformedChecks[0] != "next" {
			t.Errorf("PerformedChecks = %v, want [next]", report.PerformedChecks)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "never"}
		p := New()
		p.AddStep(step)

		err := p.Execute(ctx, newTestDataset(), model.NewQualityReport("test.csv"))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
		if step.callCount != 0 {
			t.Error("step ran after cancellation")
		}
	})
}
