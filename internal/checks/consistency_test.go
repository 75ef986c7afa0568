package checks

import (
	"math"
	"testing"

	"github.com/nao1215/tablescan/internal/model"
)

// newTestColumn builds a column with empty values marked missing, the way the
// loader produces them.
func newTestColumn(name string, storage model.StorageType, values []string) model.Column {
	cells := make([]model.Cell, len(values))
	for i, v := range values {
		cells[i] = model.Cell{Row: i, Raw: v, Missing: v == ""}
	}
	return model.Column{Name: name, Cells: cells, Storage: storage}
}

func TestConsistencyCheckerMissingStats(t *testing.T) {
	t.Parallel()

	ds := &model.Dataset{
		Source: "test.csv",
		Columns: []model.Column{
			newTestColumn("full", model.StorageInteger, []string{"1", "2", "3", "4"}),
			newTestColumn("half", model.StorageString, []string{"a1b", "", "c2d", ""}),
			newTestColumn("empty", model.StorageString, []string{"", "", "", ""}),
		},
	}

	stats, issues := NewConsistencyChecker().Check(ds)

	if len(stats) != 3 {
		t.Fatalf("got %d stats, want one per column", len(stats))
	}

	wantStats := []model.MissingStat{
		{Column: "full", Count: 0, Percent: 0.0},
		{Column: "half", Count: 2, Percent: 0.5},
		{Column: "empty", Count: 4, Percent: 1.0},
	}
	for i, want := range wantStats {
		got := stats[i]
		if got.Column != want.Column || got.Count != want.Count {
			t.Errorf("stats[%d] = %+v, want %+v", i, got, want)
		}
		if math.Abs(got.Percent-want.Percent) > 1e-9 {
			t.Errorf("stats[%d].Percent = %v, want %v", i, got.Percent, want.Percent)
		}
	}

	var missingIssues []model.ConsistencyIssue
	for _, issue := range issues {
		if issue.Kind == model.IssueMissingValues {
			missingIssues = append(missingIssues, issue)
		}
	}
	if len(missingIssues) != 2 {
		t.Fatalf("got %d missing_values issues, want 2 (fully-populated column excluded)", len(missingIssues))
	}
	if missingIssues[0].Column != "half" || missingIssues[0].MissingCount != 2 {
		t.Errorf("first issue = %+v, want half with 2 missing", missingIssues[0])
	}
	if missingIssues[1].Column != "empty" || missingIssues[1].MissingCount != 4 {
		t.Errorf("second issue = %+v, want empty with 4 missing", missingIssues[1])
	}
}

func TestConsistencyCheckerMixedTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		values     []string
		wantMixed  bool
		wantShapes map[string]int
	}{
		{
			name:       "integers and words",
			values:     []string{"1", "2", "hello", "3"},
			wantMixed:  true,
			wantShapes: map[string]int{"numeric": 3, "text": 1},
		},
		{
			name:       "dates and numbers",
			values:     []string{"2025-01-15", "42", "2025-02-20"},
			wantMixed:  true,
			wantShapes: map[string]int{"date": 2, "numeric": 1},
		},
		{
			name:      "pure integers",
			values:    []string{"1", "2", "3"},
			wantMixed: false,
		},
		{
			name:      "integers and floats are both numeric",
			values:    []string{"1", "2.5", "3"},
			wantMixed: false,
		},
		{
			name:      "booleans only",
			values:    []string{"true", "false", "yes"},
			wantMixed: false,
		},
		{
			name:      "missing cells do not count",
			values:    []string{"1", "", "2", ""},
			wantMixed: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ds := &model.Dataset{
				Source:  "test.csv",
				Columns: []model.Column{newTestColumn("col", model.StorageString, tt.values)},
			}
			_, issues := NewConsistencyChecker().Check(ds)

			var mixed *model.ConsistencyIssue
			for i := range issues {
				if issues[i].Kind == model.IssueMixedTypes {
					mixed = &issues[i]
				}
			}

			if (mixed != nil) != tt.wantMixed {
				t.Fatalf("mixed_types flagged = %v, want %v", mixed != nil, tt.wantMixed)
			}
			if !tt.wantMixed {
				return
			}
			for shape, count := range tt.wantShapes {
				if mixed.Shapes[shape] != count {
					t.Errorf("shape %q count = %d, want %d", shape, mixed.Shapes[shape], count)
				}
			}
		})
	}
}

func TestConsistencyCheckerConstantValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		values       []string
		wantConstant bool
		wantValue    string
	}{
		{
			name:         "ten identical values",
			values:       []string{"USA", "USA", "USA", "USA", "USA", "USA", "USA", "USA", "USA", "USA"},
			wantConstant: true,
			wantValue:    "USA",
		},
		{
			name:         "identical among missing",
			values:       []string{"x", "", "x", ""},
			wantConstant: true,
			wantValue:    "x",
		},
		{
			name:         "two distinct values",
			values:       []string{"a", "b", "a"},
			wantConstant: false,
		},
		{
			name:         "single present value is not constant",
			values:       []string{"x", "", ""},
			wantConstant: false,
		},
		{
			name:         "all missing",
			values:       []string{"", "", ""},
			wantConstant: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ds := &model.Dataset{
				Source:  "test.csv",
				Columns: []model.Column{newTestColumn("col", model.StorageString, tt.values)},
			}
			_, issues := NewConsistencyChecker().Check(ds)

			var constant *model.ConsistencyIssue
			for i := range issues {
				if issues[i].Kind == model.IssueConstantValue {
					constant = &issues[i]
				}
			}

			if (constant != nil) != tt.wantConstant {
				t.Fatalf("constant_value flagged = %v, want %v", constant != nil, tt.wantConstant)
			}
			if tt.wantConstant && constant.Value != tt.wantValue {
				t.Errorf("constant value = %q, want %q", constant.Value, tt.wantValue)
			}
		})
	}
}

func TestBroadShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  string
	}{
		{value: "42", want: "numeric"},
		{value: "4.2", want: "numeric"},
		{value: "-1e3", want: "numeric"},
		{value: "2025-01-15", want: "date"},
		{value: "true", want: "boolean"},
		{value: "No", want: "boolean"},
		{value: "hello", want: "text"},
		{value: "120/80", want: "text"},
	}

	for _, tt := range tests {
		tt := tt
		if got := BroadShape(tt.value); got != tt.want {
			t.Errorf("BroadShape(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
