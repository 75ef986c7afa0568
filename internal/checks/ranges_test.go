package checks

import (
	"testing"

	"github.com/nao1215/tablescan/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

func TestRangeCheckerNumericBounds(t *testing.T) {
	t.Parallel()

	ds := &model.Dataset{
		Source: "test.csv",
		Columns: []model.Column{
			newTestColumn("age", model.StorageInteger, []string{"34", "-2", "150", "45", ""}),
		},
	}
	rules := map[string]Rule{
		"age": {Min: floatPtr(0), Max: floatPtr(120)},
	}

	violations := NewRangeChecker(rules).Check(ds)

	if len(violations) != 2 {
		t.Fatalf("got %d violations, want 2: %+v", len(violations), violations)
	}
	if violations[0].Row != 1 || violations[0].Value != "-2" {
		t.Errorf("violations[0] = %+v, want row 1 value -2", violations[0])
	}
	if violations[0].Rule != "value must be >= 0" {
		t.Errorf("violations[0].Rule = %q, want %q", violations[0].Rule, "value must be >= 0")
	}
	if violations[1].Row != 2 || violations[1].Value != "150" {
		t.Errorf("violations[1] = %+v, want row 2 value 150", violations[1])
	}
	if violations[1].Rule != "value must be <= 120" {
		t.Errorf("violations[1].Rule = %q, want %q", violations[1].Rule, "value must be <= 120")
	}
}

func TestRangeCheckerBoundsAreInclusive(t *testing.T) {
	t.Parallel()

	ds := &model.Dataset{
		Source: "test.csv",
		Columns: []model.Column{
			newTestColumn("score", model.StorageFloat, []string{"0.0", "100.0", "50.5"}),
		},
	}
	rules := map[string]Rule{
		"score": {Min: floatPtr(0), Max: floatPtr(100)},
	}

	if violations := NewRangeChecker(rules).Check(ds); len(violations) != 0 {
		t.Errorf("boundary values violated the rule: %+v", violations)
	}
}

func TestRangeCheckerNonNumericCellsAreSkipped(t *testing.T) {
	t.Parallel()

	// Unparseable content is the outlier detector's finding, not a range
	// violation.
	ds := &model.Dataset{
		Source: "test.csv",
		Columns: []model.Column{
			newTestColumn("age", model.StorageString, []string{"34", "NaN", "invalid_age", "200"}),
		},
	}
	rules := map[string]Rule{
		"age": {Min: floatPtr(0), Max: floatPtr(120)},
	}

	violations := NewRangeChecker(rules).Check(ds)

	if len(violations) != 1 {
		t.Fatalf("got %d violations, want 1: %+v", len(violations), violations)
	}
	if violations[0].Row != 3 || violations[0].Value != "200" {
		t.Errorf("violations[0] = %+v, want row 3 value 200", violations[0])
	}
}

func TestRangeCheckerAllowedSet(t *testing.T) {
	t.Parallel()

	ds := &model.Dataset{
		Source: "test.csv",
		Columns: []model.Column{
			newTestColumn("gender", model.StorageString, []string{"M", "F", "Q", "F", ""}),
		},
	}
	rules := map[string]Rule{
		"gender": {Allowed: []string{"M", "F", "X"}},
	}

	violations := NewRangeChecker(rules).Check(ds)

	if len(violations) != 1 {
		t.Fatalf("got %d violations, want 1: %+v", len(violations), violations)
	}
	if violations[0].Row != 2 || violations[0].Value != "Q" {
		t.Errorf("violations[0] = %+v, want row 2 value Q", violations[0])
	}
	if violations[0].Rule != "value must be one of [M F X]" {
		t.Errorf("violations[0].Rule = %q", violations[0].Rule)
	}
}

func TestRangeCheckerUnknownColumn(t *testing.T) {
	t.Parallel()

	ds := &model.Dataset{
		Source: "test.csv",
		Columns: []model.Column{
			newTestColumn("age", model.StorageInteger, []string{"34"}),
		},
	}
	rules := map[string]Rule{
		"weight": {Min: floatPtr(0)},
	}

	violations := NewRangeChecker(rules).Check(ds)

	if len(violations) != 1 {
		t.Fatalf("got %d violations, want 1", len(violations))
	}
	if violations[0].Row != -1 || violations[0].Column != "weight" {
		t.Errorf("violations[0] = %+v, want column-level weight violation", violations[0])
	}
}

func TestRangeCheckerDeterministicOrder(t *testing.T) {
	t.Parallel()

	ds := &model.Dataset{
		Source: "test.csv",
		Columns: []model.Column{
			newTestColumn("b", model.StorageInteger, []string{"-1"}),
			newTestColumn("a", model.StorageInteger, []string{"-1"}),
		},
	}
	rules := map[string]Rule{
		"b": {Min: floatPtr(0)},
		"a": {Min: floatPtr(0)},
	}

	violations := NewRangeChecker(rules).Check(ds)

	if len(violations) != 2 {
		t.Fatalf("got %d violations, want 2", len(violations))
	}
	if violations[0].Column != "a" || violations[1].Column != "b" {
		t.Errorf("violations out of order: %+v", violations)
	}
}

func TestRuleIsZero(t *testing.T) {
	t.Parallel()

	if !(Rule{}).IsZero() {
		t.Error("empty rule should be zero")
	}
	if (Rule{Min: floatPtr(1)}).IsZero() {
		t.Error("rule with min should not be zero")
	}
	if (Rule{Allowed: []string{"a"}}).IsZero() {
		t.Error("rule with allowed set should not be zero")
	}
}
