package checks

import (
	"log/slog"

	"github.com/nao1215/tablescan/internal/model"
	"github.com/nao1215/tablescan/internal/pattern"
)

// broadShapeNames lists the coarse shape classes in report order.
var broadShapeNames = []string{"numeric", "date", "boolean", "text"}

// ConsistencyChecker computes baseline per-column signals independent of type
// inference: missing-value statistics, mixed broad shapes, and constant
// columns. The shapes here are deliberately coarser than the inference
// engine's pattern catalog; a cheap diversity signal is the goal, not a type.
type ConsistencyChecker struct {
	// logger for structured logging.
	logger *slog.Logger
}

// ConsistencyCheckerOption configures a ConsistencyChecker.
type ConsistencyCheckerOption func(*ConsistencyChecker)

// WithConsistencyLogger sets a custom logger.
func WithConsistencyLogger(logger *slog.Logger) ConsistencyCheckerOption {
	return func(c *ConsistencyChecker) {
		c.logger = logger
	}
}

// NewConsistencyChecker creates a ConsistencyChecker.
func NewConsistencyChecker(opts ...ConsistencyCheckerOption) *ConsistencyChecker {
	c := &ConsistencyChecker{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Check examines every column and returns missing-value statistics plus
// consistency issues, both in dataset column order.
//
// Statistics cover all columns, including fully-populated ones where the
// percentage is 0.0. Issues are emitted only for actual defects: columns with
// at least one missing cell, columns whose present cells span two or more
// broad shapes, and columns with a single repeated present value.
func (c *ConsistencyChecker) Check(ds *model.Dataset) ([]model.MissingStat, []model.ConsistencyIssue) {
	stats := make([]model.MissingStat, 0, len(ds.Columns))
	var issues []model.ConsistencyIssue

	for i := range ds.Columns {
		col := &ds.Columns[i]
		total := len(col.Cells)

		missing := col.MissingCount()
		percent := 0.0
		if total > 0 {
			percent = float64(missing) / float64(total)
		}
		stats = append(stats, model.MissingStat{
			Column:  col.Name,
			Count:   missing,
			Percent: percent,
		})
		if missing > 0 {
			issues = append(issues, model.ConsistencyIssue{
				Column:         col.Name,
				Kind:           model.IssueMissingValues,
				MissingCount:   missing,
				MissingPercent: percent,
			})
		}

		shapes, distinct := c.profileColumn(col)
		if len(shapes) >= 2 {
			issues = append(issues, model.ConsistencyIssue{
				Column: col.Name,
				Kind:   model.IssueMixedTypes,
				Shapes: shapes,
			})
		}
		if len(distinct) == 1 && col.PresentCount() > 1 {
			issues = append(issues, model.ConsistencyIssue{
				Column: col.Name,
				Kind:   model.IssueConstantValue,
				Value:  soleKey(distinct),
			})
		}
	}

	c.logger.Debug("consistency check complete",
		"source", ds.Source,
		"columns", len(stats),
		"issues", len(issues),
	)

	return stats, issues
}

// profileColumn tallies present cells by broad shape and collects the set of
// distinct present values.
func (c *ConsistencyChecker) profileColumn(col *model.Column) (map[string]int, map[string]struct{}) {
	shapes := make(map[string]int)
	distinct := make(map[string]struct{})

	for _, cell := range col.Cells {
		if cell.Missing {
			continue
		}
		shapes[BroadShape(cell.Raw)]++
		distinct[cell.Raw] = struct{}{}
	}

	return shapes, distinct
}

// BroadShape classifies one present value into the coarse classes used by the
// mixed-types check: numeric, date, boolean, or text. Fine structured
// sub-patterns are ignored on purpose.
func BroadShape(raw string) string {
	switch {
	case pattern.IsNumeric(raw):
		return "numeric"
	case pattern.IsDate(raw):
		return "date"
	case pattern.IsBoolean(raw):
		return "boolean"
	default:
		return "text"
	}
}

// soleKey returns the only key of a single-element set.
func soleKey(set map[string]struct{}) string {
	for k := range set {
		return k
	}
	return ""
}
