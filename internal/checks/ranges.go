package checks

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/nao1215/tablescan/internal/model"
)

// Rule is one per-column value constraint: a numeric interval, an
// allowed-value set, or both. Nil bounds are open.
type Rule struct {
	// Min is the inclusive lower bound for numeric values.
	Min *float64

	// Max is the inclusive upper bound for numeric values.
	Max *float64

	// Allowed is the set of permitted values. Empty means any value.
	Allowed []string
}

// IsZero reports whether the rule constrains nothing.
func (r Rule) IsZero() bool {
	return r.Min == nil && r.Max == nil && len(r.Allowed) == 0
}

// RangeChecker flags per-row values violating the configured rules: numeric
// values outside [min, max] and categorical values outside the allowed set.
// Cells that do not parse as numbers are left to the outlier detector; this
// checker only judges values it can interpret under the rule.
type RangeChecker struct {
	// rules maps column names to their constraints.
	rules map[string]Rule

	// logger for structured logging.
	logger *slog.Logger
}

// RangeCheckerOption configures a RangeChecker.
type RangeCheckerOption func(*RangeChecker)

// WithRangeLogger sets a custom logger.
func WithRangeLogger(logger *slog.Logger) RangeCheckerOption {
	return func(rc *RangeChecker) {
		rc.logger = logger
	}
}

// NewRangeChecker creates a RangeChecker for the given rules.
func NewRangeChecker(rules map[string]Rule, opts ...RangeCheckerOption) *RangeChecker {
	rc := &RangeChecker{rules: rules}
	for _, opt := range opts {
		opt(rc)
	}
	if rc.logger == nil {
		rc.logger = slog.Default()
	}
	return rc
}

// Check returns range violations in deterministic order: rule columns sorted
// by name, rows in dataset order within each column. A rule referencing a
// column absent from the dataset yields one column-level violation with a
// row index of -1.
func (rc *RangeChecker) Check(ds *model.Dataset) []model.RangeViolation {
	names := make([]string, 0, len(rc.rules))
	for name := range rc.rules {
		names = append(names, name)
	}
	sort.Strings(names)

	var violations []model.RangeViolation
	for _, name := range names {
		rule := rc.rules[name]
		col, ok := ds.Column(name)
		if !ok {
			violations = append(violations, model.RangeViolation{
				Row:    -1,
				Column: name,
				Rule:   "column not found in dataset",
			})
			continue
		}
		violations = append(violations, rc.checkColumn(col, rule)...)
	}

	rc.logger.Debug("range check complete",
		"source", ds.Source,
		"rules", len(rc.rules),
		"violations", len(violations),
	)

	return violations
}

// checkColumn applies one rule to every present cell of a column.
func (rc *RangeChecker) checkColumn(col *model.Column, rule Rule) []model.RangeViolation {
	allowed := make(map[string]struct{}, len(rule.Allowed))
	for _, v := range rule.Allowed {
		allowed[v] = struct{}{}
	}

	var violations []model.RangeViolation
	for _, cell := range col.Cells {
		if cell.Missing {
			continue
		}
		value := strings.TrimSpace(cell.Raw)

		if rule.Min != nil || rule.Max != nil {
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				if rule.Min != nil && n < *rule.Min {
					violations = append(violations, model.RangeViolation{
						Row:    cell.Row,
						Column: col.Name,
						Value:  cell.Raw,
						Rule:   fmt.Sprintf("value must be >= %s", formatBound(*rule.Min)),
					})
				}
				if rule.Max != nil && n > *rule.Max {
					violations = append(violations, model.RangeViolation{
						Row:    cell.Row,
						Column: col.Name,
						Value:  cell.Raw,
						Rule:   fmt.Sprintf("value must be <= %s", formatBound(*rule.Max)),
					})
				}
			}
		}

		if len(allowed) > 0 {
			if _, ok := allowed[value]; !ok {
				violations = append(violations, model.RangeViolation{
					Row:    cell.Row,
					Column: col.Name,
					Value:  cell.Raw,
					Rule:   fmt.Sprintf("value must be one of [%s]", strings.Join(rule.Allowed, " ")),
				})
			}
		}
	}
	return violations
}

// formatBound renders a bound without a trailing ".0" for whole numbers.
func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
