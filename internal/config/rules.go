package config

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/nao1215/tablescan/internal/checks"
)

// RulesFile holds the declared schema and value constraints loaded from a
// .tablescan rules file. All parts are optional; an empty file is valid and
// constrains nothing.
type RulesFile struct {
	// MinRows overrides the minimum row count when positive.
	MinRows int

	// Schema maps column names to declared storage types
	// (integer, float, boolean, date, string).
	Schema map[string]string

	// Rules maps column names to their value constraints.
	Rules map[string]checks.Rule
}

// rawRulesFile is the YAML shape of the rules file. Rule payloads are kept
// loosely typed because YAML readily produces int where float is meant and
// scalar where list is meant; coercion happens in toRulesFile.
type rawRulesFile struct {
	MinRows int                       `yaml:"minRows"`
	Schema  map[string]string         `yaml:"schema"`
	Rules   map[string]map[string]any `yaml:"rules"`
}

// toRulesFile validates and coerces the raw YAML payload.
// Malformed rules are rejected here, at load time, so that a bad rules file
// fails the run before any dataset is read.
func (raw *rawRulesFile) toRulesFile() (*RulesFile, error) {
	if raw.MinRows < 0 {
		return nil, fmt.Errorf("minRows must be non-negative, got %d", raw.MinRows)
	}

	if err := checks.ValidateSchemaTypes(raw.Schema); err != nil {
		return nil, err
	}

	rules := make(map[string]checks.Rule, len(raw.Rules))
	for column, payload := range raw.Rules {
		rule, err := coerceRule(payload)
		if err != nil {
			return nil, fmt.Errorf("rule for column %q: %w", column, err)
		}
		rules[column] = rule
	}

	return &RulesFile{
		MinRows: raw.MinRows,
		Schema:  raw.Schema,
		Rules:   rules,
	}, nil
}

// coerceRule converts one loosely-typed rule payload into a checks.Rule.
// Unknown keys are rejected so typos (e.g. "maximum") surface immediately
// instead of silently constraining nothing.
func coerceRule(payload map[string]any) (checks.Rule, error) {
	var rule checks.Rule

	for key, value := range payload {
		switch key {
		case "min":
			f, err := cast.ToFloat64E(value)
			if err != nil {
				return checks.Rule{}, fmt.Errorf("min is not numeric: %w", err)
			}
			rule.Min = &f
		case "max":
			f, err := cast.ToFloat64E(value)
			if err != nil {
				return checks.Rule{}, fmt.Errorf("max is not numeric: %w", err)
			}
			rule.Max = &f
		case "allowed":
			values, err := cast.ToStringSliceE(value)
			if err != nil {
				return checks.Rule{}, fmt.Errorf("allowed is not a list: %w", err)
			}
			rule.Allowed = values
		default:
			return checks.Rule{}, fmt.Errorf("unknown rule key %q", key)
		}
	}

	if rule.Min != nil && rule.Max != nil && *rule.Min > *rule.Max {
		return checks.Rule{}, fmt.Errorf("min %v exceeds max %v", *rule.Min, *rule.Max)
	}

	return rule, nil
}
