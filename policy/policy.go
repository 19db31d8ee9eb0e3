package policy

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// AllowCondition is the only condition value the evaluator treats as
// statically allowed. Every other condition string is opaque and reported
// as denied in static summaries, whatever it might evaluate to at runtime.
const AllowCondition = "true"

type Policy struct {
	Type    string   `yaml:"type"`
	Rules   []*Rule  `yaml:"rules"`
	Default *Default `yaml:"default"`
}

type Rule struct {
	Name      string   `yaml:"name"`
	Condition string   `yaml:"condition"`
	Fields    []string `yaml:"fields"`
}

type Default struct {
	Condition string `yaml:"condition"`
}

// DefaultCondition returns the policy's default condition, or "false"
// when the document omitted the default block.
func (p *Policy) DefaultCondition() string {
	if p.Default == nil || p.Default.Condition == "" {
		return "false"
	}
	return p.Default.Condition
}

// MatchRule returns the first rule in declaration order that lists the
// field name. Later rules are never consulted for a matched field.
func (p *Policy) MatchRule(fieldName string) *Rule {
	for _, rule := range p.Rules {
		for _, name := range rule.Fields {
			if name == fieldName {
				return rule
			}
		}
	}
	return nil
}

// ByType folds the policy list into a type name lookup map.
// On duplicate type names the last policy wins.
func ByType(policies []*Policy) map[string]*Policy {
	byType := make(map[string]*Policy, len(policies))
	for _, p := range policies {
		byType[p.Type] = p
	}
	return byType
}

// InvalidInputError reports policies that violate the shape contract.
// Shape violations indicate a bug in the producing collaborator, so they
// surface as errors instead of being folded into the evaluation result.
type InvalidInputError struct {
	Err error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid policy input: %s", e.Err)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// Validate checks the policy list against the shape contract.
// Field names or type names that don't exist in the schema are not
// errors; the evaluator simply finds no match for them.
func Validate(policies []*Policy) error {
	var errs []error

	for i, p := range policies {
		if p == nil {
			errs = append(errs, fmt.Errorf("policies[%d]: policy is nil", i))
			continue
		}
		if p.Type == "" {
			errs = append(errs, fmt.Errorf("policies[%d]: type name is empty", i))
		}
		for j, rule := range p.Rules {
			if rule == nil {
				errs = append(errs, fmt.Errorf("policies[%d] %s: rules[%d] is nil", i, p.Type, j))
				continue
			}
			if rule.Name == "" {
				errs = append(errs, fmt.Errorf("policies[%d] %s: rules[%d] name is empty", i, p.Type, j))
			}
		}
	}

	if len(errs) != 0 {
		return &InvalidInputError{Err: multierror.Append(nil, errs...)}
	}

	return nil
}
