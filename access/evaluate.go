package access

import (
	"context"
	"fmt"

	"github.com/schemascope/schemascope/internal/log"
	"github.com/schemascope/schemascope/policy"
	"github.com/schemascope/schemascope/schemaindex"
)

// builtinFieldNames are always accessible regardless of policies.
var builtinFieldNames = map[string]bool{
	"__type":     true,
	"__schema":   true,
	"__typename": true,
	"_service":   true,
}

// Evaluate computes the static access report for the indexed schema under
// the given policies. Conditions are opaque strings: only the literal
// "true" counts as statically allowed, everything else reports as denied
// even though a runtime predicate might still pass.
func Evaluate(ctx context.Context, idx *schemaindex.Index, policies []*policy.Policy) (*Report, error) {
	err := policy.Validate(policies)
	if err != nil {
		return nil, err
	}

	logger := log.FromContext(ctx)

	ev := &evaluator{
		idx:          idx,
		policies:     policies,
		policyByType: policy.ByType(policies),
	}

	report := &Report{
		Summary:          &Summary{},
		RootTypeAccess:   make(map[string][]*RootFieldAccess),
		CustomTypeAccess: make(map[string]*CustomTypeAccess),
	}

	pathsByType := make(map[string][]*AccessPath)

	for _, rootType := range idx.RootTypes() {
		decisions := make([]*RootFieldAccess, 0, len(idx.Fields(rootType)))
		for _, field := range idx.Fields(rootType) {
			decision := ev.decideRootField(rootType, field.Name)
			decisions = append(decisions, decision)

			report.Summary.TotalRootFields++
			if decision.Access == AccessAllowed {
				report.Summary.AccessibleRootFields++
			} else {
				report.Summary.ProtectedRootFields++
			}

			ev.collectPaths(rootType, field, decision, pathsByType)
		}
		report.RootTypeAccess[rootType] = decisions
	}

	for _, typeName := range idx.CustomTypes() {
		report.CustomTypeAccess[typeName] = ev.classifyCustomType(typeName, pathsByType[typeName])
		report.Summary.TotalCustomTypes++
		if report.CustomTypeAccess[typeName].HasPolicy {
			report.Summary.CustomTypesWithPolicies++
		}
	}

	logger.V(1).Info("access evaluated",
		"rootFields", report.Summary.TotalRootFields,
		"customTypes", report.Summary.TotalCustomTypes)

	return report, nil
}

type evaluator struct {
	idx          *schemaindex.Index
	policies     []*policy.Policy
	policyByType map[string]*policy.Policy
}

func (ev *evaluator) decideRootField(rootType, fieldName string) *RootFieldAccess {
	if builtinFieldNames[fieldName] {
		return &RootFieldAccess{
			Field:     fieldName,
			Access:    AccessAllowed,
			Condition: policy.AllowCondition,
			Reason:    "built-in field, always accessible",
		}
	}

	if len(ev.policies) == 0 {
		return &RootFieldAccess{
			Field:     fieldName,
			Access:    AccessAllowed,
			Condition: policy.AllowCondition,
			Reason:    "no policies defined",
		}
	}

	pol, ok := ev.policyByType[rootType]
	if !ok {
		return &RootFieldAccess{
			Field:     fieldName,
			Access:    AccessDenied,
			Condition: "false",
			Reason:    "no policy for this type",
		}
	}

	if rule := pol.MatchRule(fieldName); rule != nil {
		ruleName := rule.Name
		if rule.Condition == policy.AllowCondition {
			return &RootFieldAccess{
				Field:     fieldName,
				Access:    AccessAllowed,
				RuleName:  &ruleName,
				Condition: rule.Condition,
				Reason:    fmt.Sprintf("allowed by rule %q", rule.Name),
			}
		}
		return &RootFieldAccess{
			Field:     fieldName,
			Access:    AccessDenied,
			RuleName:  &ruleName,
			Condition: rule.Condition,
			Reason:    fmt.Sprintf("denied by rule %q (condition: %s)", rule.Name, rule.Condition),
		}
	}

	defaultCondition := pol.DefaultCondition()
	return &RootFieldAccess{
		Field:     fieldName,
		Access:    AccessDenied,
		Condition: defaultCondition,
		Reason:    fmt.Sprintf("no matching rule, policy default applies (condition: %s)", defaultCondition),
	}
}

func (ev *evaluator) classifyCustomType(typeName string, paths []*AccessPath) *CustomTypeAccess {
	if paths == nil {
		paths = make([]*AccessPath, 0)
	}

	pol, hasPolicy := ev.policyByType[typeName]

	var effectiveAccess string
	switch {
	case hasPolicy:
		effectiveAccess = AccessControlled
	case allBlocked(paths):
		// zero recorded paths is vacuously all-blocked
		effectiveAccess = AccessBlocked
	default:
		effectiveAccess = AccessInherited
	}

	fields := make([]*FieldAccess, 0, len(ev.idx.Fields(typeName)))
	for _, field := range ev.idx.Fields(typeName) {
		if hasPolicy {
			fields = append(fields, classifyControlledField(pol, field.Name))
			continue
		}
		fields = append(fields, &FieldAccess{
			Field:  field.Name,
			Access: AccessInherited,
			Reason: "no policy, access depends on root type access",
		})
	}

	return &CustomTypeAccess{
		HasPolicy:       hasPolicy,
		AccessPaths:     paths,
		EffectiveAccess: effectiveAccess,
		Fields:          fields,
	}
}

func classifyControlledField(pol *policy.Policy, fieldName string) *FieldAccess {
	if rule := pol.MatchRule(fieldName); rule != nil {
		ruleName := rule.Name
		condition := rule.Condition
		reason := fmt.Sprintf("denied by rule %q (condition: %s)", rule.Name, rule.Condition)
		if rule.Condition == policy.AllowCondition {
			reason = fmt.Sprintf("allowed by rule %q", rule.Name)
		}
		return &FieldAccess{
			Field:     fieldName,
			Access:    AccessControlled,
			RuleName:  &ruleName,
			Condition: &condition,
			Reason:    reason,
		}
	}

	condition := pol.DefaultCondition()
	reason := fmt.Sprintf("denied by policy default (condition: %s)", condition)
	if condition == policy.AllowCondition {
		reason = "allowed by policy default"
	}
	return &FieldAccess{
		Field:     fieldName,
		Access:    AccessControlled,
		Condition: &condition,
		Reason:    reason,
	}
}

func allBlocked(paths []*AccessPath) bool {
	for _, p := range paths {
		if p.Status != StatusBlocked {
			return false
		}
	}
	return true
}
