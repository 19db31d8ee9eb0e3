package access

import (
	"context"
	"errors"
	"testing"

	testlogr "github.com/go-logr/logr/testing"
	"github.com/schemascope/schemascope/internal/log"
	"github.com/schemascope/schemascope/policy"
	"github.com/schemascope/schemascope/schemaindex"
)

func testContext(t *testing.T) context.Context {
	ctx := context.Background()
	return log.WithLogger(ctx, testlogr.NewTestLogger(t))
}

func buildUserIndex() *schemaindex.Index {
	idx := schemaindex.New()
	idx.Add("Query",
		&schemaindex.FieldInfo{Name: "a", Type: "User"},
		&schemaindex.FieldInfo{Name: "b", Type: "String"},
	)
	idx.Add("User",
		&schemaindex.FieldInfo{Name: "id", Type: "ID!"},
		&schemaindex.FieldInfo{Name: "name", Type: "String"},
	)
	return idx
}

func TestEvaluate_noPolicies(t *testing.T) {
	report, err := Evaluate(testContext(t), buildUserIndex(), nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, decision := range report.RootTypeAccess["Query"] {
		if decision.Access != AccessAllowed {
			t.Errorf("%s should be allowed without policies, got %s", decision.Field, decision.Access)
		}
		if decision.Condition != "true" {
			t.Errorf("%s condition = %q, expect true", decision.Field, decision.Condition)
		}
		if decision.Reason != "no policies defined" {
			t.Errorf("%s reason = %q", decision.Field, decision.Reason)
		}
	}

	userAccess := report.CustomTypeAccess["User"]
	if userAccess.EffectiveAccess != AccessInherited {
		t.Errorf("User effective access = %q, expect inherited", userAccess.EffectiveAccess)
	}
	for _, field := range userAccess.Fields {
		if field.Access != AccessInherited {
			t.Errorf("User.%s access = %q, expect inherited", field.Field, field.Access)
		}
		if field.RuleName != nil || field.Condition != nil {
			t.Errorf("User.%s ruleName/condition should be null", field.Field)
		}
	}
}

func TestEvaluate_policyPresentDefaultDeny(t *testing.T) {
	policies := []*policy.Policy{
		{
			Type: "Query",
			Rules: []*policy.Rule{
				{Name: "allow-a", Condition: "true", Fields: []string{"a"}},
			},
			Default: &policy.Default{Condition: "false"},
		},
	}

	report, err := Evaluate(testContext(t), buildUserIndex(), policies)
	if err != nil {
		t.Fatal(err)
	}

	decisions := report.RootTypeAccess["Query"]
	if len(decisions) != 2 {
		t.Fatalf("expect 2 root field decisions, got %d", len(decisions))
	}

	a := decisions[0]
	if a.Field != "a" || a.Access != AccessAllowed {
		t.Errorf("a should be allowed: %+v", a)
	}
	if a.RuleName == nil || *a.RuleName != "allow-a" {
		t.Errorf("a ruleName should be allow-a: %+v", a.RuleName)
	}

	b := decisions[1]
	if b.Field != "b" || b.Access != AccessDenied {
		t.Errorf("b should be denied: %+v", b)
	}
	if b.RuleName != nil {
		t.Errorf("b ruleName should be null, got %q", *b.RuleName)
	}
	if b.Condition != "false" {
		t.Errorf("b condition should be the policy default, got %q", b.Condition)
	}
}

func TestEvaluate_noPolicyForRootType(t *testing.T) {
	idx := buildUserIndex()
	policies := []*policy.Policy{
		{
			Type:    "Mutation",
			Rules:   []*policy.Rule{{Name: "nothing", Condition: "true", Fields: []string{"x"}}},
			Default: &policy.Default{Condition: "false"},
		},
	}

	report, err := Evaluate(testContext(t), idx, policies)
	if err != nil {
		t.Fatal(err)
	}

	for _, decision := range report.RootTypeAccess["Query"] {
		if decision.Access != AccessDenied {
			t.Errorf("%s should be denied, got %s", decision.Field, decision.Access)
		}
		if decision.Condition != "false" || decision.Reason != "no policy for this type" {
			t.Errorf("unexpected decision: %+v", decision)
		}
	}
}

func TestEvaluate_builtinFields(t *testing.T) {
	idx := schemaindex.New()
	idx.Add("Query",
		&schemaindex.FieldInfo{Name: "__schema", Type: "__Schema!"},
		&schemaindex.FieldInfo{Name: "_service", Type: "_Service!"},
		&schemaindex.FieldInfo{Name: "user", Type: "User"},
	)
	idx.Add("User", &schemaindex.FieldInfo{Name: "id", Type: "ID!"})

	policies := []*policy.Policy{
		{
			Type:    "Query",
			Rules:   []*policy.Rule{{Name: "deny-all", Condition: "false", Fields: []string{"user", "__schema", "_service"}}},
			Default: &policy.Default{Condition: "false"},
		},
	}

	report, err := Evaluate(testContext(t), idx, policies)
	if err != nil {
		t.Fatal(err)
	}

	decisions := report.RootTypeAccess["Query"]
	for _, decision := range decisions[:2] {
		if decision.Access != AccessAllowed {
			t.Errorf("built-in %s should be allowed regardless of rules, got %s", decision.Field, decision.Access)
		}
		if decision.Reason != "built-in field, always accessible" {
			t.Errorf("unexpected reason: %q", decision.Reason)
		}
	}
	if decisions[2].Access != AccessDenied {
		t.Errorf("user should be denied by deny-all, got %s", decisions[2].Access)
	}
}

func TestEvaluate_rulePrecedence(t *testing.T) {
	policies := []*policy.Policy{
		{
			Type: "Query",
			Rules: []*policy.Rule{
				{Name: "first", Condition: "claims.role == 'admin'", Fields: []string{"a"}},
				{Name: "second", Condition: "true", Fields: []string{"a"}},
			},
			Default: &policy.Default{Condition: "false"},
		},
	}

	report, err := Evaluate(testContext(t), buildUserIndex(), policies)
	if err != nil {
		t.Fatal(err)
	}

	a := report.RootTypeAccess["Query"][0]
	if a.RuleName == nil || *a.RuleName != "first" {
		t.Fatalf("first declared rule should win: %+v", a)
	}
	if a.Access != AccessDenied {
		t.Errorf("a should be denied by the first rule's opaque condition, got %s", a.Access)
	}
	if a.Condition != "claims.role == 'admin'" {
		t.Errorf("condition should come from the first rule, got %q", a.Condition)
	}
}

func TestEvaluate_customTypeWithPolicy(t *testing.T) {
	idx := buildUserIndex()
	policies := []*policy.Policy{
		{
			Type: "User",
			Rules: []*policy.Rule{
				{Name: "public-id", Condition: "true", Fields: []string{"id"}},
			},
			Default: &policy.Default{Condition: "claims.sub == id"},
		},
	}

	report, err := Evaluate(testContext(t), idx, policies)
	if err != nil {
		t.Fatal(err)
	}

	userAccess := report.CustomTypeAccess["User"]
	if !userAccess.HasPolicy {
		t.Fatal("User should have a policy")
	}
	if userAccess.EffectiveAccess != AccessControlled {
		t.Errorf("User effective access = %q, expect controlled", userAccess.EffectiveAccess)
	}

	fields := userAccess.Fields
	if len(fields) != 2 {
		t.Fatalf("expect 2 field classifications, got %d", len(fields))
	}
	id := fields[0]
	if id.Access != AccessControlled || id.RuleName == nil || *id.RuleName != "public-id" {
		t.Errorf("unexpected id classification: %+v", id)
	}
	name := fields[1]
	if name.Access != AccessControlled || name.RuleName != nil {
		t.Errorf("unexpected name classification: %+v", name)
	}
	if name.Condition == nil || *name.Condition != "claims.sub == id" {
		t.Errorf("name condition should be the policy default, got %v", name.Condition)
	}

	if report.Summary.CustomTypesWithPolicies != 1 {
		t.Errorf("CustomTypesWithPolicies = %d, expect 1", report.Summary.CustomTypesWithPolicies)
	}
}

func TestEvaluate_summaryArithmetic(t *testing.T) {
	policies := []*policy.Policy{
		{
			Type: "Query",
			Rules: []*policy.Rule{
				{Name: "allow-a", Condition: "true", Fields: []string{"a"}},
			},
			Default: &policy.Default{Condition: "false"},
		},
	}

	report, err := Evaluate(testContext(t), buildUserIndex(), policies)
	if err != nil {
		t.Fatal(err)
	}

	s := report.Summary
	if s.AccessibleRootFields+s.ProtectedRootFields != s.TotalRootFields {
		t.Errorf("accessible(%d) + protected(%d) != total(%d)",
			s.AccessibleRootFields, s.ProtectedRootFields, s.TotalRootFields)
	}
}

func TestEvaluate_invalidInput(t *testing.T) {
	_, err := Evaluate(testContext(t), buildUserIndex(), []*policy.Policy{nil})
	if err == nil {
		t.Fatal("expect error for malformed policy input")
	}

	var invalidErr *policy.InvalidInputError
	if !errors.As(err, &invalidErr) {
		t.Errorf("expect InvalidInputError, got %T", err)
	}
}
