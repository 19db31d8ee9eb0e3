package access

import (
	"encoding/json"
	"sort"

	"github.com/goccy/go-yaml"
)

// Root field decisions.
const (
	AccessAllowed = "allowed"
	AccessDenied  = "denied"
)

// Reachability path status.
const (
	StatusAccessible = "accessible"
	StatusBlocked    = "blocked"
)

// Custom type and custom type field classifications.
const (
	AccessBlocked    = "blocked"
	AccessControlled = "controlled"
	AccessInherited  = "inherited"
)

type Summary struct {
	TotalRootFields         int `json:"totalRootFields" yaml:"totalRootFields"`
	AccessibleRootFields    int `json:"accessibleRootFields" yaml:"accessibleRootFields"`
	ProtectedRootFields     int `json:"protectedRootFields" yaml:"protectedRootFields"`
	TotalCustomTypes        int `json:"totalCustomTypes" yaml:"totalCustomTypes"`
	CustomTypesWithPolicies int `json:"customTypesWithPolicies" yaml:"customTypesWithPolicies"`
}

type RootFieldAccess struct {
	Field     string  `json:"field" yaml:"field"`
	Access    string  `json:"access" yaml:"access"`
	RuleName  *string `json:"ruleName" yaml:"ruleName"`
	Condition string  `json:"condition" yaml:"condition"`
	Reason    string  `json:"reason" yaml:"reason"`
}

// AccessPath is one root-field-to-type route discovered by the
// reachability traversal. Status and its companions come from the root
// field's own decision, not from per-hop evaluation.
type AccessPath struct {
	RootField string   `json:"rootField" yaml:"rootField"`
	Path      []string `json:"path" yaml:"path"`
	Status    string   `json:"status" yaml:"status"`
	Reason    string   `json:"reason" yaml:"reason"`
	RuleName  *string  `json:"ruleName" yaml:"ruleName"`
	Condition string   `json:"condition" yaml:"condition"`
}

type FieldAccess struct {
	Field     string  `json:"field" yaml:"field"`
	Access    string  `json:"access" yaml:"access"`
	RuleName  *string `json:"ruleName" yaml:"ruleName"`
	Condition *string `json:"condition" yaml:"condition"`
	Reason    string  `json:"reason" yaml:"reason"`
}

type CustomTypeAccess struct {
	HasPolicy       bool           `json:"hasPolicy" yaml:"hasPolicy"`
	AccessPaths     []*AccessPath  `json:"accessPaths" yaml:"accessPaths"`
	EffectiveAccess string         `json:"effectiveAccess" yaml:"effectiveAccess"`
	Fields          []*FieldAccess `json:"fields" yaml:"fields"`
}

// Report is recomputed fresh on every evaluation and immutable once
// returned. Serialized output is byte-identical across runs on identical
// input: map keys marshal in sorted order, everything else in declaration
// order.
type Report struct {
	Summary          *Summary
	RootTypeAccess   map[string][]*RootFieldAccess
	CustomTypeAccess map[string]*CustomTypeAccess
}

var _ json.Marshaler = (*Report)(nil)
var _ yaml.InterfaceMarshaler = (*Report)(nil)

func (r *Report) MarshalJSON() ([]byte, error) {
	// encoding/json emits map keys in sorted order, which is exactly the
	// ordering contract of the report.
	type reportJSON struct {
		Summary          *Summary                      `json:"summary"`
		RootTypeAccess   map[string][]*RootFieldAccess `json:"rootTypeAccess"`
		CustomTypeAccess map[string]*CustomTypeAccess  `json:"customTypeAccess"`
	}
	return json.Marshal(&reportJSON{
		Summary:          r.Summary,
		RootTypeAccess:   r.RootTypeAccess,
		CustomTypeAccess: r.CustomTypeAccess,
	})
}

func (r *Report) MarshalYAML() (interface{}, error) {
	rootTypes := make(yaml.MapSlice, 0, len(r.RootTypeAccess))
	for _, name := range sortedKeysOfRootAccess(r.RootTypeAccess) {
		rootTypes = append(rootTypes, yaml.MapItem{Key: name, Value: r.RootTypeAccess[name]})
	}

	customTypes := make(yaml.MapSlice, 0, len(r.CustomTypeAccess))
	for _, name := range sortedKeysOfCustomAccess(r.CustomTypeAccess) {
		customTypes = append(customTypes, yaml.MapItem{Key: name, Value: r.CustomTypeAccess[name]})
	}

	return yaml.MapSlice{
		{Key: "summary", Value: r.Summary},
		{Key: "rootTypeAccess", Value: rootTypes},
		{Key: "customTypeAccess", Value: customTypes},
	}, nil
}

func sortedKeysOfRootAccess(m map[string][]*RootFieldAccess) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeysOfCustomAccess(m map[string]*CustomTypeAccess) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
