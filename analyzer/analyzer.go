package analyzer

import (
	"context"
	"fmt"

	"github.com/schemascope/schemascope/access"
	"github.com/schemascope/schemascope/internal/log"
	"github.com/schemascope/schemascope/opgen"
	"github.com/schemascope/schemascope/policy"
	"github.com/schemascope/schemascope/schemaindex"
	"github.com/vektah/gqlparser/v2/ast"
)

type Config struct {
	Schema   *ast.Schema
	Policies []*policy.Policy

	// LeafTypes are additional stop types beyond the built-in scalars.
	// schemaindex.DefaultStopTypes when empty.
	LeafTypes []string

	// MaxDepth bounds operation synthesis. opgen.DefaultMaxDepth when zero.
	MaxDepth int
}

// Analyzer is the entry point for both analyses. It indexes the schema
// once at construction; every method call after that is a pure
// computation over that snapshot, safe for concurrent use.
type Analyzer struct {
	idx      *schemaindex.Index
	policies []*policy.Policy
	leafs    schemaindex.LeafSet
	maxDepth int
}

func New(ctx context.Context, cfg *Config) (*Analyzer, error) {
	if cfg == nil || cfg.Schema == nil {
		return nil, fmt.Errorf("schema is required")
	}

	err := policy.Validate(cfg.Policies)
	if err != nil {
		return nil, err
	}

	leafTypes := cfg.LeafTypes
	if len(leafTypes) == 0 {
		leafTypes = schemaindex.DefaultStopTypes
	}

	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = opgen.DefaultMaxDepth
	}

	a := &Analyzer{
		idx:      schemaindex.Build(ctx, cfg.Schema),
		policies: cfg.Policies,
		leafs:    schemaindex.NewLeafSet(leafTypes),
		maxDepth: maxDepth,
	}

	log.FromContext(ctx).V(1).Info("analyzer constructed",
		"types", len(a.idx.TypeNames()),
		"policies", len(cfg.Policies))

	return a, nil
}

func (a *Analyzer) Index() *schemaindex.Index {
	return a.idx
}

// SynthesizeOperation builds a query document for one root field.
func (a *Analyzer) SynthesizeOperation(ctx context.Context, rootField string) (string, error) {
	op, ok := a.idx.RootOperation(rootField)
	if !ok {
		return "", fmt.Errorf("unknown root field: %s", rootField)
	}
	return opgen.Synthesize(rootField, op, a.idx, a.leafs, a.maxDepth), nil
}

// SynthesizeOperations builds one query document per root field, keyed by
// root field name. The caller owns persistence.
func (a *Analyzer) SynthesizeOperations(ctx context.Context) map[string]string {
	docs := make(map[string]string, len(a.idx.RootOperationNames()))
	for _, name := range a.idx.RootOperationNames() {
		op, _ := a.idx.RootOperation(name)
		docs[name] = opgen.Synthesize(name, op, a.idx, a.leafs, a.maxDepth)
	}
	return docs
}

// EvaluateAccess computes the static access report for the schema under
// the configured policies.
func (a *Analyzer) EvaluateAccess(ctx context.Context) (*access.Report, error) {
	return access.Evaluate(ctx, a.idx, a.policies)
}
