package access

import (
	"github.com/schemascope/schemascope/schemaindex"
)

// collectPaths records every type reachable from one root field by
// depth-first traversal of the field graph. The root field's own decision
// is stamped on every record; access is not recomputed per hop.
func (ev *evaluator) collectPaths(rootType string, field *schemaindex.FieldInfo, decision *RootFieldAccess, out map[string][]*AccessPath) {
	returnBase := schemaindex.BaseTypeName(field.Type)
	if !ev.idx.Has(returnBase) || schemaindex.IsRootTypeName(returnBase) {
		return
	}

	status := StatusBlocked
	if decision.Access == AccessAllowed {
		status = StatusAccessible
	}
	seed := &AccessPath{
		RootField: rootType + "." + field.Name,
		Status:    status,
		Reason:    decision.Reason,
		RuleName:  decision.RuleName,
		Condition: decision.Condition,
	}

	visited := map[string]bool{returnBase: true}
	ev.walk(returnBase, []string{seed.RootField}, visited, seed, out)
}

// walk records typeName and recurses into each field whose base type is
// indexed. The visited set tracks types on the current path only; a type
// is released on backtrack so other branches can reach and record it
// again via a different route.
func (ev *evaluator) walk(typeName string, path []string, visited map[string]bool, seed *AccessPath, out map[string][]*AccessPath) {
	out[typeName] = append(out[typeName], &AccessPath{
		RootField: seed.RootField,
		Path:      append([]string(nil), path...),
		Status:    seed.Status,
		Reason:    seed.Reason,
		RuleName:  seed.RuleName,
		Condition: seed.Condition,
	})

	for _, field := range ev.idx.Fields(typeName) {
		baseType := schemaindex.BaseTypeName(field.Type)
		if !ev.idx.Has(baseType) || schemaindex.IsRootTypeName(baseType) {
			continue
		}
		if visited[baseType] {
			continue
		}
		visited[baseType] = true
		ev.walk(baseType, append(path, field.Name), visited, seed, out)
		delete(visited, baseType)
	}
}
