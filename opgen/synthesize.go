package opgen

import (
	"strings"

	"github.com/schemascope/schemascope/schemaindex"
)

// DefaultMaxDepth bounds selection-set recursion when the caller has no
// configured depth.
const DefaultMaxDepth = 4

// Synthesize builds an executable query document for a single root field.
// Scalar leaves are selected as-is and object-typed fields recurse up to
// maxDepth. Recursion is depth-bounded, not cycle-detected: a
// self-referencing type unrolls fully to the depth budget instead of being
// cut at the first repeat.
func Synthesize(fieldName string, op *schemaindex.RootOperation, idx *schemaindex.Index, leafs schemaindex.LeafSet, maxDepth int) string {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	e := newEmitter()

	e.beginLine("query " + fieldName)
	if len(op.Args) != 0 {
		decls := make([]string, 0, len(op.Args))
		for _, arg := range op.Args {
			decls = append(decls, "$"+arg.Name+": "+arg.Type)
		}
		e.write("(" + strings.Join(decls, ", ") + ")")
	}
	e.openBlock()

	e.beginLine(fieldName)
	if len(op.Args) != 0 {
		actuals := make([]string, 0, len(op.Args))
		for _, arg := range op.Args {
			actuals = append(actuals, arg.Name+": $"+arg.Name)
		}
		e.write("(" + strings.Join(actuals, ", ") + ")")
	}

	if idx.Has(op.ReturnType) && !leafs.IsLeaf(op.ReturnType) {
		e.openBlock()
		selectFields(e, op.ReturnType, idx, leafs, 1, maxDepth)
		e.closeBlock()
	} else {
		e.endLine()
	}

	e.closeBlock()

	return e.String()
}

func selectFields(e *emitter, typeName string, idx *schemaindex.Index, leafs schemaindex.LeafSet, depth, maxDepth int) {
	if leafs.IsLeaf(typeName) || depth > maxDepth {
		return
	}

	for _, field := range idx.Fields(typeName) {
		if field.Name == "__typename" || field.IsDeprecated {
			continue
		}

		e.beginLine(field.Name)

		baseType := schemaindex.BaseTypeName(field.Type)
		if idx.Has(baseType) && !leafs.IsLeaf(baseType) && depth < maxDepth {
			e.openBlock()
			selectFields(e, baseType, idx, leafs, depth+1, maxDepth)
			e.closeBlock()
		} else {
			e.endLine()
		}
	}
}
