package schemaindex

import (
	"context"
	"sort"
	"strings"

	"github.com/schemascope/schemascope/internal/log"
	"github.com/vektah/gqlparser/v2/ast"
)

// Build indexes every object and interface type of the schema.
// Introspection and built-in types are skipped. Root operations are
// derived from the Query type's fields, argument types kept verbatim.
func Build(ctx context.Context, schema *ast.Schema) *Index {
	logger := log.FromContext(ctx)

	idx := New()

	typeNames := make([]string, 0, len(schema.Types))
	for name := range schema.Types {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	for _, name := range typeNames {
		def := schema.Types[name]
		if def.BuiltIn || strings.HasPrefix(def.Name, "__") {
			continue
		}
		switch def.Kind {
		case ast.Object, ast.Interface:
			// fallthrough to indexing
		default:
			continue
		}

		fields := make([]*FieldInfo, 0, len(def.Fields))
		for _, fieldDef := range def.Fields {
			if strings.HasPrefix(fieldDef.Name, "__") {
				continue
			}
			fields = append(fields, &FieldInfo{
				Name:         fieldDef.Name,
				Type:         fieldDef.Type.String(),
				IsDeprecated: fieldDef.Directives.ForName("deprecated") != nil,
			})
		}
		idx.Add(def.Name, fields...)
	}

	if queryDef := schema.Query; queryDef != nil {
		for _, fieldDef := range queryDef.Fields {
			if strings.HasPrefix(fieldDef.Name, "__") {
				continue
			}
			args := make([]*ArgInfo, 0, len(fieldDef.Arguments))
			for _, argDef := range fieldDef.Arguments {
				args = append(args, &ArgInfo{
					Name: argDef.Name,
					Type: argDef.Type.String(),
				})
			}
			idx.SetRootOperation(fieldDef.Name, &RootOperation{
				Args:       args,
				ReturnType: fieldDef.Type.Name(),
			})
		}
	}

	logger.V(1).Info("schema indexed", "types", len(idx.TypeNames()), "rootOperations", len(idx.RootOperationNames()))

	return idx
}
