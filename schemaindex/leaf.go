package schemaindex

var specifiedScalarNames = []string{
	"String",
	"Int",
	"Float",
	"Boolean",
	"ID",
}

// DefaultStopTypes are the additional leaf types assumed when the caller
// doesn't configure its own set. These commonly appear as custom scalars
// that carry no sub-selectable fields.
var DefaultStopTypes = []string{
	"Date",
	"DateTime",
	"Time",
	"JSON",
}

func IsSpecifiedScalarName(typeName string) bool {
	for _, name := range specifiedScalarNames {
		if name == typeName {
			return true
		}
	}
	return false
}

// LeafSet is the set of type names that stop field-selection recursion.
type LeafSet map[string]bool

// NewLeafSet builds a LeafSet from the built-in scalars plus the given
// additional stop types. Pass DefaultStopTypes when there is no
// caller-provided configuration.
func NewLeafSet(additional []string) LeafSet {
	ls := make(LeafSet, len(specifiedScalarNames)+len(additional))
	for _, name := range specifiedScalarNames {
		ls[name] = true
	}
	for _, name := range additional {
		ls[name] = true
	}
	return ls
}

func (ls LeafSet) IsLeaf(typeName string) bool {
	return ls[typeName]
}
