package schemaindex

import (
	"sort"
	"strings"
)

// RootTypeNames is the fixed set of operation root types.
// Every other type in an Index is a custom type.
var RootTypeNames = []string{"Query", "Mutation", "Subscription"}

func IsRootTypeName(name string) bool {
	for _, rootName := range RootTypeNames {
		if rootName == name {
			return true
		}
	}
	return false
}

type FieldInfo struct {
	Name         string
	Type         string // raw declared type, e.g. "[User!]!"
	IsDeprecated bool
}

type ArgInfo struct {
	Name string
	Type string // full declared type with wrappers, emitted verbatim
}

type RootOperation struct {
	Args       []*ArgInfo
	ReturnType string // base type name
}

// Index maps type names to their fields. Field order within a type is
// declaration order; type names are kept sorted so consumers iterating
// the index produce deterministic output.
type Index struct {
	typeNames []string
	fields    map[string][]*FieldInfo

	rootOpNames []string
	rootOps     map[string]*RootOperation
}

func New() *Index {
	return &Index{
		fields:  make(map[string][]*FieldInfo),
		rootOps: make(map[string]*RootOperation),
	}
}

func (idx *Index) Add(typeName string, fields ...*FieldInfo) {
	if _, ok := idx.fields[typeName]; !ok {
		pos := sort.SearchStrings(idx.typeNames, typeName)
		idx.typeNames = append(idx.typeNames, "")
		copy(idx.typeNames[pos+1:], idx.typeNames[pos:])
		idx.typeNames[pos] = typeName
	}
	idx.fields[typeName] = append(idx.fields[typeName], fields...)
}

func (idx *Index) Has(typeName string) bool {
	_, ok := idx.fields[typeName]
	return ok
}

func (idx *Index) Fields(typeName string) []*FieldInfo {
	return idx.fields[typeName]
}

// TypeNames returns all indexed type names in sorted order.
func (idx *Index) TypeNames() []string {
	return idx.typeNames
}

// RootTypes returns the root type names present in the index, in the
// fixed Query, Mutation, Subscription order.
func (idx *Index) RootTypes() []string {
	var names []string
	for _, rootName := range RootTypeNames {
		if idx.Has(rootName) {
			names = append(names, rootName)
		}
	}
	return names
}

// CustomTypes returns all non-root type names in sorted order.
func (idx *Index) CustomTypes() []string {
	var names []string
	for _, name := range idx.typeNames {
		if !IsRootTypeName(name) {
			names = append(names, name)
		}
	}
	return names
}

func (idx *Index) SetRootOperation(fieldName string, op *RootOperation) {
	if _, ok := idx.rootOps[fieldName]; !ok {
		idx.rootOpNames = append(idx.rootOpNames, fieldName)
	}
	idx.rootOps[fieldName] = op
}

func (idx *Index) RootOperation(fieldName string) (*RootOperation, bool) {
	op, ok := idx.rootOps[fieldName]
	return op, ok
}

// RootOperationNames returns the root field names in declaration order.
func (idx *Index) RootOperationNames() []string {
	return idx.rootOpNames
}

// BaseTypeName strips list and non-null wrapper markers from a raw
// declared type string. e.g. "[User!]!" -> "User".
func BaseTypeName(raw string) string {
	return strings.Trim(raw, "[]! \t")
}
