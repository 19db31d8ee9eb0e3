package access

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Formatter renders a Report for interactive display. The JSON/YAML
// marshalers on Report are the machine-readable counterparts.
type Formatter interface {
	FormatReport(report *Report)
}

func NewFormatter(w io.Writer) Formatter {
	return &formatter{writer: w}
}

type formatter struct {
	writer io.Writer

	indent int

	padNext  bool
	lineHead bool
}

func (f *formatter) writeString(s string) {
	_, _ = f.writer.Write([]byte(s))
}

func (f *formatter) writeIndent() *formatter {
	if f.lineHead {
		f.writeString(strings.Repeat("\t", f.indent))
	}
	f.lineHead = false
	f.padNext = false

	return f
}

func (f *formatter) WriteNewline() *formatter {
	f.writeString("\n")
	f.lineHead = true
	f.padNext = false

	return f
}

func (f *formatter) WriteWord(word string) *formatter {
	if f.lineHead {
		f.writeIndent()
	}
	if f.padNext {
		f.writeString(" ")
	}
	f.writeString(strings.TrimSpace(word))
	f.padNext = true

	return f
}

func (f *formatter) WriteString(s string) *formatter {
	if f.lineHead {
		f.writeIndent()
	}
	if f.padNext {
		f.writeString(" ")
	}
	f.writeString(s)
	f.padNext = false

	return f
}

func (f *formatter) IncrementIndent() {
	f.indent++
}

func (f *formatter) DecrementIndent() {
	f.indent--
}

func (f *formatter) FormatReport(report *Report) {
	f.WriteWord("AccessReport").WriteWord("{").WriteNewline()
	f.IncrementIndent()

	f.formatSummary(report.Summary)

	rootTypes := make([]string, 0, len(report.RootTypeAccess))
	for name := range report.RootTypeAccess {
		rootTypes = append(rootTypes, name)
	}
	sort.Strings(rootTypes)
	for _, name := range rootTypes {
		f.formatRootType(name, report.RootTypeAccess[name])
	}

	customTypes := make([]string, 0, len(report.CustomTypeAccess))
	for name := range report.CustomTypeAccess {
		customTypes = append(customTypes, name)
	}
	sort.Strings(customTypes)
	for _, name := range customTypes {
		f.formatCustomType(name, report.CustomTypeAccess[name])
	}

	f.DecrementIndent()
	f.WriteWord("}").WriteNewline()
}

func (f *formatter) formatSummary(summary *Summary) {
	f.WriteWord("Summary").WriteWord("{").WriteNewline()
	f.IncrementIndent()

	f.WriteString(fmt.Sprintf("root fields: %d (accessible: %d, protected: %d)",
		summary.TotalRootFields, summary.AccessibleRootFields, summary.ProtectedRootFields))
	f.WriteNewline()
	f.WriteString(fmt.Sprintf("custom types: %d (with policies: %d)",
		summary.TotalCustomTypes, summary.CustomTypesWithPolicies))
	f.WriteNewline()

	f.DecrementIndent()
	f.WriteWord("}").WriteNewline()
}

func (f *formatter) formatRootType(typeName string, decisions []*RootFieldAccess) {
	f.WriteWord(typeName).WriteWord("{").WriteNewline()
	f.IncrementIndent()

	for _, decision := range decisions {
		f.WriteString(decision.Field)
		f.WriteString(": ")
		f.WriteString(decision.Access)
		f.WriteString(" (")
		f.WriteString(decision.Reason)
		f.WriteString(")")
		f.WriteNewline()
	}

	f.DecrementIndent()
	f.WriteWord("}").WriteNewline()
}

func (f *formatter) formatCustomType(typeName string, typeAccess *CustomTypeAccess) {
	f.WriteWord(typeName).WriteWord("{").WriteNewline()
	f.IncrementIndent()

	f.WriteString("effective access: ")
	f.WriteString(typeAccess.EffectiveAccess)
	f.WriteNewline()

	for _, accessPath := range typeAccess.AccessPaths {
		f.WriteString("via ")
		f.WriteString(strings.Join(accessPath.Path, " > "))
		f.WriteString(": ")
		f.WriteString(accessPath.Status)
		f.WriteNewline()
	}

	for _, field := range typeAccess.Fields {
		f.WriteString(field.Field)
		f.WriteString(": ")
		f.WriteString(field.Access)
		f.WriteString(" (")
		f.WriteString(field.Reason)
		f.WriteString(")")
		f.WriteNewline()
	}

	f.DecrementIndent()
	f.WriteWord("}").WriteNewline()
}
