package opgen

import (
	"strings"
)

type emitter struct {
	sb     strings.Builder
	indent int
}

func newEmitter() *emitter {
	return &emitter{}
}

func (e *emitter) beginLine(s string) *emitter {
	e.sb.WriteString(strings.Repeat("  ", e.indent))
	e.sb.WriteString(s)

	return e
}

func (e *emitter) write(s string) *emitter {
	e.sb.WriteString(s)

	return e
}

func (e *emitter) endLine() *emitter {
	e.sb.WriteString("\n")

	return e
}

func (e *emitter) openBlock() *emitter {
	e.sb.WriteString(" {\n")
	e.indent++

	return e
}

func (e *emitter) closeBlock() *emitter {
	e.indent--
	e.sb.WriteString(strings.Repeat("  ", e.indent))
	e.sb.WriteString("}\n")

	return e
}

func (e *emitter) String() string {
	return e.sb.String()
}
