// Package text provides an indentation tracking writer for plain text output
// such as command help.
package text

import (
	"fmt"
	"strings"
)

// Writer accumulates lines prefixed by the current indentation.
type Writer struct {
	indent string
	depth  int
	b      strings.Builder
}

// NewWriter returns a Writer that indents each level with indent.
func NewWriter(indent string) *Writer {
	return &Writer{indent: indent}
}

// Line writes s at the current depth. Empty lines carry no indentation.
func (w *Writer) Line(s string) {
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			w.b.WriteString(strings.Repeat(w.indent, w.depth))
			w.b.WriteString(l)
		}
		w.b.WriteByte('\n')
	}
}

func (w *Writer) Linef(format string, args ...any) {
	w.Line(fmt.Sprintf(format, args...))
}

// Indent increases the depth by one and returns the function restoring it.
func (w *Writer) Indent() (restore func()) {
	depth := w.depth
	w.depth++
	return func() {
		w.depth = depth
	}
}

// Block writes header and runs fn one level deeper. The depth is restored when
// fn returns, including by panic.
func (w *Writer) Block(header string, fn func()) {
	if header != "" {
		w.Line(header)
	}
	defer w.Indent()()
	fn()
}

// Depth returns the current indentation depth.
func (w *Writer) Depth() int {
	return w.depth
}

func (w *Writer) String() string {
	return w.b.String()
}
