// Package debug has helpers producing human readable dumps.
package debug

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TreeWriter builds indented outline, two spaces per level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

// WriteTo implements io.WriterTo.
func (tw *TreeWriter) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, tw.w.String())
	return int64(n), err
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Section writes heading with number of entries following it.
func (tw *TreeWriter) Section(depth int, label string, count int) {
	tw.Line(depth, "%s (%d)", label, count)
}

// TextBlock writes "label: value" with value quoted, so whitespace and
// control characters are visible.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
