// Package diagfmt renders diagnostics and token dumps for terminal output.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"langtwo/internal/diag"
	"langtwo/internal/source"
)

// PrettyOpts configures diagnostic rendering.
type PrettyOpts struct {
	Color bool
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
)

// Pretty writes each diagnostic with its source line and a caret marker.
func Pretty(w io.Writer, bag *diag.Bag, file *source.File, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, &d, file, opts)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, file *source.File, opts PrettyOpts) {
	head := fmt.Sprintf("%s[%s]", severityWord(d.Severity), d.Code.ID())
	if opts.Color {
		head = severityColor(d.Severity).Sprint(head)
	}
	fmt.Fprintf(w, "%s: %s\n", head, d.Message)

	pos := file.Position(d.Primary.Start)
	fmt.Fprintf(w, "  --> %s:%d:%d\n", file.Path, pos.Line, pos.Col)

	line := file.Line(pos.Line)
	if line == "" && pos.Col == 1 {
		return
	}
	fmt.Fprintf(w, "%4d | %s\n", pos.Line, line)

	// Pad by display width so the caret lands right under wide runes too.
	prefix := line
	if int(pos.Col-1) <= len(line) {
		prefix = line[:pos.Col-1]
	}
	pad := runewidth.StringWidth(prefix)
	marker := strings.Repeat("^", markerWidth(line, pos.Col, d.Primary.Len()))
	if opts.Color {
		marker = severityColor(d.Severity).Sprint(marker)
	}
	fmt.Fprintf(w, "     | %s%s\n", strings.Repeat(" ", pad), marker)
}

// markerWidth sizes the caret run to the display width of the marked text,
// clamped to the rest of the line and never below one caret.
func markerWidth(line string, col uint32, spanLen uint32) int {
	start := int(col - 1)
	if start > len(line) {
		return 1
	}
	end := min(start+int(spanLen), len(line))
	width := runewidth.StringWidth(line[start:end])
	return max(width, 1)
}

func severityWord(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	}
	return "info"
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	}
	return infoColor
}
