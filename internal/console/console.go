// Package console writes the coloured status lines a CI log reader scans:
// info in blue, pass in green, failure in red, warnings in yellow.
//
// A Printer holds only its sink and a colour switch; there is no package
// state, so tests hand it a bytes.Buffer and read back plain text.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/boardci/internal/logging"
)

// Status marks.
const (
	CheckMark = "✓"
	CrossMark = "✗"
)

// Printer formats status messages onto a writer.
type Printer struct {
	w     io.Writer
	color bool
}

// New returns a Printer for w, enabling colour when w supports it.
func New(w io.Writer) *Printer {
	return &Printer{w: w, color: logging.SupportsColor(w)}
}

// NewPlain returns a Printer that never emits ANSI sequences.
func NewPlain(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Writer returns the underlying sink.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Info prints an informational line in bold blue.
func (p *Printer) Info(format string, args ...any) {
	p.line(color.FgBlue, format, args...)
}

// Pass prints a success line in bold green.
func (p *Printer) Pass(format string, args ...any) {
	p.line(color.FgGreen, format, args...)
}

// Fail prints a failure line in bold red.
func (p *Printer) Fail(format string, args ...any) {
	p.line(color.FgRed, format, args...)
}

// Warn prints a warning line in bold yellow.
func (p *Printer) Warn(format string, args ...any) {
	p.line(color.FgYellow, format, args...)
}

// Check prints a green check mark.
func (p *Printer) Check() {
	p.Pass(CheckMark)
}

// Cross prints a red cross mark.
func (p *Printer) Cross() {
	p.Fail(CrossMark)
}

// Output prints captured tool output in red, unindented, so compiler
// diagnostics stay copyable. Empty output prints nothing.
func (p *Printer) Output(out string) {
	out = strings.TrimSpace(out)
	if out == "" {
		return
	}
	p.line(color.FgRed, "%s", out)
}

func (p *Printer) line(attr color.Attribute, format string, args ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))
	if p.color {
		c := color.New(attr, color.Bold)
		c.EnableColor()
		msg = c.Sprint(msg)
	}
	fmt.Fprintln(p.w, msg)
}
