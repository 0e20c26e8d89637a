// Package console renders the user-facing output of the deployment tools.
// Diagnostics meant for operators go through zap instead.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const ruleWidth = 60

type Printer struct {
	out     io.Writer
	success *color.Color
	failure *color.Color
	warn    *color.Color
	title   *color.Color
	faint   *color.Color
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:     out,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow),
		title:   color.New(color.FgCyan, color.Bold),
		faint:   color.New(color.Faint),
	}
}

func (p *Printer) Banner(format string, a ...interface{}) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(p.out, "\n%s\n", rule)
	p.title.Fprintf(p.out, format+"\n", a...)
	fmt.Fprintf(p.out, "%s\n\n", rule)
}

func (p *Printer) Rule() {
	fmt.Fprintln(p.out, strings.Repeat("-", ruleWidth))
}

func (p *Printer) Success(format string, a ...interface{}) {
	p.success.Fprintf(p.out, "✓ "+format+"\n", a...)
}

func (p *Printer) Failure(format string, a ...interface{}) {
	p.failure.Fprintf(p.out, "❌ "+format+"\n", a...)
}

func (p *Printer) Warn(format string, a ...interface{}) {
	p.warn.Fprintf(p.out, "⚠️  "+format+"\n", a...)
}

func (p *Printer) Info(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", a...)
}

// Field prints an indented "key: value" line.
func (p *Printer) Field(key string, value interface{}) {
	fmt.Fprintf(p.out, "   %s: %v\n", key, value)
}

// Hints prints a numbered troubleshooting list under a heading.
func (p *Printer) Hints(heading string, hints ...string) {
	fmt.Fprintf(p.out, "\n%s\n", heading)
	for i, h := range hints {
		p.faint.Fprintf(p.out, "%d. %s\n", i+1, h)
	}
}
