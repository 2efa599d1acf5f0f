// Package report narrates command progress and renders command results.
package report

import (
	"fmt"
	"io"
	"os"
)

// Narrator receives human-readable progress lines.
type Narrator interface {
	// Info prints a plain progress line.
	Info(format string, args ...any)

	// Success prints a line prefixed with a check mark.
	Success(format string, args ...any)

	// Warn prints a line prefixed with a warning sign.
	Warn(format string, args ...any)

	// Error prints a line prefixed with "Error: ".
	Error(format string, args ...any)
}

type style int

const (
	styleNormal style = iota
	styleError
	styleWarning
	styleSuccess
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorBold   = "\033[1m"
)

// Console writes narration to a writer, coloring it on terminals.
type Console struct {
	out       io.Writer
	useColors bool
}

var _ Narrator = (*Console)(nil)

// NewConsole returns a Console writing to out. Colors are enabled only when
// out is a character device.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out, useColors: isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (c *Console) print(s style, message string) {
	if c.useColors {
		switch s {
		case styleError:
			message = colorRed + colorBold + message + colorReset
		case styleWarning:
			message = colorYellow + message + colorReset
		case styleSuccess:
			message = colorGreen + message + colorReset
		}
	}
	fmt.Fprintln(c.out, message)
}

func (c *Console) Info(format string, args ...any) {
	c.print(styleNormal, fmt.Sprintf(format, args...))
}

func (c *Console) Success(format string, args ...any) {
	c.print(styleSuccess, "✓ "+fmt.Sprintf(format, args...))
}

func (c *Console) Warn(format string, args ...any) {
	c.print(styleWarning, "⚠ "+fmt.Sprintf(format, args...))
}

func (c *Console) Error(format string, args ...any) {
	c.print(styleError, "Error: "+fmt.Sprintf(format, args...))
}

// Discard is a Narrator that prints nothing. Structured output modes use it
// so that stdout carries only the result record.
var Discard Narrator = discard{}

type discard struct{}

func (discard) Info(string, ...any)    {}
func (discard) Success(string, ...any) {}
func (discard) Warn(string, ...any)    {}
func (discard) Error(string, ...any)   {}
