// Package report renders diagnostics, the run summary and fix output.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"patchlint/internal/lint"
)

// FixSuffix is appended to the input name for fixed output; the original
// is never overwritten implicitly.
const FixSuffix = ".EXPERIMENTAL-FIX"

// Printer writes the human-readable report.
type Printer struct {
	w     io.Writer
	terse bool
	min   lint.Severity

	check *color.Color
	warn  *color.Color
	err   *color.Color
}

func NewPrinter(w io.Writer, colorize, terse bool, min lint.Severity) *Printer {
	p := &Printer{
		w:     w,
		terse: terse,
		min:   min,
		check: color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		err:   color.New(color.FgRed),
	}
	if colorize {
		p.check.EnableColor()
		p.warn.EnableColor()
		p.err.EnableColor()
	} else {
		p.check.DisableColor()
		p.warn.DisableColor()
		p.err.DisableColor()
	}
	return p
}

// Print writes one line per diagnostic at or above the severity filter.
// Terse mode skips straight to the summary.
func (p *Printer) Print(diags []lint.Diagnostic) {
	if p.terse {
		return
	}
	for _, d := range diags {
		if d.Severity < p.min {
			continue
		}
		fmt.Fprintf(p.w, "%s:%d: %s:%s: %s\n",
			d.File, d.Line, p.severity(d.Severity), d.Type, d.Message)
	}
}

// Summary writes the per-severity totals.
func (p *Printer) Summary(counts lint.Counts, linesChecked int) {
	fmt.Fprintf(p.w, "total: %s errors, %s warnings, %s checks, %d lines checked\n",
		p.err.Sprintf("%d", counts.Errors),
		p.warn.Sprintf("%d", counts.Warnings),
		p.check.Sprintf("%d", counts.Checks),
		linesChecked)
}

func (p *Printer) severity(s lint.Severity) string {
	switch s {
	case lint.SevError:
		return p.err.Sprint(s.String())
	case lint.SevWarn:
		return p.warn.Sprint(s.String())
	}
	return p.check.Sprint(s.String())
}

// WriteFix writes the full fix buffer next to the input and returns the
// path it wrote.
func WriteFix(inputPath string, lines []string) (string, error) {
	out := inputPath + FixSuffix
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write fixed output: %w", err)
	}
	return out, nil
}
