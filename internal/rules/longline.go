package rules

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"patchlint/internal/lint"
	"patchlint/internal/patch"
	"patchlint/internal/scan"
	"patchlint/pkg/config"
)

// LongLine fires on lines wider than the configured threshold, measured in
// display columns with tabs expanded. It runs independently of every other
// rule.
type LongLine struct{}

func (LongLine) Name() string { return "LONG_LINE" }
func (LongLine) Strict() bool { return false }

func (LongLine) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	var outs []lint.Outcome
	for i, line := range l.Lines {
		if line.Origin != patch.OriginAdded {
			continue
		}
		raw := strings.TrimSuffix(line.Text, "\r")
		width := displayWidth(raw, cfg.TabWidth)
		if width <= cfg.MaxLineLength {
			continue
		}
		outs = append(outs, lint.Outcome{
			Severity:   lint.SevWarn,
			Type:       "LONG_LINE",
			Message:    fmt.Sprintf("line length of %d exceeds %d columns", width, cfg.MaxLineLength),
			LineOffset: i,
		})
	}
	return outs
}

// displayWidth measures a line in terminal columns: tabs advance to the
// next tab stop, everything else by its rune width.
func displayWidth(line string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 8
	}
	col := 0
	for _, r := range line {
		if r == '\t' {
			col = (col/tabWidth + 1) * tabWidth
			continue
		}
		col += runewidth.RuneWidth(r)
	}
	return col
}
