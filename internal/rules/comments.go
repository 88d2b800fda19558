package rules

import (
	"strings"

	"patchlint/internal/lint"
	"patchlint/internal/patch"
	"patchlint/internal/scan"
	"patchlint/pkg/config"
)

// C99Comment discourages // comments in plain C. Strict mode only.
type C99Comment struct{}

func (C99Comment) Name() string { return "C99_COMMENT" }
func (C99Comment) Strict() bool { return true }

func (C99Comment) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	if ctx.Language != "c" {
		return nil
	}
	var outs []lint.Outcome
	for i, s := range l.Stripped {
		if l.Lines[i].Origin != patch.OriginAdded {
			continue
		}
		// Masking keeps the "//" delimiter, so it is visible here while
		// a "//" inside a string or block comment is not.
		if !strings.Contains(s, "//") {
			continue
		}
		outs = append(outs, lint.Outcome{
			Severity:   lint.SevCheck,
			Type:       "C99_COMMENT",
			Message:    "C99 // comments are discouraged, use /* */ instead",
			LineOffset: i,
		})
	}
	return outs
}

// TodoMarker flags TODO and FIXME markers left in new code. Strict mode
// only; the markers live in comment bodies, so this scans the raw text.
type TodoMarker struct{}

func (TodoMarker) Name() string { return "TODO_MARKER" }
func (TodoMarker) Strict() bool { return true }

func (TodoMarker) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	var outs []lint.Outcome
	for i, line := range l.Lines {
		if line.Origin != patch.OriginAdded {
			continue
		}
		if !strings.Contains(line.Text, "TODO") && !strings.Contains(line.Text, "FIXME") {
			continue
		}
		outs = append(outs, lint.Outcome{
			Severity:   lint.SevCheck,
			Type:       "TODO_MARKER",
			Message:    "TODO/FIXME marker in new code",
			LineOffset: i,
		})
	}
	return outs
}
