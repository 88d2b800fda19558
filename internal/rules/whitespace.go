package rules

import (
	"strings"

	"patchlint/internal/lint"
	"patchlint/internal/patch"
	"patchlint/internal/scan"
	"patchlint/pkg/config"
)

// The whitespace rules are per-physical-line: they walk every constituent
// of the logical line and report against the offending one.

// DosLineEnding flags carriage returns at end of line.
type DosLineEnding struct{}

func (DosLineEnding) Name() string { return "DOS_LINE_ENDING" }
func (DosLineEnding) Strict() bool { return false }

func (DosLineEnding) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	var outs []lint.Outcome
	for i, line := range l.Lines {
		if line.Origin != patch.OriginAdded || !strings.HasSuffix(line.Text, "\r") {
			continue
		}
		out := lint.Outcome{
			Severity: lint.SevError,
			Type:     "DOS_LINE_ENDING",
			Message:  "DOS line endings",
		}
		outs = append(outs, out.Fixed(strings.TrimRight(line.Text, "\r")).At(i))
	}
	return outs
}

// TrailingWhitespace flags blanks before the line end.
type TrailingWhitespace struct{}

func (TrailingWhitespace) Name() string { return "TRAILING_WHITESPACE" }
func (TrailingWhitespace) Strict() bool { return false }

func (TrailingWhitespace) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	var outs []lint.Outcome
	for i, line := range l.Lines {
		if line.Origin != patch.OriginAdded {
			continue
		}
		raw := strings.TrimSuffix(line.Text, "\r")
		trimmed := strings.TrimRight(raw, " \t")
		if trimmed == raw || raw == "" {
			continue
		}
		out := lint.Outcome{
			Severity: lint.SevError,
			Type:     "TRAILING_WHITESPACE",
			Message:  "trailing whitespace",
		}
		outs = append(outs, out.Fixed(trimmed).At(i))
	}
	return outs
}

// SpaceBeforeTab flags spaces immediately before a tab in the indent.
type SpaceBeforeTab struct{}

func (SpaceBeforeTab) Name() string { return "SPACE_BEFORE_TAB" }
func (SpaceBeforeTab) Strict() bool { return false }

func (SpaceBeforeTab) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	var outs []lint.Outcome
	for i, line := range l.Lines {
		if line.Origin != patch.OriginAdded {
			continue
		}
		indent := line.Text[:indentEnd(line.Text)]
		if !strings.Contains(indent, " \t") {
			continue
		}
		out := lint.Outcome{
			Severity: lint.SevWarn,
			Type:     "SPACE_BEFORE_TAB",
			Message:  "please, no space before tabs",
		}
		outs = append(outs, out.Fixed(retabIndent(line.Text, cfg.TabWidth)).At(i))
	}
	return outs
}

// CodeIndent flags indentation done with runs of spaces where a tab would
// reach the same column. Not applied to languages that indent with spaces.
type CodeIndent struct{}

func (CodeIndent) Name() string { return "CODE_INDENT" }
func (CodeIndent) Strict() bool { return false }

func (CodeIndent) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	if ctx.Language != "c" && ctx.Language != "cpp" && ctx.Language != "go" {
		return nil
	}
	var outs []lint.Outcome
	for i, line := range l.Lines {
		if line.Origin != patch.OriginAdded {
			continue
		}
		indent := line.Text[:indentEnd(line.Text)]
		if !strings.Contains(indent, strings.Repeat(" ", cfg.TabWidth)) {
			continue
		}
		out := lint.Outcome{
			Severity: lint.SevWarn,
			Type:     "CODE_INDENT",
			Message:  "code indent should use tabs where possible",
		}
		outs = append(outs, out.Fixed(retabIndent(line.Text, cfg.TabWidth)).At(i))
	}
	return outs
}

// MultipleBlankLines flags the second blank line of a run, whether the run
// is standalone or inside a continued statement.
type MultipleBlankLines struct{}

func (MultipleBlankLines) Name() string { return "MULTIPLE_BLANK_LINES" }
func (MultipleBlankLines) Strict() bool { return false }

func (MultipleBlankLines) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	if l.Blank() {
		if added(l) && ctx.BlankRun == 1 {
			return []lint.Outcome{{
				Severity: lint.SevCheck,
				Type:     "MULTIPLE_BLANK_LINES",
				Message:  "please don't use multiple blank lines",
			}}
		}
		return nil
	}

	var outs []lint.Outcome
	blank := func(i int) bool {
		return strings.TrimSpace(l.Stripped[i]) == ""
	}
	for i := 1; i < len(l.Lines); i++ {
		if l.Lines[i].Origin != patch.OriginAdded {
			continue
		}
		if blank(i) && blank(i-1) && (i < 2 || !blank(i-2)) {
			outs = append(outs, lint.Outcome{
				Severity:   lint.SevCheck,
				Type:       "MULTIPLE_BLANK_LINES",
				Message:    "please don't use multiple blank lines",
				LineOffset: i,
			})
		}
	}
	return outs
}
