package rules

import (
	"regexp"
	"strings"

	"patchlint/internal/lint"
	"patchlint/internal/scan"
	"patchlint/pkg/config"
)

// openBraceRE matches an open brace glued to the preceding token. Masking
// has already removed braces inside literals and comments.
var openBraceRE = regexp.MustCompile(`[^\s{(\[]\{`)

// OpenBrace requires a space before an open brace that follows a token,
// e.g. `int foo(){` or `if (x){`.
type OpenBrace struct{}

func (OpenBrace) Name() string { return "OPEN_BRACE" }
func (OpenBrace) Strict() bool { return false }

func (OpenBrace) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	if !added(l) || !ctx.CFamily() {
		return nil
	}
	stripped := l.Stripped[0]
	loc := openBraceRE.FindStringIndex(stripped)
	if loc == nil {
		return nil
	}
	out := lint.Outcome{
		Severity: lint.SevError,
		Type:     "OPEN_BRACE",
		Message:  "space required before the open brace '{'",
	}
	// Masking is length-preserving, so the offset is valid in the raw line.
	raw := l.Text()
	brace := loc[1] - 1
	if brace > 0 && brace <= len(raw) {
		return []lint.Outcome{out.Fixed(raw[:brace] + " " + raw[brace:])}
	}
	return []lint.Outcome{out}
}

var elseRE = regexp.MustCompile(`^\s*else\b`)

// ElseAfterBrace requires `else` to share a line with the close brace of
// the preceding block.
type ElseAfterBrace struct{}

func (ElseAfterBrace) Name() string { return "ELSE_AFTER_BRACE" }
func (ElseAfterBrace) Strict() bool { return false }

func (ElseAfterBrace) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	if !added(l) || !ctx.CFamily() || ctx.Prev == nil {
		return nil
	}
	if !elseRE.MatchString(l.Stripped[0]) {
		return nil
	}
	prev := ctx.Prev.Stripped[len(ctx.Prev.Stripped)-1]
	if !strings.HasSuffix(strings.TrimSpace(prev), "}") {
		return nil
	}
	return []lint.Outcome{{
		Severity: lint.SevError,
		Type:     "ELSE_AFTER_BRACE",
		Message:  "else should follow close brace '}'",
	}}
}
