package rules

import (
	"regexp"

	"patchlint/internal/lint"
	"patchlint/internal/scan"
	"patchlint/pkg/config"
)

var commaRE = regexp.MustCompile(`,[^\s)]`)

// CommaSpacing requires a space after commas.
type CommaSpacing struct{}

func (CommaSpacing) Name() string { return "COMMA_SPACING" }
func (CommaSpacing) Strict() bool { return false }

func (CommaSpacing) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	if !added(l) || !ctx.CFamily() {
		return nil
	}
	stripped := l.Stripped[0]
	locs := commaRE.FindAllStringIndex(stripped, -1)
	if locs == nil {
		return nil
	}
	out := lint.Outcome{
		Severity: lint.SevError,
		Type:     "COMMA_SPACING",
		Message:  "space required after that ','",
	}
	// Insert from the right so earlier offsets stay valid.
	raw := []byte(l.Text())
	fixed := make([]byte, 0, len(raw)+len(locs))
	last := 0
	for _, loc := range locs {
		comma := loc[0] + 1
		fixed = append(fixed, raw[last:comma]...)
		fixed = append(fixed, ' ')
		last = comma
	}
	fixed = append(fixed, raw[last:]...)
	return []lint.Outcome{out.Fixed(string(fixed))}
}

var (
	parenAfterRE  = regexp.MustCompile(`\(\s+\S`)
	parenBeforeRE = regexp.MustCompile(`\S\s+\)`)
)

// ParenSpacing prohibits padding spaces just inside parentheses.
type ParenSpacing struct{}

func (ParenSpacing) Name() string { return "PAREN_SPACING" }
func (ParenSpacing) Strict() bool { return false }

func (ParenSpacing) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	if !added(l) || !ctx.CFamily() {
		return nil
	}
	// Single physical lines only: across a continuation the padding is
	// legitimate alignment.
	if len(l.Stripped) > 1 {
		return nil
	}
	stripped := l.Stripped[0]
	var outs []lint.Outcome
	if parenAfterRE.MatchString(stripped) {
		outs = append(outs, lint.Outcome{
			Severity: lint.SevError,
			Type:     "PAREN_SPACING",
			Message:  "space prohibited after that open parenthesis '('",
		})
	}
	if parenBeforeRE.MatchString(stripped) {
		outs = append(outs, lint.Outcome{
			Severity: lint.SevError,
			Type:     "PAREN_SPACING",
			Message:  "space prohibited before that close parenthesis ')'",
		})
	}
	return outs
}
