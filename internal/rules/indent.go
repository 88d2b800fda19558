package rules

import (
	"strings"

	"patchlint/internal/lint"
	"patchlint/internal/scan"
	"patchlint/pkg/config"
)

// DeepIndentation flags code nested more than six levels deep.
type DeepIndentation struct{}

func (DeepIndentation) Name() string { return "DEEP_INDENTATION" }
func (DeepIndentation) Strict() bool { return false }

func (DeepIndentation) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	if !added(l) || !ctx.CFamily() || l.Blank() {
		return nil
	}
	if ctx.Indent <= 6*cfg.TabWidth {
		return nil
	}
	return []lint.Outcome{{
		Severity: lint.SevWarn,
		Type:     "DEEP_INDENTATION",
		Message:  "too many leading tabs - consider code refactoring",
	}}
}

// BlankAfterDecls wants a blank line between a declaration block and the
// statements that follow it.
type BlankAfterDecls struct{}

func (BlankAfterDecls) Name() string { return "BLANK_AFTER_DECLS" }
func (BlankAfterDecls) Strict() bool { return false }

func (BlankAfterDecls) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	if !added(l) || !ctx.CFamily() || !ctx.PrevIsDecl || ctx.BlankRun > 0 {
		return nil
	}
	if l.Blank() {
		return nil
	}
	stripped := strings.TrimSpace(l.Stripped[0])
	// Another declaration extends the block; a close brace ends the scope.
	if lint.IsDeclaration(l.Stripped[0]) || strings.HasPrefix(stripped, "}") || strings.HasPrefix(stripped, "#") {
		return nil
	}
	return []lint.Outcome{{
		Severity: lint.SevCheck,
		Type:     "BLANK_AFTER_DECLS",
		Message:  "missing a blank line after declarations",
	}}
}

// UnbalancedBracket reports a close bracket with no matching open. Only
// meaningful when the whole file is visible; a hunk legitimately starts
// mid-block.
type UnbalancedBracket struct{}

func (UnbalancedBracket) Name() string { return "UNBALANCED_BRACKET" }
func (UnbalancedBracket) Strict() bool { return false }

func (UnbalancedBracket) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	if !ctx.WholeFile || !l.Unbalanced {
		return nil
	}
	return []lint.Outcome{{
		Severity: lint.SevError,
		Type:     "UNBALANCED_BRACKET",
		Message:  "close bracket without matching open bracket",
	}}
}
