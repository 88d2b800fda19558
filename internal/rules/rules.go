// Package rules holds the style rule catalog. Each rule is a self-contained
// predicate over one logical line and its context; the engine invokes them
// in registration order.
package rules

import (
	"strings"

	"patchlint/internal/lint"
	"patchlint/internal/patch"
	"patchlint/internal/scan"
	"patchlint/internal/spelling"
	"patchlint/internal/vcs"
)

// Deps carries the optional external collaborators rules may consult.
// A nil collaborator degrades its dependent rule, it never disables the run.
type Deps struct {
	Log        vcs.Log
	Dictionary *spelling.Dictionary
}

// Default builds the registry in the fixed, deterministic order the tool
// ships with.
func Default(deps Deps) *lint.Registry {
	r := lint.NewRegistry()
	r.Register(DosLineEnding{})
	r.Register(TrailingWhitespace{})
	r.Register(SpaceBeforeTab{})
	r.Register(CodeIndent{})
	r.Register(MultipleBlankLines{})
	r.Register(LongLine{})
	r.Register(OpenBrace{})
	r.Register(ElseAfterBrace{})
	r.Register(CommaSpacing{})
	r.Register(ParenSpacing{})
	r.Register(DeepIndentation{})
	r.Register(BlankAfterDecls{})
	r.Register(UnbalancedBracket{})
	r.Register(GitCommitID{Log: deps.Log})
	r.Register(TypoSpelling{Dictionary: deps.Dictionary})
	r.Register(C99Comment{})
	r.Register(TodoMarker{})
	return r
}

// added reports whether the logical line starts on an added line; most
// rules only ever fire on new content.
func added(l *scan.Logical) bool {
	return l.First().Origin == patch.OriginAdded
}

// indentEnd returns the byte offset where leading whitespace stops.
func indentEnd(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// retabIndent rebuilds the leading whitespace of raw as a canonical run of
// tabs followed by at most tabWidth-1 spaces, preserving the column the
// code starts in.
func retabIndent(raw string, tabWidth int) string {
	end := indentEnd(raw)
	col := lint.IndentWidth(raw[:end], tabWidth)
	return strings.Repeat("\t", col/tabWidth) + strings.Repeat(" ", col%tabWidth) + raw[end:]
}
