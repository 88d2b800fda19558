package rules

import (
	"fmt"
	"regexp"
	"strings"

	"patchlint/internal/lint"
	"patchlint/internal/patch"
	"patchlint/internal/scan"
	"patchlint/internal/spelling"
	"patchlint/pkg/config"
)

var wordRE = regexp.MustCompile(`[A-Za-z]{3,}`)

// TypoSpelling looks up every word of an added line in the misspelling
// dictionary. Runs over the raw text so comments and strings are covered.
// A nil dictionary makes the rule a no-op.
type TypoSpelling struct {
	Dictionary *spelling.Dictionary
}

func (TypoSpelling) Name() string { return "TYPO_SPELLING" }
func (TypoSpelling) Strict() bool { return false }

func (r TypoSpelling) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	if r.Dictionary == nil {
		return nil
	}
	var outs []lint.Outcome
	for i, line := range l.Lines {
		if line.Origin != patch.OriginAdded {
			continue
		}
		// Replace at the match offsets only; a misspelling embedded in a
		// longer identifier is a different word and stays untouched.
		var fixed strings.Builder
		var found []lint.Outcome
		last := 0
		for _, loc := range wordRE.FindAllStringIndex(line.Text, -1) {
			word := line.Text[loc[0]:loc[1]]
			good, ok := r.Dictionary.Correct(word)
			if !ok {
				continue
			}
			found = append(found, lint.Outcome{
				Severity:   lint.SevCheck,
				Type:       "TYPO_SPELLING",
				Message:    fmt.Sprintf("'%s' may be misspelled - perhaps '%s'?", word, good),
				LineOffset: i,
			})
			fixed.WriteString(line.Text[last:loc[0]])
			fixed.WriteString(matchCase(word, good))
			last = loc[1]
		}
		if len(found) == 0 {
			continue
		}
		fixed.WriteString(line.Text[last:])
		for _, out := range found {
			outs = append(outs, out.Fixed(fixed.String()))
		}
	}
	return outs
}

// matchCase carries an all-caps or initial capital over to the correction.
func matchCase(word, good string) string {
	if word == strings.ToUpper(word) && len(word) > 1 {
		return strings.ToUpper(good)
	}
	if word[0] >= 'A' && word[0] <= 'Z' {
		return strings.ToUpper(good[:1]) + good[1:]
	}
	return good
}
