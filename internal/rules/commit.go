package rules

import (
	"fmt"
	"regexp"
	"strings"

	"patchlint/internal/lint"
	"patchlint/internal/patch"
	"patchlint/internal/scan"
	"patchlint/internal/vcs"
	"patchlint/pkg/config"
)

// commitRefRE matches prose references to commits, e.g. "commit 0123abc".
var commitRefRE = regexp.MustCompile(`\bcommit\s+([0-9a-fA-F]{5,40})\b`)

// commitGoodRE is the required reference form:
// commit <12+ hex chars> ("subject").
var commitGoodRE = regexp.MustCompile(`\bcommit\s+([0-9a-fA-F]{12,40})\s+\("([^"]+)"\)`)

// GitCommitID checks that commit references carry an abbreviation of at
// least 12 characters and the quoted subject line. When a Log collaborator
// is available the id and subject are verified against the repository;
// without one the rule degrades to format-only validation.
type GitCommitID struct {
	Log vcs.Log
}

func (GitCommitID) Name() string { return "GIT_COMMIT_ID" }
func (GitCommitID) Strict() bool { return false }

func (r GitCommitID) Check(l *scan.Logical, ctx *lint.Context, cfg *config.Config) []lint.Outcome {
	var outs []lint.Outcome
	for i, line := range l.Lines {
		if line.Origin != patch.OriginAdded {
			continue
		}
		if msg, bad := r.checkRef(line.Text); bad {
			outs = append(outs, lint.Outcome{
				Severity:   lint.SevError,
				Type:       "GIT_COMMIT_ID",
				Message:    msg,
				LineOffset: i,
			})
		}
	}
	return outs
}

func (r GitCommitID) checkRef(text string) (string, bool) {
	if m := commitGoodRE.FindStringSubmatch(text); m != nil {
		if r.Log == nil {
			return "", false
		}
		id := strings.ToLower(m[1])
		subject, ok := r.Log.Lookup(id)
		switch {
		case !ok:
			return fmt.Sprintf("commit %s is unknown to this repository", id), true
		case subject != m[2]:
			return fmt.Sprintf("commit subject does not match, should be 'commit %s (\"%s\")'", id, subject), true
		}
		return "", false
	}

	m := commitRefRE.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	id := strings.ToLower(m[1])
	if r.Log != nil {
		if subject, ok := r.Log.Lookup(id); ok {
			return fmt.Sprintf("please reference it as 'commit %s (\"%s\")'", id, subject), true
		}
	}
	return fmt.Sprintf("please use 12+ chars for the git commit id, like: 'commit %s (\"<subject>\")'", id), true
}
