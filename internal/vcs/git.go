// Package vcs wraps the version-control queries the checker consumes.
// Everything is behind narrow interfaces so rules degrade to no-ops when
// no repository is available and tests can inject fakes.
package vcs

import (
	"fmt"
	"os/exec"
	"strings"
)

// Log answers commit-reference questions.
type Log interface {
	// Lookup resolves a (possibly abbreviated) commit id to its subject
	// line. ok is false when the commit is unknown.
	Lookup(commitID string) (subject string, ok bool)
}

// Git runs git against the working directory.
type Git struct {
	Dir string
}

// Available reports whether a git repository can answer queries at all.
func (g *Git) Available() bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = g.Dir
	return cmd.Run() == nil
}

func (g *Git) Lookup(commitID string) (string, bool) {
	cmd := exec.Command("git", "log", "-1", "--format=%s", commitID)
	cmd.Dir = g.Dir
	output, err := cmd.Output()
	if err != nil {
		return "", false
	}
	subject := strings.TrimSpace(string(output))
	return subject, subject != ""
}

// StagedDiff returns the staged changes as a unified diff so the checker
// can run as a pre-upload hook.
func (g *Git) StagedDiff() (string, error) {
	cmd := exec.Command("git", "diff", "--staged")
	cmd.Dir = g.Dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get staged diff: %w", err)
	}
	return string(output), nil
}

// StagedFiles returns the paths with staged changes.
func (g *Git) StagedFiles() ([]string, error) {
	cmd := exec.Command("git", "diff", "--staged", "--name-only")
	cmd.Dir = g.Dir
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to get staged files: %w", err)
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}
