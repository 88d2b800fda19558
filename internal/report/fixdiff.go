package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// fixDiffContext is how many unchanged lines surround each hunk in the
// fix preview.
const fixDiffContext = 3

// FixDiff renders the applied fixes as a unified diff between the original
// input and the fix buffer. Fixes are 1:1 line replacements, so hunks are
// built directly from the changed indexes, no diff algorithm needed.
func FixDiff(w io.Writer, path string, orig, fixed []string, changed []int) error {
	if len(changed) == 0 {
		return nil
	}

	fd := &diff.FileDiff{
		OrigName: "a/" + path,
		NewName:  "b/" + path,
	}

	for _, group := range groupChanges(changed, 2*fixDiffContext) {
		start := group[0] - fixDiffContext
		if start < 0 {
			start = 0
		}
		end := group[len(group)-1] + fixDiffContext
		if end > len(orig)-1 {
			end = len(orig) - 1
		}

		inGroup := make(map[int]bool, len(group))
		for _, i := range group {
			inGroup[i] = true
		}

		// Fixes never add or drop lines, so each change renders as an
		// adjacent -/+ pair.
		var body strings.Builder
		for i := start; i <= end; i++ {
			switch {
			case inGroup[i]:
				body.WriteString("-" + orig[i] + "\n")
				body.WriteString("+" + fixed[i] + "\n")
			default:
				body.WriteString(" " + orig[i] + "\n")
			}
		}

		lines := int32(end - start + 1)
		fd.Hunks = append(fd.Hunks, &diff.Hunk{
			OrigStartLine: int32(start + 1),
			OrigLines:     lines,
			NewStartLine:  int32(start + 1),
			NewLines:      lines,
			Body:          []byte(strings.TrimSuffix(body.String(), "\n")),
		})
	}

	out, err := diff.PrintFileDiff(fd)
	if err != nil {
		return fmt.Errorf("failed to print fix diff: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// groupChanges splits ascending indexes into groups whose gaps exceed gap.
func groupChanges(changed []int, gap int) [][]int {
	var groups [][]int
	var cur []int
	for _, i := range changed {
		if len(cur) > 0 && i-cur[len(cur)-1] > gap {
			groups = append(groups, cur)
			cur = nil
		}
		cur = append(cur, i)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}
