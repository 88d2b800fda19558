// Package patch parses unified diffs into per-file hunks with classified
// lines and old/new line-number bookkeeping. It is deliberately forgiving:
// structural problems are collected and reported, never fatal.
package patch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LineOrigin tags a physical line with how the diff introduced it.
type LineOrigin int

const (
	OriginContext LineOrigin = iota
	OriginAdded
	OriginRemoved
	OriginFileHeader
	OriginHunkHeader
)

func (o LineOrigin) String() string {
	switch o {
	case OriginContext:
		return "context"
	case OriginAdded:
		return "added"
	case OriginRemoved:
		return "removed"
	case OriginFileHeader:
		return "file-header"
	case OriginHunkHeader:
		return "hunk-header"
	}
	return "unknown"
}

// RawLine is one physical input line, immutable once created.
type RawLine struct {
	// Text is the line content without its diff marker.
	Text string
	// Index is the 0-based position of the line in the whole input.
	Index  int
	Origin LineOrigin
	// OldLine is the line number in the old file, 0 for added lines.
	OldLine int
	// NewLine is the line number in the new file, 0 for removed lines.
	NewLine int
	// NoNewline is set when the diff flagged this line as missing its
	// trailing newline ("\ No newline at end of file").
	NoNewline bool
}

// Hunk is one contiguous diff region.
type Hunk struct {
	File     string
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []RawLine
}

// File groups the hunks that touch one path.
type File struct {
	Path  string
	Hunks []Hunk
}

// Problem records a structural defect found while parsing. It carries the
// 0-based input line index so callers can turn it into a diagnostic.
type Problem struct {
	Index   int
	Message string
}

// Patch is the parsed form of one unified diff.
type Patch struct {
	Files    []File
	Problems []Problem
	// Raw holds every physical input line, markers included.
	Raw []string
}

var hunkHeaderRE = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// ParseHunkHeader extracts the four line-number fields of a hunk header.
// A missing count defaults to 1. Returns false for malformed headers.
func ParseHunkHeader(header string) (oldStart, oldCount, newStart, newCount int, ok bool) {
	m := hunkHeaderRE.FindStringSubmatch(header)
	if m == nil {
		return 0, 0, 0, 0, false
	}
	oldStart, _ = strconv.Atoi(m[1])
	newStart, _ = strconv.Atoi(m[3])
	oldCount, newCount = 1, 1
	if m[2] != "" {
		oldCount, _ = strconv.Atoi(m[2])
	}
	if m[4] != "" {
		newCount, _ = strconv.Atoi(m[4])
	}
	return oldStart, oldCount, newStart, newCount, true
}

// Parse consumes a unified diff. Counter underflow and unparseable hunk
// headers are recorded as Problems on the result; parsing resumes at the
// next recognizable header.
func Parse(input string) *Patch {
	p := &Patch{Raw: splitLines(input)}

	var (
		cur     *File
		hunk    *Hunk
		oldLeft int
		newLeft int
		oldLine int
		newLine int
	)

	closeHunk := func(idx int) {
		if hunk == nil {
			return
		}
		if oldLeft != 0 || newLeft != 0 {
			p.Problems = append(p.Problems, Problem{
				Index: idx,
				Message: fmt.Sprintf("hunk line counts do not match header @@ -%d,%d +%d,%d @@ (old %d, new %d left)",
					hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount, oldLeft, newLeft),
			})
		}
		cur.Hunks = append(cur.Hunks, *hunk)
		hunk = nil
	}

	for i, line := range p.Raw {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			closeHunk(i)
			// Per-file metadata lines (index, mode, rename, Binary files)
			// that follow are skipped by the default arm below.
		case strings.HasPrefix(line, "--- "):
			closeHunk(i)
			// Old-file header; the path of record comes from "+++".
		case strings.HasPrefix(line, "+++ "):
			closeHunk(i)
			path := headerPath(line)
			p.Files = append(p.Files, File{Path: path})
			cur = &p.Files[len(p.Files)-1]
		case strings.HasPrefix(line, "@@"):
			if cur == nil {
				p.Problems = append(p.Problems, Problem{Index: i, Message: "hunk header before any file header"})
				cur = appendFile(p, "")
			}
			closeHunk(i)
			os, oc, ns, nc, ok := ParseHunkHeader(line)
			if !ok {
				p.Problems = append(p.Problems, Problem{Index: i, Message: fmt.Sprintf("malformed hunk header %q", line)})
				continue
			}
			hunk = &Hunk{File: cur.Path, OldStart: os, OldCount: oc, NewStart: ns, NewCount: nc}
			oldLeft, newLeft = oc, nc
			oldLine, newLine = os, ns
			hunk.Lines = append(hunk.Lines, RawLine{Text: line, Index: i, Origin: OriginHunkHeader})
		case strings.HasPrefix(line, `\`):
			// "\ No newline at end of file" refers to the line above it,
			// which may already sit in a closed hunk.
			markNoNewline(cur, hunk)
		case hunk != nil:
			rl, okLine := classify(line, i, oldLine, newLine)
			if !okLine {
				// Unmarked line inside a hunk that still owes lines:
				// abandon this hunk and scan for the next header.
				p.Problems = append(p.Problems, Problem{Index: i, Message: fmt.Sprintf("unexpected line inside hunk: %q", line)})
				closeHunk(i)
				continue
			}
			switch rl.Origin {
			case OriginContext:
				if oldLeft <= 0 || newLeft <= 0 {
					p.Problems = append(p.Problems, Problem{Index: i, Message: "hunk has more lines than its header declares"})
					closeHunk(i)
					continue
				}
				oldLeft--
				newLeft--
				oldLine++
				newLine++
			case OriginAdded:
				if newLeft <= 0 {
					p.Problems = append(p.Problems, Problem{Index: i, Message: "hunk has more added lines than its header declares"})
					closeHunk(i)
					continue
				}
				newLeft--
				newLine++
			case OriginRemoved:
				if oldLeft <= 0 {
					p.Problems = append(p.Problems, Problem{Index: i, Message: "hunk has more removed lines than its header declares"})
					closeHunk(i)
					continue
				}
				oldLeft--
				oldLine++
			}
			hunk.Lines = append(hunk.Lines, rl)
			// The hunk ends exactly when both counters are spent; the
			// lines that follow belong to diff metadata, not the hunk.
			if oldLeft == 0 && newLeft == 0 {
				closeHunk(i)
			}
		case cur != nil && line != "" && (line[0] == '+' || line[0] == '-' || line[0] == ' '):
			p.Problems = append(p.Problems, Problem{Index: i, Message: "hunk has more lines than its header declares"})
		}
	}
	closeHunk(len(p.Raw) - 1)

	return p
}

// ParseFile wraps plain source text as a single synthetic hunk where every
// line counts as added. Used when checking whole files rather than patches.
func ParseFile(path, content string) *Patch {
	lines := splitLines(content)
	hunk := Hunk{File: path, OldStart: 0, OldCount: 0, NewStart: 1, NewCount: len(lines)}
	for i, line := range lines {
		hunk.Lines = append(hunk.Lines, RawLine{
			Text:    line,
			Index:   i,
			Origin:  OriginAdded,
			NewLine: i + 1,
		})
	}
	return &Patch{
		Files: []File{{Path: path, Hunks: []Hunk{hunk}}},
		Raw:   lines,
	}
}

func classify(line string, idx, oldLine, newLine int) (RawLine, bool) {
	if line == "" {
		// Some tools emit empty context lines with the marker trimmed.
		return RawLine{Text: "", Index: idx, Origin: OriginContext, OldLine: oldLine, NewLine: newLine}, true
	}
	switch line[0] {
	case '+':
		return RawLine{Text: line[1:], Index: idx, Origin: OriginAdded, NewLine: newLine}, true
	case '-':
		return RawLine{Text: line[1:], Index: idx, Origin: OriginRemoved, OldLine: oldLine}, true
	case ' ':
		return RawLine{Text: line[1:], Index: idx, Origin: OriginContext, OldLine: oldLine, NewLine: newLine}, true
	}
	return RawLine{}, false
}

// markNoNewline flags the most recently consumed line, whether its hunk is
// still open or already closed onto the file.
func markNoNewline(cur *File, hunk *Hunk) {
	if hunk == nil {
		if cur == nil || len(cur.Hunks) == 0 {
			return
		}
		hunk = &cur.Hunks[len(cur.Hunks)-1]
	}
	if n := len(hunk.Lines); n > 0 {
		hunk.Lines[n-1].NoNewline = true
	}
}

func headerPath(line string) string {
	path := strings.TrimPrefix(line, "+++ ")
	if i := strings.IndexByte(path, '\t'); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "b/")
	if path == "/dev/null" {
		return ""
	}
	return path
}

func appendFile(p *Patch, path string) *File {
	p.Files = append(p.Files, File{Path: path})
	return &p.Files[len(p.Files)-1]
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
