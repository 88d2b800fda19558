package scan

import (
	"strings"

	"patchlint/internal/patch"
)

// Logical is one or more consecutive physical lines joined because a
// statement, comment or bracketed expression spans them.
type Logical struct {
	// Lines holds the constituent physical lines, in input order.
	Lines []patch.RawLine
	// Stripped holds the masked form of each constituent line.
	Stripped []string

	// EntryDepth and ExitDepth are the block-comment nesting depth at the
	// first and past the last constituent line.
	EntryDepth int
	ExitDepth  int
	// EntryBalance and ExitBalance are the net open-bracket counts at the
	// same two points.
	EntryBalance int
	ExitBalance  int

	// Continued is set when the last physical line ends with a backslash.
	Continued bool
	// Unbalanced is set when a close bracket appeared with no matching
	// open; the balance is clamped at zero instead of going negative.
	Unbalanced bool
}

// First returns the first physical line of the logical line.
func (l *Logical) First() patch.RawLine {
	return l.Lines[0]
}

// Text returns the unmasked text of the first physical line.
func (l *Logical) Text() string {
	return l.Lines[0].Text
}

// Blank reports whether the whole logical line is whitespace.
func (l *Logical) Blank() bool {
	for _, s := range l.Stripped {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

// InComment reports whether the logical line still ends inside an open
// block comment. Only possible for the final flushed line of a stream.
func (l *Logical) InComment() bool {
	return l.ExitDepth > 0
}

// Reconstructor assembles Logical lines from a stream of classified
// physical lines. Single pass, forward only; feed one file per instance
// or call Reset between files.
type Reconstructor struct {
	mask    Masker
	balance int
	pending *Logical
}

// Reset drops carried state between files.
func (r *Reconstructor) Reset() {
	r.mask.Reset()
	r.balance = 0
	r.pending = nil
}

// Push consumes one physical line and returns a completed Logical when the
// line closed it. Joining happens when the line ends inside an open block
// comment, ends with a backslash continuation, or leaves brackets open;
// comment continuation takes precedence, so text inside an open comment is
// never bracket-scanned (masking guarantees that).
func (r *Reconstructor) Push(line patch.RawLine) (*Logical, bool) {
	entryDepth := r.mask.Depth()
	stripped := r.mask.Strip(line.Text)

	if r.pending == nil {
		r.pending = &Logical{EntryDepth: entryDepth, EntryBalance: r.balance}
	}
	l := r.pending
	l.Lines = append(l.Lines, line)
	l.Stripped = append(l.Stripped, stripped)

	delta, underflow := bracketDelta(stripped, r.balance)
	r.balance += delta
	if underflow {
		l.Unbalanced = true
		r.balance = 0
	}

	l.ExitDepth = r.mask.Depth()
	l.ExitBalance = r.balance
	l.Continued = strings.HasSuffix(line.Text, `\`)

	if l.ExitDepth > 0 || l.Continued || r.balance > 0 {
		return nil, false
	}

	r.pending = nil
	return l, true
}

// Flush returns the unterminated logical line at end of stream, if any.
func (r *Reconstructor) Flush() (*Logical, bool) {
	if r.pending == nil {
		return nil, false
	}
	l := r.pending
	r.pending = nil
	return l, true
}

// bracketDelta scans a masked line and returns the net bracket count.
// underflow is reported when the running balance would dip below zero.
func bracketDelta(stripped string, balance int) (delta int, underflow bool) {
	run := balance
	for i := 0; i < len(stripped); i++ {
		switch stripped[i] {
		case '(', '{', '[':
			run++
		case ')', '}', ']':
			run--
			if run < 0 {
				underflow = true
				run = 0
			}
		}
	}
	return run - balance, underflow
}
