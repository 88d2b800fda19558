package scan

import (
	"testing"

	"patchlint/internal/patch"
)

func feed(t *testing.T, lines []string) []*Logical {
	t.Helper()
	var rec Reconstructor
	var out []*Logical
	for i, text := range lines {
		l, done := rec.Push(patch.RawLine{Text: text, Index: i, Origin: patch.OriginAdded, NewLine: i + 1})
		if done {
			out = append(out, l)
		}
	}
	if l, ok := rec.Flush(); ok {
		out = append(out, l)
	}
	return out
}

func TestReconstructorSimpleLines(t *testing.T) {
	logicals := feed(t, []string{"int a;", "int b;", "int c;"})
	if len(logicals) != 3 {
		t.Fatalf("want 3 logical lines, got %d", len(logicals))
	}
	for i, l := range logicals {
		if len(l.Lines) != 1 {
			t.Errorf("logical %d spans %d lines; want 1", i, len(l.Lines))
		}
	}
}

func TestReconstructorJoinsBracketContinuation(t *testing.T) {
	logicals := feed(t, []string{"int foo(){", "return 1;", "}"})
	if len(logicals) != 1 {
		t.Fatalf("want 1 logical line, got %d", len(logicals))
	}
	l := logicals[0]
	if len(l.Lines) != 3 {
		t.Errorf("logical spans %d lines; want 3", len(l.Lines))
	}
	if l.ExitBalance != 0 {
		t.Errorf("exit balance = %d; want 0", l.ExitBalance)
	}
	if l.Unbalanced {
		t.Error("balanced input flagged unbalanced")
	}
}

func TestReconstructorJoinsBackslashContinuation(t *testing.T) {
	logicals := feed(t, []string{`#define FOO \`, "bar"})
	if len(logicals) != 1 {
		t.Fatalf("want 1 logical line, got %d", len(logicals))
	}
	if len(logicals[0].Lines) != 2 {
		t.Errorf("logical spans %d lines; want 2", len(logicals[0].Lines))
	}
}

func TestReconstructorJoinsOpenComment(t *testing.T) {
	logicals := feed(t, []string{"/* spans", " * lines", " */ int a;"})
	if len(logicals) != 1 {
		t.Fatalf("want 1 logical line, got %d", len(logicals))
	}
	l := logicals[0]
	if l.EntryDepth != 0 || l.ExitDepth != 0 {
		t.Errorf("depths = %d,%d; want 0,0", l.EntryDepth, l.ExitDepth)
	}
}

func TestReconstructorCommentWinsOverBrackets(t *testing.T) {
	// The open bracket lives inside a comment and must not hold the
	// logical line open once the comment closes.
	logicals := feed(t, []string{"/* ( { [", "*/ int a;"})
	if len(logicals) != 1 {
		t.Fatalf("want 1 logical line, got %d", len(logicals))
	}
	if logicals[0].ExitBalance != 0 {
		t.Errorf("exit balance = %d; want 0", logicals[0].ExitBalance)
	}
}

func TestReconstructorUnderflowClamps(t *testing.T) {
	logicals := feed(t, []string{"}"})
	if len(logicals) != 1 {
		t.Fatalf("want 1 logical line, got %d", len(logicals))
	}
	l := logicals[0]
	if !l.Unbalanced {
		t.Error("want Unbalanced flag for stray close brace")
	}
	if l.ExitBalance != 0 {
		t.Errorf("exit balance = %d; want 0 (clamped)", l.ExitBalance)
	}
}

func TestReconstructorIdempotentOnJoinedInput(t *testing.T) {
	input := []string{"int foo(){", "return 1;", "}", "int a;", `#define X \`, "1", "int b;"}

	boundaries := func(logicals []*Logical) []int {
		var b []int
		for _, l := range logicals {
			b = append(b, len(l.Lines))
		}
		return b
	}

	first := boundaries(feed(t, input))
	second := boundaries(feed(t, input))
	if len(first) != len(second) {
		t.Fatalf("pass lengths differ: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("boundary %d differs: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestReconstructorFlushOpenComment(t *testing.T) {
	logicals := feed(t, []string{"/* never closed"})
	if len(logicals) != 1 {
		t.Fatalf("want the open comment flushed, got %d logical lines", len(logicals))
	}
	if !logicals[0].InComment() {
		t.Error("flushed line should report InComment")
	}
}
