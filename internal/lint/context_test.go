package lint

import (
	"testing"

	"patchlint/internal/patch"
	"patchlint/internal/scan"
)

func TestIndentWidth(t *testing.T) {
	tests := []struct {
		line     string
		tabWidth int
		want     int
	}{
		{"int a;", 8, 0},
		{"    x", 8, 4},
		{"\tx", 8, 8},
		{"\t\tx", 8, 16},
		{"\t  x", 8, 10},
		{"  \tx", 8, 8}, // spaces then tab land on the same stop
		{"\tx", 4, 4},
		{"", 8, 0},
	}
	for _, tt := range tests {
		if got := IndentWidth(tt.line, tt.tabWidth); got != tt.want {
			t.Errorf("IndentWidth(%q, %d) = %d; want %d", tt.line, tt.tabWidth, got, tt.want)
		}
	}
}

func TestIsDeclaration(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"int a;", true},
		{"\tint a = 1;", true},
		{"static unsigned long count;", true},
		{"struct foo *ptr;", true},
		{"char buf[16];", true},
		{"return 1;", false},
		{"foo();", false},
		{"a = b;", false},
		{"if (x)", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsDeclaration(tt.line); got != tt.want {
			t.Errorf("IsDeclaration(%q) = %v; want %v", tt.line, got, tt.want)
		}
	}
}

func logicalFor(text string, origin patch.LineOrigin) *scan.Logical {
	var rec scan.Reconstructor
	l, done := rec.Push(patch.RawLine{Text: text, Origin: origin, NewLine: 1})
	if !done {
		l, _ = rec.Flush()
	}
	return l
}

func TestTrackerPrevAndBlankRun(t *testing.T) {
	tracker := NewTracker(8, "c", true)

	decl := logicalFor("int a;", patch.OriginAdded)
	tracker.Advance(decl)

	blank := logicalFor("", patch.OriginAdded)
	tracker.Advance(blank)
	tracker.Advance(blank)

	stmt := logicalFor("a = 1;", patch.OriginAdded)
	ctx := tracker.Observe(stmt)

	if ctx.Prev != decl {
		t.Error("Prev should skip blank lines back to the declaration")
	}
	if !ctx.PrevIsDecl {
		t.Error("PrevIsDecl should survive intervening blanks")
	}
	if ctx.BlankRun != 2 {
		t.Errorf("BlankRun = %d; want 2", ctx.BlankRun)
	}

	tracker.Advance(stmt)
	ctx = tracker.Observe(stmt)
	if ctx.BlankRun != 0 {
		t.Errorf("BlankRun after non-blank = %d; want 0", ctx.BlankRun)
	}
	if ctx.PrevIsDecl {
		t.Error("PrevIsDecl should clear after a statement")
	}
}

func TestCollectorIgnoreAndThrottle(t *testing.T) {
	c := NewCollector([]string{"IGNORED_TYPE"}, 2)

	if c.Add(Diagnostic{Severity: SevError, Type: "IGNORED_TYPE"}) {
		t.Error("ignored type should not be kept")
	}
	if c.HasErrors() {
		t.Error("ignored diagnostics must not contribute to exit status")
	}

	for i := 0; i < 5; i++ {
		c.Add(Diagnostic{Severity: SevWarn, Type: "REPEATED"})
	}
	if got := c.Seen("REPEATED"); got != 2 {
		t.Errorf("throttled count = %d; want 2", got)
	}
	if got := c.Counts().Warnings; got != 2 {
		t.Errorf("warning count = %d; want 2", got)
	}
}

func TestFixBuffer(t *testing.T) {
	fb := NewFixBuffer([]string{"a", "b", "c"})
	if fb.Dirty() {
		t.Error("fresh buffer reported dirty")
	}

	fb.Set(1, "B")
	fb.Set(99, "out of range")

	if !fb.Dirty() {
		t.Error("buffer with a fix reported clean")
	}
	want := []string{"a", "B", "c"}
	for i, line := range fb.Lines() {
		if line != want[i] {
			t.Errorf("line %d = %q; want %q", i, line, want[i])
		}
	}
	if changed := fb.Changed(); len(changed) != 1 || changed[0] != 1 {
		t.Errorf("Changed() = %v; want [1]", changed)
	}
}
