package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patchlint/internal/lint"
)

func TestPrinterFormat(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, false, lint.SevCheck)

	p.Print([]lint.Diagnostic{
		{Severity: lint.SevError, Type: "TRAILING_WHITESPACE", Message: "trailing whitespace", File: "foo.c", Line: 12},
		{Severity: lint.SevCheck, Type: "BLANK_AFTER_DECLS", Message: "blank line wanted after declarations", File: "foo.c", Line: 20},
	})

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "foo.c:12: ERROR:TRAILING_WHITESPACE: trailing whitespace", lines[0])
	assert.Equal(t, "foo.c:20: CHECK:BLANK_AFTER_DECLS: blank line wanted after declarations", lines[1])
}

func TestPrinterSeverityFilter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, false, lint.SevWarn)

	p.Print([]lint.Diagnostic{
		{Severity: lint.SevCheck, Type: "BLANK_AFTER_DECLS", Message: "m", File: "f", Line: 1},
		{Severity: lint.SevWarn, Type: "LONG_LINE", Message: "m", File: "f", Line: 2},
	})

	out := buf.String()
	assert.NotContains(t, out, "BLANK_AFTER_DECLS")
	assert.Contains(t, out, "LONG_LINE")
}

func TestPrinterTerseSkipsDetail(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, true, lint.SevCheck)

	p.Print([]lint.Diagnostic{
		{Severity: lint.SevError, Type: "T", Message: "m", File: "f", Line: 1},
	})
	assert.Empty(t, buf.String())

	p.Summary(lint.Counts{Errors: 1}, 10)
	assert.Equal(t, "total: 1 errors, 0 warnings, 0 checks, 10 lines checked\n", buf.String())
}

func TestWriteFix(t *testing.T) {
	input := filepath.Join(t.TempDir(), "change.diff")
	out, err := WriteFix(input, []string{"+int a;", "+int b;"})
	require.NoError(t, err)
	assert.Equal(t, input+FixSuffix, out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "+int a;\n+int b;\n", string(data))
}

func TestFixDiff(t *testing.T) {
	orig := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	fixed := []string{"a", "b", "c", "d", "E", "f", "g", "h"}

	var buf bytes.Buffer
	require.NoError(t, FixDiff(&buf, "foo.c", orig, fixed, []int{4}))

	out := buf.String()
	assert.Contains(t, out, "--- a/foo.c")
	assert.Contains(t, out, "+++ b/foo.c")
	assert.Contains(t, out, "-e\n")
	assert.Contains(t, out, "+E\n")
	assert.Contains(t, out, "@@ -2,7 +2,7 @@")
}

func TestFixDiffNoChanges(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FixDiff(&buf, "foo.c", []string{"a"}, []string{"a"}, nil))
	assert.Empty(t, buf.String())
}

func TestGroupChanges(t *testing.T) {
	tests := []struct {
		changed []int
		gap     int
		want    [][]int
	}{
		{[]int{1, 2, 3}, 6, [][]int{{1, 2, 3}}},
		{[]int{1, 20}, 6, [][]int{{1}, {20}}},
		{[]int{1, 7, 20, 21}, 6, [][]int{{1, 7}, {20, 21}}},
		{nil, 6, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupChanges(tt.changed, tt.gap))
	}
}
