package lint_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patchlint/internal/lint"
	"patchlint/internal/patch"
	"patchlint/internal/rules"
	"patchlint/internal/vcs"
	"patchlint/pkg/config"
)

func newEngine(cfg *config.Config) *lint.Engine {
	return lint.NewEngine(cfg, rules.Default(rules.Deps{}))
}

func checkPatch(t *testing.T, cfg *config.Config, diffText string) *lint.Result {
	t.Helper()
	return newEngine(cfg).Check("test.diff", patch.Parse(diffText), false)
}

func diagTypes(res *lint.Result) []string {
	var types []string
	for _, d := range res.Diagnostics {
		types = append(types, d.Type)
	}
	return types
}

const braceDiff = `--- a/foo.c
+++ b/foo.c
@@ -0,0 +1,3 @@
+int foo(){
+return 1;
+}
`

func TestBraceStyleDiagnosticOnAddedFunction(t *testing.T) {
	res := checkPatch(t, config.Default(), braceDiff)

	var brace *lint.Diagnostic
	for i := range res.Diagnostics {
		if res.Diagnostics[i].Type == "OPEN_BRACE" {
			brace = &res.Diagnostics[i]
		}
		// The flat three-line function must not trip indentation rules.
		assert.NotEqual(t, "CODE_INDENT", res.Diagnostics[i].Type)
		assert.NotEqual(t, "DEEP_INDENTATION", res.Diagnostics[i].Type)
		assert.NotEqual(t, "SPACE_BEFORE_TAB", res.Diagnostics[i].Type)
	}

	require.NotNil(t, brace, "want an OPEN_BRACE diagnostic, got %v", diagTypes(res))
	assert.Equal(t, 1, brace.Line)
	assert.Equal(t, "foo.c", brace.File)
	assert.Equal(t, lint.SevError, brace.Severity)
}

func TestLongLineThresholdIsExact(t *testing.T) {
	line80 := "x = 1; //" + strings.Repeat("y ", 35) + "z" // 80 printable chars
	require.Len(t, line80, 80)
	line81 := line80 + "q"

	mkDiff := func(line string) string {
		return "--- a/foo.c\n+++ b/foo.c\n@@ -0,0 +1,1 @@\n+" + line + "\n"
	}

	cfg := config.Default()

	res := checkPatch(t, cfg, mkDiff(line80))
	assert.NotContains(t, diagTypes(res), "LONG_LINE", "80 columns must not fire")

	res = checkPatch(t, cfg, mkDiff(line81))
	count := 0
	for _, d := range res.Diagnostics {
		if d.Type == "LONG_LINE" {
			count++
			assert.Equal(t, lint.SevWarn, d.Severity)
			assert.Contains(t, d.Message, "81")
		}
	}
	assert.Equal(t, 1, count, "exactly one LONG_LINE for one long line")

	// The property holds even when the line is a single unbroken token.
	res = checkPatch(t, cfg, mkDiff(strings.Repeat("a", 81)))
	count = 0
	for _, d := range res.Diagnostics {
		if d.Type == "LONG_LINE" {
			count++
		}
	}
	assert.Equal(t, 1, count, "exactly one LONG_LINE for an unbroken 81-column token")
}

func TestFixRewritesSpaceBeforeTab(t *testing.T) {
	diffText := "--- a/foo.c\n+++ b/foo.c\n@@ -0,0 +1,1 @@\n+\t  \tx = 1;\n"

	cfg := config.Default()
	cfg.Fix = true
	res := checkPatch(t, cfg, diffText)

	assert.Contains(t, diagTypes(res), "SPACE_BEFORE_TAB",
		"the diagnostic is still emitted even though a fix was applied")
	require.True(t, res.FixApplied)

	// Input line index 3 holds the added line; the marker survives and
	// the indent collapses to a canonical tab run.
	assert.Equal(t, "+\t\tx = 1;", res.FixLines[3])
}

func TestFixBufferUntouchedWithoutFixMode(t *testing.T) {
	diffText := "--- a/foo.c\n+++ b/foo.c\n@@ -0,0 +1,1 @@\n+\t  \tx = 1;\n"

	res := checkPatch(t, config.Default(), diffText)
	assert.False(t, res.FixApplied)
	assert.Equal(t, patch.Parse(diffText).Raw, res.FixLines, "without --fix the output is byte-identical")
}

func TestIgnoreSuppressesTypeAndExitContribution(t *testing.T) {
	diffText := "--- a/foo.c\n+++ b/foo.c\n@@ -0,0 +1,1 @@\n+int a;   \n"

	cfg := config.Default()
	res := checkPatch(t, cfg, diffText)
	require.Contains(t, diagTypes(res), "TRAILING_WHITESPACE")
	require.True(t, res.Counts.Errors > 0)

	cfg = config.Default()
	cfg.Ignore = []string{"TRAILING_WHITESPACE"}
	res = checkPatch(t, cfg, diffText)
	assert.NotContains(t, diagTypes(res), "TRAILING_WHITESPACE")
	assert.Zero(t, res.Counts.Errors, "ignored type must not contribute to the exit status")
}

func TestIgnoredFixIsNotApplied(t *testing.T) {
	diffText := "--- a/foo.c\n+++ b/foo.c\n@@ -0,0 +1,1 @@\n+int a;   \n"

	cfg := config.Default()
	cfg.Fix = true
	cfg.Ignore = []string{"TRAILING_WHITESPACE"}
	res := checkPatch(t, cfg, diffText)

	assert.False(t, res.FixApplied, "suppressed diagnostics must not influence autofix")
}

func TestMalformedHunkBecomesDiagnostic(t *testing.T) {
	diffText := "--- a/foo.c\n+++ b/foo.c\n@@ -0,0 +1,1 @@\n+one\n+two\n"

	res := checkPatch(t, config.Default(), diffText)
	assert.Contains(t, diagTypes(res), "MALFORMED_PATCH")
}

func TestStrictRulesGatedByConfig(t *testing.T) {
	diffText := "--- a/foo.c\n+++ b/foo.c\n@@ -0,0 +1,1 @@\n+int a; /* TODO: later */\n"

	res := checkPatch(t, config.Default(), diffText)
	assert.NotContains(t, diagTypes(res), "TODO_MARKER")

	cfg := config.Default()
	cfg.Strict = true
	res = checkPatch(t, cfg, diffText)
	assert.Contains(t, diagTypes(res), "TODO_MARKER")
}

func TestWholeFileMode(t *testing.T) {
	content := "int main(void)\n{\n\treturn 0;\n}\n"
	res := newEngine(config.Default()).Check("main.c", patch.ParseFile("main.c", content), true)

	assert.Zero(t, res.Counts.Errors, "clean file must produce no errors, got %v", res.Diagnostics)
	assert.Equal(t, 4, res.LinesChecked)
}

func TestWholeFileUnbalancedBracket(t *testing.T) {
	content := "int main(void)\n{\n\treturn 0;\n}\n}\n"
	res := newEngine(config.Default()).Check("main.c", patch.ParseFile("main.c", content), true)

	assert.Contains(t, diagTypes(res), "UNBALANCED_BRACKET")
}

func TestMissingOwnersCoverage(t *testing.T) {
	owned := vcs.FakeOwnership{"drivers/net": {"alice"}}

	diffText := "--- a/foo.c\n+++ b/foo.c\n@@ -0,0 +1,1 @@\n+int a;\n"
	engine := newEngine(config.Default()).WithOwnership(owned)
	res := engine.Check("test.diff", patch.Parse(diffText), false)
	assert.Contains(t, diagTypes(res), "MISSING_OWNERS")

	diffText = "--- a/drivers/net/foo.c\n+++ b/drivers/net/foo.c\n@@ -0,0 +1,1 @@\n+int a;\n"
	res = engine.Check("test.diff", patch.Parse(diffText), false)
	assert.NotContains(t, diagTypes(res), "MISSING_OWNERS")

	// Without ownership data the check is skipped entirely.
	res = newEngine(config.Default()).Check("test.diff", patch.Parse(diffText), false)
	assert.NotContains(t, diagTypes(res), "MISSING_OWNERS")
}

func TestThrottleCapsRepeats(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("--- a/foo.c\n+++ b/foo.c\n@@ -0,0 +1,20 @@\n")
	for i := 0; i < 20; i++ {
		sb.WriteString("+int a;   \n")
	}

	cfg := config.Default()
	cfg.ThrottleLimit = 3
	res := checkPatch(t, cfg, sb.String())

	count := 0
	for _, d := range res.Diagnostics {
		if d.Type == "TRAILING_WHITESPACE" {
			count++
		}
	}
	assert.Equal(t, 3, count)
}
