package lint

import (
	"regexp"
	"strings"

	"patchlint/internal/scan"
)

// Context is a point-in-time snapshot of the tracker handed to rules.
// Rules must treat it as read only; Prev is a lookback reference and is
// never mutated through.
type Context struct {
	// Prev is the previous non-blank logical line, nil at start of file.
	Prev *scan.Logical
	// Indent is the indentation of the current line in display columns,
	// tabs expanded to the configured width.
	Indent int
	// InComment is set while the stream is inside a block comment that
	// spans logical lines.
	InComment bool
	// PrevIsDecl is set when Prev looks like a pure variable declaration.
	PrevIsDecl bool
	// BlankRun counts the consecutive blank logical lines immediately
	// before the current one.
	BlankRun int
	// Language is the detected source language of the enclosing file,
	// empty when unknown.
	Language string
	// WholeFile is set when the input is a full file rather than a patch.
	WholeFile bool
}

// CFamily reports whether structural C-style rules apply to this file.
func (c *Context) CFamily() bool {
	switch c.Language {
	case "c", "cpp", "go", "java", "javascript", "typescript", "rust":
		return true
	}
	return false
}

// declRE approximates a C-style variable declaration: optional qualifiers,
// a type name, then declarators, ending in a semicolon with no call parens.
var declRE = regexp.MustCompile(`^\s*(?:(?:static|const|unsigned|signed|struct|union|enum|register|volatile|extern)\s+)*[A-Za-z_][A-Za-z0-9_]*\s+\**[A-Za-z_][A-Za-z0-9_]*(?:\s*\[[^\]]*\])?(?:\s*=[^;]*)?;\s*$`)

// IsDeclaration reports whether a masked line looks like a local variable
// declaration. Best effort; unexpected structure means "no".
func IsDeclaration(stripped string) bool {
	if strings.Contains(stripped, "(") {
		return false
	}
	return declRE.MatchString(stripped)
}

// Tracker maintains the sliding context over the logical-line stream.
// Only Advance mutates it; rules receive copies via Observe.
type Tracker struct {
	tabWidth  int
	language  string
	wholeFile bool

	prev       *scan.Logical
	prevIsDecl bool
	blankRun   int
}

func NewTracker(tabWidth int, language string, wholeFile bool) *Tracker {
	if tabWidth <= 0 {
		tabWidth = 8
	}
	return &Tracker{tabWidth: tabWidth, language: language, wholeFile: wholeFile}
}

// Observe computes the per-line context for l without consuming it.
// Call before dispatching rules; call Advance after.
func (t *Tracker) Observe(l *scan.Logical) Context {
	return Context{
		Prev:       t.prev,
		Indent:     IndentWidth(l.Stripped[0], t.tabWidth),
		InComment:  l.EntryDepth > 0,
		PrevIsDecl: t.prevIsDecl,
		BlankRun:   t.blankRun,
		Language:   t.language,
		WholeFile:  t.wholeFile,
	}
}

// Advance folds l into the tracker state. Incremental by construction:
// cost is constant per logical line.
func (t *Tracker) Advance(l *scan.Logical) {
	if l.Blank() {
		t.blankRun++
		return
	}
	t.blankRun = 0
	t.prev = l
	t.prevIsDecl = IsDeclaration(l.Stripped[len(l.Stripped)-1])
}

// IndentWidth measures leading whitespace in display columns, expanding
// tabs to the next multiple of tabWidth.
func IndentWidth(line string, tabWidth int) int {
	col := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col = (col/tabWidth + 1) * tabWidth
		default:
			return col
		}
	}
	return col
}
