package lint

import (
	"patchlint/internal/patch"
	"patchlint/internal/scan"
	"patchlint/internal/vcs"
	"patchlint/pkg/config"
)

// Result is everything one pass produced: the surviving diagnostics, the
// candidate fix buffer and bookkeeping for the summary line.
type Result struct {
	Diagnostics  []Diagnostic
	Counts       Counts
	LinesChecked int

	// FixLines is the full candidate output when any fix was applied;
	// otherwise it is byte-identical to the input.
	FixLines   []string
	FixApplied bool
	// FixedIndexes are the absolute input line indexes that were rewritten.
	FixedIndexes []int
}

// Engine drives one processing pass: patch lines in, diagnostics and a
// fix buffer out. All state is owned by the pass; an Engine value may be
// reused but never shared across concurrent passes.
type Engine struct {
	cfg      *config.Config
	registry *Registry
	owners   vcs.Ownership
}

func NewEngine(cfg *config.Config, registry *Registry) *Engine {
	return &Engine{cfg: cfg, registry: registry}
}

// WithOwnership attaches ownership data; without it the per-file owner
// coverage check is skipped.
func (e *Engine) WithOwnership(o vcs.Ownership) *Engine {
	e.owners = o
	return e
}

// Check runs the full pipeline over a parsed patch. inputName is used for
// diagnostics that cannot be attributed to a file inside the patch.
// wholeFile marks input produced by patch.ParseFile, where raw lines carry
// no diff markers.
func (e *Engine) Check(inputName string, p *patch.Patch, wholeFile bool) *Result {
	collector := NewCollector(e.cfg.Ignore, e.cfg.ThrottleLimit)
	fixbuf := NewFixBuffer(p.Raw)
	linesChecked := 0

	for _, prob := range p.Problems {
		collector.Add(Diagnostic{
			Severity: SevError,
			Type:     "MALFORMED_PATCH",
			Message:  prob.Message,
			File:     inputName,
			Line:     prob.Index + 1,
		})
	}

	for fi := range p.Files {
		file := &p.Files[fi]
		path := file.Path
		if path == "" {
			path = inputName
		}
		language := patch.Language(path)

		if e.owners != nil && file.Path != "" {
			if _, ok := e.owners.Owners(file.Path); !ok {
				collector.Add(Diagnostic{
					Severity: SevCheck,
					Type:     "MISSING_OWNERS",
					Message:  "no OWNERS coverage for this file",
					File:     path,
					Line:     fileStartLine(file),
				})
			}
		}

		for hi := range file.Hunks {
			hunk := &file.Hunks[hi]
			// Hunks are discontiguous regions: no lexical state may
			// leak across the boundary.
			var rec scan.Reconstructor
			tracker := NewTracker(e.cfg.TabWidth, language, wholeFile)

			for _, line := range hunk.Lines {
				if line.Origin != patch.OriginContext && line.Origin != patch.OriginAdded {
					continue
				}
				linesChecked++
				l, done := rec.Push(line)
				if !done {
					continue
				}
				e.dispatch(l, tracker, collector, fixbuf, path, wholeFile)
			}
			if l, ok := rec.Flush(); ok {
				e.dispatch(l, tracker, collector, fixbuf, path, wholeFile)
			}
		}
	}

	return &Result{
		Diagnostics:  collector.Items(),
		Counts:       collector.Counts(),
		LinesChecked: linesChecked,
		FixLines:     fixbuf.Lines(),
		FixApplied:   fixbuf.Dirty(),
		FixedIndexes: fixbuf.Changed(),
	}
}

func (e *Engine) dispatch(l *scan.Logical, tracker *Tracker, collector *Collector, fixbuf *FixBuffer, path string, wholeFile bool) {
	ctx := tracker.Observe(l)

	for _, rule := range e.registry.Rules() {
		if rule.Strict() && !e.cfg.Strict {
			continue
		}
		for _, out := range rule.Check(l, &ctx, e.cfg) {
			target := l.First()
			if out.LineOffset > 0 && out.LineOffset < len(l.Lines) {
				target = l.Lines[out.LineOffset]
			}
			kept := collector.Add(Diagnostic{
				Severity: out.Severity,
				Type:     out.Type,
				Message:  out.Message,
				File:     path,
				Line:     diagLine(target),
			})
			if kept && out.HasFix && e.cfg.Fix {
				text := out.Fix
				if !wholeFile {
					// Keep the diff marker the input line carried.
					text = string(marker(target.Origin)) + text
				}
				fixbuf.Set(target.Index, text)
			}
		}
	}

	tracker.Advance(l)
}

func fileStartLine(f *patch.File) int {
	if len(f.Hunks) > 0 && f.Hunks[0].NewStart > 0 {
		return f.Hunks[0].NewStart
	}
	return 1
}

func diagLine(line patch.RawLine) int {
	if line.NewLine > 0 {
		return line.NewLine
	}
	return line.OldLine
}

func marker(origin patch.LineOrigin) byte {
	switch origin {
	case patch.OriginAdded:
		return '+'
	case patch.OriginRemoved:
		return '-'
	}
	return ' '
}
