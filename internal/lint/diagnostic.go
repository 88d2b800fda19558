package lint

// Diagnostic is one rule outcome: severity, a stable type tag, a human
// message and the originating location. Never mutated after creation.
type Diagnostic struct {
	Severity Severity
	// Type is the stable category identifier, e.g. "LONG_LINE".
	Type    string
	Message string
	File    string
	// Line is the new-file line number the diagnostic refers to.
	Line int
}

// Counts aggregates diagnostics per severity.
type Counts struct {
	Checks   int
	Warnings int
	Errors   int
}

func (c Counts) Total() int {
	return c.Checks + c.Warnings + c.Errors
}

// Collector accumulates diagnostics in arrival order, applying the ignore
// set and per-type throttling before anything is counted. Suppressed
// diagnostics never reach the report, the exit status or the fix buffer.
type Collector struct {
	items    []Diagnostic
	counts   Counts
	byType   map[string]int
	ignore   map[string]bool
	throttle int
}

// NewCollector builds a collector. throttle caps how many diagnostics of
// one type are kept; 0 disables the cap.
func NewCollector(ignore []string, throttle int) *Collector {
	ig := make(map[string]bool, len(ignore))
	for _, t := range ignore {
		ig[t] = true
	}
	return &Collector{
		byType:   make(map[string]int),
		ignore:   ig,
		throttle: throttle,
	}
}

// Add records d unless its type is ignored or throttled. The return value
// tells the caller whether a matching autofix may be applied.
func (c *Collector) Add(d Diagnostic) bool {
	if c.ignore[d.Type] {
		return false
	}
	if c.throttle > 0 && c.byType[d.Type] >= c.throttle {
		return false
	}
	c.byType[d.Type]++
	c.items = append(c.items, d)
	switch d.Severity {
	case SevCheck:
		c.counts.Checks++
	case SevWarn:
		c.counts.Warnings++
	case SevError:
		c.counts.Errors++
	}
	return true
}

// Items returns the collected diagnostics in arrival order.
func (c *Collector) Items() []Diagnostic {
	return c.items
}

func (c *Collector) Counts() Counts {
	return c.counts
}

// Seen returns how many diagnostics of one type were kept so far. Rules
// may consult this for their own suppression heuristics.
func (c *Collector) Seen(diagType string) int {
	return c.byType[diagType]
}

func (c *Collector) HasErrors() bool {
	return c.counts.Errors > 0
}

func (c *Collector) HasWarnings() bool {
	return c.counts.Warnings > 0
}
