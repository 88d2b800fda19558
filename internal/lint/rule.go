package lint

import (
	"fmt"

	"patchlint/internal/scan"
	"patchlint/pkg/config"
)

// Outcome is one result of evaluating a rule against a logical line.
type Outcome struct {
	Severity Severity
	Type     string
	Message  string
	// LineOffset selects which constituent physical line the outcome
	// refers to. 0 is the first physical line.
	LineOffset int
	// Fix replaces the selected physical line when HasFix is set and
	// autofix mode is enabled.
	Fix    string
	HasFix bool
}

// At attaches a constituent line offset to an outcome.
func (o Outcome) At(offset int) Outcome {
	o.LineOffset = offset
	return o
}

// Fixed attaches a replacement line to an outcome.
func (o Outcome) Fixed(line string) Outcome {
	o.Fix = line
	o.HasFix = true
	return o
}

// Rule is one style heuristic. Rules are independent: they must not rely
// on side effects of other rules within the same line, and unexpected
// structure means "no match", never an error.
type Rule interface {
	Name() string
	// Strict reports whether the rule runs only in strict mode.
	Strict() bool
	Check(l *scan.Logical, ctx *Context, cfg *config.Config) []Outcome
}

// Registry holds rules in registration order; invocation order is
// registration order.
type Registry struct {
	rules []Rule
	names map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{names: make(map[string]bool)}
}

func (r *Registry) Register(rule Rule) {
	if r.names[rule.Name()] {
		panic(fmt.Sprintf("BUG: rule %q registered twice", rule.Name()))
	}
	r.names[rule.Name()] = true
	r.rules = append(r.rules, rule)
}

func (r *Registry) Rules() []Rule {
	return r.rules
}

func (r *Registry) Len() int {
	return len(r.rules)
}
