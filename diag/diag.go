package diag

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("pgen.diag")
}

// Severity classifies a Diagnostic.
type Severity int

const (
	// Info notes something unusual but harmless, e.g. a rule that may
	// produce the empty string.
	Info Severity = iota
	// Warning notes a condition the generator resolved by convention,
	// e.g. accelerator ambiguity resolved last-write-wins.
	Warning
	// Error notes a condition spec.md treats as a hard failure once
	// table construction has progressed far enough to detect it, e.g.
	// left recursion.
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is one reported problem, attributed to the rule that
// triggered it.
type Diagnostic struct {
	Severity Severity
	Rule     string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Rule, d.Message)
}

// Collector accumulates Diagnostics in report order, dropping exact
// duplicates (same severity, rule, and message) so a problem detected
// from more than one code path is reported once.
type Collector struct {
	items []Diagnostic
	seen  map[Diagnostic]bool
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{seen: make(map[Diagnostic]bool)}
}

// Add records d, logging it through the package tracer, unless an
// identical Diagnostic was already recorded.
func (c *Collector) Add(d Diagnostic) {
	if c.seen[d] {
		return
	}
	c.seen[d] = true
	c.items = append(c.items, d)
	switch d.Severity {
	case Error:
		tracer().Errorf(d.Message)
	case Warning:
		tracer().Infof(d.Message)
	default:
		tracer().Debugf(d.Message)
	}
}

// Items returns all recorded diagnostics in report order.
func (c *Collector) Items() []Diagnostic {
	return c.items
}

// HasErrors reports whether any recorded diagnostic has Severity Error.
func (c *Collector) HasErrors() bool {
	for _, d := range c.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
