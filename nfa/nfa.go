package nfa

import (
	"github.com/go-pgen/pgen"
	"github.com/npillmayer/schuko/tracing"

	"github.com/go-pgen/pgen/grammar"
)

func tracer() tracing.Trace {
	return tracing.Select("pgen.nfa")
}

// arc is a labeled transition in an NFA; label grammar.Empty denotes ε.
type arc struct {
	label int
	to    int
}

// state is one state of a builder-internal NFA.
type state struct {
	arcs []arc
}

// nfa is the builder-internal automaton for one rule: similar shape to
// grammar.DFA, but arcs may carry the empty label, states are created
// lazily as the rule's body is compiled, and two distinguished indices
// record the fragment's overall entry and exit. Discarded once
// converted to a DFA.
type nfa struct {
	name   string
	kind   pgen.TokType
	states []*state
	start  int
	finish int
}

func newNFA(name string, kind pgen.TokType) *nfa {
	return &nfa{name: name, kind: kind}
}

// addState appends a new, empty state and returns its index.
func (n *nfa) addState() int {
	n.states = append(n.states, &state{})
	return len(n.states) - 1
}

// addArc adds an arc from -> to labeled label (grammar.Empty for ε).
func (n *nfa) addArc(from, to, label int) {
	n.states[from].arcs = append(n.states[from].arcs, arc{label: label, to: to})
}

// GeneratorContext carries the state that CPython's pgen.c keeps in a
// file-static variable (the monotonic nonterminal-kind counter in
// newnfa) and a debug flag, so the builder has no package-level mutable
// state and two grammars can be built concurrently from two contexts.
type GeneratorContext struct {
	Debug bool

	nextKind pgen.TokType
}

// NewGeneratorContext returns a context whose nonterminal kinds start
// at pgen.NTOffset.
func NewGeneratorContext() *GeneratorContext {
	return &GeneratorContext{nextKind: pgen.NTOffset}
}

func (c *GeneratorContext) newNonterminalKind() pgen.TokType {
	k := c.nextKind
	c.nextKind++
	return k
}

// grammarEmpty aliases package grammar's reserved empty-label index, the
// ε label on NFA arcs built by this package.
const grammarEmpty = grammar.Empty
