package nfa

import (
	"fmt"

	"github.com/go-pgen/pgen"
	"github.com/go-pgen/pgen/diag"
	"github.com/go-pgen/pgen/grammar"
	"github.com/go-pgen/pgen/metagrammar"
)

// Build compiles root (an MSTART concrete syntax tree from package
// metagrammar) into a grammar.Grammar: one NFA per rule via Thompson
// construction, subset construction into a DFA, minimization, FIRST-set
// analysis, label translation, and accelerator installation. Diagnostics
// collected along the way (left recursion, "may produce empty",
// accelerator ambiguity) are returned alongside the grammar; they are
// non-fatal, so a grammar is always returned when no rule is malformed
// enough to fail outright.
func Build(ctx *GeneratorContext, root *metagrammar.Node) (*grammar.Grammar, *diag.Collector, error) {
	if ctx == nil {
		ctx = NewGeneratorContext()
	}
	diags := diag.NewCollector()
	g := grammar.NewGrammar(pgen.NTOffset)
	b := &builder{ctx: ctx, g: g, byName: make(map[string]*nfa), diags: diags}

	for _, child := range root.Children {
		if child.Kind != pgen.RULE {
			continue
		}
		if err := b.compileRule(child); err != nil {
			return nil, diags, err
		}
	}
	if len(b.order) == 0 {
		return nil, diags, fmt.Errorf("nfa: grammar defines no rules")
	}
	g.Start = b.order[0].kind

	// Register every rule's DFA before translating labels, so a NAME
	// label referencing a rule (including a forward or self reference)
	// resolves against a name that already exists in the grammar.
	dfas := make([]*grammar.DFA, len(b.order))
	for i, n := range b.order {
		dfas[i] = g.AddDFA(n.kind, n.name)
	}
	g.TranslateLabels()

	for i, n := range b.order {
		b.buildDFA(n, dfas[i])
	}
	for _, d := range dfas {
		minimizeDFA(d)
	}
	for _, d := range dfas {
		b.computeFirstSet(d)
	}
	grammar.InstallAccelerators(g, diags)

	return g, diags, nil
}
