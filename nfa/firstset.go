package nfa

import (
	"fmt"

	"github.com/go-pgen/pgen/bitset"
	"github.com/go-pgen/pgen/diag"
	"github.com/go-pgen/pgen/grammar"
)

// leftRecursionSentinel is installed as a DFA's First field the moment
// its computation begins, so a recursive call that finds the sentinel
// still there knows it has looped back onto a FIRST set under
// construction: left recursion. Mirrors the static `dummy` bitset in
// Parser/firstsets.c.
var leftRecursionSentinel = &bitset.Set{}

// computeFirstSet fills in d.First, recursing into the FIRST sets of
// any nonterminal reachable directly from d's initial state. Only the
// initial state's own arcs are consulted: deeper states are unreachable
// at position zero by construction, since the first symbol of a rule
// comes off the initial state.
func (b *builder) computeFirstSet(d *grammar.DFA) {
	if d.First != nil {
		return
	}
	d.First = leftRecursionSentinel
	first := bitset.New(b.g.Labels.Len())
	for _, a := range d.States[d.Initial].Arcs {
		if a.Label == grammar.Empty {
			continue
		}
		lbl := b.g.Labels.At(a.Label)
		if !lbl.Kind.IsNonterminal() {
			first.Add(a.Label)
			continue
		}
		nd := b.g.FindDFA(lbl.Kind)
		if nd == nil {
			continue
		}
		if nd.First == leftRecursionSentinel {
			b.diags.Add(diag.Diagnostic{
				Severity: diag.Error,
				Rule:     d.Name,
				Message:  fmt.Sprintf("left recursion through %s", nd.Name),
			})
			continue
		}
		if nd.First == nil {
			b.computeFirstSet(nd)
		}
		first.UnionInto(nd.First)
	}
	d.First = first
	tracer().Debugf("FIRST(%s) = %v", d.Name, first.Bits())
}
