package nfa

import (
	"sort"

	"github.com/go-pgen/pgen/bitset"
	"github.com/go-pgen/pgen/diag"
	"github.com/go-pgen/pgen/grammar"
)

// epsilonClosure returns the ε-closure of seed: every NFA state reachable
// from a member via ε-labeled arcs only. The DFS returns early out of a
// branch as soon as bitset.Add reports "already present", since nothing
// new can follow from a state already fully explored.
func (b *builder) epsilonClosure(n *nfa, seed []int) *bitset.Set {
	closure := bitset.New(len(n.states))
	stack := make([]int, 0, len(seed))
	for _, s := range seed {
		if closure.Add(s) {
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, a := range n.states[s].arcs {
			if a.label != grammarEmpty {
				continue
			}
			if closure.Add(a.to) {
				stack = append(stack, a.to)
			}
		}
	}
	return closure
}

// subsetEntry records one DFA state's originating NFA-state subset
// during construction, so a freshly computed target subset can be
// compared for bit-identity against every subset seen so far.
type subsetEntry struct {
	subset *bitset.Set
}

// buildDFA runs subset construction over n, filling in the states and
// arcs of d (already registered under b.g by the caller, before label
// translation, so cross-rule references resolve correctly). Reports
// "nonterminal may produce empty" if the finish state is in the initial
// ε-closure.
func (b *builder) buildDFA(n *nfa, d *grammar.DFA) {
	init := b.epsilonClosure(n, []int{n.start})
	if init.Test(n.finish) {
		b.diags.Add(diag.Diagnostic{
			Severity: diag.Info,
			Rule:     n.name,
			Message:  "nonterminal may produce empty",
		})
	}
	entries := []subsetEntry{{subset: init}}
	idx0 := d.AddState()
	d.States[idx0].Accept = init.Test(n.finish)

	for processed := 0; processed < len(entries); processed++ {
		cur := entries[processed]

		byLabel := make(map[int]*bitset.Set)
		for _, s := range cur.subset.Bits() {
			for _, a := range n.states[s].arcs {
				if a.label == grammarEmpty {
					continue
				}
				dest, ok := byLabel[a.label]
				if !ok {
					dest = bitset.New(len(n.states))
					byLabel[a.label] = dest
				}
				dest.Add(a.to)
			}
		}

		labels := make([]int, 0, len(byLabel))
		for l := range byLabel {
			labels = append(labels, l)
		}
		sort.Ints(labels)

		for _, label := range labels {
			target := b.epsilonClosure(n, byLabel[label].Bits())
			destIdx := -1
			for i, e := range entries {
				if e.subset.Equal(target) {
					destIdx = i
					break
				}
			}
			if destIdx == -1 {
				entries = append(entries, subsetEntry{subset: target})
				destIdx = d.AddState()
				d.States[destIdx].Accept = target.Test(n.finish)
			}
			d.AddArc(processed, destIdx, label)
		}
	}

	tracer().Debugf("built dfa %q: %d nfa states -> %d dfa states", n.name, len(n.states), len(d.States))
}
