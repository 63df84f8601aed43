package nfa

import "github.com/go-pgen/pgen/grammar"

// minimizeDFA runs the conservative equivalence-class merger described
// in spec §4.5: two states are "same" if they share an accepting flag,
// an arc count, and pairwise-equal arcs in insertion order. This is
// deliberately insertion-order sensitive (no canonical sort of arcs
// before comparing) — it does not always find the minimal DFA, but
// usually makes a much smaller one, and two semantically equivalent
// DFAs built in different rule order may not merge into the same
// shape. That is documented behavior, preserved here on purpose.
func minimizeDFA(d *grammar.DFA) {
	deleted := make([]bool, len(d.States))
	for changed := true; changed; {
		changed = false
		for i := 1; i < len(d.States); i++ {
			if deleted[i] {
				continue
			}
			for j := 0; j < i; j++ {
				if deleted[j] {
					continue
				}
				if sameState(d.States[i], d.States[j]) {
					deleted[i] = true
					retargetArcs(d, i, j)
					changed = true
					break
				}
			}
		}
	}
	renumber(d, deleted)
	addAcceptSelfLoops(d)
}

func sameState(a, b *grammar.State) bool {
	if a.Accept != b.Accept || len(a.Arcs) != len(b.Arcs) {
		return false
	}
	for i := range a.Arcs {
		if a.Arcs[i] != b.Arcs[i] {
			return false
		}
	}
	return true
}

func retargetArcs(d *grammar.DFA, from, to int) {
	for _, s := range d.States {
		for i := range s.Arcs {
			if s.Arcs[i].Arrow == from {
				s.Arcs[i].Arrow = to
			}
		}
	}
}

// renumber drops deleted states and renumbers the survivors
// contiguously starting at 0, preserving relative order — so state 0
// (never deleted, since the outer loop only considers i > 0) remains
// index 0, keeping d.Initial valid without adjustment.
func renumber(d *grammar.DFA, deleted []bool) {
	newIndex := make([]int, len(d.States))
	live := make([]*grammar.State, 0, len(d.States))
	for i, s := range d.States {
		if deleted[i] {
			continue
		}
		newIndex[i] = len(live)
		live = append(live, s)
	}
	for _, s := range live {
		for i := range s.Arcs {
			s.Arcs[i].Arrow = newIndex[s.Arcs[i].Arrow]
		}
	}
	d.States = live
	d.Initial = 0
}

// addAcceptSelfLoops appends, to every accepting state, a self-arc
// labeled grammar.Empty. This is how the final tables encode
// acceptance: a distinguished arc labeled 0 that loops.
func addAcceptSelfLoops(d *grammar.DFA) {
	for i, s := range d.States {
		if s.Accept {
			d.AddArc(i, i, grammar.Empty)
		}
	}
}
