package grammar

import (
	"fmt"

	"github.com/go-pgen/pgen"

	"github.com/go-pgen/pgen/diag"
)

const (
	// NoTransition marks an accelerator slot with no transition.
	NoTransition int32 = -1

	ntFlag     = 1 << 7
	ntKindMask = 0x7f
	ntKindBits = 8
	arrowMask  = 0x7f
)

// PackTerminal encodes a terminal shift: the word is simply the
// destination state.
func PackTerminal(dest int) int32 {
	return int32(dest)
}

// PackNonterminal encodes a nonterminal push: bit 7 set, bits 8..14 hold
// ntKind - NTOffset, and the low 7 bits hold dest. Returns an error if
// either value overflows its 7-bit field, mirroring the "XXX too many
// states!" / "XXX too high nonterminal number!" bounds checks in
// Parser/acceler.c.
func PackNonterminal(ntKind pgen.TokType, dest int) (int32, error) {
	if dest >= 1<<7 {
		return 0, fmt.Errorf("grammar: destination state %d does not fit in 7 bits", dest)
	}
	offset := int(ntKind - pgen.NTOffset)
	if offset >= 1<<7 {
		return 0, fmt.Errorf("grammar: nonterminal offset %d does not fit in 7 bits", offset)
	}
	return int32(dest) | ntFlag | int32(offset<<ntKindBits), nil
}

// Unpack reports whether word encodes a nonterminal push, and if so the
// pushed kind and destination state; otherwise dest is the plain
// terminal-shift destination.
func Unpack(word int32) (isNonterminal bool, ntKind pgen.TokType, dest int) {
	if word&ntFlag != 0 {
		offset := (word >> ntKindBits) & ntKindMask
		return true, pgen.NTOffset + pgen.TokType(offset), int(word & arrowMask)
	}
	return false, 0, int(word)
}

// InstallAccelerators computes, for every state of every DFA in g, a
// lookup table indexed by label index. Requires every DFA to already
// have its FIRST set computed (package nfa does this before calling in).
// Ambiguities between two nonterminal FIRST sets landing on the same
// terminal are reported to diags and resolved last-write-wins, per
// spec.md's documented open question.
func InstallAccelerators(g *Grammar, diags *diag.Collector) {
	nl := g.Labels.Len()
	for _, d := range g.DFAs {
		for _, s := range d.States {
			fixState(g, d, s, nl, diags)
		}
	}
	g.AccelInstalled = true
}

func fixState(g *Grammar, d *DFA, s *State, nl int, diags *diag.Collector) {
	accel := make([]int32, nl)
	for i := range accel {
		accel[i] = NoTransition
	}
	s.Accept = false
	for _, a := range s.Arcs {
		lbl := g.Labels.At(a.Label)
		switch {
		case lbl.Kind.IsNonterminal():
			if a.Arrow >= 1<<7 {
				diags.Add(diag.Diagnostic{
					Severity: diag.Error,
					Rule:     d.Name,
					Message:  fmt.Sprintf("destination state %d does not fit in 7 bits", a.Arrow),
				})
				continue
			}
			n1 := g.FindDFA(lbl.Kind)
			if n1 == nil || n1.First == nil {
				continue
			}
			for _, ibit := range n1.First.Bits() {
				word, err := PackNonterminal(lbl.Kind, a.Arrow)
				if err != nil {
					diags.Add(diag.Diagnostic{Severity: diag.Error, Rule: d.Name, Message: err.Error()})
					continue
				}
				if accel[ibit] != NoTransition {
					diags.Add(diag.Diagnostic{
						Severity: diag.Warning,
						Rule:     d.Name,
						Message:  fmt.Sprintf("ambiguous accelerator at label %d, resolved last-write-wins", ibit),
					})
				}
				accel[ibit] = word
			}
		case a.Label == Empty:
			s.Accept = true
		case a.Label >= 0 && a.Label < nl:
			accel[a.Label] = PackTerminal(a.Arrow)
		}
	}

	upper := nl
	for upper > 0 && accel[upper-1] == NoTransition {
		upper--
	}
	lower := 0
	for lower < upper && accel[lower] == NoTransition {
		lower++
	}
	if lower < upper {
		s.Lower, s.Upper = lower, upper
		s.Accel = append([]int32(nil), accel[lower:upper]...)
	} else {
		s.Lower, s.Upper, s.Accel = 0, 0, nil
	}
}
