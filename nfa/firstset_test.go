package nfa

import (
	"testing"

	"github.com/go-pgen/pgen"
	"github.com/go-pgen/pgen/diag"
	"github.com/go-pgen/pgen/grammar"
)

func TestComputeFirstSetTerminalOnly(t *testing.T) {
	g := grammar.NewGrammar(pgen.NTOffset)
	d := g.AddDFA(pgen.NTOffset, "r")
	s0 := d.AddState()
	s1 := d.AddState()
	lbl := g.AddLabel(pgen.NAME, "")
	d.AddArc(s0, s1, lbl)

	b := &builder{g: g, diags: diag.NewCollector()}
	b.computeFirstSet(d)

	if !d.First.Test(lbl) {
		t.Fatalf("expected FIRST(r) to contain the NAME label")
	}
}

func TestComputeFirstSetRecursesIntoNonterminal(t *testing.T) {
	g := grammar.NewGrammar(pgen.NTOffset)
	term := g.AddDFA(pgen.NTOffset+1, "term")
	ts0 := term.AddState()
	ts1 := term.AddState()
	nameLbl := g.AddLabel(pgen.NAME, "")
	term.AddArc(ts0, ts1, nameLbl)

	expr := g.AddDFA(pgen.NTOffset, "expr")
	es0 := expr.AddState()
	es1 := expr.AddState()
	termLbl := g.AddLabel(term.Kind, "")
	expr.AddArc(es0, es1, termLbl)

	b := &builder{g: g, diags: diag.NewCollector()}
	b.computeFirstSet(expr)

	if !expr.First.Test(nameLbl) {
		t.Fatalf("expected FIRST(expr) to include NAME via FIRST(term)")
	}
}

func TestComputeFirstSetDetectsLeftRecursion(t *testing.T) {
	g := grammar.NewGrammar(pgen.NTOffset)
	s := g.AddDFA(pgen.NTOffset, "s")
	s0 := s.AddState()
	s1 := s.AddState()
	selfLbl := g.AddLabel(s.Kind, "")
	s.AddArc(s0, s1, selfLbl)

	diags := diag.NewCollector()
	b := &builder{g: g, diags: diags}
	b.computeFirstSet(s)

	if !diags.HasErrors() {
		t.Fatalf("expected a left-recursion diagnostic")
	}
	if s.First == leftRecursionSentinel {
		t.Fatalf("expected First to be replaced with a real (possibly empty) set after detection")
	}
}
