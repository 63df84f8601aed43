package parser

import (
	"testing"

	"github.com/go-pgen/pgen"
	"github.com/go-pgen/pgen/metagrammar"
	"github.com/go-pgen/pgen/nfa"
)

func TestEngineTwoTerminals(t *testing.T) {
	root, err := metagrammar.Parse("start: 'a' 'b'\n")
	if err != nil {
		t.Fatalf("metagrammar.Parse: %v", err)
	}
	g, diags, err := nfa.Build(nil, root)
	if err != nil {
		t.Fatalf("nfa.Build: %v", err)
	}
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Items())
	}

	e := NewEngine(g)
	keyA, ok := g.Labels.Find(pgen.NAME, "a")
	if !ok {
		t.Fatalf("expected interned keyword \"a\"")
	}
	_ = keyA

	res, err := e.AddToken(pgen.NAME, "a", 1)
	if err != nil {
		t.Fatalf("unexpected error on first token: %v", err)
	}
	if res != pgen.Consumed {
		t.Fatalf("expected Consumed after first token, got %s", res)
	}

	res, err = e.AddToken(pgen.NAME, "b", 1)
	if err != nil {
		t.Fatalf("unexpected error on second token: %v", err)
	}
	if res != pgen.Done {
		t.Fatalf("expected Done after second token, got %s", res)
	}

	tree := e.Tree()
	if tree.Kind != pgen.NTOffset {
		t.Fatalf("expected root kind to be the start nonterminal")
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 children, got %d: %+v", len(tree.Children), tree.Children)
	}
	if tree.Children[0].Lexeme != "a" || tree.Children[1].Lexeme != "b" {
		t.Fatalf("unexpected child lexemes: %q %q", tree.Children[0].Lexeme, tree.Children[1].Lexeme)
	}
}

func TestEngineRepeatedAlternation(t *testing.T) {
	root, err := metagrammar.Parse("expr: term ('+' term)*\nterm: NAME\n")
	if err != nil {
		t.Fatalf("metagrammar.Parse: %v", err)
	}
	g, diags, err := nfa.Build(nil, root)
	if err != nil {
		t.Fatalf("nfa.Build: %v", err)
	}
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Items())
	}

	e := NewEngine(g)
	tokens := []struct {
		kind   pgen.TokType
		lexeme string
	}{
		{pgen.NAME, "x"},
		{pgen.NAME, "+"},
		{pgen.NAME, "y"},
		{pgen.NAME, "+"},
		{pgen.NAME, "z"},
		{pgen.ENDMARKER, ""},
	}
	// "+" is a single-character string literal, translated to its
	// dedicated PLUS kind rather than staying a NAME keyword; NAME
	// identifiers like x/y/z are lexed with kind NAME directly. The
	// trailing ENDMARKER ends the ('+' term)* loop, which could
	// otherwise still continue after "z".
	var last pgen.Result
	for i, tc := range tokens {
		kind := tc.kind
		if tc.lexeme == "+" {
			kind = pgen.PLUS
		}
		var err error
		last, err = e.AddToken(kind, tc.lexeme, i+1)
		if err != nil {
			t.Fatalf("unexpected error feeding token %d (%v %q): %v", i, kind, tc.lexeme, err)
		}
	}
	if last != pgen.Done {
		t.Fatalf("expected Done after full token stream, got %s", last)
	}

	tree := e.Tree()
	if len(tree.Children) != 5 {
		t.Fatalf("expected 5 children (term + term)*2, got %d: %+v", len(tree.Children), tree.Children)
	}
}

func TestEngineOptionalRuleAcceptsEmpty(t *testing.T) {
	root, err := metagrammar.Parse("rule: [NAME]\n")
	if err != nil {
		t.Fatalf("metagrammar.Parse: %v", err)
	}
	g, diags, err := nfa.Build(nil, root)
	if err != nil {
		t.Fatalf("nfa.Build: %v", err)
	}
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Items())
	}

	start := g.StartDFA()
	if !start.States[start.Initial].Accept {
		t.Fatalf("expected the optional rule's initial state to already be accepting")
	}

	e := NewEngine(g)
	if len(e.Tree().Children) != 0 {
		t.Fatalf("expected no children before any token is fed, got %+v", e.Tree().Children)
	}
}

func TestEngineSyntaxError(t *testing.T) {
	root, err := metagrammar.Parse("start: 'a' 'b'\n")
	if err != nil {
		t.Fatalf("metagrammar.Parse: %v", err)
	}
	g, diags, err := nfa.Build(nil, root)
	if err != nil {
		t.Fatalf("nfa.Build: %v", err)
	}
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Items())
	}

	e := NewEngine(g)
	res, err := e.AddToken(pgen.STRING, "nope", 1)
	if res != pgen.Syntax {
		t.Fatalf("expected Syntax feeding a STRING where keyword \"a\" is required, got %s", res)
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("expected a *SyntaxError, got %T", err)
	}
}

func TestEngineStackOverflowPanicsOnZeroCapacity(t *testing.T) {
	root, err := metagrammar.Parse("start: 'a' 'b'\n")
	if err != nil {
		t.Fatalf("metagrammar.Parse: %v", err)
	}
	g, _, err := nfa.Build(nil, root)
	if err != nil {
		t.Fatalf("nfa.Build: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected NewEngineCapacity(g, 0) to panic on push failure")
		}
	}()
	NewEngineCapacity(g, 0)
}

// TestEngineEndmarkerBecomesNewline covers spec §8 scenario 1's literal
// token stream (NAME("a",1), NAME("b",1), ENDMARKER), fed against a
// grammar that needs a trailing NEWLINE to complete: the only way this
// stream can finish the rule is if the glue in AddToken rewrites the
// first ENDMARKER into a synthetic NEWLINE once "a" and "b" have
// already been seen.
func TestEngineEndmarkerBecomesNewline(t *testing.T) {
	root, err := metagrammar.Parse("start: 'a' 'b' NEWLINE\n")
	if err != nil {
		t.Fatalf("metagrammar.Parse: %v", err)
	}
	g, diags, err := nfa.Build(nil, root)
	if err != nil {
		t.Fatalf("nfa.Build: %v", err)
	}
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Items())
	}

	e := NewEngine(g)
	if res, err := e.AddToken(pgen.NAME, "a", 1); err != nil || res != pgen.Consumed {
		t.Fatalf("feeding \"a\": res=%s err=%v", res, err)
	}
	if res, err := e.AddToken(pgen.NAME, "b", 1); err != nil || res != pgen.Consumed {
		t.Fatalf("feeding \"b\": res=%s err=%v", res, err)
	}
	res, err := e.AddToken(pgen.ENDMARKER, "", 1)
	if err != nil {
		t.Fatalf("feeding ENDMARKER: unexpected error: %v", err)
	}
	if res != pgen.Done {
		t.Fatalf("expected the rewritten ENDMARKER to complete the rule via NEWLINE, got %s", res)
	}

	tree := e.Tree()
	if len(tree.Children) != 3 {
		t.Fatalf("expected 3 children (a, b, NEWLINE), got %d: %+v", len(tree.Children), tree.Children)
	}
	if tree.Children[2].Kind != pgen.NEWLINE {
		t.Fatalf("expected the third child to be the synthesized NEWLINE, got %s", tree.Children[2].Kind)
	}
}

// TestEngineBareEndmarkerIsNotRewritten confirms an ENDMARKER arriving
// before any real token (spec §8 scenario 3's empty-optional grammar)
// is left untouched: the glue only fires once a real token has already
// been seen.
func TestEngineBareEndmarkerIsNotRewritten(t *testing.T) {
	root, err := metagrammar.Parse("rule: [NAME]\n")
	if err != nil {
		t.Fatalf("metagrammar.Parse: %v", err)
	}
	g, diags, err := nfa.Build(nil, root)
	if err != nil {
		t.Fatalf("nfa.Build: %v", err)
	}
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Items())
	}

	e := NewEngine(g)
	res, err := e.AddToken(pgen.ENDMARKER, "", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != pgen.Done {
		t.Fatalf("expected Done accepting the empty optional on a bare ENDMARKER, got %s", res)
	}
	if len(e.Tree().Children) != 0 {
		t.Fatalf("expected no children, got %+v", e.Tree().Children)
	}
}

func TestEngineStackOverflowReportsNoMem(t *testing.T) {
	root, err := metagrammar.Parse("start: 'a'*\n")
	if err != nil {
		t.Fatalf("metagrammar.Parse: %v", err)
	}
	g, _, err := nfa.Build(nil, root)
	if err != nil {
		t.Fatalf("nfa.Build: %v", err)
	}

	// A capacity-1 stack holds only the start frame; since 'a'* never
	// needs to push a second frame (it has no nested nonterminal), this
	// grammar can't actually exercise NoMem without nesting. Use a
	// grammar with a nested rule instead so pushNonterminal runs out of
	// room on the very first nonterminal it tries to enter.
	nested, err := metagrammar.Parse("start: inner inner\ninner: 'a'\n")
	if err != nil {
		t.Fatalf("metagrammar.Parse: %v", err)
	}
	g2, _, err := nfa.Build(nil, nested)
	if err != nil {
		t.Fatalf("nfa.Build: %v", err)
	}
	_ = g

	e := NewEngineCapacity(g2, 1)
	res, err := e.AddToken(pgen.NAME, "a", 1)
	if res != pgen.NoMem {
		t.Fatalf("expected NoMem once the single-frame stack has no room for 'inner', got %s (err=%v)", res, err)
	}
	if err != ErrStackOverflow {
		t.Fatalf("expected ErrStackOverflow, got %v", err)
	}
}
