package main

import (
	"github.com/go-pgen/pgen"
	"github.com/go-pgen/pgen/grammar"
	"github.com/go-pgen/pgen/scanner"

	"github.com/timtadh/lexmachine"
)

// newGrammarScanner builds a scanner.Adapter from a compiled grammar's
// label list: every interned NAME label with a non-empty string is a
// keyword, every interned single-character label of a dedicated kind
// (COLON, VBAR, LPAR, ...) is a literal, and bare NAME/STRING token
// kinds get generic identifier/quoted-string patterns. This lets `pgen
// parse`/`pgen repl` tokenize source for whatever grammar was just
// built, without the caller hand-wiring a lexer for it.
func newGrammarScanner(g *grammar.Grammar) (*scanner.Adapter, error) {
	var literals, keywords []string
	kinds := make(map[string]pgen.TokType)

	for i := 0; i < g.Labels.Len(); i++ {
		lbl := g.Labels.At(i)
		switch {
		case lbl.Kind == pgen.NAME && lbl.Str != "":
			keywords = append(keywords, lbl.Str)
			kinds[lbl.Str] = pgen.NAME
		case lbl.Str == "" && lbl.Kind != pgen.NAME && lbl.Kind != pgen.STRING && lbl.Kind.IsTerminal():
			if lit, ok := literalFor(lbl.Kind); ok {
				literals = append(literals, lit)
				kinds[lit] = lbl.Kind
			}
		}
	}

	init := func(lx *lexmachine.Lexer) {
		lx.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*`), scanner.MakeToken(pgen.NAME, "NAME"))
		lx.Add([]byte(`\"[^"]*\"`), scanner.MakeToken(pgen.STRING, "STRING"))
		lx.Add([]byte(`( |\t|\r|\n)+`), scanner.Skip)
	}
	return scanner.NewAdapter(init, literals, keywords, kinds)
}

// literalFor maps the fixed single-character terminal kinds to the
// literal text the grammar source itself uses for them.
func literalFor(kind pgen.TokType) (string, bool) {
	switch kind {
	case pgen.COLON:
		return ":", true
	case pgen.VBAR:
		return "|", true
	case pgen.LPAR:
		return "(", true
	case pgen.RPAR:
		return ")", true
	case pgen.LSQB:
		return "[", true
	case pgen.RSQB:
		return "]", true
	case pgen.STAR:
		return "*", true
	case pgen.PLUS:
		return "+", true
	default:
		return "", false
	}
}
