/*
Package scanner provides a lexmachine-backed implementation of the
pgen.Token contract. Tokenizing a target grammar's input is outside
this module's core scope (spec.md §1 lists it as an external
collaborator); this package gives that collaborator contract a
concrete, testable instance rather than leaving it purely abstract.

Lexmachine has to be initialized by providing literals, keywords, and a
map from token names to their pgen.TokType values:

	literals := []string{"(", ")", "+"}
	keywords := []string{"if", "for"}
	kinds := map[string]pgen.TokType{"(": pgen.LPAR, ")": pgen.RPAR, "+": pgen.PLUS}

	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[0-9]+`), MakeToken(pgen.OP, "NUM"))
		lexer.Add([]byte(`[ \t\n]+`), Skip)
	}

	adapter, err := NewAdapter(init, literals, keywords, kinds)

A Scanner is created per input and produces pgen.Tokens until an
ENDMARKER token signals end of input.
*/
package scanner
