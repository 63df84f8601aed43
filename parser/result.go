package parser

import "github.com/go-pgen/pgen"

// stepOutcome is the result of a single call to (*Engine).step. The
// original pgenmain/parser.c drives its per-token loop with a bare
// for(;;) and goto; here the same loop is a small state machine the
// driver switches on, so each iteration's exit condition is named
// instead of implicit in control flow.
type stepOutcome int

const (
	// stepRetry means the token was not consumed: the stack changed
	// (a nonterminal was pushed or a completed frame was popped) and
	// step must be called again with the same token.
	stepRetry stepOutcome = iota

	// stepConsumed means the token was shifted into the tree; the
	// driver should fetch the next token.
	stepConsumed

	// stepDone means the token completed the start rule and the
	// parse stack is now empty.
	stepDone

	// stepError means the token matches no accelerator entry in the
	// current state and the state does not accept; this is a genuine
	// syntax error.
	stepError

	// stepOverflow means pushing a nonterminal frame failed because
	// the fixed-capacity stack is full, the Go analog of a malloc
	// failure growing Parser/parser.c's stack.
	stepOverflow
)

// SyntaxError is the error AddToken carries alongside pgen.Syntax when
// the token simply does not belong in the current state.
type SyntaxError struct {
	Kind   pgen.TokType
	Lexeme string
	Line   int
}

func (e *SyntaxError) Error() string {
	if e.Lexeme != "" {
		return "parser: syntax error: unexpected " + e.Kind.String() + " " + e.Lexeme
	}
	return "parser: syntax error: unexpected " + e.Kind.String()
}
