package parser

import (
	"github.com/go-pgen/pgen"
	"github.com/npillmayer/schuko/tracing"

	"github.com/go-pgen/pgen/grammar"
)

func tracer() tracing.Trace {
	return tracing.Select("pgen.parser")
}

// DefaultStackCapacity bounds how deeply nested a grammar's rules may
// recurse during a single parse before Engine reports ErrStackOverflow.
// Grammars that legitimately need deeper nesting should construct an
// Engine with NewEngineCapacity instead of relying on the default.
const DefaultStackCapacity = 64

// Engine drives one grammar.Grammar against a token stream, building a
// concrete parse tree as it goes. An Engine is single-use: once AddToken
// reports Done (or an error), start a new one for the next parse.
type Engine struct {
	g     *grammar.Grammar
	stack *stack
	root  *Node
	done  bool

	// sawToken and rewroteEndmarker implement the parser-tokenizer glue:
	// the first ENDMARKER fed in after at least one real token has been
	// seen is rewritten to a synthetic NEWLINE, so grammars can rely on
	// a trailing newline even when the token source doesn't supply one.
	sawToken         bool
	rewroteEndmarker bool
}

// NewEngine returns an Engine ready to parse starting from g's start
// rule, with the default stack capacity.
func NewEngine(g *grammar.Grammar) *Engine {
	return NewEngineCapacity(g, DefaultStackCapacity)
}

// NewEngineCapacity is NewEngine with an explicit stack capacity.
func NewEngineCapacity(g *grammar.Grammar, capacity int) *Engine {
	start := g.StartDFA()
	root := NewNode(start.Kind, "", 0)
	st := newStack(capacity)
	if err := st.push(Frame{DFA: start, Node: root, State: start.Initial}); err != nil {
		panic(err) // capacity 0 is a caller bug, not a parse-time condition
	}
	return &Engine{g: g, stack: st, root: root}
}

// Tree returns the root of the parse tree built so far. It is only
// meaningful once AddToken has reported Done.
func (e *Engine) Tree() *Node {
	return e.root
}

// classify resolves a raw (kind, lexeme) token into a label index in
// the grammar's label list, mirroring the first step of PyParser_AddToken:
// NAME tokens first try to match an interned keyword by exact text,
// then fall back (like every other kind) to matching by kind alone.
func classify(g *grammar.Grammar, kind pgen.TokType, lexeme string) (int, bool) {
	if kind == pgen.NAME {
		if idx, ok := g.Labels.Find(pgen.NAME, lexeme); ok {
			return idx, true
		}
	}
	return g.Labels.Find(kind, "")
}

// AddToken feeds one token to the parser, returning one of pgen's
// result codes: Consumed (shifted, keep feeding), Done (the start rule
// is complete and Tree is ready), Syntax (the token fits nowhere in the
// current state), or NoMem (the fixed-capacity stack is full). Syntax
// carries a *SyntaxError as err; NoMem carries ErrStackOverflow.
// Callers stop calling AddToken once the result is anything but
// Consumed.
//
// The first ENDMARKER AddToken sees after at least one real token has
// already been consumed is rewritten to a synthetic NEWLINE before
// classification; every ENDMARKER after that (or the very first token
// of a parse that is itself an ENDMARKER) passes through unchanged.
func (e *Engine) AddToken(kind pgen.TokType, lexeme string, line int) (pgen.Result, error) {
	if e.done {
		return pgen.Done, nil
	}
	endOfInput := kind == pgen.ENDMARKER
	if endOfInput && e.sawToken && !e.rewroteEndmarker {
		e.rewroteEndmarker = true
		kind, lexeme = pgen.NEWLINE, ""
	} else if !endOfInput {
		e.sawToken = true
	}

	labelIdx, ok := classify(e.g, kind, lexeme)
	if !ok {
		if !endOfInput {
			tracer().Errorf("no label for token %s %q at line %d", kind, lexeme, line)
			return pgen.Syntax, &SyntaxError{Kind: kind, Lexeme: lexeme, Line: line}
		}
		// An end-of-input token the grammar has no label for matches no
		// accelerator slot: step can only pop accepting frames with it.
		labelIdx = -1
	}

	for {
		outcome, err := e.step(labelIdx, kind, lexeme, line)
		switch outcome {
		case stepRetry:
			continue
		case stepConsumed:
			return pgen.Consumed, nil
		case stepDone:
			e.done = true
			return pgen.Done, nil
		case stepOverflow:
			return pgen.NoMem, err
		case stepError:
			if err == nil {
				err = &SyntaxError{Kind: kind, Lexeme: lexeme, Line: line}
			}
			return pgen.Syntax, err
		}
	}
}

// step performs a single transition attempt against the current top
// frame for labelIdx. It never consumes more than one token, and it
// never advances the stack by more than what a single accelerator
// lookup (plus any accept-drain it triggers) warrants.
func (e *Engine) step(labelIdx int, kind pgen.TokType, lexeme string, line int) (stepOutcome, error) {
	top := e.stack.topFrame()
	if top == nil {
		return stepError, nil
	}
	s := top.DFA.States[top.State]

	if labelIdx >= s.Lower && labelIdx < s.Upper {
		word := s.Accel[labelIdx-s.Lower]
		if word != grammar.NoTransition {
			isNT, ntKind, dest := grammar.Unpack(word)
			if isNT {
				return e.pushNonterminal(top, ntKind, dest, line)
			}
			return e.shiftTerminal(top, kind, lexeme, dest, line)
		}
	}

	if s.Accept {
		// The token doesn't continue this rule, but the rule is
		// already complete: pop it and let the parent frame have
		// another go at the same token. Popping the root frame this
		// way means the token (an ENDMARKER, real or synthesized from
		// one) arrived with nothing left to parse: the whole parse is
		// done, and the token itself is not shifted into the tree.
		e.stack.pop()
		if e.stack.empty() {
			return stepDone, nil
		}
		return stepRetry, nil
	}

	return stepError, nil
}

// pushNonterminal records the resume state on the current frame, opens
// a child node for the nonterminal being entered, and pushes a fresh
// frame for it.
func (e *Engine) pushNonterminal(top *Frame, ntKind pgen.TokType, dest int, line int) (stepOutcome, error) {
	nd := e.g.FindDFA(ntKind)
	if nd == nil {
		return stepError, nil
	}
	top.State = dest
	child := NewNode(ntKind, "", line)
	top.Node.AppendChild(child)
	if err := e.stack.push(Frame{DFA: nd, Node: child, State: nd.Initial}); err != nil {
		return stepOverflow, err
	}
	return stepRetry, nil
}

// shiftTerminal appends the token as a leaf child of the current rule,
// advances the frame's state, then drains any frames that are now
// complete and have nothing left to do but accept (the self-loop a
// minimized DFA's accepting states carry).
func (e *Engine) shiftTerminal(top *Frame, kind pgen.TokType, lexeme string, dest int, line int) (stepOutcome, error) {
	leaf := NewNode(kind, lexeme, line)
	top.Node.AppendChild(leaf)
	top.State = dest

	for {
		cur := e.stack.topFrame()
		s := cur.DFA.States[cur.State]
		if !s.Accept || len(s.Arcs) != 1 {
			break
		}
		e.stack.pop()
		if e.stack.empty() {
			return stepDone, nil
		}
	}
	return stepConsumed, nil
}
