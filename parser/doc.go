// Package parser implements a bounded pushdown automaton that drives a
// compiled grammar.Grammar against a token stream, producing a concrete
// parse tree. The stack is fixed-capacity and grows from high indices
// toward low; overflow is a hard, unrecoverable error, matching the
// bound's purpose of catching runaway grammar designs at build time.
package parser
