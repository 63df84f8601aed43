/*
Package pgen is a small language toolchain: a parser generator that
compiles an EBNF-like grammar into parsing tables, a pushdown automaton
that consumes those tables to build a concrete parse tree, and a
stack-based bytecode peephole optimizer.

Package structure:

■ bitset: a fixed-width bit vector used by the NFA-to-DFA subset
construction and by FIRST-set computation.

■ grammar: the compiled-grammar container — labels, DFAs, states, arcs,
and the terminal/nonterminal accelerator words the parser consumes.

■ nfa: builds per-rule NFAs from a grammar's concrete syntax tree, turns
them into DFAs via subset construction, minimizes them, and computes
FIRST sets.

■ metagrammar: a hand-written tokenizer and recursive-descent parser for
the grammar-description language itself (EBNF-ish rules), producing the
concrete syntax tree that package nfa consumes.

■ parser: a bounded pushdown automaton that drives a compiled grammar
against a token stream, producing a concrete parse tree.

■ peephole: a wordcode bytecode peephole optimizer — constant-tuple
folding, dead-code elimination, jump threading, NOP compaction.

■ scanner: a lexmachine-backed tokenizer, a concrete instance of the
Token contract the parser consumes (tokenizing itself is outside this
module's core scope).

■ cmd/pgen: a command-line front end wiring the above together.

The three core packages (grammar+nfa, parser, peephole) have no
dependency on each other's input format beyond the shared Token and
TokType contracts defined in this root package; grammar construction,
parsing, and bytecode optimization can each be used independently.
*/
package pgen
