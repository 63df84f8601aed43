// Package nfa turns a metagrammar concrete syntax tree into compiled
// grammar.DFA tables: Thompson-style NFA construction per rule, subset
// construction into a DFA, a conservative equivalence-class minimizer,
// and FIRST-set analysis. The accelerator installer itself lives in
// package grammar, since it only needs the DFAs' computed FIRST sets.
package nfa
