// Package grammar holds the compiled-grammar container: labels, DFAs,
// states, arcs, and the terminal/nonterminal accelerator words a
// parser.Engine consumes. Package nfa builds the DFAs; this package owns
// their storage and the accelerator installer.
package grammar
