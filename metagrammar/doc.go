// Package metagrammar is a hand-written tokenizer and recursive-descent
// parser for the grammar-description language itself: rules of the form
// NAME ':' RHS NEWLINE, where RHS is alternatives separated by '|', each
// alternative a sequence of items, and an item is an optional group, or
// an atom optionally suffixed by '*' or '+'.
//
// This is deliberately the one hand-rolled, non-table-driven parser in
// the module: the grammar-of-grammars can't yet be parsed by the
// machine package nfa and package grammar build from it, the same
// bootstrap asymmetry CPython's own Parser/metagrammar.c has.
package metagrammar
