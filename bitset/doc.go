// Package bitset implements a fixed-width bit vector, the way
// Parser/bitset.c implements it for CPython's parser generator: a flat
// byte array addressed by bit index, with no dynamic resize. It backs
// NFA-state subsets during DFA construction and FIRST-set bit strings.
package bitset
