// Package peephole implements a stack-based bytecode peephole
// optimizer, ported from CPython's Python/peephole.c: constant-tuple
// folding, dead-conditional elimination, jump-chain collapsing, and
// NOP compaction with line-table remapping. Every transformation keeps
// code size the same or smaller and never reorders instructions across
// a basic-block boundary; any condition under which that guarantee
// can't be met causes the optimizer to return the input unchanged
// rather than risk an unsound rewrite.
package peephole
