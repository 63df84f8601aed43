// Package diag formalizes the diagnostic channel used across grammar
// construction: non-fatal problems (left recursion, a rule that may
// produce the empty string, accelerator ambiguity, numbering overflow
// near the 7-bit limit) are collected in order, de-duplicated, and
// handed back to the caller instead of only being logged.
package diag
