package peephole

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("pgen.peephole")
}

// LineEntry is one (byte_offset_delta, line_delta) pair of the
// line-number delta table.
type LineEntry struct {
	OffsetDelta byte
	LineDelta   byte
}

// Program is the optimizer's unit of work: a wordcode buffer, the
// mutable constants list new tuple folds append to, a read-only names
// table (carried through untouched — nothing here rewrites a NAME
// load), and the line-number delta table the compaction pass remaps.
type Program struct {
	Code      []CodeUnit
	Consts    []interface{}
	Names     []string
	LineTable []LineEntry
}

// clone returns a deep-enough copy of p for the optimizer to mutate
// without disturbing the caller's original.
func (p *Program) clone() *Program {
	return &Program{
		Code:      append([]CodeUnit(nil), p.Code...),
		Consts:    append([]interface{}(nil), p.Consts...),
		Names:     p.Names,
		LineTable: append([]LineEntry(nil), p.LineTable...),
	}
}

// Optimize runs the peephole rewrite and compaction passes over p,
// returning a new Program. Any bailout condition — a line-table delta
// of 255, a code length beyond int32 range, or a compaction that would
// grow a relocated jump — returns p itself unchanged.
func Optimize(p *Program) *Program {
	for _, e := range p.LineTable {
		if e.OffsetDelta == 255 {
			tracer().Debugf("bailout: lnotab delta 255")
			return p
		}
	}
	if len(p.Code) > math.MaxInt32 {
		tracer().Debugf("bailout: code length exceeds int32 range")
		return p
	}

	out := p.clone()
	blocks := markBlocks(out.Code)
	rewrite(out, blocks)

	compacted, lineTable, ok := compact(out.Code, out.LineTable)
	if !ok {
		tracer().Debugf("bailout: relocated jump grew during compaction")
		return p
	}
	out.Code = compacted
	out.LineTable = lineTable
	return out
}

// rewrite performs the single forward traversal described in spec §4.10:
// dead-conditional elimination, tuple folding/fusion, jump-chain
// collapsing, jump-to-return and jump-to-jump forwarding, and
// dead-code-after-return elimination. It mutates code and consts in
// place; blocks must already reflect code's basic-block structure
// before any rewrite in this pass (rewrites never change block
// boundaries, only instruction identity within a block).
func rewrite(p *Program, blocks []int) {
	code := p.Code
	cumlc := 0
	for i := findOp(code, 0); i < len(code); {
		op := opcodeOf(code[i])
		opStart := i
		for opStart >= 1 && opcodeOf(code[opStart-1]) == EXTENDED_ARG {
			opStart--
		}
		nexti := i + 1
		for nexti < len(code) && opcodeOf(code[nexti]) == EXTENDED_ARG {
			nexti++
		}
		var nextOp Op
		if nexti < len(code) {
			nextOp = opcodeOf(code[nexti])
		}

		lastlc := cumlc
		cumlc = 0

		switch {
		case op == LOAD_CONST:
			if r := foldDeadConditional(p, blocks, opStart, i, nexti, nextOp, lastlc); r >= 0 {
				cumlc = r
			}
		case op == BUILD_TUPLE:
			foldTupleOrFuse(p, blocks, opStart, i, nexti, nextOp, lastlc)
		case op == JUMP_IF_FALSE_OR_POP || op == JUMP_IF_TRUE_OR_POP:
			if newIdx, ok := collapseConditionalChain(code, op, i); ok {
				nexti = newIdx
			} else {
				forwardJump(code, op, opStart, i)
			}
		case op == POP_JUMP_IF_FALSE || op == POP_JUMP_IF_TRUE || op == JUMP_FORWARD || op == JUMP_ABSOLUTE:
			forwardJump(code, op, opStart, i)
		case op == RETURN_VALUE:
			nexti = eliminateDeadCode(code, blocks, i)
		}

		i = nexti
	}
}

// foldDeadConditional implements the "LOAD_CONST true; POP_JUMP_IF_FALSE"
// elision. Returns the run-length of consecutive LOAD_CONSTs ending here
// (the caller's cumlc), or -1 once the pair has been folded away, so the
// caller leaves cumlc at 0 as the original does after a successful fold.
func foldDeadConditional(p *Program, blocks []int, opStart, i, nexti int, nextOp Op, lastlc int) int {
	if nextOp != POP_JUMP_IF_FALSE || !sameBlock(blocks, opStart, i+1) {
		return lastlc + 1
	}
	arg := getArg(p.Code, i)
	if int(arg) >= len(p.Consts) {
		return lastlc + 1
	}
	if truthy(p.Consts[arg]) {
		fillNops(p.Code, opStart, nexti+1)
		return -1
	}
	return lastlc + 1
}

// foldTupleOrFuse implements BUILD_TUPLE's two independent rewrites:
// folding a run of preceding LOAD_CONSTs into one constant tuple, or
// (failing that) fusing with an immediately following UNPACK_SEQUENCE
// of the same count.
func foldTupleOrFuse(p *Program, blocks []int, opStart, i, nexti int, nextOp Op, lastlc int) {
	n := int(getArg(p.Code, i))
	if n > 0 && lastlc >= n {
		h := lastNConstStart(p.Code, opStart, n)
		if sameBlock(blocks, h, opStart) {
			foldTupleOnConstants(p, h, i+1, n)
			return
		}
	}
	if nextOp != UNPACK_SEQUENCE || !sameBlock(blocks, opStart, i+1) {
		return
	}
	if n != int(getArg(p.Code, nexti)) {
		return
	}
	switch {
	case n < 2:
		fillNops(p.Code, opStart, nexti+1)
	case n == 2:
		p.Code[opStart] = pack(ROT_TWO, 0)
		fillNops(p.Code, opStart+1, nexti+1)
	case n == 3:
		p.Code[opStart] = pack(ROT_THREE, 0)
		p.Code[opStart+1] = pack(ROT_TWO, 0)
		fillNops(p.Code, opStart+2, nexti+1)
	}
}

// foldTupleOnConstants replaces the n LOAD_CONSTs starting at cStart
// with a single LOAD_CONST of a newly appended constant tuple. A
// constants-list overflow just skips the fold rather than aborting the
// whole pass, since peephole bailouts are never fatal.
func foldTupleOnConstants(p *Program, cStart, opcodeEnd, n int) {
	vals := make(Tuple, n)
	pos := cStart
	for k := 0; k < n; k++ {
		pos = findOp(p.Code, pos)
		arg := getArg(p.Code, pos)
		if int(arg) >= len(p.Consts) {
			return
		}
		vals[k] = p.Consts[arg]
		pos++
	}
	if len(p.Consts) >= math.MaxUint32-1 {
		tracer().Debugf("skipping tuple fold: constants list would overflow")
		return
	}
	idx := len(p.Consts)
	p.Consts = append(p.Consts, vals)
	copyOpArg(p.Code, cStart, LOAD_CONST, uint32(idx), opcodeEnd)
}

// collapseConditionalChain implements the JUMP_IF_*_OR_POP-to-conditional
// simplification described in spec §4.10. ok is false if the target
// isn't a conditional jump, or the rewrite wouldn't fit in the existing
// slot.
func collapseConditionalChain(code []CodeUnit, op Op, i int) (int, bool) {
	h := int(getArg(code, i))
	if h < 0 || h >= len(code) {
		return 0, false
	}
	tgt := findOp(code, h)
	if tgt >= len(code) {
		return 0, false
	}
	tgtOp := opcodeOf(code[tgt])
	if !isConditionalJump(tgtOp) {
		return 0, false
	}

	var newIdx int
	var newOp Op
	if jumpsOnTrue(tgtOp) == jumpsOnTrue(op) {
		newIdx = setArg(code, i, getArg(code, tgt))
		newOp = op
	} else {
		newIdx = setArg(code, i, uint32(tgt+1))
		if op == JUMP_IF_TRUE_OR_POP {
			newOp = POP_JUMP_IF_TRUE
		} else {
			newOp = POP_JUMP_IF_FALSE
		}
	}
	if newIdx < 0 {
		return 0, false
	}
	code[newIdx] = pack(newOp, opargOf(code[newIdx]))
	return newIdx, true
}

// forwardJump implements "jump to RETURN_VALUE becomes RETURN_VALUE"
// and "jump to an unconditional jump forwards through the chain".
func forwardJump(code []CodeUnit, op Op, opStart, i int) {
	h := jumpTarget(op, i, getArg(code, i))
	if h < 0 || h >= len(code) {
		return
	}
	tgt := findOp(code, h)
	if tgt >= len(code) {
		return
	}
	if isUnconditionalJump(op) && opcodeOf(code[tgt]) == RETURN_VALUE {
		code[opStart] = pack(RETURN_VALUE, 0)
		fillNops(code, opStart+1, i+1)
		return
	}
	tgtOp := opcodeOf(code[tgt])
	if !isUnconditionalJump(tgtOp) {
		return
	}
	arg := jumpTarget(tgtOp, tgt, getArg(code, tgt))
	finalOp := op
	switch {
	case op == JUMP_FORWARD:
		finalOp = JUMP_ABSOLUTE
	case !isAbsoluteJump(op):
		if arg < i+1 {
			return // no backward relative jumps
		}
		arg -= i + 1
	}
	copyOpArg(code, opStart, finalOp, uint32(arg), i+1)
}

// eliminateDeadCode strips unreachable instructions following a
// RETURN_VALUE within the same basic block, stopping at (and
// preserving) SETUP_FINALLY or RERAISE, which mark a block limit other
// code still needs to find.
func eliminateDeadCode(code []CodeUnit, blocks []int, i int) int {
	h := i + 1
	for h < len(code) && sameBlock(blocks, i, h) {
		op := opcodeOf(code[h])
		if op == SETUP_FINALLY || op == RERAISE {
			for h > i+1 && opcodeOf(code[h-1]) == EXTENDED_ARG {
				h--
			}
			break
		}
		h++
	}
	if h > i+1 {
		fillNops(code, i+1, h)
		return findOp(code, h)
	}
	return i + 1
}
