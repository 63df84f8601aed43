package peephole

// compact removes NOP units from code and remaps every surviving jump
// target and the line-number delta table through the resulting
// old-index -> new-index map. ok is false if any relocated jump would
// need more units than its existing slot, the one condition under
// which compaction must abort and the caller falls back to the
// pre-optimization buffer.
func compact(code []CodeUnit, lineTable []LineEntry) ([]CodeUnit, []LineEntry, bool) {
	n := len(code)
	newIndex := make([]int, n+1)
	nops := 0
	for i := 0; i < n; i++ {
		newIndex[i] = i - nops
		if opcodeOf(code[i]) == NOP {
			nops++
		}
	}
	newIndex[n] = n - nops

	newLineTable := remapLineTable(lineTable, newIndex)

	out := make([]CodeUnit, 0, n-nops)
	for i := 0; i < n; {
		opStart := i
		arg := uint32(opargOf(code[i]))
		for opcodeOf(code[i]) == EXTENDED_ARG {
			i++
			arg = arg<<8 | uint32(opargOf(code[i]))
		}
		op := opcodeOf(code[i])
		if op == NOP {
			i++
			continue
		}

		newArg := arg
		switch {
		case isAbsoluteJump(op):
			newArg = uint32(newIndex[arg])
		case op == JUMP_FORWARD || op == FOR_ITER || op == SETUP_FINALLY:
			oldTarget := jumpTarget(op, i, arg)
			newArg = uint32(newIndex[oldTarget] - newIndex[i] - 1)
		}

		ilen := i - opStart + 1
		if instrSize(newArg) > ilen {
			return nil, nil, false
		}
		writeOpArg(padTo(&out, len(out), ilen), 0, op, newArg, ilen)
		i++
	}
	return out, newLineTable, true
}

// padTo grows out by n units (zero-valued) and returns out[at:] so the
// caller can write directly into the freshly grown tail.
func padTo(out *[]CodeUnit, at, n int) []CodeUnit {
	*out = append(*out, make([]CodeUnit, n)...)
	return (*out)[at:]
}

func remapLineTable(lineTable []LineEntry, newIndex []int) []LineEntry {
	out := make([]LineEntry, len(lineTable))
	cumOrig := 0
	lastNew := 0
	for k, e := range lineTable {
		cumOrig += int(e.OffsetDelta)
		newOffset := newIndex[cumOrig]
		delta := newOffset - lastNew
		out[k] = LineEntry{OffsetDelta: byte(delta), LineDelta: e.LineDelta}
		lastNew = newOffset
	}
	return out
}
