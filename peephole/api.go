package peephole

// OpName reports the opcode name of a single code unit, ignoring any
// EXTENDED_ARG chain it may be part of — a disassembly convenience for
// the CLI, which prints EXTENDED_ARG prefixes as their own rows.
func OpName(u CodeUnit) string {
	return opcodeOf(u).String()
}

// OpArg reports a single code unit's raw 8-bit argument fragment, not
// the effective argument of the instruction it belongs to (use
// Encode/assembly-time resolution for that).
func OpArg(u CodeUnit) uint32 {
	return uint32(opargOf(u))
}

// OpByName resolves an opcode name (as printed by Op.String) back to
// its Op value, for assembling a textual wordcode listing.
func OpByName(name string) (Op, bool) {
	for op, n := range opNames {
		if n == name {
			return op, true
		}
	}
	return 0, false
}

// IsAbsoluteJump reports whether op's argument is an absolute unit
// index rather than a forward-relative distance.
func IsAbsoluteJump(op Op) bool {
	return isAbsoluteJump(op)
}

// InstrSize reports how many code units are needed to encode arg,
// including any EXTENDED_ARG prefixes.
func InstrSize(arg uint32) int {
	return instrSize(arg)
}

// Pack combines an opcode and an 8-bit argument fragment into a single
// code unit, with no EXTENDED_ARG prefixing.
func Pack(op Op, arg byte) CodeUnit {
	return pack(op, arg)
}

// Encode lays out op/arg as a full instruction, including whatever
// EXTENDED_ARG prefixes arg's magnitude requires.
func Encode(op Op, arg uint32) []CodeUnit {
	ilen := instrSize(arg)
	buf := make([]CodeUnit, ilen)
	writeOpArg(buf, 0, op, arg, ilen)
	return buf
}
