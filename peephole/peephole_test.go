package peephole

import "testing"

func codeOf(units ...CodeUnit) []CodeUnit {
	return units
}

func u(op Op, arg byte) CodeUnit {
	return pack(op, arg)
}

// scenario 4: LOAD_CONST <truthy> ; POP_JUMP_IF_FALSE x, in one basic
// block, becomes two NOPs (the branch can never be taken).
func TestDeadConditionalElimination(t *testing.T) {
	p := &Program{
		Code:   codeOf(u(LOAD_CONST, 0), u(POP_JUMP_IF_FALSE, 10)),
		Consts: []interface{}{1},
	}
	out := Optimize(p)
	if len(out.Code) != 0 {
		t.Fatalf("expected the dead pair to compact away entirely, got %v", out.Code)
	}
}

func TestLiveConditionalSurvives(t *testing.T) {
	p := &Program{
		// target 2 == len(code): a jump past the end of this snippet,
		// same as code falling off the end of a function body.
		Code:   codeOf(u(LOAD_CONST, 0), u(POP_JUMP_IF_FALSE, 2)),
		Consts: []interface{}{0}, // falsy: branch is reachable, must not be elided
	}
	out := Optimize(p)
	if len(out.Code) != 2 {
		t.Fatalf("expected the pair to survive, got %v", out.Code)
	}
	if opcodeOf(out.Code[0]) != LOAD_CONST || opcodeOf(out.Code[1]) != POP_JUMP_IF_FALSE {
		t.Fatalf("expected LOAD_CONST/POP_JUMP_IF_FALSE to survive unchanged, got %v", out.Code)
	}
}

// scenario 5: three LOAD_CONSTs followed by BUILD_TUPLE 3 fold into a
// single LOAD_CONST of the tuple (7,8,9).
func TestTupleFolding(t *testing.T) {
	p := &Program{
		Code: codeOf(
			u(LOAD_CONST, 0),
			u(LOAD_CONST, 1),
			u(LOAD_CONST, 2),
			u(BUILD_TUPLE, 3),
		),
		Consts: []interface{}{7, 8, 9},
	}
	out := Optimize(p)
	if len(out.Code) != 1 {
		t.Fatalf("expected the whole run to compact to one LOAD_CONST, got %v", out.Code)
	}
	if opcodeOf(out.Code[0]) != LOAD_CONST {
		t.Fatalf("expected LOAD_CONST, got %s", opcodeOf(out.Code[0]))
	}
	idx := getArg(out.Code, 0)
	tup, ok := out.Consts[idx].(Tuple)
	if !ok {
		t.Fatalf("expected a folded Tuple constant, got %T", out.Consts[idx])
	}
	if len(tup) != 3 || tup[0] != 7 || tup[1] != 8 || tup[2] != 9 {
		t.Fatalf("expected (7,8,9), got %v", tup)
	}
}

func TestBuildTupleUnpackFusion(t *testing.T) {
	// BUILD_TUPLE 2 immediately followed by UNPACK_SEQUENCE 2, with no
	// preceding LOAD_CONST run to fold instead, becomes ROT_TWO.
	p := &Program{
		Code: codeOf(
			u(BUILD_TUPLE, 2),
			u(UNPACK_SEQUENCE, 2),
		),
	}
	out := Optimize(p)
	if len(out.Code) != 1 || opcodeOf(out.Code[0]) != ROT_TWO {
		t.Fatalf("expected a single ROT_TWO, got %v", out.Code)
	}
}

// scenario 6: JUMP_FORWARD L ; ... ; L: JUMP_ABSOLUTE M forwards the
// first jump straight to M, skipping the intermediate hop through L.
func TestJumpToJumpForwarding(t *testing.T) {
	// index 0: JUMP_FORWARD -> target index 2 (distance 1)
	// index 1: filler so the target isn't the very next unit
	// index 2 (L): JUMP_ABSOLUTE -> M (index 4)
	// index 3, 4: filler standing in for M and the code after it
	p := &Program{
		Code: codeOf(
			u(JUMP_FORWARD, 1),
			u(NOP, 0),
			u(JUMP_ABSOLUTE, 4),
			u(NOP, 0),
			u(NOP, 0),
		),
	}
	out := Optimize(p)
	if len(out.Code) != 2 {
		t.Fatalf("expected filler NOPs to compact away, got %v", out.Code)
	}
	if opcodeOf(out.Code[0]) != JUMP_ABSOLUTE || opcodeOf(out.Code[1]) != JUMP_ABSOLUTE {
		t.Fatalf("expected both jumps to land as JUMP_ABSOLUTE to the same target, got %v", out.Code)
	}
	if getArg(out.Code, 0) != getArg(out.Code, 1) {
		t.Fatalf("expected the forwarded jump and L's own jump to share a target, got %v", out.Code)
	}
}

func TestDeadCodeAfterReturnTrimmed(t *testing.T) {
	p := &Program{
		Code: codeOf(
			u(RETURN_VALUE, 0),
			u(LOAD_CONST, 0),
			u(LOAD_CONST, 0),
		),
		Consts: []interface{}{0},
	}
	out := Optimize(p)
	if len(out.Code) != 1 || opcodeOf(out.Code[0]) != RETURN_VALUE {
		t.Fatalf("expected unreachable code after RETURN_VALUE to be trimmed, got %v", out.Code)
	}
}

func TestDeadCodeAfterReturnStopsAtSetupFinally(t *testing.T) {
	p := &Program{
		Code: codeOf(
			u(RETURN_VALUE, 0),
			u(LOAD_CONST, 0),
			u(SETUP_FINALLY, 0),
			u(RETURN_VALUE, 0),
		),
		Consts: []interface{}{0},
	}
	out := Optimize(p)
	// The LOAD_CONST between RETURN_VALUE and SETUP_FINALLY is trimmed,
	// but SETUP_FINALLY itself and what follows it survive.
	foundSetup := false
	for _, c := range out.Code {
		if opcodeOf(c) == SETUP_FINALLY {
			foundSetup = true
		}
	}
	if !foundSetup {
		t.Fatalf("expected SETUP_FINALLY to survive as a block-limit marker, got %v", out.Code)
	}
}

func TestLnotabBailout(t *testing.T) {
	p := &Program{
		Code:      codeOf(u(LOAD_CONST, 0), u(POP_JUMP_IF_FALSE, 10)),
		Consts:    []interface{}{1},
		LineTable: []LineEntry{{OffsetDelta: 255, LineDelta: 1}},
	}
	out := Optimize(p)
	if len(out.Code) != len(p.Code) {
		t.Fatalf("expected lnotab-255 to bail out unchanged, got %v", out.Code)
	}
}

func TestExtendedArgConstant(t *testing.T) {
	// A LOAD_CONST whose index needs an EXTENDED_ARG prefix must still
	// be found correctly by lastNConstStart when folding a tuple.
	p := &Program{
		Code: codeOf(
			u(EXTENDED_ARG, 1),
			u(LOAD_CONST, 0), // effective arg 256
			u(LOAD_CONST, 1),
			u(BUILD_TUPLE, 2),
		),
		Consts: make([]interface{}, 258),
	}
	p.Consts[256] = "big"
	p.Consts[1] = "small"

	out := Optimize(p)
	// The folded constant's index exceeds 255, so the resulting
	// LOAD_CONST still needs an EXTENDED_ARG prefix of its own.
	last := len(out.Code) - 1
	if last < 0 || opcodeOf(out.Code[last]) != LOAD_CONST {
		t.Fatalf("expected the fold to collapse to one LOAD_CONST (possibly EXTENDED_ARG-prefixed), got %v", out.Code)
	}
	idx := getArg(out.Code, last)
	tup := out.Consts[idx].(Tuple)
	if tup[0] != "big" || tup[1] != "small" {
		t.Fatalf("expected (\"big\",\"small\"), got %v", tup)
	}
}

func TestPeepholeIdempotent(t *testing.T) {
	p := &Program{
		Code: codeOf(
			u(JUMP_FORWARD, 1),
			u(NOP, 0),
			u(JUMP_ABSOLUTE, 4),
			u(NOP, 0),
			u(RETURN_VALUE, 0),
		),
	}
	once := Optimize(p)
	twice := Optimize(once)
	if len(once.Code) != len(twice.Code) {
		t.Fatalf("expected idempotence, got %v then %v", once.Code, twice.Code)
	}
	for i := range once.Code {
		if once.Code[i] != twice.Code[i] {
			t.Fatalf("expected idempotence at unit %d: %v vs %v", i, once.Code, twice.Code)
		}
	}
}

func TestPeepholeSizeMonotonic(t *testing.T) {
	p := &Program{
		Code: codeOf(
			u(LOAD_CONST, 0),
			u(LOAD_CONST, 1),
			u(LOAD_CONST, 2),
			u(BUILD_TUPLE, 3),
			u(RETURN_VALUE, 0),
			u(LOAD_CONST, 0),
		),
		Consts: []interface{}{1, 2, 3},
	}
	out := Optimize(p)
	if len(out.Code) > len(p.Code) {
		t.Fatalf("expected output no larger than input, got %d > %d", len(out.Code), len(p.Code))
	}
}
