package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pgen/pgen/peephole"
	"github.com/pterm/pterm"
)

// runPeephole assembles a tiny textual wordcode format and runs the
// peephole optimizer over it, printing the before/after disassembly.
// Reads from the given file, or assembles the built-in demoAssembly
// listing if no file is given, so the subcommand is usable with zero
// setup.
func runPeephole(args []string) error {
	fs := newFlagSet("peephole")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var src string
	if fs.NArg() == 1 {
		var err error
		src, err = readFile(fs.Arg(0))
		if err != nil {
			return err
		}
	} else {
		src = demoAssembly
	}

	prog, err := assemble(src)
	if err != nil {
		return fmt.Errorf("pgen peephole: %w", err)
	}

	pterm.DefaultSection.Println("Before")
	dumpCode(prog.Code)

	out := peephole.Optimize(prog)

	pterm.DefaultSection.Println("After")
	dumpCode(out.Code)
	return nil
}

const demoAssembly = `; unconditional jump chains collapse to a single hop
JUMP_FORWARD 1
NOP
JUMP_ABSOLUTE 4
NOP
NOP
`

func dumpCode(code []peephole.CodeUnit) {
	for i, u := range code {
		pterm.Println(fmt.Sprintf("%4d  %s %d", i, peephole.OpName(u), peephole.OpArg(u)))
	}
}

// instrLine is one parsed assembly instruction, still holding its raw
// argument token (a decimal literal or a label reference) until label
// positions are known.
type instrLine struct {
	label string // label bound to this instruction, if any
	op    string
	arg   string // "" if the opcode takes no argument
}

// assemble parses src and lays out a Program, resolving label
// references to unit indices via a fixed-point iteration: an
// instruction's size can depend on the magnitude of a forward label's
// resolved offset, which itself depends on the sizes of instructions
// between here and there, so layout repeats until stable.
func assemble(src string) (*peephole.Program, error) {
	lines, err := parseAssembly(src)
	if err != nil {
		return nil, err
	}

	positions := make([]int, len(lines))
	labels := make(map[string]int)
	for iter := 0; iter < 8; iter++ {
		pos := 0
		newLabels := make(map[string]int, len(labels))
		for i, ln := range lines {
			if ln.label != "" {
				newLabels[ln.label] = pos
			}
			positions[i] = pos
			pos += instrUnits(ln, labels, pos)
		}
		if labelsEqual(labels, newLabels) {
			labels = newLabels
			break
		}
		labels = newLabels
	}

	var code []peephole.CodeUnit
	for i, ln := range lines {
		units, err := encodeInstr(ln, labels, positions[i])
		if err != nil {
			return nil, err
		}
		code = append(code, units...)
	}
	return &peephole.Program{Code: code}, nil
}

func labelsEqual(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func instrUnits(ln instrLine, labels map[string]int, pos int) int {
	if ln.arg == "" {
		return 1
	}
	arg, ok := resolveArg(ln, labels, pos)
	if !ok {
		return 1
	}
	return peephole.InstrSize(arg)
}

func resolveArg(ln instrLine, labels map[string]int, pos int) (uint32, bool) {
	if n, err := strconv.Atoi(ln.arg); err == nil {
		return uint32(n), true
	}
	target, ok := labels[ln.arg]
	if !ok {
		return 0, false
	}
	op, ok := peephole.OpByName(ln.op)
	if !ok {
		return 0, false
	}
	if peephole.IsAbsoluteJump(op) {
		return uint32(target), true
	}
	return uint32(target - pos - 1), true
}

func encodeInstr(ln instrLine, labels map[string]int, pos int) ([]peephole.CodeUnit, error) {
	op, ok := peephole.OpByName(ln.op)
	if !ok {
		return nil, fmt.Errorf("unknown opcode %q", ln.op)
	}
	if ln.arg == "" {
		return []peephole.CodeUnit{peephole.Pack(op, 0)}, nil
	}
	arg, ok := resolveArg(ln, labels, pos)
	if !ok {
		return nil, fmt.Errorf("unresolved operand %q for %s", ln.arg, ln.op)
	}
	return peephole.Encode(op, arg), nil
}

func parseAssembly(src string) ([]instrLine, error) {
	var lines []instrLine
	pendingLabel := ""
	for n, raw := range strings.Split(src, "\n") {
		text := raw
		if i := strings.IndexByte(text, ';'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if i := strings.IndexByte(text, ':'); i >= 0 && isLabelName(text[:i]) {
			pendingLabel = text[:i]
			text = strings.TrimSpace(text[i+1:])
			if text == "" {
				continue
			}
		}
		fields := strings.Fields(text)
		ln := instrLine{label: pendingLabel, op: fields[0]}
		pendingLabel = ""
		if len(fields) > 2 {
			return nil, fmt.Errorf("line %d: too many fields: %q", n+1, raw)
		}
		if len(fields) == 2 {
			ln.arg = fields[1]
		}
		lines = append(lines, ln)
	}
	return lines, nil
}

func isLabelName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_') {
			return false
		}
	}
	return true
}
