package grammar

import (
	"fmt"

	"github.com/go-pgen/pgen"
	"github.com/npillmayer/schuko/tracing"

	"github.com/go-pgen/pgen/bitset"
)

func tracer() tracing.Trace {
	return tracing.Select("pgen.grammar")
}

// Arc is a labeled transition from one state to another within a single
// DFA. Label index Empty appears only on NFA arcs and on the accept
// self-loop a minimized DFA's accepting states carry; it must otherwise
// be absent from a finished DFA.
type Arc struct {
	Label int
	Arrow int // destination state index
}

// State is one state of a DFA: an ordered list of arcs, plus — once
// InstallAccelerators has run — an accepting flag and a compacted
// accelerator window.
type State struct {
	Arcs []Arc

	Accept bool
	Lower  int   // lowest label index covered by Accel
	Upper  int   // one past the highest label index covered by Accel
	Accel  []int32
}

// addArc appends an arc labeled label that leads to state arrow.
func (s *State) addArc(label, arrow int) {
	s.Arcs = append(s.Arcs, Arc{Label: label, Arrow: arrow})
}

// DFA is the compiled automaton for one nonterminal.
type DFA struct {
	Kind    pgen.TokType
	Name    string
	Initial int
	States  []*State

	// First is this nonterminal's FIRST set over label indices, filled
	// in by package nfa once computed. Nil until then.
	First *bitset.Set
}

// AddState appends a new, empty state and returns its index.
func (d *DFA) AddState() int {
	d.States = append(d.States, &State{})
	return len(d.States) - 1
}

// AddArc adds an arc from -> to labeled label. Both state indices must
// already exist; out-of-range indices panic, mirroring the original's
// assert-guarded addarc.
func (d *DFA) AddArc(from, to, label int) {
	if from < 0 || from >= len(d.States) {
		panic(fmt.Sprintf("grammar: AddArc: state %d out of range for dfa %q", from, d.Name))
	}
	if to < 0 || to >= len(d.States) {
		panic(fmt.Sprintf("grammar: AddArc: state %d out of range for dfa %q", to, d.Name))
	}
	d.States[from].addArc(label, to)
}

// Grammar is an ordered sequence of DFAs plus a LabelList and a start
// symbol. The first DFA added is the start rule by convention.
type Grammar struct {
	DFAs   []*DFA
	Labels *LabelList
	Start  pgen.TokType

	// AccelInstalled is set once InstallAccelerators has run; after
	// that point the tables are considered immutable and safe to share
	// read-only across concurrent parsers.
	AccelInstalled bool

	byKind map[pgen.TokType]*DFA
	byName map[string]*DFA
}

// NewGrammar returns an empty Grammar whose start symbol is start. The
// start DFA itself is added with the first call to AddDFA.
func NewGrammar(start pgen.TokType) *Grammar {
	return &Grammar{
		Labels: NewLabelList(),
		Start:  start,
		byKind: make(map[pgen.TokType]*DFA),
		byName: make(map[string]*DFA),
	}
}

// AddDFA creates and registers a new DFA for nonterminal kind, returning
// it for further construction. The first DFA added becomes, by
// convention, the start rule.
func (g *Grammar) AddDFA(kind pgen.TokType, name string) *DFA {
	d := &DFA{Kind: kind, Name: name}
	g.DFAs = append(g.DFAs, d)
	g.byKind[kind] = d
	g.byName[name] = d
	tracer().Debugf("added dfa %q for kind %s", name, kind)
	return d
}

// FindDFA returns the DFA for nonterminal kind, or nil if none has been
// added yet.
func (g *Grammar) FindDFA(kind pgen.TokType) *DFA {
	return g.byKind[kind]
}

// StartDFA returns the grammar's start rule: the first DFA added.
func (g *Grammar) StartDFA() *DFA {
	if len(g.DFAs) == 0 {
		return nil
	}
	return g.DFAs[0]
}

// TypeName renders a human-readable name for a label index, for
// diagnostics: the defining DFA's name for a nonterminal label, or the
// label's own string/kind rendering for a terminal.
func (g *Grammar) TypeName(labelIndex int) string {
	lbl := g.Labels.At(labelIndex)
	if lbl.Kind.IsNonterminal() {
		if d := g.FindDFA(lbl.Kind); d != nil {
			return d.Name
		}
	}
	return lbl.String()
}

// AddLabel interns (kind, str) into the grammar's label list.
func (g *Grammar) AddLabel(kind pgen.TokType, str string) int {
	return g.Labels.Add(kind, str)
}

// FindLabel looks up (kind, str) in the grammar's label list, failing
// loudly if absent (mirroring findlabel's abort() in the original: a
// caller asking for a label that must already exist is a programming
// error, not recoverable input).
func (g *Grammar) FindLabel(kind pgen.TokType, str string) int {
	idx, ok := g.Labels.Find(kind, str)
	if !ok {
		panic(fmt.Sprintf("grammar: FindLabel: no label (%s, %q)", kind, str))
	}
	return idx
}

// TranslateLabels resolves every bare-identifier and quoted-literal
// label interned while walking the meta-tree, once all of the
// grammar's DFAs exist. Mirrors translatelabels/translabel in
// Parser/grammar.c:
//
//   - A NAME-kind label whose string names a defined rule becomes that
//     rule's nonterminal kind with a null string (a reference, not a
//     keyword).
//   - A NAME-kind label whose string names a builtin token kind (e.g.
//     "NEWLINE") becomes that token kind with a null string.
//   - Any other NAME-kind label is left alone: it denotes a keyword,
//     matched at parse time by kind NAME plus exact string.
//   - A STRING-kind label whose text is an alphabetic identifier
//     becomes a keyword: reinterned as (NAME, text).
//   - A STRING-kind label of a single character becomes that
//     character's dedicated token kind (or OP) with a null string.
func (g *Grammar) TranslateLabels() {
	for i := 0; i < g.Labels.Len(); i++ {
		lbl := g.Labels.At(i)
		switch lbl.Kind {
		case pgen.NAME:
			if lbl.Str == "" {
				continue
			}
			if d, ok := g.byName[lbl.Str]; ok {
				g.Labels.Set(i, Label{Kind: d.Kind})
			} else if kind, ok := pgen.TokTypeByName(lbl.Str); ok {
				g.Labels.Set(i, Label{Kind: kind})
			}
			// else: a keyword, left as (NAME, text).
		case pgen.STRING:
			if isAlphabeticIdent(lbl.Str) {
				g.Labels.Set(i, Label{Kind: pgen.NAME, Str: lbl.Str})
			} else if len([]rune(lbl.Str)) == 1 {
				g.Labels.Set(i, Label{Kind: pgen.TokTypeForChar([]rune(lbl.Str)[0])})
			}
			// else: a multi-character operator string; left as-is,
			// classified generically as OP at lex time.
		}
	}
}

func isAlphabeticIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_') {
			return false
		}
	}
	return true
}
