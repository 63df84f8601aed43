package grammar

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/go-pgen/pgen"
)

// Empty is the reserved label index 0: the ε transition in NFA arcs and
// the accept self-loop label installed by the minimizer.
const Empty = 0

// Label is an interned pair of kind and optional string. Two labels are
// equal if both their kind and string match; a nonterminal label's
// string is always empty once translated.
type Label struct {
	Kind pgen.TokType
	Str  string
}

func (l Label) String() string {
	if l.Str == "" {
		return l.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", l.Kind, l.Str)
}

// LabelList is an insertion-ordered, interning collection of Labels.
// Index 0 is always the reserved Empty label.
type LabelList struct {
	labels *arraylist.List
}

// NewLabelList returns a LabelList pre-seeded with the Empty label at
// index 0, per spec: label index 0 is reserved and always means empty.
func NewLabelList() *LabelList {
	ll := &LabelList{labels: arraylist.New()}
	ll.labels.Add(Label{Kind: pgen.ENDMARKER, Str: "EMPTY"})
	return ll
}

// Add returns the index of an existing label equal to (kind, str),
// interning a new one at the end of the list if none matches.
func (ll *LabelList) Add(kind pgen.TokType, str string) int {
	if idx, ok := ll.Find(kind, str); ok {
		return idx
	}
	ll.labels.Add(Label{Kind: kind, Str: str})
	return ll.labels.Size() - 1
}

// Find returns the index of the first label equal to (kind, str), or
// (0, false) if none matches.
func (ll *LabelList) Find(kind pgen.TokType, str string) (int, bool) {
	for i := 0; i < ll.labels.Size(); i++ {
		v, _ := ll.labels.Get(i)
		lbl := v.(Label)
		if lbl.Kind == kind && lbl.Str == str {
			return i, true
		}
	}
	return 0, false
}

// At returns the label at index i.
func (ll *LabelList) At(i int) Label {
	v, ok := ll.labels.Get(i)
	if !ok {
		panic("grammar: label index out of range")
	}
	return v.(Label)
}

// Set overwrites the label at index i, used by Grammar.TranslateLabels
// to give a nonterminal's placeholder label its defining DFA's kind.
func (ll *LabelList) Set(i int, l Label) {
	ll.labels.Set(i, l)
}

// Len reports the number of interned labels.
func (ll *LabelList) Len() int {
	return ll.labels.Size()
}
