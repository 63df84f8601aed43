package metagrammar

import "github.com/go-pgen/pgen"

// Node is one node of the meta-grammar's concrete syntax tree: an
// MSTART/RULE/RHS/ALT/ITEM/ATOM nonterminal, or a leaf token kept from
// the source (NAME, STRING, STAR, PLUS). Parents own their children;
// children carry no back-reference.
type Node struct {
	Kind     pgen.TokType
	Str      string
	Line     int
	Children []*Node
}

// NewNode returns a childless Node of the given kind.
func NewNode(kind pgen.TokType, str string, line int) *Node {
	return &Node{Kind: kind, Str: str, Line: line}
}

// AppendChild adds child as the last child of n.
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// String renders n and its subtree, for diagnostics and tests.
func (n *Node) String() string {
	return n.stringIndent(0)
}

func (n *Node) stringIndent(depth int) string {
	s := ""
	for i := 0; i < depth; i++ {
		s += "  "
	}
	if n.Str != "" {
		s += n.Kind.String() + "(" + n.Str + ")"
	} else {
		s += n.Kind.String()
	}
	for _, c := range n.Children {
		s += "\n" + c.stringIndent(depth+1)
	}
	return s
}
