package parser

import "github.com/go-pgen/pgen"

// childAlign is the node-alignment factor that speeds up reallocation,
// ported from PyNode_AddChild's XXX constant: child-vector capacity
// advances in multiples of 3 once past the first child.
const childAlign = 3

func roundupCapacity(n int) int {
	if n == 1 {
		return 1
	}
	return (n + childAlign - 1) / childAlign * childAlign
}

// Node is a concrete parse-tree node: a kind, an optional lexeme, a
// source line, and an ordered list of children. Parents own their
// children; children carry no reference back to their parent. Strings
// are owned by the node unless the kind is a keyword match, where the
// kind alone already determines identity and the lexeme is redundant.
type Node struct {
	Kind     pgen.TokType
	Lexeme   string
	Line     int
	Children []*Node
}

// NewNode returns a childless Node.
func NewNode(kind pgen.TokType, lexeme string, line int) *Node {
	return &Node{Kind: kind, Lexeme: lexeme, Line: line}
}

// AppendChild adds child as the node's newest child, growing the
// backing array in XXXROUNDUP-sized steps rather than one at a time, so
// most small nodes reallocate their child vector only once or twice.
func (n *Node) AppendChild(child *Node) {
	nch := len(n.Children)
	if roundupCapacity(nch) < nch+1 {
		newCap := roundupCapacity(nch + 1)
		grown := make([]*Node, nch, newCap)
		copy(grown, n.Children)
		n.Children = grown
	}
	n.Children = append(n.Children, child)
}
