package nfa

import (
	"github.com/go-pgen/pgen"

	"github.com/go-pgen/pgen/diag"
	"github.com/go-pgen/pgen/grammar"
	"github.com/go-pgen/pgen/metagrammar"
)

// builder walks a metagrammar concrete syntax tree and compiles each
// RULE into a builder-internal NFA via Thompson-style construction,
// mirroring compile_rule/compile_rhs/compile_alt/compile_item/
// compile_atom in Parser/pgen.c.
type builder struct {
	ctx    *GeneratorContext
	g      *grammar.Grammar
	byName map[string]*nfa
	order  []*nfa // in kind-assignment order
	diags  *diag.Collector
}

// getOrCreateNFA returns the NFA for rule name, creating it (and
// assigning the next nonterminal kind) on first reference. Because a
// name may be referenced by an atom before its own RULE is processed,
// kind assignment order follows first-mention order, exactly as
// addnfa's lazy lookup does in the original.
func (b *builder) getOrCreateNFA(name string) *nfa {
	if n, ok := b.byName[name]; ok {
		return n
	}
	kind := b.ctx.newNonterminalKind()
	n := newNFA(name, kind)
	b.byName[name] = n
	b.order = append(b.order, n)
	return n
}

// compileRule: RULE ::= NAME COLON RHS NEWLINE.
func (b *builder) compileRule(rule *metagrammar.Node) error {
	name := rule.Children[0].Str
	n := b.getOrCreateNFA(name)
	a, fin, err := b.compileRHS(n, rule.Children[1])
	if err != nil {
		return err
	}
	n.start, n.finish = a, fin
	return nil
}

// compileRHS: RHS ::= ALT (VBAR ALT)*.
func (b *builder) compileRHS(n *nfa, rhs *metagrammar.Node) (a, bEnd int, err error) {
	a, bEnd, err = b.compileAlt(n, rhs.Children[0])
	if err != nil {
		return 0, 0, err
	}
	for _, altNode := range rhs.Children[1:] {
		a2, b2, err := b.compileAlt(n, altNode)
		if err != nil {
			return 0, 0, err
		}
		newA := n.addState()
		newB := n.addState()
		n.addArc(newA, a, grammarEmpty)
		n.addArc(bEnd, newB, grammarEmpty)
		n.addArc(newA, a2, grammarEmpty)
		n.addArc(b2, newB, grammarEmpty)
		a, bEnd = newA, newB
	}
	return a, bEnd, nil
}

// compileAlt: ALT ::= ITEM+.
func (b *builder) compileAlt(n *nfa, alt *metagrammar.Node) (a, bEnd int, err error) {
	a, bEnd, err = b.compileItem(n, alt.Children[0])
	if err != nil {
		return 0, 0, err
	}
	for _, item := range alt.Children[1:] {
		a2, b2, err := b.compileItem(n, item)
		if err != nil {
			return 0, 0, err
		}
		n.addArc(bEnd, a2, grammarEmpty)
		bEnd = b2
	}
	return a, bEnd, nil
}

// compileItem: ITEM ::= '[' RHS ']' | ATOM ('*' | '+')?.
func (b *builder) compileItem(n *nfa, item *metagrammar.Node) (a, bEnd int, err error) {
	first := item.Children[0]
	if first.Kind == pgen.RHS {
		a = n.addState()
		bEnd = n.addState()
		n.addArc(a, bEnd, grammarEmpty)
		a2, b2, err := b.compileRHS(n, first)
		if err != nil {
			return 0, 0, err
		}
		n.addArc(a, a2, grammarEmpty)
		n.addArc(b2, bEnd, grammarEmpty)
		return a, bEnd, nil
	}
	a, bEnd, err = b.compileAtom(n, first)
	if err != nil {
		return 0, 0, err
	}
	if len(item.Children) > 1 {
		switch item.Children[1].Kind {
		case pgen.STAR:
			n.addArc(bEnd, a, grammarEmpty)
			bEnd = a
		case pgen.PLUS:
			n.addArc(bEnd, a, grammarEmpty)
		}
	}
	return a, bEnd, nil
}

// compileAtom: ATOM ::= '(' RHS ')' | NAME | STRING.
func (b *builder) compileAtom(n *nfa, atom *metagrammar.Node) (a, bEnd int, err error) {
	child := atom.Children[0]
	if child.Kind == pgen.RHS {
		return b.compileRHS(n, child)
	}
	a = n.addState()
	bEnd = n.addState()
	label := b.g.AddLabel(child.Kind, child.Str)
	n.addArc(a, bEnd, label)
	return a, bEnd, nil
}
