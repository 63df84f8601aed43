package metagrammar

import (
	"fmt"

	"github.com/go-pgen/pgen"
)

// parser is the hand-written recursive-descent parser for grammar
// source, driven by one token of lookahead.
type parser struct {
	lx  *lexer
	cur tok
}

// Parse tokenizes and parses src, returning the MSTART root of its
// concrete syntax tree: MSTART ::= RULE+ ENDMARKER. Blank and
// comment-only lines between rules are skipped.
func Parse(src string) (*Node, error) {
	p := &parser{lx: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseMStart()
}

func (p *parser) advance() error {
	t, err := p.lx.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) parseMStart() (*Node, error) {
	root := NewNode(pgen.MSTART, "", p.cur.line)
	for p.cur.kind != pgen.ENDMARKER {
		if p.cur.kind == pgen.NEWLINE {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		rule, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		root.AppendChild(rule)
	}
	root.AppendChild(NewNode(pgen.ENDMARKER, "", p.cur.line))
	tracer().Debugf("parsed %d rule(s)", len(root.Children)-1)
	return root, nil
}

// parseRule: RULE ::= NAME COLON RHS NEWLINE
func (p *parser) parseRule() (*Node, error) {
	if p.cur.kind != pgen.NAME {
		return nil, fmt.Errorf("metagrammar: line %d: expected rule name, got %s", p.cur.line, p.cur.kind)
	}
	node := NewNode(pgen.RULE, "", p.cur.line)
	node.AppendChild(NewNode(pgen.NAME, p.cur.str, p.cur.line))
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.kind != pgen.COLON {
		return nil, fmt.Errorf("metagrammar: line %d: expected ':' after rule name", p.cur.line)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.parseRHS()
	if err != nil {
		return nil, err
	}
	node.AppendChild(rhs)
	if p.cur.kind != pgen.NEWLINE {
		return nil, fmt.Errorf("metagrammar: line %d: expected newline to end rule", p.cur.line)
	}
	return node, p.advance()
}

// parseRHS: RHS ::= ALT (VBAR ALT)*
func (p *parser) parseRHS() (*Node, error) {
	node := NewNode(pgen.RHS, "", p.cur.line)
	alt, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	node.AppendChild(alt)
	for p.cur.kind == pgen.VBAR {
		if err := p.advance(); err != nil {
			return nil, err
		}
		alt, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		node.AppendChild(alt)
	}
	return node, nil
}

// parseAlt: ALT ::= ITEM+
func (p *parser) parseAlt() (*Node, error) {
	node := NewNode(pgen.ALT, "", p.cur.line)
	for isItemStart(p.cur.kind) {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		node.AppendChild(item)
	}
	if len(node.Children) == 0 {
		return nil, fmt.Errorf("metagrammar: line %d: empty alternative", p.cur.line)
	}
	return node, nil
}

// parseItem: ITEM ::= '[' RHS ']' | ATOM ('*' | '+')?
func (p *parser) parseItem() (*Node, error) {
	node := NewNode(pgen.ITEM, "", p.cur.line)
	if p.cur.kind == pgen.LSQB {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseRHS()
		if err != nil {
			return nil, err
		}
		node.AppendChild(rhs)
		if p.cur.kind != pgen.RSQB {
			return nil, fmt.Errorf("metagrammar: line %d: expected ']'", p.cur.line)
		}
		return node, p.advance()
	}
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	node.AppendChild(atom)
	if p.cur.kind == pgen.STAR || p.cur.kind == pgen.PLUS {
		node.AppendChild(NewNode(p.cur.kind, "", p.cur.line))
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// parseAtom: ATOM ::= '(' RHS ')' | NAME | STRING
func (p *parser) parseAtom() (*Node, error) {
	node := NewNode(pgen.ATOM, "", p.cur.line)
	switch p.cur.kind {
	case pgen.LPAR:
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseRHS()
		if err != nil {
			return nil, err
		}
		node.AppendChild(rhs)
		if p.cur.kind != pgen.RPAR {
			return nil, fmt.Errorf("metagrammar: line %d: expected ')'", p.cur.line)
		}
		return node, p.advance()
	case pgen.NAME:
		node.AppendChild(NewNode(pgen.NAME, p.cur.str, p.cur.line))
		return node, p.advance()
	case pgen.STRING:
		node.AppendChild(NewNode(pgen.STRING, p.cur.str, p.cur.line))
		return node, p.advance()
	default:
		return nil, fmt.Errorf("metagrammar: line %d: expected atom, got %s", p.cur.line, p.cur.kind)
	}
}

func isItemStart(k pgen.TokType) bool {
	switch k {
	case pgen.LSQB, pgen.LPAR, pgen.NAME, pgen.STRING:
		return true
	default:
		return false
	}
}
