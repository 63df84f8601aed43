package metagrammar

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-pgen/pgen"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("pgen.metagrammar")
}

// tok is one lexical token of grammar source.
type tok struct {
	kind pgen.TokType
	str  string
	line int
}

// lexer turns grammar source text into a stream of toks. It understands
// just enough of the source to drive the hand-written descent parser:
// identifiers, quoted strings, the handful of punctuation the grammar
// language uses, newlines (significant, terminating a rule), and
// '#'-comments (skipped to end of line).
type lexer struct {
	src  []rune
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), line: 1}
}

func (l *lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) advance() (rune, bool) {
	r, ok := l.peek()
	if ok {
		l.pos++
		if r == '\n' {
			l.line++
		}
	}
	return r, ok
}

// next returns the next token, or an ENDMARKER token once input is
// exhausted.
func (l *lexer) next() (tok, error) {
	for {
		r, ok := l.peek()
		if !ok {
			return tok{kind: pgen.ENDMARKER, line: l.line}, nil
		}
		switch {
		case r == '\n':
			line := l.line
			l.advance()
			return tok{kind: pgen.NEWLINE, line: line}, nil
		case r == '#':
			for {
				r, ok := l.peek()
				if !ok || r == '\n' {
					break
				}
				l.advance()
			}
		case unicode.IsSpace(r):
			l.advance()
		case unicode.IsLetter(r) || r == '_':
			return l.lexName(), nil
		case r == '\'' || r == '"':
			return l.lexString(r)
		default:
			return l.lexPunct(r)
		}
	}
}

func (l *lexer) lexName() tok {
	line := l.line
	var sb strings.Builder
	for {
		r, ok := l.peek()
		if !ok || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			break
		}
		sb.WriteRune(r)
		l.advance()
	}
	return tok{kind: pgen.NAME, str: sb.String(), line: line}
}

func (l *lexer) lexString(quote rune) (tok, error) {
	line := l.line
	l.advance() // opening quote
	var sb strings.Builder
	for {
		r, ok := l.peek()
		if !ok {
			return tok{}, fmt.Errorf("metagrammar: unterminated string literal at line %d", line)
		}
		if r == quote {
			l.advance()
			break
		}
		sb.WriteRune(r)
		l.advance()
	}
	return tok{kind: pgen.STRING, str: sb.String(), line: line}, nil
}

func (l *lexer) lexPunct(r rune) (tok, error) {
	line := l.line
	switch r {
	case ':':
		l.advance()
		return tok{kind: pgen.COLON, line: line}, nil
	case '|':
		l.advance()
		return tok{kind: pgen.VBAR, line: line}, nil
	case '(':
		l.advance()
		return tok{kind: pgen.LPAR, line: line}, nil
	case ')':
		l.advance()
		return tok{kind: pgen.RPAR, line: line}, nil
	case '[':
		l.advance()
		return tok{kind: pgen.LSQB, line: line}, nil
	case ']':
		l.advance()
		return tok{kind: pgen.RSQB, line: line}, nil
	case '*':
		l.advance()
		return tok{kind: pgen.STAR, line: line}, nil
	case '+':
		l.advance()
		return tok{kind: pgen.PLUS, line: line}, nil
	case ';':
		// An optional rule terminator some grammar fixtures use in
		// place of a trailing newline; treat exactly like NEWLINE.
		l.advance()
		return tok{kind: pgen.NEWLINE, line: line}, nil
	default:
		return tok{}, fmt.Errorf("metagrammar: unexpected character %q at line %d", r, line)
	}
}
