package scanner

import (
	"strings"

	"github.com/go-pgen/pgen"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'pgen.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("pgen.scanner")
}

// Adapter wraps a compiled lexmachine DFA as a pgen.Token producer.
type Adapter struct {
	Lexer *lexmachine.Lexer
}

// NewAdapter builds an Adapter. init registers any patterns beyond the
// fixed literal/keyword sets (numbers, identifiers, whitespace
// skipping, comments); literals are single- or multi-character
// punctuation tokens ("(", "+", ...), keywords are reserved names,
// registered as their lowercased text and matched case-sensitively
// against it. kinds maps every literal and keyword string to the
// pgen.TokType it should produce.
//
// NewAdapter returns an error if compiling the DFA failed.
func NewAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, kinds map[string]pgen.TokType) (*Adapter, error) {
	a := &Adapter{Lexer: lexmachine.NewLexer()}
	init(a.Lexer)
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		a.Lexer.Add([]byte(r), MakeToken(kinds[lit], lit))
	}
	for _, name := range keywords {
		a.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(kinds[name], name))
	}
	if err := a.Lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return a, nil
}

// Scanner creates a tokenizer for a single input string.
func (a *Adapter) Scanner(input string) (*Scanner, error) {
	s, err := a.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &Scanner{scanner: s, onError: logError}, nil
}

// Scanner produces pgen.Tokens from a lexmachine-compiled DFA.
type Scanner struct {
	scanner *lexmachine.Scanner
	onError func(error)
}

// SetErrorHandler installs h as the scanner's recovery callback for
// unconsumed-input errors. A nil h restores the default, which logs
// through the package tracer.
func (s *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		s.onError = logError
		return
	}
	s.onError = h
}

func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// token is the concrete pgen.Token this package produces.
type token struct {
	kind   pgen.TokType
	lexeme string
	line   int
}

func (t token) Kind() pgen.TokType { return t.kind }
func (t token) Lexeme() string     { return t.lexeme }
func (t token) Line() int          { return t.line }

// NextToken returns the next token, skipping past unconsumed-input
// errors via the installed error handler. It returns an ENDMARKER
// token at end of input, matching the sentinel parser.Engine.AddToken
// expects to see once.
func (s *Scanner) NextToken() pgen.Token {
	tok, err, eof := s.scanner.Next()
	for err != nil {
		s.onError(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			s.scanner.TC = ui.FailTC
		}
		tok, err, eof = s.scanner.Next()
	}
	if eof {
		return token{kind: pgen.ENDMARKER}
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	lt := tok.(*lexmachine.Token)
	return token{
		kind:   pgen.TokType(lt.Type),
		lexeme: string(lt.Lexeme),
		line:   lt.StartLine,
	}
}

// Skip is a pre-defined lexmachine action which discards the scanned
// match (whitespace, comments).
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined lexmachine action which wraps a scanned
// match into a token of the given kind.
func MakeToken(kind pgen.TokType, name string) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(kind), name, m), nil
	}
}
