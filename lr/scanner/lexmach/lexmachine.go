package lexmach

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/addrparse"
	"github.com/npillmayer/addrparse/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'addrparse.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("addrparse.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
// An LMAdapter is immutable after creation and may be shared between goroutines.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives an initializer for
// patterns, a list of literals (",", "/", …) and a map for translating literals
// to their token types. Patterns added by init take precedence over literals
// for matches of equal length.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	for _, lit := range literals {
		id, ok := tokenIds[lit]
		if !ok {
			return nil, fmt.Errorf("no token type for literal %q", lit)
		}
		adapter.Lexer.Add([]byte(Literal(lit)), MakeToken(lit, id))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Literal turns a string into a lexmachine pattern matching exactly this string.
// ASCII characters are escaped, other bytes are passed unchanged.
func Literal(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if r < utf8.RuneSelf {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &LMScanner{scanner: s, Error: scanner.LogError, length: uint64(len(input))}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
//
// LMScanner stops at the first lexical error: the error is reported to the
// error handler and every subsequent call of NextToken returns EOF.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
	length  uint64 // length of input in bytes
	done    bool
	pos     uint64 // position of EOF
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = scanner.LogError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() addrparse.Token {
	if lms.done {
		return scanner.EOFToken(lms.pos)
	}
	tok, err, eof := lms.scanner.Next()
	if err != nil {
		serr := lms.scanError(err)
		lms.done, lms.pos = true, serr.Pos
		lms.Error(serr)
		return scanner.EOFToken(lms.pos)
	}
	if eof {
		lms.done, lms.pos = true, lms.length
		return scanner.EOFToken(lms.pos)
	}
	token := tok.(*lexmachine.Token)
	from := uint64(token.TC)
	t := scanner.MakeDefaultToken(
		addrparse.TokType(token.Type),
		string(token.Lexeme),
		addrparse.Span{from, from + uint64(len(token.Lexeme))},
	)
	tracer().Debugf("token %v", t)
	return t
}

func (lms *LMScanner) scanError(err error) *scanner.Error {
	switch e := err.(type) {
	case *scanner.Error:
		return e
	case *machines.UnconsumedInput:
		return &scanner.Error{Pos: uint64(e.StartTC), Msg: "no token matches input"}
	}
	return &scanner.Error{Pos: uint64(lms.scanner.TC), Msg: err.Error()}
}

// ---------------------------------------------------------------------------

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// Reject is a helper for actions refusing a match. It creates a lexical error
// located offset bytes behind the start of match m.
func Reject(m *machines.Match, offset int, msg string) error {
	return &scanner.Error{Pos: uint64(m.TC + offset), Msg: msg}
}
