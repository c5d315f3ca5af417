/*
Package scanner defines an interface for scanners to be used with parsers of package lr.

A scanner implementation backed by lexmachine lives in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/addrparse"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'addrparse.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("addrparse.scanner")
}

// EOF is the token type of the end-of-input token.
const EOF addrparse.TokType = -1

// Tokenizer is a scanner interface.
//
// After reporting an error to its error handler, a Tokenizer will return EOF.
type Tokenizer interface {
	NextToken() addrparse.Token
	SetErrorHandler(func(error))
}

// Error is a lexical error at a byte offset of the input.
type Error struct {
	Pos uint64 // byte offset where scanning failed
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("scanner error at %d: %s", e.Pos, e.Msg)
}

// LogError is the default error handler for scanners. It traces the error.
func LogError(e error) {
	tracer().Infof("scanner error: %v", e)
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for
// scanners in this module.
type DefaultToken struct {
	kind   addrparse.TokType
	lexeme string
	span   addrparse.Span
}

var _ addrparse.Token = DefaultToken{}

// MakeDefaultToken creates a token from a token type, a lexeme and its span
// within the input.
func MakeDefaultToken(typ addrparse.TokType, lexeme string, span addrparse.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// EOFToken returns an end-of-input token located at byte offset pos.
func EOFToken(pos uint64) DefaultToken {
	return MakeDefaultToken(EOF, "", addrparse.Span{pos, pos})
}

func (t DefaultToken) TokType() addrparse.TokType {
	return t.kind
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() addrparse.Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.kind == EOF {
		return "<EOF>"
	}
	return fmt.Sprintf("%q|%d@%d", t.lexeme, t.kind, t.span.From())
}
