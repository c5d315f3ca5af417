package address

import (
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/addrparse/lr/scanner/lexmach"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types produced by the address scanner.
const (
	Letters   = iota + 1 // run of unicode letters
	Digits               // run of ASCII digits
	Symbol               // punctuation inside house numbers
	Separator            // ','
	Space                // blanks and tabs
)

// TokenName returns a readable name for an address token type.
func TokenName(toktype int) string {
	switch toktype {
	case Letters:
		return "Letters"
	case Digits:
		return "Digits"
	case Symbol:
		return "Symbol"
	case Separator:
		return "Separator"
	case Space:
		return "Space"
	}
	return "?"
}

// Literals of the address language. Dashes appear in ASCII, as en-dash and
// as em-dash.
var literals = []string{",", ".", "/", "-", "–", "—"}

var tokenIds = map[string]int{
	",": Separator,
	".": Symbol,
	"/": Symbol,
	"-": Symbol,
	"–": Symbol,
	"—": Symbol,
}

// letterBytes matches a single UTF-8 encoded character which may be a letter.
// lexmachine works on bytes, so the pattern lists the valid UTF-8 byte
// sequences. Sequences starting with E2 80 are left out: that block holds
// dashes, quotes and spaces, never letters. Every rune of a match is checked
// for being a letter by the scanner action.
var letterBytes = "(" + alternatives(
	`[a-zA-Z]`,
	"[\xc2-\xdf][\x80-\xbf]",
	"\xe0[\xa0-\xbf][\x80-\xbf]",
	"\xe1[\x80-\xbf][\x80-\xbf]",
	"\xe2[\x81-\xbf][\x80-\xbf]",
	"[\xe3-\xec][\x80-\xbf][\x80-\xbf]",
	"\xed[\x80-\x9f][\x80-\xbf]",
	"[\xee-\xef][\x80-\xbf][\x80-\xbf]",
	"\xf0[\x90-\xbf][\x80-\xbf][\x80-\xbf]",
	"[\xf1-\xf3][\x80-\xbf][\x80-\xbf][\x80-\xbf]",
	"\xf4[\x80-\x8f][\x80-\xbf][\x80-\xbf]",
) + ")"

func alternatives(patterns ...string) string {
	s := ""
	for i, p := range patterns {
		if i > 0 {
			s += "|"
		}
		s += "(" + p + ")"
	}
	return s
}

// isLetter is true for unicode letters and for non-spacing marks, which
// appear in decomposed spellings like "ä".
func isLetter(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Mn, r)
}

// scanLetters is the scanner action for letter runs. It rejects runs
// containing a character which is not a letter.
func scanLetters(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	for i := 0; i < len(m.Bytes); {
		r, size := utf8.DecodeRune(m.Bytes[i:])
		if r == utf8.RuneError || !isLetter(r) {
			return nil, lexmach.Reject(m, i, "not a letter")
		}
		i += size
	}
	return s.Token(Letters, string(m.Bytes), m), nil
}

var lexer *lexmach.LMAdapter
var lexerErr error
var lexerOnce sync.Once // monitors one-time creation of the lexer

// Lexer returns the lexmachine adapter for addresses. It is created on first
// use and shared afterwards.
func Lexer() (*lexmach.LMAdapter, error) {
	lexerOnce.Do(func() {
		tracer().Infof("Creating lexer")
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(letterBytes+"+"), scanLetters)
			lexer.Add([]byte(`[0-9]+`), lexmach.MakeToken("Digits", Digits))
			lexer.Add([]byte(`( |\t)+`), lexmach.MakeToken("Space", Space))
		}
		lexer, lexerErr = lexmach.NewLMAdapter(init, literals, tokenIds)
	})
	return lexer, lexerErr
}
