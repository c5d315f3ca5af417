package address

import (
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/addrparse/lr"
)

// --- Grammar ---------------------------------------------------------------

// Terminals refine scanner tokens. Several of them share token type Letters
// and are told apart by their lexemes:
//
//    letter       any run of letters                    prio 3
//    ordinal      st | nd | rd | th                     prio 2
//    street_type  calle | st | street | ave | avenue    prio 2
//    hn_prefix    no                                    prio 2
//    letter1      a single letter                       prio 1
//
// Matching of words is case-insensitive.
//
// The address language, with optional parts spelled out as alternatives:
//
//    address          ::=  street_first | number_first
//                       |  numbered_after | numbered_before        (.1)
//    street_first     ::=  named_street delimiter housenumber
//    number_first     ::=  housenumber delimiter named_street
//    numbered_after   ::=  housenumber delimiter numbered_street
//    numbered_before  ::=  numbered_street delimiter housenumber
//    delimiter        ::=  separator ws | ws
//    named_street     ::=  street_word | named_street ws street_word
//    street_word      ::=  letter | street_word letter | street_word digits
//    numbered_street  ::=  digits ordinal ws street_type
//                       |  street_type ws digits | street_type digits
//    housenumber      ::=  hn_body | hn_prefix hn_body | hn_prefix ws hn_body
//    hn_body          ::=  hn_run | hn_run letter1 | hn_run ws letter1
//    hn_run           ::=  digits | hn_run hn_unit | hn_run ws hn_unit
//    hn_unit          ::=  digits | hn_symbol
//
// If more than one shape fits an input, numbered streets win. Otherwise the
// reading matching words with higher priority terminals wins: "5 b c" has
// street "b c" and house number "5", as "b" is rather a letter than a letter1.
// Readings of equal weight prefer the shape declared first and a leftmost part
// taking as much input as possible.
func makeAddressGrammar() (*lr.LRAnalysis, error) {
	b := lr.NewGrammarBuilder("Addresses")
	b.Terminal("letter", Letters, 3, nil)
	b.Terminal("ordinal", Letters, 2, lr.OneOf("st", "nd", "rd", "th"))
	b.Terminal("street_type", Letters, 2, lr.OneOf("calle", "st", "street", "ave", "avenue"))
	b.Terminal("hn_prefix", Letters, 2, lr.OneOf("no"))
	b.Terminal("letter1", Letters, 1, isSingleLetter)
	b.Terminal("digits", Digits, 0, nil)
	b.Terminal("hn_symbol", Symbol, 0, nil)
	b.Terminal("separator", Separator, 0, nil)
	b.Terminal("ws", Space, 0, nil)
	//
	b.LHS("address").N("street_first").End()
	b.LHS("address").N("number_first").End()
	b.LHS("address").N("numbered_after").Prio(1).End()
	b.LHS("address").N("numbered_before").Prio(1).End()
	b.LHS("street_first").N("named_street").N("delimiter").N("housenumber").End()
	b.LHS("number_first").N("housenumber").N("delimiter").N("named_street").End()
	b.LHS("numbered_after").N("housenumber").N("delimiter").N("numbered_street").End()
	b.LHS("numbered_before").N("numbered_street").N("delimiter").N("housenumber").End()
	b.LHS("delimiter").T("separator", Separator).T("ws", Space).End()
	b.LHS("delimiter").T("ws", Space).End()
	b.LHS("named_street").N("street_word").End()
	b.LHS("named_street").N("named_street").T("ws", Space).N("street_word").End()
	b.LHS("street_word").T("letter", Letters).End()
	b.LHS("street_word").N("street_word").T("letter", Letters).End()
	b.LHS("street_word").N("street_word").T("digits", Digits).End()
	b.LHS("numbered_street").T("digits", Digits).T("ordinal", Letters).T("ws", Space).T("street_type", Letters).End()
	b.LHS("numbered_street").T("street_type", Letters).T("ws", Space).T("digits", Digits).End()
	b.LHS("numbered_street").T("street_type", Letters).T("digits", Digits).End()
	b.LHS("housenumber").N("hn_body").End()
	b.LHS("housenumber").T("hn_prefix", Letters).N("hn_body").End()
	b.LHS("housenumber").T("hn_prefix", Letters).T("ws", Space).N("hn_body").End()
	b.LHS("hn_body").N("hn_run").End()
	b.LHS("hn_body").N("hn_run").T("letter1", Letters).End()
	b.LHS("hn_body").N("hn_run").T("ws", Space).T("letter1", Letters).End()
	b.LHS("hn_run").T("digits", Digits).End()
	b.LHS("hn_run").N("hn_run").N("hn_unit").End()
	b.LHS("hn_run").N("hn_run").T("ws", Space).N("hn_unit").End()
	b.LHS("hn_unit").T("digits", Digits).End()
	b.LHS("hn_unit").T("hn_symbol", Symbol).End()
	g, err := b.Grammar()
	if err != nil {
		return nil, err
	}
	return lr.Analysis(g), nil
}

func isSingleLetter(lexeme string) bool {
	return utf8.RuneCountInString(lexeme) == 1
}

var grammar *lr.LRAnalysis
var grammarErr error
var grammarOnce sync.Once // monitors one-time creation of the grammar

// Grammar returns the address grammar. It is created on first use and is
// read-only afterwards.
func Grammar() (*lr.LRAnalysis, error) {
	grammarOnce.Do(func() {
		tracer().Infof("Creating grammar")
		grammar, grammarErr = makeAddressGrammar()
		if grammarErr == nil {
			grammar.Grammar().Dump()
		}
	})
	return grammar, grammarErr
}
