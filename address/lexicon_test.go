package address

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.scanner")
	defer teardown()
	//
	inputs := map[string][]int{
		"Winterallee 3":    {Letters, Space, Digits},
		"42 42nd Ave":      {Digits, Space, Digits, Letters, Space, Letters},
		"4, rue":           {Digits, Separator, Space, Letters},
		"Irreweg 17 1/2":   {Letters, Space, Digits, Space, Digits, Symbol, Digits},
		"Ruhrstraße 32–34": {Letters, Space, Digits, Symbol, Digits},
		"D1":               {Letters, Digits},
		"a\t b":            {Letters, Space, Letters},
	}
	for input, kinds := range inputs {
		tokens, err := Tokens(input)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", input, err)
			continue
		}
		if len(tokens) != len(kinds) {
			t.Errorf("expected %d tokens for %q, got %v", len(kinds), input, tokens)
			continue
		}
		for i, token := range tokens {
			if int(token.TokType()) != kinds[i] {
				t.Errorf("%q: expected token #%d %q to be %s, is %s", input, i, token.Lexeme(),
					TokenName(kinds[i]), TokenName(int(token.TokType())))
			}
		}
	}
}

func TestUnicodeLetters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.scanner")
	defer teardown()
	//
	for _, word := range []string{"Musterstraße", "Bächle", "Bächle", "Øresund", "Ελλάδα", "Łódź"} {
		tokens, err := Tokens(word)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", word, err)
			continue
		}
		if len(tokens) != 1 || tokens[0].TokType() != Letters || tokens[0].Lexeme() != word {
			t.Errorf("expected %q to be a single run of letters, got %v", word, tokens)
		}
	}
	tokens, _ := Tokens("32–34")
	if len(tokens) != 3 || tokens[1].Span().Len() != 3 {
		t.Errorf("expected en-dash to be a 3-byte symbol, got %v", tokens)
	}
}

func TestInvalidCharacters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.scanner")
	defer teardown()
	//
	positions := map[string]int{
		"Winterallee #3": 12,
		"a©b 3":          1,
		"Hauptstr 5\n":   10,
		"«Am Markt» 1":   0,
	}
	for input, pos := range positions {
		_, err := Tokens(input)
		var uaf *UnrecognizedAddressFormat
		if !errors.As(err, &uaf) {
			t.Errorf("expected %q to be rejected, got %v", input, err)
			continue
		}
		if uaf.Position != pos {
			t.Errorf("expected %q to be rejected at %d, is %d", input, pos, uaf.Position)
		}
	}
}
