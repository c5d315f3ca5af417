package address

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/addrparse/lr/cst"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var testVectors = map[string]ParsedAddress{
	// German addresses
	"Winterallee 3":           {"Winterallee", "3"},
	"Musterstrasse 45":        {"Musterstrasse", "45"},
	"Musterstraße 45":         {"Musterstraße", "45"},
	"Blaufeldweg 123B":        {"Blaufeldweg", "123B"},
	"Am Bächle 23":            {"Am Bächle", "23"},
	"Auf der Vogelwiese 23 b": {"Auf der Vogelwiese", "23 b"},
	"Irreweg 17 1/2":          {"Irreweg", "17 1/2"},
	"Irreweg 19.5":            {"Irreweg", "19.5"},
	"Ruhrstraße 32–34":        {"Ruhrstraße", "32–34"},
	"Ruhrstraße 32—34":        {"Ruhrstraße", "32—34"},
	"Postfach 10 01 65":       {"Postfach", "10 01 65"},
	"D1, 1-3":                 {"D1", "1-3"},
	"Winterallee, 3":          {"Winterallee", "3"},
	"Calle Año 5":             {"Calle Año", "5"},
	// French addresses
	"4, rue de la revolution": {"rue de la revolution", "4"},
	"12 place de la Concorde": {"place de la Concorde", "12"},
	// Numbered streets
	"42 42nd Ave":      {"42nd Ave", "42"},
	"7 7TH St":         {"7TH St", "7"},
	"1 3rd Street":     {"3rd Street", "1"},
	"Calle 39 No 1540": {"Calle 39", "No 1540"},
	"Calle 39 no1540":  {"Calle 39", "no1540"},
	"Calle39 12":       {"Calle39", "12"},
	"14th St 5":        {"14th St", "5"},
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.address")
	defer teardown()
	//
	for input, expected := range testVectors {
		addr, err := Parse(input)
		if err != nil {
			t.Errorf("expected %q to be parsed, error is %v", input, err)
			continue
		}
		if addr != expected {
			t.Errorf("expected %q to be parsed as %+v, is %+v", input, expected, addr)
		}
	}
}

func TestTieBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.address")
	defer teardown()
	//
	cases := map[string]ParsedAddress{
		"Calle 39 12": {"Calle 39", "12"}, // numbered street wins over "Calle" / "39 12"
		"5 b c":       {"b c", "5"},       // "b" is rather a letter than a letter1
		"Main No 5 b": {"Main No", "5 b"}, // "No" is rather a letter than a hn_prefix
	}
	for input, expected := range cases {
		for i := 0; i < 3; i++ {
			addr, err := Parse(input)
			if err != nil {
				t.Fatalf("expected %q to be parsed, error is %v", input, err)
			}
			if addr != expected {
				t.Errorf("expected %q to be parsed as %+v, is %+v", input, expected, addr)
			}
		}
	}
}

func TestTerminalPriority(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.address")
	defer teardown()
	//
	ga, err := makeAddressGrammar()
	if err != nil {
		t.Fatal(err)
	}
	parse := func(input string) ParsedAddress {
		tree, err := parseWith(ga, input)
		if err != nil {
			t.Fatalf("expected %q to be parsed, error is %v", input, err)
		}
		addr, err := condense(tree)
		if err != nil {
			t.Fatal(err)
		}
		return addr
	}
	if addr := parse("5 b c"); addr != (ParsedAddress{"b c", "5"}) {
		t.Errorf("expected letter to win over letter1, got %+v", addr)
	}
	g := ga.Grammar()
	g.Terminal("letter").Prio, g.Terminal("letter1").Prio = 0, 9
	if addr := parse("5 b c"); addr != (ParsedAddress{"c", "5 b"}) {
		t.Errorf("expected letter1 to win over letter, got %+v", addr)
	}
}

func TestParseTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.address")
	defer teardown()
	//
	tree, err := ParseTree("Calle 39 No 1540")
	if err != nil {
		t.Fatal(err)
	}
	root := tree.(*cst.Rule)
	if root.Symbol != "S'" || root.Children[0].Name() != "address" {
		t.Errorf("expected tree to start with S' → address, is %v", root)
	}
	shape := root.Children[0].(*cst.Rule).Children[0]
	if shape.Name() != "numbered_before" {
		t.Errorf("expected address to be numbered_before, is %s", shape.Name())
	}
	if cst.Find(tree, "hn_prefix") == nil {
		t.Errorf("expected house number to have a prefix")
	}
	if cst.Text(tree) != "Calle 39 No 1540" {
		t.Errorf("expected tree to cover the complete input, covers %q", cst.Text(tree))
	}
}

func TestUnrecognized(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.address")
	defer teardown()
	//
	positions := map[string]int{
		"":                     0,
		"   ":                  0,
		"Winterallee":          11,
		"Auf der Vogelwiese":   18,
		" Winterallee 3":       0,
		"Winterallee 3 ":       14,
		"Winterallee,3":        12,
		"Winterallee #3":       12,
		"Winterallee 3 4 5b c": 18,
		"3 4":                  3,
		"Irreweg 17 1/2 ab":    15,
	}
	for input, pos := range positions {
		addr, err := Parse(input)
		var uaf *UnrecognizedAddressFormat
		if !errors.As(err, &uaf) {
			t.Errorf("expected %q to be unrecognized, got %+v, %v", input, addr, err)
			continue
		}
		if addr != (ParsedAddress{}) {
			t.Errorf("expected no partial result for %q, got %+v", input, addr)
		}
		if uaf.Position != pos {
			t.Errorf("expected %q to fail at %d, fails at %d", input, pos, uaf.Position)
		}
		if uaf.Snippet != input[uaf.Position:] || uaf.Input != input {
			t.Errorf("unexpected error context for %q: %+v", input, uaf)
		}
		if uaf.Error() == "" {
			t.Errorf("expected an error message")
		}
	}
}

func TestNoDigits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.address")
	defer teardown()
	//
	for _, input := range []string{"Winterallee", "Am Markt, Rathaus", "rue de la paix", "St Ave", "a b c"} {
		if _, err := Parse(input); err == nil {
			t.Errorf("expected input without digits %q to be rejected", input)
		}
	}
}

func TestMaxInputLength(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.address")
	defer teardown()
	//
	input := strings.Repeat("Lange ", 100) + "Strasse 1"
	_, err := Parse(input)
	var uaf *UnrecognizedAddressFormat
	if !errors.As(err, &uaf) || uaf.Position != MaxInputLength {
		t.Errorf("expected overlong input to be rejected at %d, error is %v", MaxInputLength, err)
	}
	input = strings.Repeat("Lange ", 60) + "Strasse 1"
	if _, err = Parse(input); err != nil {
		t.Errorf("expected input of %d bytes to be accepted, error is %v", len(input), err)
	}
}

// No test tracing here: the testing adapter must not be used concurrently.
func TestConcurrentParse(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan string, 8*len(testVectors))
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for input, expected := range testVectors {
				if addr, err := Parse(input); err != nil || addr != expected {
					errs <- input
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for input := range errs {
		t.Errorf("concurrent parse of %q differs", input)
	}
}

func TestOutputInvariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.address")
	defer teardown()
	//
	for input := range testVectors {
		addr, err := Parse(input)
		if err != nil {
			continue // reported by TestParse
		}
		if addr.Street == "" || strings.TrimRight(strings.TrimLeft(addr.Street, ", \t"), ", \t") != addr.Street {
			t.Errorf("street %q of %q is empty or not trimmed", addr.Street, input)
		}
		if strings.IndexAny(addr.HouseNumber, "0123456789") < 0 {
			t.Errorf("house number %q of %q has no digits", addr.HouseNumber, input)
		}
	}
}
