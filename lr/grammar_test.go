package lr

import (
	"testing"

	"github.com/npillmayer/addrparse"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type tok struct {
	typ    addrparse.TokType
	lexeme string
}

func (t tok) TokType() addrparse.TokType { return t.typ }
func (t tok) Lexeme() string             { return t.lexeme }
func (t tok) Span() addrparse.Span       { return addrparse.Span{} }

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a", 1).End()
	b.LHS("A").N("B").N("D").End()
	b.LHS("B").T("b", 2).End()
	b.LHS("B").Epsilon()
	b.LHS("D").T("d", 3).End()
	b.LHS("D").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	g.Dump()
	if g.Size() != 7 {
		t.Errorf("expected grammar to have 7 rules, has %d", g.Size())
	}
	if g.Rule(0).RHS()[0] != g.NonTerminal("S") {
		t.Errorf("expected rule 0 to derive S, is %v", g.Rule(0))
	}
	if g.Rule(3).String() != "[B] ::= [b]" {
		t.Errorf("unexpected rule format: %s", g.Rule(3))
	}
	if !g.Rule(4).IsEps() {
		t.Errorf("expected rule 4 to be an epsilon-production")
	}
	if len(g.FindNonTermRules(g.NonTerminal("D"))) != 2 {
		t.Errorf("expected D to have 2 rules")
	}
	ga := Analysis(g)
	for _, name := range []string{"A", "B", "D"} {
		if !ga.DerivesEpsilon(g.NonTerminal(name)) {
			t.Errorf("expected %s to derive epsilon", name)
		}
	}
	if ga.DerivesEpsilon(g.NonTerminal("S")) {
		t.Errorf("expected S to not derive epsilon")
	}
}

func TestBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Empty")
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected empty grammar to be rejected")
	}
	b = NewGrammarBuilder("Undefined")
	b.LHS("S").N("X").End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected grammar with undefined non-terminal X to be rejected")
	}
	b = NewGrammarBuilder("Mixed")
	b.LHS("S").T("x", 1).N("x").End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected grammar using x as terminal and non-terminal to be rejected")
	}
	b = NewGrammarBuilder("TokType")
	b.LHS("S").T("x", 1).T("x", 2).End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected terminal with two token types to be rejected")
	}
}

func TestRestrictedTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Words")
	ordinal := b.Terminal("ordinal", 7, 2, OneOf("st", "nd", "rd", "th"))
	word := b.Terminal("word", 7, 1, nil)
	b.LHS("S").T("word", 7).T("ordinal", 7).End()
	if _, err := b.Grammar(); err != nil {
		t.Fatal(err)
	}
	if !ordinal.Matches(tok{7, "ND"}) {
		t.Errorf("expected ordinal to match 'ND'")
	}
	if ordinal.Matches(tok{7, "Ave"}) {
		t.Errorf("expected ordinal to not match 'Ave'")
	}
	if ordinal.Matches(tok{8, "th"}) {
		t.Errorf("expected ordinal to not match a token of a different type")
	}
	if !word.Matches(tok{7, "Ave"}) {
		t.Errorf("expected word to match any lexeme of its token type")
	}
}

func TestItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	r := b.LHS("S").N("A").T("a", 1).End()
	b.LHS("A").T("b", 2).End()
	if _, err := b.Grammar(); err != nil {
		t.Fatal(err)
	}
	i := StartItem(r, 3)
	if i.PeekSymbol().Name != "A" || i.IsComplete() {
		t.Errorf("unexpected start item %v", i)
	}
	i = i.Advance()
	if len(i.Prefix()) != 1 || i.PeekSymbol().Name != "a" {
		t.Errorf("unexpected item %v", i)
	}
	i = i.Advance()
	if !i.IsComplete() || i.PeekSymbol() != nil {
		t.Errorf("expected item %v to be complete", i)
	}
	if i.String() != "[S → A a •, 3]" {
		t.Errorf("unexpected item format %q", i.String())
	}
	if i.Advance() != i {
		t.Errorf("advancing a completed item should not change it")
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "addrparse.lr")
	defer teardown()
	//
	build := func(prio int) *Grammar {
		b := NewGrammarBuilder("G")
		b.LHS("S").T("a", 1).Prio(prio).End()
		g, err := b.Grammar()
		if err != nil {
			t.Fatal(err)
		}
		return g
	}
	f1, err := build(0).Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	f2, _ := build(0).Fingerprint()
	f3, _ := build(1).Fingerprint()
	if f1 != f2 {
		t.Errorf("expected equal grammars to have equal fingerprints")
	}
	if f1 == f3 {
		t.Errorf("expected priorities to change the fingerprint")
	}
}
