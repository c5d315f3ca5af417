package lr

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/addrparse"
)

// --- Symbols ---------------------------------------------------------------

// Symbol is a grammar symbol, either a terminal or a non-terminal.
type Symbol struct {
	Name     string
	Value    int // token type for terminals, serial number for non-terminals
	Prio     int // priority of a terminal
	terminal bool
	match    func(string) bool // lexeme restriction of a terminal, may be nil
}

// IsTerminal returns true if this symbol represents a terminal.
func (A *Symbol) IsTerminal() bool {
	return A.terminal
}

// Matches is true if A is a terminal accepting token tok. The token type
// has to match and, if A is restricted to certain lexemes, the lexeme has
// to pass the restriction.
func (A *Symbol) Matches(tok addrparse.Token) bool {
	if A == nil || !A.terminal || tok == nil {
		return false
	}
	if int(tok.TokType()) != A.Value {
		return false
	}
	return A.match == nil || A.match(tok.Lexeme())
}

func (A *Symbol) String() string {
	return A.Name
}

// OneOf returns a lexeme restriction accepting any of the given words,
// ignoring case.
func OneOf(words ...string) func(string) bool {
	return func(lexeme string) bool {
		for _, w := range words {
			if strings.EqualFold(w, lexeme) {
				return true
			}
		}
		return false
	}
}

// --- Rules -----------------------------------------------------------------

// Rule is a type for rules of a grammar. Rules cannot be shared between grammars.
type Rule struct {
	Serial int     // order number of this rule within a grammar
	LHS    *Symbol // symbol of left hand side
	rhs    []*Symbol
	Prio   int // priority when competing with other rules for the same LHS
}

// RHS returns the right hand side of a rule. Clients must not modify it.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// IsEps is true for epsilon-productions.
func (r *Rule) IsEps() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("[%s] ::= [", r.LHS.Name))
	for i, A := range r.rhs {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(A.Name)
	}
	b.WriteString("]")
	if r.Prio != 0 {
		b.WriteString(fmt.Sprintf(" .%d", r.Prio))
	}
	return b.String()
}

// --- Grammars --------------------------------------------------------------

// Grammar is a type for a context-free grammar. Grammars are immutable once
// built by a GrammarBuilder and may be shared between goroutines.
type Grammar struct {
	Name         string
	rules        []*Rule
	terminals    []*Symbol // in order of declaration
	nonterminals []*Symbol // in order of appearance
	symbols      map[string]*Symbol
}

func newGrammar(name string) *Grammar {
	return &Grammar{
		Name:    name,
		symbols: make(map[string]*Symbol),
	}
}

// Rule gets a grammar rule by serial number.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Size returns the number of rules in the grammar, including rule 0.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Terminal returns the terminal symbol for a given name, or nil.
func (g *Grammar) Terminal(name string) *Symbol {
	if A, ok := g.symbols[name]; ok && A.terminal {
		return A
	}
	return nil
}

// NonTerminal returns the non-terminal symbol for a given name, or nil.
func (g *Grammar) NonTerminal(name string) *Symbol {
	if A, ok := g.symbols[name]; ok && !A.terminal {
		return A
	}
	return nil
}

// EachTerminal iterates over all terminals in order of declaration.
func (g *Grammar) EachTerminal(f func(A *Symbol)) {
	for _, A := range g.terminals {
		f(A)
	}
}

// EachNonTerminal iterates over all non-terminals in order of appearance.
func (g *Grammar) EachNonTerminal(f func(A *Symbol)) {
	for _, A := range g.nonterminals {
		f(A)
	}
}

// FindNonTermRules returns all rules with LHS A, in order of declaration.
func (g *Grammar) FindNonTermRules(A *Symbol) []*Rule {
	var R []*Rule
	for _, r := range g.rules {
		if r.LHS == A {
			R = append(R, r)
		}
	}
	return R
}

// Dump is a debugging helper, tracing all rules of a grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

type grammarDigest struct {
	Name      string
	Terminals []string
	Rules     []string
}

// Fingerprint returns a hash over the terminals and rules of a grammar.
// Grammars with equal rules, priorities and terminal declarations share a
// fingerprint. Lexeme restrictions of terminals do not contribute.
func (g *Grammar) Fingerprint() (string, error) {
	d := grammarDigest{Name: g.Name}
	for _, A := range g.terminals {
		d.Terminals = append(d.Terminals, fmt.Sprintf("%s/%d/%d", A.Name, A.Value, A.Prio))
	}
	for _, r := range g.rules {
		d.Rules = append(d.Rules, r.String())
	}
	return structhash.Hash(d, 1)
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars.
type GrammarBuilder struct {
	g   *Grammar
	err error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	gb := &GrammarBuilder{g: newGrammar(gname)}
	start := gb.nonterminal("S'")
	gb.g.rules = append(gb.g.rules, &Rule{Serial: 0, LHS: start})
	return gb
}

// Terminal declares a terminal symbol for token type tokval. prio is the
// terminal's priority and match restricts the lexemes it accepts (nil accepts
// every lexeme of type tokval). Terminals referenced by T without prior
// declaration are unrestricted and have priority 0.
func (gb *GrammarBuilder) Terminal(name string, tokval int, prio int, match func(string) bool) *Symbol {
	if A, ok := gb.g.symbols[name]; ok {
		gb.fail(fmt.Errorf("symbol %q declared twice", name))
		return A
	}
	A := &Symbol{Name: name, Value: tokval, Prio: prio, terminal: true, match: match}
	gb.g.symbols[name] = A
	gb.g.terminals = append(gb.g.terminals, A)
	return A
}

func (gb *GrammarBuilder) terminal(name string, tokval int) *Symbol {
	A, ok := gb.g.symbols[name]
	if !ok {
		return gb.Terminal(name, tokval, 0, nil)
	}
	if !A.terminal {
		gb.fail(fmt.Errorf("symbol %q used as terminal and non-terminal", name))
	} else if A.Value != tokval {
		gb.fail(fmt.Errorf("terminal %q used with token types %d and %d", name, A.Value, tokval))
	}
	return A
}

func (gb *GrammarBuilder) nonterminal(name string) *Symbol {
	A, ok := gb.g.symbols[name]
	if !ok {
		A = &Symbol{Name: name, Value: len(gb.g.nonterminals)}
		gb.g.symbols[name] = A
		gb.g.nonterminals = append(gb.g.nonterminals, A)
	} else if A.terminal {
		gb.fail(fmt.Errorf("symbol %q used as terminal and non-terminal", name))
	}
	return A
}

func (gb *GrammarBuilder) fail(err error) {
	tracer().Errorf("grammar %s: %v", gb.g.Name, err)
	if gb.err == nil {
		gb.err = err
	}
}

// LHS starts a rule given the left hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	A := gb.nonterminal(s)
	if start := gb.g.rules[0]; len(start.rhs) == 0 {
		start.rhs = []*Symbol{A}
	}
	return &RuleBuilder{gb: gb, rule: &Rule{LHS: A}}
}

// Grammar returns the (completed) grammar. It returns an error if the grammar
// is empty, symbols are declared inconsistently, or a non-terminal is used
// without having any rules.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if len(gb.g.rules) < 2 {
		return nil, errors.New("grammar has no rules")
	}
	for _, A := range gb.g.nonterminals {
		if len(gb.g.FindNonTermRules(A)) == 0 {
			return nil, fmt.Errorf("non-terminal %q has no rules", A.Name)
		}
	}
	return gb.g, nil
}

// RuleBuilder is a builder type for rules.
type RuleBuilder struct {
	gb   *GrammarBuilder
	rule *Rule
}

// N appends a non-terminal to the right hand side of a rule.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.rule.rhs = append(rb.rule.rhs, rb.gb.nonterminal(s))
	return rb
}

// T appends a terminal to the right hand side of a rule.
func (rb *RuleBuilder) T(s string, tokval int) *RuleBuilder {
	rb.rule.rhs = append(rb.rule.rhs, rb.gb.terminal(s, tokval))
	return rb
}

// Prio sets the priority of a rule.
func (rb *RuleBuilder) Prio(p int) *RuleBuilder {
	rb.rule.Prio = p
	return rb
}

// End ends a rule.
func (rb *RuleBuilder) End() *Rule {
	rb.rule.Serial = len(rb.gb.g.rules)
	rb.gb.g.rules = append(rb.gb.g.rules, rb.rule)
	return rb.rule
}

// Epsilon sets an epsilon-production as the right hand side of a rule.
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.rule.rhs = nil
	return rb.End()
}

// --- Analysis --------------------------------------------------------------

// LRAnalysis is an object for grammar analysis (nullable non-terminals).
type LRAnalysis struct {
	g        *Grammar
	nullable map[*Symbol]bool
}

// Analysis creates an analysis object for a grammar.
func Analysis(g *Grammar) *LRAnalysis {
	if g == nil {
		return nil
	}
	ga := &LRAnalysis{g: g, nullable: make(map[*Symbol]bool)}
	ga.markEps()
	return ga
}

// Grammar returns the grammar this analysis is for.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// DerivesEpsilon returns true if there are rules in the grammar which let A
// derive the empty input.
func (ga *LRAnalysis) DerivesEpsilon(A *Symbol) bool {
	return ga.nullable[A]
}

func (ga *LRAnalysis) markEps() {
	changed := true
	for changed {
		changed = false
		for _, r := range ga.g.rules {
			if ga.nullable[r.LHS] {
				continue
			}
			eps := true
			for _, A := range r.rhs {
				if A.terminal || !ga.nullable[A] {
					eps = false
					break
				}
			}
			if eps {
				tracer().Debugf("%s derives epsilon", r.LHS)
				ga.nullable[r.LHS] = true
				changed = true
			}
		}
	}
}
