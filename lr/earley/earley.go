/*
Package earley provides an Earley-Parser.

Earley's algorithm for parsing ambiguous grammars has been known since 1968.
Despite its benefits, until recently it has lead a reclusive life outside
the mainstream discussion about parsers. Many textbooks on parsing do not even
discuss it (the "Dragon book" only mentions it in the appendix).

A very accessible and practical discussion has been done by Loup Vaillant
in a superb blog series (http://loup-vaillant.fr/tutorials/earley-parsing/),
and it even boasts an implementation in Lua/OcaML.

This implementation handles epsilon-productions as described by
Aycock & Horspool ("Practical Earley Parsing", The Computer Journal, 2002).

Terminals of the grammar may share a token type and restrict the lexemes they
accept. A token is shifted for every terminal matching it, so the parser does
not need a scanner to decide between keywords and words.

Ambiguity

After a successful parse, a single derivation is selected from the parse chart.
Competing rules for the same symbol over the same input are ordered by rule
priority (higher first). Among derivations of equal rule priority, the one
whose tokens are matched by terminals of higher priority wins: a derivation
weighs the sum of its terminals' priorities. Remaining ties are broken by
serial number (lower first) and, for competing splits of a rule's right hand
side, by letting the leftmost symbols cover as much input as possible.
Selection is fully deterministic.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package earley

import (
	"errors"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/addrparse"
	"github.com/npillmayer/addrparse/lr"
	"github.com/npillmayer/addrparse/lr/cst"
	"github.com/npillmayer/addrparse/lr/iteratable"
	"github.com/npillmayer/addrparse/lr/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'addrparse.lr'.
func tracer() tracing.Trace {
	return tracing.Select("addrparse.lr")
}

// Parser is an Earley-parser type. Create and initialize one with earley.NewParser(...).
// A parser is not safe for concurrent use; create one parser per input.
type Parser struct {
	ga      *lr.LRAnalysis
	states  []*iteratable.Set // list of Earley-states
	tokens  []addrparse.Token // tokens[i] is the token shifted into states[i]
	sc      uint64            // current state
	mode    uint              // flags controlling some behaviour of the parser
	maxlen  int               // maximum number of tokens, 0 = unlimited
	scanErr error             // lexical error reported by the scanner
	failure *Failure          // why the last parse failed
	tree    cst.Node          // parse tree, if requested
}

// Option configures a parser.
type Option func(p *Parser)

const (
	optionGenerateTree uint = 1 << 1 // generate a parse tree after a successful parse
)

// NewParser creates and initializes an Earley parser.
func NewParser(ga *lr.LRAnalysis, opts ...Option) *Parser {
	p := &Parser{ga: ga}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GenerateTree sets or clears option GenerateTree. If set, the parser will
// build a concrete syntax tree after a successful parse, available by
// calling ParseTree().
func GenerateTree(b bool) Option {
	return func(p *Parser) {
		if !p.hasmode(optionGenerateTree) && b ||
			p.hasmode(optionGenerateTree) && !b {
			p.mode ^= optionGenerateTree
		}
	}
}

// MaxTokens limits the number of tokens a parser accepts. Parsing of longer
// input fails at the first token exceeding the limit. n = 0 means unlimited.
func MaxTokens(n int) Option {
	return func(p *Parser) {
		p.maxlen = n
	}
}

func (p *Parser) hasmode(m uint) bool {
	return p.mode&m > 0
}

// --- Failures --------------------------------------------------------------

// Failure describes why a parse has not been accepted.
type Failure struct {
	Pos      uint64          // byte offset in the input where parsing failed
	Token    addrparse.Token // offending token, nil at end of input or for lexical errors
	Expected []string        // names of terminals acceptable at this point
	Err      error           // lexical error, if any
}

// Failure returns a description of why the last call to Parse did not accept
// its input. It returns nil after a successful parse.
func (p *Parser) Failure() *Failure {
	return p.failure
}

// --- Parsing ---------------------------------------------------------------

// ErrNoTokenizer is returned when Parse is called without a scanner.
var ErrNoTokenizer = errors.New("earley parser needs a scanner")

// Parse starts a new parse, given a start state and a scanner tokenizing the input.
// The parser must have been initialized.
//
// Parse returns true if the input has been accepted. If the input has not
// been accepted, Failure() reports where and why. An error is returned for
// problems unrelated to the input, e.g., a parser stuck while building the
// parse tree.
//
// If a listener is given, it will be called for every node of the selected
// derivation.
func (p *Parser) Parse(scan scanner.Tokenizer, listener Listener) (bool, error) {
	if scan == nil {
		return false, ErrNoTokenizer
	}
	if p.ga == nil {
		return false, errors.New("earley parser has no grammar")
	}
	p.reset()
	scan.SetErrorHandler(func(e error) {
		p.scanErr = e
	})
	startItem := lr.StartItem(p.ga.Grammar().Rule(0), 0)
	p.states[0].Add(startItem)
	p.innerLoop(0)
	end := uint64(0)
	for {
		token := scan.NextToken()
		if p.scanErr != nil {
			p.fail(token, p.scanErr)
			return false, nil
		}
		if token.TokType() == scanner.EOF {
			end = token.Span().From()
			break
		}
		if p.maxlen > 0 && int(p.sc) >= p.maxlen {
			p.fail(token, nil)
			return false, nil
		}
		tracer().Debugf("scanned token %q (%d) at %d", token.Lexeme(), token.TokType(), p.sc)
		if !p.scan(token) {
			p.fail(token, nil)
			return false, nil
		}
		p.innerLoop(p.sc)
	}
	if !p.accepted() {
		p.fail(scanner.EOFToken(end), nil)
		return false, nil
	}
	tracer().Infof("input of %d tokens accepted", p.sc)
	if listener == nil && !p.hasmode(optionGenerateTree) {
		return true, nil
	}
	if p.hasmode(optionGenerateTree) {
		tb := NewTreeBuilder()
		root := p.WalkDerivation(tb)
		if root == nil {
			return true, errors.New("parser is stuck, cannot build parse tree")
		}
		p.tree = tb.Tree()
	}
	if listener != nil {
		if p.WalkDerivation(listener) == nil {
			return true, errors.New("parser is stuck, cannot walk derivation")
		}
	}
	return true, nil
}

func (p *Parser) reset() {
	p.states = []*iteratable.Set{iteratable.NewSet(0)}
	p.tokens = []addrparse.Token{nil} // tokens start at index 1
	p.sc = 0
	p.scanErr = nil
	p.failure = nil
	p.tree = nil
}

// scan shifts a token into a new state. It returns false if no item of the
// current state accepts the token.
//
// For each [A → … • a …, j] in S[i] where a matches token:
//    add [A → … a • …, j] to S[i+1]
func (p *Parser) scan(token addrparse.Token) bool {
	S := p.states[p.sc]
	next := iteratable.NewSet(S.Size())
	S.IterateOnce()
	for S.Next() {
		item := S.Item().(lr.Item)
		if a := item.PeekSymbol(); a != nil && a.Matches(token) {
			next.Add(item.Advance())
		}
	}
	if next.Empty() {
		return false
	}
	p.sc++
	p.states = append(p.states, next)
	p.tokens = append(p.tokens, token)
	return true
}

// innerLoop closes state S[i] under prediction and completion.
func (p *Parser) innerLoop(i uint64) {
	S := p.states[i]
	S.IterateOnce()
	for S.Next() {
		item := S.Item().(lr.Item)
		A := item.PeekSymbol()
		switch {
		case A == nil:
			p.complete(S, item)
		case !A.IsTerminal():
			p.predict(S, item, A, i)
		}
	}
	dumpState(p.states, i)
}

// For each [A → … • B …, j] in S[i]:
//    add [B → • α, i] to S[i] for every rule B → α
//    if B is nullable, add [A → … B • …, j] to S[i]
func (p *Parser) predict(S *iteratable.Set, item lr.Item, B *lr.Symbol, i uint64) {
	for _, r := range p.ga.Grammar().FindNonTermRules(B) {
		S.Add(lr.StartItem(r, i))
	}
	if p.ga.DerivesEpsilon(B) {
		S.Add(item.Advance())
	}
}

// For each [B → … •, j] in S[i]:
//    add [A → … B • …, k] to S[i] for every [A → … • B …, k] in S[j]
func (p *Parser) complete(S *iteratable.Set, item lr.Item) {
	B := item.Rule().LHS
	for _, x := range p.states[item.Origin].Values() {
		jtem := x.(lr.Item)
		if jtem.PeekSymbol() == B {
			S.Add(jtem.Advance())
		}
	}
}

// accepted checks for an item [S' → S •, 0] in the last state.
func (p *Parser) accepted() bool {
	if int(p.sc) >= len(p.states) {
		return false
	}
	start := p.ga.Grammar().Rule(0)
	return p.states[p.sc].Contains(lr.StartItem(start, 0).Advance())
}

func (p *Parser) fail(token addrparse.Token, err error) {
	f := &Failure{Err: err}
	if serr, ok := err.(*scanner.Error); ok {
		f.Pos = serr.Pos
	} else if token != nil {
		f.Pos = token.Span().From()
		if token.TokType() != scanner.EOF {
			f.Token = token
		}
	}
	f.Expected = p.expected(p.states[p.sc])
	tracer().Debugf("state at failure: %s", itemSetString(p.states[p.sc]))
	tracer().Infof("parse failed at %d, expected one of %v", f.Pos, f.Expected)
	p.failure = f
}

// expected collects the terminals acceptable in state S, ordered by
// priority (higher first) and name.
func (p *Parser) expected(S *iteratable.Set) []string {
	terminals := treeset.NewWith(func(a, b interface{}) int {
		A, B := a.(*lr.Symbol), b.(*lr.Symbol)
		switch {
		case A.Prio > B.Prio:
			return -1
		case A.Prio < B.Prio:
			return 1
		case A.Name < B.Name:
			return -1
		case A.Name > B.Name:
			return 1
		}
		return 0
	})
	S.Subset(func(x interface{}) bool {
		a := x.(lr.Item).PeekSymbol()
		return a != nil && a.IsTerminal()
	}).Each(func(x interface{}) {
		terminals.Add(x.(lr.Item).PeekSymbol())
	})
	names := make([]string, 0, terminals.Size())
	for _, a := range terminals.Values() {
		names = append(names, a.(*lr.Symbol).Name)
	}
	return names
}

// ParseTree returns the concrete syntax tree of the last successful parse,
// if option GenerateTree has been set. The root of the tree represents
// rule 0 of the grammar.
func (p *Parser) ParseTree() cst.Node {
	return p.tree
}
