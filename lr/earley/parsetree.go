package earley

import (
	"fmt"
	"math"
	"sort"

	"github.com/npillmayer/addrparse"
	"github.com/npillmayer/addrparse/lr"
	"github.com/npillmayer/addrparse/lr/cst"
	"github.com/npillmayer/schuko/gconf"
)

// --- Derivation listener ---------------------------------------------------

// Listener is a type for walking a parse tree.
type Listener interface {
	Reduce(sym *lr.Symbol, rule int, rhs []*RuleNode, span addrparse.Span, level int) interface{}
	Terminal(sym *lr.Symbol, token addrparse.Token, span addrparse.Span, level int) interface{}
}

// RuleNode represents a node occuring during a parse tree walk.
type RuleNode struct {
	sym    *lr.Symbol
	Extent addrparse.Span // span of input tokens this rule reduced
	Value  interface{}    // user defined value
}

// Symbol returns the grammar symbol a RuleNode refers to.
// It is either a terminal or the LHS of a reduced rule.
func (rnode *RuleNode) Symbol() *lr.Symbol {
	return rnode.sym
}

// --- Tree Walker -----------------------------------------------------------

// WalkDerivation walks the derivation selected from the parse chart.
// It uses a listener, which gets called for every terminal and for every
// non-terminal reduction, bottom-up and left to right.
//
// WalkDerivation returns the node for rule 0, or nil if the last parse did not
// accept its input.
func (p *Parser) WalkDerivation(listener Listener) *RuleNode {
	if !p.accepted() {
		return nil
	}
	tracer().Debugf("=== Walk ===============================")
	c := newChart(p)
	start := p.ga.Grammar().Rule(0).LHS
	d := c.derive(start, 0, p.sc)
	if d == nil {
		stuck(fmt.Sprintf("no derivation for %s over accepted input", start))
		return nil
	}
	root := c.walk(d, 0, p.sc, listener, 0)
	tracer().Debugf("========================================")
	return root
}

/*
Selecting a derivation.

Every completed item [B → α •, j] in state S[i] proves that B derives the tokens
j+1…i. We index these items by (B, j, i) and then select a derivation top-down,
starting with [S' → S •, 0] in the last state.

Every token of a derivation is matched by a terminal. The weight of a
derivation is the sum of the priorities of these terminals. For (B, j, i) all
completed rules are candidates. A candidate with a higher rule priority always
wins; among candidates of equal rule priority the one with the higher weight
wins, then the one declared first.

For a candidate rule, we search for positions splitting the span j…i into
sub-spans, one for each RHS symbol, and take the split with the highest weight.
Splits of equal weight are ordered leftmost-longest: the first RHS symbol
covering as much input as possible, and so on. A terminal always covers exactly
one token.

A derivation of (B, j, i) which needs (B, j, i) itself is cyclic and never
selected: while (B, j, i) is in progress, it does not derive anything.
Results are memoized per (symbol, span) and per (rule, RHS index, span),
unless they depend on a symbol in progress further up. This keeps selection
polynomial.
*/

type spanKey struct {
	sym      *lr.Symbol
	from, to uint64
}

type splitKey struct {
	rule     *lr.Rule
	k        int
	from, to uint64
}

// derivation is a rule together with boundaries and derivations for each RHS
// symbol. RHS symbol k covers bounds[k]…bounds[k+1] and is derived by
// children[k] (nil for terminals).
type derivation struct {
	rule     *lr.Rule
	bounds   []uint64
	children []*derivation
	weight   int // sum of terminal priorities
}

// split is a partial derivation for RHS symbols k… of a rule.
type split struct {
	bounds   []uint64
	children []*derivation
	weight   int
}

const noHit = math.MaxInt32

type chart struct {
	p          *Parser
	completed  map[spanKey][]*lr.Rule
	memo       map[spanKey]*derivation
	splits     map[splitKey]*split
	inProgress map[spanKey]int // symbol spans being derived, with their nesting depth
	depth      int
	hit        int // lowest depth of an in-progress span needed by the current computation
}

func newChart(p *Parser) *chart {
	c := &chart{
		p:          p,
		completed:  make(map[spanKey][]*lr.Rule),
		memo:       make(map[spanKey]*derivation),
		splits:     make(map[splitKey]*split),
		inProgress: make(map[spanKey]int),
		hit:        noHit,
	}
	for i, S := range p.states {
		S.Each(func(x interface{}) {
			item := x.(lr.Item)
			if item.IsComplete() {
				key := spanKey{item.Rule().LHS, item.Origin, uint64(i)}
				c.completed[key] = append(c.completed[key], item.Rule())
			}
		})
	}
	for _, R := range c.completed {
		sort.SliceStable(R, func(i, j int) bool {
			if R[i].Prio != R[j].Prio {
				return R[i].Prio > R[j].Prio
			}
			return R[i].Serial < R[j].Serial
		})
	}
	return c
}

// derive selects a derivation for B over tokens from…to.
func (c *chart) derive(B *lr.Symbol, from, to uint64) *derivation {
	key := spanKey{B, from, to}
	if d, ok := c.memo[key]; ok {
		return d
	}
	if at, ok := c.inProgress[key]; ok { // cyclic
		if at < c.hit {
			c.hit = at
		}
		return nil
	}
	candidates := c.completed[key]
	if len(candidates) == 0 {
		c.memo[key] = nil
		return nil
	}
	c.depth++
	depth, outer := c.depth, c.hit
	c.inProgress[key], c.hit = depth, noHit
	var best *derivation
	for _, r := range candidates {
		if best != nil && r.Prio < best.rule.Prio {
			break
		}
		if s := c.split(r, 0, from, to); s != nil && (best == nil || s.weight > best.weight) {
			best = &derivation{rule: r, bounds: s.bounds, children: s.children, weight: s.weight}
		}
	}
	delete(c.inProgress, key)
	c.depth--
	if c.hit >= depth { // result does not depend on spans in progress further up
		c.memo[key] = best
		c.hit = noHit
	}
	if outer < c.hit {
		c.hit = outer
	}
	if best != nil {
		tracer().Debugf("selected %v for %s, weight %d", best.rule, addrparse.Span{from, to}, best.weight)
	}
	return best
}

// split finds the best boundaries and derivations for RHS symbols k… of
// rule r over tokens from…to. It returns nil if there is none.
func (c *chart) split(r *lr.Rule, k int, from, to uint64) *split {
	rhs := r.RHS()
	if k == len(rhs) {
		if from == to {
			return &split{bounds: []uint64{to}, children: []*derivation{}}
		}
		return nil
	}
	key := splitKey{r, k, from, to}
	if s, ok := c.splits[key]; ok {
		return s
	}
	outer := c.hit
	c.hit = noHit
	var best *split
	X := rhs[k]
	if X.IsTerminal() {
		if from < to && X.Matches(c.p.tokens[from+1]) {
			if rest := c.split(r, k+1, from+1, to); rest != nil {
				best = prepend(from, nil, X.Prio, rest)
			}
		}
	} else {
		for e := to; e >= from; e-- {
			if child := c.derive(X, from, e); child != nil {
				rest := c.split(r, k+1, e, to)
				if rest != nil && (best == nil || child.weight+rest.weight > best.weight) {
					best = prepend(from, child, child.weight, rest)
				}
			}
			if e == from {
				break
			}
		}
	}
	if c.hit == noHit {
		c.splits[key] = best
	}
	if outer < c.hit {
		c.hit = outer
	}
	return best
}

func prepend(from uint64, child *derivation, weight int, rest *split) *split {
	return &split{
		bounds:   append([]uint64{from}, rest.bounds...),
		children: append([]*derivation{child}, rest.children...),
		weight:   weight + rest.weight,
	}
}

func (c *chart) walk(d *derivation, from, to uint64, listener Listener, level int) *RuleNode {
	rhs := d.rule.RHS()
	children := make([]*RuleNode, len(rhs))
	for k, X := range rhs {
		span := addrparse.Span{d.bounds[k], d.bounds[k+1]}
		if X.IsTerminal() {
			token := c.p.tokens[span.To()]
			tracer().Debugf("Tree node    %d: %s", span.From(), X)
			children[k] = &RuleNode{
				sym:    X,
				Extent: span,
				Value:  listener.Terminal(X, token, span, level+1),
			}
			continue
		}
		child := d.children[k]
		if child == nil {
			stuck(fmt.Sprintf("derivation for %s %v missing", X, span))
			return nil
		}
		node := c.walk(child, span.From(), span.To(), listener, level+1)
		if node == nil {
			return nil
		}
		children[k] = node
	}
	extent := addrparse.Span{from, to}
	value := listener.Reduce(d.rule.LHS, d.rule.Serial, children, extent, level)
	tracer().Debugf("Tree node    %d|-----%s-----|%d", extent.From(), d.rule.LHS.Name, extent.To())
	return &RuleNode{
		sym:    d.rule.LHS,
		Extent: extent,
		Value:  value,
	}
}

func stuck(msg string) bool {
	tracer().Errorf(msg)
	if gconf.GetBool("panic-on-parser-stuck") {
		panic(`Earley-parser is stuck.

Configuration flag panic-on-parser-stuck is set to true. It is aimed at helping
to debug a parser and do a post-mortem of why it got stuck. However, if this is
a production environment and you did not expect this to panic, please unset
panic-on-parser-stuck to its default (false).

` + msg)
	}
	return true
}

// --- Tree building listener -------------------------------------------

// TreeBuilder is a Listener which is able to create a concrete syntax tree
// from the selected derivation. Users may create one and call it themselves, but the more
// common usage pattern is by setting the option 'GenerateTree' for a parser and
// retrieving the tree with `parser.ParseTree()`.
type TreeBuilder struct {
	root cst.Node
}

// NewTreeBuilder creates a TreeBuilder.
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

// Tree returns the syntax tree after walking the derivation.
func (tb *TreeBuilder) Tree() cst.Node {
	return tb.root
}

// Reduce is a listener method, called for rules of the derivation.
func (tb *TreeBuilder) Reduce(sym *lr.Symbol, rule int, rhs []*RuleNode, span addrparse.Span, level int) interface{} {
	children := make([]cst.Node, len(rhs))
	for i, r := range rhs {
		children[i] = r.Value.(cst.Node)
	}
	node := &cst.Rule{
		Symbol:   sym.Name,
		Serial:   rule,
		Children: children,
		Extent:   span,
	}
	tb.root = node // the last reduction is rule 0
	return node
}

// Terminal is a listener method, called when matching input tokens.
func (tb *TreeBuilder) Terminal(sym *lr.Symbol, token addrparse.Token, span addrparse.Span, level int) interface{} {
	return &cst.Terminal{Symbol: sym.Name, Token: token}
}

var _ Listener = &TreeBuilder{}
