/*
Package cst implements concrete syntax trees.

A concrete syntax tree mirrors a derivation exactly: every rule applied
during a parse becomes a *Rule node, every matched token a *Terminal node.
Node is a closed union of these two types. Clients switch over them:

    switch n := node.(type) {
    case *cst.Terminal:
        …
    case *cst.Rule:
        …
    }

Trees are created by parsers and are not modified afterwards.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cst

import (
	"fmt"
	"strings"

	"github.com/npillmayer/addrparse"
)

// Node is a node of a concrete syntax tree, either *Terminal or *Rule.
type Node interface {
	Name() string // grammar symbol of this node
	node()
}

// Terminal is a leaf of a syntax tree, holding an input token.
type Terminal struct {
	Symbol string          // name of the grammar terminal
	Token  addrparse.Token // matched input token
}

// Name returns the name of the grammar terminal.
func (t *Terminal) Name() string { return t.Symbol }

func (t *Terminal) node() {}

func (t *Terminal) String() string {
	return fmt.Sprintf("%s %q", t.Symbol, t.Token.Lexeme())
}

// Rule is an inner node of a syntax tree, representing a rule applied
// during the parse.
type Rule struct {
	Symbol   string         // name of the LHS of the rule
	Serial   int            // serial number of the rule within its grammar
	Children []Node         // one child per RHS symbol, in document order
	Extent   addrparse.Span // token positions covered by this node
}

// Name returns the name of the rule's left hand side.
func (r *Rule) Name() string { return r.Symbol }

func (r *Rule) node() {}

func (r *Rule) String() string {
	return fmt.Sprintf("%s #%d %v", r.Symbol, r.Serial, r.Extent)
}

var _ Node = (*Terminal)(nil)
var _ Node = (*Rule)(nil)

// Text returns the concatenation of all token lexemes below node n, in
// document order.
func Text(n Node) string {
	var b strings.Builder
	Each(n, func(node Node, _ int) {
		if t, ok := node.(*Terminal); ok {
			b.WriteString(t.Token.Lexeme())
		}
	})
	return b.String()
}

// Each visits the nodes of a tree in pre-order, calling f with every node and
// its depth below n.
func Each(n Node, f func(node Node, depth int)) {
	each(n, 0, f)
}

func each(n Node, depth int, f func(Node, int)) {
	if n == nil {
		return
	}
	f(n, depth)
	if r, ok := n.(*Rule); ok {
		for _, ch := range r.Children {
			each(ch, depth+1, f)
		}
	}
}

// Find returns the first node below n (including n) with the given name,
// searching in pre-order. It returns nil if there is no such node.
func Find(n Node, name string) Node {
	var found Node
	Each(n, func(node Node, _ int) {
		if found == nil && node.Name() == name {
			found = node
		}
	})
	return found
}
