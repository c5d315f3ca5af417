package lr

import (
	"bytes"
	"fmt"
)

// Item is an Earley item: a rule with a dot position and the input position
// where the recognition of the rule started.
//
//    [A → a • B c, 3]
//
// Items are small values and may be used as map keys.
type Item struct {
	rule   *Rule
	dot    int
	Origin uint64
}

// StartItem returns an item with the dot before the first symbol of rule r.
func StartItem(r *Rule, origin uint64) Item {
	return Item{rule: r, Origin: origin}
}

// Rule returns the grammar rule of this item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the position of the dot within the right hand side.
func (i Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, if any.
func (i Item) PeekSymbol() *Symbol {
	if i.rule == nil || i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// IsComplete is true if the dot is behind the last symbol of the rule.
func (i Item) IsComplete() bool {
	return i.rule != nil && i.dot >= len(i.rule.rhs)
}

// Advance returns a new item with the dot moved one symbol to the right.
// Completed items are returned unchanged.
func (i Item) Advance() Item {
	if i.IsComplete() {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1, Origin: i.Origin}
}

// Prefix returns the symbols before the dot.
func (i Item) Prefix() []*Symbol {
	if i.rule == nil {
		return nil
	}
	return i.rule.rhs[:i.dot]
}

func (i Item) String() string {
	if i.rule == nil {
		return "[<none>]"
	}
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("[%s →", i.rule.LHS.Name))
	for n, A := range i.rule.rhs {
		if n == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" " + A.Name)
	}
	if i.IsComplete() {
		b.WriteString(" •")
	}
	b.WriteString(fmt.Sprintf(", %d]", i.Origin))
	return b.String()
}
