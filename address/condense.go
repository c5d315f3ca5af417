package address

import (
	"errors"
	"fmt"

	"github.com/npillmayer/addrparse/lr/cst"
)

// FieldTag identifies a field of a parsed address.
type FieldTag int8

// Fields of a parsed address.
const (
	Street FieldTag = iota + 1
	HouseNumber
)

func (f FieldTag) String() string {
	switch f {
	case Street:
		return "street"
	case HouseNumber:
		return "housenumber"
	}
	return fmt.Sprintf("FieldTag(%d)", int8(f))
}

// CondensedField is a field of an address together with its value.
type CondensedField struct {
	Field FieldTag
	Value string
}

// ErrInvariant is returned if a syntax tree does not condense into exactly one
// street and one house number. This indicates an error in the grammar or in
// the parser, not in the input.
var ErrInvariant = errors.New("address syntax tree violates field invariant")

// fieldTags maps grammar symbols to the address field their text becomes.
var fieldTags = map[string]FieldTag{
	"named_street":    Street,
	"numbered_street": Street,
	"housenumber":     HouseNumber,
}

// shapes are the grammar symbols for the top-level address conventions.
var shapes = map[string]bool{
	"street_first":    true,
	"number_first":    true,
	"numbered_after":  true,
	"numbered_before": true,
}

// condense flattens a syntax tree into a parsed address.
func condense(root cst.Node) (ParsedAddress, error) {
	fields, err := collect(root)
	if err != nil {
		return ParsedAddress{}, err
	}
	if err := checkShape(root.Name(), fields); err != nil {
		return ParsedAddress{}, err
	}
	var addr ParsedAddress
	for _, f := range fields {
		switch f.Field {
		case Street:
			addr.Street = f.Value
		case HouseNumber:
			addr.HouseNumber = f.Value
		}
	}
	return addr, nil
}

// collect returns the fields of the subtree below n.
func collect(n cst.Node) ([]CondensedField, error) {
	switch n := n.(type) {
	case *cst.Terminal:
		return nil, nil
	case *cst.Rule:
		if tag, ok := fieldTags[n.Symbol]; ok {
			return []CondensedField{{Field: tag, Value: cst.Text(n)}}, nil
		}
		var fields []CondensedField
		for _, ch := range n.Children {
			f, err := collect(ch)
			if err != nil {
				return nil, err
			}
			fields = append(fields, f...)
		}
		if shapes[n.Symbol] {
			if err := checkShape(n.Symbol, fields); err != nil {
				return nil, err
			}
		}
		return fields, nil
	case nil:
		return nil, fmt.Errorf("%w: empty syntax tree", ErrInvariant)
	}
	return nil, fmt.Errorf("%w: unknown node type %T", ErrInvariant, n)
}

func checkShape(shape string, fields []CondensedField) error {
	var streets, numbers int
	for _, f := range fields {
		switch f.Field {
		case Street:
			streets++
		case HouseNumber:
			numbers++
		default:
			return fmt.Errorf("%w: %s has field %v", ErrInvariant, shape, f.Field)
		}
	}
	if streets != 1 || numbers != 1 {
		return fmt.Errorf("%w: %s has %d street(s) and %d house number(s)",
			ErrInvariant, shape, streets, numbers)
	}
	return nil
}
