package address

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/addrparse"
	"github.com/npillmayer/addrparse/lr"
	"github.com/npillmayer/addrparse/lr/cst"
	"github.com/npillmayer/addrparse/lr/earley"
	"github.com/npillmayer/addrparse/lr/scanner"
)

// MaxInputLength is the maximum length of an address in bytes.
const MaxInputLength = 512

// ParsedAddress is the result of parsing an address. Both fields are
// non-empty. The house number keeps inner blanks and symbols as written.
type ParsedAddress struct {
	Street      string `json:"street"`
	HouseNumber string `json:"housenumber"`
}

// UnrecognizedAddressFormat is returned for inputs which do not follow any
// known address convention.
type UnrecognizedAddressFormat struct {
	Input    string   // the complete input
	Position int      // byte offset where the input stopped making sense
	Snippet  string   // input from Position on
	Expected []string // grammar terminals which would have been acceptable
}

func (e *UnrecognizedAddressFormat) Error() string {
	if e.Position >= len(e.Input) {
		return fmt.Sprintf("unrecognized address format: unexpected end of input %q", e.Input)
	}
	return fmt.Sprintf("unrecognized address format at position %d: %q", e.Position, e.Snippet)
}

func unrecognized(input string, pos int, expected []string) *UnrecognizedAddressFormat {
	if pos > len(input) {
		pos = len(input)
	}
	return &UnrecognizedAddressFormat{
		Input:    input,
		Position: pos,
		Snippet:  input[pos:],
		Expected: expected,
	}
}

// Parse parses a single-line address into street and house number.
//
// If the input does not follow any known address convention, Parse returns
// an *UnrecognizedAddressFormat error. Partial results are never returned.
func Parse(input string) (ParsedAddress, error) {
	tree, err := ParseTree(input)
	if err != nil {
		return ParsedAddress{}, err
	}
	addr, err := condense(tree)
	if err != nil {
		tracer().Errorf("cannot condense syntax tree for %q: %v", input, err)
		return ParsedAddress{}, err
	}
	tracer().Debugf("%q => %+v", input, addr)
	return addr, nil
}

// ParseTree parses an address and returns its concrete syntax tree. The root
// of the tree represents the start rule of the address grammar, its only child
// the address.
//
// Errors are the same as for Parse.
func ParseTree(input string) (cst.Node, error) {
	if len(input) > MaxInputLength {
		tracer().Infof("address of %d bytes exceeds maximum length", len(input))
		return nil, unrecognized(input, MaxInputLength, nil)
	}
	if strings.TrimSpace(input) == "" {
		return nil, unrecognized(input, 0, nil)
	}
	ga, err := Grammar()
	if err != nil {
		return nil, fmt.Errorf("address grammar: %w", err)
	}
	return parseWith(ga, input)
}

// parseWith parses input with a given address grammar.
func parseWith(ga *lr.LRAnalysis, input string) (cst.Node, error) {
	lm, err := Lexer()
	if err != nil {
		return nil, fmt.Errorf("address lexer: %w", err)
	}
	scan, err := lm.Scanner(input)
	if err != nil {
		return nil, fmt.Errorf("address scanner: %w", err)
	}
	// a token has at least one byte
	parser := earley.NewParser(ga, earley.GenerateTree(true), earley.MaxTokens(MaxInputLength))
	accept, err := parser.Parse(scan, nil)
	if err != nil {
		return nil, err
	}
	if !accept {
		f := parser.Failure()
		if f.Err != nil {
			tracer().Debugf("address %q: %v", input, f.Err)
		}
		tracer().Debugf("address %q not accepted at %d", input, f.Pos)
		return nil, unrecognized(input, int(f.Pos), f.Expected)
	}
	return parser.ParseTree(), nil
}

// Tokens splits an address into tokens, as seen by the parser. Tokenizing
// stops at the first character which is not part of the address alphabet;
// its position is reported by an *UnrecognizedAddressFormat error.
func Tokens(input string) ([]addrparse.Token, error) {
	lm, err := Lexer()
	if err != nil {
		return nil, fmt.Errorf("address lexer: %w", err)
	}
	scan, err := lm.Scanner(input)
	if err != nil {
		return nil, fmt.Errorf("address scanner: %w", err)
	}
	var serr *scanner.Error
	scan.SetErrorHandler(func(e error) {
		errors.As(e, &serr)
	})
	var tokens []addrparse.Token
	for token := scan.NextToken(); token.TokType() != scanner.EOF; token = scan.NextToken() {
		tokens = append(tokens, token)
	}
	if serr != nil {
		return tokens, unrecognized(input, int(serr.Pos), nil)
	}
	return tokens, nil
}
