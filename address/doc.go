/*
Package address parses free-text postal addresses into street and house number.

Addresses follow one of four conventions:

    Winterallee 3               street first
    4, rue de la revolution     house number first
    42 42nd Ave                 house number, then a numbered street
    Calle 39 No 1540            numbered street, then house number

All of them are encoded in a single context-free grammar with deliberately
overlapping productions. Inputs are parsed by an Earley parser, which selects
one derivation following the priorities declared in the grammar. The syntax
tree is then condensed into a flat ParsedAddress.

    addr, err := address.Parse("Ruhrstraße 32–34")
    // addr.Street = "Ruhrstraße", addr.HouseNumber = "32–34"

Inputs which do not conform to any of the conventions result in an
*UnrecognizedAddressFormat error, reporting the byte position where parsing
failed.

Parse is safe for concurrent use. Lexer and grammar are created once and
shared read-only; every call uses its own scanner and parser.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package address

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'addrparse.address'.
func tracer() tracing.Trace {
	return tracing.Select("addrparse.address")
}
