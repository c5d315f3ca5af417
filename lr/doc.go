/*
Package lr implements context-free grammars for parsing small languages.
It is the grammar layer underneath the address parser, but may be of use for
other purposes, too.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token type of type int. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b", 2).End()         // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").T("d", 3).End()         // D  ->  d
    b.LHS("D").Epsilon()               // D  ->

This results in the following trivial grammar:

   g, _ := b.Grammar()
   g.Dump()

   0: [S'] ::= [S]
   1: [S] ::= [A a]
   2: [A] ::= [B D]
   3: [B] ::= [b]
   4: [B] ::= []
   5: [D] ::= [d]
   6: [D] ::= []

Rule 0 is added by the builder and derives the left hand side of the first rule.

Priorities and Restricted Terminals

Rules may carry a priority. Parsers use it to choose between competing
derivations of the same non-terminal over the same input: higher priority
wins, then the rule declared first.

    b.LHS("address").N("numbered_before").Prio(1).End()

Several terminals may share one token type, each accepting a subset of the
lexemes the scanner produces for it. This lets a scanner stay ignorant of
keywords, while the grammar decides whether "St" is an ordinal or a street type:

    b.Terminal("ordinal", Letters, 2, lr.OneOf("st", "nd", "rd", "th"))
    b.LHS("numbered").T("digits", Digits).T("ordinal", Letters).End()

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which determines all
epsilon-derivable non-terminals.

    ga := lr.Analysis(g)

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'addrparse.lr'.
func tracer() tracing.Trace {
	return tracing.Select("addrparse.lr")
}
