/*
Package addrparse splits free-text postal addresses into street and house number.

It understands several national conventions within a single grammar:
street-name-first ("Winterallee 3"), house-number-first ("4, rue de la revolution")
and numbered streets ("42 42nd Ave", "Calle 39 No 1540"). Package structure is
as follows:

■ address: Package address holds the address grammar, its lexicon and the
public Parse function.

■ lr: Package lr implements grammars with rule priorities, together with an
Earley parser (lr/earley), concrete syntax trees (lr/cst) and scanners (lr/scanner).

■ server: Package server exposes address parsing over HTTP.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package addrparse
