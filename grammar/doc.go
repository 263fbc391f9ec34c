/*
Package grammar implements the tokenizer for calculator input.

Input is a single line of text containing integer literals, the binary
operators + - * / %, round brackets and template calls. A template call is an
identifier, optionally qualified by a module name, followed by a bracketed
list of integer literals:

    v(3 4)   v(3, 4)   m.v(1,-2)   a(0)

Unqualified calls bind to the module which the caller of Tokenize declares
to be active. Full-width forms of digits, operators and brackets are
accepted and folded to their narrow counterparts first.

The lexical analysis is done by a lexmachine DFA, which is compiled once on
first use.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'modcalc.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("modcalc.grammar")
}
