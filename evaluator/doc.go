/*
Package evaluator implements the expansion of template calls and the
module commands of modcalc.

An Evaluator owns a module store. Calc computes the value of an infix
expression: every template call in the expression is expanded to an integer
first, then the purely literal expression is converted to postfix form and
run on a stack machine.

Expansion of a call m.v(3 4) looks up the template of variable v in
module m. Within the template, an unqualified call like a(0) is a
placeholder: placeholders are replaced by the call's arguments in order of
appearance, and the number of placeholders must equal the number of
arguments. A qualified call like m.w(1) within a template is a nested call
and is expanded on its own, with its own arguments. Expansion detects
cyclic references between templates and limits the nesting depth.

The Interpreter dispatches command lines

   calc <expr>
   modulesadd <name>
   modulesvaradd <module> <var> <expr>
   modulesshow
   modulesuse <name>

to an Evaluator, keeping track of the active module. Unqualified calls in
expressions bind to the active module.

BSD License

Copyright (c) 2017–2021, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package evaluator

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'modcalc.eval'.
func tracer() tracing.Trace {
	return tracing.Select("modcalc.eval")
}
