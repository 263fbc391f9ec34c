/*
Package variables implements the store of modules and their variables.

A module is a named namespace. A variable within a module is a stored
template: an infix token sequence which may contain placeholders for
positional arguments, e.g.

   modulesadd m
   modulesvaradd m v a(0) + a(1) * 2

stores template "a(0) + a(1) * 2" as variable v of module m. Calling
v(3 4) substitutes 3 and 4 for the placeholders, in order of their
appearance. Expansion itself is not part of this package, see package
evaluator.

Module names are unique within the store; adding a module twice is an
error. Variable names are unique within a module; storing a variable again
overwrites its template. Modules and variables are kept ordered by name.

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
package variables

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'modcalc.variables'.
func tracer() tracing.Trace {
	return tracing.Select("modcalc.variables")
}
