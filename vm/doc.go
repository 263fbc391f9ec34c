/*
Package vm evaluates postfix token sequences on a stack machine.

Operands are pushed onto a stack of integers. An operator pops its right
operand, then its left operand, and pushes the result. A well-formed program
leaves exactly one value on the stack.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package vm

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'modcalc.vm'
func tracer() tracing.Trace {
	return tracing.Select("modcalc.vm")
}
