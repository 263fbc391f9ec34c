/*
Package corelang converts infix token sequences to postfix form.

Conversion is done with the classic operator-precedence algorithm, using an
explicit stack of pending operators and open brackets. Operators of equal
priority associate to the left:

    (2+3)*4   ⟹   2 3 + 4 *
    8-3-2     ⟹   8 3 - 2 -

Template calls must have been expanded to operands before conversion.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package corelang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'modcalc.core'.
func tracer() tracing.Trace {
	return tracing.Select("modcalc.core")
}
