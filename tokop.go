package modcalc

import "fmt"

// BinOperator is a binary arithmetic operator.
type BinOperator byte

// The operators we understand
const (
	Add BinOperator = '+'
	Sub BinOperator = '-'
	Mul BinOperator = '*'
	Div BinOperator = '/'
	Mod BinOperator = '%'
)

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/%"

type opdef struct {
	priority int
	call     func(l, r int64) (int64, error)
}

var operators = map[BinOperator]opdef{
	Add: {1, func(l, r int64) (int64, error) { return l + r, nil }},
	Sub: {1, func(l, r int64) (int64, error) { return l - r, nil }},
	Mul: {2, func(l, r int64) (int64, error) { return l * r, nil }},
	Div: {2, func(l, r int64) (int64, error) {
		if r == 0 {
			return 0, fmt.Errorf("%w: %d / 0", ErrDivisionByZero, l)
		}
		return l / r, nil
	}},
	Mod: {2, func(l, r int64) (int64, error) {
		if r == 0 {
			return 0, fmt.Errorf("%w: %d %% 0", ErrDivisionByZero, l)
		}
		return l % r, nil
	}},
}

// OperatorFor returns the operator denoted by r, if any.
func OperatorFor(r rune) (BinOperator, bool) {
	op := BinOperator(r)
	if r > 0x7f {
		return 0, false
	}
	_, ok := operators[op]
	return op, ok
}

func (BinOperator) isToken()   {}
func (BinOperator) isPostfix() {}

func (op BinOperator) String() string {
	return string(rune(op))
}

// Priority returns the binding strength of an operator: 1 for + and -,
// 2 for *, / and %.
func (op BinOperator) Priority() int {
	def, ok := operators[op]
	if !ok {
		panic(fmt.Sprintf("modcalc: invalid operator %q", rune(op)))
	}
	return def.priority
}

// Apply calculates l op r. Integer overflow wraps around. Division and modulo
// truncate towards zero; a zero divisor results in ErrDivisionByZero.
func (op BinOperator) Apply(l, r int64) (int64, error) {
	def, ok := operators[op]
	if !ok {
		panic(fmt.Sprintf("modcalc: invalid operator %q", rune(op)))
	}
	v, err := def.call(l, r)
	if err != nil {
		tracer().P("op", op.String()).Errorf("%v", err)
	}
	return v, err
}
