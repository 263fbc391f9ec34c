package vm

import (
	"fmt"

	"github.com/npillmayer/modcalc"
)

// Machine executes postfix programs. A Machine may be re-used for any
// number of programs, but not concurrently.
type Machine struct {
	stack *ExprStack // operand stack
}

// NewMachine creates a stack machine with an empty operand stack.
func NewMachine() *Machine {
	return &Machine{stack: NewExprStack()}
}

// Run executes a postfix program and returns its single result value.
//
// Errors are
//
//    modcalc.ErrDivisionByZero       for / or % with a right operand of 0
//    modcalc.ErrStackUnderflow       for an operator with less than 2 operands available
//    modcalc.ErrMalformedExpression  if the program does not leave exactly one value
//
func (m *Machine) Run(program []modcalc.PostfixToken) (int64, error) {
	m.stack.Clear()
	for _, tok := range program {
		if err := m.Execute(tok); err != nil {
			tracer().P("token", tok.String()).Errorf("executing postfix program: %v", err)
			return 0, err
		}
	}
	switch m.stack.Size() {
	case 0:
		return 0, fmt.Errorf("%w: empty expression", modcalc.ErrMalformedExpression)
	case 1:
		r, _ := m.stack.Pop()
		return r, nil
	}
	m.stack.Dump()
	return 0, fmt.Errorf("%w: %d values left on stack", modcalc.ErrMalformedExpression, m.stack.Size())
}

// Execute performs a single step of a postfix program.
func (m *Machine) Execute(tok modcalc.PostfixToken) error {
	switch t := tok.(type) {
	case modcalc.Operand:
		m.stack.Push(t.Value())
	case modcalc.BinOperator:
		if err := m.stack.CheckOperands(2, "apply "+t.String()+" to"); err != nil {
			return err
		}
		r, _ := m.stack.Pop()
		l, _ := m.stack.Pop()
		v, err := t.Apply(l, r)
		if err != nil {
			return err
		}
		tracer().P("op", t.String()).Debugf("%d %s %d = %d", l, t, r, v)
		m.stack.Push(v)
	default:
		panic(fmt.Sprintf("vm: invalid postfix token type %T", tok))
	}
	return nil
}

// Evaluate is a shortcut to run a postfix program on a fresh machine.
func Evaluate(program []modcalc.PostfixToken) (int64, error) {
	return NewMachine().Run(program)
}
