package vm

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/linkedliststack"
	"github.com/npillmayer/modcalc"
)

// ExprStack implements a stack of integer values.
type ExprStack struct {
	stack *linkedliststack.Stack // a stack of int64
}

// NewExprStack creates
// a new expression stack. It is fully initialized and empty.
func NewExprStack() *ExprStack {
	return &ExprStack{stack: linkedliststack.New()}
}

// Push puts a value on top of the stack.
func (es *ExprStack) Push(v int64) *ExprStack {
	tracer().Debugf("pushing %d", v)
	es.stack.Push(v)
	return es
}

// Pop removes the top of the stack and returns it.
func (es *ExprStack) Pop() (int64, bool) {
	tos, ok := es.stack.Pop()
	if !ok {
		return 0, false
	}
	return tos.(int64), true
}

// Top returns the top of the stack without removing it.
func (es *ExprStack) Top() (int64, bool) {
	tos, ok := es.stack.Peek()
	if !ok {
		return 0, false
	}
	return tos.(int64), true
}

// IsEmpty is a predicate: is the stack empty?
func (es *ExprStack) IsEmpty() bool {
	return es.stack.Empty()
}

// Size returns the number of values on the stack.
func (es *ExprStack) Size() int {
	return es.stack.Size()
}

// Clear removes all values from the stack.
func (es *ExprStack) Clear() {
	es.stack.Clear()
}

// Dump traces the stack contents, TOS first.
func (es *ExprStack) Dump() {
	tracer().P("size", es.Size()).Debugf("Expression Stack, TOS first:")
	it := es.stack.Iterator()
	for it.Next() {
		tracer().P("#", it.Index()).Debugf("    %d", it.Value())
	}
}

// CheckOperands returns an error wrapping modcalc.ErrStackUnderflow if there
// are less than n values on the stack.
func (es *ExprStack) CheckOperands(n int, op string) error {
	if n <= 0 {
		panic("vm: illegal count for stack operands")
	}
	if es.Size() < n {
		return fmt.Errorf("%w: attempt to %s %d operand(s), but %d on stack",
			modcalc.ErrStackUnderflow, op, n, es.Size())
	}
	return nil
}
