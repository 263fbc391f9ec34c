package corelang

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/linkedliststack"
	"github.com/npillmayer/modcalc"
)

// OpStack is the stack of pending operators and open brackets used during
// conversion.
type OpStack struct {
	stack *linkedliststack.Stack // a stack of operators and brackets
}

// NewOpStack creates an empty operator stack.
func NewOpStack() *OpStack {
	return &OpStack{stack: linkedliststack.New()}
}

// Push puts an operator or open bracket on top of the stack.
func (st *OpStack) Push(t modcalc.Token) *OpStack {
	st.stack.Push(t)
	return st
}

// Pop removes the top of the stack and returns it.
func (st *OpStack) Pop() (modcalc.Token, bool) {
	tos, ok := st.stack.Pop()
	if !ok {
		return nil, false
	}
	return tos.(modcalc.Token), true
}

// Top returns the top of the stack without removing it.
func (st *OpStack) Top() (modcalc.Token, bool) {
	tos, ok := st.stack.Peek()
	if !ok {
		return nil, false
	}
	return tos.(modcalc.Token), true
}

// IsEmpty is a predicate: is the stack empty?
func (st *OpStack) IsEmpty() bool {
	return st.stack.Empty()
}

// Size returns the number of entries on the stack.
func (st *OpStack) Size() int {
	return st.stack.Size()
}

// Dump traces the stack contents, TOS first.
func (st *OpStack) Dump() {
	tracer().P("size", st.Size()).Debugf("Operator Stack, TOS first:")
	it := st.stack.Iterator()
	for it.Next() {
		tracer().P("#", it.Index()).Debugf("    %v", it.Value())
	}
}

// Convert transforms an infix token sequence into postfix order.
//
// infix must consist of operands, operators and brackets only. Unbalanced
// brackets result in an error wrapping modcalc.ErrBracketMismatch. Operands
// and operators have to alternate: an operand or an open bracket may only
// appear where an operand is expected, a binary operator only after an
// operand or a close bracket, and infix must not end with an operator.
// Violations, as well as a template call which has not been expanded, result
// in an error wrapping modcalc.ErrMalformedExpression. An empty infix sequence
// converts to an empty postfix sequence.
func Convert(infix []modcalc.Token) ([]modcalc.PostfixToken, error) {
	ops := NewOpStack()
	postfix := make([]modcalc.PostfixToken, 0, len(infix))
	expectOperand := true
	for i, tok := range infix {
		switch t := tok.(type) {
		case modcalc.Operand:
			if !expectOperand {
				return nil, misplaced(t, i)
			}
			postfix = append(postfix, t)
			expectOperand = false
		case modcalc.BinOperator:
			if expectOperand {
				return nil, misplaced(t, i)
			}
			expectOperand = true
			for !ops.IsEmpty() {
				top, _ := ops.Top()
				op, isop := top.(modcalc.BinOperator)
				if !isop || op.Priority() < t.Priority() {
					break
				}
				ops.Pop()
				postfix = append(postfix, op)
			}
			ops.Push(t)
		case modcalc.Bracket:
			if t.IsOpen() {
				if !expectOperand {
					return nil, misplaced(t, i)
				}
				ops.Push(t)
				continue
			}
			if !popUntilOpen(ops, &postfix) {
				tracer().P("pos", i+1).Errorf("close bracket without open bracket")
				return nil, fmt.Errorf("%w: ) at token %d with no open bracket",
					modcalc.ErrBracketMismatch, i+1)
			}
			if expectOperand { // () or (1+)
				return nil, misplaced(t, i)
			}
		case *modcalc.VarExpression:
			return nil, fmt.Errorf("%w: unexpanded call of %s", modcalc.ErrMalformedExpression, t.FullName())
		default:
			panic(fmt.Sprintf("corelang: invalid token type %T", tok))
		}
	}
	for !ops.IsEmpty() {
		top, _ := ops.Pop()
		op, isop := top.(modcalc.BinOperator)
		if !isop {
			tracer().Errorf("open bracket without close bracket")
			ops.Dump()
			return nil, fmt.Errorf("%w: ( with no close bracket", modcalc.ErrBracketMismatch)
		}
		postfix = append(postfix, op)
	}
	if expectOperand && len(infix) > 0 {
		tracer().Errorf("expression ends with an operator")
		return nil, fmt.Errorf("%w: operand missing at end of expression", modcalc.ErrMalformedExpression)
	}
	tracer().Debugf("postfix = %s", modcalc.FormatPostfix(postfix))
	return postfix, nil
}

// misplaced reports token t at index i, which breaks the alternation of
// operands and operators.
func misplaced(t modcalc.Token, i int) error {
	tracer().P("pos", i+1).Errorf("unexpected %v", t)
	return fmt.Errorf("%w: unexpected %v at token %d", modcalc.ErrMalformedExpression, t, i+1)
}

// popUntilOpen moves operators from ops to postfix until an open bracket is
// found, which is discarded. Returns false if there was no open bracket.
func popUntilOpen(ops *OpStack, postfix *[]modcalc.PostfixToken) bool {
	for !ops.IsEmpty() {
		top, _ := ops.Pop()
		switch t := top.(type) {
		case modcalc.Bracket:
			return true
		case modcalc.BinOperator:
			*postfix = append(*postfix, t)
		default:
			panic(fmt.Sprintf("corelang: invalid entry %T on operator stack", top))
		}
	}
	return false
}
