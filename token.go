package modcalc

import (
	"fmt"
	"strconv"
	"strings"
)

// --- Tokens ----------------------------------------------------------------

// Token is an infix token. It is one of
//
//    Operand         an integer literal
//    BinOperator     one of + - * / %
//    Bracket         ( or )
//    *VarExpression  a call of a stored template
//
// No other types implement Token. Clients switch over the concrete types.
type Token interface {
	fmt.Stringer
	isToken()
}

// PostfixToken is a token which may appear in a postfix sequence, i.e. an
// Operand or a BinOperator. Brackets and variable calls are eliminated before
// an expression reaches postfix form.
type PostfixToken interface {
	Token
	isPostfix()
}

// Operand is an integer literal.
type Operand int64

func (Operand) isToken()   {}
func (Operand) isPostfix() {}

func (o Operand) String() string {
	return strconv.FormatInt(int64(o), 10)
}

// Value returns the operand as an int64.
func (o Operand) Value() int64 {
	return int64(o)
}

// Bracket is an opening or closing bracket.
type Bracket byte

// The two bracket kinds
const (
	OpenBracket  Bracket = '('
	CloseBracket Bracket = ')'
)

func (Bracket) isToken() {}

func (b Bracket) String() string {
	return string(rune(b))
}

// IsOpen is a predicate: is b an opening bracket?
func (b Bracket) IsOpen() bool {
	return b == OpenBracket
}

// VarExpression is a reference to a stored template, together with the
// arguments of the call site.
//
// Within a stored template, an unqualified VarExpression acts as a positional
// placeholder: the n-th unqualified VarExpression consumes the n-th argument
// of the call expanding the template. A qualified VarExpression (written as
// module.var(…) in the source) is a call of another template. Qualifying a
// placeholder therefore changes its meaning: m.a(0) in a template does not
// consume an argument but calls template a of module m.
type VarExpression struct {
	Module    string  // module the template lives in
	Name      string  // name of the template within Module
	Args      []int64 // literal arguments of the call
	Qualified bool    // did the source name the module explicitly?
}

func (*VarExpression) isToken() {}

// FullName returns "module.name".
func (v *VarExpression) FullName() string {
	return v.Module + "." + v.Name
}

func (v *VarExpression) String() string {
	var b strings.Builder
	if v.Qualified {
		b.WriteString(v.FullName())
	} else {
		b.WriteString(v.Name)
	}
	b.WriteByte('(')
	for i, a := range v.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatInt(a, 10))
	}
	b.WriteByte(')')
	return b.String()
}

// Copy returns a deep copy of v.
func (v *VarExpression) Copy() *VarExpression {
	c := *v
	c.Args = append([]int64(nil), v.Args...)
	return &c
}

var (
	_ PostfixToken = Operand(0)
	_ PostfixToken = Add
	_ Token        = OpenBracket
	_ Token        = &VarExpression{}
)

// --- Token sequences -------------------------------------------------------

// CopyTokens returns a copy of an infix sequence. VarExpressions are copied,
// too, so the result shares no memory with seq.
func CopyTokens(seq []Token) []Token {
	if seq == nil {
		return nil
	}
	c := make([]Token, len(seq))
	for i, t := range seq {
		if v, ok := t.(*VarExpression); ok {
			t = v.Copy()
		}
		c[i] = t
	}
	return c
}

// HasVarExpressions is a predicate: does seq contain a template call?
func HasVarExpressions(seq []Token) bool {
	for _, t := range seq {
		if _, ok := t.(*VarExpression); ok {
			return true
		}
	}
	return false
}

// FormatInfix renders an infix sequence as space-separated tokens, e.g.
// "( 2 + 3 ) * a(1)".
func FormatInfix(seq []Token) string {
	s := make([]string, len(seq))
	for i, t := range seq {
		s[i] = t.String()
	}
	return strings.Join(s, " ")
}

// FormatPostfix renders a postfix sequence as space-separated tokens, e.g.
// "2 3 + 4 *".
func FormatPostfix(seq []PostfixToken) string {
	s := make([]string, len(seq))
	for i, t := range seq {
		s[i] = t.String()
	}
	return strings.Join(s, " ")
}
