package modcalc

import (
	"errors"
	"strconv"
)

// Errors are wrapped with context information by the components raising
// them. Clients should test for them with errors.Is.
var (
	ErrSyntax              = errors.New("syntax error")
	ErrBracketMismatch     = errors.New("bracket mismatch")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrStackUnderflow      = errors.New("stack underflow")
	ErrMalformedExpression = errors.New("malformed expression")
	ErrModuleExists        = errors.New("module already exists")
	ErrUndefinedModule     = errors.New("undefined module")
	ErrUndefinedVariable   = errors.New("undefined variable")
	ErrArgumentCount       = errors.New("argument count mismatch")
	ErrCyclicReference     = errors.New("cyclic variable reference")
	ErrNotEnoughArgs       = errors.New("not enough args")
	ErrTooManyArgs         = errors.New("too many args")
	ErrInvalidCommand      = errors.New("invalid command")
)

// SyntaxError indicates input text which is not a valid token sequence.
// It unwraps to ErrSyntax.
type SyntaxError struct {
	// Col is the 1-based position (in runes) of the offending lexeme.
	Col int
	// Lexeme is the text which could not be tokenized.
	Lexeme string
	// Msg describes what went wrong, e.g. "malformed variable call".
	Msg string
}

func (err *SyntaxError) Error() string {
	s := "syntax error at column " + strconv.Itoa(err.Col)
	if err.Msg != "" {
		s += ": " + err.Msg
	}
	if err.Lexeme != "" {
		s += " " + strconv.Quote(err.Lexeme)
	}
	return s
}

func (err *SyntaxError) Unwrap() error {
	return ErrSyntax
}
