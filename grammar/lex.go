package grammar

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/modcalc"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
	"golang.org/x/text/width"
)

// Token categories produced by the lexmachine DFA
const (
	tokNumber int = iota + 1
	tokOperator
	tokOpen
	tokClose
	tokCall
	tokIdent
)

var tokenNames = map[int]string{
	tokNumber:   "NUMBER",
	tokOperator: "OP",
	tokOpen:     "OPEN",
	tokClose:    "CLOSE",
	tokCall:     "CALL",
	tokIdent:    "IDENT",
}

// Sub-patterns for template calls. Arguments are separated by blanks and/or a
// single comma.
const (
	identPattern = `[a-zA-Z_][a-zA-Z0-9_]*`
	namePattern  = identPattern + `(\.` + identPattern + `)?`
	argPattern   = `\-?[0-9]+`
	sepPattern   = "([ \t]*,[ \t]*|[ \t]+)"
	callPattern  = namePattern + "[ \t]*\\([ \t]*(" + argPattern + "(" + sepPattern + argPattern + ")*)?[ \t]*\\)"
)

var (
	lexer     *lexmachine.Lexer
	lexerErr  error
	initOnce  sync.Once // monitors one-time compilation of the DFA
	blankRune = func(r rune) bool { return r == ' ' || r == '\t' || r == ',' }
)

func compiledLexer() (*lexmachine.Lexer, error) {
	initOnce.Do(func() {
		lx := lexmachine.NewLexer()
		lx.Add([]byte(`[0-9]+`), makeToken(tokNumber))
		lx.Add([]byte(`\+|\-|\*|/|%`), makeToken(tokOperator))
		lx.Add([]byte(`\(`), makeToken(tokOpen))
		lx.Add([]byte(`\)`), makeToken(tokClose))
		lx.Add([]byte(callPattern), makeToken(tokCall))
		lx.Add([]byte(namePattern), makeToken(tokIdent))
		lx.Add([]byte("( |\t|\r)+"), skip)
		if err := lx.Compile(); err != nil {
			lexerErr = fmt.Errorf("cannot compile tokenizer: %w", err)
			tracer().Errorf("%v", lexerErr)
			return
		}
		lexer = lx
	})
	return lexer, lexerErr
}

func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// Tokenize scans the first line of src and returns its infix tokens.
// Tokenizing stops at the end of src or after the first newline, whichever
// comes first. The second return value is the number of bytes of src
// consumed, including a terminating newline.
//
// module is the name of the active module. Template calls without an explicit
// module qualifier are bound to it.
//
// If the line contains anything other than integer literals, operators,
// brackets and well-formed template calls, Tokenize returns an error wrapping
// modcalc.ErrSyntax. Brackets are not checked for balance. Columns of syntax
// errors count runes of the line, not bytes.
func Tokenize(src string, module string) ([]modcalc.Token, int, error) {
	line, consumed := cutLine(src)
	lx, err := compiledLexer()
	if err != nil {
		return nil, 0, err
	}
	text := width.Narrow.String(line)
	scanner, err := lx.Scanner([]byte(text))
	if err != nil {
		return nil, 0, err
	}
	var tokens []modcalc.Token
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if err != nil {
			return nil, consumed, unconsumed(text, err)
		}
		t := tok.(*lexmachine.Token)
		lexeme := t.Value.(string)
		tracer().Debugf("tokenizer accepting %s %q", tokenNames[t.Type], lexeme)
		switch t.Type {
		case tokNumber:
			n, err := strconv.ParseInt(lexeme, 10, 64)
			if err != nil {
				return nil, consumed, &modcalc.SyntaxError{Col: column(text, t.TC), Lexeme: lexeme, Msg: "integer out of range"}
			}
			tokens = append(tokens, modcalc.Operand(n))
		case tokOperator:
			op, _ := modcalc.OperatorFor(rune(lexeme[0]))
			tokens = append(tokens, op)
		case tokOpen:
			tokens = append(tokens, modcalc.OpenBracket)
		case tokClose:
			tokens = append(tokens, modcalc.CloseBracket)
		case tokCall:
			v, err := parseCall(lexeme, module)
			if err != nil {
				err.Col += column(text, t.TC) - 1
				return nil, consumed, err
			}
			tokens = append(tokens, v)
		case tokIdent:
			msg := "unknown identifier"
			if rest := strings.TrimLeft(text[t.TC+len(lexeme):], " \t"); strings.HasPrefix(rest, "(") {
				msg = "malformed variable call"
			}
			return nil, consumed, &modcalc.SyntaxError{Col: column(text, t.TC), Lexeme: lexeme, Msg: msg}
		default:
			panic(fmt.Sprintf("grammar: unknown token category %d", t.Type))
		}
	}
	return tokens, consumed, nil
}

// column converts byte offset tc of text into a 1-based rune column.
// Narrowing maps each rune to a single rune, so columns of the narrowed text
// are valid for the original line as well.
func column(text string, tc int) int {
	if tc > len(text) {
		tc = len(text)
	}
	return utf8.RuneCountInString(text[:tc]) + 1
}

// cutLine returns the first line of src (without line terminator) and the
// number of bytes up to and including the terminator.
func cutLine(src string) (string, int) {
	if i := strings.IndexByte(src, '\n'); i >= 0 {
		return strings.TrimSuffix(src[:i], "\r"), i + 1
	}
	return src, len(src)
}

// parseCall splits a call lexeme like "m.v (1, -2)" into its parts.
// Column information in a returned error is relative to the lexeme.
func parseCall(lexeme string, module string) (*modcalc.VarExpression, *modcalc.SyntaxError) {
	open := strings.IndexByte(lexeme, '(')
	v := &modcalc.VarExpression{
		Module: module,
		Name:   strings.TrimRight(lexeme[:open], " \t"),
	}
	if i := strings.IndexByte(v.Name, '.'); i >= 0 {
		v.Module, v.Name = v.Name[:i], v.Name[i+1:]
		v.Qualified = true
	}
	inner := lexeme[open+1 : len(lexeme)-1]
	for _, a := range strings.FieldsFunc(inner, blankRune) {
		n, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, &modcalc.SyntaxError{
				Col:    open + 2 + strings.Index(inner, a),
				Lexeme: a,
				Msg:    "argument out of range",
			}
		}
		v.Args = append(v.Args, n)
	}
	return v, nil
}

// unconsumed converts a lexmachine scanning error into a syntax error.
func unconsumed(text string, err error) error {
	ui, ok := err.(*machines.UnconsumedInput)
	if !ok {
		return fmt.Errorf("%w: %v", modcalc.ErrSyntax, err)
	}
	serr := &modcalc.SyntaxError{Col: column(text, ui.StartTC), Msg: "invalid token"}
	if ui.StartTC < len(text) {
		r, _ := utf8.DecodeRuneInString(text[ui.StartTC:])
		serr.Lexeme = string(r)
	}
	tracer().Errorf("%v", serr)
	return serr
}

// IsIdentifier is a predicate: is s a valid name for a module or a variable?
// Names start with a letter or '_', followed by letters, digits or '_'.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
