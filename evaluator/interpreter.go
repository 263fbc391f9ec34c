package evaluator

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/npillmayer/modcalc"
	"github.com/npillmayer/modcalc/grammar"
)

// Interpreter executes command lines. It holds the active module, i.e. the
// module unqualified template calls bind to.
//
// Every command line runs to completion before Execute returns. A failing
// command leaves the interpreter ready for the next line.
type Interpreter struct {
	ev      *Evaluator // expression evaluator
	module  string     // active module
	history io.Writer  // audit trail of command lines, may be nil
	line    string     // command line being executed
}

// NewInterpreter creates an interpreter working with evaluator ev. If ev is
// nil, an evaluator with an empty module store is created.
func NewInterpreter(ev *Evaluator) *Interpreter {
	if ev == nil {
		ev = NewEvaluator(nil)
	}
	return &Interpreter{ev: ev}
}

// Evaluator returns the evaluator of the interpreter.
func (intp *Interpreter) Evaluator() *Evaluator {
	return intp.ev
}

// ActiveModule returns the name of the active module, or "" if no module has
// been added or selected yet.
func (intp *Interpreter) ActiveModule() string {
	return intp.module
}

// SetHistory sets a writer to receive an audit trail of every executed
// command line. Each line has the form
//
//    2021-03-01T17:04:05Z  calc 1+2  => 3
//
// with the outcome being either the printed result or the error. A nil
// writer switches the audit trail off.
func (intp *Interpreter) SetHistory(w io.Writer) {
	intp.history = w
}

// Execute runs a single command line and returns the text to be printed,
// if any. Blank lines are ignored. Unknown commands fail with an error
// wrapping modcalc.ErrInvalidCommand.
func (intp *Interpreter) Execute(line string) (out string, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}
	intp.line = line
	name, args := nextWord(line)
	tracer().P("cmd", name).Debugf("execute %q", line)
	if cmd, ok := commands[name]; ok {
		out, err = cmd(intp, args)
	} else {
		err = fmt.Errorf("%w: %q", modcalc.ErrInvalidCommand, name)
	}
	if err != nil {
		tracer().P("cmd", name).Errorf("%v", err)
	}
	intp.record(line, out, err)
	return out, err
}

// tokenize tokenizes src, which is a suffix of the current command line.
// Columns of syntax errors are reported in runes, relative to the command
// line.
func (intp *Interpreter) tokenize(src string, module string) ([]modcalc.Token, error) {
	offset := 0
	if strings.HasSuffix(intp.line, src) {
		offset = utf8.RuneCountInString(intp.line[:len(intp.line)-len(src)])
	}
	tokens, n, err := grammar.Tokenize(src, module)
	if err != nil {
		var serr *modcalc.SyntaxError
		if errors.As(err, &serr) {
			serr.Col += offset
		}
		return nil, err
	}
	if rest := strings.TrimSpace(src[n:]); rest != "" {
		col := offset + utf8.RuneCountInString(src[:n]) + 1
		return nil, &modcalc.SyntaxError{Col: col, Lexeme: rest, Msg: "unexpected line break"}
	}
	return tokens, nil
}

// nameError reports an invalid module or variable name on the current
// command line.
func (intp *Interpreter) nameError(name string) error {
	col := 1
	if i := strings.Index(intp.line, name); i > 0 {
		col += utf8.RuneCountInString(intp.line[:i])
	}
	return &modcalc.SyntaxError{Col: col, Lexeme: name, Msg: "invalid name"}
}

func (intp *Interpreter) record(line, out string, err error) {
	if intp.history == nil {
		return
	}
	outcome := out
	if err != nil {
		outcome = "error: " + err.Error()
	}
	outcome = strings.ReplaceAll(outcome, "\n", "; ")
	stamp := time.Now().UTC().Format(time.RFC3339)
	if outcome == "" {
		_, err = fmt.Fprintf(intp.history, "%s  %s\n", stamp, line)
	} else {
		_, err = fmt.Fprintf(intp.history, "%s  %s  => %s\n", stamp, line, outcome)
	}
	if err != nil {
		tracer().Errorf("cannot write history: %v", err)
	}
}
