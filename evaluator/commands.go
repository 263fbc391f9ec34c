package evaluator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/modcalc"
	"github.com/npillmayer/modcalc/grammar"
	"github.com/npillmayer/modcalc/variables"
)

// EmptyModuleText is shown by modulesshow for a module without variables.
const EmptyModuleText = "no variables saved"

// command executes a command line, given the text following the command
// name. It returns the text to print, if any.
type command func(intp *Interpreter, args string) (string, error)

var commands = map[string]command{
	"calc":          calc,
	"modulesadd":    modulesadd,
	"modulesvaradd": modulesvaradd,
	"modulesshow":   modulesshow,
	"modulesuse":    modulesuse,
}

// Commands returns the names of all commands in ascending order.
func Commands() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// calc <expr>
func calc(intp *Interpreter, args string) (string, error) {
	expr, err := intp.tokenize(args, intp.module)
	if err != nil {
		return "", err
	}
	v, err := intp.ev.Calc(expr)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(v, 10), nil
}

// modulesadd <name>
func modulesadd(intp *Interpreter, args string) (string, error) {
	name, err := intp.singleName(args)
	if err != nil {
		return "", err
	}
	if err = intp.ev.Store().AddModule(name); err != nil {
		return "", err
	}
	intp.module = name
	return "", nil
}

// modulesuse <name>
func modulesuse(intp *Interpreter, args string) (string, error) {
	name, err := intp.singleName(args)
	if err != nil {
		return "", err
	}
	if !intp.ev.Store().HasModule(name) {
		return "", fmt.Errorf("%w: %q", modcalc.ErrUndefinedModule, name)
	}
	intp.module = name
	return "", nil
}

// modulesvaradd <module> <var> <expr>
func modulesvaradd(intp *Interpreter, args string) (string, error) {
	module, rest := nextWord(args)
	varname, rest := nextWord(rest)
	if module == "" || varname == "" {
		return "", fmt.Errorf("%w: expected modulesvaradd <module> <var> <expr>", modcalc.ErrNotEnoughArgs)
	}
	for _, name := range []string{module, varname} {
		if !grammar.IsIdentifier(name) {
			return "", intp.nameError(name)
		}
	}
	if !intp.ev.Store().HasModule(module) {
		return "", fmt.Errorf("%w: %q", modcalc.ErrUndefinedModule, module)
	}
	template, err := intp.tokenize(rest, module)
	if err != nil {
		return "", err
	}
	if len(template) == 0 {
		return "", fmt.Errorf("%w: no expression for %s.%s", modcalc.ErrNotEnoughArgs, module, varname)
	}
	return "", intp.ev.Store().SetVariable(module, varname, template)
}

// modulesshow
func modulesshow(intp *Interpreter, args string) (string, error) {
	if strings.TrimSpace(args) != "" {
		return "", fmt.Errorf("%w: modulesshow takes no arguments", modcalc.ErrTooManyArgs)
	}
	return ShowModules(intp.ev.Store()), nil
}

// ShowModules renders every module of a store with its templates as text,
// one block per module:
//
//    <module>:
//    <var> = <tok> <tok> ...
//
// A module without variables shows EmptyModuleText instead. Modules and
// variables are listed in ascending order of their names.
func ShowModules(store *variables.ModuleStore) string {
	var b strings.Builder
	store.Each(func(m *variables.VarModule) {
		b.WriteString(m.Name())
		b.WriteString(":\n")
		if m.Len() == 0 {
			b.WriteString(EmptyModuleText)
			b.WriteByte('\n')
			return
		}
		for _, name := range m.Names() {
			t, _ := m.Template(name)
			b.WriteString(name)
			b.WriteString(" = ")
			b.WriteString(modcalc.FormatInfix(t))
			b.WriteByte('\n')
		}
	})
	return strings.TrimSuffix(b.String(), "\n")
}

// --- Argument helpers ------------------------------------------------------

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// nextWord splits off the first blank-separated word of s.
func nextWord(s string) (string, string) {
	s = strings.TrimLeftFunc(s, isBlank)
	if i := strings.IndexFunc(s, isBlank); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// singleName expects args to consist of exactly one valid name.
func (intp *Interpreter) singleName(args string) (string, error) {
	name, rest := nextWord(args)
	if name == "" {
		return "", fmt.Errorf("%w: expected a module name", modcalc.ErrNotEnoughArgs)
	}
	if strings.TrimSpace(rest) != "" {
		return "", fmt.Errorf("%w: unexpected %q", modcalc.ErrTooManyArgs, strings.TrimSpace(rest))
	}
	if !grammar.IsIdentifier(name) {
		return "", intp.nameError(name)
	}
	return name, nil
}
