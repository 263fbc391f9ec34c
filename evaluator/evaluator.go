package evaluator

import (
	"fmt"

	"github.com/edwingeng/deque"
	"github.com/npillmayer/modcalc"
	"github.com/npillmayer/modcalc/corelang"
	"github.com/npillmayer/modcalc/variables"
	"github.com/npillmayer/modcalc/vm"
)

// DefaultMaxDepth is the default limit for the nesting of template calls.
const DefaultMaxDepth = 64

// Evaluator computes the value of infix expressions, expanding calls of
// templates stored in a module store.
//
// An Evaluator is not safe for concurrent use. The module store it works on
// may be shared between evaluators.
type Evaluator struct {
	store    *variables.ModuleStore // templates
	maxDepth int                    // limit for nested template calls
	machine  *vm.Machine            // runs postfix programs
}

// NewEvaluator creates an evaluator for templates in store. If store is nil,
// a new and empty module store is created.
func NewEvaluator(store *variables.ModuleStore) *Evaluator {
	if store == nil {
		store = variables.NewModuleStore()
	}
	return &Evaluator{
		store:    store,
		maxDepth: DefaultMaxDepth,
		machine:  vm.NewMachine(),
	}
}

// Store returns the module store of the evaluator.
func (ev *Evaluator) Store() *variables.ModuleStore {
	return ev.store
}

// SetMaxDepth sets the limit for the nesting of template calls. Values < 1
// reset the limit to DefaultMaxDepth.
func (ev *Evaluator) SetMaxDepth(n int) {
	if n < 1 {
		n = DefaultMaxDepth
	}
	ev.maxDepth = n
}

// Calc computes the value of an infix expression. Every template call in
// expr is expanded independently, then the resulting literal expression is
// converted to postfix form and evaluated. Any failure of a nested
// expansion aborts the whole computation and is returned unchanged.
//
// expr is not modified.
func (ev *Evaluator) Calc(expr []modcalc.Token) (int64, error) {
	if len(expr) == 0 {
		return 0, fmt.Errorf("%w: empty expression", modcalc.ErrMalformedExpression)
	}
	if !modcalc.HasVarExpressions(expr) {
		return ev.run(expr)
	}
	infix := make([]modcalc.Token, len(expr))
	for i, tok := range expr {
		switch t := tok.(type) {
		case *modcalc.VarExpression:
			v, err := ev.Expand(t)
			if err != nil {
				return 0, err
			}
			infix[i] = modcalc.Operand(v)
		case modcalc.Operand, modcalc.BinOperator, modcalc.Bracket:
			infix[i] = t
		default:
			panic(fmt.Sprintf("evaluator: invalid token type %T", tok))
		}
	}
	return ev.run(infix)
}

// Expand computes the value of a single template call.
func (ev *Evaluator) Expand(call *modcalc.VarExpression) (int64, error) {
	x := &expansion{
		ev:     ev,
		active: make(map[string]bool),
	}
	return x.call(call)
}

func (ev *Evaluator) run(infix []modcalc.Token) (int64, error) {
	postfix, err := corelang.Convert(infix)
	if err != nil {
		return 0, err
	}
	tracer().Debugf("postfix = %s", modcalc.FormatPostfix(postfix))
	return ev.machine.Run(postfix)
}

// --- Expansion -------------------------------------------------------------

// expansion holds the state of the expansion of a single outer call.
type expansion struct {
	ev     *Evaluator
	active map[string]bool // module.var of calls currently being expanded
	depth  int             // nesting depth of the current call
}

func (x *expansion) call(call *modcalc.VarExpression) (int64, error) {
	key := call.FullName()
	if x.active[key] {
		tracer().P("call", key).Errorf("cyclic reference")
		return 0, fmt.Errorf("%w: %s calls itself", modcalc.ErrCyclicReference, key)
	}
	if x.depth >= x.ev.maxDepth {
		tracer().P("call", key).Errorf("expansion too deep")
		return 0, fmt.Errorf("%w: %s nested deeper than %d", modcalc.ErrCyclicReference,
			key, x.ev.maxDepth)
	}
	template, err := x.ev.store.Template(call.Module, call.Name)
	if err != nil {
		return 0, err
	}
	x.active[key] = true
	x.depth++
	defer func() {
		delete(x.active, key)
		x.depth--
	}()
	tracer().P("call", key).Debugf("expanding %s with template %s", call, modcalc.FormatInfix(template))
	args := deque.NewDeque()
	for _, a := range call.Args {
		args.PushBack(a)
	}
	for i, tok := range template {
		switch t := tok.(type) {
		case *modcalc.VarExpression:
			if t.Qualified {
				v, err := x.call(t)
				if err != nil {
					return 0, err
				}
				template[i] = modcalc.Operand(v)
				continue
			}
			if args.Empty() {
				return 0, fmt.Errorf("%w: %s called with %d arguments, template needs more",
					modcalc.ErrArgumentCount, key, len(call.Args))
			}
			template[i] = modcalc.Operand(args.PopFront().(int64))
		case modcalc.Operand, modcalc.BinOperator, modcalc.Bracket:
		default:
			panic(fmt.Sprintf("evaluator: invalid token type %T", tok))
		}
	}
	if !args.Empty() {
		return 0, fmt.Errorf("%w: %s called with %d arguments, template uses %d",
			modcalc.ErrArgumentCount, key, len(call.Args), len(call.Args)-args.Len())
	}
	v, err := x.ev.run(template)
	if err != nil {
		return 0, err
	}
	tracer().P("call", key).Debugf("%s = %d", call, v)
	return v, nil
}
