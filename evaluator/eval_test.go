package evaluator_test

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/modcalc"
	"github.com/npillmayer/modcalc/evaluator"
	"github.com/npillmayer/modcalc/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func calc(t *testing.T, ev *evaluator.Evaluator, src string, module string) (int64, error) {
	t.Helper()
	expr, _, err := grammar.Tokenize(src, module)
	require.NoError(t, err, "tokenizing %q", src)
	return ev.Calc(expr)
}

func TestCalcLiterals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.eval")
	defer teardown()
	//
	ev := evaluator.NewEvaluator(nil)
	for _, c := range []struct {
		src string
		r   int64
	}{
		{"(2+3)*4", 20},
		{"10 % 3", 1},
		{"2+3*4", 14},
		{"8-3-2", 3},
		{"100/10/5", 2},
		{"7", 7},
	} {
		r, err := calc(t, ev, c.src, "")
		require.NoError(t, err, c.src)
		require.Equal(t, c.r, r, c.src)
	}
}

func TestCalcErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.eval")
	defer teardown()
	//
	ev := evaluator.NewEvaluator(nil)
	for _, c := range []struct {
		src string
		err error
	}{
		{"10 / 0", modcalc.ErrDivisionByZero},
		{"(1+2", modcalc.ErrBracketMismatch},
		{"1+2)", modcalc.ErrBracketMismatch},
		{"-1", modcalc.ErrMalformedExpression},
		{"1 2", modcalc.ErrMalformedExpression},
		{"1 2 +", modcalc.ErrMalformedExpression},
		{"+ 1 2", modcalc.ErrMalformedExpression},
		{"2 3 4 * +", modcalc.ErrMalformedExpression},
		{"(1 2 -)", modcalc.ErrMalformedExpression},
		{"1 + 2 3 *", modcalc.ErrMalformedExpression},
		{"(1 2 -) + (3)", modcalc.ErrMalformedExpression},
		{"", modcalc.ErrMalformedExpression},
		{"v(1)", modcalc.ErrUndefinedModule},
	} {
		_, err := calc(t, ev, c.src, "")
		require.ErrorIs(t, err, c.err, c.src)
	}
}

func TestModuleFlow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.eval")
	defer teardown()
	//
	intp := evaluator.NewInterpreter(nil)
	mustExecute(t, intp, "modulesadd m")
	mustExecute(t, intp, "modulesvaradd m v a(0)+a(1)*2")
	require.Equal(t, "m", intp.ActiveModule())
	require.Equal(t, "11", mustExecute(t, intp, "calc v(3, 4)"))
	require.Equal(t, "11", mustExecute(t, intp, "calc v(3 4)"))
	require.Equal(t, "12", mustExecute(t, intp, "calc m.v(3,4) + 1"))
	require.Equal(t, "23", mustExecute(t, intp, "calc v(3 4) * 2 + 1"))
}

func TestArgumentMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.eval")
	defer teardown()
	//
	intp := evaluator.NewInterpreter(nil)
	mustExecute(t, intp, "modulesadd m")
	mustExecute(t, intp, "modulesvaradd m v a(0)+a(1)*2")
	for _, line := range []string{"calc v(3)", "calc v()", "calc v(1 2 3)"} {
		_, err := intp.Execute(line)
		require.ErrorIs(t, err, modcalc.ErrArgumentCount, line)
	}
}

func TestNestedCalls(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.eval")
	defer teardown()
	//
	intp := evaluator.NewInterpreter(nil)
	mustExecute(t, intp, "modulesadd lib")
	mustExecute(t, intp, "modulesvaradd lib mul x(0)*x(1)")
	mustExecute(t, intp, "modulesadd m")
	// nested calls carry their own arguments and consume no placeholders
	mustExecute(t, intp, "modulesvaradd m w lib.mul(3 3) + a(0)")
	require.Equal(t, "10", mustExecute(t, intp, "calc w(1)"))
	_, err := intp.Execute("calc w()")
	require.ErrorIs(t, err, modcalc.ErrArgumentCount)
	// failures of nested expansions reach the outer calc
	mustExecute(t, intp, "modulesvaradd m bad lib.nothing() + 1")
	_, err = intp.Execute("calc 1 + bad()")
	require.ErrorIs(t, err, modcalc.ErrUndefinedVariable)
	mustExecute(t, intp, "modulesvaradd m zero 1 / (a(0) - a(0))")
	_, err = intp.Execute("calc zero(5 5)")
	require.ErrorIs(t, err, modcalc.ErrDivisionByZero)
}

func TestQualifiedPlaceholder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.eval")
	defer teardown()
	//
	intp := evaluator.NewInterpreter(nil)
	mustExecute(t, intp, "modulesadd m")
	mustExecute(t, intp, "modulesvaradd m p a(0)")
	require.Equal(t, "7", mustExecute(t, intp, "calc p(7)"))
	// m.a(0) calls template m.a instead of consuming an argument
	mustExecute(t, intp, "modulesvaradd m q m.a(0)")
	_, err := intp.Execute("calc q(7)")
	require.ErrorIs(t, err, modcalc.ErrUndefinedVariable)
	mustExecute(t, intp, "modulesvaradd m a a(0) + 35")
	require.Equal(t, "35", mustExecute(t, intp, "calc q()"))
}

func TestCyclicReferences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.eval")
	defer teardown()
	//
	intp := evaluator.NewInterpreter(nil)
	mustExecute(t, intp, "modulesadd m")
	mustExecute(t, intp, "modulesvaradd m self m.self() + 1")
	_, err := intp.Execute("calc self()")
	require.ErrorIs(t, err, modcalc.ErrCyclicReference)
	mustExecute(t, intp, "modulesvaradd m ping m.pong() + 1")
	mustExecute(t, intp, "modulesvaradd m pong m.ping() + 1")
	_, err = intp.Execute("calc ping()")
	require.ErrorIs(t, err, modcalc.ErrCyclicReference)
	// calling the same template twice side by side is not a cycle
	mustExecute(t, intp, "modulesvaradd m one 1")
	mustExecute(t, intp, "modulesvaradd m two m.one() + m.one()")
	require.Equal(t, "2", mustExecute(t, intp, "calc two()"))
}

func TestMaxDepth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.eval")
	defer teardown()
	//
	intp := evaluator.NewInterpreter(nil)
	mustExecute(t, intp, "modulesadd m")
	mustExecute(t, intp, "modulesvaradd m l0 1")
	for i := 1; i <= 5; i++ {
		mustExecute(t, intp, "modulesvaradd m l"+strconv.Itoa(i)+" m.l"+strconv.Itoa(i-1)+"() + 1")
	}
	require.Equal(t, "6", mustExecute(t, intp, "calc l5()"))
	intp.Evaluator().SetMaxDepth(3)
	_, err := intp.Execute("calc l5()")
	require.ErrorIs(t, err, modcalc.ErrCyclicReference)
	require.Equal(t, "3", mustExecute(t, intp, "calc l2()"))
}

func TestCommandErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.eval")
	defer teardown()
	//
	intp := evaluator.NewInterpreter(nil)
	mustExecute(t, intp, "modulesadd m")
	for _, c := range []struct {
		line string
		err  error
	}{
		{"modulesadd m", modcalc.ErrModuleExists},
		{"modulesadd", modcalc.ErrNotEnoughArgs},
		{"modulesadd a b", modcalc.ErrTooManyArgs},
		{"modulesadd 1x", modcalc.ErrSyntax},
		{"modulesvaradd m v", modcalc.ErrNotEnoughArgs},
		{"modulesvaradd m", modcalc.ErrNotEnoughArgs},
		{"modulesvaradd x v 1+2", modcalc.ErrUndefinedModule},
		{"modulesvaradd m v 1 $ 2", modcalc.ErrSyntax},
		{"modulesshow now", modcalc.ErrTooManyArgs},
		{"modulesuse x", modcalc.ErrUndefinedModule},
		{"modulesuse", modcalc.ErrNotEnoughArgs},
		{"frobnicate 1", modcalc.ErrInvalidCommand},
		{"calc 1 + v(", modcalc.ErrSyntax},
	} {
		_, err := intp.Execute(c.line)
		require.ErrorIs(t, err, c.err, c.line)
	}
	// the interpreter survives every failure
	require.Equal(t, "3", mustExecute(t, intp, "calc 1+2"))
}

func TestSyntaxErrorColumns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.eval")
	defer teardown()
	//
	intp := evaluator.NewInterpreter(nil)
	for _, c := range []struct {
		line string
		col  int
	}{
		{"calc 1 + $", 10},
		{"calc １+x", 8},
		{"calc １＋２ $", 10},
		{"calc １\n2", 8},
		{"calc （１）\n+ 2", 10},
		{"modulesadd 1x", 12},
	} {
		_, err := intp.Execute(c.line)
		var serr *modcalc.SyntaxError
		require.ErrorAs(t, err, &serr, c.line)
		require.Equal(t, c.col, serr.Col, c.line)
	}
}

func TestActiveModule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.eval")
	defer teardown()
	//
	intp := evaluator.NewInterpreter(nil)
	mustExecute(t, intp, "modulesadd a")
	mustExecute(t, intp, "modulesvaradd a v 1")
	mustExecute(t, intp, "modulesadd b")
	mustExecute(t, intp, "modulesvaradd b v 2")
	require.Equal(t, "2", mustExecute(t, intp, "calc v()"))
	mustExecute(t, intp, "modulesuse a")
	require.Equal(t, "1", mustExecute(t, intp, "calc v()"))
	require.Equal(t, "3", mustExecute(t, intp, "calc v() + b.v()"))
}

func TestModulesShow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.eval")
	defer teardown()
	//
	intp := evaluator.NewInterpreter(nil)
	require.Equal(t, "", mustExecute(t, intp, "modulesshow"))
	mustExecute(t, intp, "modulesadd m")
	out := mustExecute(t, intp, "modulesshow")
	require.NotEmpty(t, out)
	require.Equal(t, "m:\n"+evaluator.EmptyModuleText, out)
	mustExecute(t, intp, "modulesvaradd m v a(0)+a(1)*2")
	mustExecute(t, intp, "modulesvaradd m c (1+2)%lib.x(4,-5)")
	mustExecute(t, intp, "modulesadd e")
	out = mustExecute(t, intp, "modulesshow")
	require.Equal(t, strings.Join([]string{
		"e:",
		evaluator.EmptyModuleText,
		"m:",
		"c = ( 1 + 2 ) % lib.x(4, -5)",
		"v = a(0) + a(1) * 2",
	}, "\n"), out)
}

func TestHistory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.eval")
	defer teardown()
	//
	intp := evaluator.NewInterpreter(nil)
	var h strings.Builder
	intp.SetHistory(&h)
	mustExecute(t, intp, "calc 1+2")
	intp.Execute("calc 1/0")
	intp.Execute("   ")
	lines := strings.Split(strings.TrimSpace(h.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasSuffix(lines[0], "calc 1+2  => 3"), lines[0])
	require.Contains(t, lines[1], "calc 1/0  => error: division by zero")
}

// --- Round trip against a reference evaluator ------------------------------

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.eval")
	defer teardown()
	//
	ev := evaluator.NewEvaluator(nil)
	rnd := rand.New(rand.NewSource(4711))
	for i := 0; i < 500; i++ {
		src := genExpr(rnd, 4)
		want, wantErr := refEval(src)
		r, err := calc(t, ev, src, "")
		if wantErr != nil {
			require.ErrorIs(t, err, modcalc.ErrDivisionByZero, src)
			continue
		}
		require.NoError(t, err, src)
		require.Equal(t, want, r, src)
	}
}

func genExpr(rnd *rand.Rand, depth int) string {
	if depth == 0 || rnd.Intn(4) == 0 {
		return strconv.Itoa(rnd.Intn(100))
	}
	l, r := genExpr(rnd, depth-1), genExpr(rnd, depth-1)
	op := string(modcalc.Operators[rnd.Intn(len(modcalc.Operators))])
	e := l + " " + op + " " + r
	if rnd.Intn(3) == 0 {
		e = "(" + e + ")"
	}
	return e
}

var errRefDivZero = errors.New("division by zero")

// refEval is a recursive-descent evaluator for literal expressions:
//
//    expr   : term { (+|-) term }
//    term   : factor { (*|/|%) factor }
//    factor : number | ( expr )
//
func refEval(src string) (int64, error) {
	p := &refParser{src: strings.ReplaceAll(src, " ", "")}
	v := p.expr()
	return v, p.err
}

type refParser struct {
	src string
	pos int
	err error
}

func (p *refParser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *refParser) expr() int64 {
	v := p.term()
	for c := p.peek(); c == '+' || c == '-'; c = p.peek() {
		p.pos++
		r := p.term()
		if c == '+' {
			v += r
		} else {
			v -= r
		}
	}
	return v
}

func (p *refParser) term() int64 {
	v := p.factor()
	for c := p.peek(); c == '*' || c == '/' || c == '%'; c = p.peek() {
		p.pos++
		r := p.factor()
		switch {
		case c == '*':
			v *= r
		case r == 0:
			p.err = errRefDivZero
			v = 0
		case c == '/':
			v /= r
		default:
			v %= r
		}
	}
	return v
}

func (p *refParser) factor() int64 {
	if p.peek() == '(' {
		p.pos++
		v := p.expr()
		p.pos++ // ')'
		return v
	}
	start := p.pos
	for c := p.peek(); '0' <= c && c <= '9'; c = p.peek() {
		p.pos++
	}
	v, _ := strconv.ParseInt(p.src[start:p.pos], 10, 64)
	return v
}

// --- Helpers ---------------------------------------------------------------

func mustExecute(t *testing.T, intp *evaluator.Interpreter, line string) string {
	t.Helper()
	out, err := intp.Execute(line)
	require.NoError(t, err, line)
	return out
}
