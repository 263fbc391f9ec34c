package variables_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/modcalc"
	"github.com/npillmayer/modcalc/variables"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestAddModule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.variables")
	defer teardown()
	//
	ms := variables.NewModuleStore()
	if err := ms.AddModule("m"); err != nil {
		t.Fatal(err)
	}
	if !ms.HasModule("m") {
		t.Error("expected module m to be present")
	}
	if err := ms.AddModule("m"); !errors.Is(err, modcalc.ErrModuleExists) {
		t.Errorf("expected re-insertion to fail with module exists, got %v", err)
	}
	if vars, err := ms.Variables("m"); err != nil || len(vars) != 0 {
		t.Errorf("expected new module to be empty, have %v (%v)", vars, err)
	}
}

func TestSetVariable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.variables")
	defer teardown()
	//
	ms := variables.NewModuleStore()
	tmpl := []modcalc.Token{
		&modcalc.VarExpression{Module: "m", Name: "a", Args: []int64{0}},
		modcalc.Add, modcalc.Operand(1),
	}
	if err := ms.SetVariable("m", "v", tmpl); !errors.Is(err, modcalc.ErrUndefinedModule) {
		t.Errorf("expected undefined module, got %v", err)
	}
	ms.AddModule("m")
	if err := ms.SetVariable("m", "v", tmpl); err != nil {
		t.Fatal(err)
	}
	// the store must own its copy
	tmpl[2] = modcalc.Operand(99)
	tmpl[0].(*modcalc.VarExpression).Args[0] = 7
	got, err := ms.Template("m", "v")
	if err != nil {
		t.Fatal(err)
	}
	want := []modcalc.Token{
		&modcalc.VarExpression{Module: "m", Name: "a", Args: []int64{0}},
		modcalc.Add, modcalc.Operand(1),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stored template differs (-want +got):\n%s", diff)
	}
	// overwrite
	if err := ms.SetVariable("m", "v", []modcalc.Token{modcalc.Operand(5)}); err != nil {
		t.Fatal(err)
	}
	if got, _ = ms.Template("m", "v"); modcalc.FormatInfix(got) != "5" {
		t.Errorf("expected template to be overwritten, is %q", modcalc.FormatInfix(got))
	}
}

func TestTemplateLookupErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.variables")
	defer teardown()
	//
	ms := variables.NewModuleStore()
	ms.AddModule("m")
	if _, err := ms.Template("x", "v"); !errors.Is(err, modcalc.ErrUndefinedModule) {
		t.Errorf("expected undefined module, got %v", err)
	}
	if _, err := ms.Template("m", "v"); !errors.Is(err, modcalc.ErrUndefinedVariable) {
		t.Errorf("expected undefined variable, got %v", err)
	}
	if _, err := ms.Variables("x"); !errors.Is(err, modcalc.ErrUndefinedModule) {
		t.Errorf("expected undefined module, got %v", err)
	}
}

func TestOrdering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "modcalc.variables")
	defer teardown()
	//
	ms := variables.NewModuleStore()
	for _, m := range []string{"zeta", "alpha", "mu"} {
		ms.AddModule(m)
	}
	for _, v := range []string{"c", "a", "b"} {
		ms.SetVariable("mu", v, []modcalc.Token{modcalc.Operand(1)})
	}
	if diff := cmp.Diff([]string{"alpha", "mu", "zeta"}, ms.Modules()); diff != "" {
		t.Errorf("modules not ordered (-want +got):\n%s", diff)
	}
	vars, _ := ms.Variables("mu")
	if diff := cmp.Diff([]string{"a", "b", "c"}, vars); diff != "" {
		t.Errorf("variables not ordered (-want +got):\n%s", diff)
	}
	var seen []string
	ms.Each(func(m *variables.VarModule) {
		seen = append(seen, m.Name())
	})
	if diff := cmp.Diff(ms.Modules(), seen); diff != "" {
		t.Errorf("Each visits modules out of order (-want +got):\n%s", diff)
	}
}
