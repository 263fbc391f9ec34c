package variables

import (
	"fmt"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/modcalc"
)

// === Modules ===============================================================

// VarModule is a namespace of stored templates, ordered by variable name.
// A VarModule owns its templates; they are copied on the way in and on the
// way out.
type VarModule struct {
	name string
	vars *treemap.Map // variable name → []modcalc.Token
}

func newVarModule(name string) *VarModule {
	return &VarModule{
		name: name,
		vars: treemap.NewWithStringComparator(),
	}
}

// Name returns the name of the module.
func (vm *VarModule) Name() string {
	return vm.name
}

// Len returns the number of variables stored in the module.
func (vm *VarModule) Len() int {
	return vm.vars.Size()
}

// Names returns the variable names of the module in ascending order.
func (vm *VarModule) Names() []string {
	keys := vm.vars.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// Template returns a copy of the template stored for a variable.
func (vm *VarModule) Template(name string) ([]modcalc.Token, bool) {
	t, found := vm.vars.Get(name)
	if !found {
		return nil, false
	}
	return modcalc.CopyTokens(t.([]modcalc.Token)), true
}

func (vm *VarModule) set(name string, template []modcalc.Token) {
	vm.vars.Put(name, modcalc.CopyTokens(template))
}

// === Module Store ==========================================================

// ModuleStore maps module names to modules.
//
// A ModuleStore is safe for concurrent use. Every method locks the store
// for its own duration only; a caller expanding templates therefore sees
// each template as it was at the time of its individual lookup.
type ModuleStore struct {
	mu      sync.RWMutex
	modules *treemap.Map // module name → *VarModule
}

// NewModuleStore creates an empty module store.
func NewModuleStore() *ModuleStore {
	return &ModuleStore{modules: treemap.NewWithStringComparator()}
}

// AddModule inserts a new, empty module. If a module with the same name is
// already present, AddModule returns an error wrapping modcalc.ErrModuleExists
// and leaves the store unchanged.
func (ms *ModuleStore) AddModule(name string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, found := ms.modules.Get(name); found {
		tracer().P("module", name).Errorf("module already exists")
		return fmt.Errorf("%w: %s", modcalc.ErrModuleExists, name)
	}
	ms.modules.Put(name, newVarModule(name))
	tracer().P("module", name).Debugf("module added")
	return nil
}

// HasModule is a predicate: is there a module with the given name?
func (ms *ModuleStore) HasModule(name string) bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	_, found := ms.modules.Get(name)
	return found
}

// SetVariable stores a template as variable name of a module, overwriting a
// previous template of that name. The module must exist, otherwise an error
// wrapping modcalc.ErrUndefinedModule is returned.
func (ms *ModuleStore) SetVariable(module, name string, template []modcalc.Token) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	m, err := ms.module(module)
	if err != nil {
		return err
	}
	m.set(name, template)
	tracer().P("module", module).P("var", name).Debugf("template = %s", modcalc.FormatInfix(template))
	return nil
}

// Template returns a copy of the template of variable name in module.
// Errors wrap modcalc.ErrUndefinedModule or modcalc.ErrUndefinedVariable.
func (ms *ModuleStore) Template(module, name string) ([]modcalc.Token, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	m, err := ms.module(module)
	if err != nil {
		return nil, err
	}
	t, found := m.Template(name)
	if !found {
		tracer().P("module", module).P("var", name).Errorf("undefined variable")
		return nil, fmt.Errorf("%w: %s.%s", modcalc.ErrUndefinedVariable, module, name)
	}
	return t, nil
}

// Modules returns the names of all modules in ascending order.
func (ms *ModuleStore) Modules() []string {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	keys := ms.modules.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// Variables returns the variable names of a module in ascending order.
func (ms *ModuleStore) Variables(module string) ([]string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	m, err := ms.module(module)
	if err != nil {
		return nil, err
	}
	return m.Names(), nil
}

// Each calls f for every module, in ascending order of module names. The
// store is read-locked while Each runs, so f must not modify the store.
func (ms *ModuleStore) Each(f func(m *VarModule)) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	it := ms.modules.Iterator()
	for it.Next() {
		f(it.Value().(*VarModule))
	}
}

// module finds a module. Clients must hold the lock.
func (ms *ModuleStore) module(name string) (*VarModule, error) {
	m, found := ms.modules.Get(name)
	if !found {
		tracer().P("module", name).Errorf("undefined module")
		return nil, fmt.Errorf("%w: %q", modcalc.ErrUndefinedModule, name)
	}
	return m.(*VarModule), nil
}
