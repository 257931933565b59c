package cvar

import (
	"sort"
	"sync"
)

// Snapshot is a point-in-time copy of one variable, for listing.
type Snapshot struct {
	Name    string
	Value   int64
	Default int64
	Help    string
}

// Registry owns the process-wide set of console variables. Components look
// variables up by well-known name; the registry never removes a variable
// once registered.
type Registry struct {
	mu   sync.RWMutex
	vars map[string]*Var
}

func NewRegistry() *Registry {
	return &Registry{vars: make(map[string]*Var)}
}

// Register creates a variable with the given default and returns it.
// Registering the same name twice is a configuration error.
func (r *Registry) Register(name string, def int64, help string) (*Var, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vars[name]; ok {
		return nil, duplicateVarError{name: name}
	}
	v := &Var{name: name, help: help, def: def, value: def}
	r.vars[name] = v
	return v, nil
}

// MustRegister is Register for startup paths where a duplicate name means
// the process is misassembled.
func (r *Registry) MustRegister(name string, def int64, help string) *Var {
	v, err := r.Register(name, def, help)
	if err != nil {
		panic(err)
	}
	return v
}

// Lookup returns the variable registered under name, if any.
func (r *Registry) Lookup(name string) (*Var, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vars[name]
	return v, ok
}

// List returns snapshots of all registered variables, sorted by name.
func (r *Registry) List() []Snapshot {
	r.mu.RLock()
	vars := make([]*Var, 0, len(r.vars))
	for _, v := range r.vars {
		vars = append(vars, v)
	}
	r.mu.RUnlock()

	out := make([]Snapshot, 0, len(vars))
	for _, v := range vars {
		out = append(out, Snapshot{Name: v.Name(), Value: v.Int(), Default: v.Default(), Help: v.Help()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
