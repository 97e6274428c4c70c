// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"sort"
	"sync"

	"nickandperla.net/octcalc/internal/expr"
)

// Function is a registered user-defined function.
type Function struct {
	Name   string
	Params []string
	Body   expr.Expr
}

// Arity returns the number of parameters.
func (f *Function) Arity() int {
	return len(f.Params)
}

// Source renders the function as a DEF statement.
func (f *Function) Source() string {
	return expr.Def{Name: f.Name, Params: f.Params, Body: f.Body}.String()
}

// Registry holds the functions defined during a session. Entries live until
// the session ends or the same name is defined again.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]*Function
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[string]*Function),
	}
}

// Get retrieves a function by name.
func (r *Registry) Get(name string) (*Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.funcs[name]
	return f, ok
}

// Set registers f, replacing any function with the same name.
func (r *Registry) Set(f *Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[f.Name] = f
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
