// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import "nickandperla.net/octcalc/internal/calcerr"

// Env is one frame of a lexical scope chain. A frame owns its bindings and
// only reads from its parent, so ancestors are never mutated and can be
// shared by any number of children.
type Env struct {
	vars   map[string]int64
	parent *Env
}

// NewEnv creates a root frame with no parent. Function calls run in a root
// frame holding only their parameters.
func NewEnv() *Env {
	return &Env{vars: make(map[string]int64)}
}

// NewEnclosedEnv creates a child frame of outer.
func NewEnclosedEnv(outer *Env) *Env {
	return &Env{vars: make(map[string]int64), parent: outer}
}

// Lookup walks the chain outward from e.
func (e *Env) Lookup(name string) (int64, error) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, nil
		}
	}
	return 0, &calcerr.VariableNotFoundError{Name: name}
}

// Bind sets name in this frame only.
func (e *Env) Bind(name string, value int64) {
	e.vars[name] = value
}
