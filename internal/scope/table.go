// Package scope implements the Variable / Scope Table (spec.md §4.6, C6):
// lexical scopes with let/const/var binding semantics. Grounded on the
// skeletal VariableTable in original_source/rust/core/store/variable.rs,
// generalized to the full hoisting/const-reassignment contract spec.md
// requires (the kept Rust file is an earlier, simpler version with no
// binding-kind distinction).
package scope

import (
	"errors"
	"fmt"

	"github.com/devaloop-labs/devalang-sub003/internal/core"
)

// Binding is the kind a name was bound with.
type Binding int

const (
	BindLet Binding = iota
	BindVar
	BindConst
)

// ErrConstReassignment is returned by Update when the target name is
// bound as const and already has a value.
var ErrConstReassignment = errors.New("scope: cannot reassign const binding")

// ErrUnknownIdentifier is returned by Get when no scope in the chain binds name.
var ErrUnknownIdentifier = errors.New("scope: unknown identifier")

// BoundValue pairs a Value with the binding kind it was declared with.
type BoundValue struct {
	Value   core.Value
	Binding Binding
}

// Table is a lexical scope: a map of bindings plus an optional parent.
// Lookup walks the parent chain (invariant a); var writes hoist to the
// nearest ancestor that already binds the name (invariant b); const
// writes fail after the first bind (invariant c); let is block-local and
// reassignable only within its own scope (invariant d); shadowing in a
// child scope is always permitted (invariant e).
type Table struct {
	variables map[string]*BoundValue
	parent    *Table
}

// New creates an empty root scope.
func New() *Table {
	return &Table{variables: make(map[string]*BoundValue)}
}

// WithParent creates a new child scope whose lookups fall through to parent.
func WithParent(parent *Table) *Table {
	return &Table{variables: make(map[string]*BoundValue), parent: parent}
}

// Set binds name in the current scope with let semantics (default binding).
func (t *Table) Set(name string, value core.Value) {
	t.SetWithType(name, value, BindLet)
}

// SetWithType binds name in the current scope with the given binding kind.
// This always creates or overwrites a binding local to t, bypassing the
// hoisting rule Update applies for var writes.
func (t *Table) SetWithType(name string, value core.Value, binding Binding) {
	t.variables[name] = &BoundValue{Value: value, Binding: binding}
}

// Update writes value to name, applying binding semantics:
//   - const: fails with ErrConstReassignment if the nearest binding of
//     the name in the chain is const.
//   - var: hoists — if name exists in any ancestor scope, the write targets
//     that ancestor's binding; otherwise a new var binding is created here.
//   - let (or any other existing binding kind found by walking the chain):
//     the write targets whichever scope already holds the name; if none
//     does, a new let binding is created in the current scope.
func (t *Table) Update(name string, value core.Value) error {
	if owner := t.findOwner(name); owner != nil {
		existing := owner.variables[name]
		if existing.Binding == BindConst {
			return fmt.Errorf("%w: %s", ErrConstReassignment, name)
		}
		existing.Value = value
		return nil
	}
	// Unbound anywhere: create a new let binding in the current scope,
	// mirroring JS-style implicit-global-like leniency is explicitly NOT
	// desired here — callers that need strict unknown-identifier errors
	// (e.g. Tempo/Bank resolution) should use Get first.
	t.Set(name, value)
	return nil
}

// findOwner walks the scope chain and returns the *Table that directly
// holds a binding for name, or nil if none does.
func (t *Table) findOwner(name string) *Table {
	for s := t; s != nil; s = s.parent {
		if _, ok := s.variables[name]; ok {
			return s
		}
	}
	return nil
}

// Get resolves name by walking the parent chain, per invariant (a).
func (t *Table) Get(name string) (core.Value, error) {
	if owner := t.findOwner(name); owner != nil {
		return owner.variables[name].Value, nil
	}
	return core.Null(), fmt.Errorf("%w: %s", ErrUnknownIdentifier, name)
}

// GetBinding reports the binding kind name was declared with, if bound.
func (t *Table) GetBinding(name string) (Binding, bool) {
	if owner := t.findOwner(name); owner != nil {
		return owner.variables[name].Binding, true
	}
	return BindLet, false
}

// Resolve follows an identifier chain (x -> y -> 100) up to maxDepth hops,
// guarding against pathological cycles per spec.md §4.7's depth cap (32).
func (t *Table) Resolve(name string, maxDepth int) (core.Value, error) {
	v, err := t.Get(name)
	if err != nil {
		return core.Null(), err
	}
	for depth := 0; v.Kind == core.ValueIdentifier && depth < maxDepth; depth++ {
		next, err := t.Get(v.Str)
		if err != nil {
			return core.Null(), err
		}
		v = next
	}
	if v.Kind == core.ValueIdentifier {
		return core.Null(), fmt.Errorf("scope: identifier resolution exceeded depth %d for %q", maxDepth, name)
	}
	return v, nil
}
