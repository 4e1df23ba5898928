// Package typeid hands out small, stable integer ids for Go types.
//
// Ids are allocated monotonically the first time a type is seen and never
// change for the lifetime of the registry. Packages that want deterministic
// ids register their types eagerly from init.
package typeid

import (
	"reflect"
	"sync"
)

// ID identifies one registered type. Zero is never assigned.
type ID uint32

// Invalid is the zero id, meaning "no type".
const Invalid ID = 0

// Registry maps reflect types to ids. Safe for concurrent use; the lock is
// only contended during registration.
type Registry struct {
	mu    sync.RWMutex
	ids   map[reflect.Type]ID
	types []reflect.Type // index = id-1
}

func NewRegistry() *Registry {
	return &Registry{
		ids:   make(map[reflect.Type]ID, 32),
		types: make([]reflect.Type, 0, 32),
	}
}

// Of returns the id for t, allocating one on first use.
func (r *Registry) Of(t reflect.Type) ID {
	r.mu.RLock()
	id, ok := r.ids[t]
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[t]; ok {
		return id
	}
	r.types = append(r.types, t)
	id = ID(len(r.types))
	r.ids[t] = id
	return id
}

// Lookup returns the id for t without allocating.
func (r *Registry) Lookup(t reflect.Type) (ID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.ids[t]
	return id, ok
}

// Name returns the Go type name registered under id, or "" if unknown.
func (r *Registry) Name(id ID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id == Invalid || int(id) > len(r.types) {
		return ""
	}
	return r.types[id-1].String()
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// For returns the id of T in r.
func For[T any](r *Registry) ID {
	return r.Of(reflect.TypeFor[T]())
}
