// Package ecs stores components by entity and by type and notifies
// subscribers when components are constructed or removed.
package ecs

import "fmt"

// EntityID is an opaque entity key, unique within one Manager.
type EntityID uint32

// InvalidEntityID is never handed out.
const InvalidEntityID EntityID = 0

// Entity is a lightweight handle pairing an id with its manager. The zero
// value is the invalid entity.
type Entity struct {
	id      EntityID
	manager *Manager
}

func (e Entity) ID() EntityID      { return e.id }
func (e Entity) Manager() *Manager { return e.manager }

// Valid reports whether e refers to an entity that is still alive.
func (e Entity) Valid() bool {
	return e.manager != nil && e.id != InvalidEntityID && e.manager.Alive(e.id)
}

// Destroy removes the entity and all of its components.
func (e Entity) Destroy() {
	e.manager.RemoveEntity(e.id)
}

func (e Entity) String() string {
	return fmt.Sprintf("entity(%d)", e.id)
}

// Add attaches value as e's T.
func Add[T any](e Entity, value T) *T {
	return CreateComponent(e.manager, e.id, value)
}

// Get returns e's T; panics when absent.
func Get[T any](e Entity) *T {
	return GetComponent[T](e.manager, e.id)
}

// TryGet returns e's T if present.
func TryGet[T any](e Entity) (*T, bool) {
	if e.manager == nil {
		return nil, false
	}
	return TryComponent[T](e.manager, e.id)
}

// Has reports whether e holds a T.
func Has[T any](e Entity) bool {
	if e.manager == nil {
		return false
	}
	return HasComponent[T](e.manager, e.id)
}

// Remove detaches and destroys e's T.
func Remove[T any](e Entity) {
	RemoveComponent[T](e.manager, e.id)
}
