package ecs

import (
	"github.com/gwarsgo/gwars/internal/core/event"
	"github.com/gwarsgo/gwars/internal/core/typeid"
)

// ComponentTypeID identifies a component type for the lifetime of the process.
type ComponentTypeID = typeid.ID

// InvalidComponentTypeID is never assigned to a type.
const InvalidComponentTypeID = typeid.Invalid

var componentTypes = typeid.NewRegistry()

// Register assigns T its component type id now instead of on first use.
// Packages defining components call it from init so ids do not depend on
// which code path touches a type first.
func Register[T any]() ComponentTypeID {
	return typeid.For[T](componentTypes)
}

// TypeIDOf returns the component type id of T, allocating it on first use.
func TypeIDOf[T any]() ComponentTypeID {
	return typeid.For[T](componentTypes)
}

// TypeName returns the Go type name behind id, for diagnostics.
func TypeName(id ComponentTypeID) string {
	return componentTypes.Name(id)
}

// Destroyer is implemented by components that own resources. Destroy is
// called exactly once, after the removal notification has been delivered.
type Destroyer interface {
	Destroy()
}

// ComponentConstructed is fired after a T is attached to an entity, before
// the attaching call returns.
type ComponentConstructed[T any] struct {
	Entity    Entity
	Component *T
}

// ComponentRemoved is fired while the T is still attached, right before it
// is unindexed and destroyed.
type ComponentRemoved[T any] struct {
	Entity    Entity
	Component *T
}

// holder is the type-erased box the manager stores. It knows its type id,
// how to announce its own removal and how to release itself.
type holder interface {
	typeID() ComponentTypeID
	value() any
	// beginRemove marks the holder as leaving. It reports false when a
	// removal further up the stack already owns it.
	beginRemove() bool
	notifyRemoved(d *event.Dispatcher, e Entity)
	destroy()
}

type box[T any] struct {
	id       ComponentTypeID
	v        *T
	removing bool
}

func (b *box[T]) typeID() ComponentTypeID { return b.id }
func (b *box[T]) value() any              { return b.v }

func (b *box[T]) beginRemove() bool {
	if b.removing {
		return false
	}
	b.removing = true
	return true
}

func (b *box[T]) notifyRemoved(d *event.Dispatcher, e Entity) {
	event.Fire(d, ComponentRemoved[T]{Entity: e, Component: b.v})
}

func (b *box[T]) destroy() {
	if d, ok := any(b.v).(Destroyer); ok {
		d.Destroy()
	}
	b.v = nil
}
