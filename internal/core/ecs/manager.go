package ecs

import (
	"fmt"

	"github.com/gwarsgo/gwars/internal/core/event"
)

// Manager owns every entity and component. Components are indexed twice,
// by entity and by type, and both indexes change together on every
// mutation. Not safe for concurrent use.
//
// Precondition violations (unknown entity, missing or duplicate component)
// are programming errors and panic.
type Manager struct {
	entities map[EntityID]map[ComponentTypeID]holder
	pools    map[ComponentTypeID]*Pool
	nextID   EntityID
	events   *event.Dispatcher
}

// NewManager creates an empty manager. Lifecycle notifications go through d;
// a nil dispatcher disables them.
func NewManager(d *event.Dispatcher) *Manager {
	return &Manager{
		entities: make(map[EntityID]map[ComponentTypeID]holder, 256),
		pools:    make(map[ComponentTypeID]*Pool, 16),
		nextID:   1,
		events:   d,
	}
}

// Dispatcher returns the dispatcher notifications are fired through.
func (m *Manager) Dispatcher() *event.Dispatcher { return m.events }

// CreateEntity registers a fresh entity with no components. Ids increase
// monotonically and are never reused by this manager, Clear included.
func (m *Manager) CreateEntity() EntityID {
	id := m.nextID
	m.nextID++
	m.entities[id] = make(map[ComponentTypeID]holder, 4)
	return id
}

// Entity wraps id in a handle bound to m.
func (m *Manager) Entity(id EntityID) Entity {
	return Entity{id: id, manager: m}
}

// Alive reports whether id is currently registered.
func (m *Manager) Alive(id EntityID) bool {
	_, ok := m.entities[id]
	return ok
}

// EntityCount returns the number of live entities.
func (m *Manager) EntityCount() int { return len(m.entities) }

// ComponentCount returns the number of live components across all types.
func (m *Manager) ComponentCount() int {
	n := 0
	for _, p := range m.pools {
		n += p.Len()
	}
	return n
}

// RemoveEntity removes and destroys every component of id, then forgets id.
// Each component gets its removal notification first.
func (m *Manager) RemoveEntity(id EntityID) {
	components := m.mustEntity(id, "RemoveEntity")

	types := make([]ComponentTypeID, 0, len(components))
	for t := range components {
		types = append(types, t)
	}
	for _, t := range types {
		// A removal handler may already have detached this one, or
		// this call may be nested inside that holder's own removal.
		if _, ok := components[t]; ok {
			m.removeHolder(id, t)
		}
	}
	delete(m.entities, id)
}

// Clear removes every entity. Per-type pools survive (empty) so views bound
// before the call stay valid.
func (m *Manager) Clear() {
	for len(m.entities) > 0 {
		ids := make([]EntityID, 0, len(m.entities))
		for id := range m.entities {
			ids = append(ids, id)
		}
		for _, id := range ids {
			if m.Alive(id) {
				m.RemoveEntity(id)
			}
		}
	}
}

func (m *Manager) mustEntity(id EntityID, op string) map[ComponentTypeID]holder {
	components, ok := m.entities[id]
	if !ok {
		panic(fmt.Sprintf("ecs: %s on unknown entity %d", op, id))
	}
	return components
}

func (m *Manager) pool(t ComponentTypeID) *Pool {
	p, ok := m.pools[t]
	if !ok {
		p = newPool(t)
		m.pools[t] = p
	}
	return p
}

func (m *Manager) addHolder(id EntityID, h holder) {
	components := m.mustEntity(id, "CreateComponent")
	t := h.typeID()
	if _, dup := components[t]; dup {
		panic(fmt.Sprintf("ecs: entity %d already has %s", id, TypeName(t)))
	}
	components[t] = h
	m.pool(t).insert(id, h)
}

func (m *Manager) removeHolder(id EntityID, t ComponentTypeID) {
	components := m.mustEntity(id, "RemoveComponent")
	h, ok := components[t]
	if !ok {
		panic(fmt.Sprintf("ecs: entity %d has no %s", id, TypeName(t)))
	}

	// A removal further up the stack already owns h.
	if !h.beginRemove() {
		return
	}
	h.notifyRemoved(m.events, m.Entity(id))

	// The handler may have removed the whole entity meanwhile; components
	// is still the map the holder was filed in.
	if components[t] == h {
		delete(components, t)
	}
	if p := m.pools[t]; p != nil {
		if ph, ok := p.get(id); ok && ph == h {
			p.remove(id)
		}
	}
	h.destroy()
}

func (m *Manager) lookup(id EntityID, t ComponentTypeID) (holder, bool) {
	components, ok := m.entities[id]
	if !ok {
		return nil, false
	}
	h, ok := components[t]
	return h, ok
}

// ── Typed access ─────────────────────────────────────────────────────

// CreateComponent stores a copy of value as id's T and returns a pointer to
// the stored copy. ComponentConstructed[T] is delivered before it returns.
func CreateComponent[T any](m *Manager, id EntityID, value T) *T {
	c := new(T)
	*c = value
	m.addHolder(id, &box[T]{id: TypeIDOf[T](), v: c})
	event.Fire(m.events, ComponentConstructed[T]{Entity: m.Entity(id), Component: c})
	return c
}

// RemoveComponent fires ComponentRemoved[T], then destroys id's T.
func RemoveComponent[T any](m *Manager, id EntityID) {
	m.removeHolder(id, TypeIDOf[T]())
}

// GetComponent returns id's T. Panics if the entity or component is missing.
func GetComponent[T any](m *Manager, id EntityID) *T {
	c, ok := TryComponent[T](m, id)
	if !ok {
		m.mustEntity(id, "GetComponent")
		panic(fmt.Sprintf("ecs: entity %d has no %s", id, TypeName(TypeIDOf[T]())))
	}
	return c
}

// TryComponent returns id's T if present.
func TryComponent[T any](m *Manager, id EntityID) (*T, bool) {
	h, ok := m.lookup(id, TypeIDOf[T]())
	if !ok {
		return nil, false
	}
	return h.value().(*T), true
}

// HasComponent reports whether id holds a T. Unknown entities hold nothing.
func HasComponent[T any](m *Manager, id EntityID) bool {
	_, ok := m.lookup(id, TypeIDOf[T]())
	return ok
}

// EntityMap returns the live entity index for T, creating an empty one if
// no entity has held a T yet.
func EntityMap[T any](m *Manager) *Pool {
	return m.pool(TypeIDOf[T]())
}
