package ecs

import "iter"

// View walks every entity currently holding a T. It is bound to the live
// pool, not a snapshot: entities that gain a T after the view is built show
// up on the next walk. Adding or removing T components while a walk is in
// progress is undefined; collect targets and act after the loop.
type View[T any] struct {
	pool    *Pool
	manager *Manager
}

// ViewOf binds a view of T to m.
func ViewOf[T any](m *Manager) View[T] {
	return View[T]{pool: EntityMap[T](m), manager: m}
}

// Len returns the number of entities the view currently covers.
func (v View[T]) Len() int { return v.pool.Len() }

// Begin returns an iterator at the first position. Calling Begin again
// restarts the walk.
func (v View[T]) Begin() Iterator[T] {
	return Iterator[T]{view: v}
}

// All adapts the view for range-over-func:
//
//	for e, t := range ecs.ViewOf[Transform](m).All() { ... }
func (v View[T]) All() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		for it := v.Begin(); it.Valid(); it.Next() {
			if !yield(it.Entity(), it.Component()) {
				return
			}
		}
	}
}

// Iterator is a position within a View.
type Iterator[T any] struct {
	view View[T]
	pos  int
}

// Valid reports whether the iterator points at an element.
func (it *Iterator[T]) Valid() bool { return it.pos < it.view.pool.Len() }

// Next advances to the following element.
func (it *Iterator[T]) Next() { it.pos++ }

// Entity returns the handle at the current position.
func (it *Iterator[T]) Entity() Entity {
	id, _ := it.view.pool.at(it.pos)
	return it.view.manager.Entity(id)
}

// Component returns the T at the current position.
func (it *Iterator[T]) Component() *T {
	_, h := it.view.pool.at(it.pos)
	return h.value().(*T)
}

// Equal reports whether both iterators sit at the same pool position.
// Exhausted iterators over the same pool are equal.
func (it *Iterator[T]) Equal(other Iterator[T]) bool {
	if it.view.pool != other.view.pool {
		return false
	}
	return it.clamped() == other.clamped()
}

func (it *Iterator[T]) clamped() int {
	if n := it.view.pool.Len(); it.pos > n {
		return n
	}
	return it.pos
}

// Each2 calls fn for every entity holding both an A and a B. It walks the
// smaller pool and probes the other.
func Each2[A, B any](m *Manager, fn func(Entity, *A, *B)) {
	pa, pb := EntityMap[A](m), EntityMap[B](m)
	if pa.Len() <= pb.Len() {
		for i := 0; i < pa.Len(); i++ {
			id, ha := pa.at(i)
			if hb, ok := pb.get(id); ok {
				fn(m.Entity(id), ha.value().(*A), hb.value().(*B))
			}
		}
		return
	}
	for i := 0; i < pb.Len(); i++ {
		id, hb := pb.at(i)
		if ha, ok := pa.get(id); ok {
			fn(m.Entity(id), ha.value().(*A), hb.value().(*B))
		}
	}
}
