package event

import "reflect"

type registration[T any] struct {
	handle Handle
	fn     func(T)
}

// Sink is the ordered handler list for one event type.
type Sink[T any] struct {
	owner    *Dispatcher
	handlers []registration[T]
}

// Add appends fn and returns its handle. Adding the same function twice
// yields two independent registrations with distinct handles.
func (s *Sink[T]) Add(fn func(T)) Handle {
	if fn == nil {
		panic("event: nil handler for " + TypeName[T]())
	}
	h := s.owner.issue()
	s.handlers = append(s.handlers, registration[T]{handle: h, fn: fn})
	return h
}

// Remove drops the registration for h. Unknown handles are ignored.
func (s *Sink[T]) Remove(h Handle) bool {
	for i, r := range s.handlers {
		if r.handle != h {
			continue
		}
		// Copy-on-write: a Fire in progress keeps iterating its own slice.
		next := make([]registration[T], 0, len(s.handlers)-1)
		next = append(next, s.handlers[:i]...)
		next = append(next, s.handlers[i+1:]...)
		s.handlers = next
		return true
	}
	return false
}

// Fire invokes every handler registered at the moment of the call, in
// registration order. Handlers may fire further events or change the
// subscription list; changes apply from the next Fire.
func (s *Sink[T]) Fire(ev T) {
	for _, r := range s.handlers {
		r.fn(ev)
	}
}

// Len returns the number of registered handlers.
func (s *Sink[T]) Len() int {
	return len(s.handlers)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
