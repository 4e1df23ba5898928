package scene

import (
	"time"

	"github.com/gwarsgo/gwars/internal/core/ecs"
	"github.com/gwarsgo/gwars/internal/core/event"
)

// Behavior is the capability a Script component carries.
type Behavior interface {
	// OnAttach runs before the Script construction returns. Subscribe to
	// events here.
	OnAttach(e ecs.Entity, d *event.Dispatcher)
	// OnDetach runs while the Script is still attached. Unsubscribe here.
	OnDetach(e ecs.Entity, d *event.Dispatcher)
	OnUpdate(dt time.Duration)
}

// Releaser is implemented by behaviors holding resources beyond their
// subscriptions. Release is called once, after OnDetach.
type Releaser interface {
	Release()
}

// Subscriptions collects dispatcher handles so a behavior can drop all of
// them on detach.
type Subscriptions struct {
	cancel []func()
}

// On subscribes fn to events of type T and remembers the handle in subs.
func On[T any](subs *Subscriptions, d *event.Dispatcher, fn func(T)) {
	h := event.Subscribe(d, fn)
	subs.cancel = append(subs.cancel, func() { event.Unsubscribe[T](d, h) })
}

// Cancel drops every subscription made through On.
func (s *Subscriptions) Cancel() {
	for _, c := range s.cancel {
		c()
	}
	s.cancel = nil
}

func (s *Subscriptions) Len() int { return len(s.cancel) }
