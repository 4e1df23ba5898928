// Package event implements typed, synchronous publish/subscribe.
//
// Every event type T gets its own Sink[T], created lazily by the Dispatcher
// and kept for the dispatcher's lifetime. Handlers run on the caller's
// goroutine, in registration order.
package event

import (
	"fmt"

	"github.com/gwarsgo/gwars/internal/core/typeid"
)

// eventTypes assigns sink keys. Shared by all dispatchers in the process.
var eventTypes = typeid.NewRegistry()

// Handle identifies a single handler registration. Returned by Add and
// consumed by Remove. The zero Handle is never issued.
type Handle uint64

// Dispatcher owns one sink per event type.
// Not safe for concurrent use; see Queue for cross-goroutine delivery.
type Dispatcher struct {
	sinks      map[typeid.ID]any
	nextHandle Handle
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		sinks: make(map[typeid.ID]any, 16),
	}
}

// SinkOf returns the sink for event type T, creating it on first access.
func SinkOf[T any](d *Dispatcher) *Sink[T] {
	id := typeid.For[T](eventTypes)
	if s, ok := d.sinks[id]; ok {
		return s.(*Sink[T])
	}
	s := &Sink[T]{owner: d}
	d.sinks[id] = s
	return s
}

// SinkCount returns how many event types have been touched on d.
func (d *Dispatcher) SinkCount() int {
	return len(d.sinks)
}

func (d *Dispatcher) issue() Handle {
	d.nextHandle++
	return d.nextHandle
}

// Subscribe registers fn for events of type T.
func Subscribe[T any](d *Dispatcher, fn func(T)) Handle {
	return SinkOf[T](d).Add(fn)
}

// Unsubscribe removes the registration identified by h from T's sink.
func Unsubscribe[T any](d *Dispatcher, h Handle) bool {
	return SinkOf[T](d).Remove(h)
}

// Fire delivers ev to every handler of T. A nil dispatcher drops the event.
func Fire[T any](d *Dispatcher, ev T) {
	if d == nil {
		return
	}
	id, ok := eventTypes.Lookup(typeOf[T]())
	if !ok {
		return // nobody ever asked for this sink
	}
	if s, ok := d.sinks[id]; ok {
		s.(*Sink[T]).Fire(ev)
	}
}

// TypeName returns a readable name for T, used in log fields.
func TypeName[T any]() string {
	return fmt.Sprint(typeOf[T]())
}
