package event

import "sync"

// Queue is a double-buffered deferred event queue. Events enqueued during
// frame N are delivered by the Flush at the start of frame N+1; events
// enqueued by handlers while a Flush is running wait for the next one.
//
// Enqueue may be called from any goroutine (the terminal input poller does);
// Flush must run on the goroutine that owns the Dispatcher.
type Queue struct {
	mu    sync.Mutex
	front []func(*Dispatcher)
	back  []func(*Dispatcher)
}

func NewQueue() *Queue {
	return &Queue{
		front: make([]func(*Dispatcher), 0, 64),
		back:  make([]func(*Dispatcher), 0, 64),
	}
}

// Enqueue defers ev until the next Flush.
func Enqueue[T any](q *Queue, ev T) {
	q.mu.Lock()
	q.back = append(q.back, func(d *Dispatcher) { Fire(d, ev) })
	q.mu.Unlock()
}

// Flush swaps buffers and fires every pending event through d in enqueue
// order. Returns the number of events delivered.
func (q *Queue) Flush(d *Dispatcher) int {
	q.mu.Lock()
	q.front, q.back = q.back, q.front[:0]
	pending := q.front
	q.mu.Unlock()

	for i, deliver := range pending {
		deliver(d)
		pending[i] = nil
	}
	return len(pending)
}

// Pending returns the number of events waiting for the next Flush.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.back)
}
