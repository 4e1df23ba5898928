package platform

import (
	"slices"
	"time"

	"github.com/gwarsgo/gwars/internal/input"
)

// KeyLatch turns the press-only key stream of a terminal into press and
// release pairs. A key counts as held until hold passes without a repeat.
type KeyLatch struct {
	hold time.Duration
	seen map[input.Key]time.Time
}

func NewKeyLatch(hold time.Duration) *KeyLatch {
	return &KeyLatch{hold: hold, seen: make(map[input.Key]time.Time, 8)}
}

// Press records k at now and reports whether it was not already held.
func (l *KeyLatch) Press(k input.Key, now time.Time) bool {
	_, held := l.seen[k]
	l.seen[k] = now
	return !held
}

// Expire releases every key not repeated within the hold time, in key order.
func (l *KeyLatch) Expire(now time.Time) []input.Key {
	var out []input.Key
	for k, t := range l.seen {
		if now.Sub(t) >= l.hold {
			out = append(out, k)
		}
	}
	for _, k := range out {
		delete(l.seen, k)
	}
	slices.Sort(out)
	return out
}

// ReleaseAll releases every held key, in key order.
func (l *KeyLatch) ReleaseAll() []input.Key {
	out := make([]input.Key, 0, len(l.seen))
	for k := range l.seen {
		out = append(out, k)
	}
	clear(l.seen)
	slices.Sort(out)
	return out
}

func (l *KeyLatch) Held(k input.Key) bool {
	_, ok := l.seen[k]
	return ok
}
