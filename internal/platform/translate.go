package platform

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gwarsgo/gwars/internal/core/event"
	"github.com/gwarsgo/gwars/internal/input"
	"github.com/gwarsgo/gwars/internal/vecmath"
	"go.uber.org/zap"
)

// Translator converts tcell events into game input events on a queue.
type Translator struct {
	bindings *input.Bindings
	latch    *KeyLatch
	queue    *event.Queue
	toNDC    func(x, y int) (vecmath.Vec2, bool)
	log      *zap.Logger
	buttons  tcell.ButtonMask
}

func NewTranslator(b *input.Bindings, latch *KeyLatch, q *event.Queue, toNDC func(x, y int) (vecmath.Vec2, bool), log *zap.Logger) *Translator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Translator{bindings: b, latch: latch, queue: q, toNDC: toNDC, log: log}
}

// Key resolves ev in state. Held keys (movement, fire) are queued as
// KeyPressed on their first press; the resolved key is returned either way
// so the caller can act on quit and continue.
func (tr *Translator) Key(ev *tcell.EventKey, state input.State, now time.Time) input.Key {
	k, err := tr.bindings.Resolve(input.ChordOf(ev), state)
	if err != nil || k == input.KeyUnknown {
		return input.KeyUnknown
	}
	if k.Movement() || k == input.KeyFire {
		if tr.latch.Press(k, now) {
			event.Enqueue(tr.queue, input.KeyPressed{Key: k})
		}
	}
	return k
}

// Mouse queues pointer motion and button transitions.
func (tr *Translator) Mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	if ndc, ok := tr.toNDC(x, y); ok {
		event.Enqueue(tr.queue, input.MouseMoved{X: ndc.X, Y: ndc.Y})
	}

	buttons := ev.Buttons()
	changed := buttons ^ tr.buttons
	tr.buttons = buttons
	for _, b := range []struct {
		mask   tcell.ButtonMask
		button input.MouseButton
	}{
		{tcell.ButtonPrimary, input.ButtonLeft},
		{tcell.ButtonSecondary, input.ButtonRight},
	} {
		if changed&b.mask == 0 {
			continue
		}
		if buttons&b.mask != 0 {
			event.Enqueue(tr.queue, input.MouseButtonPressed{Button: b.button})
		} else {
			event.Enqueue(tr.queue, input.MouseButtonReleased{Button: b.button})
		}
	}
}

// Tick queues releases for keys whose hold time ran out.
func (tr *Translator) Tick(now time.Time) {
	for _, k := range tr.latch.Expire(now) {
		event.Enqueue(tr.queue, input.KeyReleased{Key: k})
	}
}

// ReleaseAll queues releases for every held key and button.
func (tr *Translator) ReleaseAll() {
	for _, k := range tr.latch.ReleaseAll() {
		event.Enqueue(tr.queue, input.KeyReleased{Key: k})
	}
	if tr.buttons&tcell.ButtonPrimary != 0 {
		event.Enqueue(tr.queue, input.MouseButtonReleased{Button: input.ButtonLeft})
	}
	if tr.buttons&tcell.ButtonSecondary != 0 {
		event.Enqueue(tr.queue, input.MouseButtonReleased{Button: input.ButtonRight})
	}
	tr.buttons = tcell.ButtonNone
}
