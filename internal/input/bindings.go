package input

import (
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// State is the game phase a binding is valid in.
type State int

const (
	StatePlaying State = iota
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Chord is a terminal key as tcell reports it. Rune is only meaningful when
// Key is tcell.KeyRune and is stored lower-cased.
type Chord struct {
	Key  tcell.Key
	Rune rune
}

// ChordOf normalizes a tcell key event.
func ChordOf(ev *tcell.EventKey) Chord {
	if ev.Key() != tcell.KeyRune {
		return Chord{Key: ev.Key()}
	}
	return RuneChord(ev.Rune())
}

func RuneChord(r rune) Chord {
	return Chord{Key: tcell.KeyRune, Rune: unicode.ToLower(r)}
}

type binding struct {
	key           Key
	allowedStates map[State]bool
}

// Bindings maps terminal chords to game keys with state-based filtering.
type Bindings struct {
	bindings map[Chord]*binding
	log      *zap.Logger
}

func NewBindings(log *zap.Logger) *Bindings {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bindings{
		bindings: make(map[Chord]*binding),
		log:      log,
	}
}

// Bind maps chord to key, restricted to the given states. A later Bind of
// the same chord replaces the earlier one.
func (b *Bindings) Bind(chord Chord, key Key, states ...State) {
	allowed := make(map[State]bool, len(states))
	for _, s := range states {
		allowed[s] = true
	}
	b.bindings[chord] = &binding{
		key:           key,
		allowedStates: allowed,
	}
}

// Resolve returns the game key bound to chord. Unbound chords resolve to
// KeyUnknown without error; a bound chord used outside its states is an error.
func (b *Bindings) Resolve(chord Chord, state State) (Key, error) {
	entry, ok := b.bindings[chord]
	if !ok {
		b.log.Debug("unbound key", zap.Int16("key", int16(chord.Key)), zap.String("rune", string(chord.Rune)))
		return KeyUnknown, nil
	}
	if !entry.allowedStates[state] {
		b.log.Debug("key not allowed in state",
			zap.Stringer("key", entry.key),
			zap.Stringer("state", state),
		)
		return KeyUnknown, fmt.Errorf("key %s not allowed in state %s", entry.key, state)
	}
	return entry.key, nil
}

func (b *Bindings) Len() int { return len(b.bindings) }

// DefaultBindings binds arrows and WASD to movement, space to fire, Esc,
// Ctrl-C and q to quit, and Enter to continue after game over.
func DefaultBindings(log *zap.Logger) *Bindings {
	b := NewBindings(log)
	for chord, key := range map[Chord]Key{
		{Key: tcell.KeyUp}:    KeyUp,
		{Key: tcell.KeyDown}:  KeyDown,
		{Key: tcell.KeyLeft}:  KeyLeft,
		{Key: tcell.KeyRight}: KeyRight,
		RuneChord('w'):        KeyUp,
		RuneChord('s'):        KeyDown,
		RuneChord('a'):        KeyLeft,
		RuneChord('d'):        KeyRight,
		RuneChord(' '):        KeyFire,
	} {
		b.Bind(chord, key, StatePlaying)
	}
	b.Bind(Chord{Key: tcell.KeyEscape}, KeyQuit, StatePlaying, StateGameOver)
	b.Bind(Chord{Key: tcell.KeyCtrlC}, KeyQuit, StatePlaying, StateGameOver)
	b.Bind(RuneChord('q'), KeyQuit, StatePlaying, StateGameOver)
	b.Bind(Chord{Key: tcell.KeyEnter}, KeyContinue, StateGameOver)
	return b
}
