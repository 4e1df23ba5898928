// Package input defines the input events fired through the dispatcher and
// the terminal key bindings that produce them.
package input

import "fmt"

// Key is a game-level key, independent of the terminal's key codes.
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyFire
	KeyQuit
	KeyContinue
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyFire:
		return "Fire"
	case KeyQuit:
		return "Quit"
	case KeyContinue:
		return "Continue"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Movement reports whether k steers the ship.
func (k Key) Movement() bool {
	return k >= KeyUp && k <= KeyRight
}

type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
)

type KeyPressed struct {
	Key Key
}

type KeyReleased struct {
	Key Key
}

// MouseMoved carries the pointer position in normalized device coordinates,
// x and y in [-1, 1] with y pointing up.
type MouseMoved struct {
	X, Y float64
}

type MouseButtonPressed struct {
	Button MouseButton
}

type MouseButtonReleased struct {
	Button MouseButton
}
