// Package game is the arcade layer: a ship chasing off waves of UFOs, built
// from scene components and native scripts.
package game

import (
	"fmt"

	"github.com/gwarsgo/gwars/internal/core/ecs"
)

func init() {
	ecs.Register[Kind]()
	ecs.Register[Score]()
	ecs.Register[EnemyLevel]()
}

type EntityType int

const (
	Player EntityType = iota
	Projectile
	Ufo
)

func (t EntityType) String() string {
	switch t {
	case Player:
		return "Player"
	case Projectile:
		return "Projectile"
	case Ufo:
		return "Ufo"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// Kind tags an entity with its role in collision handling.
type Kind struct {
	Type EntityType
}

type Score struct {
	Value uint64
}

type EnemyLevel struct {
	Level uint64
}
