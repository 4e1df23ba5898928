package game

import (
	"github.com/gwarsgo/gwars/internal/core/ecs"
	"github.com/gwarsgo/gwars/internal/vecmath"
)

// EnemyKilled is fired when a projectile hits a UFO. Enemy is still alive
// (queued for removal) while handlers run.
type EnemyKilled struct {
	Enemy ecs.Entity
	Score uint64
}

type ShotFired struct {
	Position vecmath.Vec2
}

// PlayerDied is fired once, when a UFO reaches the ship.
type PlayerDied struct {
	Score uint64
}

type WaveStarted struct {
	Level uint64
	Size  int
}
