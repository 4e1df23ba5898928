package game

import (
	"time"

	"github.com/gwarsgo/gwars/internal/core/ecs"
	"github.com/gwarsgo/gwars/internal/core/event"
)

// ProjectileLifetime removes its projectile once the time to live runs out.
type ProjectileLifetime struct {
	env       *env
	entity    ecs.Entity
	remaining time.Duration
}

func NewProjectileLifetime(e *env, ttl time.Duration) *ProjectileLifetime {
	return &ProjectileLifetime{env: e, remaining: ttl}
}

func (pl *ProjectileLifetime) OnAttach(e ecs.Entity, _ *event.Dispatcher) { pl.entity = e }
func (pl *ProjectileLifetime) OnDetach(ecs.Entity, *event.Dispatcher)    {}

func (pl *ProjectileLifetime) OnUpdate(dt time.Duration) {
	pl.remaining -= dt
	if pl.remaining <= 0 {
		pl.env.scene.SubmitToRemove(pl.entity)
	}
}
