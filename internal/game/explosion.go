package game

import (
	"math"
	"time"

	"github.com/gwarsgo/gwars/internal/core/ecs"
	"github.com/gwarsgo/gwars/internal/core/event"
	"github.com/gwarsgo/gwars/internal/render"
	"github.com/gwarsgo/gwars/internal/scene"
	"github.com/gwarsgo/gwars/internal/vecmath"
)

// Explosion bursts particles where a UFO dies. Its entity carries the
// particle emitter all explosions share.
type Explosion struct {
	env    *env
	entity ecs.Entity
	subs   scene.Subscriptions
}

func NewExplosion(e *env) *Explosion {
	return &Explosion{env: e}
}

func (ex *Explosion) OnAttach(e ecs.Entity, d *event.Dispatcher) {
	ex.entity = e
	scene.On(&ex.subs, d, ex.onEnemyKilled)
}

func (ex *Explosion) OnDetach(ecs.Entity, *event.Dispatcher) {
	ex.subs.Cancel()
}

func (ex *Explosion) OnUpdate(time.Duration) {}

func (ex *Explosion) onEnemyKilled(ev EnemyKilled) {
	t, ok := ecs.TryGet[scene.Transform](ev.Enemy)
	if !ok {
		return
	}
	pe, ok := ecs.TryGet[scene.ParticleEmitter](ex.entity)
	if !ok || pe.System == nil {
		return
	}
	tuning := &ex.env.tuning.Explosion
	for range tuning.Particles {
		angle := ex.env.rng.Float64() * 2 * math.Pi
		v := vecmath.V2(math.Cos(angle), math.Sin(angle)).Scale(tuning.Speed * ex.env.rng.Float64())
		pe.System.Emit(tuning.Spec.Specs(t.Translation, v))
	}
}

func explosionEmitter(e *env) scene.ParticleEmitter {
	return scene.ParticleEmitter{
		System: render.NewParticleSystem(e.tuning.Explosion.Pool, e.models.Particle, e.rng),
	}
}

// ScoreKeeper credits kill scores to the player's Score.
type ScoreKeeper struct {
	player ecs.Entity
	subs   scene.Subscriptions
}

func NewScoreKeeper(player ecs.Entity) *ScoreKeeper {
	return &ScoreKeeper{player: player}
}

func (sk *ScoreKeeper) OnAttach(_ ecs.Entity, d *event.Dispatcher) {
	scene.On(&sk.subs, d, sk.onEnemyKilled)
}

func (sk *ScoreKeeper) OnDetach(ecs.Entity, *event.Dispatcher) {
	sk.subs.Cancel()
}

func (sk *ScoreKeeper) OnUpdate(time.Duration) {}

func (sk *ScoreKeeper) onEnemyKilled(ev EnemyKilled) {
	if s, ok := ecs.TryGet[Score](sk.player); ok {
		s.Value += ev.Score
	}
}
