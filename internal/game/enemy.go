package game

import (
	"math"
	"time"

	"github.com/gwarsgo/gwars/internal/core/ecs"
	"github.com/gwarsgo/gwars/internal/core/event"
	"github.com/gwarsgo/gwars/internal/render"
	"github.com/gwarsgo/gwars/internal/scene"
	"github.com/gwarsgo/gwars/internal/vecmath"
	"go.uber.org/zap"
)

// EnemySpawner launches a new wave once every UFO of the previous one is
// dead. Wave size, UFO speed and kill score all grow with the level.
type EnemySpawner struct {
	env    *env
	player ecs.Entity
	subs   scene.Subscriptions

	enemiesLeft int
	level       uint64
	wave        uint64
}

func NewEnemySpawner(e *env, player ecs.Entity) *EnemySpawner {
	return &EnemySpawner{env: e, player: player, level: max(e.tuning.Wave.StartLevel, 1)}
}

func (es *EnemySpawner) OnAttach(_ ecs.Entity, d *event.Dispatcher) {
	scene.On(&es.subs, d, es.onEnemyKilled)
}

func (es *EnemySpawner) OnDetach(ecs.Entity, *event.Dispatcher) {
	es.subs.Cancel()
}

func (es *EnemySpawner) OnUpdate(time.Duration) {
	if es.enemiesLeft > 0 || !es.player.Valid() {
		return
	}
	es.spawnWave()
}

// Level is the level the next wave will spawn at.
func (es *EnemySpawner) Level() uint64 { return es.level }

// Wave is the level of the last spawned wave, zero before the first.
func (es *EnemySpawner) Wave() uint64 { return es.wave }

func (es *EnemySpawner) EnemiesLeft() int { return es.enemiesLeft }

func (es *EnemySpawner) onEnemyKilled(EnemyKilled) {
	es.enemiesLeft--
}

func (es *EnemySpawner) spawnWave() {
	size := es.env.difficulty.WaveSize(es.level)
	speed := es.env.difficulty.UfoSpeed(es.level)
	center := ecs.Get[scene.Transform](es.player).Translation

	for range size {
		es.spawn(center, speed)
	}
	es.enemiesLeft = size
	es.wave = es.level
	es.env.log.Debug("wave spawned",
		zap.Uint64("level", es.level),
		zap.Int("size", size),
		zap.Float64("speed", speed))
	event.Fire(es.env.scene.Dispatcher(), WaveStarted{Level: es.level, Size: size})
	es.level++
}

// spawn places one UFO on the ring between the safe and spawn radius around
// center.
func (es *EnemySpawner) spawn(center vecmath.Vec2, speed float64) {
	tuning := &es.env.tuning.Ufo
	wave := &es.env.tuning.Wave
	rng := es.env.rng

	angle := rng.Float64() * 2 * math.Pi
	dist := wave.SafeRadius + rng.Float64()*(wave.SpawnRadius-wave.SafeRadius)
	pos := center.Add(vecmath.V2(math.Cos(angle), math.Sin(angle)).Scale(dist))

	ufo := es.env.scene.CreateEntity()
	ecs.Add(ufo, scene.Transform{Translation: pos, Scale: tuning.Scale})
	ecs.Add(ufo, Kind{Type: Ufo})
	ecs.Add(ufo, EnemyLevel{Level: es.level})
	ecs.Add(ufo, scene.Polygon{Shape: es.env.models.Ufo})
	ecs.Add(ufo, scene.NewPhysics(vecmath.Vec2{}))
	ecs.Add(ufo, scene.NewBoundingSphere(tuning.Bounds.Radius, tuning.Bounds.Center))
	ecs.Add(ufo, scene.ParticleEmitter{
		System: render.NewParticleSystem(tuning.TrailPool, es.env.models.Particle, rng),
	})
	ecs.Add(ufo, scene.Script{Behavior: NewEnemyMovement(es.env, es.player, speed)})
}

// EnemyMovement flies its UFO straight at the player.
type EnemyMovement struct {
	env    *env
	entity ecs.Entity
	player ecs.Entity
	speed  float64
}

func NewEnemyMovement(e *env, player ecs.Entity, speed float64) *EnemyMovement {
	return &EnemyMovement{env: e, player: player, speed: speed}
}

func (em *EnemyMovement) OnAttach(e ecs.Entity, _ *event.Dispatcher) { em.entity = e }
func (em *EnemyMovement) OnDetach(ecs.Entity, *event.Dispatcher)    {}

func (em *EnemyMovement) OnUpdate(time.Duration) {
	if !em.player.Valid() {
		return
	}
	t := ecs.Get[scene.Transform](em.entity)
	p := ecs.Get[scene.Physics](em.entity)

	dir := ecs.Get[scene.Transform](em.player).Translation.Sub(t.Translation)
	if dir.LengthSquared() == 0 {
		p.Velocity = vecmath.Vec2{}
		return
	}
	dir = dir.Normalize()
	p.Velocity = dir.Scale(em.speed)
	t.Rotation = HeadingOf(dir)

	if pe, ok := ecs.TryGet[scene.ParticleEmitter](em.entity); ok && pe.System != nil {
		m := t.Matrix()
		v := dir.Scale(-trailSpeed / 2)
		for _, reactor := range em.env.tuning.Ufo.Reactors {
			pe.System.Emit(em.env.tuning.Ufo.Trail.Specs(m.Apply(reactor), v))
		}
	}
}
