package game

import (
	"math/rand"
	"time"

	"github.com/gwarsgo/gwars/internal/core/ecs"
	"github.com/gwarsgo/gwars/internal/core/event"
	"github.com/gwarsgo/gwars/internal/data"
	"github.com/gwarsgo/gwars/internal/render"
	"github.com/gwarsgo/gwars/internal/scene"
	"github.com/gwarsgo/gwars/internal/scripting"
	"github.com/gwarsgo/gwars/internal/vecmath"
	"go.uber.org/zap"
)

// Difficulty supplies the level curves. *scripting.Engine implements it.
type Difficulty interface {
	UfoSpeed(level uint64) float64
	WaveSize(level uint64) int
	KillScore(level uint64) uint64
}

// builtinDifficulty is used when the host has no script engine.
type builtinDifficulty struct{}

func (builtinDifficulty) UfoSpeed(level uint64) float64 { return scripting.FallbackUfoSpeed(level) }
func (builtinDifficulty) WaveSize(level uint64) int     { return scripting.FallbackWaveSize(level) }
func (builtinDifficulty) KillScore(level uint64) uint64 { return scripting.FallbackKillScore(level) }

// Deps is what a Layer needs from the host.
type Deps struct {
	Tuning     *data.GameData
	Models     Models
	Difficulty Difficulty
	Rand       *rand.Rand
}

// env is shared by the layer's scripts.
type env struct {
	log        *zap.Logger
	scene      *scene.Scene
	tuning     *data.GameData
	models     Models
	difficulty Difficulty
	rng        *rand.Rand
	// arena is the half extent of the visible world around the origin.
	arena vecmath.Vec2
}

// Layer owns the game scene and the entities that make up a round.
type Layer struct {
	env     *env
	player  ecs.Entity
	spawner *EnemySpawner
}

// NewLayer builds an uninitialized layer whose scene publishes through d.
// Missing tuning falls back to data.Default and a missing Difficulty to the
// built-in curves.
func NewLayer(d *event.Dispatcher, deps Deps, log *zap.Logger) *Layer {
	if log == nil {
		log = zap.NewNop()
	}
	tuning := deps.Tuning
	if tuning == nil {
		tuning = data.Default()
	}
	difficulty := deps.Difficulty
	if difficulty == nil {
		difficulty = builtinDifficulty{}
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Layer{env: &env{
		log:        log,
		scene:      scene.New(d, log),
		tuning:     tuning,
		models:     deps.Models,
		difficulty: difficulty,
		rng:        rng,
		arena:      vecmath.V2(tuning.Camera.Width/2, tuning.Camera.Height/2),
	}}
}

// OnInit starts the scene and creates the player, the camera and the
// handler entities.
func (l *Layer) OnInit() {
	e := l.env
	e.scene.OnInit()

	camera := e.scene.CreateEntity()
	ecs.Add(camera, scene.NewTransform(vecmath.Vec2{}))
	ecs.Add(camera, scene.Camera{
		Specs: render.NewOrthographicCamera(e.tuning.Camera.Width, e.tuning.Camera.Height),
		Main:  true,
	})

	ship := &e.tuning.Ship
	l.player = e.scene.CreateEntity()
	ecs.Add(l.player, scene.Transform{Translation: ship.Spawn, Scale: ship.Scale})
	ecs.Add(l.player, Kind{Type: Player})
	ecs.Add(l.player, Score{})
	ecs.Add(l.player, scene.Polygon{Shape: e.models.Ship})
	ecs.Add(l.player, scene.NewPhysics(vecmath.Vec2{}))
	ecs.Add(l.player, scene.NewBoundingSphere(ship.Bounds.Radius, ship.Bounds.Center))
	ecs.Add(l.player, shipEmitter(e))
	ecs.Add(l.player, scene.Script{Behavior: NewPlayerControl(e)})

	collision := e.scene.CreateEntity()
	ecs.Add(collision, scene.Script{Behavior: NewCollisionHandler(e, l.player)})

	l.spawner = NewEnemySpawner(e, l.player)
	spawner := e.scene.CreateEntity()
	ecs.Add(spawner, scene.Script{Behavior: l.spawner})

	explosion := e.scene.CreateEntity()
	ecs.Add(explosion, explosionEmitter(e))
	ecs.Add(explosion, scene.Script{Behavior: NewExplosion(e)})

	score := e.scene.CreateEntity()
	ecs.Add(score, scene.Script{Behavior: NewScoreKeeper(l.player)})

	e.log.Info("game layer initialized",
		zap.Int("entities", e.scene.Manager().EntityCount()),
		zap.Uint64("start_level", l.spawner.Level()))
}

func (l *Layer) OnUpdate(dt time.Duration)   { l.env.scene.OnUpdate(dt) }
func (l *Layer) OnRender(r *render.Renderer) { l.env.scene.Render(r) }

// Stopped reports whether the round is over.
func (l *Layer) Stopped() bool { return l.env.scene.Stopped() }

func (l *Layer) Scene() *scene.Scene { return l.env.scene }
func (l *Layer) Player() ecs.Entity  { return l.player }

// Score is the player's current score.
func (l *Layer) Score() uint64 {
	if s, ok := ecs.TryGet[Score](l.player); ok {
		return s.Value
	}
	return 0
}

// Level is the level of the most recently spawned wave, zero before the
// first one.
func (l *Layer) Level() uint64 {
	if l.spawner == nil {
		return 0
	}
	return l.spawner.Wave()
}

func (l *Layer) Close() { l.env.scene.Close() }
