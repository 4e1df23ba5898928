package game

import (
	"time"

	"github.com/gwarsgo/gwars/internal/core/ecs"
	"github.com/gwarsgo/gwars/internal/core/event"
	"github.com/gwarsgo/gwars/internal/scene"
	"go.uber.org/zap"
)

type kindPair [2]EntityType

// CollisionHandler resolves scene.CollisionEvents by the Kinds involved.
type CollisionHandler struct {
	env      *env
	player   ecs.Entity
	subs     scene.Subscriptions
	handlers map[kindPair]func(a, b ecs.Entity)
}

func NewCollisionHandler(e *env, player ecs.Entity) *CollisionHandler {
	ch := &CollisionHandler{env: e, player: player}
	ch.handlers = map[kindPair]func(a, b ecs.Entity){
		{Player, Ufo}:     ch.onPlayerUfo,
		{Projectile, Ufo}: ch.onProjectileUfo,
	}
	return ch
}

func (ch *CollisionHandler) OnAttach(_ ecs.Entity, d *event.Dispatcher) {
	scene.On(&ch.subs, d, ch.onCollision)
}

func (ch *CollisionHandler) OnDetach(ecs.Entity, *event.Dispatcher) {
	ch.subs.Cancel()
}

func (ch *CollisionHandler) OnUpdate(time.Duration) {}

func (ch *CollisionHandler) onCollision(ev scene.CollisionEvent) {
	sc := ch.env.scene
	if sc.IsSubmittedToRemove(ev.First) || sc.IsSubmittedToRemove(ev.Second) {
		return
	}
	ka, ok := ecs.TryGet[Kind](ev.First)
	if !ok {
		return
	}
	kb, ok := ecs.TryGet[Kind](ev.Second)
	if !ok {
		return
	}

	if h, ok := ch.handlers[kindPair{ka.Type, kb.Type}]; ok {
		h(ev.First, ev.Second)
	} else if h, ok := ch.handlers[kindPair{kb.Type, ka.Type}]; ok {
		h(ev.Second, ev.First)
	}
}

func (ch *CollisionHandler) onPlayerUfo(player, ufo ecs.Entity) {
	sc := ch.env.scene
	if sc.Stopped() {
		return
	}
	sc.SetStopped(true)

	var score uint64
	if s, ok := ecs.TryGet[Score](player); ok {
		score = s.Value
	}
	ch.env.log.Info("player destroyed",
		zap.Stringer("ufo", ufo),
		zap.Uint64("score", score))
	event.Fire(sc.Dispatcher(), PlayerDied{Score: score})
}

func (ch *CollisionHandler) onProjectileUfo(projectile, ufo ecs.Entity) {
	sc := ch.env.scene
	sc.SubmitToRemove(projectile)
	sc.SubmitToRemove(ufo)

	level := uint64(1)
	if l, ok := ecs.TryGet[EnemyLevel](ufo); ok {
		level = l.Level
	}
	event.Fire(sc.Dispatcher(), EnemyKilled{Enemy: ufo, Score: ch.env.difficulty.KillScore(level)})
}
