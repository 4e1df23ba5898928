package scene

import (
	"math"
	"time"

	"github.com/gwarsgo/gwars/internal/core/ecs"
	"github.com/gwarsgo/gwars/internal/core/event"
	"github.com/gwarsgo/gwars/internal/core/system"
)

// scriptSystem calls OnUpdate on every attached behavior. It walks a copy
// of the Script pool, so scripts created during the pass first update next
// frame.
type scriptSystem struct {
	scene *Scene
}

func (s *scriptSystem) Phase() system.Phase { return system.PhaseScript }

func (s *scriptSystem) Update(dt time.Duration) {
	m := s.scene.entities
	for _, id := range ecs.EntityMap[Script](m).Entities() {
		sc, ok := ecs.TryComponent[Script](m, id)
		if !ok || sc.Behavior == nil {
			continue
		}
		sc.Behavior.OnUpdate(dt)
	}
}

type particleSystem struct {
	scene *Scene
}

func (s *particleSystem) Phase() system.Phase { return system.PhaseParticles }

func (s *particleSystem) Update(dt time.Duration) {
	for _, pe := range ecs.ViewOf[ParticleEmitter](s.scene.entities).All() {
		if pe.System != nil {
			pe.System.Update(dt)
		}
	}
}

// physicsSystem integrates v += F/m*dt, then p += v*dt.
type physicsSystem struct {
	scene *Scene
}

func (s *physicsSystem) Phase() system.Phase { return system.PhasePhysics }

func (s *physicsSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	ecs.Each2(s.scene.entities, func(_ ecs.Entity, t *Transform, p *Physics) {
		if p.Mass > 0 {
			p.Velocity = p.Velocity.Add(p.Force.Scale(sec / p.Mass))
		}
		t.Translation = t.Translation.Add(p.Velocity.Scale(sec))
	})
}

// boundsSystem moves every bounding sphere into world space. Spheres on
// entities without a Transform keep their local values.
type boundsSystem struct {
	scene *Scene
}

func (s *boundsSystem) Phase() system.Phase { return system.PhaseBounds }

func (s *boundsSystem) Update(_ time.Duration) {
	for e, b := range ecs.ViewOf[BoundingSphere](s.scene.entities).All() {
		t, ok := ecs.TryGet[Transform](e)
		if !ok {
			b.WorldCenter, b.WorldRadius = b.LocalCenter, b.LocalRadius
			continue
		}
		b.WorldCenter = t.Matrix().Apply(b.LocalCenter)
		b.WorldRadius = b.LocalRadius * math.Max(math.Abs(t.Scale.X), math.Abs(t.Scale.Y))
	}
}

// collisionSystem tests every unordered pair of bounding spheres once and
// fires a CollisionEvent per overlap. Pairs touching an entity queued for
// removal are skipped, including entities queued by an earlier handler in
// the same pass.
type collisionSystem struct {
	scene *Scene
	pairs []collider
}

type collider struct {
	entity ecs.Entity
	sphere *BoundingSphere
}

func (s *collisionSystem) Phase() system.Phase { return system.PhaseCollision }

func (s *collisionSystem) Update(_ time.Duration) {
	sc := s.scene
	s.pairs = s.pairs[:0]
	for e, b := range ecs.ViewOf[BoundingSphere](sc.entities).All() {
		s.pairs = append(s.pairs, collider{entity: e, sphere: b})
	}

	for i := 0; i < len(s.pairs); i++ {
		a := s.pairs[i]
		for j := i + 1; j < len(s.pairs); j++ {
			if !s.live(a) {
				break
			}
			b := s.pairs[j]
			if !s.live(b) {
				continue
			}
			if a.sphere.Overlaps(b.sphere) {
				event.Fire(sc.events, CollisionEvent{First: a.entity, Second: b.entity})
			}
		}
	}
	clear(s.pairs)
}

func (s *collisionSystem) live(c collider) bool {
	return c.entity.Valid() && !s.scene.IsSubmittedToRemove(c.entity)
}

// cleanupSystem destroys the entities queued by SubmitToRemove. Entities
// queued while the queue drains (from detach hooks) are destroyed too.
type cleanupSystem struct {
	scene *Scene
}

func (s *cleanupSystem) Phase() system.Phase { return system.PhaseCleanup }

func (s *cleanupSystem) Update(_ time.Duration) {
	sc := s.scene
	for i := 0; i < len(sc.removeOrder); i++ {
		id := sc.removeOrder[i]
		if sc.entities.Alive(id) {
			sc.entities.RemoveEntity(id)
		}
	}
	sc.removeOrder = sc.removeOrder[:0]
	clear(sc.toRemove)
}
