// Package scene composes an entity manager with a dispatcher and runs the
// built-in frame systems over the scene components.
package scene

import (
	"time"

	"github.com/gwarsgo/gwars/internal/core/ecs"
	"github.com/gwarsgo/gwars/internal/core/event"
	"github.com/gwarsgo/gwars/internal/core/system"
	"github.com/gwarsgo/gwars/internal/render"
	"github.com/gwarsgo/gwars/internal/vecmath"
	"go.uber.org/zap"
)

// Scene owns the entity manager and is the only place entities are destroyed
// during a frame. Single-goroutine access only.
type Scene struct {
	log      *zap.Logger
	events   *event.Dispatcher
	entities *ecs.Manager
	runner   *system.Runner

	mainCamera ecs.Entity

	// Deferred removals, applied by the cleanup phase in submission order.
	toRemove    map[ecs.EntityID]struct{}
	removeOrder []ecs.EntityID

	subs        []func()
	initialized bool
	stopped     bool
}

// New creates an uninitialized scene publishing through d. A nil d gets a
// private dispatcher.
func New(d *event.Dispatcher, log *zap.Logger) *Scene {
	if d == nil {
		d = event.NewDispatcher()
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scene{
		log:      log,
		events:   d,
		entities: ecs.NewManager(d),
		runner:   system.NewRunner(),
		toRemove: make(map[ecs.EntityID]struct{}),
		stopped:  true,
	}
	s.runner.Register(&scriptSystem{scene: s})
	s.runner.Register(&particleSystem{scene: s})
	s.runner.Register(&physicsSystem{scene: s})
	s.runner.Register(&boundsSystem{scene: s})
	s.runner.Register(&collisionSystem{scene: s})
	s.runner.Register(&cleanupSystem{scene: s})
	return s
}

// OnInit wires the scene to its own component lifecycle events and starts
// it running. Calling it twice is a programming error.
func (s *Scene) OnInit() {
	if s.initialized {
		panic("scene: OnInit called twice")
	}
	s.initialized = true
	s.stopped = false

	subscribe(s, s.onScriptAdded)
	subscribe(s, s.onScriptRemoved)
	subscribe(s, s.onCameraAdded)
	subscribe(s, s.onCameraRemoved)
}

func subscribe[T any](s *Scene, fn func(T)) {
	h := event.Subscribe(s.events, fn)
	s.subs = append(s.subs, func() { event.Unsubscribe[T](s.events, h) })
}

// Close removes every entity, so every script is detached and released, and
// drops the scene's own subscriptions.
func (s *Scene) Close() {
	s.entities.Clear()
	for _, unsub := range s.subs {
		unsub()
	}
	s.subs = nil
	s.toRemove = make(map[ecs.EntityID]struct{})
	s.removeOrder = nil
}

func (s *Scene) Initialized() bool { return s.initialized }

// Stopped reports the soft halt flag: the scene keeps working, but its owner
// should stop driving it after this frame.
func (s *Scene) Stopped() bool        { return s.stopped }
func (s *Scene) SetStopped(stop bool) { s.stopped = stop }

func (s *Scene) Manager() *ecs.Manager         { return s.entities }
func (s *Scene) Dispatcher() *event.Dispatcher { return s.events }

// AddSystem registers an extra frame system alongside the built-in ones.
// Systems sharing a phase run in registration order.
func (s *Scene) AddSystem(sys system.System) {
	s.runner.Register(sys)
}

func (s *Scene) CreateEntity() ecs.Entity {
	return s.entities.Entity(s.entities.CreateEntity())
}

// SubmitToRemove queues e for destruction at the end of the current (or
// next) OnUpdate. Entities that are already gone or queued are ignored.
func (s *Scene) SubmitToRemove(e ecs.Entity) {
	if !e.Valid() || e.Manager() != s.entities {
		return
	}
	if _, ok := s.toRemove[e.ID()]; ok {
		return
	}
	s.toRemove[e.ID()] = struct{}{}
	s.removeOrder = append(s.removeOrder, e.ID())
}

func (s *Scene) IsSubmittedToRemove(e ecs.Entity) bool {
	_, ok := s.toRemove[e.ID()]
	return ok && e.Manager() == s.entities
}

// MainCamera returns the main camera entity, if one is alive.
func (s *Scene) MainCamera() (ecs.Entity, bool) {
	if !s.mainCamera.Valid() {
		return ecs.Entity{}, false
	}
	return s.mainCamera, true
}

// OnUpdate advances the scene by dt: scripts, particles, physics, bounding
// spheres, collisions, then deferred removals.
func (s *Scene) OnUpdate(dt time.Duration) {
	if !s.initialized {
		panic("scene: OnUpdate before OnInit")
	}
	s.runner.Tick(dt)
}

// Render clears the frame and, if a main camera exists, draws every polygon
// and particle emitter through it.
func (s *Scene) Render(r *render.Renderer) {
	r.Clear(render.Background)

	camEntity, ok := s.MainCamera()
	if !ok {
		return
	}
	cam := ecs.Get[Camera](camEntity)
	view := vecmath.Identity()
	if t, ok := ecs.TryGet[Transform](camEntity); ok {
		view = t.InverseMatrix()
	}

	r.BeginScene(cam.Specs, view)
	for e, p := range ecs.ViewOf[Polygon](s.entities).All() {
		model := vecmath.Identity()
		if t, ok := ecs.TryGet[Transform](e); ok {
			model = t.Matrix()
		}
		r.DrawPolygon(p.Shape, model)
	}
	for _, pe := range ecs.ViewOf[ParticleEmitter](s.entities).All() {
		if pe.System != nil {
			pe.System.Render(r)
		}
	}
	r.EndScene()
}

// ── Lifecycle handlers ──

func (s *Scene) onScriptAdded(ev ecs.ComponentConstructed[Script]) {
	if b := ev.Component.Behavior; b != nil {
		b.OnAttach(ev.Entity, s.events)
	}
}

func (s *Scene) onScriptRemoved(ev ecs.ComponentRemoved[Script]) {
	if b := ev.Component.Behavior; b != nil {
		b.OnDetach(ev.Entity, s.events)
	}
}

func (s *Scene) onCameraAdded(ev ecs.ComponentConstructed[Camera]) {
	if !ev.Component.Main {
		return
	}
	if s.mainCamera.Valid() {
		s.log.Warn("second main camera ignored",
			zap.Stringer("current", s.mainCamera),
			zap.Stringer("ignored", ev.Entity))
		return
	}
	s.mainCamera = ev.Entity
	s.log.Debug("main camera set", zap.Stringer("entity", ev.Entity))
}

func (s *Scene) onCameraRemoved(ev ecs.ComponentRemoved[Camera]) {
	if ev.Entity == s.mainCamera {
		s.mainCamera = ecs.Entity{}
	}
}
