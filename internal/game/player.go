package game

import (
	"math"
	"time"

	"github.com/gwarsgo/gwars/internal/core/ecs"
	"github.com/gwarsgo/gwars/internal/core/event"
	"github.com/gwarsgo/gwars/internal/input"
	"github.com/gwarsgo/gwars/internal/render"
	"github.com/gwarsgo/gwars/internal/scene"
	"github.com/gwarsgo/gwars/internal/vecmath"
)

// shipForward is the model-space nose direction.
var shipForward = vecmath.V2(0, 1)

// trailSpeed is how fast reactor particles leave the ship, world units/s.
const trailSpeed = 12

// PlayerControl steers the ship from input events: held direction keys
// drive the engines, the mouse aims, the fire key or left button shoots both
// guns.
type PlayerControl struct {
	env    *env
	entity ecs.Entity
	subs   scene.Subscriptions

	held     map[input.Key]bool
	shooting bool
	recharge time.Duration
}

func NewPlayerControl(e *env) *PlayerControl {
	return &PlayerControl{env: e, held: make(map[input.Key]bool, 4)}
}

func (pc *PlayerControl) OnAttach(e ecs.Entity, d *event.Dispatcher) {
	pc.entity = e
	scene.On(&pc.subs, d, pc.onKeyPressed)
	scene.On(&pc.subs, d, pc.onKeyReleased)
	scene.On(&pc.subs, d, pc.onMouseMoved)
	scene.On(&pc.subs, d, pc.onMouseButtonPressed)
	scene.On(&pc.subs, d, pc.onMouseButtonReleased)
}

func (pc *PlayerControl) OnDetach(ecs.Entity, *event.Dispatcher) {
	pc.subs.Cancel()
}

func (pc *PlayerControl) OnUpdate(dt time.Duration) {
	tuning := &pc.env.tuning.Ship
	t := ecs.Get[scene.Transform](pc.entity)
	p := ecs.Get[scene.Physics](pc.entity)
	pc.keepInArena(t, p)

	forward := pc.forward(t)
	right := forward.PerpCW()
	thrust := pc.thrust()
	engine := forward.Scale(thrust.Y * tuning.ForwardForce).
		Add(right.Scale(thrust.X * tuning.PerpendicularForce))

	if engine.LengthSquared() == 0 {
		p.Force = p.Velocity.Scale(-p.Mass * tuning.Friction)
	} else {
		p.Force = engine
		pc.emitTrail(t, p, forward)
	}

	if pc.shooting && pc.recharge <= 0 {
		for _, gun := range tuning.Guns {
			pc.shoot(t, gun, forward.Scale(pc.env.tuning.Projectile.Speed))
		}
		pc.recharge = tuning.RechargeTime
	} else if pc.recharge > 0 {
		pc.recharge -= dt
	}
}

// thrust returns the held direction as (right, forward), each in [-1, 1].
func (pc *PlayerControl) thrust() vecmath.Vec2 {
	var v vecmath.Vec2
	if pc.held[input.KeyRight] {
		v.X++
	}
	if pc.held[input.KeyLeft] {
		v.X--
	}
	if pc.held[input.KeyUp] {
		v.Y++
	}
	if pc.held[input.KeyDown] {
		v.Y--
	}
	return v
}

func (pc *PlayerControl) forward(t *scene.Transform) vecmath.Vec2 {
	return t.RotationMatrix().ApplyVector(shipForward)
}

func (pc *PlayerControl) shoot(t *scene.Transform, gun, velocity vecmath.Vec2) {
	tuning := &pc.env.tuning.Projectile
	pos := t.Matrix().Apply(gun)

	projectile := pc.env.scene.CreateEntity()
	ecs.Add(projectile, scene.Transform{Translation: pos, Rotation: t.Rotation, Scale: t.Scale})
	ecs.Add(projectile, Kind{Type: Projectile})
	ecs.Add(projectile, scene.Polygon{Shape: pc.env.models.Projectile})
	ecs.Add(projectile, scene.NewPhysics(velocity))
	ecs.Add(projectile, scene.NewBoundingSphere(tuning.Bounds.Radius, tuning.Bounds.Center))
	ecs.Add(projectile, scene.Script{Behavior: NewProjectileLifetime(pc.env, tuning.TimeToLive)})

	event.Fire(pc.env.scene.Dispatcher(), ShotFired{Position: pos})
}

func (pc *PlayerControl) emitTrail(t *scene.Transform, p *scene.Physics, forward vecmath.Vec2) {
	pe, ok := ecs.TryGet[scene.ParticleEmitter](pc.entity)
	if !ok || pe.System == nil {
		return
	}
	m := t.Matrix()
	v := p.Velocity.Sub(forward.Scale(trailSpeed))
	for _, reactor := range pc.env.tuning.Ship.Reactors {
		pe.System.Emit(pc.env.tuning.Ship.Trail.Specs(m.Apply(reactor), v))
	}
}

// keepInArena stops the ship at the edge of the visible area.
func (pc *PlayerControl) keepInArena(t *scene.Transform, p *scene.Physics) {
	half := pc.env.arena
	if half.X <= 0 || half.Y <= 0 {
		return
	}
	if t.Translation.X < -half.X || t.Translation.X > half.X {
		t.Translation.X = vecmath.Clamp(t.Translation.X, -half.X, half.X)
		p.Velocity.X = 0
	}
	if t.Translation.Y < -half.Y || t.Translation.Y > half.Y {
		t.Translation.Y = vecmath.Clamp(t.Translation.Y, -half.Y, half.Y)
		p.Velocity.Y = 0
	}
}

// ── Input handlers ──

func (pc *PlayerControl) onKeyPressed(ev input.KeyPressed) {
	switch {
	case ev.Key.Movement():
		pc.held[ev.Key] = true
	case ev.Key == input.KeyFire:
		pc.shooting = true
	}
}

func (pc *PlayerControl) onKeyReleased(ev input.KeyReleased) {
	if ev.Key == input.KeyFire {
		pc.shooting = false
	}
	delete(pc.held, ev.Key)
}

// onMouseMoved turns the nose toward the pointer.
func (pc *PlayerControl) onMouseMoved(ev input.MouseMoved) {
	cam, ok := pc.env.scene.MainCamera()
	if !ok {
		return
	}
	camera := ecs.Get[scene.Camera](cam)
	toWorld := camera.Specs.InverseProjection()
	if ct, ok := ecs.TryGet[scene.Transform](cam); ok {
		toWorld = ct.Matrix().Mul(toWorld)
	}
	target := toWorld.Apply(vecmath.V2(ev.X, ev.Y))

	t := ecs.Get[scene.Transform](pc.entity)
	dir := target.Sub(t.Translation)
	if dir.LengthSquared() == 0 {
		return
	}
	t.Rotation = HeadingOf(dir)
}

func (pc *PlayerControl) onMouseButtonPressed(ev input.MouseButtonPressed) {
	if ev.Button == input.ButtonLeft {
		pc.shooting = true
	}
}

func (pc *PlayerControl) onMouseButtonReleased(ev input.MouseButtonReleased) {
	if ev.Button == input.ButtonLeft {
		pc.shooting = false
	}
}

// HeadingOf returns the rotation that turns the model-space nose (0, 1)
// toward dir.
func HeadingOf(dir vecmath.Vec2) float64 {
	return math.Atan2(-dir.X, dir.Y)
}

// shipEmitter builds the reactor trail particle system.
func shipEmitter(e *env) scene.ParticleEmitter {
	return scene.ParticleEmitter{
		System: render.NewParticleSystem(e.tuning.Ship.TrailPool, e.models.Particle, e.rng),
	}
}
