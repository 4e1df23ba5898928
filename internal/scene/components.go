package scene

import (
	"fmt"

	"github.com/gwarsgo/gwars/internal/core/ecs"
	"github.com/gwarsgo/gwars/internal/render"
	"github.com/gwarsgo/gwars/internal/vecmath"
)

func init() {
	ecs.Register[Transform]()
	ecs.Register[Camera]()
	ecs.Register[Polygon]()
	ecs.Register[Script]()
	ecs.Register[Physics]()
	ecs.Register[BoundingSphere]()
	ecs.Register[ParticleEmitter]()
}

// Transform places an entity in the world: scale first, then rotation
// (counter-clockwise, radians), then translation.
type Transform struct {
	Translation vecmath.Vec2
	Rotation    float64
	Scale       vecmath.Vec2
}

// NewTransform returns an unrotated, unit-scale transform at t.
func NewTransform(t vecmath.Vec2) Transform {
	return Transform{Translation: t, Scale: vecmath.V2(1, 1)}
}

func (t Transform) TranslationMatrix() vecmath.Mat3 { return vecmath.Translation(t.Translation) }
func (t Transform) RotationMatrix() vecmath.Mat3    { return vecmath.Rotation(t.Rotation) }
func (t Transform) ScaleMatrix() vecmath.Mat3       { return vecmath.Scale(t.Scale) }

// Matrix maps model space to world space.
func (t Transform) Matrix() vecmath.Mat3 {
	return t.TranslationMatrix().Mul(t.RotationMatrix()).Mul(t.ScaleMatrix())
}

// InverseMatrix maps world space back to model space. Mirrored (negative)
// scale is fine; a zero scale axis has no inverse and panics.
func (t Transform) InverseMatrix() vecmath.Mat3 {
	if t.Scale.X == 0 || t.Scale.Y == 0 {
		panic(fmt.Sprintf("scene: inverse of transform with scale %v", t.Scale))
	}
	return vecmath.Scale(vecmath.V2(1/t.Scale.X, 1/t.Scale.Y)).
		Mul(vecmath.Rotation(-t.Rotation)).
		Mul(vecmath.Translation(t.Translation.Neg()))
}

// Camera marks an entity as a viewpoint. The first camera constructed with
// Main set becomes the scene's main camera.
type Camera struct {
	Specs render.OrthographicCamera
	Main  bool
}

type Polygon struct {
	Shape render.Polygon
}

// Script owns a Behavior. The scene calls OnAttach when the component is
// constructed and OnDetach when it is removed; destroying the component
// releases the behavior.
type Script struct {
	Behavior Behavior
}

// Destroy implements ecs.Destroyer.
func (s *Script) Destroy() {
	if r, ok := s.Behavior.(Releaser); ok {
		r.Release()
	}
	s.Behavior = nil
}

type Physics struct {
	Velocity vecmath.Vec2
	Force    vecmath.Vec2
	Mass     float64
}

// NewPhysics returns a unit-mass body moving at v.
func NewPhysics(v vecmath.Vec2) Physics {
	return Physics{Velocity: v, Mass: 1}
}

// BoundingSphere is the collision proxy. Local values are in model space;
// World values are refreshed from the entity's Transform every frame.
type BoundingSphere struct {
	LocalCenter vecmath.Vec2
	LocalRadius float64

	WorldCenter vecmath.Vec2
	WorldRadius float64
}

func NewBoundingSphere(radius float64, center vecmath.Vec2) BoundingSphere {
	return BoundingSphere{LocalCenter: center, LocalRadius: radius}
}

// Overlaps reports whether the world-space spheres touch or intersect.
func (b *BoundingSphere) Overlaps(o *BoundingSphere) bool {
	r := b.WorldRadius + o.WorldRadius
	return b.WorldCenter.Sub(o.WorldCenter).LengthSquared() <= r*r
}

type ParticleEmitter struct {
	System *render.ParticleSystem
}

// CollisionEvent is fired once per overlapping pair per frame. Which entity
// is First is unspecified.
type CollisionEvent struct {
	First  ecs.Entity
	Second ecs.Entity
}
