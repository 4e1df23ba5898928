package render

import (
	"math"
	"math/rand"
	"time"

	"github.com/gwarsgo/gwars/internal/vecmath"
)

// particleSpin is the rotation rate of every particle, in rad/s.
const particleSpin = 0.02

// ParticleSpecs describes one emitted particle. Colours are
// (r, g, b in 0..255, a in 0..1).
type ParticleSpecs struct {
	Origin            vecmath.Vec2
	Velocity          vecmath.Vec2
	VelocityVariation vecmath.Vec2

	ColorBegin vecmath.Vec4
	ColorEnd   vecmath.Vec4

	SizeBegin     float64
	SizeEnd       float64
	SizeVariation float64

	Lifetime time.Duration
}

type particle struct {
	translation vecmath.Vec2
	velocity    vecmath.Vec2
	rotation    float64
	colorBegin  vecmath.Vec4
	colorEnd    vecmath.Vec4
	sizeBegin   float64
	sizeEnd     float64
	lifetime    float64
	remaining   float64
	active      bool
}

// ParticleSystem is a fixed-size ring of particles sharing one shape. When
// the ring is full, emitting overwrites the oldest slot.
type ParticleSystem struct {
	shape     Polygon
	particles []particle
	next      int
	rng       *rand.Rand
}

func NewParticleSystem(poolSize int, shape Polygon, rng *rand.Rand) *ParticleSystem {
	if poolSize < 1 {
		poolSize = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ParticleSystem{
		shape:     shape.Clone(),
		particles: make([]particle, poolSize),
		rng:       rng,
	}
}

// Emit activates the next slot with randomized rotation, velocity and size.
func (ps *ParticleSystem) Emit(specs ParticleSpecs) {
	p := &ps.particles[ps.next]
	p.active = true
	p.translation = specs.Origin
	p.rotation = ps.rng.Float64() * math.Pi

	p.velocity = specs.Velocity
	p.velocity.X += (ps.rng.Float64() - 0.5) * specs.VelocityVariation.X
	p.velocity.Y += (ps.rng.Float64() - 0.5) * specs.VelocityVariation.Y

	p.colorBegin = specs.ColorBegin
	p.colorEnd = specs.ColorEnd

	p.lifetime = specs.Lifetime.Seconds()
	p.remaining = p.lifetime
	p.sizeBegin = specs.SizeBegin + specs.SizeVariation*(ps.rng.Float64()-0.5)
	p.sizeEnd = specs.SizeEnd

	ps.next = (ps.next + 1) % len(ps.particles)
}

// Update advances live particles and retires expired ones.
func (ps *ParticleSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	for i := range ps.particles {
		p := &ps.particles[i]
		if !p.active {
			continue
		}
		if p.remaining <= 0 {
			p.active = false
			continue
		}
		p.translation = p.translation.Add(p.velocity.Scale(sec))
		p.rotation += particleSpin * sec
		p.remaining -= sec
	}
}

// Render draws every live particle with colour and size interpolated from
// the end value toward the begin value by remaining life.
func (ps *ParticleSystem) Render(r *Renderer) {
	shape := ps.shape
	for i := range ps.particles {
		p := &ps.particles[i]
		if !p.active || p.lifetime <= 0 {
			continue
		}
		life := vecmath.Clamp(p.remaining/p.lifetime, 0, 1)
		shape.Color = ColorFromVec4(vecmath.LerpVec4(p.colorEnd, p.colorBegin, life))
		size := vecmath.Lerp(p.sizeEnd, p.sizeBegin, life)

		transform := vecmath.Translation(p.translation).
			Mul(vecmath.Rotation(p.rotation)).
			Mul(vecmath.Scale(vecmath.V2(size, size)))
		r.DrawPolygon(shape, transform)
	}
}

// Active returns the number of live particles.
func (ps *ParticleSystem) Active() int {
	n := 0
	for i := range ps.particles {
		if ps.particles[i].active {
			n++
		}
	}
	return n
}

// Capacity returns the pool size.
func (ps *ParticleSystem) Capacity() int { return len(ps.particles) }
