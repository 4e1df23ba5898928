package data

import (
	"fmt"
	"os"
	"time"

	"github.com/gwarsgo/gwars/internal/render"
	"github.com/gwarsgo/gwars/internal/vecmath"
	"gopkg.in/yaml.v3"
)

// RGBA is a colour written as [r, g, b, a], every channel 0..255.
type RGBA [4]uint8

func (c RGBA) Color() render.Color { return render.RGBA(c[0], c[1], c[2], c[3]) }

// Vec4 converts to the particle colour space: rgb stays 0..255, alpha 0..1.
func (c RGBA) Vec4() vecmath.Vec4 {
	return vecmath.Vec4{X: float64(c[0]), Y: float64(c[1]), Z: float64(c[2]), W: float64(c[3]) / 255}
}

// Sphere is a bounding sphere in model space.
type Sphere struct {
	Center vecmath.Vec2 `yaml:"center"`
	Radius float64      `yaml:"radius"`
}

// ParticleSpec is the YAML form of render.ParticleSpecs. Origin and base
// velocity are supplied by the emitter at runtime.
type ParticleSpec struct {
	VelocityVariation vecmath.Vec2  `yaml:"velocity_variation"`
	ColorBegin        RGBA          `yaml:"color_begin"`
	ColorEnd          RGBA          `yaml:"color_end"`
	SizeBegin         float64       `yaml:"size_begin"`
	SizeEnd           float64       `yaml:"size_end"`
	SizeVariation     float64       `yaml:"size_variation"`
	Lifetime          time.Duration `yaml:"lifetime"`
}

// Specs fills a render.ParticleSpecs emitted at origin with velocity v.
func (p ParticleSpec) Specs(origin, v vecmath.Vec2) render.ParticleSpecs {
	return render.ParticleSpecs{
		Origin:            origin,
		Velocity:          v,
		VelocityVariation: p.VelocityVariation,
		ColorBegin:        p.ColorBegin.Vec4(),
		ColorEnd:          p.ColorEnd.Vec4(),
		SizeBegin:         p.SizeBegin,
		SizeEnd:           p.SizeEnd,
		SizeVariation:     p.SizeVariation,
		Lifetime:          p.Lifetime,
	}
}

type ShipData struct {
	Model              string         `yaml:"model"`
	Spawn              vecmath.Vec2   `yaml:"spawn"`
	Scale              vecmath.Vec2   `yaml:"scale"`
	ForwardForce       float64        `yaml:"forward_force"`
	PerpendicularForce float64        `yaml:"perpendicular_force"`
	Friction           float64        `yaml:"friction"`
	Guns               []vecmath.Vec2 `yaml:"guns"`
	Reactors           []vecmath.Vec2 `yaml:"reactors"`
	RechargeTime       time.Duration  `yaml:"recharge_time"`
	Bounds             Sphere         `yaml:"bounds"`
	TrailPool          int            `yaml:"trail_pool"`
	Trail              ParticleSpec   `yaml:"trail"`
}

type ProjectileData struct {
	Model      string        `yaml:"model"`
	Speed      float64       `yaml:"speed"`
	TimeToLive time.Duration `yaml:"time_to_live"`
	Bounds     Sphere        `yaml:"bounds"`
}

type UfoData struct {
	Model     string         `yaml:"model"`
	Scale     vecmath.Vec2   `yaml:"scale"`
	Reactors  []vecmath.Vec2 `yaml:"reactors"`
	Bounds    Sphere         `yaml:"bounds"`
	TrailPool int            `yaml:"trail_pool"`
	Trail     ParticleSpec   `yaml:"trail"`
}

type WaveData struct {
	SafeRadius  float64 `yaml:"safe_radius"`
	SpawnRadius float64 `yaml:"spawn_radius"`
	StartLevel  uint64  `yaml:"start_level"`
}

type ExplosionData struct {
	Pool      int          `yaml:"pool"`
	Particles int          `yaml:"particles"`
	Speed     float64      `yaml:"speed"`
	Spec      ParticleSpec `yaml:"spec"`
}

type CameraData struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// GameData holds every tuning value of the arcade game.
type GameData struct {
	ParticleModel string         `yaml:"particle_model"`
	Camera        CameraData     `yaml:"camera"`
	Ship          ShipData       `yaml:"ship"`
	Projectile    ProjectileData `yaml:"projectile"`
	Ufo           UfoData        `yaml:"ufo"`
	Wave          WaveData       `yaml:"wave"`
	Explosion     ExplosionData  `yaml:"explosion"`
}

// LoadGameData reads the tuning table from a YAML file. Keys missing from
// the file keep their Default values.
func LoadGameData(path string) (*GameData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game data: %w", err)
	}
	gd := Default()
	if err := yaml.Unmarshal(raw, gd); err != nil {
		return nil, fmt.Errorf("parse game data: %w", err)
	}
	if err := gd.validate(); err != nil {
		return nil, fmt.Errorf("game data %s: %w", path, err)
	}
	return gd, nil
}

func (gd *GameData) validate() error {
	switch {
	case gd.Camera.Width <= 0 || gd.Camera.Height <= 0:
		return fmt.Errorf("camera size %vx%v must be positive", gd.Camera.Width, gd.Camera.Height)
	case gd.Ship.Scale.X <= 0 || gd.Ship.Scale.Y <= 0:
		return fmt.Errorf("ship scale %v must be positive", gd.Ship.Scale)
	case gd.Ufo.Scale.X <= 0 || gd.Ufo.Scale.Y <= 0:
		return fmt.Errorf("ufo scale %v must be positive", gd.Ufo.Scale)
	case gd.Wave.SpawnRadius <= gd.Wave.SafeRadius:
		return fmt.Errorf("spawn radius %v must exceed safe radius %v", gd.Wave.SpawnRadius, gd.Wave.SafeRadius)
	case gd.Projectile.TimeToLive <= 0:
		return fmt.Errorf("projectile time to live must be positive")
	}
	return nil
}

// Default returns the built-in tuning, used when no data file is present.
func Default() *GameData {
	return &GameData{
		ParticleModel: "fire_particle.txt",
		Camera:        CameraData{Width: 240, Height: 144},
		Ship: ShipData{
			Model:              "player_spaceship.txt",
			Spawn:              vecmath.V2(0, 0),
			Scale:              vecmath.V2(3, 3),
			ForwardForce:       75,
			PerpendicularForce: 75,
			Friction:           1,
			Guns:               []vecmath.Vec2{vecmath.V2(-1.15, 1.005), vecmath.V2(1.15, 1.005)},
			Reactors:           []vecmath.Vec2{vecmath.V2(-0.5, -1), vecmath.V2(0.5, -1)},
			RechargeTime:       300 * time.Millisecond,
			Bounds:             Sphere{Center: vecmath.V2(0, 0.2), Radius: 1.4},
			TrailPool:          2048,
			Trail: ParticleSpec{
				VelocityVariation: vecmath.V2(6, 6),
				ColorBegin:        RGBA{255, 200, 40, 255},
				ColorEnd:          RGBA{255, 40, 0, 0},
				SizeBegin:         0.8,
				SizeEnd:           0.1,
				SizeVariation:     0.3,
				Lifetime:          600 * time.Millisecond,
			},
		},
		Projectile: ProjectileData{
			Model:      "player_spaceship_projectile.txt",
			Speed:      250,
			TimeToLive: 3 * time.Second,
			Bounds:     Sphere{Radius: 0.6},
		},
		Ufo: UfoData{
			Model:     "ufo.txt",
			Scale:     vecmath.V2(3, 3),
			Reactors:  []vecmath.Vec2{vecmath.V2(-1, -0.6), vecmath.V2(-0.3, -0.8), vecmath.V2(0.3, -0.8), vecmath.V2(1, -0.6)},
			Bounds:    Sphere{Radius: 1.6},
			TrailPool: 256,
			Trail: ParticleSpec{
				VelocityVariation: vecmath.V2(4, 4),
				ColorBegin:        RGBA{255, 90, 220, 255},
				ColorEnd:          RGBA{80, 0, 255, 0},
				SizeBegin:         0.5,
				SizeEnd:           0.1,
				SizeVariation:     0.2,
				Lifetime:          400 * time.Millisecond,
			},
		},
		Wave: WaveData{
			SafeRadius:  40,
			SpawnRadius: 110,
			StartLevel:  1,
		},
		Explosion: ExplosionData{
			Pool:      512,
			Particles: 48,
			Speed:     40,
			Spec: ParticleSpec{
				VelocityVariation: vecmath.V2(30, 30),
				ColorBegin:        RGBA{255, 255, 160, 255},
				ColorEnd:          RGBA{255, 30, 0, 0},
				SizeBegin:         1.2,
				SizeEnd:           0.2,
				SizeVariation:     0.5,
				Lifetime:          time.Second,
			},
		},
	}
}
