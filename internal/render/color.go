// Package render is the software rasterizer: a CPU framebuffer, antialiased
// line and polygon drawing with alpha blending, an orthographic camera and
// pooled particle systems.
package render

import "github.com/gwarsgo/gwars/internal/vecmath"

// Color is a packed ABGR value: r in the low byte, a in the high byte.
type Color uint32

// RGBA packs 8-bit channels.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r))
}

func (c Color) R() uint8 { return uint8(c) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c >> 16) }
func (c Color) A() uint8 { return uint8(c >> 24) }

func (c Color) WithR(r uint8) Color { return c&^0xFF | Color(r) }
func (c Color) WithG(g uint8) Color { return c&^(0xFF<<8) | Color(g)<<8 }
func (c Color) WithB(b uint8) Color { return c&^(0xFF<<16) | Color(b)<<16 }
func (c Color) WithA(a uint8) Color { return c&^(0xFF<<24) | Color(a)<<24 }

// RGB returns the colour channels as floats in 0..255.
func (c Color) RGB() vecmath.Vec3 {
	return vecmath.Vec3{X: float64(c.R()), Y: float64(c.G()), Z: float64(c.B())}
}

// Alpha returns the alpha channel in 0..1.
func (c Color) Alpha() float64 { return float64(c.A()) / 255 }

// ColorFromVec4 converts (r, g, b in 0..255, a in 0..1), clamping each.
func ColorFromVec4(v vecmath.Vec4) Color {
	return RGBA(
		channel(v.X),
		channel(v.Y),
		channel(v.Z),
		channel(v.W*255),
	)
}

// Vec4 is the inverse of ColorFromVec4.
func (c Color) Vec4() vecmath.Vec4 {
	return vecmath.Vec4{X: float64(c.R()), Y: float64(c.G()), Z: float64(c.B()), W: c.Alpha()}
}

func channel(v float64) uint8 {
	return uint8(vecmath.Clamp(v, 0, 255) + 0.5)
}

var (
	White      = RGBA(255, 255, 255, 255)
	Black      = RGBA(0, 0, 0, 255)
	Background = RGBA(10, 0, 10, 255)
)
