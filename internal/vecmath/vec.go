// Package vecmath provides the small 2D/3D vector and 3x3 affine matrix
// types used by transforms, physics and the rasterizer.
package vecmath

import (
	"fmt"
	"math"
)

type Vec2 struct{ X, Y float64 }

func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) String() string { return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y) }

func (v Vec2) Add(o Vec2) Vec2        { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2        { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2   { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Mul(o Vec2) Vec2        { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) Neg() Vec2              { return Vec2{-v.X, -v.Y} }
func (v Vec2) Dot(o Vec2) float64     { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LengthSquared() float64 { return v.Dot(v) }
func (v Vec2) Length() float64        { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length; the zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// PerpCCW rotates v by +90 degrees.
func (v Vec2) PerpCCW() Vec2 { return Vec2{-v.Y, v.X} }

// PerpCW rotates v by -90 degrees.
func (v Vec2) PerpCW() Vec2 { return Vec2{v.Y, -v.X} }

// Distance returns |v - o|.
func (v Vec2) Distance(o Vec2) float64 { return v.Sub(o).Length() }

// Vec3 extends v with z.
func (v Vec2) Vec3(z float64) Vec3 { return Vec3{v.X, v.Y, z} }

func (v Vec2) Equals(o Vec2, eps float64) bool {
	return NearlyEqual(v.X, o.X, eps) && NearlyEqual(v.Y, o.Y, eps)
}

type Vec3 struct{ X, Y, Z float64 }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) XY() Vec2             { return Vec2{v.X, v.Y} }

// Vec4 carries colours in the particle system (r, g, b in 0..255, a in 0..1).
type Vec4 struct{ X, Y, Z, W float64 }

func (v Vec4) Add(o Vec4) Vec4      { return Vec4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W} }
func (v Vec4) Sub(o Vec4) Vec4      { return Vec4{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.W - o.W} }
func (v Vec4) Scale(s float64) Vec4 { return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s} }

// Lerp returns a + (b-a)*t.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// LerpVec4 interpolates component-wise.
func LerpVec4(a, b Vec4, t float64) Vec4 { return a.Add(b.Sub(a).Scale(t)) }

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, x)) }

func NearlyEqual(a, b, eps float64) bool { return math.Abs(a-b) <= eps }
