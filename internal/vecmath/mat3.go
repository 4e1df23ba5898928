package vecmath

import (
	"fmt"
	"math"
)

// Mat3 is a row-major 3x3 matrix used for 2D affine transforms.
// Element (row, col) lives at index row*3+col.
type Mat3 [9]float64

func Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

func Translation(t Vec2) Mat3 {
	return Mat3{
		1, 0, t.X,
		0, 1, t.Y,
		0, 0, 1,
	}
}

// Rotation rotates counter-clockwise by angle radians.
func Rotation(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

func Scale(s Vec2) Mat3 {
	return Mat3{
		s.X, 0, 0,
		0, s.Y, 0,
		0, 0, 1,
	}
}

// OrthoProjection maps the box [left,right]x[bottom,top] onto [-1,1]^2.
func OrthoProjection(left, right, bottom, top float64) Mat3 {
	if right <= left || top <= bottom {
		panic(fmt.Sprintf("vecmath: degenerate ortho box l=%v r=%v b=%v t=%v", left, right, bottom, top))
	}
	return Mat3{
		2 / (right - left), 0, -(right + left) / (right - left),
		0, 2 / (top - bottom), -(top + bottom) / (top - bottom),
		0, 0, 1,
	}
}

// OrthoProjectionSize is OrthoProjection centred on the origin.
func OrthoProjectionSize(width, height float64) Mat3 {
	return OrthoProjection(-width/2, width/2, -height/2, height/2)
}

func (m Mat3) At(row, col int) float64 { return m[row*3+col] }

// Mul returns m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r[row*3+col] = m[row*3]*o[col] + m[row*3+1]*o[3+col] + m[row*3+2]*o[6+col]
		}
	}
	return r
}

func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Apply transforms the point p (z = 1).
func (m Mat3) Apply(p Vec2) Vec2 {
	return m.MulVec3(p.Vec3(1)).XY()
}

// ApplyVector transforms the direction d (z = 0), ignoring translation.
func (m Mat3) ApplyVector(d Vec2) Vec2 {
	return m.MulVec3(d.Vec3(0)).XY()
}

func (m Mat3) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Inverse returns the inverse of m. A singular matrix yields the identity
// and false.
func (m Mat3) Inverse() (Mat3, bool) {
	det := m.Determinant()
	if det == 0 {
		return Identity(), false
	}
	inv := 1 / det
	return Mat3{
		(m[4]*m[8] - m[5]*m[7]) * inv,
		(m[2]*m[7] - m[1]*m[8]) * inv,
		(m[1]*m[5] - m[2]*m[4]) * inv,

		(m[5]*m[6] - m[3]*m[8]) * inv,
		(m[0]*m[8] - m[2]*m[6]) * inv,
		(m[2]*m[3] - m[0]*m[5]) * inv,

		(m[3]*m[7] - m[4]*m[6]) * inv,
		(m[1]*m[6] - m[0]*m[7]) * inv,
		(m[0]*m[4] - m[1]*m[3]) * inv,
	}, true
}

func (m Mat3) Equals(o Mat3, eps float64) bool {
	for i := range m {
		if !NearlyEqual(m[i], o[i], eps) {
			return false
		}
	}
	return true
}

func (m Mat3) String() string {
	return fmt.Sprintf("[%6.3f %6.3f %6.3f]\n[%6.3f %6.3f %6.3f]\n[%6.3f %6.3f %6.3f]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}
