package render

import "github.com/gwarsgo/gwars/internal/vecmath"

// OrthographicCamera describes the visible world rectangle, centred on the
// camera's position.
type OrthographicCamera struct {
	Width  float64
	Height float64
}

func NewOrthographicCamera(width, height float64) OrthographicCamera {
	return OrthographicCamera{Width: width, Height: height}
}

// Projection maps camera space onto NDC.
func (c OrthographicCamera) Projection() vecmath.Mat3 {
	return vecmath.OrthoProjectionSize(c.Width, c.Height)
}

// InverseProjection maps NDC back onto camera space.
func (c OrthographicCamera) InverseProjection() vecmath.Mat3 {
	return vecmath.Scale(vecmath.V2(c.Width/2, c.Height/2))
}
