package render

import (
	"math"

	"github.com/gwarsgo/gwars/internal/vecmath"
)

type scenePass struct {
	camera   OrthographicCamera
	view     vecmath.Mat3
	projView vecmath.Mat3
}

// Renderer draws into a FrameBuffer. Geometry passes through
// projection * view * model into NDC, then onto the current viewport.
type Renderer struct {
	fb       *FrameBuffer
	viewport Viewport
	pass     scenePass
}

// NewRenderer targets fb with a viewport covering all of it and an
// identity scene pass.
func NewRenderer(fb *FrameBuffer) *Renderer {
	return &Renderer{
		fb:       fb,
		viewport: Viewport{Width: fb.Width, Height: fb.Height},
		pass: scenePass{
			view:     vecmath.Identity(),
			projView: vecmath.Identity(),
		},
	}
}

func (r *Renderer) FrameBuffer() *FrameBuffer    { return r.fb }
func (r *Renderer) Viewport() Viewport           { return r.viewport }
func (r *Renderer) SetViewport(v Viewport)       { r.viewport = v }
func (r *Renderer) ProjectionView() vecmath.Mat3 { return r.pass.projView }

// BeginScene sets the camera and view matrix used by every draw call until
// EndScene.
func (r *Renderer) BeginScene(camera OrthographicCamera, view vecmath.Mat3) {
	r.pass.camera = camera
	r.pass.view = view
	r.pass.projView = camera.Projection().Mul(view)
}

// EndScene resets the pass to identity so stray draws land in NDC.
func (r *Renderer) EndScene() {
	r.pass = scenePass{view: vecmath.Identity(), projView: vecmath.Identity()}
}

func (r *Renderer) Clear(c Color) {
	for i := range r.fb.Pix {
		r.fb.Pix[i] = c
	}
}

func (r *Renderer) PutPixel(p Point, c Color) { r.fb.Set(p, c) }
func (r *Renderer) Pixel(p Point) Color       { return r.fb.At(p) }

// PutPixelBlended composites rgb (0..255) with the given alpha over the
// existing pixel:
//
//	rgb' = rgb*a + old*(1-a)
//	a'   = a + oldA*(1-a)
func (r *Renderer) PutPixelBlended(p Point, rgb vecmath.Vec3, alpha float64) {
	if !r.fb.Contains(p) {
		return
	}
	alpha = vecmath.Clamp(alpha, 0, 1)
	if alpha == 0 {
		return
	}

	old := r.fb.At(p)
	oldRGB, oldA := old.RGB(), old.Alpha()

	out := rgb.Scale(alpha).Add(oldRGB.Scale(1 - alpha))
	outA := alpha + oldA*(1-alpha)
	r.fb.Set(p, ColorFromVec4(vecmath.Vec4{X: out.X, Y: out.Y, Z: out.Z, W: outA}))
}

// NDCToFrameBuffer maps NDC ([-1,1], y up) to pixel space (y down).
func (r *Renderer) NDCToFrameBuffer(ndc vecmath.Vec2) vecmath.Vec2 {
	hw := float64(r.viewport.Width) / 2
	hh := float64(r.viewport.Height) / 2
	return vecmath.Vec2{
		X: float64(r.viewport.X) + hw + ndc.X*hw,
		Y: float64(r.viewport.Y+r.viewport.Height) - (hh + ndc.Y*hh),
	}
}

// FrameBufferToNDC is the inverse of NDCToFrameBuffer.
func (r *Renderer) FrameBufferToNDC(px vecmath.Vec2) vecmath.Vec2 {
	hw := float64(r.viewport.Width) / 2
	hh := float64(r.viewport.Height) / 2
	return vecmath.Vec2{
		X: (px.X - float64(r.viewport.X) - hw) / hw,
		Y: (float64(r.viewport.Y) + hh - px.Y) / hh,
	}
}

// capsuleSDF is the signed distance from p to a segment inflated by
// thickness.
func capsuleSDF(p, from, to vecmath.Vec2, thickness float64) float64 {
	line := to.Sub(from)
	toP := p.Sub(from)
	lsq := line.LengthSquared()
	if lsq == 0 {
		return toP.Length() - thickness
	}
	h := vecmath.Clamp(toP.Dot(line)/lsq, 0, 1)
	return toP.Sub(line.Scale(h)).Length() - thickness
}

// DrawLine draws a model-space segment through transform, antialiased by
// coverage from the capsule distance field over the segment's bounding box.
func (r *Renderer) DrawLine(from, to vecmath.Vec2, c Color, thickness float64, transform vecmath.Mat3) {
	m := r.pass.projView.Mul(transform)
	a := r.NDCToFrameBuffer(m.Apply(from))
	b := r.NDCToFrameBuffer(m.Apply(to))
	r.drawPixelLine(a, b, c, thickness)
}

func (r *Renderer) drawPixelLine(a, b vecmath.Vec2, c Color, thickness float64) {
	x0 := int(math.Floor(math.Min(a.X, b.X) - thickness))
	x1 := int(math.Ceil(math.Max(a.X, b.X) + thickness))
	y0 := int(math.Floor(math.Min(a.Y, b.Y) - thickness))
	y1 := int(math.Ceil(math.Max(a.Y, b.Y) + thickness))

	// Clip the box to the framebuffer.
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, r.fb.Width-1), min(y1, r.fb.Height-1)

	rgb, ca := c.RGB(), c.Alpha()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := vecmath.Vec2{X: float64(x), Y: float64(y)}
			coverage := vecmath.Clamp(0.5-capsuleSDF(p, a, b, thickness), 0, 1)
			if coverage > 0 {
				r.PutPixelBlended(Point{X: x, Y: y}, rgb, ca*coverage)
			}
		}
	}
}

// DrawPolygon outlines poly as a closed loop, skipping edges that touch a
// break vertex. A two-vertex polygon is a single segment.
func (r *Renderer) DrawPolygon(poly Polygon, transform vecmath.Mat3) {
	n := len(poly.Vertices)
	switch {
	case n == 0:
		return
	case n == 1:
		v := poly.Vertices[0]
		if !v.Break {
			r.DrawLine(v.Pos, v.Pos, poly.Color, poly.Thickness, transform)
		}
		return
	case n == 2:
		a, b := poly.Vertices[0], poly.Vertices[1]
		if !a.Break && !b.Break {
			r.DrawLine(a.Pos, b.Pos, poly.Color, poly.Thickness, transform)
		}
		return
	}

	for i := 0; i < n; i++ {
		a, b := poly.Vertices[i], poly.Vertices[(i+1)%n]
		if a.Break || b.Break {
			continue
		}
		r.DrawLine(a.Pos, b.Pos, poly.Color, poly.Thickness, transform)
	}
}
