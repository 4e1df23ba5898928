package render

// FrameBuffer is a row-major pixel grid owned by the host.
type FrameBuffer struct {
	Pix    []Color
	Width  int
	Height int
}

func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Pix:    make([]Color, width*height),
		Width:  width,
		Height: height,
	}
}

// Point is an integer pixel coordinate, origin top-left.
type Point struct{ X, Y int }

func (fb *FrameBuffer) Contains(p Point) bool {
	return p.X >= 0 && p.X < fb.Width && p.Y >= 0 && p.Y < fb.Height
}

// At returns the pixel at p, or 0 outside the buffer.
func (fb *FrameBuffer) At(p Point) Color {
	if !fb.Contains(p) {
		return 0
	}
	return fb.Pix[p.Y*fb.Width+p.X]
}

// Set writes c at p; writes outside the buffer are dropped.
func (fb *FrameBuffer) Set(p Point, c Color) {
	if fb.Contains(p) {
		fb.Pix[p.Y*fb.Width+p.X] = c
	}
}

// Viewport is the framebuffer rectangle NDC maps onto.
type Viewport struct {
	X, Y          int
	Width, Height int
}
