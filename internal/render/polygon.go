package render

import "github.com/gwarsgo/gwars/internal/vecmath"

// Vertex is one polygon corner. A Break vertex interrupts the outline: no
// edge is drawn into or out of it.
type Vertex struct {
	Pos   vecmath.Vec2
	Break bool
}

// Polygon is a closed outline drawn as antialiased segments.
type Polygon struct {
	Vertices  []Vertex
	Color     Color
	Thickness float64
}

func newPolygon(color Color, thickness float64, pts ...vecmath.Vec2) Polygon {
	p := Polygon{Color: color, Thickness: thickness, Vertices: make([]Vertex, len(pts))}
	for i, pt := range pts {
		p.Vertices[i] = Vertex{Pos: pt}
	}
	return p
}

func NewLine(from, to vecmath.Vec2, color Color, thickness float64) Polygon {
	return newPolygon(color, thickness, from, to)
}

func NewTriangle(v0, v1, v2 vecmath.Vec2, color Color, thickness float64) Polygon {
	return newPolygon(color, thickness, v0, v1, v2)
}

func NewQuad(v0, v1, v2, v3 vecmath.Vec2, color Color, thickness float64) Polygon {
	return newPolygon(color, thickness, v0, v1, v2, v3)
}

func (p Polygon) Empty() bool { return len(p.Vertices) == 0 }

// Clone returns a deep copy so callers can recolour without aliasing.
func (p Polygon) Clone() Polygon {
	c := p
	c.Vertices = append([]Vertex(nil), p.Vertices...)
	return c
}
