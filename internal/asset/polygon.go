// Package asset loads polygon models from the plain-text model format:
//
//	color=rgba(255, 200, 0, 255)
//	thickness=1.5
//	nose=vec2(0,1)
//	wing=vec2(0.8,-0.6)
//	symmetry
//	break
//
// Each "<name>=vec2(x,y)" line appends a vertex. "symmetry" marks where
// mirroring starts: once the file is read, every vertex from that point back
// to the end is appended again in reverse order with x negated. "break"
// appends a break vertex that interrupts the outline. Other lines are
// ignored.
package asset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gwarsgo/gwars/internal/render"
	"github.com/gwarsgo/gwars/internal/vecmath"
	"go.uber.org/zap"
)

// ErrNoVertices is returned when a model contains no vertex lines.
var ErrNoVertices = errors.New("no vertices")

// ParsePolygon reads a model from r.
func ParsePolygon(r io.Reader) (render.Polygon, error) {
	poly := render.Polygon{Color: render.White, Thickness: 1}
	symmetryStart := -1
	points := 0

	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var (
			cr, cg, cb, ca uint32
			thickness      float64
			x, y           float64
		)
		switch {
		case strings.Contains(line, "symmetry"):
			symmetryStart = len(poly.Vertices)
		case line == "break":
			poly.Vertices = append(poly.Vertices, render.Vertex{Break: true})
		case scan(line, "color=rgba(%d, %d, %d, %d)", &cr, &cg, &cb, &ca):
			if cr > 255 || cg > 255 || cb > 255 || ca > 255 {
				return render.Polygon{}, fmt.Errorf("line %d: colour channel out of range", lineNo)
			}
			poly.Color = render.RGBA(uint8(cr), uint8(cg), uint8(cb), uint8(ca))
		case scan(line, "thickness=%g", &thickness):
			poly.Thickness = thickness
		case isVertex(line, &x, &y):
			poly.Vertices = append(poly.Vertices, render.Vertex{Pos: vecmath.V2(x, y)})
			points++
		}
		// Anything else, including a vertex that does not parse, is skipped.
	}
	if err := sc.Err(); err != nil {
		return render.Polygon{}, fmt.Errorf("read model: %w", err)
	}
	if points == 0 {
		return render.Polygon{}, ErrNoVertices
	}

	if symmetryStart >= 0 {
		end := len(poly.Vertices)
		for i := end - 1; i >= symmetryStart; i-- {
			v := poly.Vertices[i]
			v.Pos.X = -v.Pos.X
			poly.Vertices = append(poly.Vertices, v)
		}
	}
	return poly, nil
}

func isVertex(line string, x, y *float64) bool {
	i := strings.Index(line, "=vec2(")
	return i >= 0 && scan(strings.ReplaceAll(line[i:], " ", ""), "=vec2(%g,%g)", x, y)
}

func scan(line, format string, args ...any) bool {
	n, err := fmt.Sscanf(line, format, args...)
	return err == nil && n == len(args)
}

// LoadPolygon reads a model file. Failures are not fatal: the problem is
// logged and an empty polygon returned, which renders as nothing.
func LoadPolygon(path string, log *zap.Logger) render.Polygon {
	f, err := os.Open(path)
	if err != nil {
		log.Warn("open polygon model", zap.String("file", path), zap.Error(err))
		return render.Polygon{}
	}
	defer f.Close()

	poly, err := ParsePolygon(f)
	if err != nil {
		log.Warn("parse polygon model", zap.String("file", path), zap.Error(err))
		return render.Polygon{}
	}
	log.Debug("loaded polygon model",
		zap.String("file", path),
		zap.Int("vertices", len(poly.Vertices)))
	return poly
}
