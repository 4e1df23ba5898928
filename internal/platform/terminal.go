// Package platform hosts the game in a terminal: tcell presents the
// framebuffer and delivers input, and App drives the frame loop.
package platform

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gwarsgo/gwars/internal/render"
	"github.com/gwarsgo/gwars/internal/vecmath"
	"go.uber.org/zap"
)

// halfBlock draws the top pixel of a cell as foreground and the bottom one
// as background.
const halfBlock = '▀'

// layout is where the framebuffer landed on screen during the last Present.
type layout struct {
	scale  float64 // screen pixels per framebuffer pixel
	offX   int     // cells
	offY   int     // screen pixel rows, below the status line
	width  int     // framebuffer size
	height int
}

// Terminal presents framebuffers on a tcell screen, two pixels per cell.
// Row 0 is the status line.
type Terminal struct {
	screen tcell.Screen
	log    *zap.Logger
	layout layout
}

// NewTerminal initializes screen, or the real terminal when screen is nil.
func NewTerminal(screen tcell.Screen, mouse bool, log *zap.Logger) (*Terminal, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("open terminal: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	screen.HideCursor()
	if mouse {
		screen.EnableMouse(tcell.MouseMotionEvents)
	}
	screen.Clear()

	w, h := screen.Size()
	log.Info("terminal ready", zap.Int("cols", w), zap.Int("rows", h), zap.Bool("mouse", mouse))
	return &Terminal{screen: screen, log: log}, nil
}

func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Events forwards screen events to the returned channel until quit closes.
func (t *Terminal) Events(quit <-chan struct{}) <-chan tcell.Event {
	ch := make(chan tcell.Event, 64)
	go t.screen.ChannelEvents(ch, quit)
	return ch
}

func (t *Terminal) Close() {
	t.screen.Fini()
}

// Present scales fb to fit under the status line, keeping its aspect, and
// shows it.
func (t *Terminal) Present(fb *render.FrameBuffer, status string) {
	cols, rows := t.screen.Size()
	t.screen.Clear()
	t.drawStatus(status, cols)

	l := fit(fb.Width, fb.Height, cols, (rows-1)*2)
	t.layout = l
	if l.scale <= 0 {
		t.screen.Show()
		return
	}

	drawW := int(float64(fb.Width) * l.scale)
	drawH := int(float64(fb.Height) * l.scale)
	for cy := 0; cy*2 < drawH; cy++ {
		for cx := range drawW {
			top := t.sample(fb, cx, cy*2)
			bottom := top
			if cy*2+1 < drawH {
				bottom = t.sample(fb, cx, cy*2+1)
			}
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			t.screen.SetContent(l.offX+cx, 1+l.offY/2+cy, halfBlock, nil, style)
		}
	}
	t.screen.Show()
}

// sample maps a screen pixel inside the drawn area back to fb.
func (t *Terminal) sample(fb *render.FrameBuffer, px, py int) render.Color {
	x := int(float64(px) / t.layout.scale)
	y := int(float64(py) / t.layout.scale)
	return fb.At(render.Point{X: min(x, fb.Width-1), Y: min(y, fb.Height-1)})
}

func (t *Terminal) drawStatus(status string, cols int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range status {
		if x >= cols {
			break
		}
		t.screen.SetContent(x, 0, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		t.screen.SetContent(x, 0, ' ', nil, style)
	}
}

// CellToNDC maps a screen cell to normalized device coordinates of the
// last presented framebuffer. ok is false outside the picture.
func (t *Terminal) CellToNDC(x, y int) (ndc vecmath.Vec2, ok bool) {
	l := t.layout
	if l.scale <= 0 || y < 1 {
		return vecmath.Vec2{}, false
	}
	// Centre of the cell; a cell spans two pixel rows.
	px := (float64(x-l.offX) + 0.5) / l.scale
	py := (float64((y-1)*2-l.offY) + 1) / l.scale
	if px < 0 || py < 0 || px > float64(l.width) || py > float64(l.height) {
		return vecmath.Vec2{}, false
	}
	return vecmath.V2(px/float64(l.width)*2-1, 1-py/float64(l.height)*2), true
}

// fit scales a w x h picture into an area of cols x pixelRows, centred.
// offY is rounded down to a whole cell.
func fit(w, h, cols, pixelRows int) layout {
	if w <= 0 || h <= 0 || cols <= 0 || pixelRows <= 0 {
		return layout{}
	}
	scale := min(float64(cols)/float64(w), float64(pixelRows)/float64(h))
	drawW := int(float64(w) * scale)
	drawH := int(float64(h) * scale)
	return layout{
		scale:  scale,
		offX:   (cols - drawW) / 2,
		offY:   (pixelRows - drawH) / 4 * 2,
		width:  w,
		height: h,
	}
}

func toTcell(c render.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R()), int32(c.G()), int32(c.B()))
}
