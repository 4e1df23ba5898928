package platform

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gwarsgo/gwars/internal/audio"
	"github.com/gwarsgo/gwars/internal/config"
	"github.com/gwarsgo/gwars/internal/core/event"
	"github.com/gwarsgo/gwars/internal/game"
	"github.com/gwarsgo/gwars/internal/input"
	"github.com/gwarsgo/gwars/internal/render"
	"go.uber.org/zap"
)

// maxStep caps the simulated time of one frame after a stall.
const maxStep = 100 * time.Millisecond

// Options wires an App. Bindings and Audio are optional.
type Options struct {
	Display  config.DisplayConfig
	Lang     string
	Layer    *game.Layer
	Terminal *Terminal
	Bindings *input.Bindings
	Audio    *audio.Manager
	Log      *zap.Logger
}

// App is the running game: every collaborator the frame loop touches.
type App struct {
	log        *zap.Logger
	display    config.DisplayConfig
	dispatcher *event.Dispatcher
	queue      *event.Queue
	layer      *game.Layer
	renderer   *render.Renderer
	term       *Terminal
	translator *Translator
	audio      *audio.Manager
	hud        HUD

	state input.State
	last  time.Time
}

// NewApp initializes the layer and subscribes audio to its events. Input
// reaches the layer through its scene's dispatcher.
func NewApp(o Options) *App {
	log := o.Log
	if log == nil {
		log = zap.NewNop()
	}
	bindings := o.Bindings
	if bindings == nil {
		bindings = input.DefaultBindings(log)
	}
	queue := event.NewQueue()
	a := &App{
		log:        log,
		display:    o.Display,
		dispatcher: o.Layer.Scene().Dispatcher(),
		queue:      queue,
		layer:      o.Layer,
		renderer:   render.NewRenderer(render.NewFrameBuffer(o.Display.Width, o.Display.Height)),
		term:       o.Terminal,
		audio:      o.Audio,
		hud:        NewHUD(o.Lang),
		state:      input.StatePlaying,
	}
	a.translator = NewTranslator(bindings, NewKeyLatch(o.Display.KeyHold), queue, o.Terminal.CellToNDC, log)

	if a.audio != nil {
		a.audio.Subscribe(a.dispatcher)
	}
	if !a.layer.Scene().Initialized() {
		a.layer.OnInit()
	}
	return a
}

// Run drives frames at the configured rate until the player quits, leaves
// the game over screen, or ctx is done.
func (a *App) Run(ctx context.Context) error {
	quit := make(chan struct{})
	defer close(quit)
	events := a.term.Events(quit)

	interval := a.display.FrameInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.last = time.Now()
	a.render()
	a.log.Info("game loop started", zap.Duration("frame", interval))

	for {
		select {
		case <-ctx.Done():
			a.log.Info("game loop stopped", zap.Error(ctx.Err()))
			return nil
		case ev := <-events:
			if a.handle(ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			a.frame(now)
		}
	}
}

// handle processes one terminal event and reports whether the loop should
// end.
func (a *App) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch a.translator.Key(ev, a.state, now) {
		case input.KeyQuit:
			a.log.Info("quit requested", zap.Stringer("state", a.state))
			return true
		case input.KeyContinue:
			return true
		}
	case *tcell.EventMouse:
		if a.state == input.StatePlaying {
			a.translator.Mouse(ev)
		}
	case *tcell.EventResize:
		a.term.Screen().Sync()
	}
	return false
}

func (a *App) frame(now time.Time) {
	dt := min(now.Sub(a.last), maxStep)
	a.last = now

	a.translator.Tick(now)
	a.queue.Flush(a.dispatcher)

	if a.state == input.StatePlaying {
		a.layer.OnUpdate(dt)
		if a.layer.Stopped() {
			a.state = input.StateGameOver
			a.translator.ReleaseAll()
			a.log.Info("game over",
				zap.Uint64("score", a.layer.Score()),
				zap.Uint64("wave", a.layer.Level()))
		}
	}
	a.render()
}

func (a *App) render() {
	a.layer.OnRender(a.renderer)
	status := a.hud.Playing(a.layer.Score(), a.layer.Level())
	if a.state == input.StateGameOver {
		status = a.hud.GameOver(a.layer.Score(), a.layer.Level())
	}
	a.term.Present(a.renderer.FrameBuffer(), status)
}

func (a *App) State() input.State { return a.state }

// Summary describes the finished round.
func (a *App) Summary() string {
	return a.hud.Summary(a.layer.Score(), a.layer.Level())
}

// Close releases the layer, the audio device and the terminal.
func (a *App) Close() {
	a.layer.Close()
	if a.audio != nil {
		a.audio.Close()
	}
	a.term.Close()
}
