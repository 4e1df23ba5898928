package scene

import (
	"math"
	"testing"
	"time"

	"github.com/gwarsgo/gwars/internal/core/ecs"
	"github.com/gwarsgo/gwars/internal/core/event"
	"github.com/gwarsgo/gwars/internal/render"
	"github.com/gwarsgo/gwars/internal/vecmath"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// recorder logs every hook call into a shared journal.
type recorder struct {
	name    string
	journal *[]string
	entity  ecs.Entity
	update  func(time.Duration)
}

func (r *recorder) OnAttach(e ecs.Entity, _ *event.Dispatcher) {
	r.entity = e
	*r.journal = append(*r.journal, r.name+":attach")
}

func (r *recorder) OnDetach(ecs.Entity, *event.Dispatcher) {
	*r.journal = append(*r.journal, r.name+":detach")
}

func (r *recorder) OnUpdate(dt time.Duration) {
	*r.journal = append(*r.journal, r.name+":update")
	if r.update != nil {
		r.update(dt)
	}
}

func (r *recorder) Release() {
	*r.journal = append(*r.journal, r.name+":release")
}

func newScene(t *testing.T) *Scene {
	t.Helper()
	s := New(event.NewDispatcher(), zaptest.NewLogger(t))
	s.OnInit()
	return s
}

func equalJournal(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("journal = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("journal = %v, want %v", got, want)
		}
	}
}

func TestScriptAttachedBeforeCreateReturns(t *testing.T) {
	s := newScene(t)
	var journal []string
	rec := &recorder{name: "s", journal: &journal}

	e := s.CreateEntity()
	ecs.Add(e, Script{Behavior: rec})

	equalJournal(t, journal, "s:attach")
	if rec.entity != e {
		t.Errorf("attached to %v, want %v", rec.entity, e)
	}
}

func TestScriptDetachedBeforeRelease(t *testing.T) {
	s := newScene(t)
	var journal []string

	e := s.CreateEntity()
	ecs.Add(e, Script{Behavior: &recorder{name: "s", journal: &journal}})
	ecs.Remove[Script](e)
	equalJournal(t, journal, "s:attach", "s:detach", "s:release")

	journal = nil
	e2 := s.CreateEntity()
	ecs.Add(e2, Script{Behavior: &recorder{name: "t", journal: &journal}})
	e2.Destroy()
	equalJournal(t, journal, "t:attach", "t:detach", "t:release")
}

func TestCloseDetachesEveryScript(t *testing.T) {
	s := newScene(t)
	var journal []string
	ecs.Add(s.CreateEntity(), Script{Behavior: &recorder{name: "a", journal: &journal}})
	s.Close()
	equalJournal(t, journal, "a:attach", "a:detach", "a:release")
	if s.Manager().EntityCount() != 0 {
		t.Error("entities left after Close")
	}
}

func TestOnInitTwicePanics(t *testing.T) {
	s := newScene(t)
	defer func() {
		if recover() == nil {
			t.Error("second OnInit did not panic")
		}
	}()
	s.OnInit()
}

func TestOnUpdateBeforeInitPanics(t *testing.T) {
	s := New(nil, nil)
	if !s.Stopped() {
		t.Error("uninitialized scene reports running")
	}
	defer func() {
		if recover() == nil {
			t.Error("OnUpdate before OnInit did not panic")
		}
	}()
	s.OnUpdate(time.Millisecond)
}

func TestMainCameraFirstWins(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := New(event.NewDispatcher(), zap.New(core))
	s.OnInit()

	if _, ok := s.MainCamera(); ok {
		t.Fatal("main camera before any camera exists")
	}

	side := s.CreateEntity()
	ecs.Add(side, Camera{Specs: render.NewOrthographicCamera(10, 10)})
	if _, ok := s.MainCamera(); ok {
		t.Fatal("non-main camera recorded as main")
	}

	first := s.CreateEntity()
	ecs.Add(first, Camera{Specs: render.NewOrthographicCamera(10, 10), Main: true})
	second := s.CreateEntity()
	ecs.Add(second, Camera{Specs: render.NewOrthographicCamera(20, 20), Main: true})

	if cam, ok := s.MainCamera(); !ok || cam != first {
		t.Errorf("main camera = %v, want %v", cam, first)
	}
	if logs.FilterMessage("second main camera ignored").Len() != 1 {
		t.Errorf("expected one warning, got %v", logs.All())
	}

	first.Destroy()
	if _, ok := s.MainCamera(); ok {
		t.Error("destroyed main camera still reported")
	}
}

func collisionCounter(s *Scene) *[]CollisionEvent {
	var got []CollisionEvent
	event.Subscribe(s.Dispatcher(), func(ev CollisionEvent) { got = append(got, ev) })
	return &got
}

func sphereAt(s *Scene, pos vecmath.Vec2, radius float64) ecs.Entity {
	e := s.CreateEntity()
	ecs.Add(e, NewTransform(pos))
	ecs.Add(e, NewBoundingSphere(radius, vecmath.Vec2{}))
	return e
}

func TestCollisionDedup(t *testing.T) {
	s := newScene(t)
	got := collisionCounter(s)

	a := sphereAt(s, vecmath.V2(0, 0), 1)
	b := sphereAt(s, vecmath.V2(0, 0), 1)
	s.OnUpdate(16 * time.Millisecond)

	if len(*got) != 1 {
		t.Fatalf("got %d collision events, want 1", len(*got))
	}
	ev := (*got)[0]
	pair := map[ecs.Entity]bool{ev.First: true, ev.Second: true}
	if !pair[a] || !pair[b] {
		t.Errorf("event %v does not name both entities", ev)
	}
}

func TestCollisionPairsCountedOnce(t *testing.T) {
	s := newScene(t)
	got := collisionCounter(s)

	sphereAt(s, vecmath.V2(0, 0), 1)
	sphereAt(s, vecmath.V2(1, 0), 1)
	sphereAt(s, vecmath.V2(2, 0), 1)
	sphereAt(s, vecmath.V2(50, 0), 1) // touches nobody
	s.OnUpdate(time.Millisecond)

	// 0-1, 1-2 and 0-2 (distance 2 equals the radius sum)
	if len(*got) != 3 {
		t.Errorf("got %d collision events, want 3", len(*got))
	}
}

func TestCollisionSkipsSubmitted(t *testing.T) {
	s := newScene(t)
	got := collisionCounter(s)

	a := sphereAt(s, vecmath.V2(0, 0), 1)
	sphereAt(s, vecmath.V2(0.5, 0), 1)
	s.SubmitToRemove(a)
	s.OnUpdate(time.Millisecond)

	if len(*got) != 0 {
		t.Errorf("collision reported for submitted entity: %v", *got)
	}
	if a.Valid() {
		t.Error("submitted entity survived the frame")
	}
}

func TestCollisionHandlerRemovalSkipsLaterPairs(t *testing.T) {
	s := newScene(t)
	var count int
	event.Subscribe(s.Dispatcher(), func(ev CollisionEvent) {
		count++
		s.SubmitToRemove(ev.First)
		s.SubmitToRemove(ev.Second)
	})
	sphereAt(s, vecmath.V2(0, 0), 1)
	sphereAt(s, vecmath.V2(0, 0), 1)
	sphereAt(s, vecmath.V2(0, 0), 1)
	s.OnUpdate(time.Millisecond)

	// The first pair consumes two of the three; the third has no partner left.
	if count != 1 {
		t.Errorf("handler ran %d times, want 1", count)
	}
	if s.Manager().EntityCount() != 1 {
		t.Errorf("entity count = %d, want 1", s.Manager().EntityCount())
	}
}

func TestDeferredRemoval(t *testing.T) {
	s := newScene(t)
	var journal []string

	victim := s.CreateEntity()
	ecs.Add(victim, NewTransform(vecmath.V2(1, 1)))

	var seenAfterSubmit bool
	killer := &recorder{name: "k", journal: &journal}
	killer.update = func(time.Duration) {
		s.SubmitToRemove(victim)
		seenAfterSubmit = victim.Valid() && ecs.Has[Transform](victim)
	}
	ecs.Add(s.CreateEntity(), Script{Behavior: killer})

	if s.IsSubmittedToRemove(victim) {
		t.Fatal("victim queued before update")
	}
	s.OnUpdate(time.Millisecond)

	if !seenAfterSubmit {
		t.Error("victim vanished before the frame finished")
	}
	if victim.Valid() {
		t.Error("victim still alive after the frame")
	}
	if s.IsSubmittedToRemove(victim) {
		t.Error("removal queue not cleared")
	}
	// Submitting a dead entity is ignored.
	s.SubmitToRemove(victim)
	s.OnUpdate(time.Millisecond)
}

func TestPhysicsIntegration(t *testing.T) {
	s := newScene(t)
	e := s.CreateEntity()
	tr := ecs.Add(e, NewTransform(vecmath.V2(0, 0)))
	p := ecs.Add(e, Physics{Force: vecmath.V2(2, 0), Mass: 2})

	s.OnUpdate(time.Second)
	if p.Velocity != vecmath.V2(1, 0) {
		t.Errorf("velocity = %v", p.Velocity)
	}
	if tr.Translation != vecmath.V2(1, 0) {
		t.Errorf("translation = %v", tr.Translation)
	}

	s.OnUpdate(500 * time.Millisecond)
	if !tr.Translation.Equals(vecmath.V2(1+1.5*0.5, 0), 1e-9) {
		t.Errorf("translation after second step = %v", tr.Translation)
	}
}

func TestScriptsRunBeforePhysics(t *testing.T) {
	s := newScene(t)
	var journal []string
	e := s.CreateEntity()
	tr := ecs.Add(e, NewTransform(vecmath.Vec2{}))
	p := ecs.Add(e, NewPhysics(vecmath.Vec2{}))
	rec := &recorder{name: "thrust", journal: &journal}
	rec.update = func(time.Duration) { p.Force = vecmath.V2(0, 4) }
	ecs.Add(e, Script{Behavior: rec})

	s.OnUpdate(time.Second)
	if tr.Translation != vecmath.V2(0, 4) {
		t.Errorf("force set by script not integrated in the same frame: %v", tr.Translation)
	}
}

func TestBoundingSphereWorldTransform(t *testing.T) {
	s := newScene(t)
	e := s.CreateEntity()
	ecs.Add(e, Transform{Translation: vecmath.V2(5, 0), Scale: vecmath.V2(2, -3)})
	b := ecs.Add(e, NewBoundingSphere(1, vecmath.V2(1, 0)))

	loose := s.CreateEntity()
	lb := ecs.Add(loose, NewBoundingSphere(2, vecmath.V2(7, 7)))

	s.OnUpdate(time.Millisecond)
	if !b.WorldCenter.Equals(vecmath.V2(7, 0), 1e-9) || b.WorldRadius != 3 {
		t.Errorf("world sphere = %v r=%v", b.WorldCenter, b.WorldRadius)
	}
	if lb.WorldCenter != vecmath.V2(7, 7) || lb.WorldRadius != 2 {
		t.Errorf("sphere without transform = %v r=%v", lb.WorldCenter, lb.WorldRadius)
	}
}

func TestTransformInverse(t *testing.T) {
	tr := Transform{Translation: vecmath.V2(3, -2), Rotation: math.Pi / 3, Scale: vecmath.V2(2, 0.5)}
	if !tr.Matrix().Mul(tr.InverseMatrix()).Equals(vecmath.Identity(), 1e-9) {
		t.Error("M * M^-1 is not identity")
	}
	mirrored := Transform{Translation: vecmath.V2(-1, 4), Rotation: 0.7, Scale: vecmath.V2(-1.5, 2)}
	if !mirrored.Matrix().Mul(mirrored.InverseMatrix()).Equals(vecmath.Identity(), 1e-9) {
		t.Error("mirrored M * M^-1 is not identity")
	}

	defer func() {
		if recover() == nil {
			t.Error("inverse with zero scale did not panic")
		}
	}()
	Transform{}.InverseMatrix()
}

func TestParticleEmittersAdvance(t *testing.T) {
	s := newScene(t)
	ps := render.NewParticleSystem(4, render.NewQuad(
		vecmath.V2(-1, -1), vecmath.V2(1, -1), vecmath.V2(1, 1), vecmath.V2(-1, 1),
		render.White, 1), nil)
	ecs.Add(s.CreateEntity(), ParticleEmitter{System: ps})
	ps.Emit(render.ParticleSpecs{SizeBegin: 1, Lifetime: 10 * time.Millisecond})

	s.OnUpdate(20 * time.Millisecond)
	s.OnUpdate(time.Millisecond)
	if ps.Active() != 0 {
		t.Errorf("%d particles still active", ps.Active())
	}
}

func TestRenderThroughMainCamera(t *testing.T) {
	s := newScene(t)
	r := render.NewRenderer(render.NewFrameBuffer(40, 40))

	// Without a camera only the clear happens.
	s.Render(r)
	if r.Pixel(render.Point{X: 20, Y: 20}) != render.Background {
		t.Fatal("frame not cleared")
	}

	cam := s.CreateEntity()
	ecs.Add(cam, NewTransform(vecmath.V2(100, 0)))
	ecs.Add(cam, Camera{Specs: render.NewOrthographicCamera(40, 40), Main: true})

	ship := s.CreateEntity()
	ecs.Add(ship, NewTransform(vecmath.V2(100, 0)))
	ecs.Add(ship, Polygon{Shape: render.NewLine(vecmath.V2(-5, 0), vecmath.V2(5, 0), render.White, 1)})

	s.Render(r)
	if got := r.Pixel(render.Point{X: 20, Y: 20}); got.R() != 255 {
		t.Errorf("pixel under the line = %#x", uint32(got))
	}
	if got := r.Pixel(render.Point{X: 20, Y: 5}); got != render.Background {
		t.Errorf("pixel away from the line = %#x", uint32(got))
	}
}

func TestRenderThroughMirroredCamera(t *testing.T) {
	s := newScene(t)
	r := render.NewRenderer(render.NewFrameBuffer(40, 40))

	cam := s.CreateEntity()
	ecs.Add(cam, Transform{Translation: vecmath.V2(100, 0), Scale: vecmath.V2(-1, 1)})
	ecs.Add(cam, Camera{Specs: render.NewOrthographicCamera(40, 40), Main: true})

	ship := s.CreateEntity()
	ecs.Add(ship, NewTransform(vecmath.V2(100, 0)))
	ecs.Add(ship, Polygon{Shape: render.NewLine(vecmath.V2(-5, 0), vecmath.V2(5, 0), render.White, 1)})

	s.Render(r)
	if got := r.Pixel(render.Point{X: 20, Y: 20}); got.R() != 255 {
		t.Errorf("pixel under the line = %#x", uint32(got))
	}
}
