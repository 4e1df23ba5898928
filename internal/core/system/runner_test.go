package system

import (
	"reflect"
	"testing"
	"time"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
	dts   []time.Duration
}

func (r *recorder) Phase() Phase { return r.phase }
func (r *recorder) Update(dt time.Duration) {
	*r.log = append(*r.log, r.name)
	r.dts = append(r.dts, dt)
}

func TestRunnerOrdersByPhaseStable(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recorder{name: "cleanup", phase: PhaseCleanup, log: &log})
	r.Register(&recorder{name: "physics", phase: PhasePhysics, log: &log})
	r.Register(&recorder{name: "script-a", phase: PhaseScript, log: &log})
	r.Register(&recorder{name: "script-b", phase: PhaseScript, log: &log})
	r.Register(&recorder{name: "collision", phase: PhaseCollision, log: &log})

	r.Tick(16 * time.Millisecond)

	want := []string{"script-a", "script-b", "physics", "collision", "cleanup"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("order = %v, want %v", log, want)
	}
	if r.Len() != 5 {
		t.Errorf("Len = %d", r.Len())
	}
}

func TestRunnerPassesDt(t *testing.T) {
	var log []string
	rec := &recorder{name: "s", phase: PhaseBounds, log: &log}
	r := NewRunner()
	r.Register(rec)
	r.Tick(10 * time.Millisecond)
	r.Tick(20 * time.Millisecond)
	if want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}; !reflect.DeepEqual(rec.dts, want) {
		t.Errorf("dts = %v", rec.dts)
	}
}

func TestRunnerCountsFrames(t *testing.T) {
	r := NewRunner()
	for range 3 {
		r.Tick(time.Millisecond)
	}
	if r.Frames() != 3 {
		t.Errorf("Frames = %d, want 3", r.Frames())
	}
}

func TestRegisterUnknownPhasePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register accepted an out-of-range phase")
		}
	}()
	var log []string
	NewRunner().Register(&recorder{name: "bad", phase: Phase(99), log: &log})
}

func TestTickPhaseRunsOnlyThatPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recorder{name: "script", phase: PhaseScript, log: &log})
	r.Register(&recorder{name: "physics", phase: PhasePhysics, log: &log})

	r.TickPhase(PhasePhysics, time.Millisecond)
	if want := []string{"physics"}; !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v", log)
	}
	if r.Frames() != 0 {
		t.Errorf("TickPhase counted as a frame")
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseCollision.String() != "Collision" || Phase(42).String() != "Unknown" {
		t.Error("unexpected phase names")
	}
}
