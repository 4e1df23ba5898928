package system

import (
	"fmt"
	"time"
)

// Runner executes systems in phase order each frame. Systems sharing a
// phase keep their registration order.
type Runner struct {
	phases [phaseCount][]System
	count  int
	frames uint64
}

func NewRunner() *Runner {
	return &Runner{}
}

// Register adds s to its phase. A phase outside the known range is a
// programming error.
func (r *Runner) Register(s System) {
	p := s.Phase()
	if p < 0 || p >= phaseCount {
		panic(fmt.Sprintf("system: %T has unknown phase %d", s, int(p)))
	}
	r.phases[p] = append(r.phases[p], s)
	r.count++
}

func (r *Runner) Len() int { return r.count }

// Frames is the number of completed Ticks.
func (r *Runner) Frames() uint64 { return r.frames }

func (r *Runner) Tick(dt time.Duration) {
	for _, systems := range r.phases {
		for _, s := range systems {
			s.Update(dt)
		}
	}
	r.frames++
}

// TickPhase runs only the systems of one phase and does not count as a
// frame.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	if phase < 0 || phase >= phaseCount {
		return
	}
	for _, s := range r.phases[phase] {
		s.Update(dt)
	}
}
