package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseScript    Phase = iota // 0: script OnUpdate hooks
	PhaseParticles              // 1: advance particle systems
	PhasePhysics                // 2: integrate forces and velocities
	PhaseBounds                 // 3: refresh bounding sphere world transforms
	PhaseCollision              // 4: pairwise collision tests
	PhaseCleanup                // 5: destroy entities queued for removal

	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseScript:
		return "Script"
	case PhaseParticles:
		return "Particles"
	case PhasePhysics:
		return "Physics"
	case PhaseBounds:
		return "Bounds"
	case PhaseCollision:
		return "Collision"
	case PhaseCleanup:
		return "Cleanup"
	default:
		return "Unknown"
	}
}

// System is the interface every frame system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
