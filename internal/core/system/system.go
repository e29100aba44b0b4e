package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhasePreUpdate  Phase = iota // 0: housekeeping before battles act
	PhaseUpdate                  // 1: advance every active battle one round
	PhasePostUpdate              // 2: dispatch the round's events
	PhaseOutput                  // 3: status snapshots
	PhasePersist                 // 4: battle log flush
	PhaseCleanup                 // 5: drop resolved battles, release dead combatants
)

func (p Phase) String() string {
	switch p {
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseOutput:
		return "output"
	case PhasePersist:
		return "persist"
	case PhaseCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
