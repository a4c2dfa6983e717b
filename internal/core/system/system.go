package system

import "time"

// Phase defines execution ordering within a single editor tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain console/script command queue
	PhasePreUpdate               // 1: dispatch queued editor events (edits, undo/redo)
	PhaseUpdate                  // 2: per-tick tool work, unused by the console front end
	PhasePostUpdate              // 3: history notifications
	PhasePersist                 // 4: scene autosave
	PhaseCleanup                 // 5: destroy retired ghosts
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhasePersist:
		return "persist"
	case PhaseCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// System is the interface every editor system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
