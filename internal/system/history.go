package system

import (
	"time"

	"github.com/pgeditor/editor/internal/core/event"
	coresys "github.com/pgeditor/editor/internal/core/system"
	"github.com/pgeditor/editor/internal/tracker"
	"go.uber.org/zap"
)

// HistorySystem turns undo/redo requests into ChangeLog calls, one call per
// request, and posts HistoryChanged once per tick when anything moved.
// Phase 3 (PostUpdate).
type HistorySystem struct {
	history  *tracker.ChangeLog
	world    tracker.World
	bus      *event.Bus
	log      *zap.Logger
	seen     uint64
	onChange func(event.HistoryChanged)
	settle   func()
}

func NewHistorySystem(history *tracker.ChangeLog, w tracker.World, bus *event.Bus, log *zap.Logger) *HistorySystem {
	s := &HistorySystem{
		history: history,
		world:   w,
		bus:     bus,
		log:     log,
		seen:    history.Revision(),
	}
	event.Subscribe(bus, func(event.UndoRequested) { s.Undo() })
	event.Subscribe(bus, func(event.RedoRequested) { s.Redo() })
	return s
}

// OnChange registers a callback run with every HistoryChanged this system posts.
func (s *HistorySystem) OnChange(fn func(event.HistoryChanged)) { s.onChange = fn }

// BeforeStep registers fn to run ahead of every undo and redo. Producers use
// it to close open gestures so no pending edit outlives the step.
func (s *HistorySystem) BeforeStep(fn func()) { s.settle = fn }

// Undo steps history back once. Returns false at the start of history.
func (s *HistorySystem) Undo() bool {
	s.beforeStep()
	if !s.history.Undo(s.world) {
		s.log.Debug("undo ignored, nothing to undo")
		return false
	}
	return true
}

// Redo steps history forward once. Returns false at the head of history.
func (s *HistorySystem) Redo() bool {
	s.beforeStep()
	if !s.history.Redo(s.world) {
		s.log.Debug("redo ignored, nothing to redo")
		return false
	}
	return true
}

func (s *HistorySystem) beforeStep() {
	if s.settle != nil {
		s.settle()
	}
}

func (s *HistorySystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *HistorySystem) Update(_ time.Duration) {
	rev := s.history.Revision()
	if rev == s.seen {
		return
	}
	s.seen = rev
	ev := event.HistoryChanged{Cursor: s.history.Cursor(), Len: s.history.Len()}
	event.Emit(s.bus, ev)
	if s.onChange != nil {
		s.onChange(ev)
	}
}
