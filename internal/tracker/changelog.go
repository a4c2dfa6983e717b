package tracker

import (
	"github.com/pgeditor/editor/internal/config"
	"go.uber.org/zap"
)

// ChangeLog is the ordered, cursor-addressed edit history of one editing
// session. Entries in [0, cursor) are applied; entries in [cursor, Len()) are
// undone and available to redo. Accessed only from the editor loop.
type ChangeLog struct {
	history  []Op
	cursor   int
	revision uint64

	retainUndoneTail bool
	compositeOrder   UndoOrder

	log *zap.Logger
}

func NewChangeLog(cfg config.HistoryConfig, log *zap.Logger) *ChangeLog {
	capacity := cfg.CapacityHint
	if capacity < 0 {
		capacity = 0
	}
	order := UndoInRecordedOrder
	if cfg.ReverseCompositeUndo {
		order = UndoReverse
	}
	return &ChangeLog{
		history:          make([]Op, 0, capacity),
		retainUndoneTail: cfg.RetainUndoneTail,
		compositeOrder:   order,
		log:              log,
	}
}

// Record takes ownership of op and makes it the latest applied entry.
//
// Undone entries past the cursor are dropped first unless the log was built
// with RetainUndoneTail, in which case they stay in the buffer but can no
// longer be reached by Redo.
func (l *ChangeLog) Record(op Op) {
	if op == nil {
		return
	}
	if b, ok := op.(batch); ok {
		b.SetUndoOrder(l.compositeOrder)
	}
	if !l.retainUndoneTail && l.cursor < len(l.history) {
		dropped := len(l.history) - l.cursor
		clear(l.history[l.cursor:])
		l.history = l.history[:l.cursor]
		l.log.Debug("discarded undone edits", zap.Int("count", dropped))
	}
	l.history = append(l.history, op)
	l.cursor = len(l.history)
	l.revision++
	l.log.Debug("recorded edit",
		zap.Stringer("kind", op.Kind()),
		zap.Int("cursor", l.cursor),
	)
}

// Undo reverts the entry just before the cursor. Returns false when there is
// nothing to undo.
func (l *ChangeLog) Undo(w World) bool {
	if l.cursor <= 0 {
		l.log.Debug("nothing to undo")
		return false
	}
	idx := l.cursor - 1
	op := l.history[idx]
	op.Undo(w)
	l.cursor = l.clamp(idx)
	l.revision++
	l.log.Debug("undo",
		zap.Stringer("kind", op.Kind()),
		zap.Int("index", idx),
		zap.Int("cursor", l.cursor),
	)
	return true
}

// Redo re-applies the entry at the cursor. Returns false when there is
// nothing to redo.
func (l *ChangeLog) Redo(w World) bool {
	if l.cursor >= len(l.history) {
		l.log.Debug("nothing to redo")
		return false
	}
	idx := l.cursor
	op := l.history[idx]
	op.Redo(w)
	l.cursor = l.clamp(idx + 1)
	l.revision++
	l.log.Debug("redo",
		zap.Stringer("kind", op.Kind()),
		zap.Int("index", idx),
		zap.Int("cursor", l.cursor),
	)
	return true
}

func (l *ChangeLog) clamp(c int) int {
	return max(0, min(c, len(l.history)))
}

func (l *ChangeLog) Len() int      { return len(l.history) }
func (l *ChangeLog) Cursor() int   { return l.cursor }
func (l *ChangeLog) CanUndo() bool { return l.cursor > 0 }
func (l *ChangeLog) CanRedo() bool { return l.cursor < len(l.history) }

// Revision changes whenever the visible history state changes: record,
// successful undo or redo, and clear.
func (l *ChangeLog) Revision() uint64 { return l.revision }

// At returns the entry at index i.
func (l *ChangeLog) At(i int) (Op, bool) {
	if i < 0 || i >= len(l.history) {
		return nil, false
	}
	return l.history[i], true
}

// Clear forgets all history. Used when the scene is replaced wholesale.
func (l *ChangeLog) Clear() {
	clear(l.history)
	l.history = l.history[:0]
	l.cursor = 0
	l.revision++
}

// Entry is a read-only view of one history slot.
type Entry struct {
	Index   int
	Kind    Kind
	Applied bool
	Summary string
}

// Entries lists history oldest first.
func (l *ChangeLog) Entries() []Entry {
	out := make([]Entry, len(l.history))
	for i, op := range l.history {
		out[i] = Entry{
			Index:   i,
			Kind:    op.Kind(),
			Applied: i < l.cursor,
			Summary: Describe(op),
		}
	}
	return out
}
