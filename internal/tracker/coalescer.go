package tracker

import (
	"fmt"
	"sort"

	"github.com/pgeditor/editor/internal/component"
	"github.com/pgeditor/editor/internal/config"
	"github.com/pgeditor/editor/internal/core/ecs"
)

// TransformCoalescer folds a continuous edit (drag, gizmo, nudge-and-hold)
// into one pending TransformOp per entity until the interaction ends.
//
// A pending entry's Old is fixed at first touch; New follows every update.
type TransformCoalescer struct {
	pending       map[ecs.EntityID]*TransformOp
	skipUnchanged bool
}

func NewTransformCoalescer(cfg config.CoalesceConfig) *TransformCoalescer {
	return &TransformCoalescer{
		pending:       make(map[ecs.EntityID]*TransformOp),
		skipUnchanged: cfg.SkipUnchanged,
	}
}

// Touch opens a pending edit for id at current, or moves an open one's New to current.
func (c *TransformCoalescer) Touch(id ecs.EntityID, current component.Transform) {
	if op, ok := c.pending[id]; ok {
		op.New = current
		return
	}
	c.pending[id] = NewTransform(id, current)
}

// PeekMut returns the pending edit for in-place mutation. Calling it before
// Touch is a producer bug and panics.
func (c *TransformCoalescer) PeekMut(id ecs.EntityID) *TransformOp {
	op, ok := c.pending[id]
	if !ok {
		panic(fmt.Sprintf("tracker: no pending transform for entity %s; Touch it first", id))
	}
	return op
}

// Pending is the non-panicking lookup.
func (c *TransformCoalescer) Pending(id ecs.EntityID) (*TransformOp, bool) {
	op, ok := c.pending[id]
	return op, ok
}

// Commit closes the pending edit for id and records it into log. Returns
// whether an entry was recorded: false when nothing was pending or, with
// skip_unchanged on, when the edit ended where it started.
func (c *TransformCoalescer) Commit(id ecs.EntityID, log *ChangeLog) bool {
	op, ok := c.pending[id]
	if !ok {
		return false
	}
	delete(c.pending, id)
	if c.skipUnchanged && !op.Changed() {
		return false
	}
	op.Record(log)
	return true
}

// CommitBatch closes every pending edit and records them as a single entry,
// so a multi-entity drag undoes in one step. One edit is recorded as a plain
// TransformOp. Returns how many edits the entry holds.
func (c *TransformCoalescer) CommitBatch(log *ChangeLog) int {
	batch := NewComposite[*TransformOp]()
	for _, id := range c.IDs() {
		op := c.pending[id]
		delete(c.pending, id)
		if c.skipUnchanged && !op.Changed() {
			continue
		}
		batch.Add(op)
	}
	switch batch.Len() {
	case 0:
	case 1:
		batch.Ops()[0].Record(log)
	default:
		batch.Record(log)
	}
	return batch.Len()
}

// Discard drops the pending edit for id without recording it.
func (c *TransformCoalescer) Discard(id ecs.EntityID) {
	delete(c.pending, id)
}

func (c *TransformCoalescer) Len() int { return len(c.pending) }

// IDs lists entities with a pending edit, ascending.
func (c *TransformCoalescer) IDs() []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(c.pending))
	for id := range c.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
