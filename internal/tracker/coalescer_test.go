package tracker

import (
	"testing"

	"github.com/pgeditor/editor/internal/config"
	"github.com/pgeditor/editor/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalesceDragIntoOneEntry(t *testing.T) {
	w := newMemWorld()
	log := newTestLog(t)
	c := NewTransformCoalescer(config.CoalesceConfig{})
	e2 := w.Create(snap("crate", 0, 0, 0))

	for _, x := range []float64{0, 1, 5} {
		w.SetTransform(e2, at(x, 0, 0))
		c.Touch(e2, at(x, 0, 0))
	}
	require.True(t, c.Commit(e2, log))

	require.Equal(t, 1, log.Len())
	op, _ := log.At(0)
	move := op.(*TransformOp)
	assert.Equal(t, at(0, 0, 0), move.Old)
	assert.Equal(t, at(5, 0, 0), move.New)
	assert.Equal(t, 0, c.Len())

	log.Undo(w)
	got, _ := w.Transform(e2)
	assert.Equal(t, at(0, 0, 0), got)
}

func TestPeekMutUpdatesNew(t *testing.T) {
	w := newMemWorld()
	log := newTestLog(t)
	c := NewTransformCoalescer(config.CoalesceConfig{})
	id := w.Create(snap("crate", 0, 0, 0))

	c.Touch(id, at(0, 0, 0))
	c.PeekMut(id).New = at(0, 7, 0)
	c.Commit(id, log)

	op, _ := log.At(0)
	assert.Equal(t, at(0, 7, 0), op.(*TransformOp).New)
	assert.Equal(t, at(0, 0, 0), op.(*TransformOp).Old)
}

func TestPeekMutWithoutTouchPanics(t *testing.T) {
	c := NewTransformCoalescer(config.CoalesceConfig{})
	assert.Panics(t, func() { c.PeekMut(42) })
	_, ok := c.Pending(42)
	assert.False(t, ok)
}

func TestCommitWithoutPending(t *testing.T) {
	log := newTestLog(t)
	c := NewTransformCoalescer(config.CoalesceConfig{})
	assert.False(t, c.Commit(1, log))
	assert.Equal(t, 0, log.Len())
}

func TestNoopDragPolicy(t *testing.T) {
	for _, skip := range []bool{false, true} {
		log := newTestLog(t)
		c := NewTransformCoalescer(config.CoalesceConfig{SkipUnchanged: skip})
		c.Touch(1, at(2, 0, 0))
		c.Touch(1, at(2, 0, 0))

		recorded := c.Commit(1, log)
		assert.Equal(t, !skip, recorded)
		assert.Equal(t, map[bool]int{false: 1, true: 0}[skip], log.Len())
		assert.Equal(t, 0, c.Len())
	}
}

func TestMultiSelectDragCommitsIndependently(t *testing.T) {
	w := newMemWorld()
	log := newTestLog(t)
	c := NewTransformCoalescer(config.CoalesceConfig{})
	a := w.Create(snap("a", 0, 0, 0))
	b := w.Create(snap("b", 10, 0, 0))

	c.Touch(a, at(0, 0, 0))
	c.Touch(b, at(10, 0, 0))
	c.Touch(a, at(1, 0, 0))
	c.Touch(b, at(11, 0, 0))

	require.True(t, c.Commit(b, log))
	_, stillPending := c.Pending(a)
	assert.True(t, stillPending)
	assert.Equal(t, 1, c.CommitBatch(log))
	assert.Equal(t, 2, log.Len())

	c.Touch(a, at(1, 0, 0))
	c.Discard(a)
	assert.Equal(t, 0, c.Len())
}

func TestCommitBatchRecordsOneEntry(t *testing.T) {
	w := newMemWorld()
	log := newTestLog(t)
	c := NewTransformCoalescer(config.CoalesceConfig{SkipUnchanged: true})
	a := w.Create(snap("a", 0, 0, 0))
	b := w.Create(snap("b", 10, 0, 0))
	still := w.Create(snap("c", 20, 0, 0))

	for _, id := range []ecs.EntityID{a, b, still} {
		cur, _ := w.Transform(id)
		c.Touch(id, cur)
	}
	c.PeekMut(a).New = at(1, 0, 0)
	c.PeekMut(b).New = at(11, 0, 0)
	w.SetTransform(a, at(1, 0, 0))
	w.SetTransform(b, at(11, 0, 0))

	assert.Equal(t, 2, c.CommitBatch(log), "unchanged entity is dropped")
	assert.Zero(t, c.Len())
	require.Equal(t, 1, log.Len())
	op, _ := log.At(0)
	assert.Equal(t, KindComposite, op.Kind())

	require.True(t, log.Undo(w))
	ta, _ := w.Transform(a)
	tb, _ := w.Transform(b)
	assert.Equal(t, at(0, 0, 0), ta)
	assert.Equal(t, at(10, 0, 0), tb)

	c.Touch(a, at(0, 0, 0))
	assert.Equal(t, 0, c.CommitBatch(log))
	assert.Equal(t, 1, log.Len(), "nothing recorded for a still drag")
}

func TestCommitBatchSingleIsPlain(t *testing.T) {
	w := newMemWorld()
	log := newTestLog(t)
	c := NewTransformCoalescer(config.CoalesceConfig{})
	a := w.Create(snap("a", 0, 0, 0))
	c.Touch(a, at(0, 0, 0))
	c.PeekMut(a).New = at(2, 0, 0)

	assert.Equal(t, 1, c.CommitBatch(log))
	op, _ := log.At(0)
	assert.Equal(t, KindTransform, op.Kind())
}
