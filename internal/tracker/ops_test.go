package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		// setup builds the starting world and returns the op to exercise.
		setup func(w *memWorld) Op
		// undoFirst is true for ops whose effect is already visible when
		// recorded (the usual case); false starts from the pre-edit world.
		undoFirst bool
	}{
		{
			name: "spawn",
			setup: func(w *memWorld) Op {
				s := snap("crate", 1, 0, 0)
				return NewSpawn(w.Create(s), s)
			},
			undoFirst: true,
		},
		{
			name: "despawn",
			setup: func(w *memWorld) Op {
				s := snap("crate", 1, 0, 0)
				id := w.Create(s)
				w.Destroy(id)
				return NewDespawn(id, s)
			},
			undoFirst: true,
		},
		{
			name: "transform",
			setup: func(w *memWorld) Op {
				id := w.Create(snap("crate", 0, 0, 0))
				op := NewTransform(id, at(0, 0, 0))
				op.New = at(3, 0, 0)
				w.SetTransform(id, op.New)
				return op
			},
			undoFirst: true,
		},
		{
			name: "spawn from pre-edit world",
			setup: func(w *memWorld) Op {
				return NewSpawn(0, snap("rock", 2, 0, 2))
			},
		},
		{
			name: "composite of spawns",
			setup: func(w *memWorld) Op {
				c := NewComposite[*SpawnOp]()
				for i := 0; i < 3; i++ {
					s := snap("tree", float64(i), 0, 0)
					c.Add(NewSpawn(w.Create(s), s))
				}
				return c
			},
			undoFirst: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newMemWorld()
			op := tt.setup(w)
			before := w.view()

			if tt.undoFirst {
				op.Undo(w)
				assert.NotEqual(t, before, w.view(), "undo must change the world")
				op.Redo(w)
			} else {
				op.Redo(w)
				assert.NotEqual(t, before, w.view(), "redo must change the world")
				op.Undo(w)
			}
			assert.Equal(t, before, w.view())
		})
	}
}

func TestSpawnRedoAssignsNewIdentity(t *testing.T) {
	w := newMemWorld()
	s := snap("crate", 0, 0, 0)
	first := w.Create(s)
	op := NewSpawn(first, s)

	op.Undo(w)
	op.Redo(w)
	assert.NotEqual(t, first, op.Entity)
	assert.True(t, w.pool.Alive(op.Entity))
	assert.False(t, w.pool.Alive(first))
}

func TestTransformSkipsMissingEntity(t *testing.T) {
	w := newMemWorld()
	id := w.Create(snap("crate", 0, 0, 0))
	op := NewTransform(id, at(0, 0, 0))
	op.New = at(1, 0, 0)
	w.Destroy(id)

	require.NotPanics(t, func() {
		op.Redo(w)
		op.Undo(w)
	})
	assert.Zero(t, w.writes)
	assert.Empty(t, w.states)
}

func TestRecordClonesOp(t *testing.T) {
	w := newMemWorld()
	log := newTestLog(t)
	id := w.Create(snap("crate", 0, 0, 0))

	live := NewTransform(id, at(0, 0, 0))
	live.New = at(1, 0, 0)
	live.Record(log)
	live.New = at(9, 9, 9)

	got, ok := log.At(0)
	require.True(t, ok)
	assert.Equal(t, at(1, 0, 0), got.(*TransformOp).New)
	assert.NotSame(t, live, got)
}

func TestDescribe(t *testing.T) {
	c := NewComposite[*DespawnOp]()
	assert.Equal(t, "batch (empty)", Describe(c))
	c.Add(NewDespawn(1, snap("rock", 0, 0, 0)))
	assert.Contains(t, Describe(c), "batch of 1 despawn")
	assert.Contains(t, Describe(NewSpawn(1, snap("tree", 0, 0, 0))), "spawn tree")
	assert.Equal(t, "transform", KindTransform.String())
}
