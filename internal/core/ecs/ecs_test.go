package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityPoolGenerations(t *testing.T) {
	p := NewEntityPool()

	a := p.Create()
	require.False(t, a.IsZero())
	require.True(t, p.Alive(a))

	require.True(t, p.Destroy(a))
	assert.False(t, p.Alive(a))
	assert.False(t, p.Destroy(a), "stale destroy must be ignored")

	b := p.Create()
	assert.Equal(t, a.Index(), b.Index(), "free list reuses the slot")
	assert.NotEqual(t, a, b, "recreated entity gets a new identity")
	assert.Equal(t, a.Generation()+1, b.Generation())
	assert.Equal(t, 1, p.Len())
}

func TestEntityPoolFreedSlotNotAlive(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	p.Destroy(a)
	assert.False(t, p.Alive(NewEntityID(a.Index(), a.Generation()+1)))
}

func TestParseEntityID(t *testing.T) {
	id := NewEntityID(42, 7)
	got, err := ParseEntityID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseEntityID("nope")
	assert.Error(t, err)
}

func TestWorldDestroyClearsComponents(t *testing.T) {
	w := NewWorld()
	names := NewPtrComponentStore[string]()
	w.Registry().Register(names)

	id := w.CreateEntity()
	n := "crate"
	names.Set(id, &n)

	require.True(t, w.Destroy(id))
	assert.False(t, names.Has(id))
	assert.False(t, w.Destroy(id))
}

func TestWorldDestroyQueue(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	w.MarkForDestruction(a)
	w.MarkForDestruction(a)

	assert.True(t, w.Alive(a), "queued entity lives until flush")
	assert.Equal(t, 1, w.FlushDestroyQueue())
	assert.False(t, w.Alive(a))
	assert.True(t, w.Alive(b))
}

func TestWorldReset(t *testing.T) {
	w := NewWorld()
	names := NewPtrComponentStore[string]()
	w.Registry().Register(names)
	ids := []EntityID{w.CreateEntity(), w.CreateEntity(), w.CreateEntity()}
	w.Destroy(ids[1])
	for _, id := range ids {
		s := "x"
		names.Set(id, &s)
	}

	w.Reset()
	assert.Equal(t, 0, w.Pool().Len())
	assert.Equal(t, 0, names.Len())
	for _, id := range ids {
		assert.False(t, w.Alive(id))
	}
}

func TestFilter2Sorted(t *testing.T) {
	xs := NewPtrComponentStore[int]()
	ys := NewPtrComponentStore[bool]()
	for i := 1; i <= 5; i++ {
		id := NewEntityID(uint32(i), 0)
		v := i
		xs.Set(id, &v)
		if i%2 == 1 {
			ok := true
			ys.Set(id, &ok)
		}
	}
	got := Filter2(xs, ys, func(_ EntityID, x *int, _ *bool) bool { return *x > 1 })
	assert.Equal(t, []EntityID{NewEntityID(3, 0), NewEntityID(5, 0)}, got)
}
