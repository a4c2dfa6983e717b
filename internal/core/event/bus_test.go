package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversNextSwapInPostOrder(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(UndoRequested) { got = append(got, "undo") })
	Subscribe(b, func(e SpawnRequested) { got = append(got, "spawn "+e.Prefab) })

	Emit(b, SpawnRequested{Prefab: "a"})
	b.Post(UndoRequested{})
	Emit(b, SpawnRequested{Prefab: "b"})

	assert.Equal(t, 0, b.DispatchAll(), "nothing readable before swap")
	assert.Equal(t, 3, b.Pending())

	b.SwapBuffers()
	assert.Equal(t, 3, b.DispatchAll())
	assert.Equal(t, []string{"spawn a", "undo", "spawn b"}, got)

	b.SwapBuffers()
	assert.Equal(t, 0, b.DispatchAll(), "events are delivered once")
}

func TestBusEventsPostedDuringDispatchWait(t *testing.T) {
	b := NewBus()
	redos := 0
	Subscribe(b, func(UndoRequested) { Emit(b, RedoRequested{}) })
	Subscribe(b, func(RedoRequested) { redos++ })

	Emit(b, UndoRequested{})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 0, redos)

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 1, redos)
}

func TestBusIgnoresUnhandledAndNil(t *testing.T) {
	b := NewBus()
	b.Post(nil)
	Emit(b, BrushEnded{})
	b.SwapBuffers()
	assert.Equal(t, 0, b.DispatchAll())
}
