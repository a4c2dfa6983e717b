package tracker

import (
	"github.com/pgeditor/editor/internal/component"
	"github.com/pgeditor/editor/internal/core/ecs"
)

// memWorld is a minimal World over a generational pool.
type memWorld struct {
	pool   *ecs.EntityPool
	states map[ecs.EntityID]component.Snapshot
	writes int
}

func newMemWorld() *memWorld {
	return &memWorld{
		pool:   ecs.NewEntityPool(),
		states: make(map[ecs.EntityID]component.Snapshot),
	}
}

func (w *memWorld) Create(s component.Snapshot) ecs.EntityID {
	id := w.pool.Create()
	w.states[id] = s
	return id
}

func (w *memWorld) Destroy(id ecs.EntityID) {
	if w.pool.Destroy(id) {
		delete(w.states, id)
	}
}

func (w *memWorld) Transform(id ecs.EntityID) (component.Transform, bool) {
	s, ok := w.states[id]
	return s.Transform, ok
}

func (w *memWorld) SetTransform(id ecs.EntityID, t component.Transform) {
	s, ok := w.states[id]
	if !ok {
		return
	}
	w.writes++
	s.Transform = t
	w.states[id] = s
}

// view is the observable world: the multiset of live snapshots, ignoring identity.
func (w *memWorld) view() map[component.Snapshot]int {
	out := make(map[component.Snapshot]int, len(w.states))
	for _, s := range w.states {
		out[s]++
	}
	return out
}

func at(x, y, z float64) component.Transform {
	return component.FromTranslation(component.Vec3{X: x, Y: y, Z: z})
}

func snap(prefab string, x, y, z float64) component.Snapshot {
	return component.Snapshot{Prefab: prefab, Transform: at(x, y, z)}
}
