package tracker

import (
	"github.com/pgeditor/editor/internal/component"
	"github.com/pgeditor/editor/internal/core/ecs"
)

// SpawnOp records the creation of a prop. Entity is rewritten on every redo
// because the world hands out a fresh identity on each create.
type SpawnOp struct {
	Entity  ecs.EntityID
	Initial component.Snapshot
}

func NewSpawn(id ecs.EntityID, initial component.Snapshot) *SpawnOp {
	return &SpawnOp{Entity: id, Initial: initial}
}

func (o *SpawnOp) Kind() Kind { return KindSpawn }

func (o *SpawnOp) Undo(w World) {
	w.Destroy(o.Entity)
}

func (o *SpawnOp) Redo(w World) {
	o.Entity = w.Create(o.Initial)
}

func (o *SpawnOp) Record(log *ChangeLog) { log.Record(o.clone()) }

func (o *SpawnOp) clone() Op {
	c := *o
	return &c
}

// DespawnOp records the removal of a prop together with the state it had
// when it was removed.
type DespawnOp struct {
	Entity ecs.EntityID
	Last   component.Snapshot
}

func NewDespawn(id ecs.EntityID, last component.Snapshot) *DespawnOp {
	return &DespawnOp{Entity: id, Last: last}
}

func (o *DespawnOp) Kind() Kind { return KindDespawn }

func (o *DespawnOp) Undo(w World) {
	o.Entity = w.Create(o.Last)
}

func (o *DespawnOp) Redo(w World) {
	w.Destroy(o.Entity)
}

func (o *DespawnOp) Record(log *ChangeLog) { log.Record(o.clone()) }

func (o *DespawnOp) clone() Op {
	c := *o
	return &c
}

// TransformOp records a move/rotate/scale. Entity identity never changes,
// so if the entity has since been removed the op does nothing.
type TransformOp struct {
	Entity ecs.EntityID
	Old    component.Transform
	New    component.Transform
}

// NewTransform starts an edit with Old and New both at t.
func NewTransform(id ecs.EntityID, t component.Transform) *TransformOp {
	return &TransformOp{Entity: id, Old: t, New: t}
}

func (o *TransformOp) Kind() Kind { return KindTransform }

func (o *TransformOp) Undo(w World) { o.write(w, o.Old) }
func (o *TransformOp) Redo(w World) { o.write(w, o.New) }

func (o *TransformOp) write(w World, t component.Transform) {
	if _, ok := w.Transform(o.Entity); !ok {
		return
	}
	w.SetTransform(o.Entity, t)
}

// Changed reports whether the edit moves anything.
func (o *TransformOp) Changed() bool { return o.Old != o.New }

func (o *TransformOp) Record(log *ChangeLog) { log.Record(o.clone()) }

func (o *TransformOp) clone() Op {
	c := *o
	return &c
}
