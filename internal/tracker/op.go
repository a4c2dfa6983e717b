// Package tracker records reversible scene edits and steps backward and
// forward through them.
//
// Edits are Ops. A ChangeLog owns recorded Ops and a cursor splitting them
// into applied (before the cursor) and undone (at or after it). Continuous
// edits such as drags go through a TransformCoalescer first so a whole
// interaction lands in the log as one entry.
package tracker

import (
	"github.com/pgeditor/editor/internal/component"
	"github.com/pgeditor/editor/internal/core/ecs"
)

// World is what an Op needs from the live scene. Destroy and SetTransform on
// an entity that no longer exists must be no-ops.
type World interface {
	Create(s component.Snapshot) ecs.EntityID
	Destroy(id ecs.EntityID)
	Transform(id ecs.EntityID) (component.Transform, bool)
	SetTransform(id ecs.EntityID, t component.Transform)
}

// Kind names an Op variant.
type Kind uint8

const (
	KindSpawn Kind = iota + 1
	KindDespawn
	KindTransform
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindSpawn:
		return "spawn"
	case KindDespawn:
		return "despawn"
	case KindTransform:
		return "transform"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Op is a self-contained reversible edit. The set of implementations is
// closed: SpawnOp, DespawnOp, TransformOp and Composite.
//
// Undo and Redo must each be called once per transition; they never fail.
// Record appends a copy to the log, so a producer can keep mutating its own
// value afterwards without touching history.
type Op interface {
	Kind() Kind
	Undo(w World)
	Redo(w World)
	Record(log *ChangeLog)

	clone() Op
}

// Describe renders a one-line summary of op for history listings.
func Describe(op Op) string {
	switch o := op.(type) {
	case *SpawnOp:
		return "spawn " + o.Initial.Prefab + " as " + o.Entity.String()
	case *DespawnOp:
		return "despawn " + o.Last.Prefab + " " + o.Entity.String()
	case *TransformOp:
		return "move " + o.Entity.String() + " " + o.Old.Translation.String() + " -> " + o.New.Translation.String()
	case batch:
		return o.describe()
	default:
		return op.Kind().String()
	}
}
