package event

import (
	"github.com/pgeditor/editor/internal/component"
	"github.com/pgeditor/editor/internal/core/ecs"
)

// History requests. Each maps to exactly one ChangeLog call.

type UndoRequested struct{}

type RedoRequested struct{}

// HistoryChanged is posted after any undo, redo or record.
type HistoryChanged struct {
	Cursor int
	Len    int
}

// Discrete edits.

type SpawnRequested struct {
	Prefab    string
	Transform component.Transform
}

type DeleteRequested struct {
	Entities []ecs.EntityID
}

type MoveRequested struct {
	Entity ecs.EntityID
	To     component.Vec3
}

// Box select.

type BoxSelectMoved struct {
	At component.Vec3 // first move starts the box
}

type BoxSelectEnded struct{}

type DeleteSelectionRequested struct{}

// Drag gizmo over the current selection. Consecutive moves coalesce.

type DragMoved struct {
	Delta component.Vec3
}

type DragEnded struct{}

// Brush strokes.

type BrushMoved struct {
	At component.Vec3 // first move starts the stroke
}

type BrushEnded struct{}

// Session requests.

type ScriptRequested struct {
	Path string
}

type SaveRequested struct {
	Name string
}

type LoadRequested struct {
	Name string
}

type ListRequested struct {
	Prefab string // empty lists every prop
}

type HistoryRequested struct{}

type QuitRequested struct{}

type ScenesRequested struct{}
