// Package tools holds the interaction producers: they turn user gestures into
// edits on the scene and record them into history.
package tools

import (
	"fmt"
	"math"

	"github.com/pgeditor/editor/internal/component"
	"github.com/pgeditor/editor/internal/config"
	"github.com/pgeditor/editor/internal/core/ecs"
	"github.com/pgeditor/editor/internal/data"
	"github.com/pgeditor/editor/internal/tracker"
	"github.com/pgeditor/editor/internal/world"
	"go.uber.org/zap"
)

// Toolbox owns the state of every interactive tool for one session.
// It never calls Undo or Redo.
type Toolbox struct {
	scene     *world.Scene
	history   *tracker.ChangeLog
	coalescer *tracker.TransformCoalescer
	prefabs   *data.PrefabTable
	brushCfg  config.BrushConfig
	log       *zap.Logger

	Cursor    Cursor
	Selection Selection

	box   boxState
	brush brushState
}

func NewToolbox(
	scene *world.Scene,
	history *tracker.ChangeLog,
	coalescer *tracker.TransformCoalescer,
	prefabs *data.PrefabTable,
	brushCfg config.BrushConfig,
	log *zap.Logger,
) *Toolbox {
	return &Toolbox{
		scene:     scene,
		history:   history,
		coalescer: coalescer,
		prefabs:   prefabs,
		brushCfg:  brushCfg,
		log:       log,
	}
}

// Spawn places one prefab and records it as a single edit.
func (tb *Toolbox) Spawn(prefab string, at component.Transform) (ecs.EntityID, error) {
	snap, err := tb.prefabs.Place(prefab, at.Translation)
	if err != nil {
		return 0, err
	}
	if at.Rotation != (component.Quat{}) {
		snap.Transform.Rotation = at.Rotation
	}
	id := tb.scene.Create(snap)
	tracker.NewSpawn(id, snap).Record(tb.history)
	tb.log.Info("spawned", zap.String("prefab", prefab), zap.Stringer("entity", id))
	return id, nil
}

// Delete removes the given props as one edit. Dead ids are skipped; the
// number actually removed is returned.
func (tb *Toolbox) Delete(ids []ecs.EntityID) int {
	batch := tracker.NewComposite[*tracker.DespawnOp]()
	for _, id := range ids {
		snap, ok := tb.scene.Snapshot(id)
		if !ok {
			continue
		}
		tb.scene.Destroy(id)
		batch.Add(tracker.NewDespawn(id, snap))
	}
	switch batch.Len() {
	case 0:
		return 0
	case 1:
		batch.Ops()[0].Record(tb.history)
	default:
		batch.Record(tb.history)
	}
	tb.Selection.Prune(tb.scene.Alive)
	tb.log.Info("deleted", zap.Int("count", batch.Len()))
	return batch.Len()
}

// DeleteSelection removes every selected prop as one edit.
func (tb *Toolbox) DeleteSelection() int {
	n := tb.Delete(tb.Selection.IDs())
	tb.Selection.Clear()
	return n
}

// Move teleports a prop as one discrete edit.
func (tb *Toolbox) Move(id ecs.EntityID, to component.Vec3) error {
	cur, ok := tb.scene.Transform(id)
	if !ok {
		return fmt.Errorf("move %s: %w", id, ErrNoSuchEntity)
	}
	op := tracker.NewTransform(id, cur)
	op.New.Translation = to
	tb.scene.SetTransform(id, op.New)
	op.Record(tb.history)
	return nil
}

// Drag moves every selected prop by delta. Consecutive drags coalesce into a
// single entry per prop until EndDrag.
func (tb *Toolbox) Drag(delta component.Vec3) int {
	tb.Selection.Prune(tb.scene.Alive)
	moved := 0
	for _, id := range tb.Selection.IDs() {
		cur, ok := tb.scene.Transform(id)
		if !ok {
			continue
		}
		if _, open := tb.coalescer.Pending(id); !open {
			tb.coalescer.Touch(id, cur)
		}
		next := cur.Translated(delta)
		tb.scene.SetTransform(id, next)
		tb.coalescer.PeekMut(id).New = next
		moved++
	}
	return moved
}

// EndDrag commits the coalesced drag as one edit covering every moved prop.
// Props destroyed while the drag was open are dropped from it.
func (tb *Toolbox) EndDrag() int {
	for _, id := range tb.coalescer.IDs() {
		if !tb.scene.Alive(id) {
			tb.coalescer.Discard(id)
		}
	}
	n := tb.coalescer.CommitBatch(tb.history)
	if n > 0 {
		tb.log.Info("drag committed", zap.Int("entities", n))
	}
	return n
}

// boxState is an in-progress box-select gesture: a start corner plus the
// live center and extents on the ground plane.
type boxState struct {
	active bool
	start  component.Vec3
	loc    component.Vec3
	dimX   float64
	dimZ   float64
	ghost  ecs.EntityID
}

// MoveBox starts a box at at, or drags its far corner to at.
func (tb *Toolbox) MoveBox(at component.Vec3) {
	tb.Cursor.Set(at)
	b := &tb.box
	if !b.active {
		*b = boxState{active: true, start: at, loc: at}
		b.ghost = tb.scene.SpawnGhost("box-select", component.FromTranslation(at))
		return
	}
	b.loc = component.Vec3{
		X: (at.X + b.start.X) / 2,
		Y: math.Max(at.Y, b.start.Y) + 0.1,
		Z: (at.Z + b.start.Z) / 2,
	}
	b.dimX = math.Abs(at.X - b.start.X)
	b.dimZ = math.Abs(at.Z - b.start.Z)

	t := component.FromTranslation(b.loc)
	t.Scale = component.Vec3{X: b.dimX, Y: 1, Z: b.dimZ}
	tb.scene.SetTransform(b.ghost, t)
}

// EndBox closes the box and selects the props inside it.
func (tb *Toolbox) EndBox() []ecs.EntityID {
	b := &tb.box
	if !b.active {
		return nil
	}
	rect := world.RectFromCenter(b.loc.X, b.loc.Z, b.dimX, b.dimZ)
	tb.scene.RetireGhost(b.ghost)
	*b = boxState{}

	tb.Selection.Set(tb.scene.PropsIn(rect))
	tb.log.Info("box select", zap.Int("selected", tb.Selection.Len()))
	return tb.Selection.IDs()
}

// BoxActive reports whether a box-select gesture is in progress.
func (tb *Toolbox) BoxActive() bool { return tb.box.active }

type brushState struct {
	active  bool
	stroke  *tracker.Composite[*tracker.SpawnOp]
	lastDab component.Vec3
	dabbed  bool
	ghost   ecs.EntityID
}

// MoveBrush starts a stroke at at, or extends it. A dab spawns the brush
// prefab when at is at least Spacing from the previous dab and from any
// existing prop of that prefab.
func (tb *Toolbox) MoveBrush(at component.Vec3) error {
	tb.Cursor.Set(at)
	b := &tb.brush
	if !b.active {
		if p := tb.prefabs.Get(tb.brushCfg.Prefab); p == nil || !p.Brushable {
			return fmt.Errorf("brush prefab %q: %w", tb.brushCfg.Prefab, ErrNotBrushable)
		}
		ghost := component.FromTranslation(at.Add(component.Vec3{Y: 1}))
		ghost.Rotation = component.QuatFromAxisAngle(component.Vec3{X: 1}, -math.Pi/2)
		ghost.Scale = component.Vec3{X: tb.brushCfg.Radius, Y: tb.brushCfg.Radius, Z: 1}
		*b = brushState{
			active: true,
			stroke: tracker.NewComposite[*tracker.SpawnOp](),
			ghost:  tb.scene.SpawnGhost("brush", ghost),
		}
	} else if gt, ok := tb.scene.Transform(b.ghost); ok {
		gt.Translation = at.Add(component.Vec3{Y: 1})
		tb.scene.SetTransform(b.ghost, gt)
	}

	if b.dabbed && b.lastDab.DistanceXZ(at) < tb.brushCfg.Spacing {
		return nil
	}
	for _, id := range tb.scene.PropsNear(at, tb.brushCfg.Spacing) {
		snap, ok := tb.scene.Snapshot(id)
		if ok && snap.Prefab == tb.brushCfg.Prefab && snap.Transform.Translation.DistanceXZ(at) < tb.brushCfg.Spacing {
			return nil
		}
	}
	snap, err := tb.prefabs.Place(tb.brushCfg.Prefab, at)
	if err != nil {
		return err
	}
	b.stroke.Add(tracker.NewSpawn(tb.scene.Create(snap), snap))
	b.lastDab = at
	b.dabbed = true
	return nil
}

// EndBrush records the whole stroke as one edit. Returns the number of dabs.
func (tb *Toolbox) EndBrush() int {
	b := &tb.brush
	if !b.active {
		return 0
	}
	tb.scene.RetireGhost(b.ghost)
	n := b.stroke.Len()
	if n > 0 {
		b.stroke.Record(tb.history)
		tb.log.Info("brush stroke", zap.String("prefab", tb.brushCfg.Prefab), zap.Int("dabs", n))
	}
	*b = brushState{}
	return n
}

// BrushActive reports whether a stroke is in progress.
func (tb *Toolbox) BrushActive() bool { return tb.brush.active }
