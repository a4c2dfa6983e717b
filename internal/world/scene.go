package world

import (
	"sort"

	"github.com/pgeditor/editor/internal/component"
	"github.com/pgeditor/editor/internal/core/ecs"
	"go.uber.org/zap"
)

// Scene is the live, editable world: props with transforms, an XZ grid for
// picking, and transient tool ghosts. It is the only thing history edits
// touch. Accessed only from the editor loop.
type Scene struct {
	world      *ecs.World
	transforms *ecs.PtrComponentStore[component.Transform]
	props      *ecs.PtrComponentStore[component.Prop]
	ghosts     *ecs.PtrComponentStore[component.Ghost]
	grid       *Grid
	log        *zap.Logger
}

func NewScene(cellSize float64, log *zap.Logger) *Scene {
	s := &Scene{
		world:      ecs.NewWorld(),
		transforms: ecs.NewPtrComponentStore[component.Transform](),
		props:      ecs.NewPtrComponentStore[component.Prop](),
		ghosts:     ecs.NewPtrComponentStore[component.Ghost](),
		grid:       NewGrid(cellSize),
		log:        log,
	}
	reg := s.world.Registry()
	reg.Register(s.transforms)
	reg.Register(s.props)
	reg.Register(s.ghosts)
	return s
}

// ECS exposes the underlying world for systems that flush its queues.
func (s *Scene) ECS() *ecs.World { return s.world }

// Create spawns a prop from snap and returns its new identity.
func (s *Scene) Create(snap component.Snapshot) ecs.EntityID {
	id := s.world.CreateEntity()
	t := snap.Transform
	s.transforms.Set(id, &t)
	s.props.Set(id, &component.Prop{Prefab: snap.Prefab})
	s.grid.Add(id, t.Translation.X, t.Translation.Z)
	s.log.Debug("prop created", zap.Stringer("entity", id), zap.String("prefab", snap.Prefab))
	return id
}

// Destroy removes a prop or ghost. Unknown or stale ids are ignored.
func (s *Scene) Destroy(id ecs.EntityID) {
	if t, ok := s.transforms.Get(id); ok && s.props.Has(id) {
		s.grid.Remove(id, t.Translation.X, t.Translation.Z)
	}
	if s.world.Destroy(id) {
		s.log.Debug("entity destroyed", zap.Stringer("entity", id))
	}
}

// Transform reads id's transform.
func (s *Scene) Transform(id ecs.EntityID) (component.Transform, bool) {
	if !s.world.Alive(id) {
		return component.Transform{}, false
	}
	t, ok := s.transforms.Get(id)
	if !ok {
		return component.Transform{}, false
	}
	return *t, true
}

// SetTransform overwrites id's transform. Missing entities are ignored.
func (s *Scene) SetTransform(id ecs.EntityID, t component.Transform) {
	cur, ok := s.transforms.Get(id)
	if !ok || !s.world.Alive(id) {
		return
	}
	if s.props.Has(id) {
		s.grid.Move(id, cur.Translation.X, cur.Translation.Z, t.Translation.X, t.Translation.Z)
	}
	*cur = t
}

// Snapshot captures everything needed to recreate prop id.
func (s *Scene) Snapshot(id ecs.EntityID) (component.Snapshot, bool) {
	p, ok := s.props.Get(id)
	if !ok || !s.world.Alive(id) {
		return component.Snapshot{}, false
	}
	t, _ := s.transforms.Get(id)
	return component.Snapshot{Prefab: p.Prefab, Transform: *t}, true
}

// Alive reports whether id names a live entity.
func (s *Scene) Alive(id ecs.EntityID) bool { return s.world.Alive(id) }

// IsProp reports whether id names a live prop rather than a ghost.
func (s *Scene) IsProp(id ecs.EntityID) bool { return s.world.Alive(id) && s.props.Has(id) }

// PropCount is the number of live props, ghosts excluded.
func (s *Scene) PropCount() int { return s.props.Len() }

// PropIDs lists live props in ascending id order.
func (s *Scene) PropIDs() []ecs.EntityID { return s.props.IDs() }

// PropsOf lists live props of one prefab, ascending.
func (s *Scene) PropsOf(prefab string) []ecs.EntityID {
	return ecs.Filter2(s.props, s.transforms, func(_ ecs.EntityID, p *component.Prop, _ *component.Transform) bool {
		return p.Prefab == prefab
	})
}

// Props snapshots every prop, ordered by id.
func (s *Scene) Props() []component.Snapshot {
	ids := s.props.IDs()
	out := make([]component.Snapshot, 0, len(ids))
	for _, id := range ids {
		if snap, ok := s.Snapshot(id); ok {
			out = append(out, snap)
		}
	}
	return out
}

// PropsIn returns the props whose translation lies inside r, ascending.
func (s *Scene) PropsIn(r Rect) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range s.grid.Candidates(r) {
		t, ok := s.transforms.Get(id)
		if ok && r.HasPoint(t.Translation.X, t.Translation.Z) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PropsNear returns props within radius of p on the ground plane.
func (s *Scene) PropsNear(p component.Vec3, radius float64) []ecs.EntityID {
	r := RectFromCenter(p.X, p.Z, radius*2, radius*2)
	var out []ecs.EntityID
	for _, id := range s.PropsIn(r) {
		t, _ := s.transforms.Get(id)
		if t.Translation.DistanceXZ(p) <= radius {
			out = append(out, id)
		}
	}
	return out
}

// SpawnGhost creates a transient tool visual. Ghosts are not props.
func (s *Scene) SpawnGhost(tool string, t component.Transform) ecs.EntityID {
	id := s.world.CreateEntity()
	s.transforms.Set(id, &t)
	s.ghosts.Set(id, &component.Ghost{Tool: tool})
	return id
}

// RetireGhost queues a ghost for destruction at the end of the tick.
// Non-ghost ids are ignored so props never leave the grid behind.
func (s *Scene) RetireGhost(id ecs.EntityID) {
	if s.ghosts.Has(id) {
		s.world.MarkForDestruction(id)
	}
}

// GhostCount is the number of live ghosts.
func (s *Scene) GhostCount() int { return s.ghosts.Len() }

// Reset removes every entity. Used before loading another scene.
func (s *Scene) Reset() {
	s.world.Reset()
	s.grid.Clear()
}
