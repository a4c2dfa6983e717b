package world

import (
	"math"

	"github.com/pgeditor/editor/internal/core/ecs"
)

// Grid is a cell-based index of prop positions on the ground plane (XZ).
// Box select and brush picking ask it for candidates, then filter exactly.
// Accessed only from the editor loop, no locks.
type Grid struct {
	cellSize float64
	cells    map[cellKey]map[ecs.EntityID]struct{}
}

type cellKey struct {
	cx int32
	cz int32
}

func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 20
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey]map[ecs.EntityID]struct{}),
	}
}

func (g *Grid) coord(v float64) int32 {
	return int32(math.Floor(v / g.cellSize))
}

func (g *Grid) key(x, z float64) cellKey {
	return cellKey{cx: g.coord(x), cz: g.coord(z)}
}

// Add places an entity into the grid.
func (g *Grid) Add(id ecs.EntityID, x, z float64) {
	k := g.key(x, z)
	cell := g.cells[k]
	if cell == nil {
		cell = make(map[ecs.EntityID]struct{})
		g.cells[k] = cell
	}
	cell[id] = struct{}{}
}

// Remove takes an entity out of the grid.
func (g *Grid) Remove(id ecs.EntityID, x, z float64) {
	k := g.key(x, z)
	cell := g.cells[k]
	if cell != nil {
		delete(cell, id)
		if len(cell) == 0 {
			delete(g.cells, k)
		}
	}
}

// Move updates an entity's cell when its position changes.
func (g *Grid) Move(id ecs.EntityID, oldX, oldZ, newX, newZ float64) {
	if g.key(oldX, oldZ) == g.key(newX, newZ) {
		return
	}
	g.Remove(id, oldX, oldZ)
	g.Add(id, newX, newZ)
}

// Candidates returns every entity in cells overlapping r. Caller does the
// exact containment test.
func (g *Grid) Candidates(r Rect) []ecs.EntityID {
	var out []ecs.EntityID
	for cx := g.coord(r.MinX); cx <= g.coord(r.MaxX); cx++ {
		for cz := g.coord(r.MinZ); cz <= g.coord(r.MaxZ); cz++ {
			for id := range g.cells[cellKey{cx: cx, cz: cz}] {
				out = append(out, id)
			}
		}
	}
	return out
}

// Clear empties the grid.
func (g *Grid) Clear() {
	clear(g.cells)
}

// Rect is an axis-aligned box on the ground plane. Bounds are inclusive.
type Rect struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// RectFromCenter builds a Rect centered on (x, z) with the given extents.
func RectFromCenter(x, z, dimX, dimZ float64) Rect {
	return Rect{
		MinX: x - dimX/2,
		MaxX: x + dimX/2,
		MinZ: z - dimZ/2,
		MaxZ: z + dimZ/2,
	}
}

func (r Rect) HasPoint(x, z float64) bool {
	return x >= r.MinX && x <= r.MaxX && z >= r.MinZ && z <= r.MaxZ
}
