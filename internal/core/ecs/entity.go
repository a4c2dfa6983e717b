package ecs

import "fmt"

// EntityID encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on destroy, so an entity that is
// destroyed and created again never gets its old identity back.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// String renders the id as index:generation, which is how the console shows it.
func (id EntityID) String() string {
	return fmt.Sprintf("%d:%d", id.Index(), id.Generation())
}

// ParseEntityID is the inverse of String.
func ParseEntityID(s string) (EntityID, error) {
	var idx, gen uint32
	if _, err := fmt.Sscanf(s, "%d:%d", &idx, &gen); err != nil {
		return 0, fmt.Errorf("parse entity id %q: %w", s, err)
	}
	return NewEntityID(idx, gen), nil
}

// EntityPool manages entity allocation with generational indices and a free list.
// Index 0 is never handed out so the zero EntityID stays invalid.
type EntityPool struct {
	generations []uint32
	live        []bool
	freeList    []uint32
	nextIndex   uint32
	alive       int
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 1, 1024),
		live:        make([]bool, 1, 1024),
		freeList:    make([]uint32, 0, 256),
		nextIndex:   1,
	}
}

func (p *EntityPool) Create() EntityID {
	p.alive++
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		p.live[idx] = true
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	p.generations = append(p.generations, 0)
	p.live = append(p.live, true)
	return NewEntityID(idx, p.generations[idx])
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex {
		return false
	}
	return p.live[idx] && p.generations[idx] == id.Generation()
}

// Destroy retires id. Returns false for stale or unknown ids.
func (p *EntityPool) Destroy(id EntityID) bool {
	if !p.Alive(id) {
		return false
	}
	idx := id.Index()
	p.generations[idx]++
	p.live[idx] = false
	p.freeList = append(p.freeList, idx)
	p.alive--
	return true
}

// Len reports the number of live entities.
func (p *EntityPool) Len() int { return p.alive }

// Each visits every live entity in index order.
func (p *EntityPool) Each(fn func(EntityID)) {
	for idx := uint32(1); idx < p.nextIndex; idx++ {
		if p.live[idx] {
			fn(NewEntityID(idx, p.generations[idx]))
		}
	}
}
