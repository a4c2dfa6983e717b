package ecs

// World is the top-level ECS container. It owns the entity pool, the component
// registry, and a deferred destruction queue flushed by CleanupSystem each tick.
//
// Editor edits destroy immediately through Destroy so undo/redo observe the
// change within the same call. The queue is for transient tool entities
// (brush ghosts) that must survive until the end of the tick.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 16),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Destroy removes id and all its components right away.
// Stale ids are ignored and report false.
func (w *World) Destroy(id EntityID) bool {
	if !w.pool.Destroy(id) {
		return false
	}
	w.registry.RemoveAll(id)
	return true
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Returns how many were actually destroyed.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, id := range w.destroyQueue {
		if w.Destroy(id) {
			n++
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}

// Reset destroys every entity. Identities handed out before Reset stay dead.
func (w *World) Reset() {
	var ids []EntityID
	w.pool.Each(func(id EntityID) { ids = append(ids, id) })
	for _, id := range ids {
		w.pool.Destroy(id)
	}
	w.registry.ClearAll()
	w.destroyQueue = w.destroyQueue[:0]
}
