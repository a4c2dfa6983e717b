package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events posted during one dispatch are
// readable on the next; SwapBuffers is called by EventDispatchSystem.
//
// Unlike a per-type queue, events are delivered in the order they were
// posted across all types: an undo typed between two spawns must run
// between them.
type Bus struct {
	mu       sync.Mutex // protects handler registration and Post from the console goroutine
	front    []any
	back     []any
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]any, 0, 32),
		back:     make([]any, 0, 32),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

// Emit queues a typed event into the back buffer.
func Emit[T any](b *Bus, event T) {
	b.Post(event)
}

// Post queues an event whose static type is not known to the caller.
func (b *Bus) Post(event any) {
	if event == nil {
		return
	}
	b.mu.Lock()
	b.back = append(b.back, event)
	b.mu.Unlock()
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// SwapBuffers rotates back to front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.mu.Lock()
	b.front, b.back = b.back, b.front[:0]
	b.mu.Unlock()
}

// DispatchAll delivers front-buffer events to their handlers in post order
// and returns how many events were delivered to at least one handler.
func (b *Bus) DispatchAll() int {
	delivered := 0
	for _, ev := range b.front {
		b.mu.Lock()
		handlers := b.handlers[reflect.TypeOf(ev)]
		b.mu.Unlock()
		for _, h := range handlers {
			h(ev)
		}
		if len(handlers) > 0 {
			delivered++
		}
	}
	clear(b.front)
	b.front = b.front[:0]
	return delivered
}

// Pending reports how many events wait for the next swap.
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.back)
}
