package tracker

import (
	"fmt"
	"strings"
)

// Element is the set of op kinds a Composite can batch. A batch holds one kind only.
type Element interface {
	*SpawnOp | *DespawnOp | *TransformOp
	Op
}

// UndoOrder decides the order in which a Composite undoes its elements.
// Redo always runs in recording order.
type UndoOrder uint8

const (
	// UndoReverse undoes the last recorded element first, so dependent
	// elements are unwound in the opposite order they were applied.
	UndoReverse UndoOrder = iota
	// UndoInRecordedOrder undoes elements in the order they were added.
	UndoInRecordedOrder
)

// Composite is a homogeneous batch applied and undone as one history entry.
// An empty Composite is a legal no-op.
type Composite[T Element] struct {
	ops   []T
	order UndoOrder
}

func NewComposite[T Element]() *Composite[T] {
	return &Composite[T]{}
}

func (c *Composite[T]) Add(op T) { c.ops = append(c.ops, op) }
func (c *Composite[T]) Len() int { return len(c.ops) }
func (c *Composite[T]) Ops() []T { return c.ops }

func (c *Composite[T]) Order() UndoOrder             { return c.order }
func (c *Composite[T]) SetUndoOrder(order UndoOrder) { c.order = order }

func (c *Composite[T]) Kind() Kind { return KindComposite }

func (c *Composite[T]) Undo(w World) {
	if c.order == UndoInRecordedOrder {
		for _, op := range c.ops {
			op.Undo(w)
		}
		return
	}
	for i := len(c.ops) - 1; i >= 0; i-- {
		c.ops[i].Undo(w)
	}
}

func (c *Composite[T]) Redo(w World) {
	for _, op := range c.ops {
		op.Redo(w)
	}
}

func (c *Composite[T]) Record(log *ChangeLog) { log.Record(c.clone()) }

func (c *Composite[T]) clone() Op {
	out := &Composite[T]{
		ops:   make([]T, len(c.ops)),
		order: c.order,
	}
	for i, op := range c.ops {
		out.ops[i] = op.clone().(T)
	}
	return out
}

// batch lets non-generic code reach into any Composite instantiation.
type batch interface {
	Op
	Len() int
	SetUndoOrder(UndoOrder)
	describe() string
}

func (c *Composite[T]) describe() string {
	if len(c.ops) == 0 {
		return "batch (empty)"
	}
	kind := c.ops[0].Kind()
	var b strings.Builder
	fmt.Fprintf(&b, "batch of %d %s", len(c.ops), kind)
	if len(c.ops) == 1 {
		b.WriteString(": " + Describe(c.ops[0]))
	}
	return b.String()
}
