package tools

import "github.com/pgeditor/editor/internal/component"

// Cursor is the world position under the pointer, if any.
type Cursor struct {
	loc   component.Vec3
	valid bool
}

func (c *Cursor) Set(loc component.Vec3) {
	c.loc = loc
	c.valid = true
}

func (c *Cursor) Reset() {
	c.valid = false
}

func (c *Cursor) Get() (component.Vec3, bool) {
	return c.loc, c.valid
}
