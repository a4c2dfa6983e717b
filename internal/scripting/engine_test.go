package scripting

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pgeditor/editor/internal/component"
	"github.com/pgeditor/editor/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeHost struct {
	next     uint32
	props    map[ecs.EntityID]component.Vec3
	order    []ecs.EntityID
	selected []ecs.EntityID
	dragged  []component.Vec3
	undos    int
}

func newFakeHost() *fakeHost {
	return &fakeHost{next: 1, props: map[ecs.EntityID]component.Vec3{}}
}

func (h *fakeHost) Spawn(prefab string, at component.Vec3) (ecs.EntityID, error) {
	if prefab != "tree" {
		return 0, errors.New("unknown prefab")
	}
	id := ecs.NewEntityID(h.next, 0)
	h.next++
	h.props[id] = at
	h.order = append(h.order, id)
	return id, nil
}

func (h *fakeHost) Move(id ecs.EntityID, to component.Vec3) error {
	if _, ok := h.props[id]; !ok {
		return errors.New("no such entity")
	}
	h.props[id] = to
	return nil
}

func (h *fakeHost) Delete(ids []ecs.EntityID) int {
	n := 0
	for _, id := range ids {
		if _, ok := h.props[id]; ok {
			delete(h.props, id)
			n++
		}
	}
	return n
}

func (h *fakeHost) Select(ids []ecs.EntityID) { h.selected = ids }

func (h *fakeHost) Drag(d component.Vec3) int {
	h.dragged = append(h.dragged, d)
	return len(h.selected)
}

func (h *fakeHost) Undo() bool {
	h.undos++
	return true
}

func (h *fakeHost) EndDrag() int { return len(h.selected) }
func (h *fakeHost) Redo() bool   { return false }

func (h *fakeHost) Position(id ecs.EntityID) (component.Vec3, bool) {
	p, ok := h.props[id]
	return p, ok
}

func (h *fakeHost) PropIDs() []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range h.order {
		if _, ok := h.props[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func newEngine(t *testing.T, host Host) *Engine {
	t.Helper()
	e, err := NewEngine(t.TempDir(), host, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestSpawnMoveDelete(t *testing.T) {
	host := newFakeHost()
	e := newEngine(t, host)

	require.NoError(t, e.RunString(`
		local a = editor.spawn("tree", 1, 0, 2)
		local b = editor.spawn("tree", 5)
		assert(editor.count() == 2)
		assert(editor.move(a, 3, 0, 3))
		local x, y, z = editor.position(a)
		assert(x == 3 and z == 3)
		assert(editor.delete(b) == 1)
		assert(editor.position(b) == nil)
	`))
	assert.Len(t, host.PropIDs(), 1)
	assert.Equal(t, component.Vec3{X: 3, Z: 3}, host.props[host.order[0]])
}

func TestSpawnErrorIsReturnedNotRaised(t *testing.T) {
	e := newEngine(t, newFakeHost())
	require.NoError(t, e.RunString(`
		local id, err = editor.spawn("castle", 0)
		assert(id == nil)
		assert(err == "unknown prefab")
	`))
}

func TestBadEntityIDRaises(t *testing.T) {
	e := newEngine(t, newFakeHost())
	assert.Error(t, e.RunString(`editor.move("not-an-id", 0, 0, 0)`))
}

func TestSelectDragAndHistory(t *testing.T) {
	host := newFakeHost()
	e := newEngine(t, host)
	require.NoError(t, e.RunString(`
		editor.spawn("tree", 0)
		editor.spawn("tree", 1)
		editor.select(editor.props())
		assert(editor.drag(1, 0, 0) == 2)
		assert(editor.drag_end() == 2)
		assert(editor.undo() == true)
		assert(editor.redo() == false)
	`))
	assert.Len(t, host.selected, 2)
	assert.Equal(t, []component.Vec3{{X: 1}}, host.dragged)
	assert.Equal(t, 1, host.undos)
}

func TestLibScriptsAndHistoryHook(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "hooks.lua"), []byte(`
		seen = {}
		function on_history_changed(cursor, len)
			seen[#seen + 1] = cursor .. "/" .. len
		end
	`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plant.lua"), []byte(`editor.spawn("tree", 9)`), 0o644))

	host := newFakeHost()
	e, err := NewEngine(dir, host, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.RunFile("plant.lua"))
	assert.Len(t, host.PropIDs(), 1)

	e.NotifyHistory(1, 3)
	require.NoError(t, e.RunString(`assert(seen[1] == "1/3")`))
}

func TestRunFileMissing(t *testing.T) {
	e := newEngine(t, newFakeHost())
	assert.Error(t, e.RunFile("nope.lua"))
}

func TestShippedOrchardScript(t *testing.T) {
	host := newFakeHost()
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), host, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.RunFile("orchard.lua"))
	assert.Len(t, host.PropIDs(), 16)
	assert.Len(t, host.selected, 16)
	assert.Equal(t, []component.Vec3{{Z: 4}}, host.dragged)
	e.NotifyHistory(1, 1)
}
