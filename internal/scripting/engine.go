package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pgeditor/editor/internal/component"
	"github.com/pgeditor/editor/internal/core/ecs"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Host is the editor surface scripts drive. Every edit a script makes goes
// through the same tools as console commands, so it lands in history.
type Host interface {
	Spawn(prefab string, at component.Vec3) (ecs.EntityID, error)
	Move(id ecs.EntityID, to component.Vec3) error
	Delete(ids []ecs.EntityID) int
	Select(ids []ecs.EntityID)
	Drag(delta component.Vec3) int
	EndDrag() int
	Undo() bool
	Redo() bool
	PropIDs() []ecs.EntityID
	Position(id ecs.EntityID) (component.Vec3, bool)
}

// Engine wraps a single gopher-lua VM exposing the editor API as the global
// table "editor". Single-goroutine access only (editor loop).
type Engine struct {
	vm   *lua.LState
	host Host
	dir  string
	log  *zap.Logger
}

// NewEngine creates a Lua engine and loads helper scripts from scriptsDir/lib.
func NewEngine(scriptsDir string, host Host, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, host: host, dir: scriptsDir, log: log}
	e.register()

	if err := e.loadDir(filepath.Join(scriptsDir, "lib")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load lib scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// RunFile executes a script. Relative paths resolve against the scripts dir.
func (e *Engine) RunFile(path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.dir, path)
	}
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}
	e.log.Info("script finished", zap.String("file", path))
	return nil
}

// RunString executes a chunk of Lua source.
func (e *Engine) RunString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("run script: %w", err)
	}
	return nil
}

// NotifyHistory calls the Lua hook on_history_changed(cursor, len) if a
// script defined one. Hook errors are logged, never propagated.
func (e *Engine) NotifyHistory(cursor, length int) {
	fn := e.vm.GetGlobal("on_history_changed")
	if fn == lua.LNil {
		return
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(cursor), lua.LNumber(length)); err != nil {
		e.log.Error("lua on_history_changed error", zap.Error(err))
	}
}

func (e *Engine) Close() {
	e.vm.Close()
}

func (e *Engine) register() {
	api := e.vm.SetFuncs(e.vm.NewTable(), map[string]lua.LGFunction{
		"spawn":    e.luaSpawn,
		"move":     e.luaMove,
		"delete":   e.luaDelete,
		"select":   e.luaSelect,
		"drag":     e.luaDrag,
		"drag_end": e.luaDragEnd,
		"undo":     e.luaUndo,
		"redo":     e.luaRedo,
		"props":    e.luaProps,
		"count":    e.luaCount,
		"position": e.luaPosition,
		"log":      e.luaLog,
	})
	e.vm.SetGlobal("editor", api)
}

func checkVec(L *lua.LState, first int) component.Vec3 {
	return component.Vec3{
		X: float64(L.CheckNumber(first)),
		Y: float64(L.OptNumber(first+1, 0)),
		Z: float64(L.OptNumber(first+2, 0)),
	}
}

func checkEntity(L *lua.LState, n int) ecs.EntityID {
	id, err := ecs.ParseEntityID(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return id
}

func checkEntities(L *lua.LState) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		if t, ok := L.Get(i).(*lua.LTable); ok {
			t.ForEach(func(_, v lua.LValue) {
				if id, err := ecs.ParseEntityID(lua.LVAsString(v)); err == nil {
					ids = append(ids, id)
				}
			})
			continue
		}
		ids = append(ids, checkEntity(L, i))
	}
	return ids
}

// editor.spawn(prefab, x, y, z) -> id | nil, err
func (e *Engine) luaSpawn(L *lua.LState) int {
	prefab := L.CheckString(1)
	id, err := e.host.Spawn(prefab, checkVec(L, 2))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(id.String()))
	return 1
}

// editor.move(id, x, y, z) -> true | nil, err
func (e *Engine) luaMove(L *lua.LState) int {
	if err := e.host.Move(checkEntity(L, 1), checkVec(L, 2)); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

// editor.delete(id, ...) or editor.delete({ids}) -> removed count
func (e *Engine) luaDelete(L *lua.LState) int {
	L.Push(lua.LNumber(e.host.Delete(checkEntities(L))))
	return 1
}

func (e *Engine) luaSelect(L *lua.LState) int {
	e.host.Select(checkEntities(L))
	return 0
}

func (e *Engine) luaDrag(L *lua.LState) int {
	L.Push(lua.LNumber(e.host.Drag(checkVec(L, 1))))
	return 1
}

func (e *Engine) luaDragEnd(L *lua.LState) int {
	L.Push(lua.LNumber(e.host.EndDrag()))
	return 1
}

func (e *Engine) luaUndo(L *lua.LState) int {
	L.Push(lua.LBool(e.host.Undo()))
	return 1
}

func (e *Engine) luaRedo(L *lua.LState) int {
	L.Push(lua.LBool(e.host.Redo()))
	return 1
}

// editor.props() -> array of ids in ascending order
func (e *Engine) luaProps(L *lua.LState) int {
	t := L.NewTable()
	for _, id := range e.host.PropIDs() {
		t.Append(lua.LString(id.String()))
	}
	L.Push(t)
	return 1
}

func (e *Engine) luaCount(L *lua.LState) int {
	L.Push(lua.LNumber(len(e.host.PropIDs())))
	return 1
}

// editor.position(id) -> x, y, z | nil
func (e *Engine) luaPosition(L *lua.LState) int {
	p, ok := e.host.Position(checkEntity(L, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(p.X))
	L.Push(lua.LNumber(p.Y))
	L.Push(lua.LNumber(p.Z))
	return 3
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}
