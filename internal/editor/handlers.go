package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/pgeditor/editor/internal/component"
	"github.com/pgeditor/editor/internal/core/ecs"
	"github.com/pgeditor/editor/internal/core/event"
	"go.uber.org/zap"
)

const storeTimeout = 10 * time.Second

// subscribe wires request events to the tools and session operations.
// Undo and redo are handled by HistorySystem.
func (s *Session) subscribe() {
	event.Subscribe(s.bus, func(ev event.SpawnRequested) {
		id, err := s.Tools.Spawn(ev.Prefab, ev.Transform)
		if err != nil {
			s.fail("spawn", err)
			return
		}
		s.printf("spawned %s %s\n", ev.Prefab, id)
	})
	event.Subscribe(s.bus, func(ev event.DeleteRequested) {
		s.printf("deleted %d\n", s.Tools.Delete(ev.Entities))
	})
	event.Subscribe(s.bus, func(ev event.MoveRequested) {
		if err := s.Tools.Move(ev.Entity, ev.To); err != nil {
			s.fail("move", err)
		}
	})

	event.Subscribe(s.bus, func(ev event.BoxSelectMoved) { s.Tools.MoveBox(ev.At) })
	event.Subscribe(s.bus, func(event.BoxSelectEnded) {
		s.printf("selected %d\n", len(s.Tools.EndBox()))
	})
	event.Subscribe(s.bus, func(event.DeleteSelectionRequested) {
		s.printf("deleted %d\n", s.Tools.DeleteSelection())
	})

	event.Subscribe(s.bus, func(ev event.DragMoved) { s.Tools.Drag(ev.Delta) })
	event.Subscribe(s.bus, func(event.DragEnded) {
		s.printf("moved %d\n", s.Tools.EndDrag())
	})

	event.Subscribe(s.bus, func(ev event.BrushMoved) {
		if err := s.Tools.MoveBrush(ev.At); err != nil {
			s.fail("brush", err)
		}
	})
	event.Subscribe(s.bus, func(event.BrushEnded) {
		s.printf("painted %d\n", s.Tools.EndBrush())
	})

	event.Subscribe(s.bus, func(event.HistoryRequested) { s.printHistory() })
	event.Subscribe(s.bus, func(ev event.ListRequested) { s.printProps(ev.Prefab) })
	event.Subscribe(s.bus, func(event.ScenesRequested) {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		names, err := s.store.List(ctx)
		if err != nil {
			s.fail("scenes", err)
			return
		}
		for _, n := range names {
			s.printf("%s\n", n)
		}
	})
	event.Subscribe(s.bus, func(ev event.ScriptRequested) {
		if err := s.scripts.RunFile(ev.Path); err != nil {
			s.fail("run", err)
		}
	})
	event.Subscribe(s.bus, func(ev event.SaveRequested) {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := s.SaveScene(ctx, ev.Name); err != nil {
			s.fail("save", err)
			return
		}
		s.printf("saved %s (%d props)\n", ev.Name, s.Scene.PropCount())
	})
	event.Subscribe(s.bus, func(ev event.LoadRequested) {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := s.LoadScene(ctx, ev.Name); err != nil {
			s.fail("load", err)
			return
		}
		s.printf("loaded %s (%d props)\n", ev.Name, s.Scene.PropCount())
	})
	event.Subscribe(s.bus, func(event.QuitRequested) { s.quit = true })
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) fail(op string, err error) {
	s.log.Warn("command failed", zap.String("op", op), zap.Error(err))
	s.printf("error: %s: %v\n", op, err)
}

func (s *Session) printHistory() {
	if !s.History.CanUndo() && !s.History.CanRedo() {
		s.printf("history empty\n")
		return
	}
	for _, e := range s.History.Entries() {
		mark := " "
		if e.Index == s.History.Cursor()-1 {
			mark = ">"
		}
		state := "undone"
		if e.Applied {
			state = "applied"
		}
		s.printf("%s %3d %-7s %s\n", mark, e.Index, state, e.Summary)
	}
	s.printf("cursor %d/%d\n", s.History.Cursor(), s.History.Len())
}

func (s *Session) printProps(prefab string) {
	ids := s.Scene.PropIDs()
	if prefab != "" {
		ids = s.Scene.PropsOf(prefab)
	}
	for _, id := range ids {
		snap, ok := s.Scene.Snapshot(id)
		if !ok {
			continue
		}
		s.printf("%-8s %-10s %s\n", id, snap.Prefab, snap.Transform.Translation)
	}
	s.printf("%d props\n", len(ids))
}

// The methods below let Lua scripts drive the session through the same tools
// console commands use.

func (s *Session) Spawn(prefab string, at component.Vec3) (ecs.EntityID, error) {
	return s.Tools.Spawn(prefab, component.FromTranslation(at))
}

func (s *Session) Move(id ecs.EntityID, to component.Vec3) error { return s.Tools.Move(id, to) }
func (s *Session) Delete(ids []ecs.EntityID) int                 { return s.Tools.Delete(ids) }
func (s *Session) Drag(delta component.Vec3) int                 { return s.Tools.Drag(delta) }
func (s *Session) EndDrag() int                                  { return s.Tools.EndDrag() }
func (s *Session) Undo() bool                                    { return s.history.Undo() }
func (s *Session) Redo() bool                                    { return s.history.Redo() }
func (s *Session) PropIDs() []ecs.EntityID                       { return s.Scene.PropIDs() }

// Select replaces the selection with the live props among ids.
func (s *Session) Select(ids []ecs.EntityID) {
	s.Tools.Selection.Set(ids)
	s.Tools.Selection.Prune(s.Scene.IsProp)
}

func (s *Session) Position(id ecs.EntityID) (component.Vec3, bool) {
	t, ok := s.Scene.Transform(id)
	return t.Translation, ok
}
