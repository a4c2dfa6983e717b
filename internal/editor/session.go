// Package editor assembles one editing session: the scene, its history, the
// tools that record into it and the loop that drives them.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pgeditor/editor/internal/component"
	"github.com/pgeditor/editor/internal/config"
	"github.com/pgeditor/editor/internal/core/event"
	coresys "github.com/pgeditor/editor/internal/core/system"
	"github.com/pgeditor/editor/internal/data"
	"github.com/pgeditor/editor/internal/scripting"
	"github.com/pgeditor/editor/internal/system"
	"github.com/pgeditor/editor/internal/tools"
	"github.com/pgeditor/editor/internal/tracker"
	"github.com/pgeditor/editor/internal/world"
	"go.uber.org/zap"
)

// ErrQueueFull is returned by Submit when the loop is not keeping up.
var ErrQueueFull = errors.New("command queue full")

// SceneStore saves and loads named scene layouts. Only scene contents are
// stored, never history.
type SceneStore interface {
	Save(ctx context.Context, name string, props []component.Snapshot) error
	Load(ctx context.Context, name string) ([]component.Snapshot, error)
	List(ctx context.Context) ([]string, error)
}

var _ scripting.Host = (*Session)(nil)

// Options carries the collaborators a session does not build itself.
type Options struct {
	Prefabs *data.PrefabTable // nil means the built-in table
	Store   SceneStore        // nil means a directory store at editor.scenes_dir
	Out     io.Writer         // command output; nil discards it
}

// Session owns every piece of editor state. There are no globals: tools,
// systems and scripts all reach the scene and history through it.
type Session struct {
	ID      uuid.UUID
	Scene   *world.Scene
	History *tracker.ChangeLog
	Tools   *tools.Toolbox

	cfg      *config.Config
	bus      *event.Bus
	runner   *coresys.Runner
	history  *system.HistorySystem
	autosave *system.AutosaveSystem
	store    SceneStore
	scripts  *scripting.Engine
	queue    chan any
	out      io.Writer
	log      *zap.Logger
	quit     bool
}

func NewSession(cfg *config.Config, opts Options, log *zap.Logger) (*Session, error) {
	if opts.Prefabs == nil {
		opts.Prefabs = data.DefaultPrefabTable()
	}
	if opts.Store == nil {
		opts.Store = data.NewSceneDir(cfg.Editor.ScenesDir)
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	id := uuid.New()
	log = log.With(zap.Stringer("session", id))

	s := &Session{
		ID:    id,
		cfg:   cfg,
		bus:   event.NewBus(),
		store: opts.Store,
		queue: make(chan any, cfg.Editor.CommandQueueSize),
		out:   opts.Out,
		log:   log,
	}
	s.Scene = world.NewScene(cfg.Select.GridCellSize, log.Named("scene"))
	s.History = tracker.NewChangeLog(cfg.History, log.Named("history"))
	s.Tools = tools.NewToolbox(
		s.Scene,
		s.History,
		tracker.NewTransformCoalescer(cfg.Coalesce),
		opts.Prefabs,
		cfg.Brush,
		log.Named("tools"),
	)

	scripts, err := scripting.NewEngine(cfg.Editor.ScriptsDir, s, log.Named("lua"))
	if err != nil {
		return nil, fmt.Errorf("scripting: %w", err)
	}
	s.scripts = scripts

	s.runner = coresys.NewRunner()
	s.runner.Register(system.NewInputSystem(s.queue, s.bus, cfg.Editor.MaxCommandsTick, log))
	s.runner.Register(system.NewEventDispatchSystem(s.bus))
	s.history = system.NewHistorySystem(s.History, s.Scene, s.bus, log)
	s.history.OnChange(func(ev event.HistoryChanged) { s.scripts.NotifyHistory(ev.Cursor, ev.Len) })
	s.history.BeforeStep(s.closeGestures)
	s.runner.Register(s.history)
	if cfg.Editor.AutosaveEvery > 0 {
		s.autosave = system.NewAutosaveSystem(s.Scene, s.History, s.store, cfg.Editor.AutosaveName, cfg.Editor.AutosaveEvery, log)
		s.runner.Register(s.autosave)
	}
	s.runner.Register(system.NewCleanupSystem(s.Scene))

	s.subscribe()
	return s, nil
}

// Submit parses a console line and queues all of its events for the loop, or
// none of them. Safe to call from one producer goroutine besides the loop.
func (s *Session) Submit(line string) error {
	evs, err := ParseCommand(line)
	if err != nil {
		return err
	}
	// Only the loop drains the queue, so free space cannot shrink under us.
	if cap(s.queue)-len(s.queue) < len(evs) {
		return ErrQueueFull
	}
	for _, ev := range evs {
		s.queue <- ev
	}
	return nil
}

// SubmitWait is Submit for a console: it blocks while the queue is full
// instead of failing.
func (s *Session) SubmitWait(ctx context.Context, line string) error {
	evs, err := ParseCommand(line)
	if err != nil {
		return err
	}
	for _, ev := range evs {
		select {
		case s.queue <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Tick runs one pass of every system.
func (s *Session) Tick(dt time.Duration) { s.runner.Tick(dt) }

// Done reports whether quit was requested.
func (s *Session) Done() bool { return s.quit }

// Run ticks the session until ctx is cancelled or quit is requested, then
// flushes a final autosave.
func (s *Session) Run(ctx context.Context) error {
	rate := s.cfg.Editor.TickRate
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	s.log.Info("editor loop started", zap.Duration("tick", rate))
	for {
		select {
		case <-ticker.C:
			s.Tick(rate)
			if s.quit {
				s.shutdown()
				return nil
			}
		case <-ctx.Done():
			s.shutdown()
			return nil
		}
	}
}

func (s *Session) shutdown() {
	if s.autosave != nil {
		s.autosave.SaveIfDirty()
	}
	s.log.Info("editor loop stopped", zap.Uint64("ticks", s.runner.Ticks()), zap.Int("history", s.History.Len()))
}

// Close releases the script VM.
func (s *Session) Close() {
	s.scripts.Close()
}

// closeGestures commits any open drag or brush stroke and ends a box select.
func (s *Session) closeGestures() {
	s.Tools.EndDrag()
	s.Tools.EndBrush()
	s.Tools.EndBox()
}

// LoadLayout replaces the scene with props. Loading is not an edit: history
// starts over.
func (s *Session) LoadLayout(props []component.Snapshot) {
	s.closeGestures()
	s.Scene.Reset()
	s.History.Clear()
	s.Tools.Selection.Clear()
	s.Tools.Cursor.Reset()
	for _, p := range props {
		s.Scene.Create(p)
	}
	s.log.Info("layout loaded", zap.Int("props", len(props)))
}

// SaveScene writes the current props under name.
func (s *Session) SaveScene(ctx context.Context, name string) error {
	if err := s.store.Save(ctx, name, s.Scene.Props()); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// LoadScene replaces the scene with the stored layout name.
func (s *Session) LoadScene(ctx context.Context, name string) error {
	props, err := s.store.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	s.LoadLayout(props)
	return nil
}
