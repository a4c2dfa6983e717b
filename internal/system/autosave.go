package system

import (
	"context"
	"time"

	"github.com/pgeditor/editor/internal/component"
	coresys "github.com/pgeditor/editor/internal/core/system"
	"github.com/pgeditor/editor/internal/tracker"
	"github.com/pgeditor/editor/internal/world"
	"go.uber.org/zap"
)

// SceneSaver persists the props of a scene under a name.
type SceneSaver interface {
	Save(ctx context.Context, name string, props []component.Snapshot) error
}

// AutosaveSystem periodically saves the scene when history moved since the
// last save. Only scene contents are written; history itself is never
// persisted. Phase 4 (Persist).
type AutosaveSystem struct {
	scene    *world.Scene
	history  *tracker.ChangeLog
	store    SceneSaver
	name     string
	interval time.Duration
	timeout  time.Duration
	log      *zap.Logger

	elapsed time.Duration
	saved   uint64
}

func NewAutosaveSystem(scene *world.Scene, history *tracker.ChangeLog, store SceneSaver, name string, interval time.Duration, log *zap.Logger) *AutosaveSystem {
	return &AutosaveSystem{
		scene:    scene,
		history:  history,
		store:    store,
		name:     name,
		interval: interval,
		timeout:  5 * time.Second,
		log:      log,
		saved:    history.Revision(),
	}
}

func (s *AutosaveSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *AutosaveSystem) Update(dt time.Duration) {
	if s.interval <= 0 {
		return
	}
	s.elapsed += dt
	if s.elapsed < s.interval {
		return
	}
	s.elapsed = 0
	s.SaveIfDirty()
}

// SaveIfDirty saves now if history moved since the last save. Also called on shutdown.
func (s *AutosaveSystem) SaveIfDirty() bool {
	rev := s.history.Revision()
	if rev == s.saved {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.store.Save(ctx, s.name, s.scene.Props()); err != nil {
		s.log.Error("autosave failed", zap.String("scene", s.name), zap.Error(err))
		return false
	}
	s.saved = rev
	s.log.Info("autosaved", zap.String("scene", s.name), zap.Int("props", s.scene.PropCount()))
	return true
}
