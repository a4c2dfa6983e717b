package system

import (
	"time"

	coresys "github.com/pgeditor/editor/internal/core/system"
	"github.com/pgeditor/editor/internal/world"
)

// CleanupSystem destroys ghosts retired during the tick. Phase 5 (Cleanup).
type CleanupSystem struct {
	scene *world.Scene
}

func NewCleanupSystem(scene *world.Scene) *CleanupSystem {
	return &CleanupSystem{scene: scene}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.scene.ECS().FlushDestroyQueue()
}
