package system

import (
	"time"

	coresys "github.com/orbitsweep/orbitsweep/internal/core/system"
	"github.com/orbitsweep/orbitsweep/internal/world"
)

// CleanupSystem flushes the deferred garbage removal queue at tick end.
// Phase 7 (Cleanup).
type CleanupSystem struct {
	scene *world.Scene
}

func NewCleanupSystem(scene *world.Scene) *CleanupSystem {
	return &CleanupSystem{scene: scene}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.scene.Garbage.Flush()
}
