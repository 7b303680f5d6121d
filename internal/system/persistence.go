package system

import (
	"context"
	"time"

	coresys "github.com/orbitsweep/orbitsweep/internal/core/system"
	"github.com/orbitsweep/orbitsweep/internal/persist"
	"go.uber.org/zap"
)

// Saver stores a named snapshot.
type Saver interface {
	Save(ctx context.Context, name string, s *persist.Snapshot) error
}

// PersistenceSystem periodically snapshots the session. Phase 7 (Cleanup),
// registered after CleanupSystem so removals are already flushed.
type PersistenceSystem struct {
	saver     Saver
	snapshot  func() *persist.Snapshot
	name      string
	log       *zap.Logger
	tickCount int
	interval  int // auto-save every N ticks
}

func NewPersistenceSystem(saver Saver, snapshot func() *persist.Snapshot, name string, intervalTicks int, log *zap.Logger) *PersistenceSystem {
	return &PersistenceSystem{
		saver:    saver,
		snapshot: snapshot,
		name:     name,
		log:      log,
		interval: intervalTicks,
	}
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *PersistenceSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.SaveNow()
}

// SaveNow writes a snapshot immediately. Failures are logged, never fatal.
func (s *PersistenceSystem) SaveNow() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	snap := s.snapshot()
	if err := s.saver.Save(ctx, s.name, snap); err != nil {
		s.log.Error("autosave failed", zap.String("name", s.name), zap.Error(err))
		return
	}
	s.log.Debug("autosaved", zap.String("name", s.name), zap.Uint64("tick", snap.Tick))
}
