package system

import (
	"time"

	coresys "github.com/orbitsweep/orbitsweep/internal/core/system"
	"github.com/orbitsweep/orbitsweep/internal/physics"
	"github.com/orbitsweep/orbitsweep/internal/world"
)

// MagnetSystem pulls garbage in range toward the craft. Phase 4 (Attract).
type MagnetSystem struct {
	scene  *world.Scene
	params physics.MagnetParams
}

func NewMagnetSystem(scene *world.Scene, params physics.MagnetParams) *MagnetSystem {
	return &MagnetSystem{scene: scene, params: params}
}

func (s *MagnetSystem) Phase() coresys.Phase { return coresys.PhaseAttract }

func (s *MagnetSystem) Update(dt time.Duration) {
	c := s.scene.Craft
	if !c.Alive {
		return
	}
	secs := dt.Seconds()
	s.scene.Garbage.Each(func(g *world.Garbage) {
		if pos, moved := s.params.Attract(g.Pos, c.Pos, g.Size, secs); moved {
			g.Pos = pos
		}
	})
}
