package system

import (
	"time"

	coresys "github.com/orbitsweep/orbitsweep/internal/core/system"
	"github.com/orbitsweep/orbitsweep/internal/physics"
	"github.com/orbitsweep/orbitsweep/internal/world"
)

// OrbitSystem advances every planet along its orbit. Phase 1 (Orbit).
type OrbitSystem struct {
	scene *world.Scene
}

func NewOrbitSystem(scene *world.Scene) *OrbitSystem {
	return &OrbitSystem{scene: scene}
}

func (s *OrbitSystem) Phase() coresys.Phase { return coresys.PhaseOrbit }

func (s *OrbitSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	for _, p := range s.scene.Bodies.Planets {
		physics.AdvanceOrbit(p, secs)
	}
}
