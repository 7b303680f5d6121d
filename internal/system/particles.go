package system

import (
	"time"

	coresys "github.com/orbitsweep/orbitsweep/internal/core/system"
	"github.com/orbitsweep/orbitsweep/internal/world"
)

// particleDrag is the per-tick velocity multiplier for particles.
const particleDrag = 0.96

// ParticleSystem ages and moves craft particles, dropping expired ones.
// Phase 6 (Effects). Keeps running after the craft dies so the explosion
// plays out.
type ParticleSystem struct {
	scene *world.Scene
}

func NewParticleSystem(scene *world.Scene) *ParticleSystem {
	return &ParticleSystem{scene: scene}
}

func (s *ParticleSystem) Phase() coresys.Phase { return coresys.PhaseEffects }

func (s *ParticleSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	c := s.scene.Craft
	live := c.Particles[:0]
	for _, p := range c.Particles {
		p.Life -= secs
		if p.Life <= 0 {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Scale(secs))
		p.Vel = p.Vel.Scale(particleDrag)
		live = append(live, p)
	}
	clear(c.Particles[len(live):])
	c.Particles = live
}
