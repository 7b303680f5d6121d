package system

import (
	"math/rand"
	"time"

	coresys "github.com/orbitsweep/orbitsweep/internal/core/system"
	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/physics"
	"github.com/orbitsweep/orbitsweep/internal/world"
)

var (
	exhaustColor   = world.RGB(255, 170, 60)
	explosionColor = world.RGB(255, 90, 40)
)

// CraftSystem integrates craft motion and emits exhaust while thrusting.
// Phase 3 (Integrate).
type CraftSystem struct {
	scene       *world.Scene
	params      physics.CraftParams
	exhaustRate int
	rng         *rand.Rand
}

func NewCraftSystem(scene *world.Scene, params physics.CraftParams, exhaustRate int, rng *rand.Rand) *CraftSystem {
	return &CraftSystem{scene: scene, params: params, exhaustRate: exhaustRate, rng: rng}
}

func (s *CraftSystem) Phase() coresys.Phase { return coresys.PhaseIntegrate }

func (s *CraftSystem) Update(dt time.Duration) {
	c := s.scene.Craft
	if !c.Alive {
		return
	}
	physics.IntegrateCraft(c, s.params, s.scene.Center, s.scene.Radius, dt.Seconds())
	if c.Thrusting {
		s.emitExhaust(c)
	}
}

func (s *CraftSystem) emitExhaust(c *world.Craft) {
	back := geom.HeadingVec(c.Heading + 180)
	nozzle := c.Pos.Add(back.Scale(s.params.EffectiveRadius))
	for i := 0; i < s.exhaustRate; i++ {
		spread := geom.HeadingVec(c.Heading + 180 + (s.rng.Float64()*2-1)*15)
		life := 0.3 + s.rng.Float64()*0.4
		c.Particles = append(c.Particles, world.Particle{
			Kind:    world.ParticleExhaust,
			Pos:     nozzle,
			Vel:     c.Vel.Add(spread.Scale(200 + s.rng.Float64()*200)),
			Life:    life,
			MaxLife: life,
			Size:    4 + s.rng.Float64()*4,
			Color:   exhaustColor,
		})
	}
}

// explode appends a radial burst of n particles at the craft. Exhaust
// already in flight keeps fading alongside it.
func explode(c *world.Craft, n int, rng *rand.Rand) {
	for i := 0; i < n; i++ {
		dir := geom.HeadingVec(rng.Float64() * 360)
		life := 0.8 + rng.Float64()*1.2
		c.Particles = append(c.Particles, world.Particle{
			Kind:    world.ParticleExplosion,
			Pos:     c.Pos,
			Vel:     dir.Scale(100 + rng.Float64()*500),
			Life:    life,
			MaxLife: life,
			Size:    6 + rng.Float64()*10,
			Color:   explosionColor,
		})
	}
}
