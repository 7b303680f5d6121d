package physics

import (
	"math"

	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/world"
)

// CraftParams are the tunables of craft motion.
type CraftParams struct {
	Thrust          float64 // velocity gained per second of thrust
	MaxVelocity     float64 // component clamp on a single thrust delta
	Drag            float64 // per-tick multiplier in (0,1)
	BounceDamping   float64 // fraction of reflected velocity kept at the rim
	EffectiveRadius float64
}

// ThrustDelta is the velocity change from one tick of thrust along heading,
// each component clamped to ±maxVelocity.
func ThrustDelta(heading, thrust, maxVelocity, dt float64) geom.Vec2 {
	d := geom.HeadingVec(heading).Scale(thrust * dt)
	d.X = math.Max(-maxVelocity, math.Min(maxVelocity, d.X))
	d.Y = math.Max(-maxVelocity, math.Min(maxVelocity, d.Y))
	return d
}

// IntegrateCraft folds the pending thrust delta into velocity, applies drag,
// advances position and keeps the craft inside the world circle. Returns
// true when the craft was pushed back from the rim this tick.
func IntegrateCraft(c *world.Craft, p CraftParams, center geom.Vec2, worldRadius, dt float64) bool {
	c.Vel = c.Vel.Add(c.ThrustDelta)
	c.ThrustDelta = geom.Vec2{}
	c.Vel = c.Vel.Scale(p.Drag)
	c.Pos = c.Pos.Add(c.Vel.Scale(dt))
	return containCraft(c, p, center, worldRadius)
}

func containCraft(c *world.Craft, p CraftParams, center geom.Vec2, worldRadius float64) bool {
	off := c.Pos.Sub(center)
	d := off.Len()
	limit := worldRadius - p.EffectiveRadius
	if d+p.EffectiveRadius <= worldRadius || d == 0 {
		return false
	}
	n := off.Scale(1 / d)
	c.Pos = center.Add(n.Scale(limit))
	// reflect the outward component only, then bleed energy
	if vn := c.Vel.Dot(n); vn > 0 {
		c.Vel = c.Vel.Sub(n.Scale(2 * vn))
	}
	c.Vel = c.Vel.Scale(p.BounceDamping)
	return true
}
