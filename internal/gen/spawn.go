package gen

import (
	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/world"
)

// SpawnPoint finds a craft position at least SpawnSafeDistance from every
// body surface and from the rim. After the attempt budget it settles on a
// fixed point just outside the sun's exclusion radius. The heading is
// tangential to the sun.
func (g *Generator) SpawnPoint(bodies *world.Bodies) (geom.Vec2, float64) {
	cc := g.cfg.Craft
	safe := cc.SpawnSafeDistance + cc.EffectiveRadius
	inner := bodies.Sun.Radius + safe
	outer := g.cfg.World.Radius - safe

	if outer > inner {
		for a := 0; a < cc.SpawnAttempts; a++ {
			pos := annulusPoint(g.rng, g.center, inner, outer)
			if spawnClear(bodies, pos, safe) {
				return pos, tangent(g.center, pos)
			}
		}
	}
	g.stats.SpawnFallback = true
	pos := g.center.Add(geom.V(inner, 0))
	return pos, tangent(g.center, pos)
}

func spawnClear(bodies *world.Bodies, pos geom.Vec2, safe float64) bool {
	for _, p := range bodies.Planets {
		reach := p.Radius + safe
		if pos.DistSq(p.Pos) < reach*reach {
			return false
		}
	}
	return true
}

func tangent(center, pos geom.Vec2) float64 {
	return geom.NormalizeDeg(geom.HeadingTo(center, pos) + 90)
}
