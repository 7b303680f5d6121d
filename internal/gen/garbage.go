package gen

import (
	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/world"
	"go.uber.org/zap"
)

// placeGarbage seeds a cluster around every planet's generation-time
// position, then scatters the general field.
func (g *Generator) placeGarbage(bodies *world.Bodies) *world.GarbageField {
	gc := g.cfg.Garbage
	field := world.NewGarbageField(gc.PerPlanet*len(bodies.Planets) + gc.General)

	for i, p := range bodies.Planets {
		inner := p.Radius + gc.MinSurfaceDistance
		outer := p.Radius * gc.ZoneFactor
		if outer <= inner {
			g.log.Debug("planet too small for a garbage zone", zap.Int("planet", i))
			g.stats.GarbageSkipped += gc.PerPlanet
			continue
		}
		g.stats.ClusterGarbage += g.scatter(field, bodies, p.Pos, inner, outer, gc.PerPlanet)
	}

	inner := g.cfg.World.SunRadius + gc.SunClearance
	outer := g.cfg.World.Radius - gc.SizeMax/2
	g.stats.GeneralGarbage = g.scatter(field, bodies, g.center, inner, outer, gc.General)
	return field
}

// scatter places up to count items in the annulus [inner, outer] around c.
// Each item gets PlacementAttempts tries before it is skipped.
func (g *Generator) scatter(field *world.GarbageField, bodies *world.Bodies, c geom.Vec2, inner, outer float64, count int) int {
	gc := g.cfg.Garbage
	placed := 0
	for n := 0; n < count; n++ {
		ok := false
		for a := 0; a < gc.PlacementAttempts; a++ {
			pos := annulusPoint(g.rng, c, inner, outer)
			if !g.garbageFits(bodies, pos) {
				continue
			}
			size := uniform(g.rng, gc.SizeMin, gc.SizeMax)
			field.Add(pos, size, jitterColor(g.rng, g.pal.GarbageBase, g.pal.GarbageJitter))
			ok = true
			break
		}
		if ok {
			placed++
		} else {
			g.stats.GarbageSkipped++
		}
	}
	return placed
}

// garbageFits checks a candidate against the world rim and every body,
// using the largest possible item radius so the check holds for any size.
func (g *Generator) garbageFits(bodies *world.Bodies, pos geom.Vec2) bool {
	maxR := g.cfg.Garbage.SizeMax / 2
	if pos.Dist(g.center)+maxR > g.cfg.World.Radius {
		return false
	}
	fits := true
	bodies.Each(func(_ world.Element, bp geom.Vec2, br float64) {
		if fits && pos.DistSq(bp) < (br+maxR)*(br+maxR) {
			fits = false
		}
	})
	return fits
}
