package gen

import (
	"math"

	"github.com/orbitsweep/orbitsweep/internal/world"
	"go.uber.org/zap"
)

// placePlanets splits [MinOrbit, MaxOrbit] into one segment per planet and
// samples an orbit inside each, retrying when a neighbour is too close.
// When the budget runs out the planet goes just past the last orbit,
// clamped to MaxOrbit; if even that collides it is shrunk or dropped, so the
// spacing invariant always holds.
func (g *Generator) placePlanets() []*world.Planet {
	pc := g.cfg.Planets
	if pc.Count <= 0 {
		return nil
	}
	planets := make([]*world.Planet, 0, pc.Count)
	seg := (pc.MaxOrbit - pc.MinOrbit) / float64(pc.Count)

	for i := 0; i < pc.Count; i++ {
		radius := uniform(g.rng, pc.MinRadius, pc.MaxRadius)
		lo := pc.MinOrbit + float64(i)*seg

		orbit, ok := 0.0, false
		for a := 0; a < pc.PlacementAttempts; a++ {
			cand := math.Min(lo+uniform(g.rng, 0.1*seg, 0.9*seg), pc.MaxOrbit)
			if g.orbitClearance(planets, cand) >= radius {
				orbit, ok = cand, true
				break
			}
		}
		if !ok {
			g.stats.PlanetFallbacks++
			orbit = pc.MinOrbit
			if n := len(planets); n > 0 {
				last := planets[n-1]
				orbit = last.OrbitRadius + last.Radius + radius + pc.Margin
			}
			orbit = math.Min(orbit, pc.MaxOrbit)
			if room := g.orbitClearance(planets, orbit); room < radius {
				if room < pc.MinRadius {
					g.stats.PlanetsDropped++
					g.log.Warn("planet dropped: no orbit slot left",
						zap.Int("index", i), zap.Float64("orbit", orbit))
					continue
				}
				g.stats.PlanetsShrunk++
				radius = room
			}
			g.log.Debug("planet placement fell back",
				zap.Int("index", i), zap.Float64("orbit", orbit), zap.Float64("radius", radius))
		}

		speed := uniform(g.rng, pc.MinAngularSpeed, pc.MaxAngularSpeed) /
			(1 + orbit/pc.MaxOrbit*3) // outer planets are slower
		angle := g.rng.Float64() * 2 * math.Pi
		color := pick(g.rng, g.pal.Planets)
		planets = append(planets, world.NewPlanet(g.center, orbit, speed, angle, radius, color))
	}
	g.stats.Planets = len(planets)
	return planets
}

// orbitClearance returns the largest planet radius that fits at orbit
// without breaking |ra - rb| >= radius_a + radius_b + margin.
func (g *Generator) orbitClearance(planets []*world.Planet, orbit float64) float64 {
	room := math.Inf(1)
	for _, p := range planets {
		r := math.Abs(orbit-p.OrbitRadius) - p.Radius - g.cfg.Planets.Margin
		room = math.Min(room, r)
	}
	return room
}
