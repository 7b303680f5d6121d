package gen

import (
	"math"
	"math/rand"

	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/world"
)

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// annulusPoint samples a point in the ring [inner, outer] around c with
// area-uniform density: the radius is the square root of a uniform draw
// between the squared bounds.
func annulusPoint(rng *rand.Rand, c geom.Vec2, inner, outer float64) geom.Vec2 {
	a := rng.Float64() * 2 * math.Pi
	r := math.Sqrt(uniform(rng, inner*inner, outer*outer))
	return geom.Polar(c, r, a)
}

func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.Intn(len(xs))]
}

func clampChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v)))
}

// jitterColor offsets each channel of c by up to ±j.
func jitterColor(rng *rand.Rand, c world.Color, j int) world.Color {
	if j <= 0 {
		return c
	}
	off := func(ch uint8) uint8 {
		return clampChannel(float64(int(ch) + rng.Intn(2*j+1) - j))
	}
	return world.Color{R: off(c.R), G: off(c.G), B: off(c.B), A: c.A}
}

// brighten scales the RGB channels of c by m, saturating at 255.
func brighten(c world.Color, m float64) world.Color {
	return world.Color{
		R: clampChannel(float64(c.R) * m),
		G: clampChannel(float64(c.G) * m),
		B: clampChannel(float64(c.B) * m),
		A: c.A,
	}
}

func withAlpha(c world.Color, rng *rand.Rand, bounds [2]uint8) world.Color {
	lo, hi := int(bounds[0]), int(bounds[1])
	if hi < lo {
		lo, hi = hi, lo
	}
	c.A = uint8(lo + rng.Intn(hi-lo+1))
	return c
}
