package gen

import (
	"context"
	"math"
	"math/rand"

	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/world"
	"golang.org/x/sync/errgroup"
)

const cancelCheckEvery = 4096

// bandLayer describes one population strewn along the band path.
type bandLayer struct {
	total   int
	spread  float64   // gaussian sigma as a fraction of band thickness
	limit   float64   // hard clamp as a fraction of band thickness
	jitter  float64   // extra uniform offset on both axes
	perpDeg []float64 // rotation applied to the segment direction
	make    func(rng *rand.Rand, pos geom.Vec2) world.Decor
}

// Decor generates the background. The band path is drawn from the main
// source; each layer then runs on its own worker with a source seeded from
// the main one, so output is reproducible regardless of scheduling.
func (g *Generator) Decor(ctx context.Context) ([]world.Decor, error) {
	dc := g.cfg.Decor
	path, thickness := g.bandPath()

	layers := []bandLayer{
		{total: dc.GasBlobs, spread: 1 / 2.5, limit: 0.8, jitter: 10, perpDeg: []float64{90}, make: g.gasBlob},
		{total: dc.BandStars, spread: 1 / 1.5, limit: 1.2, jitter: 30, perpDeg: []float64{90}, make: g.bandStar},
		{total: dc.DustBlobs, spread: 1 / 2.5, limit: 0.7, jitter: 15, perpDeg: []float64{-80, -90, -100, 80, 90, 100}, make: g.dustBlob},
	}

	jobs := make([]func(context.Context, *rand.Rand) ([]world.Decor, error), 0, len(layers)+2)
	for _, l := range layers {
		l := l
		jobs = append(jobs, func(ctx context.Context, rng *rand.Rand) ([]world.Decor, error) {
			return g.alongBand(ctx, rng, path, thickness, l)
		})
	}
	jobs = append(jobs, g.outerStars, g.distantPlanets)

	seeds := make([]int64, len(jobs))
	for i := range seeds {
		seeds[i] = g.rng.Int63()
	}

	out := make([][]world.Decor, len(jobs))
	eg, ectx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		eg.Go(func() error {
			d, err := job(ectx, rand.New(rand.NewSource(seeds[i])))
			out[i] = d
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	n := 0
	for _, d := range out {
		n += len(d)
	}
	all := make([]world.Decor, 0, n)
	for _, d := range out {
		all = append(all, d...)
	}
	g.stats.Decor = len(all)
	return all, nil
}

// bandPath lays a meandering polyline across the world, left to right, and
// picks the band thickness.
func (g *Generator) bandPath() ([]geom.Vec2, float64) {
	R := g.cfg.World.Radius
	c := g.center
	segs := g.cfg.Decor.BandSegments
	if segs < 1 {
		segs = 1
	}
	startX, endX := c.X-0.8*R, c.X+0.8*R

	curY := c.Y + uniform(g.rng, -R/4, R/4)
	path := make([]geom.Vec2, 0, segs+2)
	path = append(path, geom.V(startX, curY))
	for i := 1; i <= segs; i++ {
		f := float64(i) / float64(segs)
		px := startX + f*(endX-startX)
		off := math.Sin(f*math.Pi*uniform(g.rng, 1.5, 2.5)+uniform(g.rng, -0.5, 0.5)) * (R / 2.5)
		curY += uniform(g.rng, -R/15, R/15) / float64(segs)
		py := math.Max(c.Y-0.4*R, math.Min(c.Y+0.4*R, curY+off))
		path = append(path, geom.V(px, py))
	}
	path = append(path, geom.V(endX, c.Y+uniform(g.rng, -R/4, R/4)))
	return path, R / uniform(g.rng, 4, 6)
}

// alongBand distributes l.total items over the path segments in proportion
// to segment length, spread across the band with a clamped gaussian.
func (g *Generator) alongBand(ctx context.Context, rng *rand.Rand, path []geom.Vec2, thickness float64, l bandLayer) ([]world.Decor, error) {
	if l.total <= 0 || len(path) < 2 {
		return nil, nil
	}
	R := g.cfg.World.Radius
	nominal := 2 * R / float64(len(path)-2) // expected segment length
	perSeg := float64(l.total) / float64(len(path)-1)

	out := make([]world.Decor, 0, l.total)
	for i := 0; i+1 < len(path); i++ {
		p1, p2 := path[i], path[i+1]
		dir := p2.Sub(p1)
		length := dir.Len()
		if length == 0 {
			continue
		}
		count := int(perSeg * length / nominal)
		for k := 0; k < count; k++ {
			if len(out)%cancelCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			base := p1.Lerp(p2, rng.Float64())
			off := rng.NormFloat64() * thickness * l.spread
			off = math.Max(-thickness*l.limit, math.Min(thickness*l.limit, off))
			rot := geom.Deg2Rad(pick(rng, l.perpDeg))
			perp := rotate(dir, rot).Normalize()
			pos := base.Add(perp.Scale(off)).Add(geom.V(
				uniform(rng, -l.jitter, l.jitter),
				uniform(rng, -l.jitter, l.jitter),
			))
			if pos.Dist(g.center) > R {
				continue
			}
			out = append(out, l.make(rng, pos))
		}
	}
	return out, nil
}

func rotate(v geom.Vec2, rad float64) geom.Vec2 {
	s, c := math.Sincos(rad)
	return geom.V(v.X*c-v.Y*s, v.X*s+v.Y*c)
}

func (g *Generator) gasBlob(rng *rand.Rand, pos geom.Vec2) world.Decor {
	return &world.GasBlob{
		Pos:   pos,
		Size:  float64(5 + rng.Intn(11)),
		Color: withAlpha(pick(rng, g.pal.BandGas), rng, g.pal.BandGasAlpha),
	}
}

func (g *Generator) bandStar(rng *rand.Rand, pos geom.Vec2) world.Decor {
	return &world.Star{
		Pos:   pos,
		Size:  pick(rng, g.pal.BandStarSizes),
		Color: brighten(pick(rng, g.pal.BandStars), uniform(rng, 0.8, 1.2)),
	}
}

func (g *Generator) dustBlob(rng *rand.Rand, pos geom.Vec2) world.Decor {
	return &world.DustBlob{
		Pos:   pos,
		Size:  float64(8 + rng.Intn(18)),
		Color: withAlpha(g.pal.Dust, rng, g.pal.DustAlpha),
	}
}

// outerStars fills the disk outside the inner 40% with dimmer stars.
func (g *Generator) outerStars(ctx context.Context, rng *rand.Rand) ([]world.Decor, error) {
	R := g.cfg.World.Radius
	n := g.cfg.Decor.OuterStars
	out := make([]world.Decor, 0, n)
	for i := 0; i < n; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		a := rng.Float64() * 2 * math.Pi
		r := R * (0.4 + 0.6*math.Sqrt(rng.Float64()))
		out = append(out, &world.Star{
			Pos:   geom.Polar(g.center, r, a),
			Size:  pick(rng, g.pal.OuterStarSizes),
			Color: brighten(pick(rng, g.pal.OuterStars), uniform(rng, 0.5, 0.9)),
		})
	}
	return out, nil
}

// distantPlanets scatters tiny far-away planets within 95% of the world
// radius, thinning them out inside the horizontal band strip.
func (g *Generator) distantPlanets(ctx context.Context, rng *rand.Rand) ([]world.Decor, error) {
	R := g.cfg.World.Radius
	n := g.cfg.Decor.DistantPlanets
	out := make([]world.Decor, 0, n)
	for i := 0; i < n; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		pos := annulusPoint(rng, g.center, 0, 0.95*R)
		radius := float64(3 + rng.Intn(5))
		if math.Abs(pos.Y-g.center.Y) < 0.2*R && rng.Float64() < 0.7 {
			continue
		}
		out = append(out, &world.DistantPlanet{
			Pos:    pos,
			Radius: radius,
			Color:  pick(rng, g.pal.DistantPlanets),
		})
	}
	return out, nil
}
