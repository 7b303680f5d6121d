// Package gen builds a world: sun, orbiting planets, garbage clusters and
// scatter, decorative background and a safe craft spawn point. Every random
// decision comes from the injected source, so a seed reproduces a world.
package gen

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/orbitsweep/orbitsweep/internal/config"
	"github.com/orbitsweep/orbitsweep/internal/data"
	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/world"
	"go.uber.org/zap"
)

// Stats counts how often placement had to fall back or give up.
type Stats struct {
	Planets         int
	PlanetFallbacks int // orbit appended past the last planet
	PlanetsShrunk   int // fallback orbit only fit a smaller planet
	PlanetsDropped  int // no room at all
	ClusterGarbage  int
	GeneralGarbage  int
	GarbageSkipped  int // attempt budget exhausted
	Decor           int
	SpawnFallback   bool
}

// Result is everything a fresh session needs.
type Result struct {
	Center  geom.Vec2
	Radius  float64
	Bodies  world.Bodies
	Garbage *world.GarbageField
	Decor   []world.Decor
	Spawn   geom.Vec2
	Heading float64
	Stats   Stats
}

// Generator is single-use per world and not safe for concurrent use; the
// decor pass spawns its own workers with derived sources.
type Generator struct {
	cfg *config.Config
	pal *data.Palette
	rng *rand.Rand
	log *zap.Logger

	center geom.Vec2
	stats  Stats
}

func New(cfg *config.Config, pal *data.Palette, rng *rand.Rand, log *zap.Logger) *Generator {
	return &Generator{
		cfg:    cfg,
		pal:    pal,
		rng:    rng,
		log:    log,
		center: geom.V(cfg.World.CenterX, cfg.World.CenterY),
	}
}

// Generate runs the full pass. Only cancellation of ctx can make it fail;
// infeasible placements degrade to fallbacks and are counted in Stats.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	g.stats = Stats{}
	res := &Result{
		Center: g.center,
		Radius: g.cfg.World.Radius,
		Bodies: world.Bodies{Sun: world.Sun{
			Pos:    g.center,
			Radius: g.cfg.World.SunRadius,
			Color:  g.pal.Sun,
		}},
	}

	res.Bodies.Planets = g.placePlanets()
	res.Garbage = g.placeGarbage(&res.Bodies)
	res.Spawn, res.Heading = g.SpawnPoint(&res.Bodies)

	decor, err := g.Decor(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate decor: %w", err)
	}
	res.Decor = decor
	res.Stats = g.stats

	g.log.Info("world generated",
		zap.Int("planets", g.stats.Planets),
		zap.Int("garbage", res.Garbage.Len()),
		zap.Int("decor", len(decor)),
		zap.Int("planet_fallbacks", g.stats.PlanetFallbacks),
		zap.Int("garbage_skipped", g.stats.GarbageSkipped),
		zap.Bool("spawn_fallback", g.stats.SpawnFallback),
	)
	return res, nil
}

// Outcome is delivered once by GenerateAsync.
type Outcome struct {
	Result *Result
	Err    error
}

// GenerateAsync runs Generate on a worker goroutine. The channel yields
// exactly one Outcome and is then closed. The caller must not touch g until
// the outcome arrives.
func (g *Generator) GenerateAsync(ctx context.Context) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		res, err := g.Generate(ctx)
		ch <- Outcome{Result: res, Err: err}
	}()
	return ch
}
