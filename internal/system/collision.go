package system

import (
	"math/rand"
	"time"

	"github.com/orbitsweep/orbitsweep/internal/core/ecs"
	"github.com/orbitsweep/orbitsweep/internal/core/event"
	coresys "github.com/orbitsweep/orbitsweep/internal/core/system"
	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/physics"
	"github.com/orbitsweep/orbitsweep/internal/world"
	"go.uber.org/zap"
)

// Scorer prices a collected item.
type Scorer interface {
	GarbagePoints(size float64) int
}

// CollisionParams are the collider dimensions.
type CollisionParams struct {
	CraftRadius    float64
	CollectorSize  float64 // edge of the craft's collection box
	ColliderScale  float64 // item box edge = Size * ColliderScale
	ExplosionBurst int
}

// CollisionSystem resolves craft hits, garbage collection and garbage
// push-out. Phase 5 (Collide). It is the only system that removes garbage,
// and it does so through the deferred queue.
type CollisionSystem struct {
	scene  *world.Scene
	bus    *event.Bus
	params CollisionParams
	scorer Scorer
	rng    *rand.Rand
	log    *zap.Logger

	collected []ecs.EntityID
	lost      []ecs.EntityID
}

func NewCollisionSystem(scene *world.Scene, bus *event.Bus, params CollisionParams, scorer Scorer, rng *rand.Rand, log *zap.Logger) *CollisionSystem {
	return &CollisionSystem{
		scene:     scene,
		bus:       bus,
		params:    params,
		scorer:    scorer,
		rng:       rng,
		log:       log,
		collected: make([]ecs.EntityID, 0, 16),
		lost:      make([]ecs.EntityID, 0, 16),
	}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollide }

func (s *CollisionSystem) Update(_ time.Duration) {
	c := s.scene.Craft
	if c.Alive {
		s.craftHits(c)
	}
	s.collected = s.collected[:0]
	s.lost = s.lost[:0]
	if c.Alive {
		s.gatherCollected(c)
	}
	s.pushOut()
	s.apply()
}

func (s *CollisionSystem) craftHits(c *world.Craft) {
	cause := ""
	s.scene.Bodies.Each(func(e world.Element, pos geom.Vec2, radius float64) {
		if cause != "" {
			return
		}
		reach := radius + s.params.CraftRadius
		if c.Pos.DistSq(pos) >= reach*reach {
			return
		}
		switch e.(type) {
		case *world.Sun:
			cause = "sun"
		case *world.Planet:
			cause = "planet"
		}
	})
	// the integrator clamps onto the rim exactly; only escape past it counts
	if cause == "" && c.Pos.Dist(s.scene.Center) > s.scene.Radius-s.params.CraftRadius+1e-6 {
		cause = "boundary"
	}
	if cause == "" {
		return
	}

	c.Alive = false
	c.Thrusting = false
	c.ThrustDelta = geom.Vec2{}
	c.Vel = geom.Vec2{}
	explode(c, s.params.ExplosionBurst, s.rng)
	event.Emit(s.bus, event.CraftDestroyed{Pos: c.Pos, Cause: cause, Tick: s.scene.Tick})
	s.log.Debug("craft destroyed",
		zap.String("cause", cause),
		zap.Float64("x", c.Pos.X),
		zap.Float64("y", c.Pos.Y),
	)
}

func (s *CollisionSystem) gatherCollected(c *world.Craft) {
	box := geom.RectAround(c.Pos, s.params.CollectorSize)
	s.scene.Garbage.Each(func(g *world.Garbage) {
		if box.Overlaps(g.Collider(s.params.ColliderScale)) {
			s.collected = append(s.collected, g.ID)
		}
	})
}

func (s *CollisionSystem) pushOut() {
	taken := make(map[ecs.EntityID]struct{}, len(s.collected))
	for _, id := range s.collected {
		taken[id] = struct{}{}
	}
	s.scene.Garbage.Each(func(g *world.Garbage) {
		if _, ok := taken[g.ID]; ok {
			return
		}
		r := g.Radius()
		s.scene.Bodies.Each(func(_ world.Element, pos geom.Vec2, radius float64) {
			if p, moved := physics.PushOut(g.Pos, r, pos, radius); moved {
				g.Pos = p
			}
		})
		if g.Pos.Dist(s.scene.Center) > s.scene.Radius+r {
			s.lost = append(s.lost, g.ID)
		}
	})
}

func (s *CollisionSystem) apply() {
	f := s.scene.Garbage
	score := &s.scene.Score
	for _, id := range s.collected {
		g, ok := f.Get(id)
		if !ok {
			continue
		}
		pts := 1
		if s.scorer != nil {
			pts = s.scorer.GarbagePoints(g.Size)
		}
		score.Points += pts
		score.Collected++
		event.Emit(s.bus, event.GarbageCollected{ID: id, Size: g.Size, Points: pts, Score: score.Points, Tick: s.scene.Tick})
		f.MarkRemoved(id)
	}
	for _, id := range s.lost {
		g, ok := f.Get(id)
		if !ok {
			continue
		}
		score.Lost++
		event.Emit(s.bus, event.GarbageLost{ID: id, Pos: g.Pos, Tick: s.scene.Tick})
		f.MarkRemoved(id)
	}
	if n := len(s.collected) + len(s.lost); n > 0 {
		s.log.Debug("garbage removed",
			zap.Int("collected", len(s.collected)),
			zap.Int("lost", len(s.lost)),
			zap.Int("remaining", f.Len()-n),
		)
	}
}
