package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/orbitsweep/orbitsweep/internal/config"
	"github.com/orbitsweep/orbitsweep/internal/data"
	"github.com/orbitsweep/orbitsweep/internal/gen"
	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/persist"
	"github.com/orbitsweep/orbitsweep/internal/world"
	"go.uber.org/zap"
)

// SnapshotStore saves, loads and deletes named snapshots. Load returns
// persist.ErrSnapshotNotFound when nothing is stored under the name; deleting
// a missing snapshot is not an error.
type SnapshotStore interface {
	Save(ctx context.Context, name string, s *persist.Snapshot) error
	Load(ctx context.Context, name string) (*persist.Snapshot, error)
	Delete(ctx context.Context, name string) error
}

// Snapshot captures the restorable state. Decor is left out.
func (s *Session) Snapshot() *persist.Snapshot {
	c := s.scene.Craft
	snap := &persist.Snapshot{
		Version: persist.SnapshotVersion,
		Tick:    s.scene.Tick,
		Score:   s.scene.Score,
		Craft: persist.CraftState{
			X: c.Pos.X, Y: c.Pos.Y,
			VX: c.Vel.X, VY: c.Vel.Y,
			Heading: c.Heading,
			Alive:   c.Alive,
		},
		Planets: make([]persist.PlanetState, 0, len(s.scene.Bodies.Planets)),
		Garbage: make([]persist.GarbageState, 0, s.scene.Garbage.Len()),
		SavedAt: time.Now().UTC(),
	}
	for _, p := range s.scene.Bodies.Planets {
		snap.Planets = append(snap.Planets, persist.PlanetState{
			OrbitRadius:  p.OrbitRadius,
			AngularSpeed: p.AngularSpeed,
			Angle:        p.Angle,
			Radius:       p.Radius,
			Color:        persist.PackColor(p.Color),
		})
	}
	s.scene.Garbage.Each(func(g *world.Garbage) {
		snap.Garbage = append(snap.Garbage, persist.GarbageState{
			X: g.Pos.X, Y: g.Pos.Y,
			Size:  g.Size,
			Color: persist.PackColor(g.Color),
		})
	})
	return snap
}

// Restore builds a session from a snapshot. Decor is regenerated from rng.
func Restore(ctx context.Context, cfg *config.Config, pal *data.Palette, rng *rand.Rand, log *zap.Logger, opts Options, snap *persist.Snapshot) (*Session, error) {
	if snap == nil {
		return nil, errors.New("restore: nil snapshot")
	}
	if snap.Version != persist.SnapshotVersion {
		return nil, fmt.Errorf("restore: snapshot version %d, want %d", snap.Version, persist.SnapshotVersion)
	}
	if err := checkSnapshot(snap, cfg.Planets.Margin); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	center := geom.V(cfg.World.CenterX, cfg.World.CenterY)

	g := gen.New(cfg, pal, rng, log)
	decor, err := g.Decor(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore decor: %w", err)
	}

	res := &gen.Result{
		Center:  center,
		Radius:  cfg.World.Radius,
		Bodies:  world.Bodies{Sun: world.Sun{Pos: center, Radius: cfg.World.SunRadius, Color: pal.Sun}},
		Garbage: world.NewGarbageField(len(snap.Garbage)),
		Decor:   decor,
		Spawn:   geom.V(snap.Craft.X, snap.Craft.Y),
		Heading: snap.Craft.Heading,
	}
	for _, p := range snap.Planets {
		res.Bodies.Planets = append(res.Bodies.Planets,
			world.NewPlanet(center, p.OrbitRadius, p.AngularSpeed, p.Angle, p.Radius, persist.UnpackColor(p.Color)))
	}
	for _, it := range snap.Garbage {
		res.Garbage.Add(geom.V(it.X, it.Y), it.Size, persist.UnpackColor(it.Color))
	}

	s := FromResult(cfg, pal, rng, log, opts, res)
	s.scene.Craft.Vel = geom.V(snap.Craft.VX, snap.Craft.VY)
	s.scene.Craft.Alive = snap.Craft.Alive
	s.scene.Score = snap.Score
	s.scene.Tick = snap.Tick
	return s, nil
}

// checkSnapshot rejects snapshots no generated world could have produced:
// non-finite numbers, non-positive sizes and planets breaking orbit spacing.
func checkSnapshot(snap *persist.Snapshot, margin float64) error {
	var errs []error
	c := snap.Craft
	if !finite(c.X, c.Y, c.VX, c.VY, c.Heading) {
		errs = append(errs, errors.New("craft state not finite"))
	}
	for i, p := range snap.Planets {
		if !finite(p.OrbitRadius, p.AngularSpeed, p.Angle, p.Radius) || p.OrbitRadius <= 0 || p.Radius <= 0 {
			errs = append(errs, fmt.Errorf("planet %d malformed", i))
			continue
		}
		for j, o := range snap.Planets[:i] {
			if math.Abs(p.OrbitRadius-o.OrbitRadius) < p.Radius+o.Radius+margin-1e-9 {
				errs = append(errs, fmt.Errorf("planets %d and %d overlap orbits", j, i))
			}
		}
	}
	for i, g := range snap.Garbage {
		if !finite(g.X, g.Y, g.Size) || g.Size <= 0 {
			errs = append(errs, fmt.Errorf("garbage %d malformed", i))
		}
	}
	return errors.Join(errs...)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Save writes the current state under name.
func (s *Session) Save(ctx context.Context, store SnapshotStore, name string) error {
	snap := s.Snapshot()
	if err := store.Save(ctx, name, snap); err != nil {
		return fmt.Errorf("save snapshot %q: %w", name, err)
	}
	s.log.Info("snapshot saved",
		zap.String("name", name),
		zap.Uint64("tick", snap.Tick),
		zap.Int("garbage", len(snap.Garbage)),
	)
	return nil
}

// LoadOrGenerate restores the named snapshot, or generates a fresh world when
// there is no store, no snapshot or an unusable one. restored reports which
// happened. Only a failure to generate is returned as an error.
func LoadOrGenerate(ctx context.Context, store SnapshotStore, name string, cfg *config.Config, pal *data.Palette, rng *rand.Rand, log *zap.Logger, opts Options) (sess *Session, restored bool, err error) {
	if store != nil {
		snap, err := store.Load(ctx, name)
		switch {
		case errors.Is(err, persist.ErrSnapshotNotFound):
			log.Info("no snapshot, generating a new world", zap.String("name", name))
		case err != nil:
			log.Warn("snapshot load failed, generating a new world", zap.String("name", name), zap.Error(err))
		default:
			sess, err := Restore(ctx, cfg, pal, rng, log, opts, snap)
			if err == nil {
				log.Info("snapshot restored", zap.String("name", name), zap.Uint64("tick", snap.Tick))
				return sess, true, nil
			}
			log.Warn("snapshot unusable, generating a new world", zap.String("name", name), zap.Error(err))
		}
	}
	sess, err = New(ctx, cfg, pal, rng, log, opts)
	if err != nil {
		return nil, false, err
	}
	return sess, false, nil
}
