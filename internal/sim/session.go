// Package sim owns one running game: the world, the per-phase systems, the
// autopilot and the event bus, advanced one fixed tick at a time.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/orbitsweep/orbitsweep/internal/config"
	"github.com/orbitsweep/orbitsweep/internal/core/event"
	coresys "github.com/orbitsweep/orbitsweep/internal/core/system"
	"github.com/orbitsweep/orbitsweep/internal/data"
	"github.com/orbitsweep/orbitsweep/internal/gen"
	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/physics"
	"github.com/orbitsweep/orbitsweep/internal/pilot"
	"github.com/orbitsweep/orbitsweep/internal/spatial"
	"github.com/orbitsweep/orbitsweep/internal/system"
	"github.com/orbitsweep/orbitsweep/internal/world"
	"go.uber.org/zap"
)

// Options are the optional collaborators of a session.
type Options struct {
	Input  system.Input         // manual controls; nil means none
	Scorer system.Scorer        // nil scores 1 point per item
	Hook   system.AutopilotHook // nil keeps the built-in autopilot

	// Store enables periodic autosave under SaveName every AutosaveTicks.
	Store         SnapshotStore
	SaveName      string
	AutosaveTicks int
}

// Session is the single owner of simulation state. Not safe for concurrent
// use; drive it from one loop.
type Session struct {
	cfg  *config.Config
	pal  *data.Palette
	rng  *rand.Rand
	log  *zap.Logger
	opts Options

	scene   world.Scene
	index   *spatial.Index
	stats   gen.Stats
	bus     *event.Bus
	runner  *coresys.Runner
	pilot   *pilot.Controller
	control *system.ControlSystem
}

// New generates a world and builds a session around it.
func New(ctx context.Context, cfg *config.Config, pal *data.Palette, rng *rand.Rand, log *zap.Logger, opts Options) (*Session, error) {
	res, err := gen.New(cfg, pal, rng, log).Generate(ctx)
	if err != nil {
		return nil, err
	}
	return FromResult(cfg, pal, rng, log, opts, res), nil
}

// FromResult builds a session around an already generated world, such as
// one delivered by gen.GenerateAsync. rng must be the source the world was
// generated from.
func FromResult(cfg *config.Config, pal *data.Palette, rng *rand.Rand, log *zap.Logger, opts Options, res *gen.Result) *Session {
	s := &Session{
		cfg:  cfg,
		pal:  pal,
		rng:  rng,
		log:  log,
		opts: opts,
		bus:  event.NewBus(),
	}
	s.build()
	s.apply(res)
	return s
}

func (s *Session) build() {
	cfg := s.cfg
	center := geom.V(cfg.World.CenterX, cfg.World.CenterY)

	s.pilot = pilot.NewController(pilot.Params{
		AutopilotConfig: cfg.Autopilot,
		CraftRadius:     cfg.Craft.EffectiveRadius,
		Center:          center,
		WorldRadius:     cfg.World.Radius,
	}, rand.New(rand.NewSource(s.rng.Int63())))

	s.control = system.NewControlSystem(&s.scene, system.ControlParams{
		RotationSpeed:   cfg.Craft.RotationSpeed,
		Thrust:          cfg.Craft.Thrust,
		MaxVelocity:     cfg.Craft.MaxVelocity,
		HeadingDeadzone: cfg.Autopilot.HeadingDeadzone,
	}, s.pilot, s.opts.Input, s.opts.Hook, cfg.Simulation.Autopilot, s.log)

	fx := rand.New(rand.NewSource(s.rng.Int63()))
	s.runner = coresys.NewRunner()
	s.runner.Register(system.NewDispatchSystem(s.bus))
	s.runner.Register(system.NewOrbitSystem(&s.scene))
	s.runner.Register(s.control)
	s.runner.Register(system.NewCraftSystem(&s.scene, physics.CraftParams{
		Thrust:          cfg.Craft.Thrust,
		MaxVelocity:     cfg.Craft.MaxVelocity,
		Drag:            cfg.Craft.Drag,
		BounceDamping:   cfg.Craft.BounceDamping,
		EffectiveRadius: cfg.Craft.EffectiveRadius,
	}, cfg.Craft.ExhaustRate, fx))
	s.runner.Register(system.NewMagnetSystem(&s.scene, physics.MagnetParams{
		Range:        cfg.Magnet.Range,
		BaseStrength: cfg.Magnet.BaseStrength,
		Offset:       cfg.Magnet.Offset,
		MinFactor:    cfg.Magnet.MinStrengthFactor,
		SizeMin:      cfg.Garbage.SizeMin,
		SizeMax:      cfg.Garbage.SizeMax,
	}))
	s.runner.Register(system.NewCollisionSystem(&s.scene, s.bus, system.CollisionParams{
		CraftRadius:    cfg.Craft.EffectiveRadius,
		CollectorSize:  cfg.Craft.CollectorSize,
		ColliderScale:  cfg.Garbage.ColliderScale,
		ExplosionBurst: cfg.Craft.ExplosionBurst,
	}, s.opts.Scorer, fx, s.log))
	s.runner.Register(system.NewParticleSystem(&s.scene))
	s.runner.Register(system.NewCleanupSystem(&s.scene))
	if s.opts.Store != nil && s.opts.AutosaveTicks > 0 {
		s.runner.Register(system.NewPersistenceSystem(s.opts.Store, s.Snapshot, s.opts.SaveName, s.opts.AutosaveTicks, s.log))
	}
}

// apply installs a generated world as the current scene.
func (s *Session) apply(res *gen.Result) {
	bodies := res.Bodies
	s.scene = world.Scene{
		Center:  res.Center,
		Radius:  res.Radius,
		Bodies:  &bodies,
		Garbage: res.Garbage,
		Craft:   world.NewCraft(res.Spawn, res.Heading),
	}
	s.stats = res.Stats
	s.setDecor(res.Decor)
}

func (s *Session) setDecor(decor []world.Decor) {
	s.index = spatial.NewIndex(s.scene.Center, s.scene.Radius, s.cfg.World.CellSize)
	for _, d := range decor {
		s.index.Insert(d)
	}
}

// Tick advances the simulation by dt. Once the craft is destroyed only
// event delivery and effects keep running.
func (s *Session) Tick(dt time.Duration) {
	if s.scene.Craft.Alive {
		s.runner.Tick(dt)
	} else {
		s.runner.TickPhase(coresys.PhaseDispatch, dt)
		s.runner.TickPhase(coresys.PhaseEffects, dt)
	}
	s.scene.Tick++
}

// Reset throws the current world away and starts over with a fresh one.
// Autopilot memory, score and queued events are cleared.
func (s *Session) Reset(ctx context.Context) error {
	res, err := gen.New(s.cfg, s.pal, s.rng, s.log).Generate(ctx)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.bus.Reset()
	s.pilot.Reset()
	s.apply(res)
	s.log.Info("session reset", zap.Int("garbage", s.scene.Garbage.Len()))
	return nil
}

func (s *Session) Scene() *world.Scene          { return &s.scene }
func (s *Session) Bodies() *world.Bodies        { return s.scene.Bodies }
func (s *Session) Garbage() *world.GarbageField { return s.scene.Garbage }
func (s *Session) Craft() *world.Craft          { return s.scene.Craft }
func (s *Session) Score() world.Score           { return s.scene.Score }
func (s *Session) TickCount() uint64            { return s.scene.Tick }
func (s *Session) Stats() gen.Stats             { return s.stats }
func (s *Session) Bus() *event.Bus              { return s.bus }
func (s *Session) Index() *spatial.Index        { return s.index }
func (s *Session) Control() *system.ControlSystem {
	return s.control
}

// Visible returns the decor a camera showing view needs to draw.
func (s *Session) Visible(view geom.Rect) []world.Decor {
	return s.index.Visible(view)
}

// Done reports whether the round is over: craft destroyed or field cleared.
func (s *Session) Done() bool {
	return !s.scene.Craft.Alive || s.scene.Garbage.Len() == 0
}
