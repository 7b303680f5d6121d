// Package pilot steers the craft when the autopilot is engaged: flee
// hazards first, then seek the nearest garbage, otherwise wander.
package pilot

import (
	"math"
	"math/rand"

	"github.com/orbitsweep/orbitsweep/internal/config"
	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/world"
)

type Mode uint8

const (
	ModeWander Mode = iota
	ModeSeek
	ModeFlee
)

func (m Mode) String() string {
	switch m {
	case ModeWander:
		return "wander"
	case ModeSeek:
		return "seek"
	case ModeFlee:
		return "flee"
	}
	return "unknown"
}

// Decision is one tick of autopilot output.
type Decision struct {
	Mode    Mode
	Heading float64 // desired heading, degrees
	Thrust  bool
	Target  geom.Vec2 // seek target or threat center
	Cause   string    // flee: "sun", "planet", "boundary"
}

// Params are the thresholds the arbitration runs on.
type Params struct {
	config.AutopilotConfig
	CraftRadius float64
	Center      geom.Vec2
	WorldRadius float64
}

// State is the autopilot's memory between ticks. It belongs to one session
// and is cleared on Reset.
type State struct {
	WanderTimer   float64 // seconds since the last wander re-roll
	WanderHeading float64
	Started       bool // false until the first wander heading is rolled
}

type Controller struct {
	p     Params
	rng   *rand.Rand
	state State
}

func NewController(p Params, rng *rand.Rand) *Controller {
	return &Controller{p: p, rng: rng}
}

func (c *Controller) Reset()       { c.state = State{} }
func (c *Controller) State() State { return c.state }

// Decide evaluates the priorities in order and returns at the first that
// fires.
func (c *Controller) Decide(craft *world.Craft, bodies *world.Bodies, field *world.GarbageField, dt float64) Decision {
	if d, ok := c.flee(craft, bodies); ok {
		c.state.WanderTimer = 0
		c.state.Started = false
		return d
	}
	if d, ok := c.seek(craft, field); ok {
		return d
	}
	return c.wander(craft, dt)
}

func (c *Controller) flee(craft *world.Craft, bodies *world.Bodies) (Decision, bool) {
	closest := math.Inf(1)
	var d Decision
	bodies.Each(func(e world.Element, pos geom.Vec2, radius float64) {
		surface := craft.Pos.Dist(pos) - radius - c.p.CraftRadius
		if surface >= c.p.DangerDistance || surface >= closest {
			return
		}
		closest = surface
		d = Decision{Mode: ModeFlee, Heading: geom.HeadingTo(pos, craft.Pos), Thrust: true, Target: pos}
		switch e.(type) {
		case *world.Sun:
			d.Cause = "sun"
		case *world.Planet:
			d.Cause = "planet"
		}
	})

	rim := c.p.WorldRadius - (craft.Pos.Dist(c.p.Center) + c.p.CraftRadius)
	if rim < c.p.BoundaryDistance && rim < closest {
		closest = rim
		d = Decision{Mode: ModeFlee, Heading: geom.HeadingTo(craft.Pos, c.p.Center), Thrust: true, Target: c.p.Center, Cause: "boundary"}
	}
	return d, !math.IsInf(closest, 1)
}

func (c *Controller) seek(craft *world.Craft, field *world.GarbageField) (Decision, bool) {
	best := c.p.SeekRadius * c.p.SeekRadius
	var target geom.Vec2
	found := false
	field.Each(func(g *world.Garbage) {
		if dsq := g.Pos.DistSq(craft.Pos); dsq <= best {
			best, target, found = dsq, g.Pos, true
		}
	})
	if !found {
		return Decision{}, false
	}
	prob := c.p.ThrustProbFar
	if best <= c.p.ArrivalRadius*c.p.ArrivalRadius {
		prob = c.p.ThrustProbNear
	}
	return Decision{
		Mode:    ModeSeek,
		Heading: geom.HeadingTo(craft.Pos, target),
		Thrust:  c.rng.Float64() < prob,
		Target:  target,
	}, true
}

func (c *Controller) wander(craft *world.Craft, dt float64) Decision {
	c.state.WanderTimer += dt
	if !c.state.Started || c.state.WanderTimer >= c.p.WanderInterval {
		half := c.p.WanderCone / 2
		c.state.WanderHeading = geom.NormalizeDeg(craft.Heading + (c.rng.Float64()*2-1)*half)
		c.state.WanderTimer = 0
		c.state.Started = true
	}
	return Decision{
		Mode:    ModeWander,
		Heading: c.state.WanderHeading,
		Thrust:  c.rng.Float64() < c.p.WanderThrustProb,
	}
}
