package system

import (
	"time"

	coresys "github.com/orbitsweep/orbitsweep/internal/core/system"
	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/physics"
	"github.com/orbitsweep/orbitsweep/internal/pilot"
	"github.com/orbitsweep/orbitsweep/internal/scripting"
	"github.com/orbitsweep/orbitsweep/internal/world"
	"go.uber.org/zap"
)

// Controls is one tick of manual input: rotation direction (-1 clockwise,
// +1 counter-clockwise, 0 none) and the thrust flag.
type Controls struct {
	Rotate int
	Thrust bool
}

// Input is polled once per tick while the autopilot is off.
type Input interface {
	Controls() Controls
}

// AutopilotHook may replace seek and wander decisions. Flee is never
// offered to it.
type AutopilotHook interface {
	AutopilotOverride(ctx scripting.AutopilotContext) (scripting.AutopilotOverride, bool)
}

// ControlParams are the craft handling constants shared by both control modes.
type ControlParams struct {
	RotationSpeed   float64 // deg/s
	Thrust          float64
	MaxVelocity     float64
	HeadingDeadzone float64
}

// ControlSystem turns autopilot decisions or player input into a heading
// change and a thrust delta. Phase 2 (Control).
type ControlSystem struct {
	scene     *world.Scene
	params    ControlParams
	pilot     *pilot.Controller
	input     Input
	hook      AutopilotHook
	autopilot bool
	last      pilot.Decision
	log       *zap.Logger
}

func NewControlSystem(scene *world.Scene, params ControlParams, ctrl *pilot.Controller, input Input, hook AutopilotHook, autopilot bool, log *zap.Logger) *ControlSystem {
	return &ControlSystem{
		scene:     scene,
		params:    params,
		pilot:     ctrl,
		input:     input,
		hook:      hook,
		autopilot: autopilot,
		log:       log,
	}
}

func (s *ControlSystem) Phase() coresys.Phase { return coresys.PhaseControl }

func (s *ControlSystem) Autopilot() bool { return s.autopilot }

// SetAutopilot switches control modes. Engaging the autopilot starts it from
// a clean state.
func (s *ControlSystem) SetAutopilot(on bool) {
	if on && !s.autopilot {
		s.pilot.Reset()
	}
	s.autopilot = on
	s.log.Debug("autopilot toggled", zap.Bool("on", on))
}

// SetInput replaces the manual input source.
func (s *ControlSystem) SetInput(in Input) { s.input = in }

// LastDecision is the most recent autopilot decision, for HUDs.
func (s *ControlSystem) LastDecision() pilot.Decision { return s.last }

func (s *ControlSystem) Update(dt time.Duration) {
	c := s.scene.Craft
	if !c.Alive {
		return
	}
	secs := dt.Seconds()
	maxStep := s.params.RotationSpeed * secs

	var thrust bool
	if s.autopilot {
		d := s.pilot.Decide(c, s.scene.Bodies, s.scene.Garbage, secs)
		d = s.override(d)
		s.last = d
		c.Heading = pilot.Steer(c.Heading, d.Heading, maxStep, s.params.HeadingDeadzone)
		thrust = d.Thrust
	} else if s.input != nil {
		in := s.input.Controls()
		if in.Rotate != 0 {
			c.Heading = geom.NormalizeDeg(c.Heading + float64(in.Rotate)*maxStep)
		}
		thrust = in.Thrust
	}

	c.Thrusting = thrust
	if thrust {
		c.ThrustDelta = c.ThrustDelta.Add(physics.ThrustDelta(c.Heading, s.params.Thrust, s.params.MaxVelocity, secs))
	}
}

func (s *ControlSystem) override(d pilot.Decision) pilot.Decision {
	if s.hook == nil || d.Mode == pilot.ModeFlee {
		return d
	}
	c := s.scene.Craft
	o, ok := s.hook.AutopilotOverride(scripting.AutopilotContext{
		X:              c.Pos.X,
		Y:              c.Pos.Y,
		VX:             c.Vel.X,
		VY:             c.Vel.Y,
		Heading:        c.Heading,
		Mode:           d.Mode.String(),
		DesiredHeading: d.Heading,
		Thrust:         d.Thrust,
		TargetX:        d.Target.X,
		TargetY:        d.Target.Y,
		Score:          s.scene.Score.Points,
		Garbage:        s.scene.Garbage.Len(),
		Tick:           s.scene.Tick,
	})
	if !ok {
		return d
	}
	d.Heading = o.Heading
	d.Thrust = o.Thrust
	return d
}
