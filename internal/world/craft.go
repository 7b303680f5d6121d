package world

import "github.com/orbitsweep/orbitsweep/internal/geom"

// Craft is the single controllable ship.
type Craft struct {
	Pos         geom.Vec2
	Vel         geom.Vec2 // persistent, units/s
	ThrustDelta geom.Vec2 // accumulated this tick, consumed by integration
	Heading     float64   // degrees, 0 = +X, counter-clockwise
	Thrusting   bool
	Alive       bool
	Particles   []Particle
}

func NewCraft(pos geom.Vec2, heading float64) *Craft {
	return &Craft{
		Pos:       pos,
		Heading:   heading,
		Alive:     true,
		Particles: make([]Particle, 0, 128),
	}
}

type ParticleKind uint8

const (
	ParticleExhaust ParticleKind = iota
	ParticleExplosion
)

// Particle is a short-lived visual emitted by the craft.
type Particle struct {
	Kind    ParticleKind
	Pos     geom.Vec2
	Vel     geom.Vec2
	Life    float64 // seconds remaining
	MaxLife float64
	Size    float64
	Color   Color
}

// Fade returns remaining life in [0,1] for renderers.
func (p *Particle) Fade() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return p.Life / p.MaxLife
}
