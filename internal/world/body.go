package world

import (
	"math"

	"github.com/orbitsweep/orbitsweep/internal/geom"
)

// Sun sits fixed at the world center.
type Sun struct {
	Pos    geom.Vec2
	Radius float64
	Color  Color
}

func (s *Sun) Position() geom.Vec2 { return s.Pos }
func (*Sun) element()              {}

// Planet moves on a perfect circle around Center. Pos is always derived from
// Angle; nothing else writes it.
type Planet struct {
	Center       geom.Vec2
	OrbitRadius  float64
	AngularSpeed float64 // rad/s
	Angle        float64 // rad, kept in [0, 2π)
	Radius       float64
	Color        Color
	Pos          geom.Vec2
}

func NewPlanet(center geom.Vec2, orbitRadius, angularSpeed, angle, radius float64, color Color) *Planet {
	p := &Planet{
		Center:       center,
		OrbitRadius:  orbitRadius,
		AngularSpeed: angularSpeed,
		Angle:        angle,
		Radius:       radius,
		Color:        color,
	}
	p.SetAngle(angle)
	return p
}

func (p *Planet) Position() geom.Vec2 { return p.Pos }
func (*Planet) element()              {}

// SetAngle moves the planet to angle a on its orbit.
func (p *Planet) SetAngle(a float64) {
	if a >= 2*math.Pi || a < 0 {
		a = math.Mod(a, 2*math.Pi)
		if a < 0 {
			a += 2 * math.Pi
		}
	}
	p.Angle = a
	p.Pos = geom.Polar(p.Center, p.OrbitRadius, a)
}

// Bodies is the hazard set: the sun plus the orbiting planets.
type Bodies struct {
	Sun     Sun
	Planets []*Planet
}

// Each visits the sun first, then planets in generation order.
func (b *Bodies) Each(fn func(e Element, pos geom.Vec2, radius float64)) {
	fn(&b.Sun, b.Sun.Pos, b.Sun.Radius)
	for _, p := range b.Planets {
		fn(p, p.Pos, p.Radius)
	}
}
