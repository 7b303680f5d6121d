package physics

import "github.com/orbitsweep/orbitsweep/internal/world"

// AdvanceOrbit moves p along its circle by AngularSpeed*dt radians. Orbits
// are exactly periodic: no decay, no mutual perturbation.
func AdvanceOrbit(p *world.Planet, dt float64) {
	p.SetAngle(p.Angle + p.AngularSpeed*dt)
}
