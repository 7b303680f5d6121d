package pilot

import (
	"math"

	"github.com/orbitsweep/orbitsweep/internal/geom"
)

// Steer turns heading toward desired by at most maxStep degrees, taking the
// shorter way round. Inside deadzone it snaps exactly onto desired.
func Steer(heading, desired, maxStep, deadzone float64) float64 {
	diff := geom.AngleDiff(heading, desired)
	if math.Abs(diff) <= deadzone {
		return geom.NormalizeDeg(desired)
	}
	step := math.Max(-maxStep, math.Min(maxStep, diff))
	return geom.NormalizeDeg(heading + step)
}
