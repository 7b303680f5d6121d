package geom

import "math"

// Headings are in degrees: 0 points along +X, increasing counter-clockwise.

func Deg2Rad(d float64) float64 { return d * math.Pi / 180 }
func Rad2Deg(r float64) float64 { return r * 180 / math.Pi }

// NormalizeDeg maps d into [0, 360).
func NormalizeDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		// tiny negative inputs round up to 360 after the wrap
		d = 0
	}
	return d
}

// AngleDiff returns the signed shortest rotation from `from` to `to`,
// in [-180, 180].
func AngleDiff(from, to float64) float64 {
	d := math.Mod(to-from+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

// HeadingTo returns the heading pointing from a toward b.
func HeadingTo(a, b Vec2) float64 {
	return NormalizeDeg(Rad2Deg(math.Atan2(b.Y-a.Y, b.X-a.X)))
}

// HeadingVec returns the unit vector for heading h.
func HeadingVec(h float64) Vec2 {
	r := Deg2Rad(h)
	return Vec2{math.Cos(r), math.Sin(r)}
}
