package physics

import (
	"math"

	"github.com/orbitsweep/orbitsweep/internal/geom"
)

// MagnetParams shape the craft's pull on garbage.
type MagnetParams struct {
	Range        float64
	BaseStrength float64
	Offset       float64 // keeps the curve finite at zero distance
	MinFactor    float64 // pull multiplier for the largest items
	SizeMin      float64
	SizeMax      float64
}

// StrengthFactor interpolates from 1.0 for the smallest configured size down
// to MinFactor for the largest.
func (m MagnetParams) StrengthFactor(size float64) float64 {
	span := m.SizeMax - m.SizeMin
	t := 0.0
	if span > 0 {
		t = (size - m.SizeMin) / span
	}
	t = math.Max(0, math.Min(1, t))
	return 1 - t*(1-m.MinFactor)
}

// Speed is the attraction speed for an item of the given size at distance
// dist from the craft:
//
//	speed = base / (size * (dist + offset)) * factor, capped at Range
//
// Zero at distance zero and at or beyond Range.
func (m MagnetParams) Speed(size, dist float64) float64 {
	if dist <= 0 || dist >= m.Range || size <= 0 {
		return 0
	}
	s := m.BaseStrength / (size * (dist + m.Offset)) * m.StrengthFactor(size)
	return math.Min(s, m.Range)
}

// Attract returns the item's new position after one tick of pull toward
// target. The step never overshoots the target.
func (m MagnetParams) Attract(item, target geom.Vec2, size, dt float64) (geom.Vec2, bool) {
	off := target.Sub(item)
	dsq := off.LenSq()
	if dsq == 0 || dsq >= m.Range*m.Range {
		return item, false
	}
	d := math.Sqrt(dsq)
	step := m.Speed(size, d) * dt
	if step <= 0 {
		return item, false
	}
	if step > d {
		step = d
	}
	return item.Add(off.Scale(step / d)), true
}
