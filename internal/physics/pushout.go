package physics

import "github.com/orbitsweep/orbitsweep/internal/geom"

// PushOut moves an item of radius itemRadius that sinks into a body by half
// its penetration depth, radially away from the body center. Overlap starts
// at bodyRadius + itemRadius/2. An item exactly at the center goes out +X.
func PushOut(item geom.Vec2, itemRadius float64, body geom.Vec2, bodyRadius float64) (geom.Vec2, bool) {
	reach := bodyRadius + itemRadius/2
	off := item.Sub(body)
	if off.LenSq() >= reach*reach {
		return item, false
	}
	d := off.Len()
	dir := geom.Vec2{X: 1}
	if d > 0 {
		dir = off.Scale(1 / d)
	}
	return item.Add(dir.Scale((reach - d) / 2)), true
}
