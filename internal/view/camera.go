package view

import "github.com/orbitsweep/orbitsweep/internal/geom"

// cellAspect is how much taller a terminal cell is than it is wide.
const cellAspect = 2.0

// Camera maps world coordinates onto a terminal grid. World +Y points up,
// screen rows grow down.
type Camera struct {
	Center        geom.Vec2
	Zoom          float64 // world units per column
	Width, Height int
}

// WorldRect is the world area the camera shows.
func (c Camera) WorldRect() geom.Rect {
	hw := float64(c.Width) * c.Zoom / 2
	hh := float64(c.Height) * c.Zoom * cellAspect / 2
	return geom.Rect{
		Min: geom.V(c.Center.X-hw, c.Center.Y-hh),
		Max: geom.V(c.Center.X+hw, c.Center.Y+hh),
	}
}

// ToScreen returns the cell showing world point p and whether it is on
// screen.
func (c Camera) ToScreen(p geom.Vec2) (x, y int, ok bool) {
	fx := (p.X-c.Center.X)/c.Zoom + float64(c.Width)/2
	fy := -(p.Y-c.Center.Y)/(c.Zoom*cellAspect) + float64(c.Height)/2
	if fx < 0 || fy < 0 {
		return 0, 0, false
	}
	x, y = int(fx), int(fy)
	return x, y, x < c.Width && y < c.Height
}

// ToWorld returns the world point at the center of cell (x, y).
func (c Camera) ToWorld(x, y int) geom.Vec2 {
	return geom.V(
		c.Center.X+(float64(x)+0.5-float64(c.Width)/2)*c.Zoom,
		c.Center.Y-(float64(y)+0.5-float64(c.Height)/2)*c.Zoom*cellAspect,
	)
}
