package view

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/pilot"
	"github.com/orbitsweep/orbitsweep/internal/sim"
	"github.com/orbitsweep/orbitsweep/internal/world"
)

// craftGlyphs are indexed by heading octant, starting at +X going CCW.
var craftGlyphs = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// Renderer draws a session onto a tcell screen, camera centered on the craft.
type Renderer struct {
	screen tcell.Screen
	zoom   float64
}

func NewRenderer(screen tcell.Screen, zoom float64) *Renderer {
	return &Renderer{screen: screen, zoom: zoom}
}

func (r *Renderer) Zoom() float64 { return r.zoom }

// SetZoom clamps to a sane range so the view never degenerates.
func (r *Renderer) SetZoom(z float64) {
	r.zoom = math.Max(10, math.Min(z, 5000))
}

func style(c world.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func faded(c world.Color, f float64) world.Color {
	return world.Color{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: c.A}
}

// Camera returns the camera for the current screen size.
func (r *Renderer) Camera(s *sim.Session) Camera {
	w, h := r.screen.Size()
	return Camera{Center: s.Craft().Pos, Zoom: r.zoom, Width: w, Height: h - 1}
}

// Draw renders one frame: decor, bodies, garbage, particles, craft, status
// line.
func (r *Renderer) Draw(s *sim.Session, autopilot bool, mode pilot.Mode) {
	cam := r.Camera(s)
	view := cam.WorldRect()
	r.screen.Clear()

	for _, d := range s.Visible(view) {
		r.drawDecor(cam, d)
	}
	s.Bodies().Each(func(e world.Element, pos geom.Vec2, radius float64) {
		var c world.Color
		switch b := e.(type) {
		case *world.Sun:
			c = b.Color
		case *world.Planet:
			c = b.Color
		}
		r.disc(cam, pos, radius, style(c))
	})
	s.Garbage().Each(func(g *world.Garbage) {
		if x, y, ok := cam.ToScreen(g.Pos); ok {
			r.screen.SetContent(x, y, '▪', nil, style(g.Color))
		}
	})

	c := s.Craft()
	for i := range c.Particles {
		p := &c.Particles[i]
		if x, y, ok := cam.ToScreen(p.Pos); ok {
			r.screen.SetContent(x, y, '*', nil, style(faded(p.Color, p.Fade())))
		}
	}
	if c.Alive {
		if x, y, ok := cam.ToScreen(c.Pos); ok {
			octant := int(math.Round(geom.NormalizeDeg(c.Heading)/45)) % 8
			r.screen.SetContent(x, y, craftGlyphs[octant], nil, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
		}
	}

	r.status(cam, s, autopilot, mode)
	r.screen.Show()
}

func (r *Renderer) drawDecor(cam Camera, d world.Decor) {
	x, y, ok := cam.ToScreen(d.Position())
	if !ok {
		return
	}
	var ch rune
	var c world.Color
	switch e := d.(type) {
	case *world.Star:
		c = e.Color
		switch e.Size {
		case world.StarLarge:
			ch = '*'
		case world.StarMedium:
			ch = '+'
		default:
			ch = '.'
		}
	case *world.GasBlob:
		ch, c = '░', faded(e.Color, float64(e.Color.A)/255)
	case *world.DustBlob:
		ch, c = '·', faded(e.Color, float64(e.Color.A)/255)
	case *world.DistantPlanet:
		ch, c = 'o', e.Color
	default:
		return
	}
	r.screen.SetContent(x, y, ch, nil, style(c))
}

// disc fills every cell whose center lies within radius of pos; bodies
// smaller than a cell still get one glyph.
func (r *Renderer) disc(cam Camera, pos geom.Vec2, radius float64, st tcell.Style) {
	view := cam.WorldRect()
	if !view.Overlaps(geom.RectAround(pos, 2*radius)) {
		return
	}
	if radius < cam.Zoom {
		if x, y, ok := cam.ToScreen(pos); ok {
			r.screen.SetContent(x, y, 'O', nil, st)
		}
		return
	}
	x0, y0, _ := cam.ToScreen(geom.V(pos.X-radius, pos.Y+radius))
	x1, y1, _ := cam.ToScreen(geom.V(pos.X+radius, pos.Y-radius))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, cam.Width-1), min(y1, cam.Height-1)
	rsq := radius * radius
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if cam.ToWorld(x, y).DistSq(pos) <= rsq {
				r.screen.SetContent(x, y, '█', nil, st)
			}
		}
	}
}

func (r *Renderer) status(cam Camera, s *sim.Session, autopilot bool, mode pilot.Mode) {
	sc := s.Score()
	ctl := "manual"
	if autopilot {
		ctl = "auto:" + mode.String()
	}
	line := fmt.Sprintf(" score %d  collected %d  lost %d  left %d  %s ", sc.Points, sc.Collected, sc.Lost, s.Garbage().Len(), ctl)
	if !s.Craft().Alive {
		line += " DESTROYED  r: restart  q: quit"
	} else if s.Garbage().Len() == 0 {
		line += " SWEPT CLEAN  r: restart  q: quit"
	}
	st := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, ch := range line {
		if x >= cam.Width {
			break
		}
		r.screen.SetContent(x, cam.Height, ch, nil, st)
		x++
	}
}
