package world

import "github.com/orbitsweep/orbitsweep/internal/geom"

// Color is 8-bit RGBA. A zero alpha means opaque for everything except the
// translucent band blobs.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

// Element is the closed set of things that exist in the world:
// *Sun, *Planet, *Garbage, *Star, *GasBlob, *DustBlob, *DistantPlanet.
// Consumers dispatch with a type switch.
type Element interface {
	Position() geom.Vec2
	element()
}

// Decor is the subset of elements that are pure background: immutable after
// generation, no collision, bucketed by the spatial index.
type Decor interface {
	Element
	decor()
}

type StarSize uint8

const (
	StarSmall StarSize = iota
	StarMedium
	StarLarge
)

func (s StarSize) String() string {
	switch s {
	case StarSmall:
		return "small"
	case StarMedium:
		return "medium"
	case StarLarge:
		return "large"
	}
	return "unknown"
}

type Star struct {
	Pos   geom.Vec2
	Color Color
	Size  StarSize
}

type GasBlob struct {
	Pos   geom.Vec2
	Size  float64
	Color Color // translucent
}

type DustBlob struct {
	Pos   geom.Vec2
	Size  float64
	Color Color // translucent
}

type DistantPlanet struct {
	Pos    geom.Vec2
	Radius float64
	Color  Color
}

func (s *Star) Position() geom.Vec2          { return s.Pos }
func (g *GasBlob) Position() geom.Vec2       { return g.Pos }
func (d *DustBlob) Position() geom.Vec2      { return d.Pos }
func (d *DistantPlanet) Position() geom.Vec2 { return d.Pos }

func (*Star) element()          {}
func (*GasBlob) element()       {}
func (*DustBlob) element()      {}
func (*DistantPlanet) element() {}

func (*Star) decor()          {}
func (*GasBlob) decor()       {}
func (*DustBlob) decor()      {}
func (*DistantPlanet) decor() {}
