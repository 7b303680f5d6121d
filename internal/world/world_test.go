package world

import (
	"math"
	"testing"

	"github.com/orbitsweep/orbitsweep/internal/geom"
)

func TestPlanetSetAngleWraps(t *testing.T) {
	p := NewPlanet(geom.V(100, 100), 500, 0.1, 0, 20, RGB(1, 2, 3))
	p.SetAngle(3 * math.Pi)
	if math.Abs(p.Angle-math.Pi) > 1e-9 {
		t.Fatalf("angle = %v, want π", p.Angle)
	}
	if d := p.Pos.Dist(p.Center); math.Abs(d-500) > 1e-9 {
		t.Fatalf("distance %v, want orbit radius", d)
	}
	p.SetAngle(-math.Pi / 2)
	if p.Angle < 0 || p.Angle >= 2*math.Pi {
		t.Fatalf("angle %v outside [0, 2π)", p.Angle)
	}
}

func TestBodiesEachVisitsSunFirst(t *testing.T) {
	b := &Bodies{
		Sun:     Sun{Radius: 10},
		Planets: []*Planet{NewPlanet(geom.Vec2{}, 100, 0, 0, 5, Color{}), NewPlanet(geom.Vec2{}, 200, 0, 0, 6, Color{})},
	}
	var kinds []string
	b.Each(func(e Element, _ geom.Vec2, r float64) {
		switch e.(type) {
		case *Sun:
			kinds = append(kinds, "sun")
		case *Planet:
			kinds = append(kinds, "planet")
		}
	})
	if len(kinds) != 3 || kinds[0] != "sun" {
		t.Fatalf("visit order %v", kinds)
	}
}

func TestGarbageFieldDeferredRemoval(t *testing.T) {
	f := NewGarbageField(4)
	a := f.Add(geom.V(1, 0), 10, Color{})
	b := f.Add(geom.V(2, 0), 12, Color{})

	seen := 0
	f.Each(func(g *Garbage) {
		f.MarkRemoved(g.ID)
		seen++
	})
	if seen != 2 || f.Len() != 2 {
		t.Fatalf("marking must not shrink the field mid-pass: seen=%d len=%d", seen, f.Len())
	}
	if n := f.Flush(); n != 2 {
		t.Fatalf("flushed %d, want 2", n)
	}
	if f.Len() != 0 || f.Alive(a) || f.Alive(b) {
		t.Fatal("field not empty after flushing the last items")
	}
	if _, ok := f.Get(a); ok {
		t.Fatal("stale handle resolved")
	}
	c := f.Add(geom.V(3, 0), 8, Color{})
	if f.Alive(a) || !f.Alive(c) {
		t.Fatal("reused slot confused old and new handles")
	}
}

func TestGarbageCollider(t *testing.T) {
	g := Garbage{Pos: geom.V(0, 0), Size: 20}
	r := g.Collider(0.8)
	if math.Abs(r.Width()-16) > 1e-9 || g.Radius() != 10 {
		t.Fatalf("collider %+v radius %v", r, g.Radius())
	}
}

func TestElementTypeSwitch(t *testing.T) {
	elems := []Element{&Sun{}, &Planet{}, &Garbage{}, &Star{}, &GasBlob{}, &DustBlob{}, &DistantPlanet{}}
	decor := 0
	for _, e := range elems {
		if _, ok := e.(Decor); ok {
			decor++
		}
	}
	if decor != 4 {
		t.Fatalf("decor variants = %d, want 4", decor)
	}
}
