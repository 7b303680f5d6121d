package physics

import (
	"math"
	"testing"

	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/world"
)

const eps = 1e-6

func testMagnet() MagnetParams {
	return MagnetParams{
		Range:        800,
		BaseStrength: 2000000,
		Offset:       100,
		MinFactor:    0.35,
		SizeMin:      6,
		SizeMax:      24,
	}
}

func TestOrbitRadiusHeldEveryTick(t *testing.T) {
	center := geom.V(100, -50)
	p := world.NewPlanet(center, 30000, 0.7, 1.0, 1500, world.RGB(1, 2, 3))
	for i := 0; i < 5000; i++ {
		AdvanceOrbit(p, 1.0/60)
		if d := p.Pos.Dist(center); math.Abs(d-p.OrbitRadius) > 1e-6*p.OrbitRadius {
			t.Fatalf("tick %d: distance %v != orbit %v", i, d, p.OrbitRadius)
		}
		if p.Angle < 0 || p.Angle >= 2*math.Pi {
			t.Fatalf("tick %d: angle %v not normalized", i, p.Angle)
		}
	}
}

func TestOrbitZeroDtIdempotent(t *testing.T) {
	p := world.NewPlanet(geom.V(0, 0), 40000, 0.03, 2.5, 900, world.Color{})
	before := *p
	for i := 0; i < 10; i++ {
		AdvanceOrbit(p, 0)
	}
	if *p != before {
		t.Fatalf("dt=0 moved planet: %+v -> %+v", before, *p)
	}
}

func TestThrustDeltaClamped(t *testing.T) {
	d := ThrustDelta(45, 1e6, 100, 1)
	if d.X != 100 || d.Y != 100 {
		t.Fatalf("delta %+v not clamped component-wise", d)
	}
	d = ThrustDelta(180, 600, 1000, 0.5)
	if math.Abs(d.X+300) > eps || math.Abs(d.Y) > eps {
		t.Fatalf("delta %+v", d)
	}
}

func TestIntegrateAppliesDragAndResetsDelta(t *testing.T) {
	c := world.NewCraft(geom.V(0, 0), 0)
	c.ThrustDelta = geom.V(10, 0)
	p := CraftParams{Drag: 0.5, BounceDamping: 0.5, EffectiveRadius: 1}
	IntegrateCraft(c, p, geom.V(0, 0), 1000, 1)
	if c.Vel != geom.V(5, 0) || c.Pos != geom.V(5, 0) {
		t.Fatalf("vel %+v pos %+v", c.Vel, c.Pos)
	}
	if c.ThrustDelta != (geom.Vec2{}) {
		t.Fatal("thrust delta not consumed")
	}
	IntegrateCraft(c, p, geom.V(0, 0), 1000, 1)
	if c.Vel != geom.V(2.5, 0) {
		t.Fatalf("drag not applied: %+v", c.Vel)
	}
}

func TestBoundaryBounceIsDamped(t *testing.T) {
	c := world.NewCraft(geom.V(990, 0), 0)
	c.Vel = geom.V(100, 0)
	p := CraftParams{Drag: 0.99, BounceDamping: 0.5, EffectiveRadius: 40}
	bounced := IntegrateCraft(c, p, geom.V(0, 0), 1000, 1)
	if !bounced {
		t.Fatal("expected bounce")
	}
	if d := c.Pos.Len(); math.Abs(d+40-1000) > eps {
		t.Fatalf("craft not clamped to rim: distance %v", d)
	}
	if c.Vel.X >= 0 {
		t.Fatalf("velocity not reflected: %+v", c.Vel)
	}
	if speed := c.Vel.Len(); speed >= 99 {
		t.Fatalf("bounce not attenuated: speed %v", speed)
	}
}

func TestMagnetScenario(t *testing.T) {
	m := testMagnet()
	s := m.Speed(20, 100)
	if s <= 0 || s > m.Range {
		t.Fatalf("speed %v outside (0, %v]", s, m.Range)
	}
}

func TestMagnetMonotonicAndZeroOutside(t *testing.T) {
	m := testMagnet()
	for _, size := range []float64{6, 12, 20, 24} {
		prev := math.Inf(1)
		for d := 1.0; d < m.Range; d += 7 {
			s := m.Speed(size, d)
			if s > prev+eps {
				t.Fatalf("size %v: speed rose from %v to %v at d=%v", size, prev, s, d)
			}
			if s > m.Range {
				t.Fatalf("speed %v above cap", s)
			}
			prev = s
		}
		for _, d := range []float64{0, m.Range, m.Range + 1, 1e9} {
			if s := m.Speed(size, d); s != 0 {
				t.Fatalf("size %v d=%v: speed %v, want 0", size, d, s)
			}
		}
	}
}

func TestMagnetFavoursSmallItems(t *testing.T) {
	m := testMagnet()
	if m.StrengthFactor(6) != 1 || math.Abs(m.StrengthFactor(24)-0.35) > eps {
		t.Fatalf("factors %v %v", m.StrengthFactor(6), m.StrengthFactor(24))
	}
	if m.Speed(8, 400) <= m.Speed(22, 400) {
		t.Fatal("small items must be pulled harder")
	}
}

func TestAttractStepsTowardTarget(t *testing.T) {
	m := testMagnet()
	item := geom.V(300, 0)
	next, moved := m.Attract(item, geom.V(0, 0), 10, 1.0/60)
	if !moved || next.X >= item.X || next.Y != 0 {
		t.Fatalf("next %+v moved %v", next, moved)
	}
	if _, moved := m.Attract(geom.V(900, 0), geom.V(0, 0), 10, 1); moved {
		t.Fatal("item outside range moved")
	}
	// a huge dt never overshoots the craft
	next, _ = m.Attract(geom.V(5, 0), geom.V(0, 0), 6, 100)
	if next.X < 0 {
		t.Fatalf("overshot: %+v", next)
	}
}

func TestPushOutHalfPenetration(t *testing.T) {
	body := geom.V(0, 0)
	// reach = 100 + 10/2 = 105, item at 95 → penetration 10 → moves 5
	got, pushed := PushOut(geom.V(95, 0), 10, body, 100)
	if !pushed || math.Abs(got.X-100) > eps || got.Y != 0 {
		t.Fatalf("got %+v pushed %v", got, pushed)
	}
	if _, pushed := PushOut(geom.V(106, 0), 10, body, 100); pushed {
		t.Fatal("item clear of body pushed")
	}
	got, _ = PushOut(body, 10, body, 100)
	if got.X <= 0 {
		t.Fatalf("centered item not pushed along +X: %+v", got)
	}
}
