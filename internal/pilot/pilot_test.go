package pilot

import (
	"math"
	"math/rand"
	"testing"

	"github.com/orbitsweep/orbitsweep/internal/config"
	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/world"
)

func scenario() (Params, *world.Bodies) {
	p := Params{
		AutopilotConfig: config.Defaults().Autopilot,
		CraftRadius:     40,
		Center:          geom.V(0, 0),
		WorldRadius:     60000,
	}
	b := &world.Bodies{Sun: world.Sun{Pos: geom.V(0, 0), Radius: 20000}}
	return p, b
}

func TestFleeScenarioThreshold(t *testing.T) {
	p, bodies := scenario()
	c := NewController(p, rand.New(rand.NewSource(1)))
	field := world.NewGarbageField(0)

	craft := world.NewCraft(geom.V(25000, 0), 90)
	if d := c.Decide(craft, bodies, field, 1.0/60); d.Mode == ModeFlee {
		t.Fatalf("surface distance 4960 must not flee: %+v", d)
	}

	craft.Pos = geom.V(20100, 0) // surface distance 60
	d := c.Decide(craft, bodies, field, 1.0/60)
	if d.Mode != ModeFlee || d.Cause != "sun" || !d.Thrust {
		t.Fatalf("expected flee from sun, got %+v", d)
	}
	if math.Abs(geom.AngleDiff(d.Heading, 0)) > 1e-9 {
		t.Fatalf("flee heading %v, want 0 (away from origin)", d.Heading)
	}
}

func TestFleeBeatsSeek(t *testing.T) {
	p, bodies := scenario()
	planet := world.NewPlanet(geom.V(0, 0), 30000, 0, 0, 1000, world.Color{})
	bodies.Planets = []*world.Planet{planet}
	c := NewController(p, rand.New(rand.NewSource(2)))

	// 100 units above the planet surface, garbage right next to the craft
	craft := world.NewCraft(geom.V(30000, 1140), 0)
	field := world.NewGarbageField(1)
	field.Add(geom.V(30000, 1200), 10, world.Color{})

	for i := 0; i < 50; i++ {
		d := c.Decide(craft, bodies, field, 1.0/60)
		if d.Mode != ModeFlee || d.Cause != "planet" {
			t.Fatalf("iteration %d: got %v, want flee", i, d.Mode)
		}
		if math.Abs(geom.AngleDiff(d.Heading, 90)) > 1e-6 {
			t.Fatalf("flee heading %v, want 90", d.Heading)
		}
	}
}

func TestFleePicksClosestBody(t *testing.T) {
	p, bodies := scenario()
	near := world.NewPlanet(geom.V(0, 0), 30000, 0, 0, 1000, world.Color{})
	bodies.Planets = []*world.Planet{near}
	c := NewController(p, rand.New(rand.NewSource(3)))
	// 60 from the sun surface, 8860 from the planet: the sun wins
	craft := world.NewCraft(geom.V(20100, 0), 0)
	d := c.Decide(craft, bodies, world.NewGarbageField(0), 0.1)
	if d.Cause != "sun" {
		t.Fatalf("cause %q, want sun", d.Cause)
	}
}

func TestBoundaryOverridesWhenMoreUrgent(t *testing.T) {
	p, bodies := scenario()
	c := NewController(p, rand.New(rand.NewSource(4)))
	craft := world.NewCraft(geom.V(0, -59900), 0) // 60 from the rim
	d := c.Decide(craft, bodies, world.NewGarbageField(0), 0.1)
	if d.Mode != ModeFlee || d.Cause != "boundary" {
		t.Fatalf("got %+v, want boundary flee", d)
	}
	if math.Abs(geom.AngleDiff(d.Heading, 90)) > 1e-9 {
		t.Fatalf("heading %v, want 90 toward center", d.Heading)
	}
}

func TestSeekNearestWithinRadius(t *testing.T) {
	p, bodies := scenario()
	c := NewController(p, rand.New(rand.NewSource(5)))
	craft := world.NewCraft(geom.V(40000, 0), 0)
	field := world.NewGarbageField(3)
	field.Add(geom.V(40000, 3000), 10, world.Color{})
	field.Add(geom.V(39000, 0), 10, world.Color{})
	field.Add(geom.V(40000, 9000), 10, world.Color{}) // beyond seek radius

	d := c.Decide(craft, bodies, field, 0.1)
	if d.Mode != ModeSeek || d.Target != geom.V(39000, 0) {
		t.Fatalf("got %+v", d)
	}
	if math.Abs(geom.AngleDiff(d.Heading, 180)) > 1e-9 {
		t.Fatalf("heading %v, want 180", d.Heading)
	}
}

func TestSeekThrustPulsesNearTarget(t *testing.T) {
	p, bodies := scenario()
	p.ThrustProbFar, p.ThrustProbNear = 1, 0
	c := NewController(p, rand.New(rand.NewSource(6)))
	craft := world.NewCraft(geom.V(40000, 0), 0)
	field := world.NewGarbageField(1)
	id := field.Add(geom.V(43000, 0), 10, world.Color{})

	if d := c.Decide(craft, bodies, field, 0.1); !d.Thrust {
		t.Fatal("far target must thrust with probability 1")
	}
	g, _ := field.Get(id)
	g.Pos = geom.V(40100, 0)
	if d := c.Decide(craft, bodies, field, 0.1); d.Thrust {
		t.Fatal("target inside arrival radius must not thrust with probability 0")
	}
}

func TestWanderRerollsOnTimer(t *testing.T) {
	p, bodies := scenario()
	p.WanderInterval = 1
	p.WanderCone = 60
	c := NewController(p, rand.New(rand.NewSource(7)))
	craft := world.NewCraft(geom.V(40000, 0), 100)
	field := world.NewGarbageField(0)

	first := c.Decide(craft, bodies, field, 0.25)
	if first.Mode != ModeWander || !c.State().Started {
		t.Fatalf("got %+v", first)
	}
	if math.Abs(geom.AngleDiff(100, first.Heading)) > 30 {
		t.Fatalf("wander heading %v outside cone", first.Heading)
	}
	for i := 0; i < 3; i++ {
		if d := c.Decide(craft, bodies, field, 0.25); d.Heading != first.Heading {
			t.Fatal("wander heading changed before the interval elapsed")
		}
	}
	c.Decide(craft, bodies, field, 0.25) // timer reaches 1.0
	if c.State().WanderTimer != 0 {
		t.Fatalf("timer %v not reset after reroll", c.State().WanderTimer)
	}
}

func TestFleeResetsWander(t *testing.T) {
	p, bodies := scenario()
	c := NewController(p, rand.New(rand.NewSource(8)))
	field := world.NewGarbageField(0)
	craft := world.NewCraft(geom.V(40000, 0), 0)
	c.Decide(craft, bodies, field, 0.5)
	craft.Pos = geom.V(20050, 0)
	c.Decide(craft, bodies, field, 0.5)
	if st := c.State(); st.Started || st.WanderTimer != 0 {
		t.Fatalf("wander state not reset by flee: %+v", st)
	}
}

func TestSteerShortestWayAndDeadzone(t *testing.T) {
	cases := []struct {
		heading, desired, step, want float64
	}{
		{10, 350, 5, 5},      // clockwise through 0
		{350, 10, 5, 355},    // counter-clockwise through 0
		{0, 90, 5, 5},        // capped step
		{0, 1.5, 5, 1.5},     // inside deadzone: snap
		{100, 101, 0.1, 101}, // deadzone snap beats small step
	}
	for _, c := range cases {
		got := Steer(c.heading, c.desired, c.step, 2)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Steer(%v→%v, %v) = %v, want %v", c.heading, c.desired, c.step, got, c.want)
		}
	}
}
