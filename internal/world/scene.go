package world

import "github.com/orbitsweep/orbitsweep/internal/geom"

// Score tallies the session's collection results.
type Score struct {
	Points    int
	Collected int
	Lost      int
}

// Scene is the mutable simulation state shared by the per-phase systems.
// Systems hold the pointer; a session reset replaces the fields in place.
type Scene struct {
	Center  geom.Vec2
	Radius  float64
	Bodies  *Bodies
	Garbage *GarbageField
	Craft   *Craft
	Score   Score
	Tick    uint64
}
