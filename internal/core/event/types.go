package event

import (
	"github.com/orbitsweep/orbitsweep/internal/core/ecs"
	"github.com/orbitsweep/orbitsweep/internal/geom"
)

// CraftDestroyed fires once when the craft hits a body or the boundary.
type CraftDestroyed struct {
	Pos   geom.Vec2
	Cause string // "sun", "planet", "boundary"
	Tick  uint64
}

// GarbageCollected fires for every item swept up by the craft.
type GarbageCollected struct {
	ID     ecs.EntityID
	Size   float64
	Points int
	Score  int
	Tick   uint64
}

// GarbageLost fires for items pushed permanently out of the world.
type GarbageLost struct {
	ID   ecs.EntityID
	Pos  geom.Vec2
	Tick uint64
}
