package persist

import (
	"errors"
	"time"

	"github.com/orbitsweep/orbitsweep/internal/world"
)

// SnapshotVersion is bumped whenever the snapshot layout changes.
const SnapshotVersion = 1

// ErrSnapshotNotFound is returned by stores when no snapshot has the name.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is the saved state of a session. Decor is not saved; it is
// regenerated on restore.
type Snapshot struct {
	Version int            `msgpack:"version"`
	Tick    uint64         `msgpack:"tick"`
	Score   world.Score    `msgpack:"score"`
	Craft   CraftState     `msgpack:"craft"`
	Planets []PlanetState  `msgpack:"planets"`
	Garbage []GarbageState `msgpack:"garbage"`
	SavedAt time.Time      `msgpack:"saved_at"`
}

type CraftState struct {
	X       float64 `msgpack:"x"`
	Y       float64 `msgpack:"y"`
	VX      float64 `msgpack:"vx"`
	VY      float64 `msgpack:"vy"`
	Heading float64 `msgpack:"heading"`
	Alive   bool    `msgpack:"alive"`
}

type PlanetState struct {
	OrbitRadius  float64 `msgpack:"orbit_radius"`
	AngularSpeed float64 `msgpack:"angular_speed"`
	Angle        float64 `msgpack:"angle"`
	Radius       float64 `msgpack:"radius"`
	Color        uint32  `msgpack:"color"`
}

type GarbageState struct {
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	Size  float64 `msgpack:"size"`
	Color uint32  `msgpack:"color"`
}

// PackColor folds a color into 0xRRGGBBAA.
func PackColor(c world.Color) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

func UnpackColor(v uint32) world.Color {
	return world.Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}
