package world

import (
	"github.com/orbitsweep/orbitsweep/internal/core/ecs"
	"github.com/orbitsweep/orbitsweep/internal/geom"
)

// Garbage is one collectible piece of debris. Size is the diameter.
type Garbage struct {
	ID    ecs.EntityID
	Pos   geom.Vec2
	Size  float64
	Color Color
}

func (g *Garbage) Position() geom.Vec2 { return g.Pos }
func (*Garbage) element()              {}

func (g *Garbage) Radius() float64 { return g.Size / 2 }

// Collider returns the collection box: an axis-aligned square of edge
// Size*scale around the item.
func (g *Garbage) Collider(scale float64) geom.Rect {
	return geom.RectAround(g.Pos, g.Size*scale)
}

// GarbageField owns every garbage item. Items are addressed by generational
// handles; removal is deferred to Flush so a pass over the field never sees
// the collection shift under it.
type GarbageField struct {
	ecs   *ecs.World
	items *ecs.DenseStore[Garbage]
}

func NewGarbageField(capacity int) *GarbageField {
	w := ecs.NewWorld()
	items := ecs.NewDenseStore[Garbage](capacity)
	w.Registry().Register(items)
	return &GarbageField{ecs: w, items: items}
}

// Add inserts an item and returns its handle.
func (f *GarbageField) Add(pos geom.Vec2, size float64, color Color) ecs.EntityID {
	id := f.ecs.CreateEntity()
	f.items.Set(id, Garbage{ID: id, Pos: pos, Size: size, Color: color})
	return id
}

// Get resolves a handle; stale handles return false.
func (f *GarbageField) Get(id ecs.EntityID) (*Garbage, bool) {
	return f.items.Get(id)
}

func (f *GarbageField) Alive(id ecs.EntityID) bool { return f.ecs.Alive(id) }

func (f *GarbageField) Len() int { return f.items.Len() }

// Each visits items in storage order. fn may mutate the item but must use
// MarkRemoved instead of deleting.
func (f *GarbageField) Each(fn func(g *Garbage)) {
	f.items.Each(func(_ ecs.EntityID, g *Garbage) { fn(g) })
}

// MarkRemoved schedules id for removal at the next Flush.
func (f *GarbageField) MarkRemoved(id ecs.EntityID) {
	f.ecs.MarkForDestruction(id)
}

func (f *GarbageField) Pending() int { return f.ecs.Pending() }

// Flush applies all scheduled removals in one pass.
func (f *GarbageField) Flush() int {
	return f.ecs.FlushDestroyQueue()
}

// Items copies the live items, for snapshots and minimaps.
func (f *GarbageField) Items() []Garbage {
	out := make([]Garbage, 0, f.items.Len())
	f.items.Each(func(_ ecs.EntityID, g *Garbage) { out = append(out, *g) })
	return out
}
