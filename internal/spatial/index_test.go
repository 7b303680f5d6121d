package spatial

import (
	"testing"

	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/world"
)

func star(x, y float64) *world.Star {
	return &world.Star{Pos: geom.V(x, y)}
}

func TestInsertClampsToGrid(t *testing.T) {
	ix := NewIndex(geom.V(0, 0), 1000, 100) // 20x20 cells
	if ix.Rows() != 20 || ix.Cols() != 20 {
		t.Fatalf("grid %dx%d", ix.Rows(), ix.Cols())
	}
	edge := []geom.Vec2{
		{X: 1000, Y: 1000},    // exactly on the far edge
		{X: 1000.5, Y: -1001}, // slightly past
		{X: -5e12, Y: 5e12},   // absurdly far
	}
	for _, p := range edge {
		r, c := ix.CellOf(p)
		if r < 0 || r >= ix.Rows() || c < 0 || c >= ix.Cols() {
			t.Errorf("CellOf(%v) = (%d,%d) out of range", p, r, c)
		}
		ix.Insert(star(p.X, p.Y))
	}
	if ix.Len() != len(edge) {
		t.Fatalf("len = %d", ix.Len())
	}
	if got := len(ix.Cell(19, 19)); got != 1 {
		t.Errorf("far corner cell holds %d", got)
	}
}

func TestQueryExpandsByOneCell(t *testing.T) {
	ix := NewIndex(geom.V(0, 0), 1000, 100)
	// camera covering cell (10,10) only
	view := geom.Rect{Min: geom.V(10, 10), Max: geom.V(90, 90)}
	cr := ix.Cover(view)
	if cr.MinRow != 9 || cr.MaxRow != 11 || cr.MinCol != 9 || cr.MaxCol != 11 {
		t.Fatalf("cover = %+v", cr)
	}

	inside := star(50, 50)
	neighbour := star(150, 50) // one cell right: still yielded
	far := star(450, 450)      // well outside
	ix.Insert(inside)
	ix.Insert(neighbour)
	ix.Insert(far)

	got := map[world.Decor]bool{}
	for _, d := range ix.Visible(view) {
		got[d] = true
	}
	if !got[inside] || !got[neighbour] {
		t.Error("query missed elements in covered cells")
	}
	if got[far] {
		t.Error("query returned element outside covered cells")
	}
}

func TestCoverClampsAtEdges(t *testing.T) {
	ix := NewIndex(geom.V(0, 0), 1000, 100)
	cr := ix.Cover(geom.Rect{Min: geom.V(-5000, -5000), Max: geom.V(5000, 5000)})
	if cr.MinRow != 0 || cr.MinCol != 0 || cr.MaxRow != 19 || cr.MaxCol != 19 {
		t.Fatalf("cover = %+v", cr)
	}
}

func TestQueryEarlyStop(t *testing.T) {
	ix := NewIndex(geom.V(0, 0), 1000, 100)
	for i := 0; i < 5; i++ {
		ix.Insert(star(1, 1))
	}
	n := 0
	ix.Query(geom.RectAround(geom.V(0, 0), 10), func(world.Decor) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Fatalf("visited %d, want 2", n)
	}
}
