package spatial

import (
	"math"

	"github.com/orbitsweep/orbitsweep/internal/geom"
	"github.com/orbitsweep/orbitsweep/internal/world"
)

// Index is a uniform grid over the square that bounds the world circle.
// It holds only immutable decor; planets and garbage move and are iterated
// by their owners instead. Built once after generation, read by the renderer
// every frame. Not safe for concurrent Insert.
type Index struct {
	origin   geom.Vec2 // world-space corner of cell (0,0)
	cellSize float64
	cols     int
	rows     int
	cells    [][]world.Decor // row-major: row*cols + col
	count    int
}

// CellRange is an inclusive block of grid coordinates.
type CellRange struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// NewIndex sizes the grid to cover center±radius.
func NewIndex(center geom.Vec2, radius, cellSize float64) *Index {
	n := int(math.Ceil(2 * radius / cellSize))
	if n < 1 {
		n = 1
	}
	return &Index{
		origin:   geom.Vec2{X: center.X - radius, Y: center.Y - radius},
		cellSize: cellSize,
		cols:     n,
		rows:     n,
		cells:    make([][]world.Decor, n*n),
	}
}

func (ix *Index) Rows() int         { return ix.rows }
func (ix *Index) Cols() int         { return ix.cols }
func (ix *Index) CellSize() float64 { return ix.cellSize }
func (ix *Index) Len() int          { return ix.count }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// cellCoord maps a world position to (row, col), clamped to the grid so
// points on or past the world edge land in the border cells.
func (ix *Index) cellCoord(p geom.Vec2) (row, col int) {
	fc := math.Floor((p.X - ix.origin.X) / ix.cellSize)
	fr := math.Floor((p.Y - ix.origin.Y) / ix.cellSize)
	// clamp in float space first; huge coordinates overflow int conversion
	if math.IsNaN(fc) || math.IsNaN(fr) {
		return 0, 0
	}
	fc = math.Max(-1, math.Min(fc, float64(ix.cols)))
	fr = math.Max(-1, math.Min(fr, float64(ix.rows)))
	return clampInt(int(fr), 0, ix.rows-1), clampInt(int(fc), 0, ix.cols-1)
}

// CellOf returns the grid coordinate an element at p is stored under.
func (ix *Index) CellOf(p geom.Vec2) (row, col int) { return ix.cellCoord(p) }

// Insert buckets d by its position.
func (ix *Index) Insert(d world.Decor) {
	r, c := ix.cellCoord(d.Position())
	i := r*ix.cols + c
	ix.cells[i] = append(ix.cells[i], d)
	ix.count++
}

// Cell returns the elements stored in one cell.
func (ix *Index) Cell(row, col int) []world.Decor {
	if row < 0 || row >= ix.rows || col < 0 || col >= ix.cols {
		return nil
	}
	return ix.cells[row*ix.cols+col]
}

// Cover returns the cells overlapping view, grown by one cell on every side
// so elements straddling a cell edge do not pop at the screen border.
func (ix *Index) Cover(view geom.Rect) CellRange {
	minR, minC := ix.cellCoord(view.Min)
	maxR, maxC := ix.cellCoord(view.Max)
	return CellRange{
		MinRow: clampInt(minR-1, 0, ix.rows-1),
		MaxRow: clampInt(maxR+1, 0, ix.rows-1),
		MinCol: clampInt(minC-1, 0, ix.cols-1),
		MaxCol: clampInt(maxC+1, 0, ix.cols-1),
	}
}

// Query calls fn for every element in the cells covering view. Returning
// false stops the walk.
func (ix *Index) Query(view geom.Rect, fn func(world.Decor) bool) {
	cr := ix.Cover(view)
	for r := cr.MinRow; r <= cr.MaxRow; r++ {
		for c := cr.MinCol; c <= cr.MaxCol; c++ {
			for _, d := range ix.cells[r*ix.cols+c] {
				if !fn(d) {
					return
				}
			}
		}
	}
}

// Visible collects the query result.
func (ix *Index) Visible(view geom.Rect) []world.Decor {
	var out []world.Decor
	ix.Query(view, func(d world.Decor) bool {
		out = append(out, d)
		return true
	})
	return out
}
