package grid

import (
	"fmt"
	"math"

	"github.com/boljen/go-bitmap"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
)

// MaxCells caps how many cells a single grid may allocate.
// A radius that is tiny relative to the domain would otherwise ask for
// an absurd amount of memory before a single point is produced.
const MaxCells = 1 << 28

var (
	// ErrTooLarge implies the requested radius / domain would need more
	// than MaxCells cells.
	ErrTooLarge = errors.New("grid would exceed the maximum number of cells")
)

// reach is how many cells either side of a candidate we need to inspect.
// With a cell no wider than radius/√2 any point closer than radius sits at
// most two cells away on each axis.
const reach = 2

// DistanceFunc returns the squared distance between two points.
type DistanceFunc func(a, b model2d.Coord) float64

// Grid is the background acceleration structure for dart throwing.
// Every cell holds at most one accepted point.
type Grid struct {
	cellW float64
	cellH float64
	cols  int
	rows  int

	// wrap means neighbour lookups are taken modulo cols / rows rather
	// than clipped to the grid edge.
	wrap bool

	cells    []model2d.Coord
	occupied bitmap.Bitmap
	count    int
}

// New returns an empty grid of cols x rows cells of the given size.
func New(cols, rows int, cellW, cellH float64, wrap bool) *Grid {
	n := cols * rows
	return &Grid{
		cellW:    cellW,
		cellH:    cellH,
		cols:     cols,
		rows:     rows,
		wrap:     wrap,
		cells:    make([]model2d.Coord, n),
		occupied: bitmap.New(n),
	}
}

// Bounded sizes a grid for a clamped [0,width]x[0,height] domain.
// Cells are radius/√2 square. Each axis gets floor(extent/cell)+1 cells,
// which is ceil(extent/cell) unless the extent is an exact multiple of the
// cell size, in which case the extra cell holds points lying on the far
// edge (x == width or y == height).
func Bounded(width, height, radius float64) (*Grid, error) {
	cell := radius / math.Sqrt2
	cols, err := cellsAlong(math.Floor(width/cell)+1, width, cell)
	if err != nil {
		return nil, err
	}
	rows, err := cellsAlong(math.Floor(height/cell)+1, height, cell)
	if err != nil {
		return nil, err
	}
	if err := checkSize(cols, rows); err != nil {
		return nil, err
	}
	return New(cols, rows, cell, cell, false), nil
}

// Periodic sizes a wrapping grid for a toroidal [0,width)x[0,height) domain.
// Cells are shrunk (never grown) from radius/√2 so that a whole number of
// them tiles each axis exactly; otherwise a partial cell at the seam would
// push real neighbours outside the 5x5 lookup window.
func Periodic(width, height, radius float64) (*Grid, error) {
	cell := radius / math.Sqrt2
	cols, err := cellsAlong(math.Ceil(width/cell), width, cell)
	if err != nil {
		return nil, err
	}
	rows, err := cellsAlong(math.Ceil(height/cell), height, cell)
	if err != nil {
		return nil, err
	}
	if err := checkSize(cols, rows); err != nil {
		return nil, err
	}
	return New(cols, rows, width/float64(cols), height/float64(rows), true), nil
}

// cellsAlong checks n cells is a sane count for one axis, at least 1.
func cellsAlong(n, extent, cell float64) (int, error) {
	if math.IsNaN(n) || n > MaxCells {
		return 0, errors.Wrapf(ErrTooLarge, "%v / %v cells on one axis", extent, cell)
	}
	if n < 1 {
		n = 1
	}
	return int(n), nil
}

func checkSize(cols, rows int) error {
	if cols > MaxCells/rows {
		return errors.Wrapf(ErrTooLarge, "%dx%d cells", cols, rows)
	}
	return nil
}

// CellOf returns the (column, row) cell holding p.
// On a wrapping grid the cell is taken modulo the grid size, so a point a
// rounding error short of the far edge still lands in the last cell.
func (g *Grid) CellOf(p model2d.Coord) (int, int) {
	cx, cy := int(math.Floor(p.X/g.cellW)), int(math.Floor(p.Y/g.cellH))
	if g.wrap {
		return mod(cx, g.cols), mod(cy, g.rows)
	}
	return cx, cy
}

// index returns the linear index of the cell holding p.
// A point outside the allocated grid is a bug in the caller (or our sizing)
// so we panic rather than write somewhere odd.
func (g *Grid) index(p model2d.Coord) int {
	cx, cy := g.CellOf(p)
	if cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows {
		panic(fmt.Sprintf("grid: point (%v, %v) maps to cell (%d, %d) outside %dx%d grid", p.X, p.Y, cx, cy, g.cols, g.rows))
	}
	return cy*g.cols + cx
}

// Insert records p in its cell.
// The cell must be empty; if it isn't our cell sizing is broken & we panic.
func (g *Grid) Insert(p model2d.Coord) {
	i := g.index(p)
	if g.occupied.Get(i) {
		q := g.cells[i]
		panic(fmt.Sprintf("grid: cell %d already holds (%v, %v), cannot insert (%v, %v)", i, q.X, q.Y, p.X, p.Y))
	}
	g.cells[i] = p
	g.occupied.Set(i, true)
	g.count++
}

// At returns the point in cell (cx, cy), if any.
func (g *Grid) At(cx, cy int) (model2d.Coord, bool) {
	if cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows {
		return model2d.Coord{}, false
	}
	i := cy*g.cols + cx
	if !g.occupied.Get(i) {
		return model2d.Coord{}, false
	}
	return g.cells[i], true
}

// IsFarEnough returns true if every point already in the 5x5 block of cells
// around p is at least sqrt(minRadiusSq) away from it, as measured by dist.
// Bounded grids ignore cells past the edge; wrapping grids wrap around.
func (g *Grid) IsFarEnough(p model2d.Coord, minRadiusSq float64, dist DistanceFunc) bool {
	cx, cy := g.CellOf(p)

	for y := cy - reach; y <= cy+reach; y++ {
		row := y
		if g.wrap {
			row = mod(y, g.rows)
		} else if y < 0 || y >= g.rows {
			continue
		}

		for x := cx - reach; x <= cx+reach; x++ {
			col := x
			if g.wrap {
				col = mod(x, g.cols)
			} else if x < 0 || x >= g.cols {
				continue
			}

			i := row*g.cols + col
			if !g.occupied.Get(i) {
				continue
			}
			if dist(g.cells[i], p) < minRadiusSq {
				return false
			}
		}
	}

	return true
}

// Clear empties every cell, keeping the allocation.
func (g *Grid) Clear() {
	for i := range g.occupied {
		g.occupied[i] = 0
	}
	for i := range g.cells {
		g.cells[i] = model2d.Coord{}
	}
	g.count = 0
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	cp := *g
	cp.cells = append([]model2d.Coord(nil), g.cells...)
	cp.occupied = bitmap.Bitmap(g.occupied.Data(true))
	return &cp
}

// Len returns how many points have been inserted.
func (g *Grid) Len() int {
	return g.count
}

// Dims returns the number of columns & rows.
func (g *Grid) Dims() (int, int) {
	return g.cols, g.rows
}

// CellSize returns the width & height of a single cell.
func (g *Grid) CellSize() (float64, float64) {
	return g.cellW, g.cellH
}

// Wraps returns if neighbour lookups wrap around the grid edges.
func (g *Grid) Wraps() bool {
	return g.wrap
}

// mod is a modulo that is always positive.
func mod(a, n int) int {
	return (a%n + n) % n
}
