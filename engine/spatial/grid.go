// Package spatial partitions world space into a uniform grid that is rebuilt
// every tick and answers conservative region queries for the collision and
// targeting systems.
package spatial

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"github.com/1siamBot/survivors-engine/engine/core"
)

// ErrInvalidCellSize is returned for non-positive or non-finite cell sizes.
var ErrInvalidCellSize = errors.New("spatial: cell size must be positive and finite")

// CellKey identifies one grid cell: floor(pos / cellSize) on each axis.
type CellKey struct {
	X, Y int
}

// Entry is one inserted handle together with its category tag.
type Entry struct {
	ID  core.EntityID
	Cat core.Category
}

// Grid is an unbounded uniform grid. Cells are created on demand, so
// entities far outside any previously seen area are fine.
//
// The grid must be cleared and fully repopulated every tick; it has no
// move or remove operation.
type Grid struct {
	cellSize    float64
	invCellSize float64
	cells       map[CellKey][]Entry
	count       int
}

// NewGrid creates an empty grid. cellSize should be about twice the
// largest collider radius in play.
func NewGrid(cellSize float64) (*Grid, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, ErrInvalidCellSize
	}
	return &Grid{
		cellSize:    cellSize,
		invCellSize: 1 / cellSize,
		cells:       make(map[CellKey][]Entry),
	}, nil
}

// CellSize returns the fixed edge length of a cell.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Len returns the number of entries inserted since the last Clear.
func (g *Grid) Len() int { return g.count }

// Buckets returns the number of allocated cell buckets, empty ones included.
func (g *Grid) Buckets() int { return len(g.cells) }

// Clear empties every bucket. Buckets that were already empty are released
// so cells visited once long ago do not accumulate; the rest keep their
// capacity for the next rebuild.
func (g *Grid) Clear() {
	for k, bucket := range g.cells {
		if len(bucket) == 0 {
			delete(g.cells, k)
			continue
		}
		g.cells[k] = bucket[:0]
	}
	g.count = 0
}

// CellOf returns the key of the cell containing pos.
func (g *Grid) CellOf(pos core.Vec2) CellKey {
	return CellKey{X: g.coordToCell(pos.X), Y: g.coordToCell(pos.Y)}
}

func (g *Grid) coordToCell(v float64) int {
	return int(math.Floor(v * g.invCellSize))
}

// Insert appends id to the bucket of the cell containing pos. Duplicates are
// not rejected.
func (g *Grid) Insert(id core.EntityID, cat core.Category, pos core.Vec2) {
	k := g.CellOf(pos)
	g.cells[k] = append(g.cells[k], Entry{ID: id, Cat: cat})
	g.count++
}

// QueryRegion appends to buf every handle of category mask stored in a cell
// that could hold a point within radius of pos, and returns the extended
// slice. The range is widened by ceil(radius/cellSize)+1 cells on each side,
// so the result is a superset of the true neighbours: callers must run an
// exact distance check on every candidate.
//
// Cells are visited column by column (x, then y) and each bucket in
// insertion order, so the result order is deterministic.
func (g *Grid) QueryRegion(pos core.Vec2, radius float64, mask core.Category, buf []core.EntityID) []core.EntityID {
	if !(radius > 0) {
		radius = 0
	}
	c := g.CellOf(pos)
	reachF := math.Ceil(radius*g.invCellSize) + 1
	spanF := 2*reachF + 1
	if spanF*spanF > float64(2*len(g.cells)) {
		return g.querySparse(c, reachF, mask, buf)
	}
	reach := int(reachF)
	for cx := c.X - reach; cx <= c.X+reach; cx++ {
		for cy := c.Y - reach; cy <= c.Y+reach; cy++ {
			buf = appendBucket(buf, g.cells[CellKey{cx, cy}], mask)
		}
	}
	return buf
}

// querySparse serves ranges wider than the populated area by walking the
// allocated buckets instead of the key range, in the same x-then-y order.
func (g *Grid) querySparse(c CellKey, reach float64, mask core.Category, buf []core.EntityID) []core.EntityID {
	keys := make([]CellKey, 0, len(g.cells))
	for k, bucket := range g.cells {
		if len(bucket) == 0 {
			continue
		}
		if math.Abs(float64(k.X-c.X)) <= reach && math.Abs(float64(k.Y-c.Y)) <= reach {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b CellKey) int {
		if a.X != b.X {
			return cmp.Compare(a.X, b.X)
		}
		return cmp.Compare(a.Y, b.Y)
	})
	for _, k := range keys {
		buf = appendBucket(buf, g.cells[k], mask)
	}
	return buf
}

func appendBucket(buf []core.EntityID, bucket []Entry, mask core.Category) []core.EntityID {
	for _, e := range bucket {
		if e.Cat.Has(mask) {
			buf = append(buf, e.ID)
		}
	}
	return buf
}
