package spatial

import (
	"github.com/1siamBot/survivors-engine/engine/core"
)

// BroadPhase pads every query by the largest target radius seen so far, so
// a big target centred just outside the querying shape's reach is still
// returned.
type BroadPhase struct {
	grid      *Grid
	maxRadius float64
}

// NewBroadPhase wraps grid. maxRadius seeds the padding; Observe raises it.
func NewBroadPhase(grid *Grid, maxRadius float64) *BroadPhase {
	if maxRadius < 0 {
		maxRadius = 0
	}
	return &BroadPhase{grid: grid, maxRadius: maxRadius}
}

// Grid returns the underlying index.
func (b *BroadPhase) Grid() *Grid { return b.grid }

// MaxRadius is the current process-wide padding.
func (b *BroadPhase) MaxRadius() float64 { return b.maxRadius }

// Observe raises the padding to radius if it is larger. It never shrinks.
func (b *BroadPhase) Observe(radius float64) {
	if radius > b.maxRadius {
		b.maxRadius = radius
	}
}

// Candidates returns every handle of category mask that might lie within
// reach + (its own radius) of pos. reach is the querying shape's radius.
func (b *BroadPhase) Candidates(pos core.Vec2, reach float64, mask core.Category, buf []core.EntityID) []core.EntityID {
	return b.grid.QueryRegion(pos, reach+b.maxRadius, mask, buf[:0])
}

// Overlaps is the narrow-phase circle test. Tangent circles do not overlap.
func Overlaps(a core.Vec2, ra float64, b core.Vec2, rb float64) bool {
	sum := ra + rb
	return a.DistSq(b) < sum*sum
}

// Within reports whether b lies strictly closer than r to a.
func Within(a, b core.Vec2, r float64) bool {
	return a.DistSq(b) < r*r
}
