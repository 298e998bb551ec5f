// Package targeting picks weapon targets off the shared broad phase.
package targeting

import (
	"cmp"
	"slices"

	"github.com/1siamBot/survivors-engine/engine/core"
	"github.com/1siamBot/survivors-engine/engine/spatial"
)

// maxDoublings bounds the expanding search before it gives up on the grid
// and scans the whole category.
const maxDoublings = 5

type candidate struct {
	id core.EntityID
	d2 float64
}

// Selector answers nearest-K and max-attribute queries for the current tick.
// It is not safe for concurrent use.
type Selector struct {
	World         *core.World
	Broad         *spatial.BroadPhase
	InitialRadius float64 // first ring of the nearest-K search
	ScreenRadius  float64 // bound of MaxBy

	buf   []core.EntityID
	found []candidate
}

func NewSelector(w *core.World, broad *spatial.BroadPhase, initialRadius, screenRadius float64) *Selector {
	return &Selector{World: w, Broad: broad, InitialRadius: initialRadius, ScreenRadius: screenRadius}
}

// NearestK returns up to k alive entities of mask ordered by ascending
// distance from pos. Ties keep candidate order. The result has
// min(k, live count) entries.
//
// The search starts at InitialRadius and doubles until enough entities lie
// strictly inside the radius. Anything outside the radius is farther than
// everything inside it, so the first k of those are the global nearest.
// After maxDoublings it falls back to a scan of the whole category.
func (s *Selector) NearestK(pos core.Vec2, k int, mask core.Category) []core.EntityID {
	if k <= 0 {
		return nil
	}
	total := s.World.CountCategory(mask)
	if total == 0 {
		return nil
	}
	want := min(k, total)

	r := s.InitialRadius
	if !(r > 0) {
		r = s.Broad.Grid().CellSize()
	}
	for i := 0; i <= maxDoublings; i++ {
		s.buf = s.Broad.Candidates(pos, r, mask, s.buf)
		s.found = s.found[:0]
		for _, id := range s.buf {
			body, ok := s.World.Body(id)
			if !ok {
				continue
			}
			if d2 := pos.DistSq(body.Pos); d2 < r*r {
				s.found = append(s.found, candidate{id, d2})
			}
		}
		if len(s.found) >= want {
			return s.take(want)
		}
		r *= 2
	}

	s.found = s.found[:0]
	for _, id := range s.World.QueryCategory(mask) {
		if body, ok := s.World.Body(id); ok {
			s.found = append(s.found, candidate{id, pos.DistSq(body.Pos)})
		}
	}
	return s.take(min(want, len(s.found)))
}

func (s *Selector) take(n int) []core.EntityID {
	slices.SortStableFunc(s.found, func(a, b candidate) int {
		return cmp.Compare(a.d2, b.d2)
	})
	out := make([]core.EntityID, n)
	for i := range out {
		out[i] = s.found[i].id
	}
	return out
}

// Nearest is NearestK with k = 1.
func (s *Selector) Nearest(pos core.Vec2, mask core.Category) (core.EntityID, bool) {
	ids := s.NearestK(pos, 1, mask)
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// MaxBy returns the entity of mask within ScreenRadius of pos with the
// largest key. The first one encountered wins ties. ok is false when nothing
// is in range, which callers treat as "no target this tick".
func (s *Selector) MaxBy(pos core.Vec2, mask core.Category, key func(core.EntityID) float64) (best core.EntityID, ok bool) {
	var bestKey float64
	s.buf = s.Broad.Candidates(pos, s.ScreenRadius, mask, s.buf)
	for _, id := range s.buf {
		body, alive := s.World.Body(id)
		if !alive || !spatial.Within(pos, body.Pos, s.ScreenRadius) {
			continue
		}
		v := key(id)
		if !ok || v > bestKey {
			best, bestKey, ok = id, v, true
		}
	}
	return best, ok
}

// HighestHealth is the MaxBy key used by attribute-seeking weapons.
func HighestHealth(w *core.World) func(core.EntityID) float64 {
	return func(id core.EntityID) float64 {
		if h, ok := w.Get(id, core.CompHealth).(*core.Health); ok {
			return h.Current
		}
		return 0
	}
}
