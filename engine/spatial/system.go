package spatial

import (
	"github.com/1siamBot/survivors-engine/engine/core"
)

// IndexSystem rebuilds the shared grid from scratch every tick: Clear, then
// one Insert per alive entity with a Position and a Collider.
type IndexSystem struct {
	Broad *BroadPhase
	Prio  int
}

func (s *IndexSystem) Priority() int { return s.Prio }

func (s *IndexSystem) Update(w *core.World, _ float64) {
	Rebuild(w, s.Broad)
}

// Rebuild clears the grid behind b and repopulates it from w.
func Rebuild(w *core.World, b *BroadPhase) {
	b.grid.Clear()
	for _, id := range w.Query(core.CompPosition, core.CompCollider) {
		body, ok := w.Body(id)
		if !ok {
			continue
		}
		b.grid.Insert(id, w.Category(id), body.Pos)
		b.Observe(body.Radius)
	}
}
