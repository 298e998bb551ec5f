package systems

import (
	"github.com/1siamBot/survivors-engine/engine/core"
)

// UpkeepSystem runs the end-of-tick timers: lifetimes run out, invincibility
// wears off, and enemies that fell too far behind the player are culled.
type UpkeepSystem struct {
	CullDistance float64
	Prio         int
}

func (s *UpkeepSystem) Priority() int { return s.Prio }

func (s *UpkeepSystem) Update(w *core.World, dt float64) {
	for _, id := range w.Query(core.CompLifetime) {
		l := w.Get(id, core.CompLifetime).(*core.Lifetime)
		l.Remaining -= dt
		if core.Expired(l.Remaining) {
			w.Destroy(id)
		}
	}

	for _, id := range w.Query(core.CompInvincible) {
		inv := w.Get(id, core.CompInvincible).(*core.Invincible)
		inv.Remaining -= dt
		if core.Expired(inv.Remaining) {
			w.Detach(id, core.CompInvincible)
		}
	}

	if s.CullDistance > 0 {
		s.cull(w)
	}
}

func (s *UpkeepSystem) cull(w *core.World) {
	players := w.Query(core.CompPlayer, core.CompPosition)
	limit := s.CullDistance * s.CullDistance
	for _, id := range w.Query(core.CompEnemy, core.CompPosition) {
		if w.Get(id, core.CompEnemy).(*core.Enemy).Boss {
			continue
		}
		pos := w.Get(id, core.CompPosition).(*core.Position).Vec()
		target, ok := nearestPlayer(w, players, pos)
		if !ok {
			return
		}
		if target.DistSq(pos) > limit {
			w.Destroy(id)
		}
	}
}
