package systems

import (
	"math"

	"github.com/1siamBot/survivors-engine/engine/core"
)

// MovementSystem advances every moving thing by one tick: straight-line
// velocity, enemies chasing the nearest player, attracted pickups, and
// hazards pinned to their owner.
type MovementSystem struct {
	Prio int
}

func (s *MovementSystem) Priority() int { return s.Prio }

func (s *MovementSystem) Update(w *core.World, dt float64) {
	players := w.Query(core.CompPlayer, core.CompPosition)

	for _, id := range w.Query(core.CompPosition, core.CompVelocity) {
		pos := w.Get(id, core.CompPosition).(*core.Position)
		v := w.Get(id, core.CompVelocity).(*core.Velocity).Vec()
		if v.IsZero() {
			continue
		}
		pos.Set(pos.Vec().Add(v.Scale(dt)))
		pos.Facing = v.Angle()
	}

	for _, id := range w.Query(core.CompPosition, core.CompChase) {
		pos := w.Get(id, core.CompPosition).(*core.Position)
		chase := w.Get(id, core.CompChase).(*core.Chase)
		target, ok := nearestPlayer(w, players, pos.Vec())
		if !ok {
			continue
		}
		to := target.Sub(pos.Vec())
		dist := to.Len()
		if dist == 0 {
			continue
		}
		step := math.Min(chase.Speed*dt, dist)
		pos.Set(pos.Vec().Add(to.Scale(step / dist)))
		pos.Facing = to.Angle()
	}

	for _, id := range w.Query(core.CompPosition, core.CompAttracted) {
		moveAttracted(w, id, dt)
	}

	for _, id := range w.Query(core.CompPosition, core.CompOrbit) {
		o := w.Get(id, core.CompOrbit).(*core.Orbit)
		owner, ok := w.Get(o.Owner, core.CompPosition).(*core.Position)
		if !ok || !w.Alive(o.Owner) {
			w.Destroy(id)
			continue
		}
		o.Angle = math.Mod(o.Angle+o.Speed*dt, 2*math.Pi)
		w.Get(id, core.CompPosition).(*core.Position).Set(owner.Vec().Add(core.FromAngle(o.Angle).Scale(o.OrbitRadius)))
	}

	for _, id := range w.Query(core.CompPosition, core.CompAura) {
		a := w.Get(id, core.CompAura).(*core.Aura)
		owner, ok := w.Get(a.Owner, core.CompPosition).(*core.Position)
		if !ok || !w.Alive(a.Owner) {
			w.Destroy(id)
			continue
		}
		w.Get(id, core.CompPosition).(*core.Position).Set(owner.Vec())
	}
}

// moveAttracted pulls a pickup toward its player. The step is capped so the
// pickup lands inside the absorption radius instead of overshooting, and the
// next tick's pickup resolver collects it.
func moveAttracted(w *core.World, id core.EntityID, dt float64) {
	pos := w.Get(id, core.CompPosition).(*core.Position)
	att := w.Get(id, core.CompAttracted).(*core.Attracted)
	ppos, ok := w.Get(att.Toward, core.CompPosition).(*core.Position)
	if !ok || !w.Alive(att.Toward) {
		w.Detach(id, core.CompAttracted)
		return
	}
	absorb := 0.0
	if stats, ok := w.Get(att.Toward, core.CompPlayer).(*core.PlayerStats); ok {
		absorb = stats.AbsorptionRadius
	}

	to := ppos.Vec().Sub(pos.Vec())
	dist := to.Len()
	if dist < absorb || dist == 0 {
		return
	}
	step := math.Min(att.Speed*dt, dist-absorb/2)
	pos.Set(pos.Vec().Add(to.Scale(step / dist)))
}

func nearestPlayer(w *core.World, players []core.EntityID, from core.Vec2) (core.Vec2, bool) {
	var best core.Vec2
	bestD := math.Inf(1)
	for _, pid := range players {
		if h, ok := w.Get(pid, core.CompHealth).(*core.Health); ok && h.Dead() {
			continue
		}
		p := w.Get(pid, core.CompPosition).(*core.Position).Vec()
		if d := p.DistSq(from); d < bestD {
			best, bestD = p, d
		}
	}
	return best, !math.IsInf(bestD, 1)
}
