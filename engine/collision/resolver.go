// Package collision holds the narrow-phase resolvers, one per interaction
// category, and the system that runs them against the freshly rebuilt grid.
//
// Resolvers only read the world and the index. They never destroy or move
// entities; every effect leaves as an event.
package collision

import (
	"github.com/1siamBot/survivors-engine/engine/core"
	"github.com/1siamBot/survivors-engine/engine/hitstate"
	"github.com/1siamBot/survivors-engine/engine/spatial"
)

// Frame is the shared, read-only view every resolver gets for one tick.
type Frame struct {
	World   *core.World
	Broad   *spatial.BroadPhase
	Tracker *hitstate.Tracker
	Tick    uint64
}

// Resolver turns overlaps of one interaction category into events.
type Resolver interface {
	Interaction() core.Interaction
	Resolve(f *Frame, sink core.EventSink)
}

// DefaultResolvers returns one resolver per category in the fixed order
// projectile, aura, orbit, contact, pickup.
func DefaultResolvers() []Resolver {
	return []Resolver{
		&ProjectileResolver{},
		&AuraResolver{},
		&OrbitResolver{},
		&ContactResolver{},
		&PickupResolver{},
	}
}

// ProjectileResolver damages enemies overlapping a projectile until its
// pierce count is used up.
type ProjectileResolver struct {
	buf []core.EntityID
}

func (r *ProjectileResolver) Interaction() core.Interaction { return core.InteractProjectile }

func (r *ProjectileResolver) Resolve(f *Frame, sink core.EventSink) {
	w := f.World
	for _, id := range w.Query(core.CompProjectile) {
		proj := w.Get(id, core.CompProjectile).(*core.Projectile)
		if proj.Pierce <= 0 {
			continue
		}
		self, ok := w.Body(id)
		if !ok {
			continue
		}
		r.buf = f.Broad.Candidates(self.Pos, self.Radius, core.CatEnemy, r.buf)
		for _, target := range r.buf {
			body, ok := w.Body(target)
			if !ok || !spatial.Overlaps(self.Pos, self.Radius, body.Pos, body.Radius) {
				continue
			}
			if !f.Tracker.CanHit(id, target) {
				continue
			}
			f.Tracker.RecordHit(id, target, 0)
			proj.Pierce--
			sink.Emit(core.Event{Type: core.EvtDamage, Tick: f.Tick, Payload: core.DamageEvent{
				Target:         target,
				Source:         id,
				Amount:         proj.Damage,
				SourceCategory: core.InteractProjectile,
			}})
			if proj.Pierce == 0 {
				sink.Emit(core.Event{Type: core.EvtProjectileSpent, Tick: f.Tick, Payload: core.ProjectileSpentEvent{Projectile: id}})
				break
			}
		}
	}
}

// AuraResolver re-applies aura damage to each overlapping enemy once per
// interval.
type AuraResolver struct {
	buf []core.EntityID
}

func (r *AuraResolver) Interaction() core.Interaction { return core.InteractAura }

func (r *AuraResolver) Resolve(f *Frame, sink core.EventSink) {
	for _, id := range f.World.Query(core.CompAura) {
		a := f.World.Get(id, core.CompAura).(*core.Aura)
		r.buf = resolveHazard(f, sink, id, a.Damage, a.Interval, core.InteractAura, r.buf)
	}
}

// OrbitResolver is the AuraResolver for bodies circling their owner.
type OrbitResolver struct {
	buf []core.EntityID
}

func (r *OrbitResolver) Interaction() core.Interaction { return core.InteractOrbit }

func (r *OrbitResolver) Resolve(f *Frame, sink core.EventSink) {
	for _, id := range f.World.Query(core.CompOrbit) {
		o := f.World.Get(id, core.CompOrbit).(*core.Orbit)
		r.buf = resolveHazard(f, sink, id, o.Damage, o.Interval, core.InteractOrbit, r.buf)
	}
}

func resolveHazard(f *Frame, sink core.EventSink, id core.EntityID, damage, interval float64, kind core.Interaction, buf []core.EntityID) []core.EntityID {
	self, ok := f.World.Body(id)
	if !ok {
		return buf
	}
	buf = f.Broad.Candidates(self.Pos, self.Radius, core.CatEnemy, buf)
	for _, target := range buf {
		body, ok := f.World.Body(target)
		if !ok || !spatial.Overlaps(self.Pos, self.Radius, body.Pos, body.Radius) {
			continue
		}
		if !f.Tracker.CanHit(id, target) {
			continue
		}
		f.Tracker.RecordHit(id, target, interval)
		sink.Emit(core.Event{Type: core.EvtDamage, Tick: f.Tick, Payload: core.DamageEvent{
			Target:         target,
			Source:         id,
			Amount:         damage,
			SourceCategory: kind,
		}})
	}
	return buf
}

// ContactResolver emits at most one damage event per player per tick: the
// first overlapping enemy in candidate order. Invincible players are skipped;
// starting the invincibility window is up to the event consumer.
type ContactResolver struct {
	buf []core.EntityID
}

func (r *ContactResolver) Interaction() core.Interaction { return core.InteractContact }

func (r *ContactResolver) Resolve(f *Frame, sink core.EventSink) {
	w := f.World
	for _, pid := range w.Query(core.CompPlayer) {
		if w.Has(pid, core.CompInvincible) {
			continue
		}
		self, ok := w.Body(pid)
		if !ok {
			continue
		}
		r.buf = f.Broad.Candidates(self.Pos, self.Radius, core.CatEnemy, r.buf)
		for _, eid := range r.buf {
			body, ok := w.Body(eid)
			if !ok || !spatial.Overlaps(self.Pos, self.Radius, body.Pos, body.Radius) {
				continue
			}
			enemy, ok := w.Get(eid, core.CompEnemy).(*core.Enemy)
			if !ok || enemy.Damage <= 0 {
				continue
			}
			sink.Emit(core.Event{Type: core.EvtDamage, Tick: f.Tick, Payload: core.DamageEvent{
				Target:         pid,
				Source:         eid,
				Amount:         enemy.Damage,
				SourceCategory: core.InteractContact,
			}})
			break
		}
	}
}

// PickupResolver implements the two-radius pickup model. Distances are
// measured centre to centre, so neither the player's nor the pickup's
// collider radius changes the outcome.
type PickupResolver struct {
	buf     []core.EntityID
	claimed map[core.EntityID]struct{}
}

func (r *PickupResolver) Interaction() core.Interaction { return core.InteractPickup }

func (r *PickupResolver) Resolve(f *Frame, sink core.EventSink) {
	w := f.World
	if r.claimed == nil {
		r.claimed = make(map[core.EntityID]struct{})
	}
	clear(r.claimed)

	for _, pid := range w.Query(core.CompPlayer, core.CompPosition) {
		if !w.Alive(pid) {
			continue
		}
		stats := w.Get(pid, core.CompPlayer).(*core.PlayerStats)
		at := w.Get(pid, core.CompPosition).(*core.Position).Vec()
		reach := max(stats.AttractionRadius, stats.AbsorptionRadius)

		r.buf = f.Broad.Candidates(at, reach, core.CatPickup, r.buf)
		for _, gid := range r.buf {
			if _, done := r.claimed[gid]; done {
				continue
			}
			body, ok := w.Body(gid)
			if !ok {
				continue
			}
			switch {
			case spatial.Within(at, body.Pos, stats.AbsorptionRadius):
				r.claimed[gid] = struct{}{}
				ev := core.PickupEvent{Target: gid, Collector: pid}
				if p, ok := w.Get(gid, core.CompPickup).(*core.Pickup); ok {
					ev.Item, ev.Value = p.Item, p.Value
				}
				sink.Emit(core.Event{Type: core.EvtPickup, Tick: f.Tick, Payload: ev})
			case spatial.Within(at, body.Pos, stats.AttractionRadius):
				r.claimed[gid] = struct{}{}
				sink.Emit(core.Event{Type: core.EvtAttraction, Tick: f.Tick, Payload: core.AttractionEvent{
					Target:    gid,
					Toward:    pid,
					Direction: at.Sub(body.Pos).Normalize(),
				}})
			}
		}
	}
}
