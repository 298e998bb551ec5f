package systems

import (
	"math"

	"github.com/1siamBot/survivors-engine/engine/collision"
	"github.com/1siamBot/survivors-engine/engine/config"
	"github.com/1siamBot/survivors-engine/engine/core"
	"github.com/1siamBot/survivors-engine/engine/hitstate"
	"github.com/1siamBot/survivors-engine/engine/spatial"
	"github.com/1siamBot/survivors-engine/engine/targeting"
)

// CombatSystem counts down weapon cooldowns and fires every weapon that is
// ready. It runs after the narrow phase, so the targets it picks come from
// this tick's index.
type CombatSystem struct {
	Weapons  map[core.WeaponKind]config.Weapon
	Selector *targeting.Selector
	Broad    *spatial.BroadPhase
	Bus      *core.EventBus
	Prio     int
}

func (s *CombatSystem) Priority() int { return s.Prio }

func (s *CombatSystem) Update(w *core.World, dt float64) {
	for _, pid := range w.Query(core.CompPlayer, core.CompWeapons, core.CompPosition) {
		if h, ok := w.Get(pid, core.CompHealth).(*core.Health); ok && h.Dead() {
			continue
		}
		stats := w.Get(pid, core.CompPlayer).(*core.PlayerStats)
		loadout := w.Get(pid, core.CompWeapons).(*core.Weapons)
		for _, slot := range loadout.Slots {
			s.tickSlot(w, pid, stats, slot, dt)
		}
	}
}

func (s *CombatSystem) tickSlot(w *core.World, pid core.EntityID, stats *core.PlayerStats, slot *core.WeaponSlot, dt float64) {
	wc, ok := s.Weapons[slot.Kind]
	if !ok {
		return
	}
	slot.Hazards = aliveOnly(w, slot.Hazards)

	if !core.Expired(slot.CooldownNow) {
		slot.CooldownNow -= dt
		if !core.Expired(slot.CooldownNow) {
			return
		}
	}
	if !s.fire(w, pid, stats, slot, wc) {
		// no target: stay armed and try again next tick
		slot.CooldownNow = 0
		return
	}
	slot.CooldownNow += wc.Cooldown
	if s.Bus != nil {
		s.Bus.Emit(core.Event{Type: core.EvtWeaponFired, Tick: w.TickCount, Payload: core.WeaponFiredEvent{
			Player: pid,
			Weapon: slot.Kind,
			Level:  slot.Level,
		}})
	}
}

// fire reports whether the weapon actually went off.
func (s *CombatSystem) fire(w *core.World, pid core.EntityID, stats *core.PlayerStats, slot *core.WeaponSlot, wc config.Weapon) bool {
	pos := w.Get(pid, core.CompPosition).(*core.Position).Vec()
	damage := wc.DamageAt(slot.Level) * stats.DamageMult

	switch slot.Kind {
	case core.WeaponMagicWand:
		target, ok := s.Selector.Nearest(pos, core.CatEnemy)
		if !ok {
			return false
		}
		dir := s.aim(w, pos, target)
		for i := 0; i < max(wc.Count, 1); i++ {
			SpawnProjectile(w, pid, slot.Kind, wc, damage, pos, dir)
		}
		return true

	case core.WeaponKnife:
		targets := s.Selector.NearestK(pos, max(wc.Count, 1)+slot.Level-1, core.CatEnemy)
		for _, t := range targets {
			SpawnProjectile(w, pid, slot.Kind, wc, damage, pos, s.aim(w, pos, t))
		}
		return len(targets) > 0

	case core.WeaponFireWand:
		target, ok := s.Selector.MaxBy(pos, core.CatEnemy, targeting.HighestHealth(w))
		if !ok {
			return false
		}
		SpawnProjectile(w, pid, slot.Kind, wc, damage, pos, s.aim(w, pos, target))
		return true

	case core.WeaponWhip:
		if slot.Side == 0 {
			slot.Side = 1
		}
		sweep := collision.Sweep{Source: pid, Origin: pos, Side: slot.Side, Range: wc.Range * stats.AreaMult, Damage: damage}
		f := &collision.Frame{World: w, Broad: s.Broad, Tick: w.TickCount}
		if s.Bus != nil {
			collision.ResolveSweep(f, sweep, s.Bus)
		}
		slot.Side = -slot.Side
		return true

	case core.WeaponGarlic:
		if len(slot.Hazards) > 0 {
			a := w.Get(slot.Hazards[0], core.CompAura).(*core.Aura)
			a.Damage = damage
			w.Get(slot.Hazards[0], core.CompCollider).(*core.Collider).Radius = s.garlicRadius(wc, slot, stats)
			return false
		}
		id := w.Spawn(core.CatHazard)
		w.Attach(id, &core.Position{X: pos.X, Y: pos.Y})
		w.Attach(id, &core.Collider{Radius: s.garlicRadius(wc, slot, stats)})
		w.Attach(id, &core.Aura{Owner: pid, Damage: damage, Interval: wc.Interval})
		w.Attach(id, hitstate.NewCooldownMap())
		slot.Hazards = append(slot.Hazards, id)
		return true

	case core.WeaponBible:
		if len(slot.Hazards) > 0 {
			return false
		}
		n := max(wc.Count, 1) + slot.Level - 1
		for i := 0; i < n; i++ {
			angle := 2 * math.Pi * float64(i) / float64(n)
			at := pos.Add(core.FromAngle(angle).Scale(wc.OrbitRadius))
			id := w.Spawn(core.CatHazard)
			w.Attach(id, &core.Position{X: at.X, Y: at.Y})
			w.Attach(id, &core.Collider{Radius: wc.Radius * stats.AreaMult})
			w.Attach(id, &core.Orbit{
				Owner:       pid,
				Damage:      damage,
				Interval:    wc.Interval,
				OrbitRadius: wc.OrbitRadius,
				Speed:       wc.OrbitSpeed,
				Angle:       angle,
			})
			w.Attach(id, &core.Lifetime{Remaining: wc.Lifetime})
			w.Attach(id, hitstate.NewCooldownMap())
			slot.Hazards = append(slot.Hazards, id)
		}
		return true
	}
	return false
}

func (s *CombatSystem) garlicRadius(wc config.Weapon, slot *core.WeaponSlot, stats *core.PlayerStats) float64 {
	// +10% per level above 1
	return wc.Radius * (1 + 0.1*float64(slot.Level-1)) * stats.AreaMult
}

func (s *CombatSystem) aim(w *core.World, from core.Vec2, target core.EntityID) core.Vec2 {
	tp, ok := w.Get(target, core.CompPosition).(*core.Position)
	if !ok {
		return core.Vec2{X: 1}
	}
	dir := tp.Vec().Sub(from).Normalize()
	if dir.IsZero() {
		return core.Vec2{X: 1}
	}
	return dir
}

func aliveOnly(w *core.World, ids []core.EntityID) []core.EntityID {
	kept := ids[:0]
	for _, id := range ids {
		if w.Alive(id) {
			kept = append(kept, id)
		}
	}
	return kept
}
