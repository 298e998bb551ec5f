package systems

import (
	"math"

	"github.com/1siamBot/survivors-engine/engine/config"
	"github.com/1siamBot/survivors-engine/engine/core"
)

// Applier turns queued events into world changes. The narrow phase only
// reports what touched what; every hit point, pickup and despawn happens
// here, while the bus is dispatched.
type Applier struct {
	World *core.World
	Cfg   *config.Config
	Bus   *core.EventBus

	over bool
}

// NewApplier registers the applier's handlers on bus.
func NewApplier(w *core.World, cfg *config.Config, bus *core.EventBus) *Applier {
	a := &Applier{World: w, Cfg: cfg, Bus: bus}
	bus.On(core.EvtDamage, a.onDamage)
	bus.On(core.EvtEnemyDied, a.onEnemyDied)
	bus.On(core.EvtPickup, a.onPickup)
	bus.On(core.EvtAttraction, a.onAttraction)
	bus.On(core.EvtProjectileSpent, a.onProjectileSpent)
	bus.On(core.EvtLevelUp, a.onLevelUp)
	return a
}

// GameOver reports whether a player has died.
func (a *Applier) GameOver() bool { return a.over }

func (a *Applier) onDamage(e core.Event) {
	ev := e.Payload.(core.DamageEvent)
	w := a.World
	if !w.Alive(ev.Target) {
		return
	}
	hp, ok := w.Get(ev.Target, core.CompHealth).(*core.Health)
	if !ok || hp.Dead() {
		return
	}
	hp.Current -= ev.Amount

	switch w.Category(ev.Target) {
	case core.CatPlayer:
		if ev.SourceCategory == core.InteractContact {
			stats := w.Get(ev.Target, core.CompPlayer).(*core.PlayerStats)
			if stats.Invincibility > 0 {
				w.Attach(ev.Target, &core.Invincible{Remaining: stats.Invincibility})
			}
		}
		if hp.Dead() && !a.over {
			a.over = true
			a.Bus.Emit(core.Event{Type: core.EvtPlayerDied, Tick: e.Tick, Payload: core.PlayerDiedEvent{Player: ev.Target}})
		}

	case core.CatEnemy:
		if !hp.Dead() {
			return
		}
		died := core.EnemyDiedEvent{Enemy: ev.Target, Killer: ownerOf(w, ev.Source)}
		if en, ok := w.Get(ev.Target, core.CompEnemy).(*core.Enemy); ok {
			died.Kind = en.Kind
			died.XP = en.XP
		}
		if p, ok := w.Get(ev.Target, core.CompPosition).(*core.Position); ok {
			died.Pos = p.Vec()
		}
		w.Destroy(ev.Target)
		a.Bus.Emit(core.Event{Type: core.EvtEnemyDied, Tick: e.Tick, Payload: died})
	}
}

func (a *Applier) onEnemyDied(e core.Event) {
	ev := e.Payload.(core.EnemyDiedEvent)
	if stats, ok := a.World.Get(ev.Killer, core.CompPlayer).(*core.PlayerStats); ok {
		stats.Kills++
	}
	if ev.XP > 0 {
		SpawnGem(a.World, a.Cfg.Pickups, ev.Pos, ev.XP)
	}
}

func (a *Applier) onPickup(e core.Event) {
	ev := e.Payload.(core.PickupEvent)
	w := a.World
	if !w.Alive(ev.Target) {
		return
	}
	w.Destroy(ev.Target)

	stats, ok := w.Get(ev.Collector, core.CompPlayer).(*core.PlayerStats)
	if !ok {
		return
	}
	switch ev.Item {
	case core.ItemXPGem:
		stats.XP += ev.Value
		for stats.XPToNext > 0 && stats.XP >= stats.XPToNext {
			stats.XP -= stats.XPToNext
			stats.Level++
			stats.XPToNext = a.Cfg.Player.XPToNext(stats.Level)
			a.Bus.Emit(core.Event{Type: core.EvtLevelUp, Tick: e.Tick, Payload: core.LevelUpEvent{Player: ev.Collector, Level: stats.Level}})
		}
	case core.ItemGold:
		stats.Gold += int(ev.Value)
	case core.ItemHeal:
		if hp, ok := w.Get(ev.Collector, core.CompHealth).(*core.Health); ok && !hp.Dead() {
			hp.Current = math.Min(hp.Max, hp.Current+ev.Value)
		}
	}
}

func (a *Applier) onAttraction(e core.Event) {
	ev := e.Payload.(core.AttractionEvent)
	w := a.World
	if !w.Alive(ev.Target) || w.Has(ev.Target, core.CompAttracted) {
		return
	}
	speed := 0.0
	if stats, ok := w.Get(ev.Toward, core.CompPlayer).(*core.PlayerStats); ok {
		speed = stats.AttractSpeed
	}
	w.Attach(ev.Target, &core.Attracted{Toward: ev.Toward, Speed: speed})
}

func (a *Applier) onProjectileSpent(e core.Event) {
	a.World.Destroy(e.Payload.(core.ProjectileSpentEvent).Projectile)
}

// onLevelUp raises the first of the lowest-level weapons.
func (a *Applier) onLevelUp(e core.Event) {
	ev := e.Payload.(core.LevelUpEvent)
	loadout, ok := a.World.Get(ev.Player, core.CompWeapons).(*core.Weapons)
	if !ok || len(loadout.Slots) == 0 {
		return
	}
	pick := loadout.Slots[0]
	for _, slot := range loadout.Slots[1:] {
		if slot.Level < pick.Level {
			pick = slot
		}
	}
	pick.Level++
	// an aura keeps its entity and hit cooldowns and is resized in place on
	// the next firing; orbits are rebuilt at the new count
	if pick.Kind != core.WeaponGarlic {
		for _, id := range pick.Hazards {
			a.World.Destroy(id)
		}
		pick.Hazards = pick.Hazards[:0]
	}
	pick.CooldownNow = 0
}

// ownerOf resolves a damage source to the player responsible for it.
func ownerOf(w *core.World, src core.EntityID) core.EntityID {
	if p, ok := w.Get(src, core.CompProjectile).(*core.Projectile); ok {
		return p.Source
	}
	if au, ok := w.Get(src, core.CompAura).(*core.Aura); ok {
		return au.Owner
	}
	if o, ok := w.Get(src, core.CompOrbit).(*core.Orbit); ok {
		return o.Owner
	}
	return src
}

// DispatchSystem drains the event bus once per tick.
type DispatchSystem struct {
	Bus  *core.EventBus
	Prio int
}

func (s *DispatchSystem) Priority() int { return s.Prio }

func (s *DispatchSystem) Update(_ *core.World, _ float64) {
	s.Bus.Dispatch()
}
