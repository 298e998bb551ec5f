package systems

import (
	"github.com/1siamBot/survivors-engine/engine/config"
	"github.com/1siamBot/survivors-engine/engine/core"
	"github.com/1siamBot/survivors-engine/engine/hitstate"
)

// SpawnPlayer creates the player at pos with the configured stats and
// starting weapons.
func SpawnPlayer(w *core.World, cfg *config.Config, pos core.Vec2) core.EntityID {
	p := cfg.Player
	id := w.Spawn(core.CatPlayer)
	w.Attach(id, &core.Position{X: pos.X, Y: pos.Y})
	w.Attach(id, &core.Velocity{})
	w.Attach(id, &core.Collider{Radius: p.Radius})
	w.Attach(id, &core.Health{Current: p.MaxHealth, Max: p.MaxHealth})
	w.Attach(id, &core.PlayerStats{
		AttractionRadius: p.AttractionRadius,
		AbsorptionRadius: p.AbsorptionRadius,
		AttractSpeed:     p.AttractSpeed,
		Invincibility:    p.Invincibility,
		DamageMult:       1,
		AreaMult:         1,
		XPToNext:         p.XPToNext(1),
		Level:            1,
	})
	weapons := &core.Weapons{}
	for _, kind := range p.StartWeapons {
		weapons.Slots = append(weapons.Slots, &core.WeaponSlot{Kind: kind, Level: 1, Side: 1})
	}
	w.Attach(id, weapons)
	return id
}

// SpawnEnemy creates an enemy of the named kind. hpScale multiplies its
// health (the spawner's difficulty).
func SpawnEnemy(w *core.World, name string, kind config.EnemyKind, pos core.Vec2, hpScale float64, boss bool) core.EntityID {
	if hpScale <= 0 {
		hpScale = 1
	}
	hp := kind.Health * hpScale
	id := w.Spawn(core.CatEnemy)
	w.Attach(id, &core.Position{X: pos.X, Y: pos.Y})
	w.Attach(id, &core.Collider{Radius: kind.Radius})
	w.Attach(id, &core.Health{Current: hp, Max: hp})
	w.Attach(id, &core.Chase{Speed: kind.Speed})
	w.Attach(id, &core.Enemy{Kind: name, Damage: kind.Damage, XP: kind.XP, Boss: boss})
	return id
}

// SpawnGem drops an experience gem worth xp at pos.
func SpawnGem(w *core.World, pk config.Pickups, pos core.Vec2, xp float64) core.EntityID {
	id := w.Spawn(core.CatPickup)
	w.Attach(id, &core.Position{X: pos.X, Y: pos.Y})
	w.Attach(id, &core.Collider{Radius: pk.GemRadius})
	w.Attach(id, &core.Pickup{Item: core.ItemXPGem, Value: xp})
	if pk.Lifetime > 0 {
		w.Attach(id, &core.Lifetime{Remaining: pk.Lifetime})
	}
	return id
}

// SpawnProjectile launches a projectile from pos along dir (unit vector).
// It carries a fresh pierce list.
func SpawnProjectile(w *core.World, src core.EntityID, kind core.WeaponKind, wc config.Weapon, damage float64, pos, dir core.Vec2) core.EntityID {
	pierce := max(wc.Pierce, 1)
	id := w.Spawn(core.CatProjectile)
	w.Attach(id, &core.Position{X: pos.X, Y: pos.Y, Facing: dir.Angle()})
	w.Attach(id, &core.Velocity{X: dir.X * wc.Speed, Y: dir.Y * wc.Speed})
	w.Attach(id, &core.Collider{Radius: wc.Radius})
	w.Attach(id, &core.Projectile{Source: src, Weapon: kind, Damage: damage, Pierce: pierce})
	w.Attach(id, &core.Lifetime{Remaining: wc.Lifetime})
	w.Attach(id, hitstate.NewPierceList(pierce))
	return id
}
