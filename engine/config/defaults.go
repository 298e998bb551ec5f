package config

import (
	"time"

	"github.com/1siamBot/survivors-engine/engine/core"
)

// Default returns the stock game balance.
func Default() *Config {
	return &Config{
		Simulation: Simulation{
			TickRate:     60,
			MaxFrameTime: 0.25,
			Seed:         1,
		},
		Spatial: Spatial{
			CellSize:               64,
			MaxColliderRadius:      32,
			TargetingInitialRadius: 256,
			ScreenRadius:           740,
		},
		Player: Player{
			Radius:            12,
			MaxHealth:         100,
			Speed:             200,
			AttractionRadius:  80,
			AbsorptionRadius:  16,
			AttractSpeed:      300,
			Invincibility:     0.5,
			XPLevelBase:       20,
			XPLevelMultiplier: 1.2,
			StartWeapons:      []core.WeaponKind{core.WeaponWhip},
		},
		Enemies: Enemies{
			CullDistance: 2000,
			Kinds: map[string]EnemyKind{
				"bat":        {Radius: 8, Health: 10, Speed: 150, Damage: 5, XP: 3},
				"skeleton":   {Radius: 12, Health: 30, Speed: 80, Damage: 8, XP: 5},
				"zombie":     {Radius: 14, Health: 80, Speed: 40, Damage: 12, XP: 8},
				"ghost":      {Radius: 10, Health: 40, Speed: 70, Damage: 10, XP: 6},
				"demon":      {Radius: 14, Health: 100, Speed: 120, Damage: 15, XP: 10},
				"medusa":     {Radius: 12, Health: 60, Speed: 60, Damage: 12, XP: 8},
				"dragon":     {Radius: 20, Health: 200, Speed: 80, Damage: 20, XP: 15},
				"boss_death": {Radius: 30, Health: 5000, Speed: 30, Damage: 50, XP: 500},
			},
		},
		Weapons: map[core.WeaponKind]Weapon{
			core.WeaponMagicWand: {Cooldown: 1.0, Damage: 20, DamagePerLevel: 10, Speed: 600, Lifetime: 5, Radius: 8, Pierce: 1, Count: 1},
			core.WeaponKnife:     {Cooldown: 1.0, Damage: 6.5, DamagePerLevel: 3, Speed: 500, Lifetime: 2, Radius: 5, Pierce: 1, Count: 3},
			core.WeaponFireWand:  {Cooldown: 3.0, Damage: 20, DamagePerLevel: 10, Speed: 250, Lifetime: 4, Radius: 10, Pierce: 3, Count: 1},
			core.WeaponWhip:      {Cooldown: 1.35, Damage: 20, DamagePerLevel: 10, Range: 160},
			core.WeaponGarlic:    {Cooldown: 1.0, Damage: 5, DamagePerLevel: 2, Radius: 30, Interval: 0.65},
			core.WeaponBible:     {Cooldown: 6.0, Damage: 10, DamagePerLevel: 5, Lifetime: 3, Radius: 10, Count: 1, Interval: 0.5, OrbitRadius: 75, OrbitSpeed: 3},
		},
		Spawner: Spawner{
			BaseInterval:   0.5,
			DifficultyStep: 0.1,
			DifficultyMax:  10,
			MaxEnemies:     500,
			RingRadius:     760,
			Pool:           []string{"bat", "skeleton", "zombie", "ghost", "demon", "medusa", "dragon"},
			BossKind:       "boss_death",
			BossTime:       30 * 60,
		},
		Pickups: Pickups{
			GemRadius: 6,
		},
		Log: Log{
			Level:    "info",
			SlowTick: 4 * time.Millisecond,
		},
	}
}
