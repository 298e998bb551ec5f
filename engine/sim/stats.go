package sim

import "github.com/1siamBot/survivors-engine/engine/core"

// Stats is a point-in-time summary for the HUD and the soak report.
type Stats struct {
	Tick        uint64
	Elapsed     float64
	Difficulty  float64
	Entities    int
	Enemies     int
	Projectiles int
	Pickups     int
	Hazards     int
	HitRecords  int

	Health    float64
	MaxHealth float64
	Level     int
	XP        float64
	XPToNext  float64
	Kills     int
	Gold      int
}

func (s *Simulation) Stats() Stats {
	w := s.world
	st := Stats{
		Tick:        w.TickCount,
		Elapsed:     s.spawner.Elapsed(),
		Difficulty:  s.spawner.Difficulty(),
		Entities:    w.EntityCount(),
		Enemies:     w.CountCategory(core.CatEnemy),
		Projectiles: w.CountCategory(core.CatProjectile),
		Pickups:     w.CountCategory(core.CatPickup),
		Hazards:     w.CountCategory(core.CatHazard),
		HitRecords:  s.tracker.Records(),
	}
	if hp, ok := w.Get(s.player, core.CompHealth).(*core.Health); ok {
		st.Health, st.MaxHealth = hp.Current, hp.Max
	}
	if p, ok := w.Get(s.player, core.CompPlayer).(*core.PlayerStats); ok {
		st.Level, st.XP, st.XPToNext = p.Level, p.XP, p.XPToNext
		st.Kills, st.Gold = p.Kills, p.Gold
	}
	return st
}
