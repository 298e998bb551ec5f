package systems

import (
	"math"
	"math/rand/v2"

	"github.com/1siamBot/survivors-engine/engine/config"
	"github.com/1siamBot/survivors-engine/engine/core"
)

// SpawnerSystem produces enemies on a timer that shortens as the run goes
// on. New enemies appear on a ring around the player, outside the screen.
type SpawnerSystem struct {
	Cfg       *config.Config
	Prio      int
	Suspended bool

	rng      *rand.Rand
	elapsed  float64
	timer    float64
	bossDone bool
	pool     []string
}

// NewSpawnerSystem seeds the spawner's generator from the config so runs
// with the same seed produce the same waves.
func NewSpawnerSystem(cfg *config.Config, prio int) *SpawnerSystem {
	seed := cfg.Simulation.Seed
	return &SpawnerSystem{
		Cfg:  cfg,
		Prio: prio,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		pool: cfg.Spawner.Pool,
	}
}

func (s *SpawnerSystem) Priority() int { return s.Prio }

// Elapsed is the run time the difficulty curve is read from.
func (s *SpawnerSystem) Elapsed() float64 { return s.elapsed }

// Difficulty is the current enemy health and spawn-rate multiplier.
func (s *SpawnerSystem) Difficulty() float64 { return s.Cfg.Spawner.Difficulty(s.elapsed) }

func (s *SpawnerSystem) Update(w *core.World, dt float64) {
	s.elapsed += dt
	if s.Suspended {
		return
	}
	players := w.Query(core.CompPlayer, core.CompPosition)
	if len(players) == 0 {
		return
	}
	center := w.Get(players[0], core.CompPosition).(*core.Position).Vec()
	sc := s.Cfg.Spawner

	if !s.bossDone && sc.BossTime > 0 && core.Expired(sc.BossTime-s.elapsed) {
		if kind, ok := s.Cfg.Enemies.Kinds[sc.BossKind]; ok {
			SpawnEnemy(w, sc.BossKind, kind, s.ringPoint(center), s.Difficulty(), true)
		}
		s.bossDone = true
	}

	if w.CountCategory(core.CatEnemy) >= sc.MaxEnemies {
		return
	}
	s.timer += dt
	if !core.Expired(sc.Interval(s.elapsed) - s.timer) {
		return
	}
	s.timer = 0
	if len(s.pool) == 0 {
		return
	}
	name := s.pool[s.rng.IntN(len(s.pool))]
	SpawnEnemy(w, name, s.Cfg.Enemies.Kinds[name], s.ringPoint(center), s.Difficulty(), false)
}

func (s *SpawnerSystem) ringPoint(center core.Vec2) core.Vec2 {
	angle := s.rng.Float64() * 2 * math.Pi
	return center.Add(core.FromAngle(angle).Scale(s.Cfg.Spawner.RingRadius))
}
