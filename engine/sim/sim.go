// Package sim assembles the world, the spatial index, the narrow phase and
// the gameplay systems into one fixed-step simulation.
package sim

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/1siamBot/survivors-engine/engine/collision"
	"github.com/1siamBot/survivors-engine/engine/config"
	"github.com/1siamBot/survivors-engine/engine/core"
	"github.com/1siamBot/survivors-engine/engine/hitstate"
	"github.com/1siamBot/survivors-engine/engine/spatial"
	"github.com/1siamBot/survivors-engine/engine/systems"
	"github.com/1siamBot/survivors-engine/engine/targeting"
	"github.com/1siamBot/survivors-engine/engine/trace"
)

// System priorities, in tick order.
const (
	PrioSpawn       = 5
	PrioMovement    = 10
	PrioHitState    = 20
	PrioIndex       = 30
	PrioNarrowPhase = 40
	PrioCombat      = 50
	PrioDispatch    = 60
	PrioUpkeep      = 70
)

// Simulation is one run of the game.
type Simulation struct {
	cfg    *config.Config
	log    *zap.Logger
	runID  string
	player core.EntityID

	world    *core.World
	broad    *spatial.BroadPhase
	tracker  *hitstate.Tracker
	bus      *core.EventBus
	selector *targeting.Selector
	narrow   *collision.NarrowPhase
	applier  *systems.Applier
	spawner  *systems.SpawnerSystem
	scatter  *rand.Rand

	hasher   *trace.Hasher
	frame    []trace.Record
	recorder *trace.Recorder
	slowTick time.Duration
	reported bool

	replayOut  io.Writer
	replayPath string
	noSpawner  bool
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) { s.log = l }
}

// WithReplay records every tick's events to w.
func WithReplay(w io.Writer) Option {
	return func(s *Simulation) { s.replayOut = w }
}

// WithReplayFile records every tick's events to a new file at path.
func WithReplayFile(path string) Option {
	return func(s *Simulation) { s.replayPath = path }
}

// WithoutSpawner leaves enemy placement to the caller.
func WithoutSpawner() Option {
	return func(s *Simulation) { s.noSpawner = true }
}

// New validates cfg and builds a simulation with the player at the origin.
func New(cfg *config.Config, opts ...Option) (*Simulation, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg:      cfg,
		log:      zap.NewNop(),
		runID:    uuid.NewString(),
		hasher:   trace.NewHasher(),
		slowTick: cfg.Log.SlowTick,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("run", s.runID))

	grid, err := spatial.NewGrid(cfg.Spatial.CellSize)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	s.world = core.NewWorld(cfg.Simulation.TickRate)
	s.broad = spatial.NewBroadPhase(grid, cfg.Spatial.MaxColliderRadius)
	s.tracker = hitstate.NewTracker(s.world)
	s.bus = core.NewEventBus()
	s.selector = targeting.NewSelector(s.world, s.broad, cfg.Spatial.TargetingInitialRadius, cfg.Spatial.ScreenRadius)

	s.narrow = collision.NewNarrowPhase(s.broad, s.tracker, s.bus)
	s.narrow.Parallel = cfg.Simulation.ParallelNarrowPhase
	s.narrow.Prio = PrioNarrowPhase
	s.applier = systems.NewApplier(s.world, cfg, s.bus)
	s.spawner = systems.NewSpawnerSystem(cfg, PrioSpawn)
	s.spawner.Suspended = s.noSpawner

	s.world.AddSystem(s.spawner)
	s.world.AddSystem(&systems.MovementSystem{Prio: PrioMovement})
	s.world.AddSystem(&hitstate.TrackerSystem{Tracker: s.tracker, Prio: PrioHitState})
	s.world.AddSystem(&spatial.IndexSystem{Broad: s.broad, Prio: PrioIndex})
	s.world.AddSystem(s.narrow)
	s.world.AddSystem(&systems.CombatSystem{
		Weapons:  cfg.Weapons,
		Selector: s.selector,
		Broad:    s.broad,
		Bus:      s.bus,
		Prio:     PrioCombat,
	})
	s.world.AddSystem(&systems.DispatchSystem{Bus: s.bus, Prio: PrioDispatch})
	s.world.AddSystem(&systems.UpkeepSystem{CullDistance: cfg.Enemies.CullDistance, Prio: PrioUpkeep})

	s.bus.Tap(s.observe)
	s.player = systems.SpawnPlayer(s.world, cfg, core.Vec2{})

	if err := s.openReplay(); err != nil {
		return nil, err
	}
	s.log.Info("simulation ready",
		zap.Uint64("seed", cfg.Simulation.Seed),
		zap.Float64("tick_rate", cfg.Simulation.TickRate),
		zap.Bool("parallel", s.narrow.Parallel),
	)
	return s, nil
}

func (s *Simulation) openReplay() error {
	h := trace.Header{RunID: s.runID, Seed: s.cfg.Simulation.Seed, TickRate: s.cfg.Simulation.TickRate}
	var err error
	switch {
	case s.replayPath != "":
		s.recorder, err = trace.CreateRecorder(s.replayPath, h)
	case s.replayOut != nil:
		s.recorder, err = trace.NewRecorder(s.replayOut, h)
	}
	if err != nil {
		return fmt.Errorf("sim: %w", err)
	}
	return nil
}

func (s *Simulation) observe(e core.Event) {
	r := trace.FromEvent(e)
	s.hasher.Add(r)
	if s.recorder != nil {
		s.frame = append(s.frame, r)
	}
}

// Step advances the simulation by one fixed tick of dt seconds.
func (s *Simulation) Step(dt float64) {
	tick := s.world.TickCount
	start := time.Now()
	s.world.Tick(dt)
	took := time.Since(start)

	if s.slowTick > 0 && took > s.slowTick {
		s.log.Warn("slow tick",
			zap.Uint64("tick", tick),
			zap.Int("entities", s.world.EntityCount()),
			zap.Duration("took", took),
		)
	}
	if s.recorder != nil {
		if err := s.recorder.Record(trace.Frame{Tick: tick, Events: s.frame, Checksum: s.hasher.Sum()}); err != nil {
			s.log.Error("replay write failed", zap.Error(err))
		}
		s.frame = s.frame[:0]
	}
	if s.applier.GameOver() && !s.reported {
		s.reported = true
		stats := s.Stats()
		s.log.Info("player died",
			zap.Uint64("tick", tick),
			zap.Int("level", stats.Level),
			zap.Int("kills", stats.Kills),
		)
	}
}

// Steer sets the player's movement direction. A zero vector stops it.
func (s *Simulation) Steer(dir core.Vec2) {
	v, ok := s.world.Get(s.player, core.CompVelocity).(*core.Velocity)
	if !ok {
		return
	}
	if s.applier.GameOver() {
		dir = core.Vec2{}
	}
	step := dir.Normalize().Scale(s.cfg.Player.Speed)
	v.X, v.Y = step.X, step.Y
}

// Scatter places n enemies from the spawn pool between radius/4 and radius
// of the player. Successive calls continue one generator seeded by the
// config. An empty pool places nothing.
func (s *Simulation) Scatter(n int, radius float64) {
	pool := s.cfg.Spawner.Pool
	if len(pool) == 0 {
		return
	}
	if s.scatter == nil {
		seed := s.cfg.Simulation.Seed + 1
		s.scatter = rand.New(rand.NewPCG(seed, seed*31))
	}
	rng := s.scatter
	center := s.world.Get(s.player, core.CompPosition).(*core.Position).Vec()
	for i := 0; i < n; i++ {
		name := pool[rng.IntN(len(pool))]
		d := radius/4 + rng.Float64()*radius*3/4
		at := center.Add(core.FromAngle(rng.Float64() * 2 * math.Pi).Scale(d))
		systems.SpawnEnemy(s.world, name, s.cfg.Enemies.Kinds[name], at, 1, false)
	}
}

// Checksum is the running digest of every event dispatched so far. Two runs
// with the same config and inputs produce the same checksum.
func (s *Simulation) Checksum() uint64 { return s.hasher.Sum() }

// Close flushes the replay, if one is being recorded.
func (s *Simulation) Close() error {
	if s.recorder == nil {
		return nil
	}
	err := s.recorder.Close()
	s.recorder = nil
	return err
}

func (s *Simulation) Config() *config.Config { return s.cfg }
func (s *Simulation) World() *core.World { return s.world }
func (s *Simulation) Bus() *core.EventBus { return s.bus }
func (s *Simulation) Broad() *spatial.BroadPhase { return s.broad }
func (s *Simulation) Player() core.EntityID { return s.player }
func (s *Simulation) RunID() string { return s.runID }
func (s *Simulation) GameOver() bool { return s.applier.GameOver() }
func (s *Simulation) Spawner() *systems.SpawnerSystem { return s.spawner }
