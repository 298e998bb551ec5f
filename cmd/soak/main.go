// Command soak runs the simulation headless with a fixed enemy population
// and reports tick timings and the event checksum. Two runs with the same
// config print the same checksum.
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/1siamBot/survivors-engine/engine/config"
	"github.com/1siamBot/survivors-engine/engine/core"
	"github.com/1siamBot/survivors-engine/engine/logging"
	"github.com/1siamBot/survivors-engine/engine/sim"
	"github.com/1siamBot/survivors-engine/engine/trace"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file (defaults when empty)")
	enemies := flag.Int("enemies", 300, "enemies kept alive around the player")
	ticks := flag.Int("ticks", 3600, "ticks to simulate")
	parallel := flag.Bool("parallel", false, "run narrow-phase resolvers concurrently")
	replay := flag.String("replay", "", "record a replay to this file and verify it afterwards")
	level := flag.String("log", "", "log level override")
	flag.Parse()

	if err := run(*cfgPath, *enemies, *ticks, *parallel, *replay, *level); err != nil {
		fmt.Fprintln(os.Stderr, "soak:", err)
		os.Exit(1)
	}
}

func run(cfgPath string, enemies, ticks int, parallel bool, replay, level string) (err error) {
	cfg := config.Default()
	if cfgPath != "" {
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
	}
	if level != "" {
		cfg.Log.Level = level
	}
	cfg.Simulation.ParallelNarrowPhase = cfg.Simulation.ParallelNarrowPhase || parallel

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer func() {
		// stderr Sync errors are noise on their own
		if err != nil {
			err = multierr.Append(err, logger.Sync())
		}
	}()

	opts := []sim.Option{sim.WithLogger(logger), sim.WithoutSpawner()}
	if replay != "" {
		opts = append(opts, sim.WithReplayFile(replay))
	}
	s, err := sim.New(cfg, opts...)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, s.Close()) }()

	dt := 1 / cfg.Simulation.TickRate
	radius := cfg.Spatial.ScreenRadius
	durations := make([]time.Duration, 0, ticks)
	for i := 0; i < ticks && !s.GameOver(); i++ {
		if missing := enemies - s.World().CountCategory(core.CatEnemy); missing > 0 {
			s.Scatter(missing, radius)
		}
		start := time.Now()
		s.Step(dt)
		durations = append(durations, time.Since(start))
	}

	st := s.Stats()
	p50, p99, worst := percentiles(durations)
	logger.Info("soak finished",
		zap.Int("ticks", len(durations)),
		zap.Int("entities", st.Entities),
		zap.Int("kills", st.Kills),
		zap.Int("level", st.Level),
		zap.Duration("p50", p50),
		zap.Duration("p99", p99),
		zap.Duration("max", worst),
		zap.Bool("game_over", s.GameOver()),
	)
	fmt.Printf("run %s: %d ticks, p50 %s, p99 %s, checksum %016x\n", s.RunID(), len(durations), p50, p99, s.Checksum())

	if replay == "" {
		return nil
	}
	if err := s.Close(); err != nil {
		return err
	}
	r, err := trace.LoadReplay(replay)
	if err != nil {
		return err
	}
	if r.FinalChecksum() != s.Checksum() {
		return fmt.Errorf("replay checksum %016x does not match run %016x", r.FinalChecksum(), s.Checksum())
	}
	logger.Info("replay verified", zap.Int("frames", len(r.Frames)), zap.String("path", replay))
	return nil
}

func percentiles(ds []time.Duration) (p50, p99, worst time.Duration) {
	if len(ds) == 0 {
		return 0, 0, 0
	}
	sorted := slices.Clone(ds)
	slices.Sort(sorted)
	at := func(q float64) time.Duration {
		return sorted[min(int(q*float64(len(sorted))), len(sorted)-1)]
	}
	return at(0.5), at(0.99), sorted[len(sorted)-1]
}
