// Package config loads the tunables of a run from YAML. Every value has a
// default, so a file only needs the keys it changes.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/1siamBot/survivors-engine/engine/core"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Simulation Simulation                 `yaml:"simulation"`
	Spatial    Spatial                    `yaml:"spatial"`
	Player     Player                     `yaml:"player"`
	Enemies    Enemies                    `yaml:"enemies"`
	Weapons    map[core.WeaponKind]Weapon `yaml:"weapons"`
	Spawner    Spawner                    `yaml:"spawner"`
	Pickups    Pickups                    `yaml:"pickups"`
	Log        Log                        `yaml:"log"`
}

type Simulation struct {
	TickRate            float64 `yaml:"tick_rate"`
	MaxFrameTime        float64 `yaml:"max_frame_time"`
	ParallelNarrowPhase bool    `yaml:"parallel_narrow_phase"`
	Seed                uint64  `yaml:"seed"`
}

type Spatial struct {
	CellSize               float64 `yaml:"cell_size"`
	MaxColliderRadius      float64 `yaml:"max_collider_radius"`
	TargetingInitialRadius float64 `yaml:"targeting_initial_radius"`
	ScreenRadius           float64 `yaml:"screen_radius"`
}

type Player struct {
	Radius            float64           `yaml:"radius"`
	MaxHealth         float64           `yaml:"max_health"`
	Speed             float64           `yaml:"speed"`
	AttractionRadius  float64           `yaml:"attraction_radius"`
	AbsorptionRadius  float64           `yaml:"absorption_radius"`
	AttractSpeed      float64           `yaml:"attract_speed"`
	Invincibility     float64           `yaml:"invincibility"`
	XPLevelBase       float64           `yaml:"xp_level_base"`
	XPLevelMultiplier float64           `yaml:"xp_level_multiplier"`
	StartWeapons      []core.WeaponKind `yaml:"start_weapons"`
}

// XPToNext is the experience needed to leave level.
func (p Player) XPToNext(level int) float64 {
	if level < 1 {
		level = 1
	}
	return p.XPLevelBase * math.Pow(p.XPLevelMultiplier, float64(level-1))
}

type EnemyKind struct {
	Radius float64 `yaml:"radius"`
	Health float64 `yaml:"health"`
	Speed  float64 `yaml:"speed"`
	Damage float64 `yaml:"damage"`
	XP     float64 `yaml:"xp"`
}

type Enemies struct {
	CullDistance float64              `yaml:"cull_distance"`
	Kinds        map[string]EnemyKind `yaml:"kinds"`
}

// Weapon describes one weapon. A weapons entry in a file replaces the
// default entry as a whole.
type Weapon struct {
	Cooldown       float64 `yaml:"cooldown"`
	Damage         float64 `yaml:"damage"`
	DamagePerLevel float64 `yaml:"damage_per_level"`
	Speed          float64 `yaml:"speed"`
	Lifetime       float64 `yaml:"lifetime"`
	Radius         float64 `yaml:"radius"`
	Pierce         int     `yaml:"pierce"`
	Count          int     `yaml:"count"`
	Range          float64 `yaml:"range"`
	Interval       float64 `yaml:"interval"`
	OrbitRadius    float64 `yaml:"orbit_radius"`
	OrbitSpeed     float64 `yaml:"orbit_speed"`
}

// DamageAt scales damage linearly with level, level 1 being the base.
func (w Weapon) DamageAt(level int) float64 {
	if level < 1 {
		level = 1
	}
	return w.Damage + w.DamagePerLevel*float64(level-1)
}

type Spawner struct {
	BaseInterval   float64  `yaml:"base_interval"`
	DifficultyStep float64  `yaml:"difficulty_step"` // per minute
	DifficultyMax  float64  `yaml:"difficulty_max"`
	MaxEnemies     int      `yaml:"max_enemies"`
	RingRadius     float64  `yaml:"ring_radius"`
	Pool           []string `yaml:"pool"`
	BossKind       string   `yaml:"boss_kind"`
	BossTime       float64  `yaml:"boss_time"`
}

// Difficulty grows by DifficultyStep per whole minute, capped at
// DifficultyMax.
func (s Spawner) Difficulty(elapsed float64) float64 {
	d := 1 + math.Floor(elapsed/60)*s.DifficultyStep
	return math.Min(d, s.DifficultyMax)
}

// Interval is the spawn interval at elapsed seconds into the run.
func (s Spawner) Interval(elapsed float64) float64 {
	return s.BaseInterval / math.Max(s.Difficulty(elapsed), 1)
}

type Pickups struct {
	GemRadius float64 `yaml:"gem_radius"`
	Lifetime  float64 `yaml:"lifetime"` // 0 keeps gems forever
}

type Log struct {
	Level       string        `yaml:"level"`
	Development bool          `yaml:"development"`
	SlowTick    time.Duration `yaml:"slow_tick"`
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over Default and validates the result. Unknown
// keys are rejected. An empty document yields the defaults.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be positive and finite, got %v", ErrInvalid, name, v)
	}
	return nil
}

// Validate checks the values the core relies on.
func (c *Config) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"simulation.tick_rate", c.Simulation.TickRate},
		{"simulation.max_frame_time", c.Simulation.MaxFrameTime},
		{"spatial.cell_size", c.Spatial.CellSize},
		{"spatial.max_collider_radius", c.Spatial.MaxColliderRadius},
		{"spatial.targeting_initial_radius", c.Spatial.TargetingInitialRadius},
		{"spatial.screen_radius", c.Spatial.ScreenRadius},
		{"player.radius", c.Player.Radius},
		{"player.max_health", c.Player.MaxHealth},
		{"player.attraction_radius", c.Player.AttractionRadius},
		{"player.absorption_radius", c.Player.AbsorptionRadius},
		{"player.xp_level_base", c.Player.XPLevelBase},
		{"player.xp_level_multiplier", c.Player.XPLevelMultiplier},
		{"enemies.cull_distance", c.Enemies.CullDistance},
		{"spawner.base_interval", c.Spawner.BaseInterval},
		{"spawner.difficulty_max", c.Spawner.DifficultyMax},
		{"spawner.ring_radius", c.Spawner.RingRadius},
		{"pickups.gem_radius", c.Pickups.GemRadius},
	}
	for _, chk := range checks {
		if err := positive(chk.name, chk.v); err != nil {
			return err
		}
	}
	if c.Player.AbsorptionRadius > c.Player.AttractionRadius {
		return fmt.Errorf("%w: player.absorption_radius %v exceeds attraction_radius %v",
			ErrInvalid, c.Player.AbsorptionRadius, c.Player.AttractionRadius)
	}
	if c.Player.Invincibility < 0 {
		return fmt.Errorf("%w: player.invincibility must not be negative", ErrInvalid)
	}
	if c.Player.Radius > c.Spatial.MaxColliderRadius {
		return fmt.Errorf("%w: player.radius %v exceeds spatial.max_collider_radius %v",
			ErrInvalid, c.Player.Radius, c.Spatial.MaxColliderRadius)
	}

	for _, name := range c.EnemyKinds() {
		k := c.Enemies.Kinds[name]
		if err := positive("enemies.kinds."+name+".radius", k.Radius); err != nil {
			return err
		}
		if err := positive("enemies.kinds."+name+".health", k.Health); err != nil {
			return err
		}
		if k.Radius > c.Spatial.MaxColliderRadius {
			return fmt.Errorf("%w: enemies.kinds.%s.radius %v exceeds spatial.max_collider_radius %v",
				ErrInvalid, name, k.Radius, c.Spatial.MaxColliderRadius)
		}
	}
	for _, name := range c.Spawner.Pool {
		if _, ok := c.Enemies.Kinds[name]; !ok {
			return fmt.Errorf("%w: spawner.pool names unknown enemy %q", ErrInvalid, name)
		}
	}
	if c.Spawner.BossKind != "" {
		if _, ok := c.Enemies.Kinds[c.Spawner.BossKind]; !ok {
			return fmt.Errorf("%w: spawner.boss_kind names unknown enemy %q", ErrInvalid, c.Spawner.BossKind)
		}
	}
	if c.Spawner.MaxEnemies < 0 {
		return fmt.Errorf("%w: spawner.max_enemies must not be negative", ErrInvalid)
	}

	for _, kind := range c.WeaponKinds() {
		w := c.Weapons[kind]
		if err := positive("weapons."+string(kind)+".cooldown", w.Cooldown); err != nil {
			return err
		}
		if w.Pierce < 0 || w.Count < 0 {
			return fmt.Errorf("%w: weapons.%s pierce and count must not be negative", ErrInvalid, kind)
		}
	}
	for _, kind := range c.Player.StartWeapons {
		if _, ok := c.Weapons[kind]; !ok {
			return fmt.Errorf("%w: player.start_weapons names unknown weapon %q", ErrInvalid, kind)
		}
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// EnemyKinds returns the configured enemy names in sorted order.
func (c *Config) EnemyKinds() []string {
	names := make([]string, 0, len(c.Enemies.Kinds))
	for name := range c.Enemies.Kinds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// WeaponKinds returns the configured weapon kinds in sorted order.
func (c *Config) WeaponKinds() []core.WeaponKind {
	kinds := make([]core.WeaponKind, 0, len(c.Weapons))
	for kind := range c.Weapons {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}
