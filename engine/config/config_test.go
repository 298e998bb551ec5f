package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/survivors-engine/engine/core"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 64.0, cfg.Spatial.CellSize)
	assert.Equal(t, 12.0, cfg.Player.Radius)
	assert.Equal(t, 80.0, cfg.Player.AttractionRadius)
	assert.Equal(t, 16.0, cfg.Player.AbsorptionRadius)
	assert.Equal(t, 0.5, cfg.Player.Invincibility)
	assert.Len(t, cfg.Weapons, 6)
}

func TestParseOverlaysDefaults(t *testing.T) {
	doc := `
simulation:
  tick_rate: 30
  parallel_narrow_phase: true
spatial:
  cell_size: 48
player:
  start_weapons: [magic_wand, garlic]
weapons:
  garlic:
    cooldown: 2
    damage: 9
    radius: 40
    interval: 1
log:
  level: debug
  slow_tick: 8ms
`
	cfg, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 30.0, cfg.Simulation.TickRate)
	assert.True(t, cfg.Simulation.ParallelNarrowPhase)
	assert.Equal(t, 0.25, cfg.Simulation.MaxFrameTime, "untouched keys keep defaults")
	assert.Equal(t, 48.0, cfg.Spatial.CellSize)
	assert.Equal(t, 32.0, cfg.Spatial.MaxColliderRadius)
	assert.Equal(t, []core.WeaponKind{core.WeaponMagicWand, core.WeaponGarlic}, cfg.Player.StartWeapons)
	assert.Equal(t, Weapon{Cooldown: 2, Damage: 9, Radius: 40, Interval: 1}, cfg.Weapons[core.WeaponGarlic])
	assert.Equal(t, 600.0, cfg.Weapons[core.WeaponMagicWand].Speed)
	assert.Equal(t, 8*time.Millisecond, cfg.Log.SlowTick)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestParseEmptyDocumentYieldsDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"zero cell":         "spatial:\n  cell_size: 0\n",
		"negative radius":   "player:\n  radius: -1\n",
		"absorb > attract":  "player:\n  absorption_radius: 100\n",
		"enemy too big":     "enemies:\n  kinds:\n    giant: {radius: 64, health: 10}\n",
		"unknown pool kind": "spawner:\n  pool: [slime]\n",
		"unknown weapon":    "player:\n  start_weapons: [laser]\n",
		"bad cooldown":      "weapons:\n  whip: {cooldown: 0, range: 160}\n",
		"bad log level":     "log:\n  level: loud\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("spatial:\n  cell_sise: 32\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoadSampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "survivors.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 64.0, cfg.Spatial.CellSize)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScalingHelpers(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 20.0, cfg.Player.XPToNext(1))
	assert.InDelta(t, 24.0, cfg.Player.XPToNext(2), 1e-9)
	assert.InDelta(t, 28.8, cfg.Player.XPToNext(3), 1e-9)

	w := cfg.Weapons[core.WeaponMagicWand]
	assert.Equal(t, 20.0, w.DamageAt(1))
	assert.Equal(t, 40.0, w.DamageAt(3))
	assert.Equal(t, 20.0, w.DamageAt(0))

	s := cfg.Spawner
	assert.Equal(t, 1.0, s.Difficulty(59))
	assert.InDelta(t, 2.0, s.Difficulty(600), 1e-9)
	assert.Equal(t, 10.0, s.Difficulty(1e6))
	assert.Equal(t, 0.5, s.Interval(0))
	assert.InDelta(t, 0.25, s.Interval(600), 1e-9)
}
