package audio

import (
	"math"

	"github.com/1siamBot/survivors-engine/engine/core"
)

// SoundID identifies a sound effect
type SoundID string

const (
	SndKill    SoundID = "kill"
	SndPickup  SoundID = "pickup"
	SndLevelUp SoundID = "level_up"
	SndDeath   SoundID = "death"
	SndWhip    SoundID = "whip"
	SndShot    SoundID = "shot"
)

// Sink plays a sound at a volume in [0, 1].
type Sink interface {
	Play(id SoundID, volume float64)
}

// AudioManager turns gameplay events into sound effects
type AudioManager struct {
	MasterVolume float64
	SFXVolume    float64
	ListenerX    float64
	ListenerY    float64
	MaxDistance  float64 // sounds farther than this from the listener are dropped
	PerFrame     int     // max plays of one sound per frame

	sink   Sink
	played map[SoundID]int
}

func NewAudioManager(sink Sink) *AudioManager {
	return &AudioManager{
		MasterVolume: 1.0,
		SFXVolume:    0.8,
		MaxDistance:  900,
		PerFrame:     4,
		sink:         sink,
		played:       make(map[SoundID]int),
	}
}

// Listen subscribes the manager to bus. Positional sounds are heard from
// the listener position.
func (am *AudioManager) Listen(bus *core.EventBus) {
	bus.On(core.EvtEnemyDied, func(e core.Event) {
		am.PlaySFXAt(SndKill, e.Payload.(core.EnemyDiedEvent).Pos)
	})
	bus.On(core.EvtPickup, func(core.Event) { am.PlaySFX(SndPickup) })
	bus.On(core.EvtLevelUp, func(core.Event) { am.PlaySFX(SndLevelUp) })
	bus.On(core.EvtPlayerDied, func(core.Event) { am.PlaySFX(SndDeath) })
	bus.On(core.EvtWeaponFired, func(e core.Event) {
		if e.Payload.(core.WeaponFiredEvent).Weapon == core.WeaponWhip {
			am.PlaySFX(SndWhip)
		} else {
			am.PlaySFX(SndShot)
		}
	})
}

// SetListener updates the listener position for positional audio
func (am *AudioManager) SetListener(p core.Vec2) {
	am.ListenerX, am.ListenerY = p.X, p.Y
}

// PlaySFX plays a non-positional sound effect
func (am *AudioManager) PlaySFX(id SoundID) {
	am.play(id, am.SFXVolume*am.MasterVolume)
}

// PlaySFXAt plays a sound effect at a world position
func (am *AudioManager) PlaySFXAt(id SoundID, p core.Vec2) {
	am.play(id, am.calcVolume(p.X, p.Y))
}

func (am *AudioManager) play(id SoundID, vol float64) {
	if am.sink == nil || vol <= 0 || am.played[id] >= am.PerFrame {
		return
	}
	am.played[id]++
	am.sink.Play(id, vol)
}

// EndFrame resets the per-frame limits.
func (am *AudioManager) EndFrame() {
	clear(am.played)
}

// calcVolume computes volume based on distance from the listener
func (am *AudioManager) calcVolume(wx, wy float64) float64 {
	dx := wx - am.ListenerX
	dy := wy - am.ListenerY
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist >= am.MaxDistance {
		return 0
	}
	return (1.0 - dist/am.MaxDistance) * am.SFXVolume * am.MasterVolume
}

// SetVolume sets master volume (0-1)
func (am *AudioManager) SetVolume(v float64) {
	am.MasterVolume = math.Max(0, math.Min(1, v))
}
