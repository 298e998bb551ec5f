package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/survivors-engine/engine/core"
)

type played struct {
	id  SoundID
	vol float64
}

type fakeSink struct{ log []played }

func (f *fakeSink) Play(id SoundID, vol float64) { f.log = append(f.log, played{id, vol}) }

func TestEventsBecomeCues(t *testing.T) {
	sink := &fakeSink{}
	am := NewAudioManager(sink)
	bus := core.NewEventBus()
	am.Listen(bus)

	bus.Emit(core.Event{Type: core.EvtEnemyDied, Payload: core.EnemyDiedEvent{Pos: core.Vec2{X: 450}}})
	bus.Emit(core.Event{Type: core.EvtEnemyDied, Payload: core.EnemyDiedEvent{Pos: core.Vec2{X: 5000}}})
	bus.Emit(core.Event{Type: core.EvtWeaponFired, Payload: core.WeaponFiredEvent{Weapon: core.WeaponWhip}})
	bus.Emit(core.Event{Type: core.EvtLevelUp, Payload: core.LevelUpEvent{Level: 2}})
	bus.Dispatch()

	require.Len(t, sink.log, 3, "the distant kill is inaudible")
	assert.Equal(t, SndKill, sink.log[0].id)
	assert.InDelta(t, 0.4, sink.log[0].vol, 1e-9)
	assert.Equal(t, SndWhip, sink.log[1].id)
	assert.Equal(t, SndLevelUp, sink.log[2].id)
}

func TestPerFrameLimit(t *testing.T) {
	sink := &fakeSink{}
	am := NewAudioManager(sink)
	for i := 0; i < 10; i++ {
		am.PlaySFX(SndPickup)
	}
	assert.Len(t, sink.log, am.PerFrame)

	am.EndFrame()
	am.PlaySFX(SndPickup)
	assert.Len(t, sink.log, am.PerFrame+1)

	am.SetVolume(0)
	am.EndFrame()
	am.PlaySFX(SndPickup)
	assert.Len(t, sink.log, am.PerFrame+1, "muted sounds are not sent")
}

func TestRenderedCueLength(t *testing.T) {
	pcm := render(cues[SndShot])
	assert.Len(t, pcm, int(0.04*sampleRate)*4)
}
