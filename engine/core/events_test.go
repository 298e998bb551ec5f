package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBusDispatchesFollowUpEventsInSameCall(t *testing.T) {
	bus := NewEventBus()
	var seen []EventType
	bus.Tap(func(e Event) { seen = append(seen, e.Type) })
	bus.On(EvtDamage, func(e Event) {
		bus.Emit(Event{Type: EvtEnemyDied, Tick: e.Tick})
	})

	bus.Emit(Event{Type: EvtDamage, Payload: DamageEvent{Target: 1, Amount: 5}})
	bus.Emit(Event{Type: EvtPickup})
	bus.Dispatch()

	assert.Equal(t, []EventType{EvtDamage, EvtPickup, EvtEnemyDied}, seen)
	assert.Zero(t, bus.Pending())
}

func TestEventStreamDrainKeepsOrder(t *testing.T) {
	var s EventStream
	s.Emit(Event{Type: EvtAttraction})
	s.Emit(Event{Type: EvtPickup})

	bus := NewEventBus()
	s.DrainTo(bus)

	assert.Zero(t, s.Len())
	assert.Equal(t, 2, bus.Pending())
}

func TestGameLoopRunsFixedTicks(t *testing.T) {
	sim := &countingStepper{}
	gl := NewGameLoop(sim, 4)
	gl.MaxFrameTime = 2

	gl.Advance(1.0)
	assert.Zero(t, sim.steps, "menu state does not tick")

	gl.Play()
	alpha := gl.Advance(1.0)
	assert.Equal(t, 4, sim.steps)
	assert.Zero(t, alpha)

	gl.Advance(10)
	assert.Equal(t, 4+8, sim.steps, "frame time is capped")

	alpha = gl.Advance(0.125)
	assert.Equal(t, 12, sim.steps)
	assert.Equal(t, 0.5, alpha)

	gl.Pause()
	gl.Advance(1.0)
	assert.Equal(t, 12, sim.steps)
	assert.Equal(t, uint64(12), gl.Ticks())
}
