package core

import "time"

// GameState represents the overall game state
type GameState uint8

const (
	StateMenu GameState = iota
	StatePlaying
	StatePaused
	StateGameOver
)

// TimerEpsilon absorbs the drift left by counting timers down in fixed
// ticks. Sums of 1/60 are not exact.
const TimerEpsilon = 1e-9

// Expired reports whether a countdown has run out.
func Expired(remaining float64) bool {
	return remaining <= TimerEpsilon
}

// Stepper advances a simulation by exactly one fixed tick.
type Stepper interface {
	Step(dt float64)
}

// GameLoop converts variable render frames into fixed simulation ticks
type GameLoop struct {
	Sim          Stepper
	State        GameState
	TickRate     float64 // fixed ticks per second
	MaxFrameTime float64 // frame time cap in seconds
	accumulator  float64
	lastTime     time.Time
	ticks        uint64
}

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(sim Stepper, tickRate float64) *GameLoop {
	return &GameLoop{
		Sim:          sim,
		TickRate:     tickRate,
		MaxFrameTime: 0.25,
		lastTime:     time.Now(),
	}
}

// Update should be called every render frame. It runs the simulation
// at fixed timestep.
// Returns the interpolation alpha for smooth rendering.
func (gl *GameLoop) Update() float64 {
	now := time.Now()
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now
	return gl.Advance(frameTime)
}

// Advance feeds frameTime seconds into the accumulator and runs as many
// fixed ticks as fit.
func (gl *GameLoop) Advance(frameTime float64) float64 {
	// Cap frame time to avoid spiral of death
	if frameTime > gl.MaxFrameTime {
		frameTime = gl.MaxFrameTime
	}

	dt := 1.0 / gl.TickRate
	gl.accumulator += frameTime

	for gl.accumulator >= dt {
		if gl.State == StatePlaying {
			gl.Sim.Step(dt)
			gl.ticks++
		}
		gl.accumulator -= dt
	}

	return gl.accumulator / dt
}

// Play starts or resumes the game
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
	gl.lastTime = time.Now()
}

// Pause pauses the game
func (gl *GameLoop) Pause() {
	if gl.State == StatePlaying {
		gl.State = StatePaused
	}
}

// End freezes the simulation for good
func (gl *GameLoop) End() {
	gl.State = StateGameOver
}

// Ticks returns the number of ticks run by this loop
func (gl *GameLoop) Ticks() uint64 {
	return gl.ticks
}
