package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/1siamBot/survivors-engine/engine/core"
)

// Action is a one-shot command triggered by a key press
type Action uint8

const (
	ActionPause Action = iota
	ActionToggleGrid
	ActionToggleHUD
	ActionRestart
	actionCount
)

// Bindings maps movement directions and actions to keys
type Bindings struct {
	Up, Down, Left, Right []ebiten.Key
	Actions               map[Action][]ebiten.Key
}

// DefaultBindings is WASD plus the arrow keys.
func DefaultBindings() Bindings {
	return Bindings{
		Up:    []ebiten.Key{ebiten.KeyW, ebiten.KeyUp},
		Down:  []ebiten.Key{ebiten.KeyS, ebiten.KeyDown},
		Left:  []ebiten.Key{ebiten.KeyA, ebiten.KeyLeft},
		Right: []ebiten.Key{ebiten.KeyD, ebiten.KeyRight},
		Actions: map[Action][]ebiten.Key{
			ActionPause:      {ebiten.KeyEscape, ebiten.KeyP},
			ActionToggleGrid: {ebiten.KeyG},
			ActionToggleHUD:  {ebiten.KeyH},
			ActionRestart:    {ebiten.KeyEnter},
		},
	}
}

// InputState tracks keyboard state per frame
type InputState struct {
	Bindings Bindings

	// Move is the steering direction, a unit vector or zero.
	Move core.Vec2

	just [actionCount]bool
}

func NewInputState() *InputState {
	return &InputState{Bindings: DefaultBindings()}
}

// Update should be called every frame
func (s *InputState) Update() {
	s.apply(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed)
}

// apply reads the bindings through the given key predicates.
func (s *InputState) apply(pressed, justPressed func(ebiten.Key) bool) {
	held := func(keys []ebiten.Key, f func(ebiten.Key) bool) bool {
		for _, k := range keys {
			if f(k) {
				return true
			}
		}
		return false
	}

	var dir core.Vec2
	if held(s.Bindings.Up, pressed) {
		dir.Y--
	}
	if held(s.Bindings.Down, pressed) {
		dir.Y++
	}
	if held(s.Bindings.Left, pressed) {
		dir.X--
	}
	if held(s.Bindings.Right, pressed) {
		dir.X++
	}
	s.Move = dir.Normalize()

	for a := Action(0); a < actionCount; a++ {
		s.just[a] = held(s.Bindings.Actions[a], justPressed)
	}
}

// JustPressed reports whether a was triggered this frame.
func (s *InputState) JustPressed(a Action) bool {
	return a < actionCount && s.just[a]
}
