package input

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/1siamBot/survivors-engine/engine/core"
)

func keys(ks ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, x := range ks {
			if x == k {
				return true
			}
		}
		return false
	}
}

func TestMoveIsNormalized(t *testing.T) {
	s := NewInputState()
	none := keys()

	s.apply(keys(ebiten.KeyW), none)
	assert.Equal(t, core.Vec2{Y: -1}, s.Move)

	s.apply(keys(ebiten.KeyD, ebiten.KeyDown), none)
	assert.InDelta(t, math.Sqrt2/2, s.Move.X, 1e-12)
	assert.InDelta(t, math.Sqrt2/2, s.Move.Y, 1e-12)

	s.apply(keys(ebiten.KeyA, ebiten.KeyRight), none)
	assert.Equal(t, core.Vec2{}, s.Move, "opposite keys cancel")
}

func TestActionsFireOnPress(t *testing.T) {
	s := NewInputState()
	s.apply(keys(), keys(ebiten.KeyG, ebiten.KeyP))

	assert.True(t, s.JustPressed(ActionToggleGrid))
	assert.True(t, s.JustPressed(ActionPause))
	assert.False(t, s.JustPressed(ActionToggleHUD))
	assert.False(t, s.JustPressed(actionCount))

	s.apply(keys(), keys())
	assert.False(t, s.JustPressed(ActionToggleGrid))
}
