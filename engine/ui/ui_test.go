package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1siamBot/survivors-engine/engine/sim"
)

func TestClock(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want string
	}{
		{0, "0:00"},
		{59.9, "0:59"},
		{61, "1:01"},
		{1800, "30:00"},
		{-3, "0:00"},
	} {
		assert.Equal(t, tc.want, Clock(tc.in), "%v", tc.in)
	}
}

func TestStatusLine(t *testing.T) {
	st := sim.Stats{Elapsed: 125, Level: 4, Kills: 37, Gold: 2, Difficulty: 1.2}
	assert.Equal(t, "2:05  LV 4  KILLS 37  GOLD 2  x1.2", StatusLine(st))

	lines := DebugLines(sim.Stats{Tick: 9, Enemies: 300, HitRecords: 12})
	assert.Len(t, lines, 5)
	assert.Equal(t, "tick 9", lines[0])
	assert.Contains(t, lines[2], "enemies 300")
}
