package hitstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/survivors-engine/engine/core"
)

func TestPierceListIsPermanent(t *testing.T) {
	p := NewPierceList(2)
	assert.True(t, p.CanHit(5))

	p.RecordHit(5, 0)
	p.RecordHit(5, 0)
	p.Tick(100)

	assert.False(t, p.CanHit(5))
	assert.True(t, p.CanHit(6))
	assert.Equal(t, 1, p.Len())
}

func TestCooldownMapExpiresExactlyOnTheInterval(t *testing.T) {
	c := NewCooldownMap()
	c.RecordHit(3, 1.0)
	require.False(t, c.CanHit(3))

	for i := 0; i < 3; i++ {
		c.Tick(0.25)
		assert.False(t, c.CanHit(3), "after %d quarter ticks", i+1)
	}
	c.Tick(0.25)
	assert.True(t, c.CanHit(3))
	assert.Zero(t, c.Len(), "expired entries are released")
	assert.Zero(t, c.Remaining(3))
}

func TestCooldownMapRecordHitResets(t *testing.T) {
	c := NewCooldownMap()
	c.RecordHit(1, 1.0)
	c.Tick(0.75)
	c.RecordHit(1, 1.0)
	assert.Equal(t, 1.0, c.Remaining(1))

	c.RecordHit(1, 0)
	assert.True(t, c.CanHit(1))
}

// Simulates the per-tick protocol: Tick first, then gate and record.
func TestCooldownGatingProducesFloorDOverTPlusOneHits(t *testing.T) {
	const dt, interval = 0.25, 1.0
	cases := []struct {
		ticks int
		want  int
	}{
		{1, 1},   // D = 0
		{4, 1},   // D = 0.75
		{5, 2},   // D = 1.0
		{9, 3},   // D = 2.0
		{17, 5},  // D = 4.0
		{20, 5},  // D = 4.75
		{41, 11}, // D = 10
	}
	for _, tc := range cases {
		w := core.NewWorld(4)
		tr := NewTracker(w)
		hazard := w.Spawn(core.CatHazard)
		tr.Attach(hazard, NewCooldownMap())
		const enemy = core.EntityID(99)

		hits := 0
		for i := 0; i < tc.ticks; i++ {
			tr.Tick(dt)
			if tr.CanHit(hazard, enemy) {
				tr.RecordHit(hazard, enemy, interval)
				hits++
			}
		}
		assert.Equal(t, tc.want, hits, "ticks=%d", tc.ticks)
	}
}

func TestCooldownGatingAtSixtyHertz(t *testing.T) {
	const dt = 1.0 / 60
	cases := []struct {
		interval float64
		ticks    int
		want     int
	}{
		{0.5, 30, 1},   // D just under 0.5
		{0.5, 31, 2},   // D = 0.5
		{0.5, 601, 21}, // D = 10
		{0.1, 7, 2},    // D = 0.1
		{0.1, 601, 101},
	}
	for _, tc := range cases {
		w := core.NewWorld(60)
		tr := NewTracker(w)
		hazard := w.Spawn(core.CatHazard)
		tr.Attach(hazard, NewCooldownMap())
		const enemy = core.EntityID(99)

		hits := 0
		for i := 0; i < tc.ticks; i++ {
			tr.Tick(dt)
			if tr.CanHit(hazard, enemy) {
				tr.RecordHit(hazard, enemy, tc.interval)
				hits++
			}
		}
		assert.Equal(t, tc.want, hits, "interval=%v ticks=%d", tc.interval, tc.ticks)
	}
}

func TestTrackerRefusesUnknownAndDeadHazards(t *testing.T) {
	w := core.NewWorld(60)
	tr := NewTracker(w)
	bare := w.Spawn(core.CatHazard)
	assert.False(t, tr.CanHit(bare, 1), "no record attached")
	assert.False(t, tr.CanHit(12345, 1))

	h := w.Spawn(core.CatProjectile)
	tr.Attach(h, NewPierceList(1))
	require.True(t, tr.CanHit(h, 1))
	w.Destroy(h)
	assert.False(t, tr.CanHit(h, 1))
	tr.RecordHit(h, 1, 0)
}

func TestDestroyedHazardsLeaveNoRecords(t *testing.T) {
	w := core.NewWorld(60)
	tr := NewTracker(w)
	w.AddSystem(&TrackerSystem{Tracker: tr, Prio: 20})

	var hazards []core.EntityID
	for i := 0; i < 10; i++ {
		id := w.Spawn(core.CatHazard)
		if i%2 == 0 {
			tr.Attach(id, NewCooldownMap())
		} else {
			tr.Attach(id, NewPierceList(3))
		}
		tr.RecordHit(id, core.EntityID(1000+i), 0.5)
		hazards = append(hazards, id)
	}
	require.Equal(t, 10, tr.Records())

	for _, id := range hazards[:7] {
		w.Destroy(id)
	}
	assert.Equal(t, 10, tr.Records(), "records live until the sweep")

	w.Tick(1.0 / 60)
	assert.Equal(t, 3, tr.Records())
	for _, id := range hazards[:7] {
		assert.Nil(t, w.Get(id, core.CompHitRecord))
	}
}
