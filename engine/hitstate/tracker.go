package hitstate

import (
	"github.com/1siamBot/survivors-engine/engine/core"
)

// Tracker answers hit-gating questions by looking up the record attached to
// the hazard entity.
type Tracker struct {
	World *core.World
}

func NewTracker(w *core.World) *Tracker {
	return &Tracker{World: w}
}

// Attach gives hazard a fresh record, replacing any previous one.
func (t *Tracker) Attach(hazard core.EntityID, r Record) {
	t.World.Attach(hazard, r)
}

func (t *Tracker) record(hazard core.EntityID) Record {
	if !t.World.Alive(hazard) {
		return nil
	}
	r, _ := t.World.Get(hazard, core.CompHitRecord).(Record)
	return r
}

// CanHit is false for hazards that are gone or carry no record.
func (t *Tracker) CanHit(hazard, target core.EntityID) bool {
	r := t.record(hazard)
	return r != nil && r.CanHit(target)
}

// RecordHit notes that hazard just damaged target.
func (t *Tracker) RecordHit(hazard, target core.EntityID, cooldown float64) {
	if r := t.record(hazard); r != nil {
		r.RecordHit(target, cooldown)
	}
}

// Tick advances every cooldown by dt.
func (t *Tracker) Tick(dt float64) {
	for _, id := range t.World.Query(core.CompHitRecord) {
		if r := t.record(id); r != nil {
			r.Tick(dt)
		}
	}
}

// Records counts hazards that still hold a record, dead-but-unswept ones
// included.
func (t *Tracker) Records() int {
	return t.World.CountComponent(core.CompHitRecord)
}

// TrackerSystem runs Tick once per simulation step, ahead of the resolvers.
type TrackerSystem struct {
	Tracker *Tracker
	Prio    int
}

func (s *TrackerSystem) Priority() int { return s.Prio }

func (s *TrackerSystem) Update(_ *core.World, dt float64) {
	s.Tracker.Tick(dt)
}
