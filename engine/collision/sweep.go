package collision

import (
	"math"

	"github.com/1siamBot/survivors-engine/engine/core"
)

// Sweep is a one-shot melee swing to one side of its origin: a half-box
// reaching Range along X in direction Side (+1 or -1) and 0.6*Range
// up and down.
type Sweep struct {
	Source core.EntityID
	Origin core.Vec2
	Side   float64
	Range  float64
	Damage float64
}

// heightRatio is the box's vertical reach as a fraction of Range.
const heightRatio = 0.6

// Hits reports whether a target centred at p is inside the swing.
func (s Sweep) Hits(p core.Vec2) bool {
	rel := p.Sub(s.Origin)
	return rel.X*s.Side > 0 && rel.LenSq() < s.Range*s.Range && math.Abs(rel.Y) < s.Range*heightRatio
}

// ResolveSweep emits one damage event per enemy inside s, in candidate
// order, and returns how many were hit.
func ResolveSweep(f *Frame, s Sweep, sink core.EventSink) int {
	hits := 0
	for _, target := range f.Broad.Candidates(s.Origin, s.Range, core.CatEnemy, nil) {
		body, ok := f.World.Body(target)
		if !ok || !s.Hits(body.Pos) {
			continue
		}
		hits++
		sink.Emit(core.Event{Type: core.EvtDamage, Tick: f.Tick, Payload: core.DamageEvent{
			Target:         target,
			Source:         s.Source,
			Amount:         s.Damage,
			SourceCategory: core.InteractSweep,
		}})
	}
	return hits
}
