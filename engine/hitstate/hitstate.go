// Package hitstate keeps the per-hazard bookkeeping that stops the same
// attack from damaging the same target more often than allowed.
//
// Records are components attached to the hazard entity itself, so they are
// dropped together with the hazard when the world sweeps it.
package hitstate

import (
	"github.com/1siamBot/survivors-engine/engine/core"
)

// Record is the hit history of one hazard.
type Record interface {
	core.Component
	CanHit(target core.EntityID) bool
	RecordHit(target core.EntityID, cooldown float64)
	Tick(dt float64)
	Len() int
}

// PierceList remembers every target a projectile has damaged. Entries are
// never removed while the projectile lives.
type PierceList struct {
	hit []core.EntityID
}

// NewPierceList sizes the list for the expected pierce count.
func NewPierceList(capacity int) *PierceList {
	if capacity < 0 {
		capacity = 0
	}
	return &PierceList{hit: make([]core.EntityID, 0, capacity)}
}

func (p *PierceList) Type() core.ComponentType { return core.CompHitRecord }

func (p *PierceList) CanHit(target core.EntityID) bool {
	for _, id := range p.hit {
		if id == target {
			return false
		}
	}
	return true
}

func (p *PierceList) RecordHit(target core.EntityID, _ float64) {
	if p.CanHit(target) {
		p.hit = append(p.hit, target)
	}
}

func (p *PierceList) Tick(float64) {}

func (p *PierceList) Len() int { return len(p.hit) }

// CooldownMap tracks, per target, the seconds left before a persistent
// hazard may damage it again. An entry that runs out is released.
type CooldownMap struct {
	remaining map[core.EntityID]float64
}

func NewCooldownMap() *CooldownMap {
	return &CooldownMap{remaining: make(map[core.EntityID]float64)}
}

func (c *CooldownMap) Type() core.ComponentType { return core.CompHitRecord }

func (c *CooldownMap) CanHit(target core.EntityID) bool {
	left, ok := c.remaining[target]
	return !ok || core.Expired(left)
}

// RecordHit (re)starts the target's cooldown.
func (c *CooldownMap) RecordHit(target core.EntityID, cooldown float64) {
	if cooldown <= 0 {
		delete(c.remaining, target)
		return
	}
	c.remaining[target] = cooldown
}

func (c *CooldownMap) Tick(dt float64) {
	for id, left := range c.remaining {
		left -= dt
		if core.Expired(left) {
			delete(c.remaining, id)
			continue
		}
		c.remaining[id] = left
	}
}

func (c *CooldownMap) Len() int { return len(c.remaining) }

// Remaining returns the cooldown left for target, zero when none.
func (c *CooldownMap) Remaining(target core.EntityID) float64 {
	return c.remaining[target]
}
