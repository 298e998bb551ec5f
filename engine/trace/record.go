// Package trace turns simulation events into a flat, hashable and
// serialisable form: a running xxhash checksum for determinism checks and a
// msgpack replay log.
package trace

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/1siamBot/survivors-engine/engine/core"
)

// Record is the payload-independent form of one event. A and B hold the
// entity handles the event refers to, in payload field order.
type Record struct {
	Type  core.EventType `msgpack:"y"`
	Tick  uint64         `msgpack:"t"`
	A     uint64         `msgpack:"a,omitempty"`
	B     uint64         `msgpack:"b,omitempty"`
	Value float64        `msgpack:"v,omitempty"`
	Kind  uint8          `msgpack:"k,omitempty"`
	X     float64        `msgpack:"x,omitempty"`
	Y     float64        `msgpack:"z,omitempty"`
	Label string         `msgpack:"l,omitempty"`
}

// FromEvent flattens e. Unknown payloads keep only type and tick.
func FromEvent(e core.Event) Record {
	r := Record{Type: e.Type, Tick: e.Tick}
	switch p := e.Payload.(type) {
	case core.DamageEvent:
		r.A, r.B, r.Value, r.Kind = uint64(p.Target), uint64(p.Source), p.Amount, uint8(p.SourceCategory)
	case core.PickupEvent:
		r.A, r.B, r.Value, r.Kind = uint64(p.Target), uint64(p.Collector), p.Value, uint8(p.Item)
	case core.AttractionEvent:
		r.A, r.B, r.X, r.Y = uint64(p.Target), uint64(p.Toward), p.Direction.X, p.Direction.Y
	case core.ProjectileSpentEvent:
		r.A = uint64(p.Projectile)
	case core.EnemyDiedEvent:
		r.A, r.B, r.Value, r.X, r.Y, r.Label = uint64(p.Enemy), uint64(p.Killer), p.XP, p.Pos.X, p.Pos.Y, p.Kind
	case core.PlayerDiedEvent:
		r.A = uint64(p.Player)
	case core.LevelUpEvent:
		r.A, r.Value = uint64(p.Player), float64(p.Level)
	case core.WeaponFiredEvent:
		r.A, r.Value, r.Label = uint64(p.Player), float64(p.Level), string(p.Weapon)
	}
	return r
}

// Hasher folds records into a running 64-bit digest.
type Hasher struct {
	d   *xxhash.Digest
	buf []byte
}

func NewHasher() *Hasher {
	return &Hasher{d: xxhash.New(), buf: make([]byte, 0, 64)}
}

// Add hashes r. Floats are hashed by bit pattern.
func (h *Hasher) Add(r Record) {
	b := h.buf[:0]
	b = binary.LittleEndian.AppendUint16(b, uint16(r.Type))
	b = binary.LittleEndian.AppendUint64(b, r.Tick)
	b = binary.LittleEndian.AppendUint64(b, r.A)
	b = binary.LittleEndian.AppendUint64(b, r.B)
	b = binary.LittleEndian.AppendUint64(b, math.Float64bits(r.Value))
	b = append(b, r.Kind)
	b = binary.LittleEndian.AppendUint64(b, math.Float64bits(r.X))
	b = binary.LittleEndian.AppendUint64(b, math.Float64bits(r.Y))
	b = binary.LittleEndian.AppendUint32(b, uint32(len(r.Label)))
	b = append(b, r.Label...)
	h.buf = b
	_, _ = h.d.Write(b)
}

// AddEvent is Add(FromEvent(e)).
func (h *Hasher) AddEvent(e core.Event) {
	h.Add(FromEvent(e))
}

func (h *Hasher) Sum() uint64 { return h.d.Sum64() }

func (h *Hasher) Reset() { h.d.Reset() }
