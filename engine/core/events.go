package core

// Event represents a game event
type Event struct {
	Type    EventType
	Tick    uint64
	Payload interface{}
}

type EventType uint16

const (
	EvtDamage EventType = iota
	EvtPickup
	EvtAttraction
	EvtProjectileSpent
	EvtEnemyDied
	EvtPlayerDied
	EvtLevelUp
	EvtWeaponFired
)

func (t EventType) String() string {
	switch t {
	case EvtDamage:
		return "damage"
	case EvtPickup:
		return "pickup"
	case EvtAttraction:
		return "attraction"
	case EvtProjectileSpent:
		return "projectile_spent"
	case EvtEnemyDied:
		return "enemy_died"
	case EvtPlayerDied:
		return "player_died"
	case EvtLevelUp:
		return "level_up"
	case EvtWeaponFired:
		return "weapon_fired"
	}
	return "unknown"
}

// Interaction is the proximity category that produced an event
type Interaction uint8

const (
	InteractProjectile Interaction = iota
	InteractAura
	InteractOrbit
	InteractContact
	InteractPickup
	InteractSweep
)

func (i Interaction) String() string {
	switch i {
	case InteractProjectile:
		return "projectile"
	case InteractAura:
		return "aura"
	case InteractOrbit:
		return "orbit"
	case InteractContact:
		return "contact"
	case InteractPickup:
		return "pickup"
	case InteractSweep:
		return "sweep"
	}
	return "unknown"
}

// DamageEvent asks the consumer to remove Amount hit points from Target.
type DamageEvent struct {
	Target         EntityID
	Source         EntityID
	Amount         float64
	SourceCategory Interaction
}

// PickupEvent reports that Collector absorbed the pickup Target.
type PickupEvent struct {
	Target    EntityID
	Collector EntityID
	Item      ItemKind
	Value     float64
}

// AttractionEvent reports that pickup Target should move along Direction
// (unit vector) toward Toward.
type AttractionEvent struct {
	Target    EntityID
	Toward    EntityID
	Direction Vec2
}

// ProjectileSpentEvent marks a projectile whose pierce count is exhausted.
type ProjectileSpentEvent struct {
	Projectile EntityID
}

type EnemyDiedEvent struct {
	Enemy  EntityID
	Kind   string
	Pos    Vec2
	XP     float64
	Killer EntityID
}

type PlayerDiedEvent struct {
	Player EntityID
}

type LevelUpEvent struct {
	Player EntityID
	Level  int
}

type WeaponFiredEvent struct {
	Player EntityID
	Weapon WeaponKind
	Level  int
}

// EventSink receives emitted events. Delivery is up to the implementation.
type EventSink interface {
	Emit(e Event)
}

// EventStream is a plain ordered buffer of events.
type EventStream struct {
	events []Event
}

func (s *EventStream) Emit(e Event) {
	s.events = append(s.events, e)
}

// Events returns the buffered events without consuming them.
func (s *EventStream) Events() []Event {
	return s.events
}

func (s *EventStream) Len() int {
	return len(s.events)
}

// DrainTo forwards every buffered event to sink in order and empties the
// stream.
func (s *EventStream) DrainTo(sink EventSink) {
	for _, e := range s.events {
		sink.Emit(e)
	}
	clear(s.events)
	s.events = s.events[:0]
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	taps      []EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Tap registers a handler that sees every event, before typed listeners.
func (eb *EventBus) Tap(h EventHandler) {
	eb.taps = append(eb.taps, h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int {
	return len(eb.queue)
}

// Dispatch processes all queued events. Events emitted by handlers are
// appended to the queue and processed in the same call.
func (eb *EventBus) Dispatch() {
	for i := 0; i < len(eb.queue); i++ {
		e := eb.queue[i]
		for _, h := range eb.taps {
			h(e)
		}
		for _, h := range eb.listeners[e.Type] {
			h(e)
		}
	}
	clear(eb.queue)
	eb.queue = eb.queue[:0]
}
