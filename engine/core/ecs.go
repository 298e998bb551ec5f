package core

// EntityID is a stable handle for a simulated object. Zero means "no entity".
type EntityID uint64

// Category tags every entity with exactly one kind. Queries take a mask.
type Category uint8

const (
	CatPlayer Category = 1 << iota
	CatEnemy
	CatProjectile
	CatPickup
	CatHazard

	CatNone Category = 0
	CatAll  Category = CatPlayer | CatEnemy | CatProjectile | CatPickup | CatHazard
)

// Has reports whether c intersects mask.
func (c Category) Has(mask Category) bool { return c&mask != 0 }

func (c Category) String() string {
	switch c {
	case CatPlayer:
		return "player"
	case CatEnemy:
		return "enemy"
	case CatProjectile:
		return "projectile"
	case CatPickup:
		return "pickup"
	case CatHazard:
		return "hazard"
	case CatNone:
		return "none"
	case CatAll:
		return "all"
	}
	return "mixed"
}

// Component is a marker interface for all components
type Component interface {
	Type() ComponentType
}

// ComponentType identifies the type of component
type ComponentType uint32

const (
	CompPosition ComponentType = iota
	CompVelocity
	CompCollider
	CompHealth
	CompPlayer
	CompEnemy
	CompProjectile
	CompAura
	CompOrbit
	CompPickup
	CompAttracted
	CompInvincible
	CompWeapons
	CompChase
	CompHitRecord
	CompLifetime
	CompMax
)

type entity struct {
	cat   Category
	comps [CompMax]Component
	dead  bool
}

// World holds all entities and their components. Iteration is always in
// spawn order so that every tick is reproducible.
type World struct {
	entities  map[EntityID]*entity
	order     []EntityID
	systems   []System
	toRemove  []EntityID
	nextID    EntityID
	TickCount uint64
	TickRate  float64 // fixed ticks per second
}

// System processes entities each tick
type System interface {
	Update(w *World, dt float64)
	Priority() int
}

// NewWorld creates a new ECS world
func NewWorld(tickRate float64) *World {
	return &World{
		entities: make(map[EntityID]*entity),
		TickRate: tickRate,
	}
}

// Spawn creates a new entity of the given category and returns its ID
func (w *World) Spawn(cat Category) EntityID {
	w.nextID++
	id := w.nextID
	w.entities[id] = &entity{cat: cat}
	w.order = append(w.order, id)
	return id
}

// Attach adds a component to an entity
func (w *World) Attach(id EntityID, c Component) {
	if e, ok := w.entities[id]; ok {
		e.comps[c.Type()] = c
	}
}

// Detach removes a component from an entity
func (w *World) Detach(id EntityID, ct ComponentType) {
	if e, ok := w.entities[id]; ok {
		e.comps[ct] = nil
	}
}

// Get returns a component for an entity, or nil. Components of destroyed
// entities stay readable until the end-of-tick sweep.
func (w *World) Get(id EntityID, ct ComponentType) Component {
	if e, ok := w.entities[id]; ok {
		return e.comps[ct]
	}
	return nil
}

// Has checks if an entity has a component
func (w *World) Has(id EntityID, ct ComponentType) bool {
	return w.Get(id, ct) != nil
}

// Category returns the entity's category, or CatNone for unknown handles.
func (w *World) Category(id EntityID) Category {
	if e, ok := w.entities[id]; ok {
		return e.cat
	}
	return CatNone
}

// Alive is false for unknown handles and for entities destroyed this tick.
func (w *World) Alive(id EntityID) bool {
	e, ok := w.entities[id]
	return ok && !e.dead
}

// Destroy marks an entity for removal. It stops being Alive immediately and
// is swept, components included, after the last system of the tick.
func (w *World) Destroy(id EntityID) {
	e, ok := w.entities[id]
	if !ok || e.dead {
		return
	}
	e.dead = true
	w.toRemove = append(w.toRemove, id)
}

// Body is the position/radius lookup used by every proximity query. It
// misses for dead entities and for entities without Position and Collider.
func (w *World) Body(id EntityID) (Body, bool) {
	e, ok := w.entities[id]
	if !ok || e.dead {
		return Body{}, false
	}
	pos, ok := e.comps[CompPosition].(*Position)
	if !ok {
		return Body{}, false
	}
	col, ok := e.comps[CompCollider].(*Collider)
	if !ok {
		return Body{}, false
	}
	return Body{Pos: pos.Vec(), Radius: col.Radius}, true
}

// Query returns all alive entity IDs that have ALL specified component
// types, in spawn order
func (w *World) Query(types ...ComponentType) []EntityID {
	var result []EntityID
	for _, id := range w.order {
		e := w.entities[id]
		if e.dead {
			continue
		}
		match := true
		for _, t := range types {
			if e.comps[t] == nil {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	return result
}

// QueryCategory returns all alive entities whose category is in mask, in
// spawn order.
func (w *World) QueryCategory(mask Category) []EntityID {
	var result []EntityID
	for _, id := range w.order {
		e := w.entities[id]
		if !e.dead && e.cat.Has(mask) {
			result = append(result, id)
		}
	}
	return result
}

// CountCategory counts alive entities whose category is in mask.
func (w *World) CountCategory(mask Category) int {
	n := 0
	for _, id := range w.order {
		e := w.entities[id]
		if !e.dead && e.cat.Has(mask) {
			n++
		}
	}
	return n
}

// CountComponent counts entities holding ct, including destroyed ones that
// have not been swept yet.
func (w *World) CountComponent(ct ComponentType) int {
	n := 0
	for _, e := range w.entities {
		if e.comps[ct] != nil {
			n++
		}
	}
	return n
}

// AddSystem registers a system. Systems with equal priority keep
// registration order.
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	// Sort by priority (simple insertion)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// Systems returns the registered systems in execution order.
func (w *World) Systems() []System {
	return w.systems
}

// Tick runs all systems once
func (w *World) Tick(dt float64) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
	w.sweep()
	w.TickCount++
}

func (w *World) sweep() {
	if len(w.toRemove) == 0 {
		return
	}
	for _, id := range w.toRemove {
		delete(w.entities, id)
	}
	w.toRemove = w.toRemove[:0]

	kept := w.order[:0]
	for _, id := range w.order {
		if _, ok := w.entities[id]; ok {
			kept = append(kept, id)
		}
	}
	clear(w.order[len(kept):])
	w.order = kept
}

// EntityCount returns the number of alive entities
func (w *World) EntityCount() int {
	return len(w.entities) - len(w.toRemove)
}
