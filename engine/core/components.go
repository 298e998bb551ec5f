package core

// ---- Position & Motion ----

// Position represents a world position
type Position struct {
	X, Y   float64
	Facing float64 // direction in radians (0 = east)
}

func (p *Position) Type() ComponentType { return CompPosition }

func (p *Position) Vec() Vec2 { return Vec2{p.X, p.Y} }

func (p *Position) Set(v Vec2) {
	p.X = v.X
	p.Y = v.Y
}

// DistanceTo returns euclidean distance to another position
func (p *Position) DistanceTo(other *Position) float64 {
	return p.Vec().Sub(other.Vec()).Len()
}

// Velocity is straight-line motion in units per second
type Velocity struct {
	X, Y float64
}

func (v *Velocity) Type() ComponentType { return CompVelocity }

func (v *Velocity) Vec() Vec2 { return Vec2{v.X, v.Y} }

// Chase moves an entity straight at the nearest player
type Chase struct {
	Speed float64
}

func (c *Chase) Type() ComponentType { return CompChase }

// Collider is the circle used by every proximity test
type Collider struct {
	Radius float64
}

func (c *Collider) Type() ComponentType { return CompCollider }

// ---- Health & Player ----

// Health represents hit points
type Health struct {
	Current float64
	Max     float64
}

func (h *Health) Type() ComponentType { return CompHealth }

func (h *Health) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

// Dead reports whether the entity has no hit points left
func (h *Health) Dead() bool { return h.Current <= 0 }

// PlayerStats holds the player's pickup radii and progression
type PlayerStats struct {
	AttractionRadius float64 // pickups closer than this start moving
	AbsorptionRadius float64 // pickups closer than this are collected
	AttractSpeed     float64
	Invincibility    float64 // seconds granted after a contact hit
	DamageMult       float64
	AreaMult         float64
	XP               float64
	XPToNext         float64
	Level            int
	Kills            int
	Gold             int
}

func (p *PlayerStats) Type() ComponentType { return CompPlayer }

// Invincible is present while the player ignores contact damage
type Invincible struct {
	Remaining float64
}

func (i *Invincible) Type() ComponentType { return CompInvincible }

// ---- Enemies ----

// Enemy holds per-kind contact damage and rewards
type Enemy struct {
	Kind   string
	Damage float64 // contact damage per hit on the player
	XP     float64
	Boss   bool
}

func (e *Enemy) Type() ComponentType { return CompEnemy }

// ---- Weapons & Hazards ----

// WeaponKind names a weapon behaviour
type WeaponKind string

const (
	WeaponMagicWand WeaponKind = "magic_wand"
	WeaponKnife     WeaponKind = "knife"
	WeaponFireWand  WeaponKind = "fire_wand"
	WeaponWhip      WeaponKind = "whip"
	WeaponGarlic    WeaponKind = "garlic"
	WeaponBible     WeaponKind = "king_bible"
)

// Projectile represents a moving bullet. Pierce is the number of distinct
// enemies it may still damage.
type Projectile struct {
	Source EntityID
	Weapon WeaponKind
	Damage float64
	Pierce int
}

func (p *Projectile) Type() ComponentType { return CompProjectile }

// Aura is a damage volume that follows its owner
type Aura struct {
	Owner    EntityID
	Damage   float64
	Interval float64 // seconds before the same enemy can be hit again
}

func (a *Aura) Type() ComponentType { return CompAura }

// Orbit is a damage body circling its owner
type Orbit struct {
	Owner       EntityID
	Damage      float64
	Interval    float64
	OrbitRadius float64
	Speed       float64 // radians per second
	Angle       float64
}

func (o *Orbit) Type() ComponentType { return CompOrbit }

// Lifetime destroys its entity when Remaining runs out
type Lifetime struct {
	Remaining float64
}

func (l *Lifetime) Type() ComponentType { return CompLifetime }

// WeaponSlot is one equipped weapon and its firing timer
type WeaponSlot struct {
	Kind        WeaponKind
	Level       int
	CooldownNow float64
	Side        float64    // whip swing side, +1 right / -1 left
	Hazards     []EntityID // live auras and orbits spawned by this slot
}

// Weapons is the loadout of a player
type Weapons struct {
	Slots []*WeaponSlot
}

func (w *Weapons) Type() ComponentType { return CompWeapons }

// ---- Pickups ----

// ItemKind identifies what a pickup grants
type ItemKind uint8

const (
	ItemXPGem ItemKind = iota
	ItemGold
	ItemHeal
)

func (k ItemKind) String() string {
	switch k {
	case ItemXPGem:
		return "xp_gem"
	case ItemGold:
		return "gold"
	case ItemHeal:
		return "heal"
	}
	return "unknown"
}

// Pickup is a collectible
type Pickup struct {
	Item  ItemKind
	Value float64
}

func (p *Pickup) Type() ComponentType { return CompPickup }

// Attracted marks a pickup being pulled toward a player
type Attracted struct {
	Toward EntityID
	Speed  float64
}

func (a *Attracted) Type() ComponentType { return CompAttracted }
