// Package world holds the live object collection of a level and the
// per-tick passes that drive interactive objects: oscillators, pushable
// blocks, falling platforms, pressure plates, timed doors, hidden
// platforms and teleporters.
package world

import (
	"github.com/vovakirdan/lumin/internal/core"
)

// Kind identifies the concrete type of an Object.
type Kind int

const (
	KindPlatform Kind = iota
	KindDoor
	KindPressurePlate
	KindPushableBlock
	KindFallingPlatform
	KindTeleporter
	KindTrap
	KindPatrollingTrap
	KindBook
	KindKey
	KindFinalBook
	KindDoubleJumpRune
	KindTruthCrystal
	KindCheckpoint
	KindHiddenPlatform
	KindGuardian
	KindGuardianAttack
	KindWeaponPickup
	KindProjectile
)

var kindNames = [...]string{
	KindPlatform:        "platform",
	KindDoor:            "door",
	KindPressurePlate:   "pressure_plate",
	KindPushableBlock:   "pushable_block",
	KindFallingPlatform: "falling_platform",
	KindTeleporter:      "teleporter",
	KindTrap:            "trap",
	KindPatrollingTrap:  "patrolling_trap",
	KindBook:            "book",
	KindKey:             "key",
	KindFinalBook:       "final_book",
	KindDoubleJumpRune:  "double_jump_rune",
	KindTruthCrystal:    "truth_crystal",
	KindCheckpoint:      "checkpoint",
	KindHiddenPlatform:  "hidden_platform",
	KindGuardian:        "guardian",
	KindGuardianAttack:  "guardian_attack",
	KindWeaponPickup:    "weapon_pickup",
	KindProjectile:      "projectile",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind resolves a kind name as written in level files.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// Object is one entry of the live collection. Each kind is its own struct
// carrying only its own fields; passes dispatch with a type switch.
type Object interface {
	Common() *Base
	Kind() Kind
	Clone() Object
}

// Base holds the fields every object has.
type Base struct {
	ID  int
	Box core.Rect
}

// Common returns the shared fields. Embedding Base gives every kind this method.
func (b *Base) Common() *Base { return b }

// Motion makes an object oscillate between bounds.
// A zero speed component disables that axis.
type Motion struct {
	SpeedX, SpeedY float64
	MinX, MaxX     float64
	MinY, MaxY     float64
}

// AttackType is the pattern a guardian attack was spawned by.
type AttackType int

const (
	AttackOrb AttackType = iota
	AttackRune
	AttackBolt
)

func (a AttackType) String() string {
	switch a {
	case AttackOrb:
		return "orb"
	case AttackRune:
		return "rune"
	case AttackBolt:
		return "bolt"
	default:
		return "unknown"
	}
}

// Platform is static (or oscillating) solid ground.
type Platform struct {
	Base
	OneWay bool    // Can be jumped through from below
	Motion *Motion // Nil for static platforms
}

// Door blocks the way until triggered by a plate, the timed countdown or a key.
type Door struct {
	Base
	Triggered bool // Open
	Timed     bool // Open only while the timed countdown runs
	Linked    bool // Opened by a pressure plate, never by a key
}

// PressurePlate is pressed by the player's feet or a pushable block.
type PressurePlate struct {
	Base
	TargetID  int
	Timed     bool // Starts the shared countdown instead of holding the target open
	Triggered bool
}

// PushableBlock is a free body the player can shove.
type PushableBlock struct {
	Base
	VX, VY   float64
	OnGround bool
}

// FallingPlatform shakes after being landed on, then drops.
type FallingPlatform struct {
	Base
	ShakeTime int // Ticks between the landing and the drop
	FallDelay int // Remaining shake ticks; zero when idle
	Falling   bool
	VY        float64
}

// Shaking reports whether the platform is counting down to its drop.
func (f *FallingPlatform) Shaking() bool {
	return !f.Falling && f.FallDelay > 0
}

// Teleporter moves the player on top of its target object.
type Teleporter struct {
	Base
	TargetID int
}

// Trap resets the player and is consumed on contact.
type Trap struct {
	Base
}

// PatrollingTrap resets the player on contact and keeps moving.
type PatrollingTrap struct {
	Base
	Motion Motion
}

// Book is a collectible story fragment.
type Book struct {
	Base
	Fragment string
}

// Key opens unlinked doors.
type Key struct {
	Base
}

// FinalBook ends the campaign once revealed.
type FinalBook struct {
	Base
	Hidden bool
}

// DoubleJumpRune grants the double jump.
type DoubleJumpRune struct {
	Base
}

// TruthCrystal shields the guardian while any remains.
type TruthCrystal struct {
	Base
}

// Checkpoint moves the respawn point.
type Checkpoint struct {
	Base
}

// HiddenPlatform is solid only while revealed by the burst ability.
type HiddenPlatform struct {
	Base
	Hidden      bool
	RevealTimer int
}

// Guardian is the boss entity.
type Guardian struct {
	Base
	HP, MaxHP int
}

// GuardianAttack is a hazard spawned by the guardian.
type GuardianAttack struct {
	Base
	Attack AttackType
	VX, VY float64
}

// WeaponPickup grants the weapon when interacted with.
type WeaponPickup struct {
	Base
}

// Projectile is a shot fired by the player.
type Projectile struct {
	Base
	VX, VY      float64
	Overcharged bool
}

func (*Platform) Kind() Kind        { return KindPlatform }
func (*Door) Kind() Kind            { return KindDoor }
func (*PressurePlate) Kind() Kind   { return KindPressurePlate }
func (*PushableBlock) Kind() Kind   { return KindPushableBlock }
func (*FallingPlatform) Kind() Kind { return KindFallingPlatform }
func (*Teleporter) Kind() Kind      { return KindTeleporter }
func (*Trap) Kind() Kind            { return KindTrap }
func (*PatrollingTrap) Kind() Kind  { return KindPatrollingTrap }
func (*Book) Kind() Kind            { return KindBook }
func (*Key) Kind() Kind             { return KindKey }
func (*FinalBook) Kind() Kind       { return KindFinalBook }
func (*DoubleJumpRune) Kind() Kind  { return KindDoubleJumpRune }
func (*TruthCrystal) Kind() Kind    { return KindTruthCrystal }
func (*Checkpoint) Kind() Kind      { return KindCheckpoint }
func (*HiddenPlatform) Kind() Kind  { return KindHiddenPlatform }
func (*Guardian) Kind() Kind        { return KindGuardian }
func (*GuardianAttack) Kind() Kind  { return KindGuardianAttack }
func (*WeaponPickup) Kind() Kind    { return KindWeaponPickup }
func (*Projectile) Kind() Kind      { return KindProjectile }

func (o *Platform) Clone() Object {
	c := *o
	if o.Motion != nil {
		m := *o.Motion
		c.Motion = &m
	}
	return &c
}

func (o *Door) Clone() Object            { return ptr(*o) }
func (o *PressurePlate) Clone() Object   { return ptr(*o) }
func (o *PushableBlock) Clone() Object   { return ptr(*o) }
func (o *FallingPlatform) Clone() Object { return ptr(*o) }
func (o *Teleporter) Clone() Object      { return ptr(*o) }
func (o *Trap) Clone() Object            { return ptr(*o) }
func (o *PatrollingTrap) Clone() Object  { return ptr(*o) }
func (o *Book) Clone() Object            { return ptr(*o) }
func (o *Key) Clone() Object             { return ptr(*o) }
func (o *FinalBook) Clone() Object       { return ptr(*o) }
func (o *DoubleJumpRune) Clone() Object  { return ptr(*o) }
func (o *TruthCrystal) Clone() Object    { return ptr(*o) }
func (o *Checkpoint) Clone() Object      { return ptr(*o) }
func (o *HiddenPlatform) Clone() Object  { return ptr(*o) }
func (o *Guardian) Clone() Object        { return ptr(*o) }
func (o *GuardianAttack) Clone() Object  { return ptr(*o) }
func (o *WeaponPickup) Clone() Object    { return ptr(*o) }
func (o *Projectile) Clone() Object      { return ptr(*o) }

func ptr[T any](v T) *T { return &v }

// ID returns the object's id.
func ID(o Object) int { return o.Common().ID }

// Box returns the object's bounding box.
func Box(o Object) core.Rect { return o.Common().Box }

// BlocksPlayerX reports whether the object stops horizontal player movement.
func BlocksPlayerX(o Object) bool {
	switch v := o.(type) {
	case *Platform, *PushableBlock:
		return true
	case *Door:
		return !v.Triggered
	default:
		return false
	}
}

// SupportsPlayer reports whether the player can land on or bump into the object vertically.
func SupportsPlayer(o Object) bool {
	switch v := o.(type) {
	case *Platform, *FallingPlatform, *PushableBlock:
		return true
	case *Door:
		return !v.Triggered
	case *HiddenPlatform:
		return !v.Hidden
	default:
		return false
	}
}

// OneWay reports whether the object can be passed from below.
func OneWay(o Object) bool {
	p, ok := o.(*Platform)
	return ok && p.OneWay
}
