// Package player implements the player body: movement and collision
// resolution against the live object collection, jumps, damage with
// invulnerability frames, ability cooldowns and the interaction scan.
package player

import (
	"math"

	"github.com/vovakirdan/lumin/internal/config"
	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/event"
	"github.com/vovakirdan/lumin/internal/game/world"
)

// Facing is the horizontal direction the player looks at.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// Player is the plain state of the player. It is copied into snapshots.
type Player struct {
	Box      core.Rect
	VX, VY   float64
	OnGround bool
	Facing   Facing

	HP, MaxHP         int
	InvulnerableTimer int

	HasKey        bool
	HasDoubleJump bool
	HasWeapon     bool
	JumpCount     int

	BurstCooldown      int
	WeaponCooldown     int
	OverchargeCooldown int

	// Spawn is where the player returns on death: the level start or the
	// last checkpoint.
	Spawn core.Vec
}

// Controller mutates a Player according to input and the world.
type Controller struct {
	P *Player

	// Nearby is the interactable found by the last Scan, or nil.
	Nearby world.Object

	cfg config.LuminConfig
	bus *event.Bus
}

// New creates a controller for a fresh player standing at start.
func New(start core.Vec, cfg config.LuminConfig, bus *event.Bus) *Controller {
	p := &Player{
		Box:   core.NewRect(start.X, start.Y, cfg.Player.Width, cfg.Player.Height),
		HP:    cfg.Player.MaxHP,
		MaxHP: cfg.Player.MaxHP,
		Spawn: start,
	}
	return &Controller{P: p, cfg: cfg, bus: bus}
}

// Tick counts invulnerability and every cooldown down toward zero.
func (c *Controller) Tick() {
	p := c.P
	dec(&p.InvulnerableTimer)
	dec(&p.WeaponCooldown)
	dec(&p.BurstCooldown)
	dec(&p.OverchargeCooldown)
}

func dec(v *int) {
	if *v > 0 {
		*v--
	}
}

// MoveX applies horizontal input, integrates x and resolves against
// solids. Pushable blocks touched on the way get shoved.
func (c *Controller) MoveX(in *core.Input, objs *world.Objects) {
	p := c.P
	phys := c.cfg.Physics

	switch {
	case in.Left():
		p.VX = -phys.MoveSpeed
		p.Facing = FacingLeft
	case in.Right():
		p.VX = phys.MoveSpeed
		p.Facing = FacingRight
	default:
		p.VX *= phys.Friction
		if math.Abs(p.VX) < phys.StopThreshold {
			p.VX = 0
		}
	}
	p.Box.X += p.VX

	for _, obj := range objs.All() {
		if !world.BlocksPlayerX(obj) {
			continue
		}
		box := world.Box(obj)
		if !core.Collides(p.Box, box) {
			continue
		}
		if block, ok := obj.(*world.PushableBlock); ok {
			dir := -1.0
			if p.VX > 0 {
				dir = 1
			}
			block.VX += dir * phys.PushForce
			if p.OnGround {
				c.bus.At(event.Scrape, block.Box.X, block.Box.Bottom())
			}
		}
		if p.VX > 0 {
			p.Box.X = box.X - p.Box.W
		} else if p.VX < 0 {
			p.Box.X = box.Right()
		}
		p.VX = 0
	}
}

// MoveY applies gravity and jumps, integrates y and resolves landings and
// ceiling bumps. It returns the object landed on this tick, if any.
//
// A landing needs the player moving down, horizontally aligned with the
// surface, with the previous bottom at or above the surface top and the
// new bottom at or below it. An exact touch therefore counts as a landing.
func (c *Controller) MoveY(in *core.Input, objs *world.Objects) world.Object {
	p := c.P
	phys := c.cfg.Physics
	wasGrounded := p.OnGround

	p.VY = math.Min(p.VY+phys.Gravity, phys.MaxFallSpeed)
	if in.Take(core.JumpKeys...) {
		c.jump()
	}

	prev := p.Box
	p.Box.Y += p.VY
	p.OnGround = false

	var landed world.Object
	for _, obj := range objs.All() {
		if !world.SupportsPlayer(obj) {
			continue
		}
		box := world.Box(obj)
		if !core.HorizontallyAligned(p.Box, box) {
			continue
		}
		switch {
		case p.VY >= 0 && prev.Bottom() <= box.Y && p.Box.Bottom() >= box.Y:
			p.Box.Y = box.Y - p.Box.H
			p.OnGround = true
			p.VY = 0
			p.JumpCount = 0
			landed = obj
		case p.VY < 0 && !world.OneWay(obj) && prev.Y >= box.Bottom() && p.Box.Y <= box.Bottom():
			p.Box.Y = box.Bottom()
			p.VY = 0
		}
	}

	if p.OnGround && !wasGrounded {
		c.bus.At(event.Land, p.Box.Center().X, p.Box.Bottom())
	}
	return landed
}

func (c *Controller) jump() {
	p := c.P
	phys := c.cfg.Physics
	feet := p.Box.Center().X

	switch {
	case p.OnGround:
		p.VY = phys.JumpImpulse
		p.JumpCount = 1
		p.OnGround = false
		c.bus.At(event.Jump, feet, p.Box.Bottom())
	case p.HasDoubleJump && p.JumpCount < 2:
		p.VY = phys.JumpImpulse * phys.DoubleJumpFactor
		p.JumpCount = 2
		c.bus.At(event.DoubleJump, feet, p.Box.Bottom())
	}
}

// OutOfBounds reports whether the player fell past the world floor.
func (c *Controller) OutOfBounds() bool {
	return c.P.Box.Y > c.cfg.World.Height+c.cfg.World.FallLimit
}

// ResetTo moves the player to pos and stops it.
func (c *Controller) ResetTo(pos core.Vec) {
	p := c.P
	p.Box.X = pos.X
	p.Box.Y = pos.Y
	p.VX = 0
	p.VY = 0
}

// Respawn restores full HP and returns the player to its spawn point.
func (c *Controller) Respawn() {
	c.P.HP = c.P.MaxHP
	c.ResetTo(c.P.Spawn)
	c.bus.At(event.Respawn, c.P.Spawn.X, c.P.Spawn.Y)
}
