package player

import (
	"math"

	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/event"
	"github.com/vovakirdan/lumin/internal/game/world"
)

// TakeDamage subtracts HP unless the player is invulnerable.
// Running out of HP respawns the player at full health.
// Returns true if the hit applied.
func (c *Controller) TakeDamage(amount int) bool {
	p := c.P
	if p.InvulnerableTimer > 0 || amount <= 0 {
		return false
	}

	p.HP -= amount
	p.InvulnerableTimer = c.cfg.Player.InvulnerableTicks
	center := p.Box.Center()
	c.bus.Emit(event.Event{Kind: event.Impact, X: center.X, Y: center.Y, Intensity: 8})

	if p.HP <= 0 {
		c.Respawn()
	}
	return true
}

// Burst starts the burst cooldown. Returns false while it is cooling down.
// The caller reveals hidden platforms.
func (c *Controller) Burst() bool {
	p := c.P
	if p.BurstCooldown > 0 {
		return false
	}
	p.BurstCooldown = c.cfg.Abilities.BurstCooldown
	center := p.Box.Center()
	c.bus.At(event.Burst, center.X, center.Y)
	return true
}

// Fire shoots a projectile toward aim, or along the facing direction when
// aim is nil. The projectile is added to objs. Returns nil without the
// weapon or while the matching cooldown runs.
func (c *Controller) Fire(aim *core.Vec, overcharged bool, objs *world.Objects) *world.Projectile {
	p := c.P
	if !p.HasWeapon {
		return nil
	}

	ab := c.cfg.Abilities
	shot := ab.Projectile
	if overcharged {
		if p.OverchargeCooldown > 0 {
			return nil
		}
		p.OverchargeCooldown = ab.OverchargeCooldown
		shot = ab.Overcharge
	} else {
		if p.WeaponCooldown > 0 {
			return nil
		}
		p.WeaponCooldown = ab.WeaponCooldown
	}

	pivot := p.Box.Center()
	angle := 0.0
	if p.Facing == FacingLeft {
		angle = math.Pi
	}
	if aim != nil {
		angle = math.Atan2(aim.Y-pivot.Y, aim.X-pivot.X)
	}
	dx, dy := math.Cos(angle), math.Sin(angle)
	start := core.Vec{X: pivot.X + dx*ab.BarrelOffset, Y: pivot.Y + dy*ab.BarrelOffset}

	proj := &world.Projectile{
		Base: world.Base{
			ID:  objs.NextID(),
			Box: core.NewRect(start.X-shot.Width/2, start.Y-shot.Height/2, shot.Width, shot.Height),
		},
		VX:          dx * shot.Speed,
		VY:          dy * shot.Speed,
		Overcharged: overcharged,
	}
	objs.Add(proj)
	c.bus.Emit(event.Event{Kind: event.Shoot, X: start.X, Y: start.Y, ID: proj.ID})
	return proj
}

// Scan returns every object within interaction range, in collection order,
// and caches the last interactable one in Nearby.
func (c *Controller) Scan(objs *world.Objects) []world.Object {
	var touching []world.Object
	c.Nearby = nil
	for _, obj := range objs.All() {
		if !core.Overlaps(c.P.Box, world.Box(obj), core.InteractionTolerance) {
			continue
		}
		touching = append(touching, obj)
		if c.interactable(obj) {
			c.Nearby = obj
		}
	}
	return touching
}

// interactable reports whether obj warrants an interaction prompt.
func (c *Controller) interactable(obj world.Object) bool {
	p := c.P
	switch v := obj.(type) {
	case *world.Door:
		return !v.Triggered && !v.Linked && !v.Timed && !p.HasKey
	case *world.Checkpoint:
		return true
	case *world.WeaponPickup:
		return !p.HasWeapon
	case *world.DoubleJumpRune:
		return !p.HasDoubleJump
	default:
		return false
	}
}

// Interact consumes the interact key and returns the cached nearby object
// it acts on, or nil.
func (c *Controller) Interact(in *core.Input) world.Object {
	if !in.Take(core.KeyInteract) {
		return nil
	}
	return c.Nearby
}
