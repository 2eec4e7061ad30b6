package world

import (
	"math"

	"github.com/vovakirdan/lumin/internal/config"
	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/event"
)

// Graph runs the interactive object passes over a live collection.
// It owns the shared teleporter cooldown and the timed-puzzle countdown.
type Graph struct {
	Objects *Objects

	TeleportCooldown int
	PuzzleTimer      int

	cfg config.LuminConfig
	bus *event.Bus
}

// NewGraph creates a graph over the given collection.
func NewGraph(objs *Objects, cfg config.LuminConfig, bus *event.Bus) *Graph {
	return &Graph{Objects: objs, cfg: cfg, bus: bus}
}

// Tick counts the shared timers down toward zero.
func (g *Graph) Tick() {
	if g.TeleportCooldown > 0 {
		g.TeleportCooldown--
	}
	if g.PuzzleTimer > 0 {
		g.PuzzleTimer--
	}
}

// Oscillate advances every object with a Motion and bounces it off its bounds.
func (g *Graph) Oscillate() {
	for _, obj := range g.Objects.items {
		switch v := obj.(type) {
		case *Platform:
			if v.Motion != nil {
				v.Motion.step(&v.Box)
			}
		case *PatrollingTrap:
			v.Motion.step(&v.Box)
		}
	}
}

func (m *Motion) step(box *core.Rect) {
	if m.SpeedX != 0 {
		box.X += m.SpeedX
		if box.X <= m.MinX || box.Right() >= m.MaxX {
			m.SpeedX = -m.SpeedX
		}
	}
	if m.SpeedY != 0 {
		box.Y += m.SpeedY
		if box.Y <= m.MinY || box.Bottom() >= m.MaxY {
			m.SpeedY = -m.SpeedY
		}
	}
}

// DropFalling integrates falling platforms and removes those that left the world.
func (g *Graph) DropFalling() {
	limit := g.cfg.World.Height + g.cfg.World.DespawnMargin
	var gone []int
	for _, f := range Of[*FallingPlatform](g.Objects) {
		if !f.Falling {
			continue
		}
		f.VY += g.cfg.Physics.Gravity
		f.Box.Y += f.VY
		if f.Box.Y > limit {
			gone = append(gone, f.ID)
		}
	}
	for _, id := range gone {
		g.Objects.Remove(id)
	}
}

// StepBlocks runs free-body physics for pushable blocks.
// A block landing hard on a platform crushes any trap it overlaps.
func (g *Graph) StepBlocks() {
	phys := g.cfg.Physics
	for _, b := range Of[*PushableBlock](g.Objects) {
		b.OnGround = false
		b.VY = math.Min(b.VY+phys.Gravity, phys.MaxFallSpeed)
		b.Box.Y += b.VY

		for _, p := range Of[*Platform](g.Objects) {
			if !core.Collides(b.Box, p.Box) {
				continue
			}
			if b.VY > 1 {
				g.crushTraps(b)
			}
			if b.VY > 0 {
				b.Box.Y = p.Box.Y - b.Box.H
				b.OnGround = true
				b.VY = 0
			} else if b.VY < 0 {
				b.Box.Y = p.Box.Bottom()
				b.VY = 0
			}
		}

		b.VX *= phys.Friction
		if math.Abs(b.VX) < phys.StopThreshold {
			b.VX = 0
		}
		b.Box.X += b.VX

		for _, obj := range g.Objects.items {
			if !blocksBlock(obj) || !core.Collides(b.Box, Box(obj)) {
				continue
			}
			wall := Box(obj)
			if b.VX > 0 {
				b.Box.X = wall.X - b.Box.W
			} else if b.VX < 0 {
				b.Box.X = wall.Right()
			}
			b.VX = 0
		}
	}
}

func blocksBlock(obj Object) bool {
	switch v := obj.(type) {
	case *Platform:
		return true
	case *Door:
		return !v.Triggered
	default:
		return false
	}
}

func (g *Graph) crushTraps(b *PushableBlock) {
	for _, trap := range Of[*Trap](g.Objects) {
		if !core.Collides(b.Box, trap.Box) {
			continue
		}
		g.Objects.Remove(trap.ID)
		c := trap.Box.Center()
		g.bus.Emit(event.Event{Kind: event.TrapDestroyed, X: c.X, Y: c.Y, ID: trap.ID})
		g.bus.Emit(event.Event{Kind: event.Impact, X: c.X, Y: c.Y, Intensity: 8})
	}
}

// UpdatePlates recomputes every pressure plate from the player's feet and
// the pushable blocks, propagating edges to the linked objects.
func (g *Graph) UpdatePlates(player core.Rect) {
	band := g.cfg.Puzzles.PlateBand
	feet := core.Rect{X: player.X, Y: player.Bottom() - band/2, W: player.W, H: band}
	blocks := Of[*PushableBlock](g.Objects)

	for _, plate := range Of[*PressurePlate](g.Objects) {
		pressed := core.Collides(feet, plate.Box)
		for _, b := range blocks {
			if pressed {
				break
			}
			pressed = core.Collides(b.Box, plate.Box)
		}
		if pressed == plate.Triggered {
			continue
		}

		plate.Triggered = pressed
		if pressed {
			g.bus.Emit(event.Event{Kind: event.PlateClick, X: plate.Box.X, Y: plate.Box.Y, ID: plate.ID})
			if plate.Timed {
				g.PuzzleTimer = g.cfg.Puzzles.TimedDoorTicks
			}
		}
		if door, ok := g.Objects.Find(plate.TargetID).(*Door); ok && !door.Timed {
			door.Triggered = pressed
		}
	}
}

// UpdateTimedDoors opens timed doors while the countdown runs.
// It reports whether a door closed this tick because the countdown ran out.
func (g *Graph) UpdateTimedDoors() bool {
	failed := false
	for _, d := range Of[*Door](g.Objects) {
		if !d.Timed {
			continue
		}
		wasOpen := d.Triggered
		d.Triggered = g.PuzzleTimer > 0
		if wasOpen && !d.Triggered {
			g.bus.Emit(event.Event{Kind: event.PuzzleFailed, X: d.Box.X, Y: d.Box.Y, ID: d.ID})
			failed = true
		}
	}
	return failed
}

// Landed is called when the player lands on an object. Falling platforms
// start shaking.
func (g *Graph) Landed(obj Object) {
	f, ok := obj.(*FallingPlatform)
	if !ok || f.Falling || f.ShakeTime <= 0 || f.FallDelay > 0 {
		return
	}
	f.FallDelay = f.ShakeTime
}

// CountdownFalling advances shaking platforms and drops them at zero.
func (g *Graph) CountdownFalling() {
	for _, f := range Of[*FallingPlatform](g.Objects) {
		if !f.Shaking() {
			continue
		}
		f.FallDelay--
		if f.FallDelay == 0 {
			f.Falling = true
			g.bus.Emit(event.Event{Kind: event.PlatformCrumble, X: f.Box.X, Y: f.Box.Y, ID: f.ID})
		}
	}
}

// Reveal makes every hidden platform solid for the configured window.
func (g *Graph) Reveal() {
	for _, h := range Of[*HiddenPlatform](g.Objects) {
		h.Hidden = false
		h.RevealTimer = g.cfg.Abilities.RevealTicks
	}
}

// UpdateHidden counts reveal timers down and re-hides platforms at zero.
func (g *Graph) UpdateHidden() {
	for _, h := range Of[*HiddenPlatform](g.Objects) {
		if h.RevealTimer <= 0 {
			continue
		}
		h.RevealTimer--
		if h.RevealTimer == 0 {
			h.Hidden = true
		}
	}
}

// Teleport resolves a teleporter touch. It returns the player's new
// top-left corner, or false while the cooldown runs or the target is gone.
func (g *Graph) Teleport(tp *Teleporter, playerH float64) (core.Vec, bool) {
	if g.TeleportCooldown > 0 {
		return core.Vec{}, false
	}
	target := g.Objects.Find(tp.TargetID)
	if target == nil {
		return core.Vec{}, false
	}
	box := Box(target)
	g.TeleportCooldown = g.cfg.Puzzles.TeleportCooldown
	g.bus.Emit(event.Event{Kind: event.Teleport, X: box.X, Y: box.Y, ID: tp.ID})
	return core.Vec{X: box.X, Y: box.Y - playerH}, true
}
