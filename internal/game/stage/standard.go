package stage

import (
	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/event"
	"github.com/vovakirdan/lumin/internal/game/scene"
	"github.com/vovakirdan/lumin/internal/game/world"
	"github.com/vovakirdan/lumin/internal/levels"
	"github.com/vovakirdan/lumin/internal/registry"
)

// Standard runs a puzzle level: collect the books, solve the linkage and
// reach the exit door.
type Standard struct {
	base
}

// NewStandard creates the stage with a fresh copy of the level.
func NewStandard(lvl levels.Level, env registry.Env) *Standard {
	return &Standard{base: newBase(lvl, env)}
}

// Step advances the level by one tick.
func (s *Standard) Step(in *core.Input) scene.StepResult {
	if s.complete || s.paused(in) {
		return s.result()
	}
	s.tick++

	s.ctl.Tick()
	s.graph.Tick()
	s.graph.Oscillate()
	s.graph.DropFalling()
	s.graph.StepBlocks()
	s.graph.UpdatePlates(s.ctl.P.Box)
	if s.graph.UpdateTimedDoors() {
		s.say(scene.TimedPuzzleFailed)
	}

	s.ctl.MoveX(in, s.objs)
	if landed := s.ctl.MoveY(in, s.objs); landed != nil {
		s.graph.Landed(landed)
	}
	s.graph.CountdownFalling()

	s.interact(in)

	if s.ctl.OutOfBounds() {
		s.ctl.ResetTo(s.lvl.Start)
		s.bus.At(event.Respawn, s.lvl.Start.X, s.lvl.Start.Y)
	}

	s.camera.Follow(s.ctl.P.Box.X)
	return s.result()
}

func (s *Standard) interact(in *core.Input) {
	p := s.ctl.P

	for _, obj := range s.ctl.Scan(s.objs) {
		box := world.Box(obj)
		center := box.Center()

		switch v := obj.(type) {
		case *world.Book:
			if s.env.Collected[v.ID] {
				continue
			}
			s.env.Collected[v.ID] = true
			s.objs.Remove(v.ID)
			s.bus.Emit(event.Event{Kind: event.Collect, X: center.X, Y: center.Y, ID: v.ID})
			s.say(scene.BookFound(v.Fragment))

		case *world.Trap:
			s.objs.Remove(v.ID)
			s.ctl.ResetTo(s.lvl.Start)
			s.bus.Emit(event.Event{Kind: event.TrapTriggered, X: center.X, Y: center.Y, ID: v.ID, Intensity: 8})

		case *world.PatrollingTrap:
			s.ctl.ResetTo(s.lvl.Start)
			s.bus.Emit(event.Event{Kind: event.TrapTriggered, X: center.X, Y: center.Y, ID: v.ID, Intensity: 5})

		case *world.Key:
			if p.HasKey {
				continue
			}
			p.HasKey = true
			s.objs.Remove(v.ID)
			s.bus.Emit(event.Event{Kind: event.Collect, X: center.X, Y: center.Y, ID: v.ID})
			s.say(scene.KeyFound)

		case *world.Door:
			if v.Triggered || (!v.Linked && p.HasKey) {
				s.finish()
			}

		case *world.Teleporter:
			if dest, ok := s.graph.Teleport(v, p.Box.H); ok {
				s.ctl.ResetTo(dest)
			}
		}

		if s.complete {
			return
		}
	}

	if door, ok := s.ctl.Interact(in).(*world.Door); ok && !door.Linked && !p.HasKey {
		s.say(scene.LockedDoor)
	}
}

// Snapshot returns a copy of the current state.
func (s *Standard) Snapshot() scene.Snapshot {
	return s.snapshot()
}
