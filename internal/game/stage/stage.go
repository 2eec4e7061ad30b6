// Package stage implements the per-tick orchestration of a level: the
// standard puzzle levels and the guardian encounter. Both register
// themselves with the registry.
package stage

import (
	"github.com/vovakirdan/lumin/internal/config"
	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/event"
	"github.com/vovakirdan/lumin/internal/game/player"
	"github.com/vovakirdan/lumin/internal/game/scene"
	"github.com/vovakirdan/lumin/internal/game/world"
	"github.com/vovakirdan/lumin/internal/levels"
	"github.com/vovakirdan/lumin/internal/registry"
)

func init() {
	registry.Register(levels.KindStandard, "Puzzle hall", func(lvl levels.Level, env registry.Env) registry.Stage {
		return NewStandard(lvl, env)
	})
	registry.Register(levels.KindEncounter, "Guardian encounter", func(lvl levels.Level, env registry.Env) registry.Stage {
		return NewEncounter(lvl, env)
	})
}

// base is the state both stages share.
type base struct {
	lvl levels.Level
	env registry.Env
	cfg config.LuminConfig

	bus      *event.Bus
	objs     *world.Objects
	graph    *world.Graph
	ctl      *player.Controller
	camera   *scene.Camera
	dialogue scene.Dialogues

	tick     uint64
	complete bool
}

func newBase(lvl levels.Level, env registry.Env) base {
	cfg := env.Config
	bus := &event.Bus{}

	objs := lvl.NewObjects()
	objs.RemoveIf(func(o world.Object) bool {
		b, ok := o.(*world.Book)
		return ok && env.Collected[b.ID]
	})

	width := lvl.Width
	if width <= 0 {
		width = cfg.World.Width
	}

	b := base{
		lvl:    lvl,
		env:    env,
		cfg:    cfg,
		bus:    bus,
		objs:   objs,
		graph:  world.NewGraph(objs, cfg, bus),
		ctl:    player.New(lvl.Start, cfg, bus),
		camera: scene.NewCamera(cfg.World.Width, width, cfg.World.CameraLerp),
	}
	b.camera.Snap(lvl.Start.X)
	b.dialogue.Push(lvl.Intro...)
	return b
}

// Level returns the definition the stage was built from.
func (b *base) Level() levels.Level { return b.lvl }

// Complete reports whether the level has been finished.
func (b *base) Complete() bool { return b.complete }

// Objects exposes the live collection. Tests and the renderer read it;
// nothing outside the stage should mutate it.
func (b *base) Objects() *world.Objects { return b.objs }

// Player exposes the live player state.
func (b *base) Player() *player.Player { return b.ctl.P }

// paused handles an active dialogue. Confirm, interact or space dismisses
// the current line. Returns true while the simulation must not advance.
func (b *base) paused(in *core.Input) bool {
	if _, ok := b.dialogue.Active(); !ok {
		return false
	}
	if in.Take(core.KeyConfirm, core.KeyInteract, core.KeySpace) {
		b.dialogue.Dismiss()
	}
	return true
}

func (b *base) say(l scene.Line) {
	b.dialogue.Push(l)
	b.bus.Emit(event.Event{Kind: event.Dialogue, Text: l.Text})
}

func (b *base) finish() {
	if b.complete {
		return
	}
	b.complete = true
	c := b.ctl.P.Box.Center()
	b.bus.At(event.LevelComplete, c.X, c.Y)
}

func (b *base) result() scene.StepResult {
	return scene.StepResult{Events: b.bus.Drain(), Complete: b.complete}
}

func (b *base) snapshot() scene.Snapshot {
	snap := scene.Snapshot{
		LevelID:     b.lvl.ID,
		LevelName:   b.lvl.Name,
		Tick:        b.tick,
		Player:      *b.ctl.P,
		Objects:     scene.CloneObjects(b.objs),
		CameraX:     b.camera.X,
		Dialogue:    b.dialogue.ActiveLine(),
		PuzzleTimer: b.graph.PuzzleTimer,
		Complete:    b.complete,
	}
	if b.ctl.Nearby != nil {
		snap.NearbyID = world.ID(b.ctl.Nearby)
	}
	return snap
}
