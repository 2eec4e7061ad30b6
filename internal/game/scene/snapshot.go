package scene

import (
	"github.com/vovakirdan/lumin/internal/event"
	"github.com/vovakirdan/lumin/internal/game/player"
	"github.com/vovakirdan/lumin/internal/game/world"
)

// Snapshot is a read-only copy of a stage after a tick.
// Objects are deep copies; mutating them does not affect the stage.
type Snapshot struct {
	LevelID   int
	LevelName string
	Tick      uint64

	Player   player.Player
	Objects  []world.Object
	CameraX  float64
	NearbyID int // Id of the interactable in range, 0 when none

	Dialogue    *Line
	PuzzleTimer int

	// Encounter only.
	Phase     string
	BossHP    int
	BossMaxHP int
	Crystals  int

	Complete bool
}

// StepResult is what one tick produced.
type StepResult struct {
	Events   []event.Event
	Complete bool // Level completion was reached this tick
}

// CloneObjects deep-copies a live collection into a snapshot slice.
func CloneObjects(objs *world.Objects) []world.Object {
	all := objs.All()
	out := make([]world.Object, len(all))
	for i, o := range all {
		out[i] = o.Clone()
	}
	return out
}

// ActiveLine returns a copy of the active dialogue line, or nil.
func (d *Dialogues) ActiveLine() *Line {
	l, ok := d.Active()
	if !ok {
		return nil
	}
	return &l
}
