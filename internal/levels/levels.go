// Package levels provides the level model, the file loader and the embedded
// campaign. This package depends on the game packages but none of them
// depend on levels.
package levels

import (
	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/game/scene"
	"github.com/vovakirdan/lumin/internal/game/world"
	"github.com/vovakirdan/lumin/internal/levels/formats"
)

// Kind selects the stage that runs a level.
type Kind string

const (
	KindStandard  Kind = "standard"
	KindEncounter Kind = "encounter"
)

// Level is a read-only level definition. Stages never mutate it; they work
// on the collection returned by NewObjects.
type Level struct {
	ID       int
	Name     string
	Kind     Kind
	Start    core.Vec
	Width    float64 // Scrollable width in world units
	Intro    []scene.Line
	Objects  []world.Object
	FilePath string // Empty for embedded levels
}

// Clone returns a deep copy of the level.
func (l Level) Clone() Level {
	c := l
	c.Intro = append([]scene.Line(nil), l.Intro...)
	c.Objects = make([]world.Object, len(l.Objects))
	for i, o := range l.Objects {
		c.Objects[i] = o.Clone()
	}
	return c
}

// NewObjects deep-copies the templates into a fresh live collection.
func (l Level) NewObjects() *world.Objects {
	objs := world.NewObjects()
	for _, o := range l.Objects {
		objs.Add(o.Clone())
	}
	return objs
}

// BookIDs returns the ids of the level's story books in order.
func (l Level) BookIDs() []int {
	var ids []int
	for _, o := range l.Objects {
		if b, ok := o.(*world.Book); ok {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// Marshal encodes the level in the YAML level format.
func Marshal(l Level) ([]byte, error) {
	return formats.MarshalYAML(formats.Level{
		ID:      l.ID,
		Name:    l.Name,
		Kind:    string(l.Kind),
		Width:   l.Width,
		Start:   l.Start,
		Intro:   l.Intro,
		Objects: l.Objects,
	})
}
