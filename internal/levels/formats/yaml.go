// Package formats provides level file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/game/scene"
	"github.com/vovakirdan/lumin/internal/game/world"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
// Coordinates are world units.
type YAMLLevel struct {
	ID      int          `yaml:"id"`
	Name    string       `yaml:"name"`
	Kind    string       `yaml:"kind"`
	Width   float64      `yaml:"width,omitempty"`
	Start   YAMLPoint    `yaml:"start"`
	Intro   []YAMLLine   `yaml:"intro,omitempty"`
	Objects []YAMLObject `yaml:"objects"`
}

// YAMLPoint is a position.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLLine is a dialogue line shown when the level starts.
type YAMLLine struct {
	Speaker string `yaml:"speaker"`
	Title   string `yaml:"title"`
	Text    string `yaml:"text"`
}

// YAMLObject is one object template. Fields that do not apply to the kind
// are ignored.
type YAMLObject struct {
	ID   int     `yaml:"id"`
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	W    float64 `yaml:"w"`
	H    float64 `yaml:"h"`

	Target    int         `yaml:"target,omitempty"`
	Timed     bool        `yaml:"timed,omitempty"`
	Hidden    bool        `yaml:"hidden,omitempty"`
	OneWay    bool        `yaml:"one_way,omitempty"`
	ShakeTime int         `yaml:"shake_time,omitempty"`
	Motion    *YAMLMotion `yaml:"motion,omitempty"`
	Fragment  string      `yaml:"fragment,omitempty"`
}

// YAMLMotion is an oscillation. A zero speed disables the axis.
type YAMLMotion struct {
	VX   float64 `yaml:"vx,omitempty"`
	VY   float64 `yaml:"vy,omitempty"`
	MinX float64 `yaml:"min_x,omitempty"`
	MaxX float64 `yaml:"max_x,omitempty"`
	MinY float64 `yaml:"min_y,omitempty"`
	MaxY float64 `yaml:"max_y,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID      int
	Name    string
	Kind    string
	Width   float64 // Zero means one screen wide
	Start   core.Vec
	Intro   []scene.Line
	Objects []world.Object
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level := Level{
		ID:    yl.ID,
		Name:  yl.Name,
		Kind:  yl.Kind,
		Width: yl.Width,
		Start: core.Vec{X: yl.Start.X, Y: yl.Start.Y},
	}

	for _, l := range yl.Intro {
		level.Intro = append(level.Intro, scene.Line{Speaker: scene.Speaker(l.Speaker), Title: l.Title, Text: l.Text})
	}

	for i, yo := range yl.Objects {
		obj, err := toObject(yo)
		if err != nil {
			return Level{}, fmt.Errorf("object %d (id %d): %w", i, yo.ID, err)
		}
		level.Objects = append(level.Objects, obj)
	}
	linkDoors(level.Objects)

	return level, nil
}

// MarshalYAML encodes a level back into the file format.
func MarshalYAML(l Level) ([]byte, error) {
	yl := YAMLLevel{
		ID:    l.ID,
		Name:  l.Name,
		Kind:  l.Kind,
		Width: l.Width,
		Start: YAMLPoint{X: l.Start.X, Y: l.Start.Y},
	}
	for _, line := range l.Intro {
		yl.Intro = append(yl.Intro, YAMLLine{Speaker: string(line.Speaker), Title: line.Title, Text: line.Text})
	}
	for _, obj := range l.Objects {
		yl.Objects = append(yl.Objects, fromObject(obj))
	}
	return yaml.Marshal(yl)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

func toObject(yo YAMLObject) (world.Object, error) {
	kind, ok := world.ParseKind(yo.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", yo.Kind)
	}
	base := world.Base{ID: yo.ID, Box: core.NewRect(yo.X, yo.Y, yo.W, yo.H)}

	switch kind {
	case world.KindPlatform:
		p := &world.Platform{Base: base, OneWay: yo.OneWay}
		if yo.Motion != nil {
			m := yo.Motion.motion()
			p.Motion = &m
		}
		return p, nil
	case world.KindDoor:
		return &world.Door{Base: base, Timed: yo.Timed}, nil
	case world.KindPressurePlate:
		return &world.PressurePlate{Base: base, TargetID: yo.Target, Timed: yo.Timed}, nil
	case world.KindPushableBlock:
		return &world.PushableBlock{Base: base}, nil
	case world.KindFallingPlatform:
		return &world.FallingPlatform{Base: base, ShakeTime: yo.ShakeTime}, nil
	case world.KindTeleporter:
		return &world.Teleporter{Base: base, TargetID: yo.Target}, nil
	case world.KindTrap:
		return &world.Trap{Base: base}, nil
	case world.KindPatrollingTrap:
		if yo.Motion == nil {
			return nil, fmt.Errorf("patrolling trap needs a motion")
		}
		return &world.PatrollingTrap{Base: base, Motion: yo.Motion.motion()}, nil
	case world.KindBook:
		return &world.Book{Base: base, Fragment: yo.Fragment}, nil
	case world.KindKey:
		return &world.Key{Base: base}, nil
	case world.KindFinalBook:
		return &world.FinalBook{Base: base, Hidden: yo.Hidden}, nil
	case world.KindDoubleJumpRune:
		return &world.DoubleJumpRune{Base: base}, nil
	case world.KindTruthCrystal:
		return &world.TruthCrystal{Base: base}, nil
	case world.KindCheckpoint:
		return &world.Checkpoint{Base: base}, nil
	case world.KindHiddenPlatform:
		return &world.HiddenPlatform{Base: base, Hidden: yo.Hidden}, nil
	case world.KindWeaponPickup:
		return &world.WeaponPickup{Base: base}, nil
	default:
		return nil, fmt.Errorf("kind %q is spawned at runtime and cannot be placed", yo.Kind)
	}
}

func fromObject(obj world.Object) YAMLObject {
	box := world.Box(obj)
	yo := YAMLObject{ID: world.ID(obj), Kind: obj.Kind().String(), X: box.X, Y: box.Y, W: box.W, H: box.H}

	switch v := obj.(type) {
	case *world.Platform:
		yo.OneWay = v.OneWay
		if v.Motion != nil {
			yo.Motion = toYAMLMotion(*v.Motion)
		}
	case *world.Door:
		yo.Timed = v.Timed
	case *world.PressurePlate:
		yo.Target = v.TargetID
		yo.Timed = v.Timed
	case *world.FallingPlatform:
		yo.ShakeTime = v.ShakeTime
	case *world.Teleporter:
		yo.Target = v.TargetID
	case *world.PatrollingTrap:
		yo.Motion = toYAMLMotion(v.Motion)
	case *world.Book:
		yo.Fragment = v.Fragment
	case *world.FinalBook:
		yo.Hidden = v.Hidden
	case *world.HiddenPlatform:
		yo.Hidden = v.Hidden
	}
	return yo
}

func (m YAMLMotion) motion() world.Motion {
	return world.Motion{SpeedX: m.VX, SpeedY: m.VY, MinX: m.MinX, MaxX: m.MaxX, MinY: m.MinY, MaxY: m.MaxY}
}

func toYAMLMotion(m world.Motion) *YAMLMotion {
	return &YAMLMotion{VX: m.SpeedX, VY: m.SpeedY, MinX: m.MinX, MaxX: m.MaxX, MinY: m.MinY, MaxY: m.MaxY}
}

// linkDoors marks every door targeted by a pressure plate. Linked doors only
// open through their plate, never with a key.
func linkDoors(objs []world.Object) {
	doors := make(map[int]*world.Door)
	for _, obj := range objs {
		if d, ok := obj.(*world.Door); ok {
			doors[d.ID] = d
		}
	}
	for _, obj := range objs {
		if p, ok := obj.(*world.PressurePlate); ok {
			if d, ok := doors[p.TargetID]; ok {
				d.Linked = true
			}
		}
	}
}
