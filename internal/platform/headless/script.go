// Package headless runs the campaign without a terminal. A script of held
// keys and tick counts drives the session and every event is written as a
// log line, which makes runs easy to diff.
package headless

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/game/campaign"
)

// Script is a scripted run.
type Script struct {
	Level int    `yaml:"level"` // Level id to start at; 0 starts a new run
	Steps []Step `yaml:"steps"`
}

// Step holds a set of keys for a number of ticks.
type Step struct {
	Keys    []string `yaml:"keys,omitempty"`
	Ticks   int      `yaml:"ticks,omitempty"` // Defaults to 1
	Aim     *Point   `yaml:"aim,omitempty"`
	Command string   `yaml:"command,omitempty"` // Applied before the first tick
}

// Point is a world position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// keyAliases lets scripts name keys by action.
var keyAliases = map[string]string{
	"left":       core.KeyLeft,
	"right":      core.KeyRight,
	"up":         core.KeyUp,
	"jump":       core.KeyUp,
	"space":      core.KeySpace,
	"interact":   core.KeyInteract,
	"burst":      core.KeyBurst,
	"fire":       core.KeyFire,
	"overcharge": core.KeyOvercharge,
	"confirm":    core.KeyConfirm,
}

var rawKeys = map[string]bool{
	core.KeyLeft: true, core.KeyLeftAlt: true,
	core.KeyRight: true, core.KeyRightAlt: true,
	core.KeyUp: true, core.KeyUpAlt: true, core.KeySpace: true,
	core.KeyInteract: true, core.KeyBurst: true, core.KeyFire: true,
	core.KeyOvercharge: true, core.KeyConfirm: true,
}

// resolveKey maps an alias or raw key name to a simulation key.
func resolveKey(k string) (string, bool) {
	if raw, ok := keyAliases[k]; ok {
		return raw, true
	}
	return k, rawKeys[k]
}

// ParseScript decodes and validates a YAML script. Key aliases are
// resolved and zero tick counts default to one.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("headless: parsing script: %w", err)
	}

	var errs []error
	for i := range s.Steps {
		st := &s.Steps[i]
		if st.Ticks < 0 {
			errs = append(errs, fmt.Errorf("step %d: negative ticks %d", i, st.Ticks))
		}
		if st.Ticks == 0 {
			st.Ticks = 1
		}
		for j, k := range st.Keys {
			raw, ok := resolveKey(k)
			if !ok {
				errs = append(errs, fmt.Errorf("step %d: unknown key %q", i, k))
				continue
			}
			st.Keys[j] = raw
		}
		if st.Command != "" {
			if _, ok := campaign.ParseCommand(st.Command); !ok {
				errs = append(errs, fmt.Errorf("step %d: unknown command %q", i, st.Command))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Script{}, fmt.Errorf("headless: invalid script: %w", err)
	}
	return s, nil
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("headless: reading %s: %w", path, err)
	}
	return ParseScript(data)
}

// TotalTicks returns the number of ticks the script asks for.
func (s Script) TotalTicks() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Ticks
	}
	return n
}
