// Package registry provides a global registry for stage factories.
// Stages register themselves in init() functions, allowing the campaign
// to run any level kind without hardcoded dependencies.
package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/lumin/internal/config"
	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/game/scene"
	"github.com/vovakirdan/lumin/internal/levels"
)

// Stage runs one level. Stages contain pure logic with no external
// dependencies (especially no Bubble Tea). The platform handles input
// collection, timing, and rendering.
type Stage interface {
	// Level returns the definition the stage was built from.
	Level() levels.Level

	// Step advances the simulation by one fixed tick. The stage may clear
	// keys it consumed from in.
	Step(in *core.Input) scene.StepResult

	// Snapshot returns a copy of the current state for presenters.
	Snapshot() scene.Snapshot

	// Complete reports whether the level has been finished.
	Complete() bool
}

// VirusTarget is implemented by stages that honour the virus cheat.
type VirusTarget interface {
	ApplyVirus()
}

// Env is what a stage receives from the campaign.
type Env struct {
	Config config.LuminConfig
	Rand   *rand.Rand

	// Collected holds the ids of books already read in this run. The stage
	// adds to it and leaves collected books out of the level.
	Collected map[int]bool
}

// StageInfo contains metadata about a registered stage kind.
type StageInfo struct {
	Kind  levels.Kind
	Title string
}

// Factory creates a stage for a level.
type Factory func(lvl levels.Level, env Env) Stage

type entry struct {
	title   string
	factory Factory
}

var (
	factories = make(map[levels.Kind]entry)
	mu        sync.RWMutex
)

// Register adds a stage factory to the registry.
// Typically called from a stage's init() function.
// Panics if a factory for the same kind is already registered.
func Register(kind levels.Kind, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("registry: stage %q already registered", kind))
	}

	factories[kind] = entry{title: title, factory: f}
}

// List returns information about all registered stages, sorted by kind.
func List() []StageInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]StageInfo, 0, len(factories))
	for kind, e := range factories {
		result = append(result, StageInfo{Kind: kind, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Kind < result[j].Kind
	})

	return result
}

// Create instantiates the stage for a level based on its kind.
// Returns an error if no stage is registered for the kind.
func Create(lvl levels.Level, env Env) (Stage, error) {
	mu.RLock()
	e, ok := factories[lvl.Kind]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown stage %q", lvl.Kind)
	}

	if env.Collected == nil {
		env.Collected = make(map[int]bool)
	}
	if env.Rand == nil {
		env.Rand = rand.New(rand.NewSource(1))
	}

	return e.factory(lvl, env), nil
}

// Exists checks if a stage for the given kind is registered.
func Exists(kind levels.Kind) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[kind]
	return ok
}
