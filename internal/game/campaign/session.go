// Package campaign sequences the levels of a run: starting, restarting and
// advancing levels, the book collection and the command surface.
package campaign

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lumin/internal/config"
	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/game/scene"
	"github.com/vovakirdan/lumin/internal/levels"
	"github.com/vovakirdan/lumin/internal/registry"
)

// Status is the state of the run as the platform sees it.
type Status int

const (
	StatusMenu Status = iota
	StatusPlaying
	StatusPaused
	StatusLevelComplete
	StatusEnding
)

func (s Status) String() string {
	switch s {
	case StatusMenu:
		return "menu"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusLevelComplete:
		return "levelComplete"
	case StatusEnding:
		return "ending"
	default:
		return "unknown"
	}
}

// Session owns the current stage and everything that outlives it.
type Session struct {
	levels []levels.Level
	cfg    config.LuminConfig
	rng    *rand.Rand
	logger *log.Logger

	collected map[int]bool
	index     int
	stage     registry.Stage
	status    Status
	virus     bool
}

// Options configures a session.
type Options struct {
	Config config.LuminConfig
	Seed   int64
	Logger *log.Logger // Nil discards
}

// New creates a session over the ordered levels, sitting at the menu.
func New(lvls []levels.Level, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		levels:    lvls,
		cfg:       opts.Config,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		logger:    logger,
		collected: make(map[int]bool),
		status:    StatusMenu,
	}
}

// Levels returns the ordered level list.
func (s *Session) Levels() []levels.Level { return s.levels }

// Status returns the run state.
func (s *Session) Status() Status { return s.status }

// Index returns the current level index.
func (s *Session) Index() int { return s.index }

// Level returns the current level definition.
func (s *Session) Level() levels.Level { return s.levels[s.index] }

// Stage returns the running stage, or nil at the menu.
func (s *Session) Stage() registry.Stage { return s.stage }

// Virus reports whether the virus cheat is armed.
func (s *Session) Virus() bool { return s.virus }

// Books returns how many books were collected and how many the campaign has.
func (s *Session) Books() (collected, total int) {
	for _, lvl := range s.levels {
		for _, id := range lvl.BookIDs() {
			total++
			if s.collected[id] {
				collected++
			}
		}
	}
	return collected, total
}

// Collected returns a copy of the ids of books read in this run.
func (s *Session) Collected() map[int]bool {
	out := make(map[int]bool, len(s.collected))
	for id := range s.collected {
		out[id] = true
	}
	return out
}

// NewRun starts a fresh run at the first level with an empty book
// collection.
func (s *Session) NewRun() error {
	s.collected = make(map[int]bool)
	s.virus = false
	return s.Start(0)
}

// Start begins level i with a fresh copy of its objects.
func (s *Session) Start(i int) error {
	if i < 0 || i >= len(s.levels) {
		return fmt.Errorf("campaign: no level at index %d", i)
	}

	lvl := s.levels[i]
	st, err := registry.Create(lvl.Clone(), registry.Env{
		Config:    s.cfg,
		Rand:      s.rng,
		Collected: s.collected,
	})
	if err != nil {
		return fmt.Errorf("campaign: starting level %d: %w", lvl.ID, err)
	}

	s.index = i
	s.stage = st
	s.status = StatusPlaying
	s.armVirus()
	s.logger.Info("level started", "index", i, "id", lvl.ID, "name", lvl.Name, "kind", lvl.Kind)
	return nil
}

// Restart reloads the current level. Books collected in it are returned to
// the level and the virus cheat is cleared.
func (s *Session) Restart() error {
	if s.stage == nil {
		return nil
	}
	for _, id := range s.Level().BookIDs() {
		delete(s.collected, id)
	}
	s.virus = false
	s.logger.Debug("restarting level", "index", s.index)
	return s.Start(s.index)
}

// ExitToMenu drops the running stage and clears the virus cheat.
func (s *Session) ExitToMenu() {
	s.stage = nil
	s.virus = false
	s.status = StatusMenu
	s.logger.Debug("exited to menu")
}

// Pause toggles the pause state while a level is running.
func (s *Session) Pause() {
	switch s.status {
	case StatusPlaying:
		s.status = StatusPaused
	case StatusPaused:
		s.status = StatusPlaying
	}
}

// NextLevel advances to the following level, or to the ending after the
// last one.
func (s *Session) NextLevel() error {
	next := s.index + 1
	if next >= len(s.levels) {
		s.stage = nil
		s.status = StatusEnding
		s.logger.Info("campaign finished")
		return nil
	}
	return s.Start(next)
}

// Step advances the running stage by one tick. Outside play it returns an
// empty result.
func (s *Session) Step(in *core.Input) scene.StepResult {
	if s.status != StatusPlaying || s.stage == nil {
		return scene.StepResult{}
	}

	res := s.stage.Step(in)
	if res.Complete {
		if s.index == len(s.levels)-1 {
			s.stage = nil
			s.status = StatusEnding
			s.logger.Info("campaign finished")
		} else {
			s.status = StatusLevelComplete
			s.logger.Info("level complete", "index", s.index)
		}
	}
	return res
}

// Snapshot returns the running stage's state.
func (s *Session) Snapshot() (scene.Snapshot, bool) {
	if s.stage == nil {
		return scene.Snapshot{}, false
	}
	return s.stage.Snapshot(), true
}

func (s *Session) armVirus() {
	if !s.virus {
		return
	}
	if t, ok := s.stage.(registry.VirusTarget); ok {
		t.ApplyVirus()
	}
}
