package headless

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/event"
	"github.com/vovakirdan/lumin/internal/game/campaign"
)

// Summary describes where a run ended.
type Summary struct {
	Ticks      int
	Events     map[event.Kind]int
	Status     campaign.Status
	LevelID    int
	PlayerHP   int
	BooksRead  int
	BooksTotal int
}

// Runner plays scripts against a session.
type Runner struct {
	session *campaign.Session
	out     io.Writer
	logger  *log.Logger
}

// NewRunner creates a runner writing event lines to out. A nil logger
// discards.
func NewRunner(s *campaign.Session, out io.Writer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if out == nil {
		out = io.Discard
	}
	return &Runner{session: s, out: out, logger: logger}
}

// Run plays the script. A completed level advances to the next one; the
// run stops early at the ending.
func (r *Runner) Run(script Script) (Summary, error) {
	if err := r.start(script.Level); err != nil {
		return Summary{}, err
	}

	sum := Summary{Events: make(map[event.Kind]int)}
	for i, st := range script.Steps {
		if st.Command != "" {
			cmd, _ := campaign.ParseCommand(st.Command)
			if err := r.session.Apply(cmd); err != nil {
				return sum, fmt.Errorf("headless: step %d: %w", i, err)
			}
			fmt.Fprintf(r.out, "%6d %-16s %s\n", sum.Ticks, "command", cmd)
		}

		for n := 0; n < st.Ticks; n++ {
			if !r.advance() {
				r.logger.Debug("script stopped", "step", i, "status", r.session.Status())
				return r.finish(sum), nil
			}
			res := r.session.Step(r.input(st))
			sum.Ticks++
			for _, e := range res.Events {
				sum.Events[e.Kind]++
				r.write(sum.Ticks, e)
			}
		}
	}
	return r.finish(sum), nil
}

func (r *Runner) start(levelID int) error {
	if levelID == 0 {
		return r.session.NewRun()
	}
	for i, lvl := range r.session.Levels() {
		if lvl.ID == levelID {
			return r.session.Start(i)
		}
	}
	return fmt.Errorf("headless: no level with id %d", levelID)
}

// advance moves past a completed level and reports whether play can go on.
func (r *Runner) advance() bool {
	switch r.session.Status() {
	case campaign.StatusLevelComplete:
		if err := r.session.NextLevel(); err != nil {
			r.logger.Error("advancing level", "err", err)
			return false
		}
		return r.session.Status() == campaign.StatusPlaying
	case campaign.StatusPaused:
		r.session.Pause()
		return true
	case campaign.StatusPlaying:
		return true
	default:
		return false
	}
}

func (r *Runner) input(st Step) *core.Input {
	in := core.NewInput()
	for _, k := range st.Keys {
		in.Keys.Press(k)
	}
	if st.Aim != nil {
		in.Aim = &core.Vec{X: st.Aim.X, Y: st.Aim.Y}
	}
	return in
}

func (r *Runner) write(tick int, e event.Event) {
	line := fmt.Sprintf("%6d %-16s x=%.0f y=%.0f", tick, e.Kind, e.X, e.Y)
	if e.ID != 0 {
		line += fmt.Sprintf(" id=%d", e.ID)
	}
	if e.Phase != "" {
		line += " phase=" + e.Phase
	}
	if e.Text != "" {
		line += fmt.Sprintf(" %q", e.Text)
	}
	fmt.Fprintln(r.out, line)
}

func (r *Runner) finish(sum Summary) Summary {
	sum.Status = r.session.Status()
	if snap, ok := r.session.Snapshot(); ok {
		sum.LevelID = snap.LevelID
		sum.PlayerHP = snap.Player.HP
	}
	sum.BooksRead, sum.BooksTotal = r.session.Books()
	return sum
}
