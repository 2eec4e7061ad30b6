package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lumin/internal/config"
	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/event"
	"github.com/vovakirdan/lumin/internal/game/campaign"
	"github.com/vovakirdan/lumin/internal/game/scene"
)

// Options configures the terminal front end.
type Options struct {
	Runtime core.RuntimeConfig
	World   config.WorldConfig
	Hold    int // Ticks a key press stays held
	Logger  *log.Logger
}

// aimReach is how far the aim point sits from the player, in aim steps.
const aimReach = 4

// Model is the Bubble Tea model for a Lumin run.
type Model struct {
	session  *campaign.Session
	opts     Options
	renderer *Renderer
	holder   *Holder
	keys     KeyMap
	help     help.Model
	menu     levelMenu
	console  textinput.Model
	seq      *campaign.Sequence
	logger   *log.Logger

	consoleOpen bool
	aim         core.Vec // Aim offset in tiles; zero aims along facing
	shake       int      // Remaining shake ticks
	notice      string   // Last console result
	width       int
	height      int
	quitting    bool
}

// NewModel creates the model over a session sitting at the menu.
func NewModel(s *campaign.Session, opts Options) Model {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = "command or code"
	ti.Prompt = "> "
	ti.CharLimit = 32

	w, h := opts.Runtime.ScreenW, opts.Runtime.ScreenH
	return Model{
		session:  s,
		opts:     opts,
		renderer: NewRenderer(w, playRows(h), opts.World, opts.Runtime.TickRate),
		holder:   NewHolder(opts.Hold),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		menu:     newLevelMenu(s, w, h),
		console:  ti,
		seq:      &campaign.Sequence{},
		logger:   opts.Logger,
		width:    w,
		height:   h,
	}
}

// playRows leaves one row under the playfield for help or the console.
func playRows(h int) int {
	if h < 2 {
		return 1
	}
	return h - 1
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.consoleOpen {
		return m.handleConsoleKey(msg)
	}

	switch m.session.Status() {
	case campaign.StatusMenu:
		return m.handleMenuKey(msg)

	case campaign.StatusPaused:
		switch {
		case key.Matches(msg, m.keys.Pause):
			m.session.Pause()
		case key.Matches(msg, m.keys.Restart):
			m.apply(campaign.CmdRestart)
		case key.Matches(msg, m.keys.Menu):
			m.apply(campaign.CmdMenu)
		}

	case campaign.StatusLevelComplete:
		if key.Matches(msg, m.keys.Confirm) {
			if err := m.session.NextLevel(); err != nil {
				m.logger.Error("advancing level", "err", err)
			}
		}

	case campaign.StatusEnding:
		if key.Matches(msg, m.keys.Confirm) {
			m.session.ExitToMenu()
			m.menu.updateRows()
		}

	case campaign.StatusPlaying:
		return m.handlePlayKey(msg)
	}

	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.menu.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.menu.keys.NewRun):
		if err := m.session.NewRun(); err != nil {
			m.logger.Error("starting run", "err", err)
		}
	case key.Matches(msg, m.menu.keys.Select):
		if err := m.session.Start(m.menu.selected()); err != nil {
			m.logger.Error("starting level", "err", err)
		}
	default:
		return m, m.menu.update(msg)
	}
	m.holder.Release()
	return m, nil
}

func (m Model) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if m.seq.Feed(k) {
		m.consoleOpen = true
		m.holder.Release()
		m.console.SetValue("")
		return m, m.console.Focus()
	}

	switch {
	case key.Matches(msg, m.keys.Pause):
		m.session.Pause()
		m.holder.Release()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.notice = ""
		return m, nil
	case key.Matches(msg, m.keys.AimReset):
		m.aim = core.Vec{}
		return m, nil
	case key.Matches(msg, m.keys.Aim):
		step := aimStep[k]
		m.aim.X = core.ClampF(m.aim.X+step.X, -aimReach, aimReach)
		m.aim.Y = core.ClampF(m.aim.Y+step.Y, -aimReach, aimReach)
		return m, nil
	case k == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if gk, ok := MapKey(msg); ok {
		m.holder.Press(gk)
	}
	return m, nil
}

func (m Model) handleConsoleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeConsole()
		return m, nil
	case tea.KeyEnter:
		input := m.console.Value()
		m.closeConsole()
		cmd, ok := campaign.ParseCommand(input)
		if !ok {
			m.notice = fmt.Sprintf("unknown command %q", input)
			m.logger.Debug("console rejected input", "input", input)
			return m, nil
		}
		m.apply(cmd)
		m.notice = string(cmd)
		return m, nil
	}

	var cmd tea.Cmd
	m.console, cmd = m.console.Update(msg)
	return m, cmd
}

func (m *Model) closeConsole() {
	m.consoleOpen = false
	m.console.Blur()
}

func (m *Model) apply(cmd campaign.Command) {
	if err := m.session.Apply(cmd); err != nil {
		m.logger.Error("command failed", "cmd", cmd, "err", err)
		m.notice = err.Error()
	}
	m.holder.Release()
	m.menu.updateRows()
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.renderer.Resize(msg.Width, playRows(msg.Height))
	m.menu.resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the simulation while a level is being played.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.shake > 0 {
		m.shake--
	}
	if m.consoleOpen || m.session.Status() != campaign.StatusPlaying {
		return m, tickCmd(m.opts.Runtime.TickRate)
	}

	in := m.holder.Input(m.aimPoint())
	res := m.session.Step(in)
	m.holder.Sync(in)
	m.handleEvents(res.Events)

	if m.session.Status() != campaign.StatusPlaying {
		m.holder.Release()
		m.menu.updateRows()
	}

	return m, tickCmd(m.opts.Runtime.TickRate)
}

// handleEvents turns simulation events into presentation effects.
func (m *Model) handleEvents(evs []event.Event) {
	for _, e := range evs {
		switch e.Kind {
		case event.Impact:
			if d := int(e.Intensity); d > m.shake {
				m.shake = d
			}
		case event.Rumble:
			m.shake = m.opts.Runtime.TickRate
		case event.PuzzleFailed, event.Victory, event.LevelComplete:
			m.logger.Debug("event", "kind", e.Kind, "id", e.ID)
		}
	}
}

// aimPoint converts the aim offset to a world point ahead of the player.
// A zero offset leaves aiming to the facing direction.
func (m Model) aimPoint() *core.Vec {
	if m.aim == (core.Vec{}) {
		return nil
	}
	snap, ok := m.session.Snapshot()
	if !ok {
		return nil
	}
	c := snap.Player.Box.Center()
	t := m.opts.World.Tile
	return &core.Vec{X: c.X + m.aim.X*t, Y: c.Y + m.aim.Y*t}
}

func (m Model) shakeOffset() int {
	if m.shake == 0 {
		return 0
	}
	return m.shake%2*2 - 1
}

// saveScreenshot saves the current playfield to a file.
func (m *Model) saveScreenshot() {
	snap, ok := m.session.Snapshot()
	if !ok {
		return
	}
	screen := m.renderer.Draw(snap, 0)

	dir := filepath.Join(os.Getenv("HOME"), ".lumin", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("level%d_%s.txt", snap.LevelID, timestamp))
	if err := os.WriteFile(path, []byte(screen.String()), 0o600); err != nil {
		m.logger.Warn("saving screenshot", "err", err)
		return
	}
	m.notice = "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.session.Status() {
	case campaign.StatusMenu:
		return m.menu.view()
	case campaign.StatusLevelComplete:
		return m.card("Level complete", m.session.Level().Name, "enter: continue")
	case campaign.StatusEnding:
		got, total := m.session.Books()
		return m.card("The library remembers", fmt.Sprintf("Books of memory: %d/%d", got, total), "enter: back to menu")
	}

	snap, ok := m.session.Snapshot()
	if !ok {
		return ""
	}
	screen := m.renderer.Draw(snap, m.shakeOffset())
	if m.session.Status() == campaign.StatusPaused {
		drawPause(screen)
	}
	return RenderScreen(screen) + "\n" + m.footer()
}

func (m Model) footer() string {
	subtle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	switch {
	case m.consoleOpen:
		return m.console.View()
	case m.notice != "":
		return subtle.Render(m.notice)
	}
	return subtle.Render(m.help.View(m.keys))
}

// drawPause draws the pause box over the playfield.
func drawPause(s *core.Screen) {
	const w, h = 30, 6
	x, y := (s.Width()-w)/2, (s.Height()-h)/2
	s.FillRect(x, y, x+w, y+h, ' ', core.ColorDefault)
	s.DrawBox(x, y, w, h, core.ColorYellow)
	s.DrawTextCentered(y+1, "PAUSED", core.ColorYellow)
	s.DrawTextCentered(y+3, "esc resume · r restart", core.ColorWhite)
	s.DrawTextCentered(y+4, "m menu", core.ColorWhite)
}

// card renders a centered full-screen message.
func (m Model) card(title, body, hint string) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	subtle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(title),
		"",
		body,
		"",
		subtle.Render(hint),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Snapshot exposes the running stage for tests and tooling.
func (m Model) Snapshot() (scene.Snapshot, bool) {
	return m.session.Snapshot()
}

// Run starts the Bubble Tea program over the session.
func Run(s *campaign.Session, opts Options) error {
	p := tea.NewProgram(
		NewModel(s, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
