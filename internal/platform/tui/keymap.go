package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lumin/internal/core"
)

// KeyMap defines the key bindings shown in the help footer.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Jump       key.Binding
	Interact   key.Binding
	Burst      key.Binding
	Fire       key.Binding
	Overcharge key.Binding
	Aim        key.Binding
	AimReset   key.Binding
	Confirm    key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Menu       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Interact, k.Pause, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump, k.Interact},
		{k.Burst, k.Fire, k.Overcharge, k.Aim, k.AimReset},
		{k.Confirm, k.Pause, k.Restart, k.Menu},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "q", "a"),
			key.WithHelp("←/q", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys("up", "w", " "),
			key.WithHelp("↑/w/space", "jump"),
		),
		Interact: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "interact"),
		),
		Burst: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "burst"),
		),
		Fire: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "fire"),
		),
		Overcharge: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "overcharge"),
		),
		Aim: key.NewBinding(
			key.WithKeys("i", "j", "k", "l"),
			key.WithHelp("ijkl", "aim"),
		),
		AimReset: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "aim ahead"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Pause: key.NewBinding(
			key.WithKeys("esc", "p"),
			key.WithHelp("esc/p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart (paused)"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "menu (paused)"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// gameKeys translates terminal key names to simulation key names.
var gameKeys = map[string]string{
	"left":  core.KeyLeft,
	"q":     core.KeyLeftAlt,
	"a":     core.KeyLeftAlt,
	"right": core.KeyRight,
	"d":     core.KeyRightAlt,
	"up":    core.KeyUp,
	"w":     core.KeyUpAlt,
	" ":     core.KeySpace,
	"space": core.KeySpace,
	"e":     core.KeyInteract,
	"f":     core.KeyBurst,
	"c":     core.KeyFire,
	"x":     core.KeyOvercharge,
	"enter": core.KeyConfirm,
}

// MapKey translates a key message to a simulation key.
// Returns false for keys the simulation does not read.
func MapKey(msg tea.KeyMsg) (string, bool) {
	k, ok := gameKeys[msg.String()]
	return k, ok
}

// aimStep maps the aim keys to a nudge in tiles.
var aimStep = map[string]core.Vec{
	"i": {X: 0, Y: -1},
	"k": {X: 0, Y: 1},
	"j": {X: -1, Y: 0},
	"l": {X: 1, Y: 0},
}
