package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lumin/internal/game/campaign"
	"github.com/vovakirdan/lumin/internal/registry"
)

// Menu layout constants
const (
	menuChrome   = 10 // Rows used by the title, books line and help
	menuMinRows  = 3
	nameColWidth = 28
)

// MenuKeyMap defines the key bindings for the level menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	NewRun key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.NewRun, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.NewRun, k.Quit}}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play level"),
		),
		NewRun: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// levelMenu lists the campaign levels in a table.
type levelMenu struct {
	session *campaign.Session
	table   table.Model
	help    help.Model
	keys    MenuKeyMap
	width   int
	height  int
}

func newLevelMenu(s *campaign.Session, width, height int) levelMenu {
	m := levelMenu{
		session: s,
		help:    help.New(),
		keys:    DefaultMenuKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.updateRows()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *levelMenu) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Level", Width: nameColWidth},
		{Title: "Kind", Width: 12},
		{Title: "Books", Width: 7},
	}

	rows := m.height - menuChrome
	if rows < menuMinRows {
		rows = menuMinRows
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(rows),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateRows refreshes the book counts shown per level.
func (m *levelMenu) updateRows() {
	lvls := m.session.Levels()
	collected := m.session.Collected()
	kinds := make(map[string]string)
	for _, info := range registry.List() {
		kinds[string(info.Kind)] = info.Title
	}

	rows := make([]table.Row, len(lvls))
	for i, lvl := range lvls {
		ids := lvl.BookIDs()
		got := 0
		for _, id := range ids {
			if collected[id] {
				got++
			}
		}
		books := "-"
		if len(ids) > 0 {
			books = fmt.Sprintf("%d/%d", got, len(ids))
		}
		kind := kinds[string(lvl.Kind)]
		if kind == "" {
			kind = string(lvl.Kind)
		}
		rows[i] = table.Row{fmt.Sprintf("%d", lvl.ID), lvl.Name, kind, books}
	}
	m.table.SetRows(rows)
}

func (m *levelMenu) resize(width, height int) {
	m.width, m.height = width, height
	cursor := m.table.Cursor()
	m.table = m.createTable()
	m.updateRows()
	m.table.SetCursor(cursor)
	m.help.Width = width
}

// update routes navigation keys to the table.
func (m *levelMenu) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m levelMenu) selected() int {
	return m.table.Cursor()
}

func (m levelMenu) view() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	subtleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("L U M I N", m.width)))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(centerText("the living library", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")

	got, total := m.session.Books()
	b.WriteString(subtleStyle.Render(fmt.Sprintf(" Books of memory: %d/%d", got, total)))
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
