package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lumin/internal/config"
	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/game/campaign"
	_ "github.com/vovakirdan/lumin/internal/game/stage"
	"github.com/vovakirdan/lumin/internal/levels"
)

func newTestModel(t *testing.T) (Model, *campaign.Session) {
	t.Helper()
	lvls, err := levels.Campaign()
	if err != nil {
		t.Fatalf("Campaign failed: %v", err)
	}
	cfg := config.DefaultConfig()
	s := campaign.New(lvls, campaign.Options{Config: cfg, Seed: 1})
	m := NewModel(s, Options{
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1},
		World:   cfg.World,
		Hold:    4,
	})
	return m, s
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func tick(m Model) Model {
	next, _ := m.Update(TickMsg{})
	return next.(Model)
}

// skipDialogue confirms intro lines until the level runs.
func skipDialogue(t *testing.T, m Model, s *campaign.Session) Model {
	t.Helper()
	for n := 0; n < 20; n++ {
		snap, ok := s.Snapshot()
		if !ok || snap.Dialogue == nil {
			return m
		}
		m = tick(send(t, m, "enter"))
	}
	t.Fatal("dialogue never cleared")
	return m
}

func TestModelConfirmsDialogue(t *testing.T) {
	m, s := newTestModel(t)
	m = send(t, m, "j", "enter")
	if snap, _ := s.Snapshot(); snap.Dialogue == nil {
		t.Fatal("the second level should open with an intro")
	}
	skipDialogue(t, m, s)
	if snap, _ := s.Snapshot(); snap.Dialogue != nil {
		t.Error("enter should dismiss the intro")
	}
}

func TestModelMenuStartsRun(t *testing.T) {
	m, s := newTestModel(t)
	if !strings.Contains(m.View(), "L U M I N") {
		t.Error("menu view should show the title")
	}

	m = send(t, m, "n")
	if s.Status() != campaign.StatusPlaying || s.Index() != 0 {
		t.Fatalf("status=%s index=%d, expected the first level", s.Status(), s.Index())
	}
	if view := m.View(); !strings.Contains(view, s.Level().Name) {
		t.Error("play view should show the level name in the HUD")
	}
}

func TestModelSelectLevel(t *testing.T) {
	m, s := newTestModel(t)
	m = send(t, m, "j", "j", "enter")
	if s.Index() != 2 {
		t.Errorf("index = %d, expected the third level", s.Index())
	}
}

func TestModelHoldsKeysAcrossTicks(t *testing.T) {
	m, s := newTestModel(t)
	m = skipDialogue(t, send(t, m, "n"), s)
	m = send(t, m, "right")
	if got := m.holder.Held(); len(got) != 1 || got[0] != core.KeyRight {
		t.Fatalf("Held() = %v, expected the right arrow", got)
	}

	before, _ := s.Snapshot()
	m = tick(m)
	after, _ := s.Snapshot()
	if after.Tick != before.Tick+1 {
		t.Errorf("tick %d -> %d, expected one step", before.Tick, after.Tick)
	}
}

func TestModelPauseMenu(t *testing.T) {
	m, s := newTestModel(t)
	m = send(t, m, "n", "esc")
	if s.Status() != campaign.StatusPaused {
		t.Fatalf("status = %s, expected paused", s.Status())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("pause view should show the pause box")
	}

	before, _ := s.Snapshot()
	m = tick(m)
	after, _ := s.Snapshot()
	if after.Tick != before.Tick {
		t.Error("ticks should not step a paused level")
	}

	m = send(t, m, "esc")
	if s.Status() != campaign.StatusPlaying {
		t.Errorf("status = %s, expected playing", s.Status())
	}

	send(t, m, "p", "m")
	if s.Status() != campaign.StatusMenu {
		t.Errorf("status = %s, expected the menu", s.Status())
	}
}

func TestModelConsole(t *testing.T) {
	m, s := newTestModel(t)
	m = send(t, m, "n", "0", "0", "1")
	if !m.consoleOpen {
		t.Fatal("typing the console sequence should open the console")
	}

	m = send(t, m, "V", "I", "R", "U", "S", "enter")
	if m.consoleOpen {
		t.Error("enter should close the console")
	}
	if !s.Virus() {
		t.Error("the virus code should arm the cheat")
	}

	m = send(t, m, "0", "0", "1", "b", "b", "c", "2", "enter")
	if s.Index() != 1 {
		t.Errorf("index = %d, expected the skip code to advance", s.Index())
	}

	m = send(t, m, "0", "0", "1", "n", "o", "p", "e", "enter")
	if !strings.Contains(m.notice, "unknown") {
		t.Errorf("notice = %q, expected an unknown command notice", m.notice)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(keyMsg("ctrl+c"))
	if cmd == nil {
		t.Fatal("ctrl+c should return the quit command")
	}
	if next.(Model).View() != "" {
		t.Error("a quitting model should render nothing")
	}
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	if m.renderer.Screen().Width() != 120 || m.renderer.Screen().Height() != 39 {
		t.Errorf("renderer = %dx%d, expected 120x39",
			m.renderer.Screen().Width(), m.renderer.Screen().Height())
	}
}
