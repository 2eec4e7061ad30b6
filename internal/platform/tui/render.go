package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lumin/internal/config"
	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/game/scene"
	"github.com/vovakirdan/lumin/internal/game/world"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.Get(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.Get(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// glyph is how one object is drawn.
type glyph struct {
	r rune
	c core.Color
}

// glyphFor picks the glyph for an object, or false to skip it.
func glyphFor(obj world.Object, tick uint64) (glyph, bool) {
	switch v := obj.(type) {
	case *world.Platform:
		if v.OneWay {
			return glyph{'═', core.ColorGray}, true
		}
		if v.Motion != nil {
			return glyph{'▓', core.ColorBlue}, true
		}
		return glyph{'█', core.ColorGray}, true
	case *world.Door:
		if v.Triggered {
			return glyph{'·', core.ColorGreen}, true
		}
		return glyph{'#', core.ColorOrange}, true
	case *world.PressurePlate:
		if v.Triggered {
			return glyph{'▁', core.ColorGreen}, true
		}
		return glyph{'▂', core.ColorYellow}, true
	case *world.PushableBlock:
		return glyph{'▒', core.ColorWhite}, true
	case *world.FallingPlatform:
		if v.Shaking() && tick%4 < 2 {
			return glyph{'░', core.ColorRed}, true
		}
		return glyph{'░', core.ColorWhite}, true
	case *world.Teleporter:
		return glyph{'◊', core.ColorMagenta}, true
	case *world.Trap:
		return glyph{'^', core.ColorRed}, true
	case *world.PatrollingTrap:
		return glyph{'*', core.ColorRed}, true
	case *world.Book:
		return glyph{'≡', core.ColorCyan}, true
	case *world.Key:
		return glyph{'k', core.ColorYellow}, true
	case *world.FinalBook:
		if v.Hidden {
			return glyph{}, false
		}
		return glyph{'✦', core.ColorYellow}, true
	case *world.DoubleJumpRune:
		return glyph{'♦', core.ColorMagenta}, true
	case *world.TruthCrystal:
		return glyph{'◆', core.ColorCyan}, true
	case *world.Checkpoint:
		return glyph{'⚑', core.ColorGreen}, true
	case *world.HiddenPlatform:
		if v.Hidden {
			return glyph{'·', core.ColorGray}, true
		}
		return glyph{'▓', core.ColorCyan}, true
	case *world.Guardian:
		return glyph{'Ω', core.ColorMagenta}, true
	case *world.GuardianAttack:
		switch v.Attack {
		case world.AttackRune:
			return glyph{'✶', core.ColorMagenta}, true
		case world.AttackBolt:
			return glyph{'-', core.ColorRed}, true
		default:
			return glyph{'o', core.ColorRed}, true
		}
	case *world.WeaponPickup:
		return glyph{'†', core.ColorYellow}, true
	case *world.Projectile:
		if v.Overcharged {
			return glyph{'O', core.ColorOrange}, true
		}
		return glyph{'•', core.ColorYellow}, true
	default:
		return glyph{}, false
	}
}

// Renderer draws snapshots into a screen buffer. The first row holds the
// HUD; the rest is the playfield scaled from world units to cells.
type Renderer struct {
	screen *core.Screen
	view   config.WorldConfig
	tps    int
}

// NewRenderer creates a renderer for a w×h cell area.
func NewRenderer(w, h int, wc config.WorldConfig, tickRate int) *Renderer {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Renderer{screen: core.NewScreen(w, h), view: wc, tps: tickRate}
}

// Resize changes the drawing area.
func (r *Renderer) Resize(w, h int) {
	r.screen.Resize(w, h)
}

// Screen returns the buffer drawn by the last Draw.
func (r *Renderer) Screen() *core.Screen { return r.screen }

// cell converts a world point to a playfield cell.
func (r *Renderer) cell(x, y, camX float64) (int, int) {
	cols, rows := float64(r.screen.Width()), float64(r.screen.Height()-1)
	cx := int(math.Floor((x - camX) * cols / r.view.Width))
	cy := int(math.Floor(y*rows/r.view.Height)) + 1
	return cx, cy
}

func (r *Renderer) fill(box core.Rect, camX float64, shake int, g glyph) {
	x0, y0 := r.cell(box.X, box.Y, camX)
	x1, y1 := r.cell(box.Right(), box.Bottom(), camX)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	if y0 < 1 {
		y0 = 1
	}
	r.screen.FillRect(x0+shake, y0, x1+shake, y1, g.r, g.c)
}

// Draw renders a snapshot. shake offsets the playfield horizontally.
func (r *Renderer) Draw(snap scene.Snapshot, shake int) *core.Screen {
	s := r.screen
	s.Clear()

	for _, obj := range snap.Objects {
		g, ok := glyphFor(obj, snap.Tick)
		if !ok {
			continue
		}
		box := world.Box(obj)
		if world.ID(obj) == snap.NearbyID && snap.Tick%30 < 15 {
			g.c = core.ColorWhite
		}
		r.fill(box, snap.CameraX, shake, g)
	}

	p := snap.Player
	if p.InvulnerableTimer == 0 || snap.Tick%8 < 4 {
		r.fill(p.Box, snap.CameraX, shake, glyph{'@', core.ColorWhite})
	}

	r.drawHUD(snap)
	if snap.Dialogue != nil {
		r.drawDialogue(*snap.Dialogue)
	}
	return s
}

func (r *Renderer) drawHUD(snap scene.Snapshot) {
	p := snap.Player
	parts := []string{
		snap.LevelName,
		fmt.Sprintf("HP %d/%d", p.HP, p.MaxHP),
	}
	if p.HasKey {
		parts = append(parts, "key")
	}
	if p.HasDoubleJump {
		parts = append(parts, "2×jump")
	}
	if p.HasWeapon {
		parts = append(parts, r.cooldown("fire", p.WeaponCooldown), r.cooldown("over", p.OverchargeCooldown))
	}
	if p.BurstCooldown > 0 || snap.Phase != "" {
		parts = append(parts, r.cooldown("burst", p.BurstCooldown))
	}
	if snap.PuzzleTimer > 0 {
		parts = append(parts, fmt.Sprintf("door %.1fs", float64(snap.PuzzleTimer)/float64(r.tps)))
	}
	r.screen.DrawText(0, 0, strings.Join(parts, "  "), core.ColorWhite)

	if snap.BossMaxHP > 0 {
		bar := hpBar(snap.BossHP, snap.BossMaxHP, 20)
		text := fmt.Sprintf("%s %s %d", snap.Phase, bar, snap.BossHP)
		r.screen.DrawText(r.screen.Width()-len([]rune(text)), 0, text, core.ColorMagenta)
	}
}

func (r *Renderer) cooldown(name string, ticks int) string {
	if ticks <= 0 {
		return name
	}
	return fmt.Sprintf("%s %.0fs", name, math.Ceil(float64(ticks)/float64(r.tps)))
}

func hpBar(hp, maxHP, width int) string {
	if maxHP <= 0 {
		return ""
	}
	filled := hp * width / maxHP
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (r *Renderer) drawDialogue(l scene.Line) {
	s := r.screen
	w := s.Width() - 4
	if w < 10 {
		return
	}
	lines := wrap(l.Text, w-2)
	h := len(lines) + 3
	y := s.Height() - h
	if y < 1 {
		y = 1
	}

	s.FillRect(2, y, 2+w, y+h, ' ', core.ColorDefault)
	s.DrawBox(2, y, w, h, core.ColorCyan)

	title := string(l.Speaker)
	if l.Title != "" && l.Title != title {
		title += " · " + l.Title
	}
	s.DrawText(4, y, " "+title+" ", core.ColorYellow)
	for i, line := range lines {
		s.DrawText(4, y+1+i, line, core.ColorWhite)
	}
	s.DrawText(2+w-12, y+h-1, " enter ▸ ", core.ColorGray)
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(text) {
		wr := []rune(word)
		if len(cur) > 0 && len(cur)+1+len(wr) > width {
			lines = append(lines, string(cur))
			cur = nil
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, wr...)
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
