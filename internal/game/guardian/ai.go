// Package guardian implements the boss behaviour: a two-mode state machine
// that alternates between hovering over the player while attacking and
// flying to one of the arena anchors.
package guardian

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/lumin/internal/config"
	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/game/world"
)

// Phase is the combat phase of the encounter. The encounter owns it; the AI
// only reads it.
type Phase string

const (
	PhaseIntro       Phase = "intro"
	PhaseAwakening   Phase = "awakening"
	Phase1           Phase = "phase1"
	Phase2           Phase = "phase2"
	Phase3           Phase = "phase3"
	PhaseVulnerable  Phase = "vulnerable"
	PhaseTeleporting Phase = "teleporting" // Reserved, never entered
	PhaseDefeated    Phase = "defeated"
)

// Level returns the attack tier of the phase, 1 to 3.
// Vulnerable fights at tier 1.
func (p Phase) Level() int {
	switch p {
	case Phase2:
		return 2
	case Phase3:
		return 3
	default:
		return 1
	}
}

// Combat reports whether the AI runs in this phase.
func (p Phase) Combat() bool {
	switch p {
	case Phase1, Phase2, Phase3, PhaseVulnerable:
		return true
	default:
		return false
	}
}

// Mode is the internal behaviour state.
type Mode int

const (
	Attacking Mode = iota
	Repositioning
)

func (m Mode) String() string {
	if m == Repositioning {
		return "repositioning"
	}
	return "attacking"
}

// Action is something the AI asks the encounter to do.
type Action interface {
	isAction()
}

// Move asks the encounter to steer the guardian toward Target.
type Move struct {
	Target core.Vec
}

// SpawnAttacks asks the encounter to add the attacks to the level.
type SpawnAttacks struct {
	Attacks []*world.GuardianAttack
}

func (Move) isAction()         {}
func (SpawnAttacks) isAction() {}

// IDSource hands out object ids for spawned attacks.
type IDSource func() int

// Anchor points in tiles, relative to the arena's left edge.
var anchorTiles = []core.Vec{
	{X: 8, Y: 6},
	{X: 18, Y: 5},
	{X: 28, Y: 6},
}

const (
	runeSpreadTiles = 10 // Runes land within player.x +/- half this
	runeSpeedJitter = 2
)

// AI drives the guardian.
type AI struct {
	cfg     config.GuardianConfig
	tile    float64
	arenaX  float64
	arenaW  float64
	anchors []core.Vec

	rng    *rand.Rand
	nextID IDSource

	mode     Mode
	timer    int
	cooldown int
	target   core.Vec
}

// NewAI creates the state machine in attack mode. Randomness comes from rng
// and attack ids from ids.
func NewAI(cfg config.LuminConfig, rng *rand.Rand, ids IDSource) *AI {
	tile := cfg.World.Tile
	arenaX := cfg.Encounter.ArenaX * tile

	anchors := make([]core.Vec, len(anchorTiles))
	for i, a := range anchorTiles {
		anchors[i] = core.Vec{X: arenaX + a.X*tile, Y: a.Y * tile}
	}

	return &AI{
		cfg:     cfg.Guardian,
		tile:    tile,
		arenaX:  arenaX,
		arenaW:  cfg.World.Width,
		anchors: anchors,
		rng:     rng,
		nextID:  ids,
		mode:    Attacking,
		timer:   cfg.Guardian.InitialTicks,
		target:  anchors[1],
	}
}

// Mode returns the current behaviour state.
func (a *AI) Mode() Mode { return a.mode }

// Target returns the point the guardian is steering toward.
func (a *AI) Target() core.Vec { return a.target }

// Update advances the state machine by one tick. The result always ends with
// a Move; a SpawnAttacks precedes it when an attack fired.
func (a *AI) Update(phase Phase, boss, player core.Rect) []Action {
	var actions []Action

	a.timer--
	if a.timer <= 0 {
		a.toggle()
	}

	if a.mode == Attacking {
		a.target = core.Vec{X: player.X, Y: player.Y - a.cfg.HoverTiles*a.tile}
		if phase != PhaseVulnerable {
			if attacks := a.attack(phase, boss, player); len(attacks) > 0 {
				actions = append(actions, SpawnAttacks{Attacks: attacks})
			}
		}
	}

	return append(actions, Move{Target: a.target})
}

// Reset puts the AI back into attack mode with a short window.
func (a *AI) Reset() {
	a.cooldown = 0
	a.mode = Attacking
	a.timer = a.cfg.ResetTicks
}

func (a *AI) toggle() {
	if a.mode == Repositioning {
		a.mode = Attacking
		a.timer = int(math.Ceil(float64(a.cfg.AttackMinTicks) + a.rng.Float64()*float64(a.cfg.AttackJitter)))
		return
	}

	a.mode = Repositioning
	a.timer = a.cfg.RepositionTicks

	current := -1
	for i, p := range a.anchors {
		if p.X == a.target.X {
			current = i
			break
		}
	}
	next := a.rng.Intn(len(a.anchors))
	for next == current {
		next = a.rng.Intn(len(a.anchors))
	}
	a.target = a.anchors[next]
}

func (a *AI) attack(phase Phase, boss, player core.Rect) []*world.GuardianAttack {
	if a.cooldown > 0 {
		a.cooldown--
		return nil
	}

	lvl := phase.Level()
	speed := config.PhaseValue(a.cfg.SpeedScale, lvl, 1)
	rate := config.PhaseValue(a.cfg.RateScale, lvl, 1)
	if rate <= 0 {
		rate = 1
	}

	orb, runes, bolt := a.cfg.Orb, a.cfg.Rune, a.cfg.Bolt
	roll := a.rng.Float64() * (orb.Weight + runes.Weight + bolt.Weight)

	switch {
	case roll < orb.Weight:
		a.cooldown = int(float64(orb.Cooldown) / rate)
		return []*world.GuardianAttack{a.aimed(world.AttackOrb, orb, speed, boss, player)}

	case roll < orb.Weight+runes.Weight:
		count := max(config.PhaseValue(a.cfg.RuneCounts, lvl, 1), 0)
		attacks := make([]*world.GuardianAttack, 0, count)
		minX := a.arenaX + a.tile
		maxX := a.arenaX + a.arenaW - 2*a.tile
		for n := 0; n < count; n++ {
			offset := (a.rng.Float64() - 0.5) * runeSpreadTiles * a.tile
			x := math.Max(minX, math.Min(player.X+offset, maxX))
			attacks = append(attacks, &world.GuardianAttack{
				Base:   world.Base{ID: a.nextID(), Box: core.NewRect(x, a.tile, runes.Width, runes.Height)},
				Attack: world.AttackRune,
				VY:     (runes.Speed + a.rng.Float64()*runeSpeedJitter) * speed,
			})
		}
		a.cooldown = int(float64(runes.Cooldown) / rate)
		return attacks

	default:
		a.cooldown = int(float64(bolt.Cooldown) / rate)
		return []*world.GuardianAttack{a.aimed(world.AttackBolt, bolt, speed, boss, player)}
	}
}

// aimed spawns a shot centred on the boss and flying at the player's centre.
func (a *AI) aimed(kind world.AttackType, atk config.Attack, speed float64, boss, player core.Rect) *world.GuardianAttack {
	from, to := boss.Center(), player.Center()
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	v := atk.Speed * speed

	return &world.GuardianAttack{
		Base: world.Base{
			ID:  a.nextID(),
			Box: core.NewRect(from.X-atk.Width/2, from.Y-atk.Height/2, atk.Width, atk.Height),
		},
		Attack: kind,
		VX:     math.Cos(angle) * v,
		VY:     math.Sin(angle) * v,
	}
}
