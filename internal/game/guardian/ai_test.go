package guardian

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/lumin/internal/config"
	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/game/world"
)

var (
	testBoss   = core.NewRect(68*40, 5*40, 160, 160)
	testPlayer = core.NewRect(60*40, 700, 32, 56)
)

func newTestAI(seed int64) *AI {
	id := 5000
	return NewAI(config.DefaultConfig(), rand.New(rand.NewSource(seed)), func() int {
		id++
		return id
	})
}

func spawned(actions []Action) []*world.GuardianAttack {
	for _, a := range actions {
		if s, ok := a.(SpawnAttacks); ok {
			return s.Attacks
		}
	}
	return nil
}

func TestUpdateEndsWithMove(t *testing.T) {
	ai := newTestAI(1)
	for i := 0; i < 1500; i++ {
		actions := ai.Update(Phase1, testBoss, testPlayer)
		if len(actions) == 0 {
			t.Fatalf("tick %d: no actions", i)
		}
		if _, ok := actions[len(actions)-1].(Move); !ok {
			t.Fatalf("tick %d: last action is %T, expected Move", i, actions[len(actions)-1])
		}
	}
}

func TestFirstUpdateAttacks(t *testing.T) {
	ai := newTestAI(7)
	attacks := spawned(ai.Update(Phase1, testBoss, testPlayer))
	if len(attacks) == 0 {
		t.Fatal("expected an attack with the cooldown at zero")
	}
	for _, a := range attacks {
		if a.ID <= 5000 {
			t.Errorf("attack id %d should come from the id source", a.ID)
		}
	}
	if ai.Target() != (core.Vec{X: testPlayer.X, Y: testPlayer.Y - 240}) {
		t.Errorf("Target() = %v, expected hovering 6 tiles above the player", ai.Target())
	}
}

func TestVulnerableNeverAttacks(t *testing.T) {
	ai := newTestAI(3)
	for i := 0; i < 2000; i++ {
		if attacks := spawned(ai.Update(PhaseVulnerable, testBoss, testPlayer)); attacks != nil {
			t.Fatalf("tick %d: vulnerable guardian spawned %d attacks", i, len(attacks))
		}
	}
}

func TestModeCycle(t *testing.T) {
	ai := newTestAI(11)

	for i := 0; i < 479; i++ {
		ai.Update(Phase1, testBoss, testPlayer)
	}
	if ai.Mode() != Attacking {
		t.Fatal("guardian left attack mode early")
	}

	ai.Update(Phase1, testBoss, testPlayer)
	if ai.Mode() != Repositioning {
		t.Fatal("expected repositioning after the initial 480 ticks")
	}
	if ai.timer != 90 {
		t.Errorf("timer = %d, expected 90", ai.timer)
	}
	found := false
	for _, a := range ai.anchors {
		if a == ai.Target() {
			found = true
		}
	}
	if !found {
		t.Errorf("Target() = %v, expected one of the anchors", ai.Target())
	}

	for i := 0; i < 89; i++ {
		if spawned(ai.Update(Phase3, testBoss, testPlayer)) != nil {
			t.Fatal("repositioning guardian should not attack")
		}
	}
	ai.Update(Phase1, testBoss, testPlayer)
	if ai.Mode() != Attacking {
		t.Fatal("expected attack mode after repositioning")
	}
	if ai.timer < 480 || ai.timer > 720 {
		t.Errorf("attack window = %d, expected within [480, 720]", ai.timer)
	}
}

func TestRepositionPicksDifferentAnchor(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		ai := newTestAI(seed)
		ai.mode = Attacking
		ai.timer = 1
		ai.target = ai.anchors[2]

		ai.Update(PhaseVulnerable, testBoss, testPlayer)
		if ai.Target() == ai.anchors[2] {
			t.Errorf("seed %d: repositioned to the anchor it started at", seed)
		}
	}
}

func TestReset(t *testing.T) {
	ai := newTestAI(5)
	ai.mode = Repositioning
	ai.timer = 12
	ai.cooldown = 30

	ai.Reset()
	if ai.Mode() != Attacking || ai.timer != 300 || ai.cooldown != 0 {
		t.Errorf("after Reset: mode=%v timer=%d cooldown=%d", ai.Mode(), ai.timer, ai.cooldown)
	}
}

func TestAttackCooldownByPhase(t *testing.T) {
	expected := map[Phase]map[world.AttackType]int{
		Phase1: {world.AttackOrb: 40, world.AttackRune: 65, world.AttackBolt: 60},
		Phase2: {world.AttackOrb: 30, world.AttackRune: 50, world.AttackBolt: 46},
		Phase3: {world.AttackOrb: 25, world.AttackRune: 40, world.AttackBolt: 37},
	}
	runes := map[Phase]int{Phase1: 3, Phase2: 5, Phase3: 8}

	for phase, cooldowns := range expected {
		t.Run(string(phase), func(t *testing.T) {
			ai := newTestAI(42)
			ai.timer = 1 << 20 // stay in attack mode

			for n := 0; n < 30; n++ {
				attacks := spawned(ai.Update(phase, testBoss, testPlayer))
				if attacks == nil {
					continue
				}
				kind := attacks[0].Attack
				if ai.cooldown != cooldowns[kind] {
					t.Errorf("%v cooldown = %d, expected %d", kind, ai.cooldown, cooldowns[kind])
				}
				if kind == world.AttackRune && len(attacks) != runes[phase] {
					t.Errorf("rune volley of %d, expected %d", len(attacks), runes[phase])
				}
				if kind != world.AttackRune && len(attacks) != 1 {
					t.Errorf("%v volley of %d, expected 1", kind, len(attacks))
				}

				// The next attack comes exactly after the cooldown drains.
				wait := ai.cooldown
				for i := 0; i < wait; i++ {
					if spawned(ai.Update(phase, testBoss, testPlayer)) != nil {
						t.Fatalf("attack fired with %d cooldown ticks left", wait-i)
					}
				}
			}
		})
	}
}

func TestRunesStayInArena(t *testing.T) {
	ai := newTestAI(9)
	ai.timer = 1 << 20

	nearWall := core.NewRect(52*40+5, 700, 32, 56)
	minX, maxX := 52.0*40+40, 52.0*40+1024-80

	volleys := 0
	for i := 0; i < 3000 && volleys < 10; i++ {
		attacks := spawned(ai.Update(Phase3, testBoss, nearWall))
		if len(attacks) == 0 || attacks[0].Attack != world.AttackRune {
			continue
		}
		volleys++
		for _, a := range attacks {
			if a.Box.X < minX || a.Box.X > maxX {
				t.Errorf("rune x = %v, expected within [%v, %v]", a.Box.X, minX, maxX)
			}
			if a.Box.Y != 40 || a.VX != 0 {
				t.Errorf("rune spawned at y=%v vx=%v, expected y=40 falling straight", a.Box.Y, a.VX)
			}
			if a.VY < 7*1.8 || a.VY >= 9*1.8 {
				t.Errorf("rune vy = %v, expected within [12.6, 16.2)", a.VY)
			}
		}
	}
	if volleys == 0 {
		t.Fatal("no rune volley in 3000 ticks")
	}
}

func TestAimedAttackGeometry(t *testing.T) {
	ai := newTestAI(0)
	ai.timer = 1 << 20

	for i := 0; i < 3000; i++ {
		attacks := spawned(ai.Update(Phase1, testBoss, testPlayer))
		if len(attacks) != 1 {
			continue
		}
		a := attacks[0]
		center := a.Box.Center()
		if center != testBoss.Center() {
			t.Errorf("%v spawned centred at %v, expected the boss centre %v", a.Attack, center, testBoss.Center())
		}
		// The player is below and to the left of the boss.
		if a.VX >= 0 || a.VY <= 0 {
			t.Errorf("%v velocity (%v, %v) does not point at the player", a.Attack, a.VX, a.VY)
		}
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() [][]Action {
		ai := newTestAI(1234)
		var out [][]Action
		for i := 0; i < 1200; i++ {
			phase := Phase1
			if i > 600 {
				phase = Phase2
			}
			out = append(out, ai.Update(phase, testBoss, testPlayer))
		}
		return out
	}

	if !reflect.DeepEqual(run(), run()) {
		t.Error("two runs with the same seed diverged")
	}
}

func TestPhaseHelpers(t *testing.T) {
	tests := []struct {
		phase  Phase
		level  int
		combat bool
	}{
		{PhaseIntro, 1, false},
		{PhaseAwakening, 1, false},
		{Phase1, 1, true},
		{Phase2, 2, true},
		{Phase3, 3, true},
		{PhaseVulnerable, 1, true},
		{PhaseTeleporting, 1, false},
		{PhaseDefeated, 1, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			if got := tt.phase.Level(); got != tt.level {
				t.Errorf("Level() = %d, expected %d", got, tt.level)
			}
			if got := tt.phase.Combat(); got != tt.combat {
				t.Errorf("Combat() = %v, expected %v", got, tt.combat)
			}
		})
	}
}

func TestEmptyPhaseTablesFallBack(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Guardian.SpeedScale = []float64{}
	cfg.Guardian.RateScale = nil
	cfg.Guardian.RuneCounts = []int{}
	ai := NewAI(cfg, rand.New(rand.NewSource(7)), func() int { return 1 })
	ai.timer = 1 << 20

	fired := 0
	for n := 0; n < 500; n++ {
		fired += len(spawned(ai.Update(Phase3, testBoss, testPlayer)))
	}
	if fired == 0 {
		t.Error("expected attacks with fallback phase scales")
	}
}
