package stage

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/event"
	"github.com/vovakirdan/lumin/internal/game/guardian"
	"github.com/vovakirdan/lumin/internal/game/world"
	"github.com/vovakirdan/lumin/internal/levels"
)

// arena builds an encounter level with the player already past the trigger
// line, so the first tick wakes the guardian.
func arena(objs ...world.Object) levels.Level {
	floor := &world.Platform{Base: world.Base{ID: 1, Box: core.NewRect(0, 648, 3520, 120)}}
	book := &world.FinalBook{Base: world.Base{ID: 99, Box: core.NewRect(2780, 568, 40, 40)}, Hidden: true}
	return levels.Level{
		ID:      4,
		Name:    "Arena",
		Kind:    levels.KindEncounter,
		Start:   core.Vec{X: 2100, Y: 592},
		Width:   3520,
		Objects: append([]world.Object{floor, book}, objs...),
	}
}

func crystals() []world.Object {
	return []world.Object{
		&world.TruthCrystal{Base: world.Base{ID: 50, Box: core.NewRect(3400, 100, 40, 40)}},
		&world.TruthCrystal{Base: world.Base{ID: 51, Box: core.NewRect(3450, 100, 40, 40)}},
	}
}

// shoot places a resting shot on the guardian's center.
func shoot(e *Encounter, overcharged bool) {
	c := e.boss.Box.Center()
	e.objs.Add(&world.Projectile{
		Base:        world.Base{ID: e.objs.NextID(), Box: core.NewRect(c.X-5, c.Y-5, 10, 10)},
		Overcharged: overcharged,
	})
}

func phaseChanges(events []event.Event, phase guardian.Phase) int {
	n := 0
	for _, e := range events {
		if e.Kind == event.PhaseChange && e.Phase == string(phase) {
			n++
		}
	}
	return n
}

func TestGuardianAwakens(t *testing.T) {
	e := NewEncounter(arena(crystals()...), newEnv())
	if e.Phase() != guardian.PhaseIntro {
		t.Fatalf("phase = %s, expected intro", e.Phase())
	}

	res := e.Step(core.NewInput())
	if e.boss == nil {
		t.Fatal("guardian should spawn once the player crosses the trigger")
	}
	if e.boss.HP != 300 || e.boss.MaxHP != 300 {
		t.Errorf("guardian HP = %d/%d, expected 300/300", e.boss.HP, e.boss.MaxHP)
	}
	if phaseChanges(res.Events, guardian.PhaseAwakening) != 1 || phaseChanges(res.Events, guardian.Phase1) != 1 {
		t.Errorf("events = %v, expected awakening then phase1", res.Events)
	}
	if e.Phase() != guardian.Phase1 {
		t.Errorf("phase = %s, expected phase1", e.Phase())
	}

	snap := e.Snapshot()
	if snap.Phase != "phase1" || snap.BossHP != 300 || snap.BossMaxHP != 300 {
		t.Errorf("snapshot phase=%s hp=%d/%d", snap.Phase, snap.BossHP, snap.BossMaxHP)
	}
}

func TestGuardianStaysAsleepBeforeTrigger(t *testing.T) {
	lvl := arena()
	lvl.Start = core.Vec{X: 1900, Y: 592}
	e := NewEncounter(lvl, newEnv())

	for i := 0; i < 10; i++ {
		e.Step(core.NewInput())
	}
	if e.boss != nil || e.Phase() != guardian.PhaseIntro {
		t.Errorf("phase = %s, guardian should not wake before the trigger", e.Phase())
	}
}

func TestShieldChipDamage(t *testing.T) {
	e := NewEncounter(arena(crystals()...), newEnv())
	e.Step(core.NewInput())

	var events []event.Event
	for i := 0; i < 102; i++ {
		shoot(e, false)
		events = append(events, e.Step(core.NewInput()).Events...)
	}

	if e.boss.HP != 198 {
		t.Errorf("guardian HP = %d, expected 198", e.boss.HP)
	}
	if n := count(events, event.ShieldHit); n != 102 {
		t.Errorf("%d shield hits, expected 102", n)
	}
	if n := phaseChanges(events, guardian.Phase2); n != 1 {
		t.Errorf("phase2 entered %d times, expected once", n)
	}
	if e.Phase() != guardian.Phase2 {
		t.Errorf("phase = %s, expected phase2", e.Phase())
	}

	for i := 0; i < 5; i++ {
		shoot(e, false)
		events = append(events, e.Step(core.NewInput()).Events...)
	}
	if n := phaseChanges(events, guardian.Phase2); n != 1 {
		t.Errorf("phase2 re-entered, %d transitions", n)
	}
}

func TestCrystalsDropShield(t *testing.T) {
	e := NewEncounter(arena(crystals()...), newEnv())
	e.Step(core.NewInput())
	e.boss.HP = 150

	for _, c := range crystals() {
		box := world.Box(c)
		e.objs.Add(&world.Projectile{Base: world.Base{ID: e.objs.NextID(), Box: core.NewRect(box.X+10, box.Y+10, 10, 10)}})
	}
	res := e.Step(core.NewInput())

	if n := count(res.Events, event.CrystalCollect); n != 2 {
		t.Fatalf("%d crystals shattered, expected 2", n)
	}
	if e.Snapshot().Crystals != 2 {
		t.Errorf("crystal count = %d, expected 2", e.Snapshot().Crystals)
	}
	if e.Phase() != guardian.PhaseVulnerable {
		t.Fatalf("phase = %s, expected vulnerable", e.Phase())
	}

	shoot(e, false)
	res = e.Step(core.NewInput())
	if e.boss.HP != 140 {
		t.Errorf("guardian HP = %d, expected 140", e.boss.HP)
	}
	if count(res.Events, event.Impact) == 0 {
		t.Error("a hit on the exposed guardian should be an impact")
	}
}

func TestVulnerableRevertsWhenCrystalsReturn(t *testing.T) {
	e := NewEncounter(arena(), newEnv())
	e.Step(core.NewInput())
	if e.Phase() != guardian.PhaseVulnerable {
		t.Fatalf("phase = %s, expected vulnerable without crystals", e.Phase())
	}

	e.boss.HP = 90
	e.objs.Add(crystals()[0])
	e.Step(core.NewInput())
	if e.Phase() != guardian.Phase3 {
		t.Errorf("phase = %s, expected the HP-derived phase3", e.Phase())
	}
}

func TestOverchargeBypassesShield(t *testing.T) {
	e := NewEncounter(arena(crystals()...), newEnv())
	e.Step(core.NewInput())

	shoot(e, true)
	e.Step(core.NewInput())
	if e.boss.HP != 230 {
		t.Errorf("guardian HP = %d, expected 230", e.boss.HP)
	}
}

func TestDefeatSequence(t *testing.T) {
	e := NewEncounter(arena(crystals()...), newEnv())
	e.ApplyVirus()
	e.Step(core.NewInput())
	if e.boss.HP != 5 {
		t.Fatalf("guardian HP = %d, expected the virus to leave 5", e.boss.HP)
	}

	shoot(e, true)
	e.Step(core.NewInput())
	if e.boss.HP != 0 {
		t.Fatalf("guardian HP = %d, expected a clamp at 0", e.boss.HP)
	}

	res := e.Step(core.NewInput())
	if phaseChanges(res.Events, guardian.PhaseDefeated) != 1 || count(res.Events, event.MusicStop) != 1 {
		t.Fatalf("events = %v, expected the defeat", res.Events)
	}

	rumble, victory := 0, 0
	for i := 1; i <= 200 && victory == 0; i++ {
		res := e.Step(core.NewInput())
		if count(res.Events, event.Rumble) > 0 {
			rumble = i
		}
		if count(res.Events, event.Victory) > 0 {
			victory = i
		}
	}
	if rumble != 90 || victory != 180 {
		t.Errorf("rumble on %d, victory on %d, expected 90 and 180", rumble, victory)
	}
	if e.boss != nil || e.Snapshot().BossMaxHP != 0 {
		t.Error("guardian should be gone after the victory")
	}

	book := e.objs.Find(99).(*world.FinalBook)
	if book.Hidden {
		t.Error("the final book should be revealed")
	}

	for i := 0; i < 2; i++ {
		if res := e.Step(keys(core.KeyConfirm)); res.Complete {
			t.Fatalf("completed after %d lines, expected 3", i+1)
		}
	}
	res = e.Step(keys(core.KeyConfirm))
	if !res.Complete || count(res.Events, event.LevelComplete) != 1 {
		t.Errorf("dismissing the last line should finish the level, got %v", res.Events)
	}
}

func TestVirusDuringDefeatIsDiscarded(t *testing.T) {
	e := NewEncounter(arena(crystals()...), newEnv())
	e.Step(core.NewInput())
	e.boss.HP = 1

	shoot(e, false)
	e.Step(core.NewInput())
	e.Step(core.NewInput())
	if e.Phase() != guardian.PhaseDefeated {
		t.Fatalf("phase = %s, expected defeated", e.Phase())
	}

	e.ApplyVirus()
	e.Step(core.NewInput())
	if e.boss.HP != 0 {
		t.Errorf("guardian HP = %d, the virus should not revive a defeated guardian", e.boss.HP)
	}

	shoot(e, false)
	res := e.Step(core.NewInput())
	if count(res.Events, event.ShieldHit) != 0 || e.boss.HP != 0 {
		t.Errorf("shots should pass a defeated guardian, HP = %d, events = %v", e.boss.HP, res.Events)
	}
	if e.virus {
		t.Error("the pending virus should be dropped after the defeat")
	}

	victory := false
	for i := 0; i < 200 && !victory; i++ {
		victory = count(e.Step(core.NewInput()).Events, event.Victory) > 0
	}
	if !victory {
		t.Error("the defeat timeline should still reach the victory")
	}
}

func TestDefeatTimelineWithShortVictoryDelay(t *testing.T) {
	env := newEnv()
	env.Config.Encounter.VictoryDelay = env.Config.Encounter.RumbleDelay
	e := NewEncounter(arena(crystals()...), env)
	e.Step(core.NewInput())
	e.boss.HP = 0
	e.Step(core.NewInput())

	victory := false
	for i := 0; i < 200 && !victory; i++ {
		victory = count(e.Step(core.NewInput()).Events, event.Victory) > 0
	}
	if !victory {
		t.Error("the victory should fire even when it is not after the rumble")
	}
}

func TestEmptyPhaseTablesDoNotPanic(t *testing.T) {
	env := newEnv()
	env.Config.Guardian.SpeedScale = []float64{}
	env.Config.Guardian.RuneCounts = nil
	e := NewEncounter(arena(crystals()...), env)
	for i := 0; i < 60; i++ {
		e.Step(core.NewInput())
	}
	if e.boss == nil {
		t.Error("the guardian should be awake")
	}
}

func TestAttacksHurtPlayer(t *testing.T) {
	e := NewEncounter(arena(crystals()...), newEnv())
	e.Step(core.NewInput())

	p := e.Player()
	id := e.objs.NextID()
	e.objs.Add(&world.GuardianAttack{Base: world.Base{ID: id, Box: p.Box}})
	e.Step(core.NewInput())

	if p.HP != 80 {
		t.Errorf("player HP = %d, expected 80", p.HP)
	}
	if e.objs.Find(id) != nil {
		t.Error("the attack that hit should be removed")
	}
}

func TestFallWhileInvulnerableRespawns(t *testing.T) {
	lvl := arena()
	lvl.Objects = lvl.Objects[1:]
	e := NewEncounter(lvl, newEnv())
	e.Player().InvulnerableTimer = 1000

	respawned := false
	for i := 0; i < 200 && !respawned; i++ {
		respawned = count(e.Step(core.NewInput()).Events, event.Respawn) > 0
	}
	if !respawned {
		t.Fatal("falling out should always return the player to the spawn point")
	}
	if p := e.Player(); p.Box.X != 2100 || p.Box.Y != 592 {
		t.Errorf("player at (%v, %v), expected the spawn point", p.Box.X, p.Box.Y)
	}
}

func TestPickupsAndCheckpoint(t *testing.T) {
	lvl := arena()
	lvl.Start = core.Vec{X: 200, Y: 592}
	lvl.Objects = append(lvl.Objects,
		&world.DoubleJumpRune{Base: world.Base{ID: 60, Box: core.NewRect(200, 600, 40, 40)}},
		&world.Checkpoint{Base: world.Base{ID: 61, Box: core.NewRect(300, 608, 40, 40)}},
		&world.WeaponPickup{Base: world.Base{ID: 62, Box: core.NewRect(500, 608, 80, 40)}},
	)
	e := NewEncounter(lvl, newEnv())
	p := e.Player()

	e.Step(core.NewInput())
	if !p.HasDoubleJump {
		t.Fatal("touching the rune should grant the double jump")
	}
	e.Step(keys(core.KeyConfirm))

	for i := 0; i < 100 && p.Box.X < 480; i++ {
		e.Step(keys(core.KeyRight))
	}
	if p.Spawn.X != 300 || p.Spawn.Y != 608-56 {
		t.Errorf("spawn = %+v, expected the checkpoint", p.Spawn)
	}
	if e.objs.Find(61) != nil {
		t.Error("checkpoint should be consumed")
	}

	if p.HasWeapon {
		t.Fatal("the weapon needs an interaction")
	}
	e.Step(keys(core.KeyInteract))
	if !p.HasWeapon {
		t.Error("interacting with the pickup should grant the weapon")
	}
	if e.Snapshot().Dialogue == nil {
		t.Error("the weapon grant should show a dialogue")
	}
}

func TestBurstRevealsHiddenPlatforms(t *testing.T) {
	hidden := &world.HiddenPlatform{Base: world.Base{ID: 70, Box: core.NewRect(500, 400, 120, 40)}, Hidden: true}
	lvl := arena(hidden)
	lvl.Start = core.Vec{X: 200, Y: 592}
	e := NewEncounter(lvl, newEnv())

	in := keys(core.KeyBurst)
	res := e.Step(in)
	if count(res.Events, event.Burst) != 1 || hidden.Hidden {
		t.Fatalf("burst should reveal, hidden=%v", hidden.Hidden)
	}
	if in.Held(core.KeyBurst) {
		t.Error("a successful burst consumes its key")
	}

	again := keys(core.KeyBurst)
	if res := e.Step(again); count(res.Events, event.Burst) != 0 {
		t.Error("burst should be on cooldown")
	}
	if again.Held(core.KeyBurst) {
		t.Error("a burst press on cooldown should still be consumed")
	}
	for i := 0; i < 200; i++ {
		e.Step(core.NewInput())
	}
	if !hidden.Hidden {
		t.Error("the platform should hide again after the reveal window")
	}
}

func TestEncounterDeterministic(t *testing.T) {
	run := func() ([]event.Event, []world.Object) {
		e := NewEncounter(arena(crystals()...), newEnv())
		e.Player().HasWeapon = true

		var events []event.Event
		for i := 0; i < 900; i++ {
			in := keys(core.KeyFire)
			if i%120 < 60 {
				in.Keys.Press(core.KeyRight)
			} else {
				in.Keys.Press(core.KeyLeft)
			}
			in.Aim = &core.Vec{X: 2800, Y: 300}
			events = append(events, e.Step(in).Events...)
		}
		return events, e.Snapshot().Objects
	}

	ev1, obj1 := run()
	ev2, obj2 := run()
	if !reflect.DeepEqual(ev1, ev2) {
		t.Error("same seed and inputs produced different events")
	}
	if !reflect.DeepEqual(obj1, obj2) {
		t.Error("same seed and inputs produced different objects")
	}
	if count(ev1, event.GuardianShoot) == 0 {
		t.Error("the guardian should attack during the run")
	}
}
