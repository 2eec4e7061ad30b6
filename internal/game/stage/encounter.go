package stage

import (
	"github.com/vovakirdan/lumin/internal/core"
	"github.com/vovakirdan/lumin/internal/event"
	"github.com/vovakirdan/lumin/internal/game/guardian"
	"github.com/vovakirdan/lumin/internal/game/scene"
	"github.com/vovakirdan/lumin/internal/game/world"
	"github.com/vovakirdan/lumin/internal/levels"
	"github.com/vovakirdan/lumin/internal/registry"
)

// Encounter runs the guardian level: the approach with the ability
// pickups, then the arena fight.
type Encounter struct {
	base

	ai    *guardian.AI
	phase guardian.Phase
	boss  *world.Guardian // Nil before the awakening and after the victory

	crystals    int // Crystals shattered so far
	phase2Done  bool
	phase3Done  bool
	defeatTicks int // Ticks since defeat, -1 before it
	virus       bool
}

// NewEncounter creates the stage with a fresh copy of the level.
func NewEncounter(lvl levels.Level, env registry.Env) *Encounter {
	e := &Encounter{
		base:        newBase(lvl, env),
		phase:       guardian.PhaseIntro,
		defeatTicks: -1,
	}
	e.ai = guardian.NewAI(e.cfg, env.Rand, e.objs.NextID)
	return e
}

// ApplyVirus drops the guardian to a sliver of health. Before the
// guardian appears the effect waits for it.
func (e *Encounter) ApplyVirus() {
	e.virus = true
}

// Phase returns the current combat phase.
func (e *Encounter) Phase() guardian.Phase { return e.phase }

// Step advances the encounter by one tick.
func (e *Encounter) Step(in *core.Input) scene.StepResult {
	if e.complete || e.paused(in) {
		return e.result()
	}
	e.tick++

	e.ctl.Tick()
	e.abilities(in)
	e.graph.UpdateHidden()

	e.ctl.MoveX(in, e.objs)
	e.ctl.MoveY(in, e.objs)
	e.interact(in)
	if e.complete {
		return e.result()
	}

	e.awaken()
	e.applyVirus()
	e.updatePhase()
	e.updateDefeat()
	if e.complete {
		return e.result()
	}

	if e.boss != nil && e.phase.Combat() {
		e.runAI()
	}
	e.updateAttacks()
	e.updateProjectiles()
	e.updateVulnerability()

	if e.ctl.OutOfBounds() && !e.hurt(e.cfg.Encounter.FallDamage) {
		e.ctl.Respawn()
	}

	e.camera.Follow(e.ctl.P.Box.X)
	return e.result()
}

func (e *Encounter) abilities(in *core.Input) {
	if in.Take(core.KeyBurst) && e.ctl.Burst() {
		e.graph.Reveal()
	}
	if in.Take(core.KeyOvercharge) {
		e.ctl.Fire(in.Aim, true, e.objs)
	}
	if in.Take(core.KeyFire) {
		e.ctl.Fire(in.Aim, false, e.objs)
	}
}

func (e *Encounter) interact(in *core.Input) {
	p := e.ctl.P

	for _, obj := range e.ctl.Scan(e.objs) {
		box := world.Box(obj)
		center := box.Center()

		switch v := obj.(type) {
		case *world.DoubleJumpRune:
			if p.HasDoubleJump {
				continue
			}
			p.HasDoubleJump = true
			e.objs.Remove(v.ID)
			e.bus.Emit(event.Event{Kind: event.Collect, X: center.X, Y: center.Y, ID: v.ID})
			e.say(scene.RuneGranted)

		case *world.Checkpoint:
			p.Spawn = core.Vec{X: box.X, Y: box.Y - p.Box.H}
			e.objs.Remove(v.ID)

		case *world.FinalBook:
			if !v.Hidden {
				v.Hidden = true
				e.finish()
				return
			}
		}
	}

	if w, ok := e.ctl.Interact(in).(*world.WeaponPickup); ok && !p.HasWeapon {
		p.HasWeapon = true
		e.objs.Remove(w.ID)
		c := w.Box.Center()
		e.bus.Emit(event.Event{Kind: event.Collect, X: c.X, Y: c.Y, ID: w.ID})
		e.say(scene.WeaponGranted)
	}
}

// awaken spawns the guardian once the player crosses into the arena.
func (e *Encounter) awaken() {
	ec := e.cfg.Encounter
	tile := e.cfg.World.Tile
	if e.phase != guardian.PhaseIntro || e.ctl.P.Box.X <= ec.TriggerX*tile {
		return
	}

	e.boss = &world.Guardian{
		Base: world.Base{
			ID:  e.objs.NextID(),
			Box: core.NewRect(ec.SpawnX*tile, ec.SpawnY*tile, ec.Size*tile, ec.Size*tile),
		},
		HP:    ec.MaxHP,
		MaxHP: ec.MaxHP,
	}
	e.objs.Add(e.boss)
	e.setPhase(guardian.PhaseAwakening)
	e.setPhase(guardian.Phase1)
}

// applyVirus drops the guardian to the cheat HP. It waits for the guardian
// to wake and is discarded once the guardian is down.
func (e *Encounter) applyVirus() {
	if !e.virus {
		return
	}
	if e.phase == guardian.PhaseDefeated {
		e.virus = false
		return
	}
	if e.boss == nil {
		return
	}
	e.virus = false
	if e.phase.Combat() && e.boss.HP > 0 {
		e.boss.HP = e.cfg.Encounter.VirusHP
	}
}

// updatePhase moves through the HP thresholds. Each transition happens at
// most once per attempt.
func (e *Encounter) updatePhase() {
	if e.boss == nil {
		return
	}
	ec := e.cfg.Encounter
	hp, maxHP := e.boss.HP, e.boss.MaxHP

	if e.phase == guardian.Phase1 && !e.phase2Done && hp*100 <= maxHP*ec.Phase2Percent {
		e.phase2Done = true
		e.setPhase(guardian.Phase2)
	}
	if e.phase == guardian.Phase2 && !e.phase3Done && hp*100 <= maxHP*ec.Phase3Percent {
		e.phase3Done = true
		e.setPhase(guardian.Phase3)
	}
}

// updateDefeat runs the defeat sequence: the collapse, the rumble and
// finally the victory with the final book revealed.
func (e *Encounter) updateDefeat() {
	ec := e.cfg.Encounter

	if e.boss != nil && e.boss.HP <= 0 && e.phase != guardian.PhaseDefeated {
		e.setPhase(guardian.PhaseDefeated)
		c := e.boss.Box.Center()
		e.bus.At(event.MusicStop, c.X, c.Y)
		e.bus.Emit(event.Event{Kind: event.Impact, X: c.X, Y: c.Y, Intensity: 25})
		e.defeatTicks = 0
		return
	}
	if e.defeatTicks < 0 {
		return
	}

	e.defeatTicks++
	if e.defeatTicks == ec.RumbleDelay {
		c := e.boss.Box.Center()
		e.bus.Emit(event.Event{Kind: event.Rumble, X: c.X, Y: c.Y, Intensity: 15})
	}
	if e.defeatTicks >= ec.VictoryDelay {
		c := e.boss.Box.Center()
		e.objs.Remove(e.boss.ID)
		e.boss = nil
		e.bus.At(event.Victory, c.X, c.Y)
		for _, fb := range world.Of[*world.FinalBook](e.objs) {
			fb.Hidden = false
		}
		e.dialogue.PushThen(e.finish, scene.GuardianDefeated...)
		e.defeatTicks = -1
	}
}

func (e *Encounter) runAI() {
	lerp := e.cfg.Encounter.MoveLerp
	for _, action := range e.ai.Update(e.phase, e.boss.Box, e.ctl.P.Box) {
		switch a := action.(type) {
		case guardian.Move:
			e.boss.Box.X += (a.Target.X - e.boss.Box.X) * lerp
			e.boss.Box.Y += (a.Target.Y - e.boss.Box.Y) * lerp
		case guardian.SpawnAttacks:
			if len(a.Attacks) == 0 {
				continue
			}
			for _, atk := range a.Attacks {
				e.objs.Add(atk)
			}
			c := e.boss.Box.Center()
			e.bus.Emit(event.Event{Kind: event.GuardianShoot, X: c.X, Y: c.Y, Text: a.Attacks[0].Attack.String()})
		}
	}
}

// updateAttacks moves guardian attacks, drops those that left the arena
// and applies hits on the player.
func (e *Encounter) updateAttacks() {
	tile := e.cfg.World.Tile
	ec := e.cfg.Encounter
	minX := ec.TriggerX * tile
	maxX := e.width() + 50
	maxY := e.cfg.World.Height + 50

	for _, atk := range world.Of[*world.GuardianAttack](e.objs) {
		atk.Box.X += atk.VX
		atk.Box.Y += atk.VY
		if atk.Box.Y >= maxY || atk.Box.X <= minX || atk.Box.X >= maxX {
			e.objs.Remove(atk.ID)
			continue
		}
		if core.Collides(e.ctl.P.Box, atk.Box) {
			e.hurt(ec.AttackDamage)
			e.objs.Remove(atk.ID)
		}
	}
}

// updateProjectiles moves the player's shots and resolves hits on the
// guardian and the truth crystals. A shot is spent on its first hit.
func (e *Encounter) updateProjectiles() {
	ec := e.cfg.Encounter
	maxX := e.width() + 50
	maxY := e.cfg.World.Height + 50

	for _, proj := range world.Of[*world.Projectile](e.objs) {
		proj.Box.X += proj.VX
		proj.Box.Y += proj.VY
		if proj.Box.X <= -50 || proj.Box.X >= maxX || proj.Box.Y <= -50 || proj.Box.Y >= maxY {
			e.objs.Remove(proj.ID)
			continue
		}

		hit := proj.Box.Center()
		if e.boss != nil && e.boss.HP > 0 && e.phase != guardian.PhaseDefeated && core.Collides(proj.Box, e.boss.Box) {
			switch {
			case proj.Overcharged:
				e.damageBoss(ec.OverchargeDamage)
				e.bus.Emit(event.Event{Kind: event.Impact, X: hit.X, Y: hit.Y, ID: proj.ID, Intensity: 20})
			case e.phase == guardian.PhaseVulnerable:
				e.damageBoss(ec.VulnerableDamage)
				e.bus.Emit(event.Event{Kind: event.Impact, X: hit.X, Y: hit.Y, ID: proj.ID, Intensity: 12})
			default:
				e.damageBoss(ec.ChipDamage)
				e.bus.Emit(event.Event{Kind: event.ShieldHit, X: hit.X, Y: hit.Y, ID: proj.ID})
			}
			e.objs.Remove(proj.ID)
			continue
		}

		for _, crystal := range world.Of[*world.TruthCrystal](e.objs) {
			if !core.Collides(proj.Box, crystal.Box) {
				continue
			}
			e.objs.Remove(crystal.ID)
			e.objs.Remove(proj.ID)
			e.crystals++
			c := crystal.Box.Center()
			e.bus.Emit(event.Event{Kind: event.CrystalCollect, X: c.X, Y: c.Y, ID: crystal.ID, Intensity: 10})
			break
		}
	}
}

// width is the playable width of the level.
func (e *Encounter) width() float64 {
	if e.lvl.Width > 0 {
		return e.lvl.Width
	}
	return 2 * e.cfg.World.Width
}

func (e *Encounter) damageBoss(n int) {
	e.boss.HP -= n
	if e.boss.HP < 0 {
		e.boss.HP = 0
	}
}

// updateVulnerability drops the shield once every crystal is gone.
func (e *Encounter) updateVulnerability() {
	if e.boss == nil || e.boss.HP <= 0 {
		return
	}
	_, crystalsLeft := world.First[*world.TruthCrystal](e.objs)

	switch {
	case !crystalsLeft && e.phase.Combat() && e.phase != guardian.PhaseVulnerable:
		e.setPhase(guardian.PhaseVulnerable)
	case crystalsLeft && e.phase == guardian.PhaseVulnerable:
		e.setPhase(e.hpPhase())
	}
}

// hpPhase is the phase the guardian's health alone implies.
func (e *Encounter) hpPhase() guardian.Phase {
	ec := e.cfg.Encounter
	hp, maxHP := e.boss.HP, e.boss.MaxHP
	switch {
	case hp*100 <= maxHP*ec.Phase3Percent:
		return guardian.Phase3
	case hp*100 <= maxHP*ec.Phase2Percent:
		return guardian.Phase2
	default:
		return guardian.Phase1
	}
}

func (e *Encounter) setPhase(p guardian.Phase) {
	e.phase = p
	x, y := e.ctl.P.Box.X, e.ctl.P.Box.Y
	if e.boss != nil {
		c := e.boss.Box.Center()
		x, y = c.X, c.Y
	}
	e.bus.Emit(event.Event{Kind: event.PhaseChange, X: x, Y: y, Phase: string(p)})
}

// hurt damages the player. A hit that kills sends the player back to the
// checkpoint and gives the guardian a fresh attack window.
func (e *Encounter) hurt(n int) bool {
	if !e.ctl.TakeDamage(n) {
		return false
	}
	if e.ctl.P.HP == e.ctl.P.MaxHP {
		e.ai.Reset()
	}
	return true
}

// Snapshot returns a copy of the current state.
func (e *Encounter) Snapshot() scene.Snapshot {
	snap := e.snapshot()
	snap.Phase = string(e.phase)
	snap.Crystals = e.crystals
	if e.boss != nil {
		snap.BossHP = e.boss.HP
		snap.BossMaxHP = e.boss.MaxHP
	}
	return snap
}
