package config

import (
	"errors"
	"fmt"
)

// Validate checks a configuration for values the simulation cannot run
// with. Every problem found is reported in the joined error.
func (c LuminConfig) Validate() error {
	var errs []error

	if c.World.Tile <= 0 {
		errs = append(errs, fmt.Errorf("world.tile must be positive, got %v", c.World.Tile))
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height))
	}
	if c.Player.MaxHP <= 0 {
		errs = append(errs, fmt.Errorf("player.max_hp must be positive, got %d", c.Player.MaxHP))
	}

	a := c.Abilities
	cooldowns := []struct {
		name string
		v    int
	}{
		{"burst_cooldown", a.BurstCooldown},
		{"weapon_cooldown", a.WeaponCooldown},
		{"overcharge_cooldown", a.OverchargeCooldown},
	}
	for _, cd := range cooldowns {
		if cd.v <= 0 {
			errs = append(errs, fmt.Errorf("abilities.%s must be positive, got %d", cd.name, cd.v))
		}
	}

	e := c.Encounter
	if e.MaxHP <= 0 {
		errs = append(errs, fmt.Errorf("encounter.max_hp must be positive, got %d", e.MaxHP))
	}
	if e.RumbleDelay <= 0 || e.VictoryDelay <= e.RumbleDelay {
		errs = append(errs, fmt.Errorf("encounter delays need 0 < rumble_delay < victory_delay, got %d and %d", e.RumbleDelay, e.VictoryDelay))
	}
	if e.Phase3Percent <= 0 || e.Phase2Percent <= e.Phase3Percent || e.Phase2Percent > 100 {
		errs = append(errs, fmt.Errorf("encounter phase thresholds need 0 < phase3_percent < phase2_percent <= 100, got %d and %d", e.Phase3Percent, e.Phase2Percent))
	}

	g := c.Guardian
	if len(g.SpeedScale) == 0 {
		errs = append(errs, errors.New("guardian.speed_scale is empty"))
	}
	if len(g.RateScale) == 0 {
		errs = append(errs, errors.New("guardian.rate_scale is empty"))
	}
	for i, r := range g.RateScale {
		if r <= 0 {
			errs = append(errs, fmt.Errorf("guardian.rate_scale[%d] must be positive, got %v", i, r))
		}
	}
	if len(g.RuneCounts) == 0 {
		errs = append(errs, errors.New("guardian.rune_counts is empty"))
	}
	for i, n := range g.RuneCounts {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("guardian.rune_counts[%d] must be positive, got %d", i, n))
		}
	}
	if g.AttackJitter < 0 {
		errs = append(errs, fmt.Errorf("guardian.attack_jitter must not be negative, got %d", g.AttackJitter))
	}
	for _, atk := range []struct {
		name string
		Attack
	}{{"orb", g.Orb}, {"rune", g.Rune}, {"bolt", g.Bolt}} {
		if atk.Cooldown <= 0 {
			errs = append(errs, fmt.Errorf("guardian.%s.cooldown must be positive, got %d", atk.name, atk.Cooldown))
		}
		if atk.Weight < 0 {
			errs = append(errs, fmt.Errorf("guardian.%s.weight must not be negative, got %v", atk.name, atk.Weight))
		}
	}
	if g.Orb.Weight+g.Rune.Weight+g.Bolt.Weight <= 0 {
		errs = append(errs, errors.New("guardian attack weights sum to zero"))
	}

	return errors.Join(errs...)
}
