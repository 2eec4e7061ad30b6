package config

import (
	_ "embed"
)

//go:embed defaults/lumin.yaml
var defaultLuminYAML []byte

// DefaultConfig returns the hardcoded default configuration.
// It mirrors defaults/lumin.yaml and is used if the embedded file cannot be parsed.
func DefaultConfig() LuminConfig {
	return LuminConfig{
		World: WorldConfig{
			Tile:          40,
			Width:         1024,
			Height:        768,
			FallLimit:     100,
			DespawnMargin: 200,
			CameraLerp:    0.1,
		},
		Physics: PhysicsConfig{
			Gravity:          0.8,
			MoveSpeed:        5,
			JumpImpulse:      -15,
			DoubleJumpFactor: 0.9,
			MaxFallSpeed:     15,
			Friction:         0.85,
			StopThreshold:    0.1,
			PushForce:        3,
		},
		Player: PlayerConfig{
			Width:             32,
			Height:            56,
			MaxHP:             100,
			InvulnerableTicks: 90,
		},
		Abilities: AbilitiesConfig{
			BurstCooldown:      480,
			RevealTicks:        180,
			WeaponCooldown:     15,
			OverchargeCooldown: 1800,
			BarrelOffset:       20,
			Projectile:         Shot{Speed: 25, Width: 40, Height: 8},
			Overcharge:         Shot{Speed: 18, Width: 50, Height: 50},
		},
		Puzzles: PuzzlesConfig{
			TeleportCooldown: 60,
			TimedDoorTicks:   300,
			PlateBand:        10,
		},
		Encounter: EncounterConfig{
			TriggerX:         50,
			ArenaX:           52,
			SpawnX:           68,
			SpawnY:           5,
			Size:             4,
			MaxHP:            300,
			Phase2Percent:    66,
			Phase3Percent:    33,
			AttackDamage:     20,
			OverchargeDamage: 70,
			VulnerableDamage: 10,
			ChipDamage:       1,
			FallDamage:       100,
			RumbleDelay:      90,
			VictoryDelay:     180,
			VirusHP:          5,
			MoveLerp:         0.1,
		},
		Guardian: GuardianConfig{
			InitialTicks:    480,
			ResetTicks:      300,
			RepositionTicks: 90,
			AttackMinTicks:  480,
			AttackJitter:    240,
			HoverTiles:      6,
			SpeedScale:      []float64{1, 1.4, 1.8},
			RateScale:       []float64{1, 1.3, 1.6},
			RuneCounts:      []int{3, 5, 8},
			Orb:             Attack{Weight: 0.45, Cooldown: 40, Speed: 8, Width: 30, Height: 30},
			Rune:            Attack{Weight: 0.45, Cooldown: 65, Speed: 7, Width: 40, Height: 40},
			Bolt:            Attack{Weight: 0.10, Cooldown: 60, Speed: 15, Width: 40, Height: 8},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultLuminYAML
}
