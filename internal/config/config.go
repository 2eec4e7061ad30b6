// Package config provides YAML-based tuning configuration for the
// simulation: physics constants, ability timings, puzzle timers and the
// boss encounter parameters.
package config

// LuminConfig contains every tunable number the simulation reads.
type LuminConfig struct {
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Abilities AbilitiesConfig `yaml:"abilities"`
	Puzzles   PuzzlesConfig   `yaml:"puzzles"`
	Encounter EncounterConfig `yaml:"encounter"`
	Guardian  GuardianConfig  `yaml:"guardian"`
}

// WorldConfig defines the world grid and the visible area.
type WorldConfig struct {
	Tile          float64 `yaml:"tile"`           // Size of one tile in world units
	Width         float64 `yaml:"width"`          // Visible width in world units
	Height        float64 `yaml:"height"`         // Visible height in world units
	FallLimit     float64 `yaml:"fall_limit"`     // Player is out of bounds below height + fall_limit
	DespawnMargin float64 `yaml:"despawn_margin"` // Falling platforms are removed below height + despawn_margin
	CameraLerp    float64 `yaml:"camera_lerp"`    // Fraction of the camera error closed per tick
}

// PhysicsConfig defines the integration constants shared by the player and free bodies.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	MoveSpeed        float64 `yaml:"move_speed"`
	JumpImpulse      float64 `yaml:"jump_impulse"`
	DoubleJumpFactor float64 `yaml:"double_jump_factor"` // Second jump is jump_impulse * factor
	MaxFallSpeed     float64 `yaml:"max_fall_speed"`
	Friction         float64 `yaml:"friction"`
	StopThreshold    float64 `yaml:"stop_threshold"` // |vx| below this snaps to zero
	PushForce        float64 `yaml:"push_force"`
}

// PlayerConfig defines the player body.
type PlayerConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	MaxHP             int     `yaml:"max_hp"`
	InvulnerableTicks int     `yaml:"invulnerable_ticks"`
}

// AbilitiesConfig defines burst and weapon timings.
type AbilitiesConfig struct {
	BurstCooldown      int     `yaml:"burst_cooldown"`
	RevealTicks        int     `yaml:"reveal_ticks"`
	WeaponCooldown     int     `yaml:"weapon_cooldown"`
	OverchargeCooldown int     `yaml:"overcharge_cooldown"`
	BarrelOffset       float64 `yaml:"barrel_offset"`
	Projectile         Shot    `yaml:"projectile"`
	Overcharge         Shot    `yaml:"overcharge"`
}

// Shot describes a spawned projectile.
type Shot struct {
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PuzzlesConfig defines the shared puzzle timers.
type PuzzlesConfig struct {
	TeleportCooldown int     `yaml:"teleport_cooldown"`
	TimedDoorTicks   int     `yaml:"timed_door_ticks"`
	PlateBand        float64 `yaml:"plate_band"` // Height of the player's bottom band that presses plates
}

// EncounterConfig defines the boss level rules. Positions are in tiles.
type EncounterConfig struct {
	TriggerX         float64 `yaml:"trigger_x"`
	ArenaX           float64 `yaml:"arena_x"`
	SpawnX           float64 `yaml:"spawn_x"`
	SpawnY           float64 `yaml:"spawn_y"`
	Size             float64 `yaml:"size"`
	MaxHP            int     `yaml:"max_hp"`
	Phase2Percent    int     `yaml:"phase2_percent"`
	Phase3Percent    int     `yaml:"phase3_percent"`
	AttackDamage     int     `yaml:"attack_damage"`
	OverchargeDamage int     `yaml:"overcharge_damage"`
	VulnerableDamage int     `yaml:"vulnerable_damage"`
	ChipDamage       int     `yaml:"chip_damage"`
	FallDamage       int     `yaml:"fall_damage"`
	RumbleDelay      int     `yaml:"rumble_delay"`
	VictoryDelay     int     `yaml:"victory_delay"`
	VirusHP          int     `yaml:"virus_hp"`
	MoveLerp         float64 `yaml:"move_lerp"`
}

// GuardianConfig defines the boss behaviour cycle and attack patterns.
type GuardianConfig struct {
	InitialTicks    int       `yaml:"initial_ticks"`
	ResetTicks      int       `yaml:"reset_ticks"`
	RepositionTicks int       `yaml:"reposition_ticks"`
	AttackMinTicks  int       `yaml:"attack_min_ticks"`
	AttackJitter    int       `yaml:"attack_jitter"` // Attack window is min + U[0, jitter)
	HoverTiles      float64   `yaml:"hover_tiles"`
	SpeedScale      []float64 `yaml:"speed_scale"` // Per phase1, phase2, phase3
	RateScale       []float64 `yaml:"rate_scale"`
	RuneCounts      []int     `yaml:"rune_counts"`
	Orb             Attack    `yaml:"orb"`
	Rune            Attack    `yaml:"rune"`
	Bolt            Attack    `yaml:"bolt"`
}

// Attack describes one guardian attack pattern.
type Attack struct {
	Weight   float64 `yaml:"weight"`   // Selection weight, weights are normalised
	Cooldown int     `yaml:"cooldown"` // Divided by the phase rate scale
	Speed    float64 `yaml:"speed"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
}

// PhaseValue returns the entry for a phase number (1..3), clamped to the
// available entries. An empty table yields fallback.
func PhaseValue[T any](table []T, phase int, fallback T) T {
	if len(table) == 0 {
		return fallback
	}
	i := phase - 1
	if i < 0 {
		i = 0
	}
	if i >= len(table) {
		i = len(table) - 1
	}
	return table[i]
}
