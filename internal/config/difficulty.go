package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty validates a preset name. The empty string means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the configuration untouched.
func ApplyPreset(cfg *LuminConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHP = 150
		cfg.Encounter.AttackDamage = 15
		cfg.Encounter.MaxHP = 240
	case DifficultyHard:
		cfg.Player.MaxHP = 80
		cfg.Encounter.AttackDamage = 25
		cfg.Player.InvulnerableTicks = 60
	}
}
