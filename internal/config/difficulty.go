package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset is a named spawn profile for classic and endless play.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyCustom DifficultyPreset = "custom" // Keep board.spawn4_chance as configured
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyCustom}

// ParsePreset converts a name into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyCustom:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or custom)", s)
	}
}

// Spawn4ChanceForPreset returns the probability of spawning a 4 for a preset.
// More 4s fill the board faster, which makes the game harder.
func Spawn4ChanceForPreset(preset DifficultyPreset, custom float64) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.1
	case DifficultyNormal:
		return 0.5
	case DifficultyHard:
		return 0.8
	default:
		return custom
	}
}

// ApplyPreset sets the spawn chance of cfg from a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	cfg.Play.Difficulty = string(preset)
	cfg.Board.Spawn4Chance = Spawn4ChanceForPreset(preset, cfg.Board.Spawn4Chance)
}
