package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in configuration.
// It matches defaults/game.yaml and backs it up if the embedded file is unreadable.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Board: BoardConfig{
			Rows:         4,
			Cols:         4,
			Spawn4Chance: 0.5,
			WinTile:      2048,
		},
		Animation: AnimationConfig{
			Enabled:    true,
			SlideTicks: 6,
			PopTicks:   4,
		},
		Play: PlayConfig{
			Mode:       "classic",
			FPS:        60,
			Difficulty: string(DifficultyNormal),
		},
		Storage: StorageConfig{
			DBPath: "~/.tile2048/tile2048.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.tile2048/tile2048.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGameYAML
}
