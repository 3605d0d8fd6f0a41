// Package config provides YAML-based game configuration: embedded defaults,
// a file search path, .env and environment overrides, and validation.
package config

import (
	"errors"
	"fmt"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "TILE2048_"

// ErrInvalidConfig is wrapped by Validate for every rejected setting.
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig contains the whole game configuration.
type GameConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Animation AnimationConfig `yaml:"animation"`
	Play      PlayConfig      `yaml:"play"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
}

// BoardConfig defines the grid and spawn rules.
type BoardConfig struct {
	Rows         int     `yaml:"rows"`
	Cols         int     `yaml:"cols"`
	Spawn4Chance float64 `yaml:"spawn4_chance"` // Probability of spawning a 4 instead of a 2
	WinTile      int     `yaml:"win_tile"`      // Classic mode congratulates once this tile appears
}

// AnimationConfig defines tile animation timing, in ticks.
type AnimationConfig struct {
	Enabled    bool `yaml:"enabled"`
	SlideTicks int  `yaml:"slide_ticks"`
	PopTicks   int  `yaml:"pop_ticks"`
}

// PlayConfig defines the session defaults used by the CLI.
type PlayConfig struct {
	Mode       string `yaml:"mode"`
	FPS        int    `yaml:"fps"`
	Seed       int64  `yaml:"seed"` // 0 = seed from the clock
	Difficulty string `yaml:"difficulty"`
}

// StorageConfig defines where scores and saves are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines the log file and level.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// Validate checks that every setting is usable.
func (c GameConfig) Validate() error {
	var errs []error

	if c.Board.Rows < 2 || c.Board.Rows > 8 {
		errs = append(errs, fmt.Errorf("board.rows must be between 2 and 8, got %d", c.Board.Rows))
	}
	if c.Board.Cols < 2 || c.Board.Cols > 8 {
		errs = append(errs, fmt.Errorf("board.cols must be between 2 and 8, got %d", c.Board.Cols))
	}
	if c.Board.Spawn4Chance < 0 || c.Board.Spawn4Chance > 1 {
		errs = append(errs, fmt.Errorf("board.spawn4_chance must be within [0, 1], got %v", c.Board.Spawn4Chance))
	}
	if c.Board.WinTile < 4 || c.Board.WinTile&(c.Board.WinTile-1) != 0 {
		errs = append(errs, fmt.Errorf("board.win_tile must be a power of two >= 4, got %d", c.Board.WinTile))
	}
	if c.Animation.SlideTicks < 0 || c.Animation.PopTicks < 0 {
		errs = append(errs, errors.New("animation ticks must not be negative"))
	}
	if c.Play.FPS < 1 || c.Play.FPS > 240 {
		errs = append(errs, fmt.Errorf("play.fps must be between 1 and 240, got %d", c.Play.FPS))
	}
	if _, err := ParsePreset(c.Play.Difficulty); err != nil {
		errs = append(errs, err)
	}
	if c.Storage.DBPath == "" {
		errs = append(errs, errors.New("storage.db_path must be set"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
