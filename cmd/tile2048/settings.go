package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tile2048/internal/config"
	"github.com/vovakirdan/tile2048/internal/core"
	"github.com/vovakirdan/tile2048/internal/storage"
)

// session holds everything a command needs once flags and config are resolved.
type session struct {
	cfg        config.GameConfig
	configPath string
	logger     *log.Logger
	logFile    io.Closer
}

// loadSettings resolves the configuration: .env, config file, TILE2048_*
// environment, then command-line flags.
func loadSettings(cmd *cobra.Command) (config.GameConfig, string, error) {
	if _, err := config.LoadEnv(); err != nil {
		return config.GameConfig{}, "", err
	}

	cfg, path, err := config.Load(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, path, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Play.FPS = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Play.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagDifficulty != "" {
		cfg.Play.Difficulty = flagDifficulty
	}

	preset, err := config.ParsePreset(cfg.Play.Difficulty)
	if err != nil {
		return cfg, path, err
	}
	config.ApplyPreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		return cfg, path, err
	}
	return cfg, path, nil
}

// newSession loads settings and opens the log file.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, path, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}

	logger, closer, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Debug("config loaded", "path", path)
	}

	return &session{cfg: cfg, configPath: path, logger: logger, logFile: closer}, nil
}

// newLogger writes to the configured log file, since the TUI owns stdout.
func newLogger(lc config.LogConfig) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", lc.Level, err)
	}

	var w io.Writer = io.Discard
	var closer io.Closer
	if lc.File != "" {
		path, err := config.ExpandHome(lc.File)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tile2048",
		Level:           level,
	})
	return logger, closer, nil
}

// Close flushes the log file.
func (s *session) Close() {
	if s.logFile != nil {
		//nolint:errcheck // Nothing to do if the log file cannot be closed
		s.logFile.Close()
	}
}

// openStore opens the database. Games still work without it.
func (s *session) openStore() *storage.Store {
	store, err := storage.Open(s.cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		s.logger.Warn("could not open scores database", "err", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the game to the terminal.
func (s *session) runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = s.cfg.Play.FPS
	cfg.Seed = s.cfg.Play.Seed
	return cfg
}

// discardSave drops a mode's save slot so that an explicit start level wins.
func discardSave(store *storage.Store, modeID string, s *session) {
	if store == nil {
		return
	}
	if err := store.DeleteState(modeID); err != nil {
		s.logger.Warn("cannot clear save", "mode", modeID, "err", err)
	}
}
