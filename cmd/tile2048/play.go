package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile2048/internal/game"
	"github.com/vovakirdan/tile2048/internal/platform/tui"
	"github.com/vovakirdan/tile2048/internal/registry"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (default from config, usually classic).

A game left with Q is saved and resumed the next time the mode is played.
Choosing a campaign level with --level starts over instead.

Controls:
  Arrows/WASD/hjkl - Slide tiles
  Enter            - Dismiss a message
  P                - Pause
  R                - New game
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Save and quit

Examples:
  tile2048 play
  tile2048 play endless
  tile2048 play campaign --level 5
  tile2048 play classic --difficulty easy --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign start level (1-10)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	modeID := s.cfg.Play.Mode
	if len(args) > 0 {
		modeID = args[0]
	}
	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q, run 'tile2048 modes' to see available modes", modeID)
	}
	if flagLevel < 0 || flagLevel > game.LevelCount() {
		return fmt.Errorf("level must be between 1 and %d", game.LevelCount())
	}

	g, err := registry.Create(modeID, registry.Options{
		Config:     s.cfg,
		Logger:     s.logger,
		StartLevel: flagLevel,
	})
	if err != nil {
		return err
	}

	store := s.openStore()
	if store != nil {
		defer store.Close()
	}
	if flagLevel > 0 {
		discardSave(store, modeID, s)
	}

	s.logger.Info("starting", "mode", modeID, "fps", s.cfg.Play.FPS, "difficulty", s.cfg.Play.Difficulty)
	if err := tui.Run(g, store, s.logger, s.runtimeConfig()); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
