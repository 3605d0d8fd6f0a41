package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile2048/internal/config"
	"github.com/vovakirdan/tile2048/internal/platform/tui"
	"github.com/vovakirdan/tile2048/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode from a menu",
	Long: `Start tile2048 in interactive menu mode.

Use arrow keys or j/k to choose a mode, left/right to change the difficulty
and Enter to play. Tab opens the score table. After a game you return to
the menu.

Examples:
  tile2048 menu
  tile2048 menu --fps 30
  tile2048 menu --db ./tile2048.db`,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	store := s.openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := s.runtimeConfig()
	difficulty, _ := config.ParsePreset(s.cfg.Play.Difficulty)

	for {
		result, err := tui.RunMenu(cfg, difficulty)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, s.cfg.Play.Mode, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return nil
		}

		sel := result.Selection
		difficulty = sel.Difficulty

		gameCfg := s.cfg
		config.ApplyPreset(&gameCfg, sel.Difficulty)

		g, err := registry.Create(sel.ModeID, registry.Options{
			Config:     gameCfg,
			Logger:     s.logger,
			StartLevel: sel.Level,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if sel.Level > 0 {
			discardSave(store, sel.ModeID, s)
		}

		// Fresh seed for each game unless one was fixed
		if s.cfg.Play.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		s.logger.Info("starting", "mode", sel.ModeID, "level", sel.Level, "difficulty", sel.Difficulty)
		if err := tui.Run(g, store, s.logger, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
