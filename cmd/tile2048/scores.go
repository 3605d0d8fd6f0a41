package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile2048/internal/registry"
	"github.com/vovakirdan/tile2048/internal/storage"
)

var (
	flagClear bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top high scores for the specified mode.

Examples:
  tile2048 scores classic
  tile2048 scores endless --limit 20
  tile2048 scores campaign --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the mode")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	modeID := args[0]

	info, ok := registry.Lookup(modeID)
	if !ok {
		return fmt.Errorf("unknown mode %q, run 'tile2048 modes' to see available modes", modeID)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	store, err := storage.Open(s.cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(modeID); err != nil {
			return err
		}
		fmt.Printf("Scores for %s cleared.\n", info.Title)
		return nil
	}

	scores, err := store.TopScores(modeID, flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tile2048 play %s' to set the first high score!\n", modeID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Tile", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-8d  %s\n", i+1, entry.Score, entry.MaxTile, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(modeID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.0f  Best tile: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestTile)
	}
	return nil
}
