package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile2048/internal/game"
	"github.com/vovakirdan/tile2048/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:     "modes",
	Aliases: []string{"list"},
	Short:   "List all available modes",
	Long:    `Shows every game mode with a short description.`,
	Run:     runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, m := range modes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, m.ID, m.Description)
	}

	fmt.Println()
	fmt.Println("Run 'tile2048 play <id>' to play a mode.")
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long:  `Shows the ten campaign levels with their target tile and spawn odds.`,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	fmt.Println("Campaign levels:")
	fmt.Println()
	fmt.Printf("  %-5s  %-20s  %-7s  %s\n", "Level", "Name", "Target", "4s")
	fmt.Printf("  %-5s  %-20s  %-7s  %s\n", "-----", "----", "------", "--")
	for _, l := range game.Levels {
		fmt.Printf("  %-5d  %-20s  %-7d  %.0f%%\n", l.ID, l.Name, l.Target, l.Spawn4*100)
	}

	fmt.Println()
	fmt.Println("Run 'tile2048 play campaign --level <n>' to start at a level.")
}
