// tile2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	tile2048 play [mode]      - Play classic, campaign or endless
//	tile2048 menu             - Pick a mode interactively
//	tile2048 modes            - List the available modes
//	tile2048 levels           - List the campaign levels
//	tile2048 scores <mode>    - Show high scores for a mode
//	tile2048 config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible games
//	--db <path>           - Set database path (default: ~/.tile2048/tile2048.db)
//	--config <path>       - Use a custom config file
//	--log-level <level>   - debug, info, warn or error
//	--difficulty <preset> - easy, normal, hard or custom
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game package to register its modes
	_ "github.com/vovakirdan/tile2048/internal/game"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLogLevel   string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tile2048",
	Short: "2048 in your terminal",
	Long: `tile2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the tiles with the arrow keys, WASD or hjkl. Equal tiles merge into
their sum. Reach 2048 in classic mode, clear ten levels in the campaign,
or play endless until the board locks up.

Available commands:
  play     - Play a mode directly
  menu     - Interactive mode picker
  modes    - Show all modes
  levels   - Show the campaign levels
  scores   - View high scores
  config   - Print the effective configuration

Examples:
  tile2048 play
  tile2048 play campaign --level 3
  tile2048 menu --difficulty hard
  tile2048 scores classic`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	flags.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	flags.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	flags.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, custom")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
