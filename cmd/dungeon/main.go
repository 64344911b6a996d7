// dungeon is a terminal dungeon crawler with procedurally generated floors.
//
// Usage:
//
//	dungeon list              - List available game modes
//	dungeon play [mode]       - Play a run (default: crawler)
//	dungeon gen               - Generate floors and print their maps
//	dungeon serve             - Start SSH server for remote play
//	dungeon scores [mode]     - Show the deepest runs
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible floors
//	--db <path>         - Set database path (default: ~/.dungeon/runs.db)
//	--log-level <lvl>   - CLI log level (default: warn)
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-dungeon/internal/games/crawler"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     uint64
	flagDBPath   string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "dungeon"})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dungeon",
	Short: "Dungeon - descend procedurally generated floors in your terminal",
	Long: `Dungeon is a terminal roguelite. Every floor is a fresh grid of rooms
grown from a seed: fight through combat rooms, loot treasure, shop, kill the
Bone King and take the stairs down.

Available commands:
  list     - Show all game modes
  play     - Start a run
  gen      - Print generated floor maps
  serve    - Start SSH server for remote play
  scores   - View the deepest runs

Examples:
  dungeon play
  dungeon play crawler_endless --difficulty hard
  dungeon gen --floor 3 --seed 42 --count 5
  dungeon serve --ssh :2222
  dungeon scores --plain`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "CLI log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// openStore opens the run history, or returns nil with a warning so a game
// can still be played without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
