package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dungeon/internal/platform/tui"
	"github.com/vovakirdan/tui-dungeon/internal/registry"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

var (
	flagScoresPlain bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the deepest runs",
	Long: `Show the run history ranked by floor reached, then score.

Without --plain an interactive table is shown, with one tab per mode.
With --plain the top runs of one mode (or every mode) are printed.

Examples:
  dungeon scores
  dungeon scores --plain
  dungeon scores crawler_endless --plain --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a plain text table instead of the TUI")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to print with --plain")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown game %q, run 'dungeon list' to see modes", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	if !flagScoresPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		_, err := tui.RunScoreboard(store, width, height)
		return err
	}

	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	printRuns(cmd.OutOrStdout(), gameID, runs)
	return nil
}

// printRuns writes runs as a plain text table.
func printRuns(out io.Writer, gameID string, runs []storage.Run) {
	title := "all modes"
	if gameID != "" {
		title = gameID
	}
	fmt.Fprintf(out, "Deepest Runs - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'dungeon play' to start one.")
		return
	}

	fmt.Fprintf(out, "  %-4s  %-16s  %-5s  %-5s  %-8s  %-6s  %-20s  %s\n",
		"Rank", "Mode", "Floor", "Rooms", "Score", "Result", "Seed", "Date")
	fmt.Fprintf(out, "  %-4s  %-16s  %-5s  %-5s  %-8s  %-6s  %-20s  %s\n",
		"----", "----", "-----", "-----", "-----", "------", "----", "----")
	for i, r := range runs {
		result := "died"
		if r.Won {
			result = "won"
		}
		fmt.Fprintf(out, "  %-4d  %-16s  %-5d  %-5d  %-8d  %-6s  %-20d  %s\n",
			i+1, r.GameID, r.FloorReached, r.RoomsCleared, r.Score, result, r.Seed,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
