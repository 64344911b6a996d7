package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dungeon/internal/config"
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/games/crawler"
	"github.com/vovakirdan/tui-dungeon/internal/platform/tui"
	"github.com/vovakirdan/tui-dungeon/internal/registry"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Start a run",
	Long: `Start a run in the given mode (crawler or crawler_endless).
Without a mode the title menu is shown.

Controls:
  WASD/Arrows  - Move
  Space        - Attack
  M/Tab        - Floor map
  P/Esc        - Pause
  R            - Restart (after the run ends)
  Ctrl+S       - Screenshot to ~/.dungeon/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 8 HP, 5 lives, half enemy damage
  normal - 6 HP, 3 lives
  hard   - 4 HP, 2 lives, enemies hit 50% harder and start tougher

Examples:
  dungeon play
  dungeon play crawler --seed 42
  dungeon play crawler_endless --difficulty hard
  dungeon play --config ./my-dungeon.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom dungeon config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, args []string) error {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
	}
	if flagConfig != "" {
		if _, err := config.LoadDungeon(flagConfig); err != nil {
			return err
		}
	}
	crawler.SetConfigPath(flagConfig)
	crawler.SetDifficultyPreset(flagDifficulty)

	cfg := runtimeConfig()
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			return fmt.Errorf("unknown game %q, run 'dungeon list' to see modes", args[0])
		}
		return playOnce(args[0], "", store, cfg)
	}

	// Menu loop
	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch {
		case res.Quit || (res.GameID == "" && !res.WantsScoreboard):
			return nil
		case res.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		// A difficulty from the command line wins over the menu's.
		difficulty := string(res.Difficulty)
		if flagDifficulty != "" {
			difficulty = ""
		}
		if err := playOnce(res.GameID, difficulty, store, cfg); err != nil {
			return err
		}
		cfg.Seed = flagSeed
	}
}

// playOnce runs a single game until the player quits it.
func playOnce(gameID, difficulty string, store *storage.Store, cfg core.RuntimeConfig) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if t, ok := game.(registry.Tunable); ok && difficulty != "" {
		t.SetDifficulty(difficulty)
	}
	logger.Info("starting run", "game", gameID, "seed", cfg.Seed, "difficulty", difficulty)
	return tui.Run(game, store, cfg)
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
