package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dungeon/internal/config"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/floor"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/room"
)

var (
	flagGenFloor     int
	flagGenCount     int
	flagGenTemplates bool
	flagGenConfig    string
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate floors and print their maps",
	Long: `Generate one or more floors and print a minimap, a summary line and the
validation result for each. Seeds for later floors follow on from --seed.

Map legend:
  S start   C combat   -/| connections
  B boss    X exit     T treasure   $ shop   + corridor

Examples:
  dungeon gen --seed 42
  dungeon gen --floor 5 --seed 7 --count 10
  dungeon gen --templates`,
	Args: cobra.NoArgs,
	RunE: runGen,
}

func init() {
	genCmd.Flags().IntVar(&flagGenFloor, "floor", 1, "Floor number to generate")
	genCmd.Flags().IntVar(&flagGenCount, "count", 1, "Number of consecutive seeds to generate")
	genCmd.Flags().BoolVar(&flagGenTemplates, "templates", false, "Print the room template catalog instead")
	genCmd.Flags().StringVar(&flagGenConfig, "config", "", "Path to custom dungeon config YAML")
}

func runGen(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if flagGenTemplates {
		if err := room.Validate(); err != nil {
			return fmt.Errorf("template catalog is invalid: %w", err)
		}
		printTemplates(out, room.Catalog())
		return nil
	}

	if flagGenFloor < 1 {
		return fmt.Errorf("floor must be at least 1, got %d", flagGenFloor)
	}
	if flagGenCount < 1 {
		return fmt.Errorf("count must be at least 1, got %d", flagGenCount)
	}

	cfg, err := config.LoadDungeon(flagGenConfig)
	if err != nil {
		return err
	}
	gen := floor.NewGenerator(cfg.ToParams(), floor.WithLogger(logger))

	failed := 0
	for i := range flagGenCount {
		seed := flagSeed + uint64(i) //#nosec G115 -- i is a small loop index
		if err := printFloor(out, gen, flagGenFloor, seed); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d floors failed validation", failed, flagGenCount)
	}
	return nil
}

// printFloor generates one floor and prints it. It returns the validation
// error, if any, after printing it.
func printFloor(out io.Writer, gen *floor.Generator, floorNumber int, seed uint64) error {
	l := gen.Generate(floorNumber, seed)

	fmt.Fprintln(out, floor.Summary(l))
	fmt.Fprint(out, floor.Render(l))

	err := floor.Validate(l)
	if err != nil {
		fmt.Fprintf(out, "INVALID: %v\n", err)
	} else {
		fmt.Fprintln(out, "ok")
	}
	fmt.Fprintln(out)
	return err
}

// printTemplates prints every template in the same ASCII legend the
// catalog is authored in.
func printTemplates(out io.Writer, templates []*room.Template) {
	for _, t := range templates {
		doors := make([]string, 0, 4)
		for _, d := range t.DoorDirections() {
			doors = append(doors, d.String())
		}
		fmt.Fprintf(out, "%s (%s, %dx%d, doors: %s, spawns: %d)\n",
			t.Name, t.Type, t.Width, t.Height, strings.Join(doors, " "), len(t.SpawnPoints))
		for _, row := range templateRows(t) {
			fmt.Fprintf(out, "  %s\n", row)
		}
		fmt.Fprintln(out)
	}
}

// templateRows draws a template back into ASCII rows.
func templateRows(t *room.Template) []string {
	grid := make([][]byte, t.Height)
	for y := range t.Height {
		grid[y] = make([]byte, t.Width)
		for x := range t.Width {
			grid[y][x] = tileChar(t.At(x, y))
		}
	}
	for _, sp := range t.SpawnPoints {
		c := byte('S')
		if sp.Group > 0 && sp.Group <= 9 {
			c = byte('0' + sp.Group)
		}
		grid[sp.Y][sp.X] = c
	}
	if p := t.PlayerSpawn; p != nil {
		c := byte('P')
		if t.Type == room.TypeExit {
			c = 'E'
		}
		grid[p.Y][p.X] = c
	}

	rows := make([]string, t.Height)
	for y := range grid {
		rows[y] = string(grid[y])
	}
	return rows
}

func tileChar(k room.TileKind) byte {
	switch k {
	case room.Wall, room.WallTop:
		return 'W'
	case room.DoorClosed, room.DoorOpen:
		return 'D'
	case room.Pit:
		return '#'
	default:
		return '.'
	}
}
