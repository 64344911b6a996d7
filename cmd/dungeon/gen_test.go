package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon/room"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

// withGenFlags sets the gen flags for one test and restores them after.
func withGenFlags(t *testing.T, floorNumber, count int, seed uint64, templates bool) {
	t.Helper()
	oldFloor, oldCount, oldSeed, oldTemplates := flagGenFloor, flagGenCount, flagSeed, flagGenTemplates
	flagGenFloor, flagGenCount, flagSeed, flagGenTemplates = floorNumber, count, seed, templates
	t.Cleanup(func() {
		flagGenFloor, flagGenCount, flagSeed, flagGenTemplates = oldFloor, oldCount, oldSeed, oldTemplates
	})
	t.Setenv("HOME", t.TempDir())
}

func TestTemplateRowsRoundTrip(t *testing.T) {
	for _, tmpl := range room.Catalog() {
		t.Run(tmpl.Name, func(t *testing.T) {
			rows := templateRows(tmpl)
			require.Len(t, rows, tmpl.Height)

			back, err := room.Parse(tmpl.Name, rows, tmpl.Type)
			require.NoError(t, err)
			assert.Equal(t, tmpl.Tiles, back.Tiles)
			assert.Equal(t, tmpl.SpawnPoints, back.SpawnPoints)
			assert.Equal(t, tmpl.EntryPoints, back.EntryPoints)
			assert.Equal(t, tmpl.PlayerSpawn, back.PlayerSpawn)
		})
	}
}

func TestGenPrintsFloors(t *testing.T) {
	withGenFlags(t, 2, 3, 42, false)

	var out bytes.Buffer
	genCmd.SetOut(&out)
	require.NoError(t, runGen(genCmd, nil))

	text := out.String()
	for _, seed := range []string{"seed 42", "seed 43", "seed 44"} {
		assert.Contains(t, text, "floor 2 "+seed)
	}
	assert.Equal(t, 3, strings.Count(text, "\nok\n"))
	assert.Contains(t, text, "S")
	assert.Contains(t, text, "B")
}

func TestGenTemplates(t *testing.T) {
	withGenFlags(t, 1, 1, 0, true)

	var out bytes.Buffer
	genCmd.SetOut(&out)
	require.NoError(t, runGen(genCmd, nil))

	for _, tmpl := range room.Catalog() {
		assert.Contains(t, out.String(), tmpl.Name+" (")
	}
}

func TestGenRejectsBadFlags(t *testing.T) {
	withGenFlags(t, 0, 1, 0, false)
	assert.Error(t, runGen(genCmd, nil))

	flagGenFloor, flagGenCount = 1, 0
	assert.Error(t, runGen(genCmd, nil))
}

func TestPrintRuns(t *testing.T) {
	var out bytes.Buffer
	printRuns(&out, "", nil)
	assert.Contains(t, out.String(), "No runs recorded yet.")

	out.Reset()
	printRuns(&out, "crawler", []storage.Run{
		{GameID: "crawler", Seed: 18446744073709551615, FloorReached: 5, RoomsCleared: 40, Score: 9000, Won: true},
		{GameID: "crawler", Seed: 7, FloorReached: 2, RoomsCleared: 9, Score: 800},
	})
	text := out.String()
	assert.Contains(t, text, "Deepest Runs - crawler")
	assert.Contains(t, text, "18446744073709551615")
	assert.Contains(t, text, "won")
	assert.Contains(t, text, "died")
}
