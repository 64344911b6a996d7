package encounter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerMediumFlow(t *testing.T) {
	tr := NewTracker(SelectEncounter(Medium, 1, 4, 0))

	require.True(t, tr.HasMoreWaves())
	assert.True(t, tr.ShouldSpawnNextWave(0))
	assert.False(t, tr.IsEncounterComplete(0), "nothing spawned yet")

	w, ok := tr.Advance()
	require.True(t, ok)
	assert.Len(t, w.Enemies, 2)
	assert.Equal(t, 1, tr.WaveIndex())
	assert.Equal(t, 2, tr.Spawned())

	assert.False(t, tr.ShouldSpawnNextWave(2))
	assert.False(t, tr.IsEncounterComplete(0), "second wave still pending")
	assert.True(t, tr.ShouldSpawnNextWave(0))

	w, ok = tr.Advance()
	require.True(t, ok)
	assert.Equal(t, 2+len(w.Enemies), tr.Spawned())
	assert.False(t, tr.HasMoreWaves())
	assert.False(t, tr.ShouldSpawnNextWave(0))

	assert.False(t, tr.IsEncounterComplete(1))
	assert.True(t, tr.IsEncounterComplete(0))

	_, ok = tr.Advance()
	assert.False(t, ok)
}

func TestTrackerHardOverlap(t *testing.T) {
	tr := NewTracker(SelectEncounter(Hard, 1, 4, 0))
	_, ok := tr.Advance()
	require.True(t, ok)

	assert.False(t, tr.ShouldSpawnNextWave(3))
	assert.False(t, tr.ShouldSpawnNextWave(2))
	assert.True(t, tr.ShouldSpawnNextWave(1))
}

func TestTrackerEmptyEncounterNeverCompletes(t *testing.T) {
	tr := NewTracker(Def{})
	assert.False(t, tr.HasMoreWaves())
	assert.False(t, tr.IsEncounterComplete(0))
	_, ok := tr.Advance()
	assert.False(t, ok)
}
