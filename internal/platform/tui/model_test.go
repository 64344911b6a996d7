package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/registry"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

// stubGame ends its run after a fixed number of steps and records every
// input frame it was given.
type stubGame struct {
	endAfter int
	steps    int
	resets   int
	frames   []core.InputFrame
	cfg      core.RuntimeConfig
	report   bool
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.steps = 0
	g.resets++
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.steps * 10, GameOver: g.endAfter > 0 && g.steps >= g.endAfter}
}

// reportingGame adds run summaries to stubGame.
type reportingGame struct{ stubGame }

func (g *reportingGame) RunSummary() registry.RunSummary {
	return registry.RunSummary{
		Seed:         g.cfg.Seed,
		FloorReached: 3,
		RoomsCleared: 11,
		Score:        g.steps * 10,
		Mode:         g.ID(),
	}
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 99}
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func TestModelReservesHelpRow(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	assert.Equal(t, 23, g.cfg.ScreenH)
	assert.Equal(t, 80, g.cfg.ScreenW)
	assert.Equal(t, uint64(99), g.cfg.Seed)
}

func TestModelGeneratesSeed(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 0
	m := NewModel(&stubGame{}, nil, cfg)
	assert.NotZero(t, m.config.Seed)
}

func TestModelHeldKeysReachGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	m = step(t, m, runeKey('d'))
	m = step(t, m, runeKey(' '))
	for range heldTicks + 1 {
		m = step(t, m, TickMsg{})
	}

	require.Len(t, g.frames, heldTicks+1)
	assert.True(t, g.frames[0].Has(core.ActionRight))
	assert.True(t, g.frames[0].Has(core.ActionAttack))
	assert.False(t, g.frames[1].Has(core.ActionAttack))
	assert.True(t, g.frames[heldTicks-1].Has(core.ActionRight))
	assert.False(t, g.frames[heldTicks].Has(core.ActionRight))
}

func TestModelSavesRunOnce(t *testing.T) {
	store := testStore(t)
	g := &reportingGame{stubGame{endAfter: 2}}
	m := NewModel(g, store, testConfig())
	m.Init()

	for range 5 {
		m = step(t, m, TickMsg{})
	}

	runs, err := store.TopRuns("stub", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, uint64(99), runs[0].Seed)
	assert.Equal(t, 3, runs[0].FloorReached)
	assert.Equal(t, 11, runs[0].RoomsCleared)
	assert.Equal(t, 20, runs[0].Score)
}

func TestModelSavesScoreWithoutReporter(t *testing.T) {
	store := testStore(t)
	g := &stubGame{endAfter: 3}
	m := NewModel(g, store, testConfig())
	m.Init()

	for range 4 {
		m = step(t, m, TickMsg{})
	}

	best, err := store.HighScore("stub")
	require.NoError(t, err)
	assert.Equal(t, 30, best)
	runs, err := store.TopRuns("stub", 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestModelQuitSavesUnfinishedRun(t *testing.T) {
	store := testStore(t)
	g := &reportingGame{}
	m := NewModel(g, store, testConfig())
	m.Init()
	m = step(t, m, TickMsg{})

	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)
	assert.True(t, m.IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())

	runs, err := store.TopRuns("stub", 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestModelRestartOnlyAfterRunEnds(t *testing.T) {
	g := &stubGame{endAfter: 2}
	m := NewModel(g, nil, testConfig())
	m.Init()
	require.Equal(t, 1, g.resets)

	m = step(t, m, TickMsg{})
	m = step(t, m, runeKey('r'))
	assert.Equal(t, 1, g.resets, "restart ignored mid-run")

	m = step(t, m, TickMsg{})
	require.True(t, m.gameState.GameOver)
	m = step(t, m, runeKey('r'))
	assert.Equal(t, 2, g.resets)
	assert.False(t, m.gameState.GameOver)
	assert.NotEqual(t, uint64(99), g.cfg.Seed)
}

func TestModelResizeResetsOnlyBeforePlay(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 2, g.resets)
	assert.Equal(t, 29, g.cfg.ScreenH)

	m = step(t, m, TickMsg{})
	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 2, g.resets)
	assert.Equal(t, 120, m.screen.Width())
	assert.Equal(t, 39, m.screen.Height())
}

func TestGameModelBackToMenu(t *testing.T) {
	g := &stubGame{endAfter: 1}
	m := NewGameModel(g, nil, testConfig(), nil)
	m.Init()

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.BackToMenu(), "esc pauses a live run")

	m = step(t, m, TickMsg{})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
	assert.False(t, m.IsQuitting())
}

func TestModelViewShowsGameAndHelp(t *testing.T) {
	m := NewModel(&stubGame{}, nil, testConfig())
	m.Init()

	out := m.View()
	assert.Contains(t, out, "stub")
	assert.Contains(t, out, "attack")
}
