package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/registry"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

// helpRows is the space reserved under the game for the key help line.
const helpRows = 1

// Model is the Bubble Tea model that runs one game. Standalone models quit
// the program on Q; models inside an SSH session hand control back to the
// menu on Esc once the run is over or paused.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	keys      KeyMap
	help      help.Model
	input     *inputState
	gameState core.GameState
	logger    *log.Logger

	started    time.Time
	ticks      uint64
	embedded   bool
	quitting   bool
	backToMenu bool
	runSaved   bool // whether the finished run has been stored
}

// NewModel creates a standalone model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = newSeed()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:  store,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		input:  newInputState(),
		logger: log.New(io.Discard),
	}
}

// NewGameModel creates a model that runs inside an SSH session.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	m := NewModel(game, store, cfg)
	m.embedded = true
	if logger != nil {
		m.logger = logger
	}
	return m
}

func newSeed() uint64 {
	//#nosec G115 -- wall clock nanoseconds are never negative
	return uint64(time.Now().UnixNano())
}

func gameHeight(h int) int {
	return max(0, h-helpRows)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.runtime())
	return tickCmd(m.config.TickRate)
}

// runtime is the config the game sees: the screen minus the help line.
func (m Model) runtime() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	return cfg
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Debug("screenshot saved", "path", path)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.embedded && (m.runOver() || m.gameState.Paused) {
			m.saveRun()
			m.backToMenu = true
			return m, nil
		}
		if !m.embedded && m.runOver() {
			m.quitting = true
			return m, tea.Quit
		}
		// Esc pauses while a run is live.
		action = core.ActionPause
	case core.ActionRestart:
		if m.runOver() {
			m.restart()
			return m, nil
		}
		return m, nil
	}

	m.input.press(action)
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width

	// The first size message arrives before play starts; later ones only
	// move the viewport so a run is never thrown away.
	if m.ticks == 0 {
		m.game.Reset(m.runtime())
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.started.IsZero() {
		m.started = time.Now()
	}

	result := m.game.Step(m.input.frame())
	m.gameState = result.State
	m.ticks++

	if m.runOver() {
		m.saveRun()
	}

	return m, tickCmd(m.config.TickRate)
}

func (m Model) runOver() bool {
	return m.gameState.GameOver || m.gameState.Won
}

// restart begins a new run on a fresh seed.
func (m *Model) restart() {
	m.saveRun()
	m.config.Seed = newSeed()
	m.game.Reset(m.runtime())
	m.gameState = m.game.State()
	m.input.reset()
	m.ticks = 0
	m.started = time.Now()
	m.runSaved = false
}

// saveRun stores the current run once. Games that report run summaries
// land in the run history; the rest only record a score.
func (m *Model) saveRun() {
	if m.runSaved || m.store == nil || m.ticks == 0 {
		return
	}
	m.runSaved = true

	reporter, ok := m.game.(registry.RunReporter)
	if !ok {
		if m.gameState.Score <= 0 {
			return
		}
		if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
		}
		return
	}

	sum := reporter.RunSummary()
	run := storage.Run{
		GameID:       m.game.ID(),
		Seed:         sum.Seed,
		FloorReached: sum.FloorReached,
		RoomsCleared: sum.RoomsCleared,
		Score:        sum.Score,
		Won:          sum.Won,
		Duration:     time.Since(m.started),
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not save run", "game", m.game.ID(), "error", err)
		return
	}
	m.logger.Debug("run saved", "id", id, "floor", run.FloorReached, "score", run.Score)
}

// saveScreenshot writes the current frame as plain text under
// ~/.dungeon/screenshots and returns the file path.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".dungeon", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	if m.help.ShowAll {
		// Full help covers the bottom of the dungeon.
		return overlayBottom(b.String(), m.help.View(m.keys))
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// overlayBottom replaces the last lines of base with overlay.
func overlayBottom(base, overlay string) string {
	lines := strings.Split(strings.TrimSuffix(base, "\n"), "\n")
	over := strings.Split(overlay, "\n")
	start := max(0, len(lines)-len(over))
	for i, l := range over {
		if start+i < len(lines) {
			lines[start+i] = l
		}
	}
	return strings.Join(lines, "\n")
}

// IsQuitting returns true if the user asked to leave the program.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program that plays one game until the user quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
