package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dungeon/internal/registry"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForDetail = 84  // Minimum width to show the run detail panel
	detailWidth       = 30  // Width of the run detail panel
	maxRuns           = 100 // Max runs to load
)

var (
	borderColor = lipgloss.Color("240")
	accentColor = lipgloss.Color("229")
	mutedColor  = lipgloss.Color("241")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			Padding(2, 4)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the run history of one game mode at a time, ranked
// by floor reached and then score, with the highlighted run's details
// beside the table when the terminal is wide enough.
type ScoreboardModel struct {
	modes     []registry.GameInfo
	mode      int
	store     *storage.Store
	runs      []storage.Run
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) showDetail() bool {
	return m.width >= minWidthForDetail
}

// newTable builds the runs table for the current terminal size. The date
// column is only added when the detail panel is hidden.
func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Floor", Width: 5},
		{Title: "Rooms", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Result", Width: 6},
	}
	if !m.showDetail() && m.width >= 60 {
		columns = append(columns, table.Column{Title: "Date", Width: 12})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)), // title, tabs, borders and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(accentColor).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload fetches the runs of the current mode and refills the table.
func (m *ScoreboardModel) reload() {
	m.runs, m.loadErr = nil, nil
	if m.store != nil && len(m.modes) > 0 {
		m.runs, m.loadErr = m.store.TopRuns(m.modes[m.mode].ID, maxRuns)
	}

	cols := len(m.table.Columns())
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = runRow(i+1, r, cols)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// runRow formats one run for a table with the given number of columns.
func runRow(rank int, r storage.Run, columns int) table.Row {
	row := table.Row{
		fmt.Sprintf("%d", rank),
		fmt.Sprintf("%d", r.FloorReached),
		fmt.Sprintf("%d", r.RoomsCleared),
		fmt.Sprintf("%d", r.Score),
		runResult(r),
		r.CreatedAt.Format("Jan 02 15:04"),
	}
	return row[:min(columns, len(row))]
}

func runResult(r storage.Run) string {
	if r.Won {
		return "won"
	}
	return "died"
}

// selectedRun returns the highlighted run, if any.
func (m ScoreboardModel) selectedRun() (storage.Run, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.Run{}, false
	}
	return m.runs[i], true
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			m.cycleMode(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			m.cycleMode(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) cycleMode(step int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + step + len(m.modes)) % len(m.modes)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accentColor)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(titleStyle.Render("DEEPEST RUNS"), len("DEEPEST RUNS"), m.width))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	body := panelStyle.Render(m.renderTable())
	if m.showDetail() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.renderDetail())
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(mutedColor).Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs draws one tab per game mode, collapsing to "< title >" when
// they do not fit.
func (m ScoreboardModel) renderTabs() string {
	if len(m.modes) == 0 {
		return ""
	}

	tabStyle := lipgloss.NewStyle().Foreground(mutedColor).Padding(0, 1)
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = activeStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(g.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s >", m.modes[m.mode].Title)
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, line)
}

// renderTable renders the table or a placeholder message.
func (m ScoreboardModel) renderTable() string {
	if m.loadErr != nil {
		return emptyStyle.Render("Could not load runs:\n" + m.loadErr.Error())
	}
	if len(m.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nThe dungeon is waiting.")
	}
	return m.table.View()
}

// renderDetail describes the highlighted run.
func (m ScoreboardModel) renderDetail() string {
	style := panelStyle.Width(detailWidth)
	r, ok := m.selectedRun()
	if !ok {
		return style.Render("No run selected")
	}

	label := lipgloss.NewStyle().Foreground(mutedColor).Width(8)
	line := func(k, v string) string {
		return label.Render(k) + v + "\n"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Run #%d", m.table.Cursor()+1)))
	b.WriteString("\n\n")
	b.WriteString(line("Result", runResult(r)))
	b.WriteString(line("Floor", fmt.Sprintf("%d", r.FloorReached)))
	b.WriteString(line("Rooms", fmt.Sprintf("%d", r.RoomsCleared)))
	b.WriteString(line("Score", fmt.Sprintf("%d", r.Score)))
	b.WriteString(line("Time", r.Duration.Round(time.Second).String()))
	b.WriteString(line("Date", r.CreatedAt.Format("2006-01-02 15:04")))
	b.WriteString(line("Seed", fmt.Sprintf("%d", r.Seed)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(mutedColor).Render(
		fmt.Sprintf("replay: dungeon play %s --seed %d", r.GameID, r.Seed)))

	return style.Render(b.String())
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
