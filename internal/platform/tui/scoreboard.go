package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile2048/internal/core"
	"github.com/vovakirdan/tile2048/internal/registry"
	"github.com/vovakirdan/tile2048/internal/storage"
)

const (
	scoreLimit      = 50 // Rows loaded per mode
	statsCardWidth  = 22
	minWidthForCard = 64 // Below this the stats card goes under the table
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
)

type scoreboardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp lists Next as the mode switch; Prev is its mirror.
func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var scoreboardKeyMap = scoreboardKeys{
	Scroll: key.NewBinding(key.WithKeys("up", "k", "down", "j"), key.WithHelp("↑/↓", "scroll")),
	Next:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("←/→", "mode")),
	Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev mode")),
	Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ScoreboardModel shows the score table of one mode at a time.
type ScoreboardModel struct {
	store  *storage.Store
	modes  []registry.ModeInfo
	mode   int
	scores []storage.ScoreEntry
	stats  *storage.GameStats
	table  table.Model
	help   help.Model
	width  int
	height int

	goingBack bool
	quitting  bool
}

// NewScoreboardModel opens the scoreboard on modeID, or on the first mode
// when modeID is unknown.
func NewScoreboardModel(store *storage.Store, modeID string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		modes:  registry.List(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for i, info := range m.modes {
		if info.ID == modeID {
			m.mode = i
		}
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	dateWidth := 12
	if m.width-statsCardWidth > 56 {
		dateWidth = 18
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 8},
			{Title: "Tile", Width: 6},
			{Title: "Date", Width: dateWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches scores and stats of the current mode. Storage errors show
// as an empty board.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.mode].ID
		if scores, err := m.store.TopScores(id, scoreLimit); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.MaxTile),
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycle moves to the next (+1) or previous (-1) mode.
func (m *ScoreboardModel) cycle(step int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + step + len(m.modes)) % len(m.modes)
	m.reload()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, scoreboardKeyMap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, scoreboardKeyMap.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, scoreboardKeyMap.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, scoreboardKeyMap.Prev):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.goingBack || m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(menuTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	scores := panelStyle.Render(m.tableView())
	card := panelStyle.Width(statsCardWidth).Render(m.statsView())
	if m.width >= minWidthForCard {
		b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, scores, " ", card), m.width))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, scores, card))
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render(m.help.View(scoreboardKeyMap)), m.width))
	return b.String()
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.modes))
	for i, info := range m.modes {
		if i == m.mode {
			tabs[i] = activeTabStyle.Render(info.Title)
		} else {
			tabs[i] = tabStyle.Render(info.Title)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) tableView() string {
	if len(m.scores) == 0 {
		return menuDimStyle.Italic(true).Padding(1, 2).
			Render("No finished games yet.")
	}
	return m.table.View()
}

// statsView lists the mode totals, with the best tile in its board color.
func (m ScoreboardModel) statsView() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return menuDimStyle.Render("No stats")
	}

	tile := styleFor(core.TileColor(m.stats.BestTile)).Render(strconv.Itoa(m.stats.BestTile))
	lines := []string{
		fmt.Sprintf("Games   %d", m.stats.GamesCount),
		fmt.Sprintf("Best    %d", m.stats.HighScore),
		fmt.Sprintf("Average %.0f", m.stats.AvgScore),
		"Tile    " + tile,
	}
	if !m.stats.LastPlayed.IsZero() {
		lines = append(lines, "", menuDimStyle.Render("Last "+m.stats.LastPlayed.Local().Format("Jan 02 15:04")))
	}
	return strings.Join(lines, "\n")
}

// Mode returns the id of the mode being shown.
func (m ScoreboardModel) Mode() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.mode].ID
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// RunScoreboard runs the scoreboard until the user leaves it.
// Returns true if the user wants to go back to the menu.
func RunScoreboard(store *storage.Store, modeID string, width, height int) (bool, error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, modeID, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
