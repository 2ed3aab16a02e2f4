package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Scoreboard layout constants
const (
	tableMinHeight = 5
	chromeRows     = 9 // Title, summary, borders and help
)

var scoreColumns = []table.Column{
	{Title: "Rank", Width: 6},
	{Title: "Score", Width: 8},
	{Title: "Time", Width: 8},
	{Title: "Played", Width: 16},
}

// ScoreRows formats score entries for display, relative to now.
func ScoreRows(entries []storage.ScoreEntry, now time.Time) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		played := "-"
		if !e.CreatedAt.IsZero() {
			played = humanize.RelTime(e.CreatedAt, now, "ago", "from now")
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%05d", e.Score),
			e.Duration.Round(100 * time.Millisecond).String(),
			played,
		}
	}
	return rows
}

// Summary describes the aggregated stats in one line.
func Summary(stats *storage.GameStats, now time.Time) string {
	if stats == nil || stats.GamesCount == 0 {
		return "No scores recorded yet."
	}
	return fmt.Sprintf("%s %s, best %05d, average %.1f, last played %s",
		humanize.Comma(int64(stats.GamesCount)),
		plural(stats.GamesCount, "session", "sessions"),
		stats.HighScore,
		stats.AvgScore,
		humanize.RelTime(stats.LastPlayed, now, "ago", "from now"),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// WritePlain prints the scoreboard as a bordered text table.
func WritePlain(w io.Writer, entries []storage.ScoreEntry, stats *storage.GameStats, now time.Time) error {
	if _, err := fmt.Fprintln(w, Summary(stats, now)); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	titles := make([]string, len(scoreColumns))
	for i, c := range scoreColumns {
		titles[i] = strings.ToUpper(c.Title)
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers(titles...)
	for _, row := range ScoreRows(entries, now) {
		t.Row(row...)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the score history.
type ScoreboardModel struct {
	entries  []storage.ScoreEntry
	summary  string
	rows     []table.Row
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a scoreboard over already loaded scores.
func NewScoreboardModel(entries []storage.ScoreEntry, stats *storage.GameStats, width, height int, now time.Time) ScoreboardModel {
	m := ScoreboardModel{
		entries: entries,
		summary: Summary(stats, now),
		rows:    ScoreRows(entries, now),
		help:    help.New(),
		keys:    DefaultScoreboardKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a new table sized for the terminal.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(scoreColumns),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-chromeRows, tableMinHeight)),
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

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	b.WriteString(titleStyle.Render("HIGH SCORES - Flappy Bird"))
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(m.summary))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("Play a game to set a high score!")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunScoreboard shows the score history until the user quits.
func RunScoreboard(entries []storage.ScoreEntry, stats *storage.GameStats, width, height int) error {
	model := NewScoreboardModel(entries, stats, width, height, time.Now())

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
