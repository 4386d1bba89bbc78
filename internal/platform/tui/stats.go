package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/staff-wars/internal/storage"
)

// Stats layout constants
const (
	maxRuns = 100 // Max runs to load
)

// StatsView selects which journal table is shown.
type StatsView int

const (
	StatsNotes StatsView = iota // Per-note accuracy
	StatsRuns                   // Recent runs
)

// String returns the tab title.
func (v StatsView) String() string {
	if v == StatsRuns {
		return "Recent runs"
	}
	return "Notes"
}

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "switch table"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "switch back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the journal statistics screen.
type StatsModel struct {
	store    *storage.Store
	view     StatsView
	noteRows []storage.NoteStat
	runRows  []storage.Run
	loadErr  error
	table    table.Model
	help     help.Model
	keys     StatsKeyMap
	width    int
	height   int
	quitting bool
}

// NewStatsModel creates a stats model and loads the journal.
func NewStatsModel(store *storage.Store, width, height int) StatsModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := StatsModel{
		store:  store,
		keys:   DefaultStatsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// load reads both tables from the journal.
func (m *StatsModel) load() {
	if m.store == nil {
		return
	}
	stats, err := m.store.NoteStats()
	if err != nil {
		m.loadErr = err
		return
	}
	runs, err := m.store.RecentRuns(maxRuns)
	if err != nil {
		m.loadErr = err
		return
	}
	m.noteRows = stats
	m.runRows = runs
}

// columns returns the table columns for the current view.
func (m *StatsModel) columns() []table.Column {
	if m.view == StatsRuns {
		return []table.Column{
			{Title: "Date", Width: 14},
			{Title: "Player", Width: 12},
			{Title: "Clef", Width: 7},
			{Title: "Mode", Width: 7},
			{Title: "Right", Width: 6},
			{Title: "Missed", Width: 6},
		}
	}
	return []table.Column{
		{Title: "Note", Width: 6},
		{Title: "Seen", Width: 6},
		{Title: "Right", Width: 6},
		{Title: "Wrong", Width: 6},
		{Title: "Slow", Width: 6},
		{Title: "Accuracy", Width: 9},
		{Title: "Avg", Width: 8},
	}
}

// createTable creates a new table with appropriate columns.
func (m *StatsModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
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

// updateTableRows fills the table from the loaded journal.
func (m *StatsModel) updateTableRows() {
	var rows []table.Row
	if m.view == StatsRuns {
		rows = make([]table.Row, len(m.runRows))
		for i, r := range m.runRows {
			rows[i] = table.Row{
				r.StartedAt.Format("Jan 02 15:04"),
				r.Session,
				r.Clef,
				r.Difficulty,
				fmt.Sprintf("%d", r.Correct),
				fmt.Sprintf("%d", r.Missed),
			}
		}
	} else {
		rows = make([]table.Row, len(m.noteRows))
		for i, n := range m.noteRows {
			avg := "-"
			if n.Correct > 0 {
				avg = fmt.Sprintf("%dms", n.AvgMillis)
			}
			rows[i] = table.Row{
				n.Label,
				fmt.Sprintf("%d", n.Attempts),
				fmt.Sprintf("%d", n.Correct),
				fmt.Sprintf("%d", n.Incorrect),
				fmt.Sprintf("%d", n.Expired),
				fmt.Sprintf("%.0f%%", n.Accuracy()*100),
				avg,
			}
		}
	}

	// Rows must be cleared before the columns shrink or the table indexes past them
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// switchView moves to the other table.
func (m *StatsModel) switchView() {
	if m.view == StatsNotes {
		m.view = StatsRuns
	} else {
		m.view = StatsNotes
	}
	m.updateTableRows()
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Prev):
			m.switchView()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats screen.
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	b.WriteString(centerText(titleStyle.Render("PRACTICE JOURNAL"), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, 0, 2)
	for _, v := range []StatsView{StatsNotes, StatsRuns} {
		if v == m.view {
			tabs = append(tabs, activeTabStyle.Render(v.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(v.String()))
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	// Help bar
	b.WriteString("\n")
	b.WriteString(renderHelpBar(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an explanatory message.
func (m StatsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read the journal:\n" + m.loadErr.Error())
	case m.view == StatsNotes && len(m.noteRows) == 0,
		m.view == StatsRuns && len(m.runRows) == 0:
		return emptyStyle.Render("Nothing recorded yet.\nPlay a game to fill the journal!")
	}
	return m.table.View()
}

// centerText centers every line of a block within width.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// RunStats runs the stats screen until the user quits.
func RunStats(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewStatsModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
