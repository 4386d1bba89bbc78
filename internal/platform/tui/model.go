package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/staff-wars/internal/core"
)

// Model is the Bubble Tea model for one game session.
type Model struct {
	session  *Session
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     *KeyMapper
	help     help.Model
	status   string // One-line message shown in the help bar, e.g. screenshot path
	quitting bool
}

// NewModel creates a Bubble Tea model around a started session.
func NewModel(session *Session, cfg core.RuntimeConfig) Model {
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		session: session,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:  cfg,
		keys:    NewKeyMapper(),
		help:    h,
	}
}

// Init starts the tick loop and the engine event pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.config.TickRate),
		waitForEvent(m.session.Events()),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		m.session.Tick()
		return m, tickCmd(m.config.TickRate)

	case EventMsg:
		m.session.HandleEvent(msg.Event)
		return m, waitForEvent(m.session.Events())

	case eventsClosedMsg:
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	gameOver := m.session.GameOver()
	switch in.Action {
	case core.ActionAnswer:
		if !gameOver {
			m.session.Answer(in.Letter)
		}
	case core.ActionPause:
		if !gameOver {
			m.session.TogglePause()
		}
	case core.ActionRestart:
		if gameOver {
			if err := m.session.Restart(); err != nil {
				m.status = "restart failed: " + err.Error()
			} else {
				m.status = ""
			}
		}
	case core.ActionToggleReveal:
		if m.session.ToggleReveal() {
			m.status = "answers will be revealed from the next game"
		} else {
			m.status = "answers will stay hidden from the next game"
		}
	case core.ActionScreenshot:
		m.status = m.saveScreenshot()
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleResize processes window resize events. The game keeps running;
// the staff is re-laid out on the next frame.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	return m, nil
}

// saveScreenshot saves the current frame as plain text and returns a status line.
func (m *Model) saveScreenshot() string {
	DrawGame(m.screen, m.session.View())

	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshot failed: " + err.Error()
	}
	dir := filepath.Join(home, ".staffwars", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "screenshot failed: " + err.Error()
	}

	filename := fmt.Sprintf("staffwars_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "screenshot failed: " + err.Error()
	}
	return "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := m.session.View()
	hud := RenderHUD(v, m.config.ScreenW)

	bar := m.help.View(m.keys.Keys)
	if m.status != "" {
		bar = m.status + "  " + bar
	}
	bar = renderHelpBar(bar)

	// The staff gets whatever rows the HUD and help bar leave
	rows := max(0, m.config.ScreenH-lipgloss.Height(hud)-lipgloss.Height(bar))
	if m.screen.Width() != m.config.ScreenW || m.screen.Height() != rows {
		m.screen.Resize(m.config.ScreenW, rows)
	}
	DrawGame(m.screen, v)

	return strings.Join([]string{hud, RenderScreen(m.screen), bar}, "\n")
}

// Run starts the Bubble Tea program for a started session and blocks until the player quits.
func Run(session *Session, cfg core.RuntimeConfig) error {
	model := NewModel(session, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
