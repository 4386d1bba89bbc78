package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/staff-wars/internal/core"
)

// GameKeyMap defines the key bindings shown in the game's help bar.
type GameKeyMap struct {
	Answer     key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Reveal     key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Answer, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Answer, k.Pause, k.Restart},
		{k.Reveal, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Answer: key.NewBinding(
			key.WithKeys("a", "b", "c", "d", "e", "f", "g", "A", "B", "C", "D", "E", "F", "G"),
			key.WithHelp("a-g", "name the note"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " ", "space", "esc"),
			key.WithHelp("p/space", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "play again"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "reveal answers (next game)"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game inputs.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{Keys: DefaultGameKeyMap()}
}

// MapKey translates a key message to an input.
// Returns the input (Action may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (in core.Input, isQuit bool) {
	switch {
	case key.Matches(msg, km.Keys.Quit):
		return core.Input{Action: core.ActionQuit}, true
	case key.Matches(msg, km.Keys.Answer):
		in, _ := core.AnswerInput(msg.String())
		return in, false
	case key.Matches(msg, km.Keys.Pause):
		return core.Input{Action: core.ActionPause}, false
	case key.Matches(msg, km.Keys.Restart):
		return core.Input{Action: core.ActionRestart}, false
	case key.Matches(msg, km.Keys.Reveal):
		return core.Input{Action: core.ActionToggleReveal}, false
	case key.Matches(msg, km.Keys.Screenshot):
		return core.Input{Action: core.ActionScreenshot}, false
	case key.Matches(msg, km.Keys.Help):
		return core.Input{Action: core.ActionHelp}, false
	}
	return core.Input{}, false
}
