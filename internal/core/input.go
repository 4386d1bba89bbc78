package core

import "strings"

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone         Action = iota
	ActionAnswer              // A-G - name the note on screen
	ActionPause               // P, Space, Esc - pause or resume
	ActionRestart             // R - play again after game over
	ActionToggleReveal        // V - show the expected answer on misses
	ActionHelp                // ? - toggle the key help
	ActionScreenshot          // Ctrl+S - save the screen as text
	ActionQuit                // Q, Ctrl+C - leave the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAnswer:
		return "Answer"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionToggleReveal:
		return "ToggleReveal"
	case ActionHelp:
		return "Help"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is one decoded key press.
type Input struct {
	Action Action
	Letter string // Note letter for ActionAnswer, upper case
}

// AnswerInput returns an ActionAnswer input for a note letter key.
// ok is false when key is not one of a-g.
func AnswerInput(key string) (in Input, ok bool) {
	if len(key) != 1 {
		return Input{}, false
	}
	letter := strings.ToUpper(key)
	if letter < "A" || letter > "G" {
		return Input{}, false
	}
	return Input{Action: ActionAnswer, Letter: letter}, true
}
