// Package tui provides the Bubble Tea front end for staff-wars.
// It drives the engine from the tick loop, maps keys to answers and renders
// the staff, locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/staff-wars/internal/engine"
)

// TickMsg is sent to trigger an engine tick.
type TickMsg time.Time

// EventMsg carries one engine event into the update loop.
type EventMsg struct {
	Event engine.Event
}

// eventsClosedMsg is sent once the engine subscription has ended.
type eventsClosedMsg struct{}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForEvent blocks until the subscription yields the next event.
// The model re-issues it after every EventMsg to keep the pump running.
func waitForEvent(sub *engine.Subscription) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-sub.Events()
		if !ok {
			return eventsClosedMsg{}
		}
		return EventMsg{Event: evt}
	}
}
