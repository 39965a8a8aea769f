// Package ui provides the Bubble Tea TUI for Nurture.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per second. Each tick re-derives the timer state
// from the log; there is no scheduled timer to cancel or reschedule.
type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
