package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg refreshes the clock line. Scene frames run on their own ticks.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
