// Package tui runs gemfall in a terminal: the game model, the menu and
// level picker, the scoreboard and the SSH server that serves them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one Game.Step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg. Rates below 1 fall back to 60.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate < 1 {
		tickRate = 60
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
