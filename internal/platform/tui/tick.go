// Package tui provides the Bubble Tea front end for loopyfoods: the main
// menu, shop, battle viewer and team manager, plus SSH hosting via Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// autoPlayTickMsg asks the battle screen to take one step.
// Gen ties the tick to the auto-play run that scheduled it; ticks from a
// cancelled run carry an old generation and are dropped.
type autoPlayTickMsg struct {
	Gen uint64
}

// autoPlayCmd schedules the next auto-play tick.
func autoPlayCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return autoPlayTickMsg{Gen: gen}
	})
}
