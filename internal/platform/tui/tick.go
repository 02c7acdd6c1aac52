// Package tui hosts the Snake game in a terminal with Bubble Tea, locally or
// over SSH via Wish. It supplies frame timestamps, decodes keys and mouse
// swipes, and draws the session's views.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// nextScreenID numbers round screens so frames scheduled by a closed screen
// are not delivered to its successor.
var nextScreenID atomic.Uint64

// FrameMsg is one frame callback for the round screen with the given ID.
type FrameMsg struct {
	ID   uint64
	Time time.Time
}

// frameCmd schedules the next frame after interval.
func frameCmd(id uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, Time: t}
	})
}
