package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// statusLine is the session announcer of the terminal host. The last
// message is shown under the board; every message is logged at debug.
type statusLine struct {
	msg    string
	logger *log.Logger
}

func (s *statusLine) Announce(msg string) {
	s.msg = msg
	if s.logger != nil {
		s.logger.Debug("announce", "msg", msg)
	}
}

// screenRenderer draws session views into a screen buffer and caches the
// styled output. A view identical to the previous one is not redrawn.
type screenRenderer struct {
	screen  *core.Screen
	status  *statusLine
	lastKey string
	out     string
	draws   int
}

var _ session.Renderer = (*screenRenderer)(nil)

func newScreenRenderer(w, h int, status *statusLine) *screenRenderer {
	return &screenRenderer{screen: core.NewScreen(w, h), status: status}
}

func (r *screenRenderer) Render(v session.View) {
	key := fmt.Sprintf("%s|%d|%d|%s|%dx%d",
		v.Snapshot.Key(), v.HighScore, v.Placement.Rank, r.status.msg,
		r.screen.Width(), r.screen.Height())
	if key == r.lastKey {
		return
	}
	r.lastKey = key
	r.draws++

	snake.Render(r.screen, v.Snapshot, snake.HUD{
		HighScore: v.HighScore,
		Status:    r.status.msg,
		TopRank:   v.Placement.Rank,
	})
	r.out = RenderScreen(r.screen)
}

// Resize changes the buffer size and forces the next Render to redraw.
func (r *screenRenderer) Resize(w, h int) {
	r.screen.Resize(w, h)
	r.lastKey = ""
}

func (r *screenRenderer) String() string {
	return r.out
}
