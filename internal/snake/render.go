package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	hudHeight = 2 // Title line + separator
	cellWidth = 2 // Terminal cells are about twice as tall as wide
)

// HUD carries the values drawn around the board that are not part of the
// game state itself.
type HUD struct {
	HighScore int
	Status    string // Last announcement
	TopRank   int    // Leaderboard rank of the finished round, 0 if none
}

// RequiredSize returns the smallest screen that fits a board of the given size.
func RequiredSize(gridW, gridH int) (w, h int) {
	return gridW*cellWidth + 2, gridH + 2 + hudHeight + 1
}

// Render draws the snapshot into dst.
func Render(dst *core.Screen, snap Snapshot, hud HUD) {
	dst.Clear()
	renderHUD(dst, snap, hud)

	needW, needH := RequiredSize(snap.GridWidth, snap.GridHeight)
	if dst.Width() < needW || dst.Height() < needH {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", needW, needH))
		return
	}

	board := core.NewRect(
		(dst.Width()-needW)/2,
		hudHeight,
		snap.GridWidth*cellWidth+2,
		snap.GridHeight+2,
	)
	dst.DrawBox(board, core.ColorGray)

	// Interior origin
	ox, oy := board.X+1, board.Y+1

	if snap.Food.In(snap.GridWidth, snap.GridHeight) {
		drawCell(dst, ox, oy, snap.Food, '●', core.ColorRed)
	}

	// Tail first so the head wins on overlap after a self collision.
	for i := len(snap.Body) - 1; i >= 0; i-- {
		seg := snap.Body[i]
		if !seg.In(snap.GridWidth, snap.GridHeight) {
			continue
		}
		if i == 0 {
			drawCell(dst, ox, oy, seg, '█', core.ColorBrightGreen)
		} else {
			drawCell(dst, ox, oy, seg, '▓', core.ColorGreen)
		}
	}

	if hud.Status != "" {
		dst.DrawTextCentered(dst.Height()-1, hud.Status, core.ColorCyan)
	}

	switch snap.State {
	case StateNotStarted:
		renderOverlay(dst, "S N A K E", "Enter: start  1/2/3: speed")
	case StatePaused:
		renderOverlay(dst, "Paused", "Space/P to continue")
	case StateGameOver:
		line2 := fmt.Sprintf("Final score: %d", snap.Score)
		if hud.TopRank > 0 {
			line2 = fmt.Sprintf("Final score: %d  (#%d on the board)", snap.Score, hud.TopRank)
		}
		renderOverlay(dst, "Game Over  -  R to restart", line2)
	}
}

// drawCell paints one grid cell, cellWidth columns wide.
func drawCell(dst *core.Screen, ox, oy int, p core.Position, r rune, c core.Color) {
	x := ox + p.X*cellWidth
	y := oy + p.Y
	for i := range cellWidth {
		dst.SetColor(x+i, y, r, c)
	}
}

// renderHUD draws the top status bar.
func renderHUD(dst *core.Screen, snap Snapshot, hud HUD) {
	line := fmt.Sprintf(" Snake - Score: %d  Best: %d  Speed: %s", snap.Score, max(hud.HighScore, snap.Score), snap.Speed)
	dst.DrawText(0, 0, line, core.ColorBrightWhite)
	for x := range dst.Width() {
		dst.SetColor(x, 1, '─', core.ColorGray)
	}
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	textW := max(len([]rune(line1)), len([]rune(line2)))
	box := core.NewRect((dst.Width()-textW-4)/2, (dst.Height()-5)/2, textW+4, 5)

	dst.FillRect(box, ' ')
	dst.DrawBox(box, core.ColorYellow)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
