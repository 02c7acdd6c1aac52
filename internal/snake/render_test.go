package snake

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestRenderBoard(t *testing.T) {
	m := newTestModel(21)
	m.SetFood(core.Pos(0, 0))
	m.Start()

	w, h := RequiredSize(20, 20)
	dst := core.NewScreen(w, h)
	Render(dst, m.Snapshot(), HUD{HighScore: 120})

	if !strings.Contains(dst.Row(0), "Score: 0") || !strings.Contains(dst.Row(0), "Best: 120") {
		t.Errorf("HUD row = %q", dst.Row(0))
	}

	// Board box starts below the HUD; interior origin is one cell in.
	ox, oy := 1, hudHeight+1
	head := m.Snake().Head()
	if got := dst.GetCell(ox+head.X*cellWidth, oy+head.Y); got.Rune != '█' || got.Color != core.ColorBrightGreen {
		t.Errorf("head cell = %+v", got)
	}
	if got := dst.GetCell(ox, oy); got.Rune != '●' || got.Color != core.ColorRed {
		t.Errorf("food cell = %+v", got)
	}
	if dst.Get(0, hudHeight) != '┌' {
		t.Errorf("board corner = %q", dst.Get(0, hudHeight))
	}
}

func TestRenderTooSmall(t *testing.T) {
	m := newTestModel(22)
	dst := core.NewScreen(30, 10)
	Render(dst, m.Snapshot(), HUD{})

	if !strings.Contains(dst.String(), "Window too small") {
		t.Error("expected a too-small overlay")
	}
}

func TestRenderGameOverRank(t *testing.T) {
	m := newTestModel(23)
	m.SetState(StateGameOver)

	w, h := RequiredSize(20, 20)
	dst := core.NewScreen(w+20, h)
	Render(dst, m.Snapshot(), HUD{TopRank: 3, Status: "Game over"})

	out := dst.String()
	if !strings.Contains(out, "#3 on the board") {
		t.Errorf("expected rank in overlay, got:\n%s", out)
	}
	if !strings.Contains(dst.Row(dst.Height()-1), "Game over") {
		t.Errorf("status row = %q", dst.Row(dst.Height()-1))
	}
}

func TestSnapshotKeyChangesWithMove(t *testing.T) {
	m := newTestModel(24)
	m.SetFood(core.Pos(0, 0))
	m.Start()

	before := m.Snapshot().Key()
	if m.Snapshot().Key() != before {
		t.Fatal("key should be stable without changes")
	}
	m.Update()
	if m.Snapshot().Key() == before {
		t.Error("key should change after a move")
	}
}
