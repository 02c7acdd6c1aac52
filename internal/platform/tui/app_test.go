package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func newTestBoard(t *testing.T, scores ...int) storage.Leaderboard {
	t.Helper()
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "scores.db"), storage.DefaultSize)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	for _, s := range scores {
		_, err := store.Record(context.Background(), s)
		require.NoError(t, err)
	}
	return store
}

func sendApp(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	next, cmd := a.Update(msg)
	app, ok := next.(App)
	require.True(t, ok)
	return app, cmd
}

func TestAppMenuShowsHighScore(t *testing.T) {
	deps := testDeps()
	deps.Board = newTestBoard(t, 40, 120)

	a := NewApp(deps, 0, 80, 40)
	assert.Equal(t, screenMenu, a.screen)
	assert.Nil(t, a.Init())
	assert.Contains(t, a.View(), "Best score: 120")
	assert.Contains(t, a.View(), "Play - medium")
}

func TestAppMenuOpensRound(t *testing.T) {
	a := NewApp(testDeps(), 0, 80, 40)

	// The cursor starts on the configured speed; one step down is fast.
	a, _ = sendApp(t, a, tea.KeyMsg{Type: tea.KeyDown})
	a, _ = sendApp(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, screenGame, a.screen)
	assert.True(t, a.hasGame)
	assert.Equal(t, snake.SpeedFast, a.game.Session().Snapshot().Speed)
	assert.Equal(t, snake.StateNotStarted, a.game.Session().State())
}

func TestAppStartSpeedSkipsMenu(t *testing.T) {
	a := NewApp(testDeps(), snake.SpeedSlow, 80, 40)

	require.Equal(t, screenGame, a.screen)
	assert.Equal(t, snake.SpeedSlow, a.game.Session().Snapshot().Speed)
	assert.Contains(t, a.View(), "Speed: slow")
}

func TestAppBackToMenu(t *testing.T) {
	a := NewApp(testDeps(), snake.SpeedMedium, 80, 40)
	a, _ = sendApp(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	game := a.game

	a, _ = sendApp(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, a.screen)
	assert.False(t, a.hasGame)
	assert.False(t, game.Session().Running())
}

func TestAppScoreboardFromMenu(t *testing.T) {
	deps := testDeps()
	deps.Board = newTestBoard(t, 30, 250, 70)

	a := NewApp(deps, 0, 80, 40)
	a, _ = sendApp(t, a, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, screenScores, a.screen)

	view := a.View()
	assert.Contains(t, view, "HIGH SCORES")
	assert.Contains(t, view, "250")
	assert.Contains(t, view, "#3")

	a, _ = sendApp(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, a.screen)
}

func TestAppScoreboardEmpty(t *testing.T) {
	a := NewApp(testDeps(), 0, 80, 40)
	a, _ = sendApp(t, a, tea.KeyMsg{Type: tea.KeyTab})

	assert.Contains(t, a.View(), "No scores recorded yet")
}

func TestAppScoreboardFromRoundPausesAndReturns(t *testing.T) {
	deps := testDeps()
	deps.Board = newTestBoard(t)

	a := NewApp(deps, snake.SpeedMedium, 80, 40)
	a, _ = sendApp(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, snake.StatePlaying, a.game.Session().State())

	a, _ = sendApp(t, a, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, screenScores, a.screen)
	assert.Equal(t, snake.StatePaused, a.game.Session().State())

	// The frame in flight is routed to the round and ends its chain.
	a, cmd := sendApp(t, a, FrameMsg{ID: a.game.id, Time: a.game.epoch})
	assert.Nil(t, cmd)
	assert.False(t, a.game.ticking)

	a, _ = sendApp(t, a, runes("b"))
	assert.Equal(t, screenGame, a.screen)
	assert.Equal(t, snake.StatePaused, a.game.Session().State())
}

func TestAppResizeReachesHiddenRound(t *testing.T) {
	a := NewApp(testDeps(), snake.SpeedMedium, 80, 40)
	a, _ = sendApp(t, a, tea.KeyMsg{Type: tea.KeyTab})

	a, _ = sendApp(t, a, tea.WindowSizeMsg{Width: 20, Height: 10})
	assert.Equal(t, 20, a.width)
	assert.Contains(t, a.game.View(), "Window too small")
}

func TestAppQuit(t *testing.T) {
	a := NewApp(testDeps(), 0, 80, 40)
	a, cmd := sendApp(t, a, runes("q"))

	assert.NotNil(t, cmd)
	assert.True(t, a.quitting)
	assert.Empty(t, a.View())
}

func TestProgramOptions(t *testing.T) {
	assert.Len(t, ProgramOptions(), 3)
}
