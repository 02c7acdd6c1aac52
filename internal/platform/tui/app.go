package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
)

// App is the top-level model: menu -> round -> menu, with the scoreboard
// reachable from both. The local CLI and every SSH connection run one App.
type App struct {
	deps   Deps
	width  int
	height int
	speed  snake.Speed // Last chosen speed

	screen     screen
	scoresFrom screen
	menu       MenuModel
	game       GameModel
	hasGame    bool
	scoreboard ScoreboardModel
	quitting   bool
}

// NewApp creates the app on the title menu. With startSpeed set, it skips the
// menu and opens a round at that speed.
func NewApp(deps Deps, startSpeed snake.Speed, width, height int) App {
	speed := startSpeed
	if !speed.Valid() {
		speed = deps.Config.StartSpeed()
	}

	a := App{
		deps:   deps,
		width:  width,
		height: height,
		speed:  speed,
		menu:   NewMenuModel(deps.Board, speed, width, height),
	}
	if startSpeed.Valid() {
		a.openGame(startSpeed)
	}
	return a
}

// ProgramOptions are the Bubble Tea options the app needs: alt screen,
// press/release mouse events for swipes, and focus reports for auto-pause.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	}
}

// Run starts a local program on a width x height terminal and blocks until
// the player quits.
func Run(deps Deps, startSpeed snake.Speed, width, height int) error {
	p := tea.NewProgram(NewApp(deps, startSpeed, width, height), ProgramOptions()...)
	_, err := p.Run()
	return err
}

func (a *App) openGame(speed snake.Speed) {
	a.speed = speed
	a.game = NewGameModel(a.deps, speed, a.width, a.height)
	a.hasGame = true
	a.screen = screenGame
}

func (a *App) openMenu() {
	a.menu = NewMenuModel(a.deps.Board, a.speed, a.width, a.height)
	a.hasGame = false
	a.screen = screenMenu
}

func (a *App) openScores(from screen) {
	a.scoreboard = NewScoreboardModel(a.deps.Board, a.width, a.height)
	a.scoresFrom = from
	a.screen = screenScores
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update routes messages to the active screen and handles transitions.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = wsm.Width, wsm.Height
		// The round keeps its buffer in sync even while the scoreboard is open.
		if a.hasGame && a.screen != screenGame {
			m, _ := a.game.Update(msg)
			a.game = m.(GameModel)
		}
	}

	switch a.screen {
	case screenGame:
		return a.updateGame(msg)
	case screenScores:
		return a.updateScores(msg)
	default:
		return a.updateMenu(msg)
	}
}

func (a App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.menu.Update(msg)
	a.menu = m.(MenuModel)

	switch {
	case a.menu.IsQuitting():
		a.quitting = true
		return a, tea.Quit
	case a.menu.WantsScoreboard():
		a.openScores(screenMenu)
		return a, nil
	case a.menu.Selected() != nil:
		a.openGame(a.menu.Selected().Speed)
		return a, nil
	}
	return a, cmd
}

func (a App) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.game.Update(msg)
	a.game = m.(GameModel)

	switch {
	case a.game.IsQuitting():
		a.quitting = true
		return a, tea.Quit
	case a.game.BackToMenu():
		a.openMenu()
		return a, nil
	case a.game.scoresRequested:
		a.game.scoresRequested = false
		a.openScores(screenGame)
		return a, cmd
	}
	return a, cmd
}

func (a App) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Frames for a paused round still drain while the scoreboard is shown.
	if fm, ok := msg.(FrameMsg); ok && a.hasGame {
		m, cmd := a.game.Update(fm)
		a.game = m.(GameModel)
		return a, cmd
	}

	m, cmd := a.scoreboard.Update(msg)
	a.scoreboard = m.(ScoreboardModel)

	switch {
	case a.scoreboard.IsQuitting():
		if a.hasGame {
			a.game.session.Destroy()
		}
		a.quitting = true
		return a, tea.Quit
	case a.scoreboard.IsGoingBack():
		if a.scoresFrom == screenGame && a.hasGame {
			a.screen = screenGame
		} else {
			a.openMenu()
		}
		return a, nil
	}
	return a, cmd
}

// View renders the active screen.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	switch a.screen {
	case screenGame:
		return a.game.View()
	case screenScores:
		return a.scoreboard.View()
	default:
		return a.menu.View()
	}
}
