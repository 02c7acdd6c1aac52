package tui

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/loop"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// swipe tracks a mouse drag between press and release.
type swipe struct {
	active bool
	x, y   int
}

// GameModel is the Bubble Tea model for one round screen. It owns a
// session.Session and feeds it frame timestamps relative to its epoch.
type GameModel struct {
	id       uint64
	session  *session.Session
	renderer *screenRenderer
	status   *statusLine
	keys     GameKeyMap
	help     help.Model
	logger   *log.Logger

	interval time.Duration // Frame interval
	epoch    time.Time
	ticking  bool // A FrameMsg is in flight
	drag     swipe

	quitting        bool
	backToMenu      bool
	scoresRequested bool
}

// NewGameModel creates a round screen at the given speed. Width and height
// are the terminal size.
func NewGameModel(deps Deps, speed snake.Speed, width, height int) GameModel {
	cfg := deps.Config
	logger := deps.logger()

	seed := deps.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	clock, err := loop.NewClock(cfg.Loop.Policy, cfg.Loop.MaxCatchUp)
	if err != nil {
		logger.Warn("falling back to the coalescing clock", "error", err)
	}

	status := &statusLine{logger: logger}
	renderer := newScreenRenderer(width, max(height-1, 0), status)

	sess := session.New(session.Options{
		Rules:       cfg.Rules(),
		Speed:       speed,
		Rand:        rand.New(rand.NewSource(seed)),
		Clock:       clock,
		Renderer:    renderer,
		Announcer:   status,
		Leaderboard: deps.Board,
		Logger:      logger,
	})

	h := help.New()
	h.Width = width

	return GameModel{
		id:       nextScreenID.Add(1),
		session:  sess,
		renderer: renderer,
		status:   status,
		keys:     DefaultGameKeyMap(),
		help:     h,
		logger:   logger,
		interval: cfg.FrameInterval(),
		epoch:    time.Now(),
	}
}

// Init implements tea.Model. Frames are only scheduled once a round runs.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// since converts wall time into a frame timestamp.
func (m GameModel) since(t time.Time) time.Duration {
	return t.Sub(m.epoch)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		if msg.ID != m.id {
			return m, nil // Left over from an earlier round screen
		}
		if m.session.Frame(m.since(msg.Time)) {
			return m, frameCmd(m.id, m.interval)
		}
		m.ticking = false
		return m, nil

	case tea.KeyMsg:
		return m.handleAction(m.keys.Action(msg))

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.BlurMsg:
		m.session.Blur(m.since(time.Now()))
		return m, nil

	case tea.WindowSizeMsg:
		m.renderer.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		m.renderer.Render(m.session.View())
		return m, nil
	}
	return m, nil
}

func (m GameModel) handleAction(a core.Action) (tea.Model, tea.Cmd) {
	now := m.since(time.Now())

	switch a {
	case core.ActionQuit:
		m.session.Destroy()
		m.quitting = true
		return m, tea.Quit
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		if d, ok := a.Direction(); ok {
			m.session.ChangeDirection(d)
		}
	case core.ActionPause:
		m.session.TogglePause(now)
	case core.ActionStart:
		m.session.Start(now)
	case core.ActionRestart:
		m.session.Restart(now)
	case core.ActionSpeedSlow:
		m.session.SetSpeed(snake.SpeedSlow)
	case core.ActionSpeedMedium:
		m.session.SetSpeed(snake.SpeedMedium)
	case core.ActionSpeedFast:
		m.session.SetSpeed(snake.SpeedFast)
	case core.ActionScoreboard:
		m.session.Blur(now)
		m.scoresRequested = true
	case core.ActionBack:
		m.session.Destroy()
		m.backToMenu = true
	}

	return m.ensureTicking()
}

// handleMouse turns a press-drag-release into a direction change.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.drag = swipe{active: true, x: msg.X, y: msg.Y}
		}
	case tea.MouseActionRelease:
		if !m.drag.active {
			return m, nil
		}
		m.drag.active = false
		if d, ok := core.SwipeDirection(m.drag.x, m.drag.y, msg.X, msg.Y, core.DefaultSwipeThreshold); ok {
			m.session.ChangeDirection(d)
		}
	}
	return m, nil
}

// ensureTicking schedules a frame if the session runs and none is pending.
func (m GameModel) ensureTicking() (tea.Model, tea.Cmd) {
	if m.ticking || !m.session.Running() {
		return m, nil
	}
	m.ticking = true
	return m, frameCmd(m.id, m.interval)
}

// View renders the board and the help bar.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	return m.renderer.String() + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Session exposes the underlying session, mainly for tests.
func (m GameModel) Session() *session.Session {
	return m.session
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Deps are the process-wide collaborators shared by every screen and every
// SSH connection.
type Deps struct {
	Config config.Config
	Board  storage.Leaderboard // nil runs without persistence
	Logger *log.Logger
	Seed   int64 // 0 picks a time-based seed per round screen
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}
