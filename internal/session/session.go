// Package session coordinates one player's game: it turns player intents
// into model calls, drives the logical loop from frame timestamps and
// forwards the results to a renderer, an announcer and the leaderboard.
//
// A Session is owned by its host and is not safe for concurrent use. The
// Bubble Tea host calls it from its Update method only.
package session

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/loop"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// DefaultTimeout bounds each leaderboard call.
const DefaultTimeout = 2 * time.Second

// View is everything a renderer needs for one frame.
type View struct {
	Snapshot  snake.Snapshot
	HighScore int
	Placement storage.Placement // Valid once the round is over
}

// Renderer draws a view. It is called on every frame and after every state
// change; implementations may skip unchanged views.
type Renderer interface {
	Render(View)
}

// Announcer receives short human-readable status messages.
type Announcer interface {
	Announce(msg string)
}

// Leaderboard is the part of storage.Leaderboard a session uses.
type Leaderboard interface {
	Record(ctx context.Context, score int) (storage.Placement, error)
	HighScore(ctx context.Context) (int, error)
}

// Options configures a Session. Zero values select defaults; nil
// collaborators are replaced by no-ops.
type Options struct {
	Rules       snake.Rules
	Speed       snake.Speed
	Rand        *rand.Rand
	Clock       loop.Clock
	Renderer    Renderer
	Announcer   Announcer
	Leaderboard Leaderboard
	Logger      *log.Logger
	Timeout     time.Duration
}

// Session is the game controller for a single player.
type Session struct {
	model  *snake.Model
	loop   *loop.Loop
	render Renderer
	ann    Announcer
	board  Leaderboard
	logger *log.Logger

	timeout            time.Duration
	lastAnnouncedScore int
	highScore          int
	placement          storage.Placement
	recorded           bool // Final score of the current round is stored
	destroyed          bool
}

// New creates a session with a fresh, not yet started round and loads the
// current high score.
func New(opts Options) *Session {
	if opts.Rules == (snake.Rules{}) {
		opts.Rules = snake.DefaultRules()
	}
	if opts.Renderer == nil {
		opts.Renderer = nopRenderer{}
	}
	if opts.Announcer == nil {
		opts.Announcer = nopAnnouncer{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	model := snake.NewModel(opts.Rules, opts.Rand)
	if opts.Speed.Valid() {
		model.SetSpeed(opts.Speed)
	}

	s := &Session{
		model:   model,
		loop:    loop.New(loop.ModelAdapter{Model: model}, opts.Clock),
		render:  opts.Renderer,
		ann:     opts.Announcer,
		board:   opts.Leaderboard,
		logger:  opts.Logger,
		timeout: opts.Timeout,
	}
	s.refreshHighScore()
	s.draw()
	return s
}

// Start begins a new round unless one is already in progress.
func (s *Session) Start(now time.Duration) {
	if s.destroyed {
		return
	}
	switch s.model.State() {
	case snake.StatePlaying, snake.StatePaused:
		return
	}
	s.begin(now)
}

// Restart abandons the current round and starts a new one.
func (s *Session) Restart(now time.Duration) {
	if s.destroyed {
		return
	}
	s.loop.Stop()
	s.begin(now)
}

func (s *Session) begin(now time.Duration) {
	s.model.InitGame()
	s.model.Start()
	s.lastAnnouncedScore = 0
	s.placement = storage.Placement{}
	s.recorded = false

	s.loop.Start(now)
	s.logger.Debug("round started", "speed", s.model.Speed())
	s.ann.Announce("Game started. Score 0")
	s.draw()
}

// TogglePause pauses a running round or resumes a paused one. Resuming
// restarts the loop at now, so time spent paused never counts.
func (s *Session) TogglePause(now time.Duration) {
	switch s.model.State() {
	case snake.StatePlaying:
		s.model.TogglePause()
		s.loop.Stop()
		s.ann.Announce("Paused")
	case snake.StatePaused:
		s.model.TogglePause()
		s.loop.Start(now)
		s.ann.Announce("Resumed")
	default:
		return
	}
	s.draw()
}

// Blur pauses a running round when the host loses focus.
func (s *Session) Blur(now time.Duration) {
	if s.model.State() == snake.StatePlaying {
		s.TogglePause(now)
	}
}

// ChangeDirection queues a turn. It is ignored unless the round is playing.
func (s *Session) ChangeDirection(d core.Direction) {
	if s.model.State() != snake.StatePlaying {
		return
	}
	s.model.ChangeDirection(d)
}

// SetSpeed changes the update cadence. It takes effect from the next frame.
func (s *Session) SetSpeed(speed snake.Speed) {
	if !speed.Valid() {
		return
	}
	s.model.SetSpeed(speed)
	s.ann.Announce("Speed set to " + speed.String())
	s.draw()
}

// Frame handles one frame callback at timestamp now and renders. It returns
// whether the host should schedule another frame.
func (s *Session) Frame(now time.Duration) bool {
	if s.destroyed {
		return false
	}

	res := s.loop.Frame(now)
	if res.Updated() {
		if score := s.model.Score(); score > s.lastAnnouncedScore {
			s.ann.Announce(scoreMessage(score))
			s.lastAnnouncedScore = score
		}
	}

	if s.model.State() == snake.StateGameOver && !s.recorded {
		s.endGame()
		return false
	}

	s.draw()
	return res.Continue
}

// endGame runs once per round on the transition to GameOver.
func (s *Session) endGame() {
	s.loop.Stop()
	s.recorded = true

	score := s.model.Score()
	s.placement = s.record(score)
	s.logger.Info("round over", "score", score, "ticks", s.model.Ticks(),
		"qualified", s.placement.Qualified, "rank", s.placement.Rank)

	s.ann.Announce(gameOverMessage(score, s.placement))
	s.refreshHighScore()
	s.draw()
}

// record stores the score. Any failure counts as not making the board.
func (s *Session) record(score int) storage.Placement {
	if s.board == nil {
		return storage.Placement{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	p, err := s.board.Record(ctx, score)
	if err != nil {
		s.logger.Warn("could not record score", "score", score, "error", err)
		return storage.Placement{}
	}
	return p
}

func (s *Session) refreshHighScore() {
	if s.board == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	high, err := s.board.HighScore(ctx)
	if err != nil {
		s.logger.Warn("could not load high score", "error", err)
		return
	}
	s.highScore = high
}

// Destroy stops the loop. Later calls other than accessors are ignored.
func (s *Session) Destroy() {
	s.loop.Stop()
	s.destroyed = true
}

func (s *Session) draw() {
	s.render.Render(s.View())
}

// View returns the current view.
func (s *Session) View() View {
	return View{
		Snapshot:  s.model.Snapshot(),
		HighScore: s.highScore,
		Placement: s.placement,
	}
}

// Snapshot returns a copy of the game state.
func (s *Session) Snapshot() snake.Snapshot { return s.model.Snapshot() }

// HighScore returns the best score on the leaderboard as of the last load.
func (s *Session) HighScore() int { return s.highScore }

// LastPlacement reports where the last finished round landed.
func (s *Session) LastPlacement() storage.Placement { return s.placement }

// State returns the lifecycle state of the current round.
func (s *Session) State() snake.State { return s.model.State() }

// Running reports whether the session wants frames.
func (s *Session) Running() bool { return s.loop.Running() }

type nopRenderer struct{}

func (nopRenderer) Render(View) {}

type nopAnnouncer struct{}

func (nopAnnouncer) Announce(string) {}
