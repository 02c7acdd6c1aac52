// Package snake implements the Snake game rules: the snake body, food
// placement, scoring and the round lifecycle. It is pure logic with no
// terminal or timing dependencies; the loop and session packages drive it.
package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// State is the round lifecycle state.
type State int

const (
	StateNotStarted State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Speed is the logical update rate in cells per second.
type Speed int

const (
	SpeedSlow   Speed = 5
	SpeedMedium Speed = 10
	SpeedFast   Speed = 15
)

// Speeds lists the selectable speeds, slowest first.
var Speeds = []Speed{SpeedSlow, SpeedMedium, SpeedFast}

// Interval returns the time between two logical ticks at this speed.
func (s Speed) Interval() time.Duration {
	if s <= 0 {
		return time.Second / time.Duration(SpeedMedium)
	}
	return time.Second / time.Duration(s)
}

// Valid reports whether s is one of the selectable speeds.
func (s Speed) Valid() bool {
	for _, v := range Speeds {
		if v == s {
			return true
		}
	}
	return false
}

func (s Speed) String() string {
	switch s {
	case SpeedSlow:
		return "slow"
	case SpeedMedium:
		return "medium"
	case SpeedFast:
		return "fast"
	default:
		return fmt.Sprintf("%d/s", int(s))
	}
}

// ErrUnknownSpeed is returned by ParseSpeed for unrecognized names.
var ErrUnknownSpeed = errors.New("snake: unknown speed")

// ParseSpeed maps "slow", "medium" or "fast" to a Speed.
func ParseSpeed(name string) (Speed, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "slow":
		return SpeedSlow, nil
	case "medium", "":
		return SpeedMedium, nil
	case "fast":
		return SpeedFast, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownSpeed, name)
}

// Rules holds the per-instance constants of a GameModel.
type Rules struct {
	GridWidth       int
	GridHeight      int
	InitialLength   int
	PointsPerFood   int
	FoodMaxAttempts int // Rejection-sampling attempts before the free-cell scan
}

// DefaultRules matches the classic 20x20 board.
func DefaultRules() Rules {
	return Rules{
		GridWidth:       20,
		GridHeight:      20,
		InitialLength:   3,
		PointsPerFood:   10,
		FoodMaxAttempts: 1000,
	}
}

// Model holds one player's game state and applies the rules tick by tick.
type Model struct {
	rules Rules
	rng   *rand.Rand

	snake *Snake
	food  core.Position
	score int
	state State
	speed Speed
	ticks uint64
}

// NewModel creates a model for the given rules and prepares the first round.
func NewModel(rules Rules, rng *rand.Rand) *Model {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rules.GridWidth = max(rules.GridWidth, 1)
	rules.GridHeight = max(rules.GridHeight, 1)
	rules.InitialLength = max(rules.InitialLength, 1)

	m := &Model{
		rules: rules,
		rng:   rng,
		speed: SpeedMedium,
	}
	m.InitGame()
	return m
}

// InitGame resets score, state, snake and food for a fresh round.
// It does not start movement; call Start for that.
func (m *Model) InitGame() {
	m.score = 0
	m.ticks = 0
	m.state = StateNotStarted

	center := core.Position{X: m.rules.GridWidth / 2, Y: m.rules.GridHeight / 2}
	m.snake = NewSnake(center, m.rules.InitialLength)

	//nolint:errcheck // A fresh snake never fills the board it was sized for
	m.GenerateFood()
}

// Start moves a fresh round from NotStarted to Playing.
// Returns false if the model was in any other state.
func (m *Model) Start() bool {
	if m.state != StateNotStarted {
		return false
	}
	m.state = StatePlaying
	return true
}

// Update advances the round by exactly one cell of movement.
// It does nothing unless the round is playing.
func (m *Model) Update() {
	if m.state != StatePlaying {
		return
	}
	m.ticks++

	if m.snake.Move(m.food) {
		m.score += m.rules.PointsPerFood
		if err := m.GenerateFood(); errors.Is(err, ErrBoardFull) {
			m.state = StateGameOver
			return
		}
	}

	if m.CheckGameOver() {
		m.state = StateGameOver
	}
}

// CheckGameOver reports a wall or self collision of the current head.
func (m *Model) CheckGameOver() bool {
	return m.snake.CheckWallCollision(m.rules.GridWidth, m.rules.GridHeight) ||
		m.snake.CheckSelfCollision()
}

// TogglePause switches between Playing and Paused. Other states are untouched.
func (m *Model) TogglePause() {
	switch m.state {
	case StatePlaying:
		m.state = StatePaused
	case StatePaused:
		m.state = StatePlaying
	}
}

// SetSpeed changes the update cadence. Rules are unaffected.
func (m *Model) SetSpeed(s Speed) {
	if s <= 0 {
		return
	}
	m.speed = s
}

// ChangeDirection forwards a direction request to the snake.
func (m *Model) ChangeDirection(d core.Direction) {
	m.snake.ChangeDirection(d)
}

// Snake returns the live snake.
func (m *Model) Snake() *Snake { return m.snake }

// Food returns the current food position.
func (m *Model) Food() core.Position { return m.food }

// Score returns the current score.
func (m *Model) Score() int { return m.score }

// State returns the lifecycle state.
func (m *Model) State() State { return m.state }

// Speed returns the current speed.
func (m *Model) Speed() Speed { return m.speed }

// Rules returns the model's constants.
func (m *Model) Rules() Rules { return m.rules }

// Ticks returns the number of logical updates applied this round.
func (m *Model) Ticks() uint64 { return m.ticks }

// SetState forces the lifecycle state. Used by hosts restoring a round and by tests.
func (m *Model) SetState(s State) { m.state = s }

// SetFood places food at p without checking occupancy.
func (m *Model) SetFood(p core.Position) { m.food = p }

// SetBody replaces the snake with one made of the given segments, facing right.
// An empty body is ignored.
func (m *Model) SetBody(body []core.Position) {
	if len(body) == 0 {
		return
	}
	m.snake = newSnakeFromBody(body)
}
