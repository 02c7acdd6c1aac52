package snake

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func newTestModel(seed int64) *Model {
	return NewModel(DefaultRules(), rand.New(rand.NewSource(seed)))
}

func TestNewModelInitialState(t *testing.T) {
	m := newTestModel(1)

	if m.State() != StateNotStarted {
		t.Errorf("State() = %v, expected not_started", m.State())
	}
	if m.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", m.Score())
	}
	if m.Speed() != SpeedMedium {
		t.Errorf("Speed() = %v, expected medium", m.Speed())
	}
	if m.Snake().Head() != core.Pos(10, 10) {
		t.Errorf("head = %v, expected centered (10,10)", m.Snake().Head())
	}
	if m.Snake().Len() != 3 {
		t.Errorf("snake length = %d, expected 3", m.Snake().Len())
	}
	if m.Snake().Occupies(m.Food()) {
		t.Errorf("food %v placed on the snake", m.Food())
	}
}

func TestUpdateNoopUnlessPlaying(t *testing.T) {
	for _, st := range []State{StateNotStarted, StatePaused, StateGameOver} {
		t.Run(st.String(), func(t *testing.T) {
			m := newTestModel(2)
			m.SetState(st)
			head := m.Snake().Head()

			m.Update()

			if m.Snake().Head() != head {
				t.Errorf("snake moved in state %v", st)
			}
			if m.State() != st {
				t.Errorf("state changed from %v to %v", st, m.State())
			}
		})
	}
}

func TestUpdateMovesOneCell(t *testing.T) {
	m := newTestModel(3)
	m.SetFood(core.Pos(0, 0))
	m.Start()

	m.Update()

	if m.Snake().Head() != core.Pos(11, 10) {
		t.Errorf("head = %v, expected (11,10)", m.Snake().Head())
	}
	if m.State() != StatePlaying {
		t.Errorf("State() = %v, expected playing", m.State())
	}
	if m.Ticks() != 1 {
		t.Errorf("Ticks() = %d, expected 1", m.Ticks())
	}
}

func TestUpdateWallGameOver(t *testing.T) {
	m := newTestModel(4)
	m.SetBody([]core.Position{{X: 19, Y: 10}})
	m.SetFood(core.Pos(0, 0))
	m.SetState(StatePlaying)

	m.Update()

	if m.State() != StateGameOver {
		t.Errorf("State() = %v, expected game_over after crossing x=20", m.State())
	}
}

func TestUpdateSelfGameOver(t *testing.T) {
	m := newTestModel(5)
	m.SetBody([]core.Position{
		{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 4, Y: 6}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5},
	})
	m.SetFood(core.Pos(0, 0))
	m.SetState(StatePlaying)
	m.ChangeDirection(core.DirDown)

	m.Update()

	if m.State() != StateGameOver {
		t.Errorf("State() = %v, expected game_over on self collision", m.State())
	}
}

func TestUpdateEatsFood(t *testing.T) {
	m := newTestModel(6)
	head := m.Snake().Head()
	m.SetFood(head.Step(core.DirRight))
	m.Start()

	m.Update()

	if m.Score() != DefaultRules().PointsPerFood {
		t.Errorf("Score() = %d, expected %d", m.Score(), DefaultRules().PointsPerFood)
	}
	if m.Snake().Len() != 4 {
		t.Errorf("snake length = %d, expected 4", m.Snake().Len())
	}
	if m.Snake().Occupies(m.Food()) {
		t.Errorf("new food %v placed on the snake", m.Food())
	}
	if m.State() != StatePlaying {
		t.Errorf("State() = %v, expected playing", m.State())
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	m := newTestModel(7)
	m.Start()

	last := 0
	for range 200 {
		// Chase the food greedily so some gets eaten.
		head, food := m.Snake().Head(), m.Food()
		switch {
		case food.X > head.X:
			m.ChangeDirection(core.DirRight)
		case food.X < head.X:
			m.ChangeDirection(core.DirLeft)
		case food.Y > head.Y:
			m.ChangeDirection(core.DirDown)
		default:
			m.ChangeDirection(core.DirUp)
		}
		m.Update()
		if m.Score() < last {
			t.Fatalf("score decreased from %d to %d", last, m.Score())
		}
		last = m.Score()
		if m.State() == StateGameOver {
			break
		}
	}
}

func TestTogglePause(t *testing.T) {
	m := newTestModel(8)
	m.Start()

	m.TogglePause()
	if m.State() != StatePaused {
		t.Fatalf("State() = %v, expected paused", m.State())
	}
	m.TogglePause()
	if m.State() != StatePlaying {
		t.Errorf("State() = %v, expected playing after second toggle", m.State())
	}
}

func TestTogglePauseNoopOutsidePlay(t *testing.T) {
	for _, st := range []State{StateNotStarted, StateGameOver} {
		t.Run(st.String(), func(t *testing.T) {
			m := newTestModel(9)
			m.SetState(st)
			m.TogglePause()
			m.TogglePause()
			if m.State() != st {
				t.Errorf("State() = %v, expected %v", m.State(), st)
			}
		})
	}
}

func TestStartOnlyFromNotStarted(t *testing.T) {
	m := newTestModel(10)
	if !m.Start() {
		t.Fatal("Start() from not_started should succeed")
	}
	m.TogglePause()
	if m.Start() {
		t.Error("Start() from paused should be refused")
	}
	m.SetState(StateGameOver)
	if m.Start() {
		t.Error("Start() from game_over should be refused")
	}
}

func TestInitGameResets(t *testing.T) {
	m := newTestModel(11)
	m.SetSpeed(SpeedFast)
	m.SetFood(m.Snake().Head().Step(core.DirRight))
	m.Start()
	m.Update()
	m.SetState(StateGameOver)

	m.InitGame()

	if m.Score() != 0 || m.State() != StateNotStarted || m.Ticks() != 0 {
		t.Errorf("after InitGame: score=%d state=%v ticks=%d", m.Score(), m.State(), m.Ticks())
	}
	if m.Snake().Len() != 3 || m.Snake().Head() != core.Pos(10, 10) {
		t.Errorf("after InitGame: snake %v", m.Snake().Body())
	}
	if m.Speed() != SpeedFast {
		t.Errorf("InitGame should keep the chosen speed, got %v", m.Speed())
	}
	if m.Rules().GridWidth != 20 || m.Rules().GridHeight != 20 {
		t.Errorf("grid changed to %dx%d", m.Rules().GridWidth, m.Rules().GridHeight)
	}
}

func TestGenerateFoodNeverOnSnake(t *testing.T) {
	rules := DefaultRules()
	rules.GridWidth, rules.GridHeight = 6, 6
	m := NewModel(rules, rand.New(rand.NewSource(12)))

	// Cover most of the board.
	var body []core.Position
	for y := range 6 {
		for x := range 5 {
			body = append(body, core.Pos(x, y))
		}
	}
	m.SetBody(body)

	for range 100 {
		if err := m.GenerateFood(); err != nil {
			t.Fatalf("GenerateFood() error: %v", err)
		}
		if m.Snake().Occupies(m.Food()) {
			t.Fatalf("food %v on snake", m.Food())
		}
		if m.Food().X != 5 {
			t.Fatalf("food %v outside the free column", m.Food())
		}
	}
}

func TestGenerateFoodFallbackScan(t *testing.T) {
	rules := DefaultRules()
	rules.GridWidth, rules.GridHeight = 4, 4
	rules.FoodMaxAttempts = 0 // Go straight to the scan
	m := NewModel(rules, rand.New(rand.NewSource(13)))

	var body []core.Position
	for y := range 4 {
		for x := range 4 {
			if x == 2 && y == 3 {
				continue
			}
			body = append(body, core.Pos(x, y))
		}
	}
	m.SetBody(body)

	if err := m.GenerateFood(); err != nil {
		t.Fatalf("GenerateFood() error: %v", err)
	}
	if m.Food() != core.Pos(2, 3) {
		t.Errorf("Food() = %v, expected the only free cell (2,3)", m.Food())
	}
}

func TestGenerateFoodBoardFull(t *testing.T) {
	rules := DefaultRules()
	rules.GridWidth, rules.GridHeight = 2, 2
	m := NewModel(rules, rand.New(rand.NewSource(14)))
	prev := m.Food()

	m.SetBody([]core.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})

	err := m.GenerateFood()
	if !errors.Is(err, ErrBoardFull) {
		t.Fatalf("GenerateFood() error = %v, expected ErrBoardFull", err)
	}
	if m.Food() != prev {
		t.Errorf("food moved to %v on a full board", m.Food())
	}
}

func TestEatingLastFreeCellEndsGame(t *testing.T) {
	rules := DefaultRules()
	rules.GridWidth, rules.GridHeight = 2, 2
	m := NewModel(rules, rand.New(rand.NewSource(15)))

	// Three segments, food on the fourth cell straight ahead.
	m.SetBody([]core.Position{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}})
	m.SetFood(core.Pos(1, 1))
	m.SetState(StatePlaying)

	m.Update()

	if m.State() != StateGameOver {
		t.Errorf("State() = %v, expected game_over on a full board", m.State())
	}
	if m.Score() != rules.PointsPerFood {
		t.Errorf("Score() = %d, expected the last food to count", m.Score())
	}
}

func TestSetSpeedIgnoresNonPositive(t *testing.T) {
	m := newTestModel(16)
	m.SetSpeed(SpeedSlow)
	m.SetSpeed(0)
	if m.Speed() != SpeedSlow {
		t.Errorf("Speed() = %v, expected slow", m.Speed())
	}
}

func TestParseSpeed(t *testing.T) {
	tests := []struct {
		in      string
		want    Speed
		wantErr bool
	}{
		{"slow", SpeedSlow, false},
		{"MEDIUM", SpeedMedium, false},
		{" fast ", SpeedFast, false},
		{"", SpeedMedium, false},
		{"ludicrous", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseSpeed(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseSpeed(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownSpeed) {
			t.Errorf("ParseSpeed(%q) error should wrap ErrUnknownSpeed", tc.in)
		}
		if got != tc.want {
			t.Errorf("ParseSpeed(%q) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}

func TestSpeedInterval(t *testing.T) {
	if SpeedMedium.Interval().Milliseconds() != 100 {
		t.Errorf("medium interval = %v, expected 100ms", SpeedMedium.Interval())
	}
	if SpeedSlow.Interval().Milliseconds() != 200 {
		t.Errorf("slow interval = %v, expected 200ms", SpeedSlow.Interval())
	}
}

func TestDeterminism(t *testing.T) {
	// Two models with the same seed and inputs end in the same state.
	m1 := newTestModel(12345)
	m2 := newTestModel(12345)
	m1.Start()
	m2.Start()

	for i := range 60 {
		if i == 5 {
			m1.ChangeDirection(core.DirDown)
			m2.ChangeDirection(core.DirDown)
		}
		if i == 9 {
			m1.ChangeDirection(core.DirLeft)
			m2.ChangeDirection(core.DirLeft)
		}
		m1.Update()
		m2.Update()
	}

	if m1.Snapshot().Key() != m2.Snapshot().Key() {
		t.Errorf("snapshots diverged:\n%s\n%s", m1.Snapshot().Key(), m2.Snapshot().Key())
	}
}
