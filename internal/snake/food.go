package snake

import (
	"errors"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrBoardFull means no free cell is left for food.
var ErrBoardFull = errors.New("snake: no free cell for food")

// GenerateFood places food on a uniformly random cell not covered by the snake.
//
// Sampling is by rejection, which is cheap while the snake is short. After
// FoodMaxAttempts misses it falls back to scanning the free cells. On a full
// board the previous food is kept and ErrBoardFull is returned.
func (m *Model) GenerateFood() error {
	w, h := m.rules.GridWidth, m.rules.GridHeight

	for range max(m.rules.FoodMaxAttempts, 0) {
		p := core.Position{X: m.rng.Intn(w), Y: m.rng.Intn(h)}
		if !m.snake.Occupies(p) {
			m.food = p
			return nil
		}
	}

	free := m.freeCells()
	if len(free) == 0 {
		return ErrBoardFull
	}
	m.food = free[m.rng.Intn(len(free))]
	return nil
}

// freeCells lists every grid cell the snake does not cover, row by row.
func (m *Model) freeCells() []core.Position {
	w, h := m.rules.GridWidth, m.rules.GridHeight

	occupied := make(map[core.Position]bool, m.snake.Len())
	for _, seg := range m.snake.body {
		occupied[seg] = true
	}

	free := make([]core.Position, 0, max(w*h-len(occupied), 0))
	for y := range h {
		for x := range w {
			p := core.Position{X: x, Y: y}
			if !occupied[p] {
				free = append(free, p)
			}
		}
	}
	return free
}
