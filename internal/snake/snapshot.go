package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot is a read-only copy of the state a renderer or announcer needs.
type Snapshot struct {
	Body       []core.Position // Head first
	Food       core.Position
	State      State
	Score      int
	Speed      Speed
	Direction  core.Direction
	GridWidth  int
	GridHeight int
	Ticks      uint64
}

// Snapshot captures the current model state.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{
		Body:       m.snake.Body(),
		Food:       m.food,
		State:      m.state,
		Score:      m.score,
		Speed:      m.speed,
		Direction:  m.snake.Direction(),
		GridWidth:  m.rules.GridWidth,
		GridHeight: m.rules.GridHeight,
		Ticks:      m.ticks,
	}
}

// Head returns the head position, or the zero position for an empty body.
func (s Snapshot) Head() core.Position {
	if len(s.Body) == 0 {
		return core.Position{}
	}
	return s.Body[0]
}

// Key identifies what is visible in the snapshot. Two snapshots with the
// same key draw identically.
func (s Snapshot) Key() string {
	var b strings.Builder
	for i, p := range s.Body {
		if i > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%d,%d", p.X, p.Y)
	}
	fmt.Fprintf(&b, ":%d,%d:%s:%d:%s", s.Food.X, s.Food.Y, s.State, s.Score, s.Speed)
	return b.String()
}
