package snake

import (
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snake is a multi-segment body moving on a uniform grid.
//
// It keeps two directions: the one applied by the most recent move and the
// one queued for the next move. Reversal checks are made against the applied
// direction, so any number of turns queued between two moves can never point
// the head back into the neck.
type Snake struct {
	body      []core.Position // Head at index 0
	direction core.Direction  // Applied by the last move
	nextDir   core.Direction  // Applied by the next move
	growing   bool            // Next move keeps the tail
}

// NewSnake builds a snake of length n with its head at head, extending to
// the left and facing right. Lengths below 1 are treated as 1.
func NewSnake(head core.Position, n int) *Snake {
	n = max(n, 1)
	body := make([]core.Position, n)
	for i := range body {
		body[i] = core.Position{X: head.X - i, Y: head.Y}
	}
	return &Snake{
		body:      body,
		direction: core.DirRight,
		nextDir:   core.DirRight,
	}
}

// newSnakeFromBody wraps an explicit body. Direction defaults to right.
func newSnakeFromBody(body []core.Position) *Snake {
	return &Snake{
		body:      append([]core.Position(nil), body...),
		direction: core.DirRight,
		nextDir:   core.DirRight,
	}
}

// ChangeDirection queues d for the next move unless it is the reverse of
// the applied direction, in which case the request is dropped.
func (s *Snake) ChangeDirection(d core.Direction) {
	if !d.Valid() || d == s.direction.Opposite() {
		return
	}
	s.nextDir = d
}

// Move advances the snake one cell and reports whether the new head landed
// on food. Eating sets the grow flag; a set grow flag is consumed by keeping
// the tail. Moves are not bounds-checked.
func (s *Snake) Move(food core.Position) bool {
	s.direction = s.nextDir

	newHead := s.Head().Step(s.direction)
	s.body = append(s.body, core.Position{})
	copy(s.body[1:], s.body)
	s.body[0] = newHead

	ateFood := newHead == food
	if ateFood {
		s.growing = true
	}

	if s.growing {
		s.growing = false
	} else {
		s.body = s.body[:len(s.body)-1]
	}

	return ateFood
}

// Grow marks the snake to keep its tail on the next move.
func (s *Snake) Grow() {
	s.growing = true
}

// CheckSelfCollision reports whether the head overlaps any other segment.
func (s *Snake) CheckSelfCollision() bool {
	head := s.Head()
	for _, seg := range s.body[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

// CheckWallCollision reports whether the head is outside a width x height grid.
func (s *Snake) CheckWallCollision(width, height int) bool {
	return !s.Head().In(width, height)
}

// Occupies reports whether any segment is at p.
func (s *Snake) Occupies(p core.Position) bool {
	for _, seg := range s.body {
		if seg == p {
			return true
		}
	}
	return false
}

// Head returns the head position.
func (s *Snake) Head() core.Position {
	return s.body[0]
}

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []core.Position {
	return append([]core.Position(nil), s.body...)
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.body)
}

// Direction returns the direction applied by the last move.
func (s *Snake) Direction() core.Direction {
	return s.direction
}

// PendingDirection returns the direction the next move will apply.
func (s *Snake) PendingDirection() core.Direction {
	return s.nextDir
}

// Growing reports whether the next move keeps the tail.
func (s *Snake) Growing() bool {
	return s.growing
}
