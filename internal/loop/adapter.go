package loop

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// ModelAdapter lets a snake.Model be driven as a Game.
type ModelAdapter struct {
	Model *snake.Model
}

func (a ModelAdapter) Update() { a.Model.Update() }

// Interval follows the model's current speed, so speed changes take effect
// on the next frame.
func (a ModelAdapter) Interval() time.Duration { return a.Model.Speed().Interval() }

func (a ModelAdapter) Running() bool { return a.Model.State() == snake.StatePlaying }
