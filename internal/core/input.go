package core

// Action is a decoded player intent, abstracted from physical key presses,
// mouse gestures or SSH input.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionPause       // Toggle pause/resume
	ActionStart       // Start a new round from the title screen
	ActionRestart     // Start over after game over (or mid-game)
	ActionSpeedSlow   // Select the slow speed
	ActionSpeedMedium // Select the medium speed
	ActionSpeedFast   // Select the fast speed
	ActionScoreboard  // Open the leaderboard
	ActionBack        // Leave the current screen
	ActionQuit        // Exit the program/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPause:
		return "Pause"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionSpeedSlow:
		return "SpeedSlow"
	case ActionSpeedMedium:
		return "SpeedMedium"
	case ActionSpeedFast:
		return "SpeedFast"
	case ActionScoreboard:
		return "Scoreboard"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction returns the movement direction carried by a, if any.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	}
	return DirRight, false
}

// SwipeThreshold is the minimum travel, per axis, for a drag to count as a swipe.
type SwipeThreshold struct {
	X, Y int
}

// DefaultSwipeThreshold accounts for terminal cells being about twice as
// tall as they are wide.
var DefaultSwipeThreshold = SwipeThreshold{X: 2, Y: 1}

// SwipeDirection classifies a drag from (x0, y0) to (x1, y1).
// The dominant axis wins; drags shorter than the threshold are ignored.
func SwipeDirection(x0, y0, x1, y1 int, th SwipeThreshold) (Direction, bool) {
	dx := x1 - x0
	dy := y1 - y0

	// Compare in comparable units: one row is roughly two columns.
	if Abs(dx)*th.Y > Abs(dy)*th.X {
		if Abs(dx) < th.X {
			return DirRight, false
		}
		if dx > 0 {
			return DirRight, true
		}
		return DirLeft, true
	}

	if Abs(dy) < th.Y || dy == 0 {
		return DirRight, false
	}
	if dy > 0 {
		return DirDown, true
	}
	return DirUp, true
}
