package core

import "testing"

func TestActionDirection(t *testing.T) {
	tests := []struct {
		a    Action
		want Direction
		ok   bool
	}{
		{ActionUp, DirUp, true},
		{ActionDown, DirDown, true},
		{ActionLeft, DirLeft, true},
		{ActionRight, DirRight, true},
		{ActionPause, DirRight, false},
		{ActionNone, DirRight, false},
	}

	for _, tc := range tests {
		t.Run(tc.a.String(), func(t *testing.T) {
			d, ok := tc.a.Direction()
			if ok != tc.ok || (ok && d != tc.want) {
				t.Errorf("Direction() = (%v, %v), expected (%v, %v)", d, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestSwipeDirection(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           Direction
		ok             bool
	}{
		{"right", 10, 10, 16, 11, DirRight, true},
		{"left", 10, 10, 4, 9, DirLeft, true},
		{"down", 10, 10, 11, 13, DirDown, true},
		{"up", 10, 10, 10, 8, DirUp, true},
		{"tap", 10, 10, 10, 10, DirRight, false},
		{"short horizontal", 10, 10, 11, 10, DirRight, false},
		// Two columns weigh the same as one row; ties go vertical.
		{"tie goes vertical", 10, 10, 12, 11, DirDown, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := SwipeDirection(tc.x0, tc.y0, tc.x1, tc.y1, DefaultSwipeThreshold)
			if ok != tc.ok || (ok && d != tc.want) {
				t.Errorf("SwipeDirection() = (%v, %v), expected (%v, %v)", d, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	if ActionSpeedFast.String() != "SpeedFast" {
		t.Errorf("String() = %q", ActionSpeedFast.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("String() of invalid action = %q", Action(99).String())
	}
}
