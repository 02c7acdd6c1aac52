package core

import "testing"

func TestPositionStep(t *testing.T) {
	tests := []struct {
		d    Direction
		want Position
	}{
		{DirUp, Pos(5, 4)},
		{DirDown, Pos(5, 6)},
		{DirLeft, Pos(4, 5)},
		{DirRight, Pos(6, 5)},
	}

	for _, tc := range tests {
		t.Run(tc.d.String(), func(t *testing.T) {
			if got := Pos(5, 5).Step(tc.d); got != tc.want {
				t.Errorf("Step(%v) = %v, expected %v", tc.d, got, tc.want)
			}
		})
	}
}

func TestPositionIn(t *testing.T) {
	tests := []struct {
		name     string
		p        Position
		expected bool
	}{
		{"origin", Pos(0, 0), true},
		{"far corner", Pos(19, 19), true},
		{"right edge (exclusive)", Pos(20, 5), false},
		{"bottom edge (exclusive)", Pos(5, 20), false},
		{"negative x", Pos(-1, 5), false},
		{"negative y", Pos(5, -1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.In(20, 20); got != tc.expected {
				t.Errorf("%v.In(20, 20) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range Directions {
		o := d.Opposite()
		if o == d {
			t.Errorf("%v.Opposite() returned itself", d)
		}
		if o.Opposite() != d {
			t.Errorf("%v.Opposite().Opposite() = %v", d, o.Opposite())
		}

		dx, dy := d.Delta()
		ox, oy := o.Delta()
		if dx+ox != 0 || dy+oy != 0 {
			t.Errorf("deltas of %v and %v do not cancel", d, o)
		}
	}
}

func TestDirectionValid(t *testing.T) {
	for _, d := range Directions {
		if !d.Valid() {
			t.Errorf("%v should be valid", d)
		}
	}
	if Direction(-1).Valid() || Direction(4).Valid() {
		t.Error("out-of-range directions should be invalid")
	}
	if Direction(9).String() != "unknown" {
		t.Errorf("String() of invalid direction = %q", Direction(9).String())
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 {
		t.Error("Abs(5) should be 5")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}
