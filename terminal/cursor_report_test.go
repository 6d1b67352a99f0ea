package terminal

import "testing"

func TestParseCursorReport(t *testing.T) {
	tests := []struct {
		input string
		x, y  int
		ok    bool
	}{
		{"\x1b[1;1R", 0, 0, true},
		{"\x1b[24;80R", 79, 23, true},
		{"\x1b[5;12R", 11, 4, true},
		{"\x1b[;1R", 0, 0, false},
		{"\x1b[0;1R", 0, 0, false},
		{"\x1b[3R", 0, 0, false},
		{"\x1b[3;4;5R", 0, 0, false},
		{"[3;4R", 0, 0, false},
		{"\x1b[3;4H", 0, 0, false},
	}

	for _, tt := range tests {
		x, y, ok := parseCursorReport([]byte(tt.input))
		if ok != tt.ok {
			t.Errorf("%q: expected ok=%v, got %v", tt.input, tt.ok, ok)
			continue
		}
		if ok && (x != tt.x || y != tt.y) {
			t.Errorf("%q: expected (%d,%d), got (%d,%d)", tt.input, tt.x, tt.y, x, y)
		}
	}
}
