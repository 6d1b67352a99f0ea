// Package cursor keeps a best-effort model of where the terminal cursor is.
// The model advances by the bytes written and can be corrected by an
// authoritative query when the terminal supports one.
package cursor

import (
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Point is a 0-indexed screen cell
type Point struct {
	X, Y int
}

// Querier reports the real cursor position
type Querier interface {
	QueryCursor(timeout time.Duration) (x, y int, err error)
}

// Tracker estimates the cursor position from output; not safe for concurrent use
type Tracker struct {
	pos     Point
	modulus int // glyph bytes per skipped advance, 0 advances on every glyph byte
	glyph   int // bytes of the current glyph seen so far
}

// NewTracker creates a tracker at the origin
func NewTracker(glyphModulus int) *Tracker {
	return &Tracker{modulus: glyphModulus}
}

// Advance applies one written byte
func (t *Tracker) Advance(c byte) {
	switch {
	case c == '\n':
		t.glyph = 0
		t.pos.X = 0
		t.pos.Y++
	case c == '\r':
		t.glyph = 0
		t.pos.X = 0
	case c == '\b':
		t.glyph = 0
		if t.pos.X > 0 {
			t.pos.X--
		}
	case c == '\t':
		t.glyph = 0
		t.pos.X = (t.pos.X/8 + 1) * 8
	case c == 0:
		t.glyph = 0
	case c >= 0x80:
		t.glyph++
		if t.modulus == 0 || t.glyph%t.modulus != 0 {
			t.pos.X++
		}
	default:
		t.glyph = 0
		t.pos.X++
	}
}

// AdvanceString applies printed text; escape sequences move nothing
func (t *Tracker) AdvanceString(s string) {
	plain := ansi.Strip(s)
	for i := 0; i < len(plain); i++ {
		t.Advance(plain[i])
	}
}

// AdvanceBytes applies text known to contain no escape sequences
func (t *Tracker) AdvanceBytes(b []byte) {
	for _, c := range b {
		t.Advance(c)
	}
}

// Set forces the estimate
func (t *Tracker) Set(x, y int) {
	t.pos = Point{X: max(x, 0), Y: max(y, 0)}
	t.glyph = 0
}

// Position returns the estimate
func (t *Tracker) Position() Point {
	return t.pos
}

// Reconcile overwrites the estimate with the queried position
// Returns the drift that was corrected and whether the query succeeded
func (t *Tracker) Reconcile(q Querier, timeout time.Duration) (drift Point, ok bool) {
	if q == nil {
		return Point{}, false
	}
	x, y, err := q.QueryCursor(timeout)
	if err != nil {
		return Point{}, false
	}
	drift = Point{X: x - t.pos.X, Y: y - t.pos.Y}
	t.Set(x, y)
	return drift, true
}
