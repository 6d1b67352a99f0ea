package console

import (
	"github.com/lixenwraith/tconsole/cursor"
	"github.com/lixenwraith/tconsole/markup"
	"github.com/lixenwraith/tconsole/terminal"
)

// Line redraws an edited text in place, starting where the cursor was when it opened.
// Erasing uses backspaces from the last caret column, so the text must stay on one row.
type Line struct {
	c          *Console
	origin     cursor.Point
	base       terminal.Color
	allowColor bool
	prior      markup.Frame
}

// OpenLine starts an in-place line at the current cursor
func (c *Console) OpenLine(allowColor bool) *Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &Line{
		c:          c,
		origin:     c.tracker.Position(),
		base:       c.color,
		allowColor: allowColor,
	}
}

// Visible returns the columns drawn by the last redraw
func (l *Line) Visible() int {
	return l.prior.Visible
}

// Redraw erases the previous rendering and draws text with the cursor placed at caret
// Returns the new visible length
func (l *Line) Redraw(text []byte, caret markup.Caret) (int, error) {
	c := l.c
	c.mu.Lock()
	defer c.mu.Unlock()
	l.redrawLocked(text, caret)
	return l.prior.Visible, c.flush()
}

func (l *Line) redrawLocked(text []byte, caret markup.Caret) {
	c := l.c
	f := markup.Render(text, caret, c.profile, l.allowColor)

	// Erase: back to origin, blank the old width, back again
	c.out.Repeat('\b', l.prior.Caret)
	c.out.Repeat(' ', l.prior.Visible)
	c.out.Repeat('\b', l.prior.Visible)

	c.applyColor(l.base)
	c.writeFrame(f)
	c.out.Repeat('\b', f.Visible-f.Caret)
	c.tracker.Set(l.origin.X+f.Caret, l.origin.Y)

	l.prior = f
}

// Close draws text without an edit cursor, ends the row and restores the color the line opened with
func (l *Line) Close(text []byte) error {
	c := l.c
	c.mu.Lock()
	defer c.mu.Unlock()
	l.redrawLocked(text, markup.FlushOnly)
	c.applyColor(l.base)
	c.out.WriteString("\r\n")
	c.tracker.Set(0, l.origin.Y+1)
	return c.flush()
}
