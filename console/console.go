// Package console is the owner of what the terminal currently looks like:
// the cursor estimate and the active color. All output goes through one
// Console, which serializes writers and runs interactive prompts.
package console

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tconsole/cursor"
	"github.com/lixenwraith/tconsole/input"
	"github.com/lixenwraith/tconsole/markup"
	"github.com/lixenwraith/tconsole/terminal"
)

// Console renders text and runs line-editing prompts over a backend
type Console struct {
	backend terminal.Backend
	profile terminal.Profile
	opts    Options
	log     zerolog.Logger

	// mu guards screen state and output; held only while writing
	mu      sync.Mutex
	out     *terminal.Writer
	tracker *cursor.Tracker
	color   terminal.Color

	// readMu serializes prompts; never held by printers
	readMu  sync.Mutex
	decoder *input.Decoder
}

// New creates a console over backend
func New(backend terminal.Backend, opts Options) *Console {
	opts = opts.withDefaults()
	profile := terminal.ProfileFor(opts.Host)
	return &Console{
		backend: backend,
		profile: profile,
		opts:    opts,
		log:     opts.Logger,
		out:     terminal.NewWriter(backend, profile, opts.ColorMode),
		tracker: cursor.NewTracker(profile.GlyphModulus),
		color:   terminal.ColorReset,
		decoder: input.New(profile, backend, input.Options{
			EscapeTimeout: opts.EscapeTimeout,
			Keys:          opts.Keys,
			Logger:        opts.Logger,
		}),
	}
}

// Profile returns the host profile in use
func (c *Console) Profile() terminal.Profile {
	return c.profile
}

// flush sends buffered output; caller holds mu
func (c *Console) flush() error {
	if err := c.out.Flush(); err != nil {
		c.log.Warn().Err(err).Msg("write failed")
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// --- Color state ---

// applyColor emits and records c; caller holds mu
func (c *Console) applyColor(col terminal.Color) {
	c.out.Foreground(col)
	c.color = col
}

// Color returns the active foreground
func (c *Console) Color() terminal.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.color
}

// SetColor accepts a code, hex value or color name; on error the active color is unchanged
func (c *Console) SetColor(spec string) error {
	col, err := terminal.ParseColor(spec)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyColor(col)
	return c.flush()
}

// SetColorCode selects a palette code ('0'-'9', 'a'-'f', 'r'), false if the code is unknown
func (c *Console) SetColorCode(code byte) bool {
	col, ok := terminal.ColorFromCode(code)
	if !ok {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyColor(col)
	c.flush()
	return true
}

// SetRGB selects a 24-bit color, false if a component is outside 0-255
func (c *Console) SetRGB(r, g, b int) bool {
	col, ok := terminal.ColorFromRGB(r, g, b)
	if !ok {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyColor(col)
	c.flush()
	return true
}

// --- Cursor state ---

// Position returns the cursor estimate
func (c *Console) Position() cursor.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Position()
}

// SetPosition moves the terminal cursor and the estimate
func (c *Console) SetPosition(x, y int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moveTo(cursor.Point{X: x, Y: y})
	return c.flush()
}

// moveTo positions cursor and estimate; caller holds mu
func (c *Console) moveTo(p cursor.Point) {
	c.out.CursorPos(p.X, p.Y)
	c.tracker.Set(p.X, p.Y)
}

// Reconcile corrects the estimate from the terminal; false when unsupported,
// unanswered, or a prompt is reading input
func (c *Console) Reconcile() bool {
	if !c.readMu.TryLock() {
		return false
	}
	defer c.readMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconcileLocked()
}

// reconcileLocked queries the terminal; caller holds readMu and mu
func (c *Console) reconcileLocked() bool {
	if !c.profile.CursorQuery {
		return false
	}
	q, ok := c.backend.(terminal.CursorQuerier)
	if !ok {
		return false
	}
	if err := c.flush(); err != nil {
		return false
	}
	drift, ok := c.tracker.Reconcile(q, c.opts.QueryTimeout)
	if !ok {
		c.log.Debug().Msg("cursor query unanswered")
		return false
	}
	if drift != (cursor.Point{}) {
		c.log.Debug().Int("dx", drift.X).Int("dy", drift.Y).Msg("cursor estimate corrected")
	}
	return true
}

// --- Output ---

// write emits raw text and advances the estimate; caller holds mu
func (c *Console) write(s string) {
	c.out.WriteString(s)
	c.tracker.AdvanceString(s)
}

// writeFrame emits rendered segments; caller holds mu
func (c *Console) writeFrame(f markup.Frame) {
	for _, seg := range f.Segments {
		if seg.SetColor {
			c.applyColor(seg.Color)
			continue
		}
		c.out.Write(seg.Text)
		c.tracker.AdvanceBytes(seg.Text)
	}
}

// afterPrint reconciles when the policy asks for it and no prompt is reading
func (c *Console) afterPrint() {
	if c.opts.Reconcile == ReconcilePrint {
		c.Reconcile()
	}
}

// Print writes text as-is; directives are not interpreted
func (c *Console) Print(text string) error {
	c.mu.Lock()
	c.write(text)
	err := c.flush()
	c.mu.Unlock()
	c.afterPrint()
	return err
}

// PrintColor writes text in color; an invalid color prints in the default color.
// With reset the default color is restored afterwards.
func (c *Console) PrintColor(text, color string, reset bool) error {
	col, err := terminal.ParseColor(color)
	c.mu.Lock()
	if err != nil {
		c.applyColor(terminal.ColorReset)
	} else {
		c.applyColor(col)
	}
	c.write(text)
	if reset && err == nil {
		c.applyColor(terminal.ColorReset)
	}
	ferr := c.flush()
	c.mu.Unlock()
	c.afterPrint()
	return ferr
}

// ShowText writes markup text, "&code" directives change the active color
func (c *Console) ShowText(text string) error {
	c.mu.Lock()
	c.writeFrame(markup.Render([]byte(text), markup.FlushOnly, c.profile, true))
	err := c.flush()
	c.mu.Unlock()
	c.afterPrint()
	return err
}

// ShowChar writes one byte after switching to a palette code; an unknown code keeps the active color
func (c *Console) ShowChar(ch, code byte) error {
	c.mu.Lock()
	if col, ok := terminal.ColorFromCode(code); ok {
		c.applyColor(col)
	}
	c.out.WriteByte(ch)
	c.tracker.Advance(ch)
	err := c.flush()
	c.mu.Unlock()
	c.afterPrint()
	return err
}

// Clear erases the screen, homes the cursor and resets the color
func (c *Console) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
	return c.flush()
}

func (c *Console) clearLocked() {
	c.applyColor(terminal.ColorReset)
	c.out.ClearScreen()
	c.tracker.Set(0, 0)
}

// ClearArea writes length copies of fill starting at pos; with keepCursor the cursor returns afterwards
func (c *Console) ClearArea(length int, pos cursor.Point, fill byte, keepCursor bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	saved := c.tracker.Position()
	c.moveTo(pos)
	for i := 0; i < length; i++ {
		c.out.WriteByte(fill)
		c.tracker.Advance(fill)
	}
	if keepCursor {
		c.moveTo(saved)
	}
	return c.flush()
}

// Close restores the default color
func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyColor(terminal.ColorReset)
	return c.flush()
}
