package console

import (
	"math"
	"strconv"

	"github.com/lixenwraith/tconsole/buffer"
	"github.com/lixenwraith/tconsole/input"
	"github.com/lixenwraith/tconsole/markup"
	"github.com/lixenwraith/tconsole/terminal"
)

// begin prepares a prompt; caller holds readMu. The returned func ends the session.
func (c *Console) begin(kind string) (func(), error) {
	if c.profile.RawScope == terminal.ScopeSession {
		if err := c.backend.Acquire(); err != nil {
			c.log.Warn().Err(err).Str("prompt", kind).Msg("raw mode unavailable")
			return nil, err
		}
	}

	c.mu.Lock()
	if c.opts.ClearOnStart {
		c.clearLocked()
	}
	if c.opts.Reconcile != ReconcileNever {
		c.reconcileLocked()
	}
	err := c.flush()
	pos := c.tracker.Position()
	c.mu.Unlock()

	c.log.Debug().Str("prompt", kind).Int("x", pos.X).Int("y", pos.Y).Msg("prompt started")
	end := func() {
		if c.profile.RawScope == terminal.ScopeSession {
			c.backend.Release()
		}
		c.log.Debug().Str("prompt", kind).Msg("prompt ended")
	}
	if err != nil {
		end()
		return nil, err
	}
	return end, nil
}

// next decodes one key press, holding raw mode around the read when the host scopes it per read
func (c *Console) next() (input.Event, error) {
	if c.profile.RawScope == terminal.ScopePerRead {
		if err := c.backend.Acquire(); err != nil {
			return input.Event{}, err
		}
		defer c.backend.Release()
	}
	return c.decoder.Next()
}

// editConfig shapes the shared line editor
type editConfig struct {
	kind       string
	min, max   int // max <= 0 is unlimited
	allowColor bool
	accept     func(ev input.Event) bool // filter for printable runs; nil accepts all
	tabs       bool
	initial    string
}

// ReadText edits a line with "&code" color preview and multi-byte glyphs.
// Enter finishes once the text has at least minLen entries; maxLen <= 0 is unlimited.
// On a read error the text collected so far is returned with the error.
func (c *Console) ReadText(minLen, maxLen int, allowColor bool) (string, error) {
	return c.edit(editConfig{
		kind:       "text",
		min:        minLen,
		max:        maxLen,
		allowColor: allowColor,
		tabs:       true,
	})
}

// StringOptions configures ReadString
type StringOptions struct {
	Whitelist string // accepted characters, empty accepts all printable ASCII
	Default   string // pre-filled, editable value
	Min       int
	Max       int // <= 0 is unlimited
}

// ReadString edits a plain ASCII line without color preview
func (c *Console) ReadString(opts StringOptions) (string, error) {
	initial := opts.Default
	if opts.Max > 0 && len(initial) > opts.Max {
		initial = initial[:opts.Max]
	}
	return c.edit(editConfig{
		kind:    "string",
		min:     opts.Min,
		max:     opts.Max,
		initial: initial,
		accept: func(ev input.Event) bool {
			if len(ev.Bytes) != 1 || ev.Bytes[0] < 0x20 || ev.Bytes[0] > 0x7e {
				return false
			}
			return opts.Whitelist == "" || containsByte(opts.Whitelist, ev.Bytes[0])
		},
	})
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}

func (c *Console) edit(cfg editConfig) (string, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	end, err := c.begin(cfg.kind)
	if err != nil {
		return "", err
	}
	defer end()

	line := c.OpenLine(cfg.allowColor)
	buf := buffer.NewString(cfg.initial)
	idx := buf.End()
	if buf.Len() > 0 {
		if _, err := line.Redraw(buf.Bytes(), markup.EditAt(idx)); err != nil {
			return buf.String(), err
		}
	}

	fits := func(n int) bool {
		return cfg.max <= 0 || buf.Len()+n <= cfg.max
	}

	for {
		ev, err := c.next()
		if err != nil {
			line.Close(buf.Bytes())
			return buf.String(), err
		}

		prev, prevLen := idx, buf.Len()
		switch ev.Kind {
		case input.KindEnter:
			if buf.Len() >= cfg.min {
				return buf.String(), line.Close(buf.Bytes())
			}
		case input.KindBackspace:
			idx = buf.DeleteBefore(idx)
		case input.KindTab:
			if cfg.tabs && fits(c.opts.TabWidth) {
				idx = buf.InsertTab(idx, c.opts.TabWidth)
			}
		case input.KindLeft:
			idx = buf.Left(idx)
		case input.KindRight:
			idx = buf.Right(idx)
		case input.KindUp, input.KindHome:
			idx = buf.Home()
		case input.KindDown, input.KindEnd:
			idx = buf.End()
		case input.KindPrintable:
			if (cfg.accept == nil || cfg.accept(ev)) && fits(len(ev.Bytes)) {
				idx = buf.InsertAt(idx, ev.Bytes)
			}
		}

		if idx == prev && buf.Len() == prevLen {
			continue
		}
		if _, err := line.Redraw(buf.Bytes(), markup.EditAt(idx)); err != nil {
			return buf.String(), err
		}
	}
}

// --- Numeric prompts ---

// numberLine echoes a numeric prompt directly; it never contains directives
type numberLine struct {
	c     *Console
	shown []byte
}

func (n *numberLine) push(s string) error {
	n.shown = append(n.shown, s...)
	return n.emit(s)
}

// pop erases the last k columns
func (n *numberLine) pop(k int) error {
	k = min(k, len(n.shown))
	n.shown = n.shown[:len(n.shown)-k]
	buf := make([]byte, 0, 3*k)
	for i := 0; i < k; i++ {
		buf = append(buf, '\b')
	}
	for i := 0; i < k; i++ {
		buf = append(buf, ' ')
	}
	for i := 0; i < k; i++ {
		buf = append(buf, '\b')
	}
	return n.emit(string(buf))
}

func (n *numberLine) emit(s string) error {
	c := n.c
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(s)
	return c.flush()
}

func (n *numberLine) finish() error {
	c := n.c
	c.mu.Lock()
	defer c.mu.Unlock()
	y := c.tracker.Position().Y
	c.out.WriteString("\r\n")
	c.tracker.Set(0, y+1)
	return c.flush()
}

// ReadInt reads an integer with |value| <= limit (limit <= 0 means math.MaxInt).
// A digit that would exceed limit replaces the input with limit; a leading zero is replaced.
func (c *Console) ReadInt(limit int, allowNegative bool) (int, error) {
	if limit <= 0 {
		limit = math.MaxInt
	}
	limitText := strconv.Itoa(limit)

	c.readMu.Lock()
	defer c.readMu.Unlock()

	end, err := c.begin("int")
	if err != nil {
		return 0, err
	}
	defer end()

	n := &numberLine{c: c}
	result, length, negative := 0, 0, false
	value := func() int {
		if negative {
			return -result
		}
		return result
	}

	for {
		ev, err := c.next()
		if err != nil {
			n.finish()
			return value(), err
		}

		switch {
		case ev.Kind == input.KindEnter:
			if length > 0 {
				return value(), n.finish()
			}
		case ev.Kind == input.KindBackspace:
			if length > 0 {
				length--
				result /= 10
				err = n.pop(1)
			} else if negative {
				negative = false
				err = n.pop(1)
			}
		case isByte(ev, '-'):
			if allowNegative && !negative && length == 0 {
				negative = true
				err = n.push("-")
			}
		case isDigit(ev):
			d := int(ev.Bytes[0] - '0')
			switch {
			case result > limit/10 || (result == limit/10 && d > limit%10):
				if err = n.pop(length); err == nil {
					err = n.push(limitText)
				}
				result, length = limit, len(limitText)
			case length == 1 && result == 0:
				if err = n.pop(1); err == nil {
					err = n.push(string(ev.Bytes[0]))
				}
				result = d
			default:
				err = n.push(string(ev.Bytes[0]))
				result = result*10 + d
				length++
			}
		}
		if err != nil {
			return value(), err
		}
	}
}

// ReadFloat reads a decimal number. '.' first becomes "0.", 'n' enters NaN and 'i'
// enters Infinity when acceptNaN is set. maxLen limits digits, <= 0 is unlimited.
func (c *Console) ReadFloat(allowNegative, acceptNaN bool, maxLen int) (float64, error) {
	if maxLen <= 0 {
		maxLen = math.MaxInt
	}

	c.readMu.Lock()
	defer c.readMu.Unlock()

	end, err := c.begin("float")
	if err != nil {
		return 0, err
	}
	defer end()

	n := &numberLine{c: c}
	var tokens []byte // '-', '.', digits, 'n' (NaN), 'i' (Infinity)
	length := 0
	negative, hasDot, special := false, false, false

	for {
		ev, err := c.next()
		if err != nil {
			n.finish()
			return parseFloatTokens(tokens), err
		}

		switch {
		case ev.Kind == input.KindEnter:
			if length > 0 || special {
				return parseFloatTokens(tokens), n.finish()
			}
		case ev.Kind == input.KindBackspace:
			if len(tokens) == 0 {
				break
			}
			last := tokens[len(tokens)-1]
			switch {
			case last == '-':
				negative = false
				err = n.pop(1)
			case last == '.':
				hasDot = false
				err = n.pop(1)
			case last == 'n':
				special = false
				err = n.pop(3)
			case last == 'i':
				special = false
				err = n.pop(8)
			default:
				length--
				err = n.pop(1)
			}
			tokens = tokens[:len(tokens)-1]
		case isByte(ev, '-'):
			if allowNegative && !negative && !special && length == 0 {
				negative = true
				tokens = append(tokens, '-')
				err = n.push("-")
			}
		case isByte(ev, '.'):
			if !hasDot && !special && length < maxLen {
				if length == 0 {
					tokens = append(tokens, '0')
					length++
					err = n.push("0")
				}
				if err == nil {
					tokens = append(tokens, '.')
					hasDot = true
					err = n.push(".")
				}
			}
		case isByte(ev, 'n'):
			if acceptNaN && !special && length == 0 && !negative && !hasDot {
				tokens = append(tokens, 'n')
				special = true
				err = n.push("NaN")
			}
		case isByte(ev, 'i'):
			if acceptNaN && !special && length == 0 && !hasDot {
				tokens = append(tokens, 'i')
				special = true
				err = n.push("Infinity")
			}
		case isDigit(ev):
			if special {
				break
			}
			switch {
			case length == 1 && !hasDot && tokens[len(tokens)-1] == '0':
				tokens[len(tokens)-1] = ev.Bytes[0]
				if err = n.pop(1); err == nil {
					err = n.push(string(ev.Bytes[0]))
				}
			case length < maxLen:
				tokens = append(tokens, ev.Bytes[0])
				length++
				err = n.push(string(ev.Bytes[0]))
			}
		}
		if err != nil {
			return parseFloatTokens(tokens), err
		}
	}
}

// parseFloatTokens converts the edited tokens; an empty input is 0
func parseFloatTokens(tokens []byte) float64 {
	negative := len(tokens) > 0 && tokens[0] == '-'
	body := tokens
	if negative {
		body = tokens[1:]
	}
	var v float64
	switch {
	case len(body) == 0:
		v = 0
	case body[0] == 'n':
		return math.NaN()
	case body[0] == 'i':
		v = math.Inf(1)
	default:
		parsed, err := strconv.ParseFloat(string(body), 64)
		if err != nil {
			// Only digits and one dot are ever accepted; overlong input saturates
			parsed = math.Inf(1)
		}
		v = parsed
	}
	if negative {
		return -v
	}
	return v
}

func isByte(ev input.Event, b byte) bool {
	return ev.Kind == input.KindPrintable && len(ev.Bytes) == 1 && ev.Bytes[0] == b
}

func isDigit(ev input.Event) bool {
	return ev.Kind == input.KindPrintable && len(ev.Bytes) == 1 && ev.Bytes[0] >= '0' && ev.Bytes[0] <= '9'
}
