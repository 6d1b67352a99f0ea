package input

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tconsole/terminal"
)

// DefaultEscapeTimeout is how long a lone ESC waits for the rest of a sequence
const DefaultEscapeTimeout = 50 * time.Millisecond

// ErrClosed is returned once the byte source reaches end of input
var ErrClosed = errors.New("input closed")

// ByteSource is the raw input consumed by a Decoder
type ByteSource interface {
	ReadByte() (byte, error)
	ReadByteTimeout(d time.Duration) (b byte, ok bool, err error)
}

// Options configures a Decoder
type Options struct {
	EscapeTimeout time.Duration
	Keys          *KeyTable // nil uses DefaultKeyTable
	Logger        zerolog.Logger
}

// Decoder groups raw bytes into key events using the host's encoding.
// Not safe for concurrent use.
type Decoder struct {
	src     ByteSource
	profile terminal.Profile
	timeout time.Duration
	keys    *KeyTable
	log     zerolog.Logger

	replay []byte // follow-up bytes of an unknown sequence, decoded on their own
	err    error  // deferred read error observed while resolving an escape
}

// New creates a decoder for profile's host
func New(profile terminal.Profile, src ByteSource, opts Options) *Decoder {
	timeout := opts.EscapeTimeout
	if timeout <= 0 {
		timeout = DefaultEscapeTimeout
	}
	keys := opts.Keys
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Decoder{
		src:     src,
		profile: profile,
		timeout: timeout,
		keys:    keys,
		log:     opts.Logger,
	}
}

// Next blocks for one event; every call consumes at least one byte.
// Late cursor position reports are discarded without producing an event.
func (d *Decoder) Next() (Event, error) {
	for {
		b, err := d.read()
		if err != nil {
			return Event{}, err
		}
		if d.profile.Host == terminal.HostConio {
			return d.nextConio(b)
		}
		ev, ok, err := d.nextVT(b)
		if err != nil || ok {
			return ev, err
		}
	}
}

// --- Host B: xterm-style ---

// nextVT reports false when the bytes were consumed without producing an event
func (d *Decoder) nextVT(b byte) (Event, bool, error) {
	switch {
	case b == 0x1b:
		ev, ok := d.escapeVT()
		return ev, ok, nil
	case b >= 0x80:
		ev, err := d.glyph(b)
		return ev, true, err
	}
	return d.single(b), true, nil
}

// escapeVT resolves ESC by timeout: no follow-up means a standalone Escape
func (d *Decoder) escapeVT() (Event, bool) {
	c, ok := d.follow()
	if !ok {
		return Control(0x1b), true
	}
	if c != '[' {
		d.unknown(0x1b, c)
		return Control(0x1b), true
	}
	final, ok := d.follow()
	if !ok {
		d.unknown(0x1b, '[')
		return Control(0x1b), true
	}
	if k, ok := d.keys.CSI[final]; ok {
		return Key(k), true
	}
	if final >= '0' && final <= '9' {
		if d.cursorReport(final) {
			return Event{}, false
		}
		return Control(0x1b), true
	}
	d.unknown(0x1b, '[', final)
	return Control(0x1b), true
}

// maxReportLen bounds the parameter bytes of ESC [ row ; col R
const maxReportLen = 16

// cursorReport consumes the rest of ESC [ row ; col R after its first digit.
// A reply that missed its query's deadline arrives here; it is dropped.
// Anything else is queued for replay behind the '[' and reports false.
func (d *Decoder) cursorReport(first byte) bool {
	seq := []byte{'[', first}
	semis := 0
	for len(seq) < maxReportLen {
		c, ok := d.follow()
		if !ok {
			break
		}
		seq = append(seq, c)
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' && semis == 0 && seq[len(seq)-2] != ';':
			semis++
			continue
		case c == 'R' && semis == 1 && seq[len(seq)-2] != ';':
			d.log.Debug().Bytes("report", seq).Msg("late cursor report discarded")
			return true
		}
		break
	}
	d.unknown(0x1b, seq...)
	return false
}

// --- Host A: console scan codes ---

func (d *Decoder) nextConio(b byte) (Event, error) {
	switch {
	case b == 0xE0:
		return d.scanCode()
	case b >= 0x80:
		return d.glyph(b)
	}
	return d.single(b), nil
}

// scanCode reads the byte following the 0xE0 prefix; the console always sends it
func (d *Decoder) scanCode() (Event, error) {
	c, err := d.read()
	if err != nil {
		return Event{}, err
	}
	if k, ok := d.keys.Scan[c]; ok {
		return Key(k), nil
	}
	d.unknown(0xE0, c)
	return Control(0xE0), nil
}

// --- Shared ---

// glyph reads the remaining bytes of a multi-byte glyph
func (d *Decoder) glyph(lead byte) (Event, error) {
	n := d.profile.GlyphLen(lead)
	run := make([]byte, 1, n)
	run[0] = lead
	for len(run) < n {
		c, err := d.read()
		if err != nil {
			return Event{}, err
		}
		run = append(run, c)
	}
	return Event{Kind: KindPrintable, Bytes: run}, nil
}

// single maps a one-byte key press
func (d *Decoder) single(b byte) Event {
	if k, ok := d.keys.Single[b]; ok {
		return Key(k)
	}
	if b < 0x20 || b == 0x7f {
		return Control(b)
	}
	return Printable(b)
}

// unknown queues the follow-up bytes of an unrecognized sequence for replay
func (d *Decoder) unknown(prefix byte, follow ...byte) {
	if len(follow) == 0 {
		return
	}
	d.log.Debug().
		Hex("prefix", []byte{prefix}).
		Hex("follow", follow).
		Str("host", d.profile.Host.String()).
		Msg("unknown input sequence")
	d.replay = append(follow[:len(follow):len(follow)], d.replay...)
}

func (d *Decoder) read() (byte, error) {
	if len(d.replay) > 0 {
		c := d.replay[0]
		d.replay = d.replay[1:]
		return c, nil
	}
	if d.err != nil {
		err := d.err
		d.err = nil
		return 0, err
	}
	c, err := d.src.ReadByte()
	if err != nil {
		return 0, wrap(err)
	}
	return c, nil
}

// follow waits briefly for the next byte of a sequence; a read error is deferred to the next call
func (d *Decoder) follow() (byte, bool) {
	if len(d.replay) > 0 {
		c := d.replay[0]
		d.replay = d.replay[1:]
		return c, true
	}
	if d.err != nil {
		return 0, false
	}
	c, ok, err := d.src.ReadByteTimeout(d.timeout)
	if err != nil {
		d.err = wrap(err)
		return 0, false
	}
	return c, ok
}

func wrap(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}
	return fmt.Errorf("read input: %w", err)
}
