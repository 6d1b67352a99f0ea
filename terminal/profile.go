package terminal

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// Host selects the input encoding and output conventions of the attached console
type Host uint8

const (
	// HostVT is an xterm-style terminal: ESC [ arrow sequences, UTF-8 glyphs, SGR colors
	HostVT Host = iota
	// HostConio is a DOS/Windows-style console: 0xE0 scan-code prefix, DBCS glyphs, 16 colors
	HostConio
)

// ParseHost maps a config/flag value to a Host
func ParseHost(s string) (Host, error) {
	switch strings.ToLower(s) {
	case "", "vt", "xterm", "unix":
		return HostVT, nil
	case "conio", "dos", "windows":
		return HostConio, nil
	}
	return HostVT, fmt.Errorf("unknown host %q", s)
}

func (h Host) String() string {
	if h == HostConio {
		return "conio"
	}
	return "vt"
}

// RawScope is how long non-canonical mode is held
type RawScope uint8

const (
	ScopePerRead RawScope = iota // acquired around each decode cycle
	ScopeSession                 // held for the whole editing session
)

// Profile carries the per-host decisions consumed by decoder, tracker, renderer and layout
type Profile struct {
	Host        Host
	RawScope    RawScope
	CursorQuery bool // authoritative cursor query may be attempted
	// GlyphModulus: the tracker counts bytes of the current glyph and skips the advance
	// when the count is a multiple of it; 0 advances on every glyph byte
	GlyphModulus int
}

// ProfileFor returns the profile of a host
func ProfileFor(h Host) Profile {
	if h == HostConio {
		return Profile{Host: HostConio, RawScope: ScopeSession}
	}
	return Profile{Host: HostVT, RawScope: ScopePerRead, CursorQuery: true, GlyphModulus: 3}
}

// GlyphLen returns the byte length of a glyph starting with lead, 1 for single-byte input
func (p Profile) GlyphLen(lead byte) int {
	if p.Host == HostConio {
		if lead >= 0x81 && lead <= 0xFE {
			return 2
		}
		return 1
	}
	switch {
	case lead >= 0xC2 && lead <= 0xDF:
		return 2
	case lead >= 0xE0 && lead <= 0xEF:
		return 3
	case lead >= 0xF0 && lead <= 0xF4:
		return 4
	}
	return 1
}

// Glyph measures the run at the start of text: bytes consumed and display columns
// ASCII and undecodable bytes count as one column each
func (p Profile) Glyph(text []byte) (n, cols int) {
	if len(text) == 0 {
		return 0, 0
	}
	lead := text[0]
	if lead < 0x80 {
		return 1, 1
	}
	if p.Host == HostConio {
		if lead < 0x81 || lead > 0xFE || len(text) < 2 {
			return 1, 1
		}
		return 2, conioWidth(text[:2])
	}
	r, size := utf8.DecodeRune(text)
	if r == utf8.RuneError && size <= 1 {
		return 1, 1
	}
	return size, runewidth.RuneWidth(r)
}

// conioWidth decodes one DBCS pair and measures it; undecodable pairs fill two cells
func conioWidth(pair []byte) int {
	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(pair)
	if err != nil {
		return 2
	}
	r, _ := utf8.DecodeRune(decoded)
	if r == utf8.RuneError {
		return 2
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 2
}

// Width returns the display columns of text, escape sequences are not recognized
func (p Profile) Width(text []byte) int {
	cols := 0
	for i := 0; i < len(text); {
		n, c := p.Glyph(text[i:])
		cols += c
		i += n
	}
	return cols
}
