// Package markup turns text with inline "&code" color directives into
// screen segments and measures the columns they occupy.
package markup

import "github.com/lixenwraith/tconsole/terminal"

// Caret says where the edit cursor sits, or that there is none
type Caret struct {
	index   int
	editing bool
}

// FlushOnly renders without an edit cursor: every resolvable directive is consumed
var FlushOnly = Caret{}

// EditAt places the edit cursor before entry i
func EditAt(i int) Caret {
	return Caret{index: i, editing: true}
}

// Editing reports whether an edit cursor is present
func (c Caret) Editing() bool {
	return c.editing
}

// Index returns the edit cursor entry index
func (c Caret) Index() int {
	return c.index
}

// near reports whether the cursor is within one entry of the directive code at i
func (c Caret) near(i int) bool {
	return c.editing && c.index >= i-1 && c.index <= i+1
}

// past reports whether the cursor lies at or after entry end
func (c Caret) past(end int) bool {
	return !c.editing || c.index >= end
}

// Segment is either literal text or a color change
type Segment struct {
	Text     []byte
	Color    terminal.Color
	SetColor bool
}

// Frame is one rendering of a text
type Frame struct {
	Segments []Segment
	Visible  int // columns occupied
	Caret    int // column of the edit cursor; Visible when FlushOnly
}

// Directive resolves the byte after '&'; glyph bytes never resolve
func Directive(code byte) (terminal.Color, bool) {
	if code >= 0x80 {
		return terminal.Color{}, false
	}
	return terminal.ColorFromCode(code)
}

// Render scans text once; a directive is shown literally when it does not resolve
// or the cursor is adjacent to its code byte
func Render(text []byte, caret Caret, profile terminal.Profile, allowColor bool) Frame {
	var f Frame

	emit := func(b []byte, start, end, cols int) {
		n := len(f.Segments)
		if n > 0 && !f.Segments[n-1].SetColor {
			f.Segments[n-1].Text = append(f.Segments[n-1].Text, b...)
		} else {
			seg := Segment{Text: make([]byte, 0, len(b))}
			seg.Text = append(seg.Text, b...)
			f.Segments = append(f.Segments, seg)
		}
		f.Visible += cols
		if caret.past(end) {
			f.Caret += cols
		}
	}

	for i := 0; i < len(text); {
		c := text[i]
		if allowColor && c == '&' {
			if i+1 >= len(text) {
				// Trailing '&'
				emit(text[i:i+1], i, i+1, 1)
				i++
				continue
			}
			code := text[i+1]
			color, ok := Directive(code)
			switch {
			case ok && !caret.near(i+1):
				f.Segments = append(f.Segments, Segment{Color: color, SetColor: true})
				i += 2
			case code < 0x80:
				emit(text[i:i+1], i, i+1, 1)
				emit(text[i+1:i+2], i+1, i+2, 1)
				i += 2
			default:
				// Glyph after '&': the '&' is literal, the glyph renders normally
				emit(text[i:i+1], i, i+1, 1)
				i++
			}
			continue
		}

		n, cols := profile.Glyph(text[i:])
		emit(text[i:i+n], i, i+n, cols)
		i += n
	}

	if !caret.editing {
		f.Caret = f.Visible
	}
	return f
}
