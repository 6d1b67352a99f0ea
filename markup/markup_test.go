package markup

import (
	"testing"

	"github.com/lixenwraith/tconsole/terminal"
)

var vt = terminal.ProfileFor(terminal.HostVT)

// visibleText concatenates literal segments
func visibleText(f Frame) string {
	var out []byte
	for _, s := range f.Segments {
		if !s.SetColor {
			out = append(out, s.Text...)
		}
	}
	return string(out)
}

func TestRenderConsumesDirective(t *testing.T) {
	f := Render([]byte("he&1llo"), EditAt(7), vt, true)

	if f.Visible != 5 {
		t.Errorf("Expected visible length 5, got %d", f.Visible)
	}
	if f.Caret != 5 {
		t.Errorf("Expected caret column 5, got %d", f.Caret)
	}
	if got := visibleText(f); got != "hello" {
		t.Errorf("Expected \"hello\", got %q", got)
	}
	// he | color 1 | llo
	if len(f.Segments) != 3 || !f.Segments[1].SetColor || f.Segments[1].Color.Code() != '1' {
		t.Errorf("Expected color change after \"he\", got %+v", f.Segments)
	}
}

func TestRenderAdjacentCaretShowsDirective(t *testing.T) {
	text := []byte("he&1llo")
	far := Render(text, EditAt(7), vt, true)

	// Code byte at index 3: caret 2, 3, 4 are adjacent
	for _, idx := range []int{2, 3, 4} {
		near := Render(text, EditAt(idx), vt, true)
		if near.Visible != far.Visible+2 {
			t.Errorf("Caret %d: expected visible %d, got %d", idx, far.Visible+2, near.Visible)
		}
		if got := visibleText(near); got != "he&1llo" {
			t.Errorf("Caret %d: expected literal directive, got %q", idx, got)
		}
		for _, seg := range near.Segments {
			if seg.SetColor {
				t.Errorf("Caret %d: expected colour not applied, got %+v", idx, seg)
			}
		}
	}

	for _, idx := range []int{0, 1, 5, 6, 7} {
		if got := Render(text, EditAt(idx), vt, true).Visible; got != far.Visible {
			t.Errorf("Caret %d: expected visible %d, got %d", idx, far.Visible, got)
		}
	}
}

func TestRenderCaretColumns(t *testing.T) {
	text := []byte("he&1llo")
	tests := []struct {
		index    int
		expected int
	}{
		{0, 0},
		{2, 2}, // before '&', literal
		{3, 3}, // between '&' and code
		{4, 4}, // after code, literal
		{5, 3}, // directive consumed
		{7, 5},
	}
	for _, tt := range tests {
		if got := Render(text, EditAt(tt.index), vt, true).Caret; got != tt.expected {
			t.Errorf("Caret %d: expected column %d, got %d", tt.index, tt.expected, got)
		}
	}
}

func TestRenderUnresolvedDirective(t *testing.T) {
	f := Render([]byte("a&zb"), FlushOnly, vt, true)
	if f.Visible != 4 || visibleText(f) != "a&zb" {
		t.Errorf("Expected literal \"a&zb\" width 4, got %q width %d", visibleText(f), f.Visible)
	}
}

func TestRenderTrailingAmpersand(t *testing.T) {
	f := Render([]byte("ab&"), EditAt(3), vt, true)
	if f.Visible != 3 || f.Caret != 3 {
		t.Errorf("Expected visible 3 caret 3, got visible %d caret %d", f.Visible, f.Caret)
	}
}

func TestRenderFlushOnlyConsumesAll(t *testing.T) {
	f := Render([]byte("&aX&bY"), FlushOnly, vt, true)
	if f.Visible != 2 || f.Caret != 2 {
		t.Errorf("Expected visible 2 caret 2, got visible %d caret %d", f.Visible, f.Caret)
	}
}

func TestRenderColorDisabled(t *testing.T) {
	f := Render([]byte("he&1llo"), EditAt(7), vt, false)
	if f.Visible != 7 || visibleText(f) != "he&1llo" {
		t.Errorf("Expected literal text width 7, got %q width %d", visibleText(f), f.Visible)
	}
	for _, s := range f.Segments {
		if s.SetColor {
			t.Error("Expected no color segments when color is disabled")
		}
	}
}

func TestRenderGlyphWidths(t *testing.T) {
	text := []byte("a中b")
	f := Render(text, EditAt(4), vt, true)
	if f.Visible != 4 {
		t.Errorf("Expected visible 4, got %d", f.Visible)
	}
	if f.Caret != 3 {
		t.Errorf("Expected caret column 3 after glyph, got %d", f.Caret)
	}

	conio := terminal.ProfileFor(terminal.HostConio)
	g := Render([]byte{'a', 0xD6, 0xD0}, FlushOnly, conio, true)
	if g.Visible != 3 {
		t.Errorf("Expected conio visible 3, got %d", g.Visible)
	}
}

func TestRenderAmpersandBeforeGlyph(t *testing.T) {
	f := Render([]byte("&中"), FlushOnly, vt, true)
	if f.Visible != 3 || visibleText(f) != "&中" {
		t.Errorf("Expected literal '&' then glyph width 3, got %q width %d", visibleText(f), f.Visible)
	}
}

func TestRenderDirectiveCountProperty(t *testing.T) {
	// N directives far from the caret drop 2 columns each
	text := []byte("&1a&2b&3c")
	f := Render(text, EditAt(len(text)), vt, true)
	if f.Visible != len(text)-2*3 {
		t.Errorf("Expected visible %d, got %d", len(text)-6, f.Visible)
	}
}
