package terminal

import (
	"bytes"
	"testing"
)

func TestWriterForeground(t *testing.T) {
	red, _ := ColorFromRGB(255, 0, 0)
	code4, _ := ColorFromCode('4')

	tests := []struct {
		name     string
		host     Host
		mode     ColorMode
		color    Color
		expected string
	}{
		{"Reset", HostVT, ColorModeTrueColor, ColorReset, "\x1b[0m"},
		{"Code truecolor", HostVT, ColorModeTrueColor, code4, "\x1b[38;2;197;15;31m"},
		{"RGB truecolor", HostVT, ColorModeTrueColor, red, "\x1b[38;2;255;0;0m"},
		{"RGB 256", HostVT, ColorMode256, red, "\x1b[38;5;196m"},
		{"Code conio", HostConio, ColorModeTrueColor, code4, "\x1b[31m"},
		{"Reset conio", HostConio, ColorModeTrueColor, ColorReset, "\x1b[0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf, ProfileFor(tt.host), tt.mode)
			w.Foreground(tt.color)
			w.Flush()
			if buf.String() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, buf.String())
			}
		})
	}
}

func TestWriterConioForces16(t *testing.T) {
	w := NewWriter(&bytes.Buffer{}, ProfileFor(HostConio), ColorModeTrueColor)
	if w.ColorMode() != ColorMode16 {
		t.Errorf("Expected ColorMode16 on conio host, got %v", w.ColorMode())
	}
}

func TestWriterCursorPos(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, ProfileFor(HostVT), ColorModeTrueColor)
	w.CursorPos(0, 0)
	w.CursorPos(9, 1199)
	w.Flush()
	expected := "\x1b[1;1H\x1b[1200;10H"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestWriterRepeatAndClear(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, ProfileFor(HostVT), ColorModeTrueColor)
	w.Repeat('\b', 3)
	w.ClearScreen()
	w.Flush()
	expected := "\b\b\b\x1b[2J\x1b[1;1H"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}
