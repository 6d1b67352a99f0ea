package terminal

import (
	"errors"
	"testing"
)

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected RGB
		wantErr  bool
	}{
		{name: "Six digits with hash", input: "#1A2B3C", expected: RGB{0x1A, 0x2B, 0x3C}},
		{name: "Six digits lowercase", input: "ff8000", expected: RGB{255, 128, 0}},
		{name: "Three digits", input: "#fa0", expected: RGB{0xFF, 0xAA, 0x00}},
		{name: "Three digits no hash", input: "123", expected: RGB{0x11, 0x22, 0x33}},
		{name: "Bad length", input: "#12345", wantErr: true},
		{name: "Bad digit", input: "#12345g", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HexToRGB(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("Expected ErrInvalidColor, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRGBToHexUppercase(t *testing.T) {
	if got := RGBToHex(RGB{0xab, 0x01, 0xff}); got != "AB01FF" {
		t.Errorf("Expected AB01FF, got %s", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "a", expected: "a"},
		{input: "A", expected: "a"},
		{input: "7", expected: "7"},
		{input: "r", expected: "r"},
		{input: "R", expected: "r"},
		{input: "#00ff00", expected: "00FF00"},
		{input: "red", expected: "FF0000"},
		{input: "g", wantErr: true},
		{input: "notacolor", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("Expected ErrInvalidColor for %q, got %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tt.input, err)
			}
			if c.String() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, c.String())
			}
		})
	}
}

func TestColorFromRGBBounds(t *testing.T) {
	if _, ok := ColorFromRGB(0, 255, 128); !ok {
		t.Error("Expected in-range components to be accepted")
	}
	if _, ok := ColorFromRGB(256, 0, 0); ok {
		t.Error("Expected 256 to be rejected")
	}
	if _, ok := ColorFromRGB(0, -1, 0); ok {
		t.Error("Expected negative component to be rejected")
	}
}

func TestCodeResolvesThroughPalette(t *testing.T) {
	c, _ := ColorFromCode('c')
	if got := c.RGB(); got != (RGB{231, 72, 86}) {
		t.Errorf("Expected light red palette entry, got %v", got)
	}
}

func TestSGR16Order(t *testing.T) {
	// Console order blue/red are swapped relative to ANSI order
	tests := []struct {
		idx      int
		expected int
	}{
		{0, 30}, {1, 34}, {2, 32}, {3, 36}, {4, 31}, {5, 35}, {6, 33}, {7, 37},
		{8, 90}, {9, 94}, {12, 91}, {15, 97},
		{-1, 39}, {16, 39},
	}
	for _, tt := range tests {
		if got := sgr16(tt.idx); got != tt.expected {
			t.Errorf("sgr16(%d): expected %d, got %d", tt.idx, tt.expected, got)
		}
	}
}

func TestNearest16ExactMatch(t *testing.T) {
	for i, c := range consolePalette {
		if got := Nearest16(c); got != i {
			t.Errorf("Expected palette entry %d to map to itself, got %d", i, got)
		}
	}
}

func TestRGBTo256(t *testing.T) {
	tests := []struct {
		name     string
		input    RGB
		expected uint8
	}{
		{"Black", RGB{0, 0, 0}, 16},
		{"White", RGB{255, 255, 255}, 231},
		{"Pure red", RGB{255, 0, 0}, 196},
		{"Pure blue", RGB{0, 0, 255}, 21},
		{"Mid gray", RGB{128, 128, 128}, 244},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBTo256(tt.input); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input    string
		expected ColorMode
	}{
		{"truecolor", ColorModeTrueColor},
		{"256", ColorMode256},
		{"16", ColorMode16},
	}
	for _, tt := range tests {
		got, err := ParseColorMode(tt.input)
		if err != nil {
			t.Fatalf("Unexpected error for %q: %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("Expected %v for %q, got %v", tt.expected, tt.input, got)
		}
	}
	if _, err := ParseColorMode("bogus"); err == nil {
		t.Error("Expected error for unknown mode")
	}
}
