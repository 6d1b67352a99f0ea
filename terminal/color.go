package terminal

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned for color specifications that resolve to nothing
var ErrInvalidColor = errors.New("invalid color")

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
	ColorMode16                         // 16-color console palette
)

// ParseColorMode maps a config/flag value to a ColorMode, "auto" detects from environment
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DetectColorMode(), nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	case "256":
		return ColorMode256, nil
	case "16":
		return ColorMode16, nil
	}
	return ColorMode256, fmt.Errorf("unknown color mode %q", s)
}

func (m ColorMode) String() string {
	switch m {
	case ColorModeTrueColor:
		return "truecolor"
	case ColorMode16:
		return "16"
	}
	return "256"
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// --- Active color ---

// Color is a foreground setting: a one-character palette code or a 24-bit RGB value
type Color struct {
	code byte // '0'-'9', 'a'-'f', 'r'; 0 for RGB colors
	rgb  RGB
}

// ColorReset is the default foreground
var ColorReset = Color{code: 'r'}

// ColorFromCode resolves a palette code, not case-sensitive
func ColorFromCode(code byte) (Color, bool) {
	switch {
	case code >= '0' && code <= '9', code >= 'a' && code <= 'f':
		return Color{code: code}, true
	case code >= 'A' && code <= 'F':
		return Color{code: code - 'A' + 'a'}, true
	case code == 'r' || code == 'R':
		return ColorReset, true
	}
	return Color{}, false
}

// ColorFromRGB builds an RGB color, false if any component is outside 0-255
func ColorFromRGB(r, g, b int) (Color, bool) {
	if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
		return Color{}, false
	}
	return Color{rgb: RGB{uint8(r), uint8(g), uint8(b)}}, true
}

// IsCode reports whether the color is a palette code (including reset)
func (c Color) IsCode() bool {
	return c.code != 0
}

// IsReset reports whether the color is the default foreground
func (c Color) IsReset() bool {
	return c.code == 'r'
}

// Code returns the palette code, 0 for RGB colors
func (c Color) Code() byte {
	return c.code
}

// RGB returns the 24-bit value, palette codes resolve through the console palette
func (c Color) RGB() RGB {
	if c.code == 0 {
		return c.rgb
	}
	if c.code == 'r' {
		return consolePalette[7]
	}
	return consolePalette[paletteIndex(c.code)]
}

// String returns the code ("r", "a") or uppercase hex without '#' ("1A2B3C")
func (c Color) String() string {
	if c.code != 0 {
		return string(c.code)
	}
	return RGBToHex(c.rgb)
}

// ParseColor accepts a one-character code, "#rgb"/"#rrggbb" hex (leading '#' optional)
// or a color name ("red", "cornflowerblue"); not case-sensitive
func ParseColor(spec string) (Color, error) {
	s := strings.TrimSpace(spec)
	if len(s) == 1 {
		if c, ok := ColorFromCode(s[0]); ok {
			return c, nil
		}
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
	}
	if rgb, err := HexToRGB(s); err == nil {
		return Color{rgb: rgb}, nil
	}
	tc := tcell.GetColor(strings.ToLower(s))
	if tc == tcell.ColorDefault {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
	}
	r, g, b := tc.RGB()
	if c, ok := ColorFromRGB(int(r), int(g), int(b)); ok {
		return c, nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
}

// HexToRGB converts "#rrggbb" or "#rgb" (leading '#' optional, not case-sensitive)
func HexToRGB(hex string) (RGB, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 && len(s) != 3 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
		}
	}
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	c, err := colorful.Hex("#" + strings.ToLower(s))
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// RGBToHex returns uppercase hex without leading '#'
func RGBToHex(c RGB) string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// --- 256-color fallback ---

// Color cube values for 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to nearest cube index 0-5
var cubeIndex [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := abs(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			d := abs(i - int(cubeValues[j]))
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBTo256 finds the nearest 256-color palette index for an RGB value
func RGBTo256(c RGB) uint8 {
	r, g, b := c.R, c.G, c.B
	// Grayscale ramp: 232-255 maps to luminance 8, 18, 28, ..., 238
	gray := (int(r) + int(g) + int(b)) / 3
	maxDiff := max(abs(int(r)-gray), abs(int(g)-gray), abs(int(b)-gray))

	if maxDiff < 10 {
		if gray < 4 {
			return 16
		}
		if gray > 243 {
			return 231
		}
		grayIdx := 232 + (gray-8)/10
		if grayIdx > 255 {
			grayIdx = 255
		}
		if grayIdx < 232 {
			grayIdx = 232
		}

		// Compare grayscale match vs color cube match
		grayLevel := 8 + (grayIdx-232)*10
		grayDist := abs(int(r)-grayLevel) + abs(int(g)-grayLevel) + abs(int(b)-grayLevel)

		cubeDist := abs(int(r)-int(cubeValues[cubeIndex[r]])) +
			abs(int(g)-int(cubeValues[cubeIndex[g]])) +
			abs(int(b)-int(cubeValues[cubeIndex[b]]))

		if grayDist < cubeDist {
			return uint8(grayIdx)
		}
	}

	return 16 + 36*cubeIndex[r] + 6*cubeIndex[g] + cubeIndex[b]
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}
