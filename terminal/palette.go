package terminal

import "github.com/lucasb-eyer/go-colorful"

// consolePalette is the 16-entry console palette in console attribute order
// (0 black, 1 blue, 2 green, 3 aqua, 4 red, 5 purple, 6 yellow, 7 white, 8-15 bright)
var consolePalette = [16]RGB{
	{12, 12, 12},
	{0, 55, 218},
	{19, 161, 14},
	{58, 150, 221},
	{197, 15, 31},
	{136, 23, 152},
	{193, 156, 0},
	{204, 204, 204},
	{118, 118, 118},
	{54, 120, 255},
	{22, 198, 12},
	{97, 214, 214},
	{231, 72, 86},
	{180, 0, 158},
	{249, 241, 165},
	{242, 242, 242},
}

// ansiOrder maps console attribute order to ANSI SGR color order
var ansiOrder = [8]int{0, 4, 2, 6, 1, 5, 3, 7}

// paletteIndex maps a normalized code ('0'-'9', 'a'-'f') to 0-15
func paletteIndex(code byte) int {
	if code >= '0' && code <= '9' {
		return int(code - '0')
	}
	return int(code-'a') + 10
}

// sgr16 returns the SGR foreground parameter for a console palette index
func sgr16(idx int) int {
	if idx < 0 || idx > 15 {
		return 39
	}
	if idx < 8 {
		return 30 + ansiOrder[idx]
	}
	return 90 + ansiOrder[idx-8]
}

// Nearest16 returns the console palette index perceptually closest to c
func Nearest16(c RGB) int {
	target := toColorful(c)
	best := 0
	bestDist := target.DistanceLab(toColorful(consolePalette[0]))
	for i := 1; i < len(consolePalette); i++ {
		d := target.DistanceLab(toColorful(consolePalette[i]))
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
