package terminal

import (
	"bufio"
	"io"
)

// Writer buffers screen output and encodes colors for the host profile
type Writer struct {
	bw        *bufio.Writer
	profile   Profile
	colorMode ColorMode
}

// NewWriter wraps w; conio hosts always use the 16-color encoding
func NewWriter(w io.Writer, profile Profile, mode ColorMode) *Writer {
	if profile.Host == HostConio {
		mode = ColorMode16
	}
	return &Writer{
		bw:        bufio.NewWriterSize(w, 4096),
		profile:   profile,
		colorMode: mode,
	}
}

// ColorMode returns the effective color encoding
func (w *Writer) ColorMode() ColorMode {
	return w.colorMode
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.bw.Write(p)
}

func (w *Writer) WriteByte(c byte) error {
	return w.bw.WriteByte(c)
}

func (w *Writer) WriteString(s string) (int, error) {
	return w.bw.WriteString(s)
}

// Repeat writes c n times
func (w *Writer) Repeat(c byte, n int) {
	for i := 0; i < n; i++ {
		w.bw.WriteByte(c)
	}
}

// CursorPos moves the terminal cursor (0-indexed)
func (w *Writer) CursorPos(x, y int) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	writeCursorPos(w.bw, x, y)
}

// Foreground emits the SGR sequence selecting c
func (w *Writer) Foreground(c Color) {
	if c.IsReset() {
		w.bw.Write(csiSGR0)
		return
	}
	switch w.colorMode {
	case ColorMode16:
		if c.IsCode() {
			writeFg16(w.bw, paletteIndex(c.Code()))
		} else {
			writeFg16(w.bw, Nearest16(c.RGB()))
		}
	case ColorMode256:
		writeFg256(w.bw, RGBTo256(c.RGB()))
	default:
		writeFgRGB(w.bw, c.RGB())
	}
}

// ClearScreen erases the display and homes the cursor
func (w *Writer) ClearScreen() {
	w.bw.Write(csiClear)
}

// Flush writes buffered output to the backend
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
