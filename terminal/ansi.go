package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments
var (
	csi      = []byte("\x1b[")
	csiSGR0  = []byte("\x1b[0m")
	csiClear = []byte("\x1b[2J\x1b[1;1H")

	// Cursor control
	csiCursorShow = []byte("\x1b[?25h")
	csiCursorPos  = []byte("\x1b[") // followed by row;colH
	csiDSR        = []byte("\x1b[6n")

	// Color prefixes
	csiFg256 = []byte("\x1b[38;5;") // followed by N;m
	csiFgRGB = []byte("\x1b[38;2;") // followed by R;G;B;m
)

// writeInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	// Fallback for >999 (rare)
	var buf [20]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorPos writes cursor positioning sequence (0-indexed input)
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csiCursorPos)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeFgRGB writes a 24-bit foreground sequence
func writeFgRGB(w *bufio.Writer, c RGB) {
	w.Write(csiFgRGB)
	writeInt(w, int(c.R))
	w.WriteByte(';')
	writeInt(w, int(c.G))
	w.WriteByte(';')
	writeInt(w, int(c.B))
	w.WriteByte('m')
}

// writeFg256 writes a 256-color palette foreground sequence
func writeFg256(w *bufio.Writer, idx uint8) {
	w.Write(csiFg256)
	writeInt(w, int(idx))
	w.WriteByte('m')
}

// writeFg16 writes a 16-color foreground sequence for a console palette index (0-15)
func writeFg16(w *bufio.Writer, idx int) {
	w.Write(csi)
	writeInt(w, sgr16(idx))
	w.WriteByte('m')
}
