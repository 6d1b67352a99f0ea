package terminal

import (
	"io"
	"os"
)

// Open returns the controlling-terminal backend, or a stream backend over stdin/stdout
// when stdin is not a terminal
func Open() Backend {
	if tty, err := newTTY(); err == nil {
		return tty
	}
	return NewStream(os.Stdin, os.Stdout)
}

// IsTTY reports whether b drives a real terminal
func IsTTY(b Backend) bool {
	_, ok := b.(*ttyBackend)
	return ok
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery when the console cannot be closed normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiSGR0)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	// This is best-effort; ignore errors in crash context
	resetTerminalMode()
}
