package terminal

import (
	"errors"
	"time"
)

var (
	// ErrNotTerminal is returned when the input is not an interactive terminal
	ErrNotTerminal = errors.New("not a terminal")
	// ErrNoCursorReport is returned when a cursor query gets no usable reply in time
	ErrNoCursorReport = errors.New("no cursor position report")
)

// Backend abstracts the raw byte source and screen sink.
// Acquire/Release nest: only the outermost pair switches terminal mode.
type Backend interface {
	// Acquire enters non-canonical, no-echo input mode
	Acquire() error
	// Release restores the mode saved by the matching outermost Acquire
	Release() error

	// ReadByte blocks for the next input byte
	ReadByte() (byte, error)
	// ReadByteTimeout waits up to d; ok is false if nothing arrived
	ReadByteTimeout(d time.Duration) (b byte, ok bool, err error)

	// Write writes raw bytes to the screen
	Write(p []byte) (int, error)

	// Size returns terminal dimensions
	Size() (width, height int)
}

// CursorQuerier is implemented by backends that can ask the terminal for the cursor position
type CursorQuerier interface {
	// QueryCursor returns the 0-indexed cursor column and row
	QueryCursor(timeout time.Duration) (x, y int, err error)
}
