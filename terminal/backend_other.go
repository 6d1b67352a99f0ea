//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

import "time"

// ttyBackend is unavailable here; Open falls back to the stream backend
type ttyBackend struct{}

func newTTY() (*ttyBackend, error) {
	return nil, ErrNotTerminal
}

func (b *ttyBackend) Acquire() error                                    { return ErrNotTerminal }
func (b *ttyBackend) Release() error                                    { return nil }
func (b *ttyBackend) ReadByte() (byte, error)                           { return 0, ErrNotTerminal }
func (b *ttyBackend) ReadByteTimeout(time.Duration) (byte, bool, error) { return 0, false, ErrNotTerminal }
func (b *ttyBackend) Write(p []byte) (int, error)                       { return 0, ErrNotTerminal }
func (b *ttyBackend) Size() (int, int)                                  { return 80, 24 }

func resetTerminalMode() {}
