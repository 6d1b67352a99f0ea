//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ttyBackend drives the controlling terminal through stdin/stdout
type ttyBackend struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int

	mu      sync.Mutex
	depth   int
	saved   *term.State
	pending []byte // bytes read during a cursor query that were not part of the report
}

func newTTY() (*ttyBackend, error) {
	inFd := int(os.Stdin.Fd())
	if !term.IsTerminal(inFd) {
		return nil, ErrNotTerminal
	}
	return &ttyBackend{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  inFd,
		outFd: int(os.Stdout.Fd()),
	}, nil
}

// Acquire clears ICANON and ECHO only; output processing and signals stay untouched.
// Binaries pair it with RestoreOnSignal so Ctrl+C leaves a usable terminal.
func (b *ttyBackend) Acquire() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.depth++
	if b.depth > 1 {
		return nil
	}

	saved, err := term.GetState(b.inFd)
	if err != nil {
		b.depth--
		return fmt.Errorf("get terminal state: %w", err)
	}
	t, err := unix.IoctlGetTermios(b.inFd, ioctlGetTermios)
	if err != nil {
		b.depth--
		return fmt.Errorf("get termios: %w", err)
	}
	t.Lflag &^= unix.ICANON | unix.ECHO
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(b.inFd, ioctlSetTermios, t); err != nil {
		b.depth--
		return fmt.Errorf("set termios: %w", err)
	}
	b.saved = saved
	return nil
}

func (b *ttyBackend) Release() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.depth == 0 {
		return nil
	}
	b.depth--
	if b.depth > 0 || b.saved == nil {
		return nil
	}
	saved := b.saved
	b.saved = nil
	if err := term.Restore(b.inFd, saved); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

func (b *ttyBackend) popPending() (byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pending) == 0 {
		return 0, false
	}
	c := b.pending[0]
	b.pending = b.pending[1:]
	return c, true
}

func (b *ttyBackend) ReadByte() (byte, error) {
	if c, ok := b.popPending(); ok {
		return c, nil
	}
	var buf [1]byte
	for {
		n, err := unix.Read(b.inFd, buf[:])
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return 0, err
		}
		if n == 0 {
			return 0, io.EOF
		}
		return buf[0], nil
	}
}

func (b *ttyBackend) ReadByteTimeout(d time.Duration) (byte, bool, error) {
	if c, ok := b.popPending(); ok {
		return c, true, nil
	}
	deadline := time.Now().Add(d)
	for {
		remaining := time.Until(deadline)
		if remaining < 0 {
			return 0, false, nil
		}
		fds := []unix.PollFd{
			{Fd: int32(b.inFd), Events: unix.POLLIN},
		}
		n, err := unix.Poll(fds, int(remaining/time.Millisecond))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, false, err
		}
		if n == 0 {
			return 0, false, nil
		}
		c, err := b.ReadByte()
		if err != nil {
			return 0, false, err
		}
		return c, true, nil
	}
}

func (b *ttyBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

func (b *ttyBackend) Size() (int, int) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}

// QueryCursor sends DSR and parses the reply; unrelated bytes are kept for later reads
func (b *ttyBackend) QueryCursor(timeout time.Duration) (int, int, error) {
	if err := b.Acquire(); err != nil {
		return 0, 0, err
	}
	defer b.Release()
	return b.queryCursor(timeout)
}

// queryCursor runs the DSR exchange on whatever inFd and out hold, raw mode is the caller's
func (b *ttyBackend) queryCursor(timeout time.Duration) (int, int, error) {
	if _, err := b.out.Write(csiDSR); err != nil {
		return 0, 0, err
	}

	var stray, report []byte
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		c, ok, err := b.readRawTimeout(remaining)
		if err != nil {
			b.keep(stray, report)
			return 0, 0, err
		}
		if !ok {
			break
		}
		if c == 0x1b && len(report) > 0 {
			// a key sequence that was not a report, the real one starts here
			stray = append(stray, report...)
			report = report[:0]
		}
		if len(report) == 0 && c != 0x1b {
			stray = append(stray, c)
			continue
		}
		report = append(report, c)
		if c == 'R' {
			if x, y, ok := parseCursorReport(report); ok {
				b.keep(stray, nil)
				return x, y, nil
			}
			stray = append(stray, report...)
			report = report[:0]
		}
	}
	b.keep(stray, report)
	return 0, 0, ErrNoCursorReport
}

// readRawTimeout bypasses the pending queue so queued bytes are not mistaken for a report
func (b *ttyBackend) readRawTimeout(d time.Duration) (byte, bool, error) {
	fds := []unix.PollFd{
		{Fd: int32(b.inFd), Events: unix.POLLIN},
	}
	for {
		n, err := unix.Poll(fds, int(d/time.Millisecond))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, false, err
		}
		if n == 0 {
			return 0, false, nil
		}
		var buf [1]byte
		rn, err := unix.Read(b.inFd, buf[:])
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return 0, false, err
		}
		if rn == 0 {
			return 0, false, io.EOF
		}
		return buf[0], true, nil
	}
}

func (b *ttyBackend) keep(parts ...[]byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range parts {
		b.pending = append(b.pending, p...)
	}
}

// resetTerminalMode attempts to restore terminal to cooked mode
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	// Try to restore via /dev/tty (works even if stdin redirected)
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer tty.Close()
		fd := int(tty.Fd())
		// Get current termios, enable ECHO and ICANON
		if termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios); err == nil {
			termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
			termios.Iflag |= unix.ICRNL
			unix.IoctlSetTermios(fd, ioctlSetTermios, termios)
		}
	}
}
