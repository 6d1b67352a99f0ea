package terminal

import (
	"os"
	"syscall"
)

// RestoreOnSignal blocks until sigCh delivers, runs restore, then calls exit with
// 128 plus the signal number. Run it in its own goroutine after signal.Notify.
// Raw mode keeps ISIG, so Ctrl+C arrives here rather than as an input byte.
func RestoreOnSignal(sigCh <-chan os.Signal, restore func(), exit func(code int)) {
	sig, ok := <-sigCh
	if !ok {
		return
	}
	restore()
	code := 1
	if s, isSys := sig.(syscall.Signal); isSys {
		code = 128 + int(s)
	}
	exit(code)
}
