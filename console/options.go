package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tconsole/buffer"
	"github.com/lixenwraith/tconsole/input"
	"github.com/lixenwraith/tconsole/terminal"
)

// DefaultQueryTimeout bounds the wait for a cursor position report
const DefaultQueryTimeout = 200 * time.Millisecond

// ReconcilePolicy selects when the cursor estimate is checked against the terminal
type ReconcilePolicy uint8

const (
	ReconcileNever   ReconcilePolicy = iota
	ReconcileSession                 // before every prompt
	ReconcilePrint                   // before every prompt and after every print
)

// ParseReconcile maps a config value to a policy
func ParseReconcile(s string) (ReconcilePolicy, error) {
	switch strings.ToLower(s) {
	case "never", "off":
		return ReconcileNever, nil
	case "", "session":
		return ReconcileSession, nil
	case "print", "always":
		return ReconcilePrint, nil
	}
	return ReconcileNever, fmt.Errorf("unknown reconcile policy %q", s)
}

func (p ReconcilePolicy) String() string {
	switch p {
	case ReconcileNever:
		return "never"
	case ReconcilePrint:
		return "print"
	}
	return "session"
}

// Options configures a Console
type Options struct {
	Host          terminal.Host
	ColorMode     terminal.ColorMode
	EscapeTimeout time.Duration
	QueryTimeout  time.Duration
	Reconcile     ReconcilePolicy
	TabWidth      int
	ClearOnStart  bool            // clear the screen before each prompt so the estimate starts from a known origin
	Keys          *input.KeyTable // nil uses input.DefaultKeyTable
	Logger        zerolog.Logger
}

// DefaultOptions returns options for an xterm-style terminal
func DefaultOptions() Options {
	return Options{
		Host:          terminal.HostVT,
		ColorMode:     terminal.ColorModeTrueColor,
		EscapeTimeout: input.DefaultEscapeTimeout,
		QueryTimeout:  DefaultQueryTimeout,
		Reconcile:     ReconcileSession,
		TabWidth:      buffer.TabWidth,
		Logger:        zerolog.Nop(),
	}
}

func (o Options) withDefaults() Options {
	if o.EscapeTimeout <= 0 {
		o.EscapeTimeout = input.DefaultEscapeTimeout
	}
	if o.QueryTimeout <= 0 {
		o.QueryTimeout = DefaultQueryTimeout
	}
	if o.TabWidth <= 0 {
		o.TabWidth = buffer.TabWidth
	}
	return o
}
