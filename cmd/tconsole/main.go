package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/lixenwraith/tconsole/config"
	"github.com/lixenwraith/tconsole/console"
	"github.com/lixenwraith/tconsole/input"
	"github.com/lixenwraith/tconsole/layout"
	"github.com/lixenwraith/tconsole/terminal"
)

var (
	configFlag = flag.String("config", "", "Path to TOML config file")
	hostFlag   = flag.String("host", "", "Host encoding: vt, conio (overrides config)")
	colorFlag  = flag.String("color", "", "Color mode: auto, truecolor, 256, 16 (overrides config)")
	debugFlag  = flag.Bool("debug", false, "Write a debug log")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if a prompt crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTCONSOLE CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *hostFlag != "" {
		cfg.Console.Host = *hostFlag
	}
	if *colorFlag != "" {
		cfg.Console.ColorMode = *colorFlag
	}
	if *debugFlag {
		cfg.Log.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, logFile := setupLogging(cfg.Log)
	if logFile != nil {
		defer logFile.Close()
	}

	opts, err := cfg.ConsoleOptions(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	backend := terminal.Open()
	logger.Info().
		Str("host", opts.Host.String()).
		Str("color", opts.ColorMode.String()).
		Bool("tty", terminal.IsTTY(backend)).
		Msg("console opened")

	con := console.New(backend, opts)
	defer con.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go terminal.RestoreOnSignal(sigCh, func() {
		con.Close()
		terminal.EmergencyReset(os.Stdout)
		logger.Info().Msg("interrupted")
	}, os.Exit)

	if err := run(con, backend, cfg.Console.AllowColor); err != nil {
		con.Close()
		if errors.Is(err, input.ErrClosed) {
			return
		}
		logger.Error().Err(err).Msg("demo failed")
		fmt.Fprintf(os.Stderr, "\r\nError: %v\r\n", err)
		os.Exit(1)
	}
}

// run walks through every prompt kind and finishes with a framed summary
func run(con *console.Console, backend terminal.Backend, allowColor bool) error {
	if err := con.ShowText("&bConsole demo&r: type & followed by 0-9, a-f or r to preview colors\r\n"); err != nil {
		return err
	}

	con.ShowText("Name: ")
	name, err := con.ReadText(1, 32, allowColor)
	if err != nil {
		return err
	}

	con.ShowText("Age: ")
	age, err := con.ReadInt(150, false)
	if err != nil {
		return err
	}

	con.ShowText("Balance (n for NaN, i for Infinity): ")
	balance, err := con.ReadFloat(true, true, 12)
	if err != nil {
		return err
	}

	con.ShowText("Save? [yn]: ")
	save, err := con.ReadString(console.StringOptions{Whitelist: "ynYN", Default: "y", Min: 1, Max: 1})
	if err != nil {
		return err
	}

	if err := con.ShowTemplate("&aHello #&r, age #, balance #, save=#\r\n", name, age, balance, save); err != nil {
		return err
	}

	width, _ := backend.Size()
	pos := con.Position()
	box := layout.Rect(2, pos.Y+1, min(width, 42)-1, pos.Y+4)
	if err := con.Fill('.', box); err != nil {
		return err
	}
	inner := layout.Rect(box.TopLeft.X+1, box.TopLeft.Y+1, box.BottomRight.X-1, box.BottomRight.Y-1)
	fits, err := con.Layout("&eLayout wraps text inside a region and puts the cursor back where it was", inner, true)
	if err != nil {
		return err
	}
	con.SetPosition(0, box.BottomRight.Y+1)
	if !fits {
		con.ShowText("&8(text truncated)&r\r\n")
	}
	return nil
}
