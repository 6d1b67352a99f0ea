package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/tconsole/config"
	"github.com/lixenwraith/tconsole/console"
	"github.com/lixenwraith/tconsole/input"
	"github.com/lixenwraith/tconsole/terminal"
)

var (
	configFlag = flag.String("config", "", "Path to TOML config file, its [keys] section is applied")
	hostFlag   = flag.String("host", "", "Host encoding: vt, conio (overrides config)")
)

// keytest prints every decoded key press, which helps when writing [keys] overrides
func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *hostFlag != "" {
		cfg.Console.Host = *hostFlag
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
	if err := backend.Acquire(); err != nil {
		fmt.Fprintf(os.Stderr, "raw mode failed: %v\n", err)
		os.Exit(1)
	}
	defer backend.Release()

	con := console.New(backend, opts)
	defer con.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go terminal.RestoreOnSignal(sigCh, func() {
		con.Close()
		backend.Release()
		terminal.EmergencyReset(os.Stdout)
	}, os.Exit)

	decoder := input.New(con.Profile(), backend, input.Options{
		EscapeTimeout: opts.EscapeTimeout,
		Keys:          opts.Keys,
		Logger:        logger,
	})

	con.ShowTemplate("&bKey test&r on host #, press keys, Ctrl+C quits\r\n", con.Profile().Host)
	for {
		ev, err := decoder.Next()
		if err != nil {
			if !errors.Is(err, input.ErrClosed) {
				con.ShowTemplate("&cread failed: #&r\r\n", err.Error())
			}
			return
		}
		con.ShowTemplate("&a#&r\r\n", ev.String())
	}
}
