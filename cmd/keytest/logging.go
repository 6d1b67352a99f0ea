package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tconsole/config"
)

// setupLogging appends to the shared debug log; keytest never rotates it
func setupLogging(cfg config.LogConfig) (zerolog.Logger, *os.File) {
	if !cfg.Debug {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return zerolog.Nop(), nil
	}
	logFile, err := os.OpenFile(filepath.Join(cfg.Dir, cfg.File), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil
	}
	log.SetOutput(logFile)
	return zerolog.New(logFile).With().Timestamp().Str("tool", "keytest").Logger(), logFile
}
