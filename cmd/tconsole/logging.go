package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tconsole/config"
)

// setupLogging opens the debug log, rotating it when it grew past the size limit.
// With debug off everything is discarded and the returned file is nil.
// Nothing is ever written to stdout or stderr, the console owns the screen.
func setupLogging(cfg config.LogConfig) (zerolog.Logger, *os.File) {
	if !cfg.Debug {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil
	}

	logPath := filepath.Join(cfg.Dir, cfg.File)
	if info, err := os.Stat(logPath); err == nil && info.Size() > cfg.MaxLogBytes() {
		ext := filepath.Ext(cfg.File)
		rotated := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(cfg.File, ext), time.Now().Format("20060102-150405"), ext)
		os.Rename(logPath, filepath.Join(cfg.Dir, rotated))
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.DebugLevel
	}

	// Stray std log calls from dependencies land in the same file
	log.SetOutput(logFile)
	logger := zerolog.New(logFile).Level(level).With().Timestamp().Logger()
	return logger, logFile
}
