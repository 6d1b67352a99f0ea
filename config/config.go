// Package config loads console settings from a TOML file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/tconsole/console"
	"github.com/lixenwraith/tconsole/input"
	"github.com/lixenwraith/tconsole/terminal"
)

// Config is the root configuration structure
type Config struct {
	Console ConsoleConfig   `toml:"console"`
	Keys    input.KeyConfig `toml:"keys"`
	Log     LogConfig       `toml:"log"`
}

// ConsoleConfig maps onto console.Options
type ConsoleConfig struct {
	Host            string `toml:"host"`       // vt, conio
	ColorMode       string `toml:"color_mode"` // auto, truecolor, 256, 16
	EscapeTimeoutMS int    `toml:"escape_timeout_ms"`
	QueryTimeoutMS  int    `toml:"query_timeout_ms"`
	Reconcile       string `toml:"reconcile"` // never, session, print
	TabWidth        int    `toml:"tab_width"`
	AllowColor      bool   `toml:"allow_color"`
	ClearOnStart    bool   `toml:"clear_on_start"`
}

// LogConfig controls the debug log file
type LogConfig struct {
	Debug     bool   `toml:"debug"`
	Dir       string `toml:"dir"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
	Level     string `toml:"level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Console: ConsoleConfig{
			Host:            "vt",
			ColorMode:       "truecolor",
			EscapeTimeoutMS: 50,
			QueryTimeoutMS:  200,
			Reconcile:       "session",
			TabWidth:        4,
			AllowColor:      true,
		},
		Log: LogConfig{
			Dir:       "logs",
			File:      "tconsole.log",
			MaxSizeMB: 10,
			Level:     "debug",
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns every invalid setting joined into one error
func (c *Config) Validate() error {
	var errs []error

	if _, err := terminal.ParseHost(c.Console.Host); err != nil {
		errs = append(errs, fmt.Errorf("console.host: %w", err))
	}
	if _, err := terminal.ParseColorMode(c.Console.ColorMode); err != nil {
		errs = append(errs, fmt.Errorf("console.color_mode: %w", err))
	}
	if _, err := console.ParseReconcile(c.Console.Reconcile); err != nil {
		errs = append(errs, fmt.Errorf("console.reconcile: %w", err))
	}
	if c.Console.EscapeTimeoutMS < 0 {
		errs = append(errs, fmt.Errorf("console.escape_timeout_ms=%d must not be negative", c.Console.EscapeTimeoutMS))
	}
	if c.Console.QueryTimeoutMS < 0 {
		errs = append(errs, fmt.Errorf("console.query_timeout_ms=%d must not be negative", c.Console.QueryTimeoutMS))
	}
	if c.Console.TabWidth < 0 || c.Console.TabWidth > 16 {
		errs = append(errs, fmt.Errorf("console.tab_width=%d must be between 0 and 16", c.Console.TabWidth))
	}
	if _, err := c.Keys.Table(); err != nil {
		errs = append(errs, err)
	}
	if c.Log.MaxSizeMB < 0 {
		errs = append(errs, fmt.Errorf("log.max_size_mb=%d must not be negative", c.Log.MaxSizeMB))
	}
	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// applyEnvOverrides applies TCONSOLE_* environment variables
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"TCONSOLE_HOST", func(v string) {
			if v != "" {
				cfg.Console.Host = v
			}
		}},
		{"TCONSOLE_COLOR", func(v string) {
			if v != "" {
				cfg.Console.ColorMode = v
			}
		}},
		{"TCONSOLE_RECONCILE", func(v string) {
			if v != "" {
				cfg.Console.Reconcile = v
			}
		}},
		{"TCONSOLE_DEBUG", func(v string) {
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				cfg.Log.Debug = b
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// ConsoleOptions converts the console section; the config must be valid
func (c *Config) ConsoleOptions(logger zerolog.Logger) (console.Options, error) {
	host, err := terminal.ParseHost(c.Console.Host)
	if err != nil {
		return console.Options{}, err
	}
	mode, err := terminal.ParseColorMode(c.Console.ColorMode)
	if err != nil {
		return console.Options{}, err
	}
	policy, err := console.ParseReconcile(c.Console.Reconcile)
	if err != nil {
		return console.Options{}, err
	}

	opts := console.DefaultOptions()
	opts.Host = host
	opts.ColorMode = mode
	opts.Reconcile = policy
	opts.ClearOnStart = c.Console.ClearOnStart
	opts.Logger = logger
	if c.Console.EscapeTimeoutMS > 0 {
		opts.EscapeTimeout = time.Duration(c.Console.EscapeTimeoutMS) * time.Millisecond
	}
	if c.Console.QueryTimeoutMS > 0 {
		opts.QueryTimeout = time.Duration(c.Console.QueryTimeoutMS) * time.Millisecond
	}
	if c.Console.TabWidth > 0 {
		opts.TabWidth = c.Console.TabWidth
	}
	if !c.Keys.Empty() {
		override, err := c.Keys.Table()
		if err != nil {
			return console.Options{}, err
		}
		opts.Keys = input.MergeKeyTable(input.DefaultKeyTable(), override)
	}
	return opts, nil
}

// MaxLogBytes returns the rotation threshold in bytes
func (l LogConfig) MaxLogBytes() int64 {
	if l.MaxSizeMB <= 0 {
		return 10 * 1024 * 1024
	}
	return int64(l.MaxSizeMB) * 1024 * 1024
}
