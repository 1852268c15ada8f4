// Package config loads navmux runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrInvalidLogLevel is returned for an unknown NAVMUX_LOG_LEVEL.
	ErrInvalidLogLevel = errors.New("config: invalid log level")

	// ErrInvalidLogFormat is returned for an unknown NAVMUX_LOG_FORMAT.
	ErrInvalidLogFormat = errors.New("config: invalid log format")
)

// Config holds the settings shared by the navmux commands.
type Config struct {
	Routes           string `env:"NAVMUX_ROUTES" envDefault:"routes.yaml"`
	LogLevel         string `env:"NAVMUX_LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"NAVMUX_LOG_FORMAT" envDefault:"text"`
	ListenAddr       string `env:"NAVMUX_LISTEN_ADDR" envDefault:":8080"`
	MetricsNamespace string `env:"NAVMUX_METRICS_NAMESPACE" envDefault:"navmux"`
}

// Load reads the given .env files, then parses the environment. Missing
// .env files are ignored; with no names, ".env" is tried. Variables already
// set in the environment win over .env values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, name := range files {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", name, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if _, err := cfg.Level(); err != nil {
		return nil, err
	}

	if err := cfg.validateFormat(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	return level, nil
}

func (c *Config) validateFormat() error {
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
}

// NewLogger builds a logger writing to w in the configured format and level.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}

	if err := c.validateFormat(); err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}
