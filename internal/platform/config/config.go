// Package config loads mission control settings from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds process-level settings for the mission store and its
// observability wiring.
type Config struct {
	InitialCapacity   int    `env:"MISSIONCONTROL_INITIAL_CAPACITY" envDefault:"8"`
	CommCapacity      int    `env:"MISSIONCONTROL_COMM_CAPACITY" envDefault:"4"`
	MemoryBudgetBytes int64  `env:"MISSIONCONTROL_MEMORY_BUDGET_BYTES" envDefault:"0"`
	StrictCalendar    bool   `env:"MISSIONCONTROL_STRICT_CALENDAR" envDefault:"false"`
	LogLevel          string `env:"MISSIONCONTROL_LOG_LEVEL" envDefault:"info"`
	LogFormat         string `env:"MISSIONCONTROL_LOG_FORMAT" envDefault:"text"`
	MetricsNamespace  string `env:"MISSIONCONTROL_METRICS_NAMESPACE" envDefault:"missioncontrol"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges that env parsing cannot express.
func (c Config) Validate() error {
	if c.InitialCapacity <= 0 {
		return fmt.Errorf("config: initial capacity must be positive, got %d", c.InitialCapacity)
	}
	if c.CommCapacity <= 0 {
		return fmt.Errorf("config: comm capacity must be positive, got %d", c.CommCapacity)
	}
	if c.MemoryBudgetBytes < 0 {
		return fmt.Errorf("config: memory budget must not be negative, got %d", c.MemoryBudgetBytes)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log level: %w", err)
	}
	return level, nil
}

// NewLogger builds a slog logger writing to w with the configured level and
// format.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
