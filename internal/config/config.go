package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/randomtoy/moonblock-go/internal/app"
)

type Config struct {
	HTTPAddr     string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevelName string `env:"LOG_LEVEL" envDefault:"info"`
	LogLevel     slog.Level

	LLMAPIKey      string  `env:"LLM_API_KEY"`
	LLMBaseURL     string  `env:"LLM_BASE_URL" envDefault:"https://api.tu-zi.com/v1"`
	LLMModel       string  `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMTemperature float64 `env:"LLM_TEMPERATURE" envDefault:"0.9"`

	ThrowDwell       time.Duration `env:"THROW_DWELL" envDefault:"800ms"`
	FinalizeDelay    time.Duration `env:"FINALIZE_DELAY" envDefault:"8s"`
	PerThrowTimeout  time.Duration `env:"PER_THROW_TIMEOUT" envDefault:"5s"`
	FinalCardTimeout time.Duration `env:"FINAL_CARD_TIMEOUT" envDefault:"10s"`

	ClockOutHour int `env:"CLOCK_OUT_HOUR" envDefault:"18"`
}

// Load reads an optional .env file, then the environment. Variables already
// set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv parses and validates the process environment.
func FromEnv() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	level, err := parseLogLevel(c.LogLevelName)
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Timing returns the ritual delays and deadlines.
func (c Config) Timing() app.Timing {
	return app.Timing{
		ThrowDwell:       c.ThrowDwell,
		FinalizeDelay:    c.FinalizeDelay,
		PerThrowTimeout:  c.PerThrowTimeout,
		FinalCardTimeout: c.FinalCardTimeout,
	}
}

// ServiceConfigured reports whether an LLM credential is present. Without
// one every answer comes from the fallback bank.
func (c Config) ServiceConfigured() bool {
	return c.LLMAPIKey != ""
}

func (c Config) validate() error {
	for name, d := range map[string]time.Duration{
		"THROW_DWELL":        c.ThrowDwell,
		"FINALIZE_DELAY":     c.FinalizeDelay,
		"PER_THROW_TIMEOUT":  c.PerThrowTimeout,
		"FINAL_CARD_TIMEOUT": c.FinalCardTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if c.FinalCardTimeout < c.PerThrowTimeout {
		return fmt.Errorf("FINAL_CARD_TIMEOUT (%s) must not be shorter than PER_THROW_TIMEOUT (%s)", c.FinalCardTimeout, c.PerThrowTimeout)
	}
	if c.ClockOutHour < 0 || c.ClockOutHour > 23 {
		return fmt.Errorf("CLOCK_OUT_HOUR must be between 0 and 23, got %d", c.ClockOutHour)
	}
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
