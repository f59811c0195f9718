package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pxtools/pxkit/px/datavalue"
	"github.com/pxtools/pxkit/px/reader"
)

// Config is the optional YAML configuration. Command-line flags win over it.
type Config struct {
	Mode       string          `yaml:"mode"`
	Language   string          `yaml:"language"`
	LogLevel   string          `yaml:"log_level"`
	BufferSize int             `yaml:"buffer_size"`
	Sentinels  SentinelsConfig `yaml:"sentinels"`
}

// SentinelsConfig maps sentinel cells to numbers in numeric mode. Unset
// entries become NaN.
type SentinelsConfig struct {
	Nill            *float64 `yaml:"nill"`
	Missing         *float64 `yaml:"missing"`
	CanNotRepresent *float64 `yaml:"can_not_represent"`
	Confidential    *float64 `yaml:"confidential"`
	NotAcquired     *float64 `yaml:"not_acquired"`
	NotAsked        *float64 `yaml:"not_asked"`
	Empty           *float64 `yaml:"empty"`
}

func defaultConfig() Config {
	return Config{
		Mode:       modeDecimal,
		LogLevel:   "warn",
		BufferSize: reader.DefaultBufferSize,
	}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := parseMode(c.Mode); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	if _, err := c.level(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	if c.BufferSize <= 0 {
		return c, fmt.Errorf("config %s: buffer_size must be positive, got %d", path, c.BufferSize)
	}
	return c, nil
}

func (c Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, errors.New("log_level must be one of debug, info, warn, error")
	}
	return l, nil
}

// sentinelMap builds the numeric-mode substitution table.
func (c Config) sentinelMap() datavalue.SentinelMap {
	pick := func(v *float64) float64 {
		if v == nil {
			return math.NaN()
		}
		return *v
	}
	s := c.Sentinels
	return datavalue.SentinelMap{
		pick(s.Nill),
		pick(s.Missing),
		pick(s.CanNotRepresent),
		pick(s.Confidential),
		pick(s.NotAcquired),
		pick(s.NotAsked),
		pick(s.Empty),
	}
}
