package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/madocalc/internal/buff"
)

// Default locations and environment variables.
const (
	DefaultPath      = "config/madocalc.yaml"
	DefaultStorePath = "madocalc-store.yaml"

	EnvConfig   = "MADOCALC_CONFIG"
	EnvLogLevel = "MADOCALC_LOG_LEVEL"
	EnvStore    = "MADOCALC_STORE"
)

// Config holds all configuration for the calculator CLI.
type Config struct {
	LogLevel string `yaml:"log_level"`

	// StorePath is the YAML file holding custom presets and memos.
	StorePath string `yaml:"store_path"`

	// Modes maps buff field keys to "split" or "total". Missing keys keep
	// their default mode.
	Modes map[string]string `yaml:"modes"`

	// Ranges overrides the accepted interval of numeric inputs.
	Ranges map[string]Range `yaml:"ranges"`
}

// Default returns Config with sensible defaults.
func Default() Config {
	return Config{
		LogLevel:  "info",
		StorePath: DefaultStorePath,
		Modes:     buff.DefaultModes().Strings(),
		Ranges:    map[string]Range{},
	}
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromEnv reads an optional .env file, resolves the config path from
// MADOCALC_CONFIG (falling back to path) and applies the environment
// overrides on top of the loaded file.
func LoadFromEnv(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	if p := os.Getenv(EnvConfig); p != "" {
		path = p
	}
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}

	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvStore); v != "" {
		c.StorePath = v
	}
}

// Validate checks mode names and range bounds.
func (c Config) Validate() error {
	if _, err := c.BuffModes(); err != nil {
		return err
	}
	for key, r := range c.Ranges {
		if r.Min > r.Max {
			return fmt.Errorf("range %s: min %v exceeds max %v", key, r.Min, r.Max)
		}
	}
	return nil
}

// BuffModes converts the configured mode names into a buff.Modes map.
func (c Config) BuffModes() (buff.Modes, error) {
	modes, err := buff.ParseModes(c.Modes)
	if err != nil {
		return buff.Modes{}, fmt.Errorf("modes: %w", err)
	}
	return modes, nil
}

// ParseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
