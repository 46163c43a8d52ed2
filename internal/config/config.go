package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/calc/internal/calc"
	"github.com/Makepad-fr/calc/internal/logger"
)

// YAML-backed settings. Single file, optional; a missing file means defaults.

const (
	dirName  = ".calc"
	fileName = "config.yaml"
)

// Config is the user-tunable part of the calculator.
type Config struct {
	Theme     string `yaml:"theme"`
	Precision int    `yaml:"precision"`
	LogLevel  string `yaml:"log_level"`
	LogFile   string `yaml:"log_file"`
}

// Themes lists the accepted theme names.
var Themes = []string{"classic", "neon", "mono"}

func Default() Config {
	return Config{
		Theme:     "classic",
		Precision: calc.DefaultPrecision,
		LogLevel:  "info",
	}
}

// DefaultPath is ~/.calc/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// Load reads path (DefaultPath when empty) over the defaults, then applies
// CALC_* environment overrides. The result is not validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("CALC_THEME")); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("CALC_PRECISION")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CALC_PRECISION: not a number: %s", v)
		}
		cfg.Precision = n
	}
	if v := strings.TrimSpace(os.Getenv("CALC_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("CALC_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	return nil
}

// Validate rejects unknown themes, precision outside 1..17 and bad levels.
func (c Config) Validate() error {
	known := false
	for _, t := range Themes {
		if strings.EqualFold(c.Theme, t) {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown theme %q (want one of %s)", c.Theme, strings.Join(Themes, ", "))
	}
	if c.Precision < 1 || c.Precision > 17 {
		return fmt.Errorf("precision out of range: %d (want 1..17)", c.Precision)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
