// Package config loads run settings for duet drivers from YAML files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/duet/api"
	"github.com/sarchlab/duet/core"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that points to a config file.
const EnvConfigPath = "DUET_CONFIG"

// Config holds the settings of a run. Zero numeric fields fall back to the
// driver defaults.
type Config struct {
	MaxTurns   int    `yaml:"max_turns"`
	MaxSteps   int    `yaml:"max_steps"`
	MaxQueued  int    `yaml:"max_queued"`
	Quantum    int    `yaml:"quantum"`
	IDRegister string `yaml:"id_register"`
	LogLevel   string `yaml:"log_level"`
	TraceFile  string `yaml:"trace_file"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		MaxTurns:   api.DefaultMaxTurns,
		MaxSteps:   api.DefaultMaxSteps,
		MaxQueued:  api.DefaultMaxQueued,
		Quantum:    core.DefaultQuantum,
		IDRegister: core.DefaultIDRegister,
		LogLevel:   "info",
	}
}

// Load reads a config file. Keys that are absent keep their default value.
// Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, errors.New("config: empty path")
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromEnv loads the file named by DUET_CONFIG, or returns the defaults if
// the variable is not set.
func LoadFromEnv() (Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		return Default(), nil
	}

	return Load(path)
}

// Validate checks that the settings can drive a run.
func (c Config) Validate() error {
	if c.MaxTurns < 0 {
		return fmt.Errorf("max_turns must not be negative, got %d", c.MaxTurns)
	}

	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}

	if c.MaxQueued < 0 {
		return fmt.Errorf("max_queued must not be negative, got %d", c.MaxQueued)
	}

	if c.Quantum < 0 {
		return fmt.Errorf("quantum must not be negative, got %d", c.Quantum)
	}

	if c.IDRegister != "" && !isRegisterName(c.IDRegister) {
		return fmt.Errorf("id_register must be a single letter, got %q", c.IDRegister)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// DriverBuilder returns a driver builder with the settings applied.
func (c Config) DriverBuilder() api.DriverBuilder {
	return api.DriverBuilder{}.
		WithMaxTurns(c.MaxTurns).
		WithMaxSteps(c.MaxSteps).
		WithMaxQueued(c.MaxQueued).
		WithQuantum(c.Quantum).
		WithIDRegister(c.IDRegister)
}

func isRegisterName(name string) bool {
	if len(name) != 1 {
		return false
	}

	c := name[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Level returns the log level. An invalid level reads as info.
func (c Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}

	return level
}

// ParseLevel parses a log level name. On top of the slog names it accepts
// "trace" for core.LevelTrace. An empty name is info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return slog.LevelInfo, nil
	case "trace":
		return core.LevelTrace, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", name)
	}

	return level, nil
}
