// Package config loads the CLI configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Every field has a working default; an
// absent config file is not an error.
type Config struct {
	// DataDir is the directory holding the persisted records.
	DataDir string `yaml:"data_dir"`

	// ReminderInterval is the reminder polling interval (e.g. "30s", "1m").
	ReminderInterval Duration `yaml:"reminder_interval"`

	// NotifyCommand overrides the notifier binary.
	NotifyCommand string `yaml:"notify_command"`
}

// Duration decodes YAML strings like "90s" into a time.Duration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	if parsed <= 0 {
		return fmt.Errorf("duration must be positive, got %q", raw)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir:          defaultDataDir(),
		ReminderInterval: Duration(time.Minute),
	}
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "jot", "data")
}

// DefaultPath returns the expected config file location.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "jot", "config.yaml"), nil
}

// Load reads the config file at path, filling unset fields with defaults.
// A missing file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if loaded.DataDir != "" {
		cfg.DataDir = loaded.DataDir
	}
	if loaded.ReminderInterval > 0 {
		cfg.ReminderInterval = loaded.ReminderInterval
	}
	if loaded.NotifyCommand != "" {
		cfg.NotifyCommand = loaded.NotifyCommand
	}
	return cfg, nil
}

// Interval returns the polling interval as a time.Duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.ReminderInterval)
}
