// pattern: Imperative Shell

// Package config loads fiberdesk's YAML configuration and resolves
// the XDG directories the tool writes to.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Missing file or fields fall
// back to defaults; a broken file is an error the shell reports.
type Config struct {
	APIBaseURL     string            `yaml:"api_base_url"`
	Theme          string            `yaml:"theme"`
	LogLevel       string            `yaml:"log_level"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Credentials    map[string]string `yaml:"credentials"`
}

func DefaultConfig() Config {
	return Config{
		APIBaseURL:     "http://localhost:3500",
		Theme:          "mocha",
		LogLevel:       "info",
		TimeoutSeconds: 15,
	}
}

func Load() (Config, error) {
	return LoadFrom(PathInDir(""))
}

// LoadFromDir loads config.yaml from an explicit directory.
func LoadFromDir(dir string) (Config, error) {
	return LoadFrom(PathInDir(dir))
}

func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}

	return cfg.withDefaults(), nil
}

// withDefaults fills any field the file left empty.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.APIBaseURL == "" {
		c.APIBaseURL = def.APIBaseURL
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
	return c
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetCredentialValue looks up a credential by name and returns its
// value from the host environment. Credentials never live in the file
// itself, only the env var names do.
func (c Config) GetCredentialValue(name string) (string, bool) {
	envVar, ok := c.Credentials[name]
	if !ok {
		return "", false
	}
	value := os.Getenv(envVar)
	if value == "" {
		return "", false
	}
	return value, true
}

// PathInDir returns the config file path inside dir, or the default
// XDG location when dir is empty.
func PathInDir(dir string) string {
	if dir != "" {
		return filepath.Join(dir, "config.yaml")
	}
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "fiberdesk", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "fiberdesk", "config.yaml")
	}
	return filepath.Join(home, ".config", "fiberdesk", "config.yaml")
}

// DataDir returns where logs, the lock file and scroll state live.
// An explicit config dir keeps everything together under it.
func DataDir(configDir string) string {
	if configDir != "" {
		return filepath.Join(configDir, "data")
	}
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return filepath.Join(xdgState, "fiberdesk")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".local", "state", "fiberdesk")
	}
	return filepath.Join(home, ".local", "state", "fiberdesk")
}
