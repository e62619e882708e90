package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAPIBaseURL is the market server used when nothing else is configured.
	DefaultAPIBaseURL = "http://localhost:8080"
	// DefaultTimeoutSeconds bounds each HTTP round-trip.
	DefaultTimeoutSeconds = 10
	// EnvAPIURL overrides the configured server URL.
	EnvAPIURL = "PMARKET_API_URL"

	appName        = "pm"
	configFileName = "config.yaml"
	tokenFileName  = "session_token"
)

// Config holds the CLI configuration.
type Config struct {
	APIBaseURL     string `yaml:"api_base_url"`
	TokenFile      string `yaml:"token_file"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:     DefaultAPIBaseURL,
		TokenFile:      DefaultTokenFile(),
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Timeout returns the configured per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ApplyEnv overrides file values with environment variables.
func (c *Config) ApplyEnv() {
	if url := os.Getenv(EnvAPIURL); url != "" {
		c.APIBaseURL = url
	}
}

// Load reads the config file at path. A missing file yields the defaults;
// fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = DefaultTokenFile()
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}

	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ConfigDir returns $XDG_CONFIG_HOME/pm, falling back to ~/.config/pm.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", appName)
	}
	return filepath.Join(home, ".config", appName)
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// DefaultTokenFile returns the default session token location.
func DefaultTokenFile() string {
	return filepath.Join(ConfigDir(), tokenFileName)
}
