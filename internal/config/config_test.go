package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_NonExistent(t *testing.T) {
	// When config file doesn't exist, should return defaults
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, DefaultAPIBaseURL)
	}
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want %d", cfg.TimeoutSeconds, DefaultTimeoutSeconds)
	}
	if cfg.TokenFile != DefaultTokenFile() {
		t.Errorf("TokenFile = %q, want %q", cfg.TokenFile, DefaultTokenFile())
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `api_base_url: "https://market.example.com"
token_file: "/tmp/pmarket-token.txt"
timeout_seconds: 30
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.APIBaseURL != "https://market.example.com" {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, "https://market.example.com")
	}
	if cfg.TokenFile != "/tmp/pmarket-token.txt" {
		t.Errorf("TokenFile = %q, want %q", cfg.TokenFile, "/tmp/pmarket-token.txt")
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v, want %v", cfg.Timeout(), 30*time.Second)
	}
}

func TestLoad_PartialConfig(t *testing.T) {
	// Config with only some fields should use defaults for missing
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `token_file: "/var/tmp/token"
timeout_seconds: 0
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.TokenFile != "/var/tmp/token" {
		t.Errorf("TokenFile = %q, want %q", cfg.TokenFile, "/var/tmp/token")
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want default %q", cfg.APIBaseURL, DefaultAPIBaseURL)
	}
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want default %d", cfg.TimeoutSeconds, DefaultTimeoutSeconds)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `invalid: yaml: content: [broken`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() error = nil, want error for invalid YAML")
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg := &Config{
		APIBaseURL:     "https://save.example.com",
		TokenFile:      "/tmp/tok",
		TimeoutSeconds: 45,
	}

	if err := Save(configPath, cfg); err != nil {
		t.Fatalf("Save() error = %v, want nil", err)
	}

	// Verify file was created with correct permissions
	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Failed to stat config file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Config file permissions = %o, want %o", perm, 0600)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() after Save() error = %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("Load() after Save() = %+v, want %+v", *loaded, *cfg)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "deep", "config.yaml")

	if err := Save(configPath, DefaultConfig()); err != nil {
		t.Fatalf("Save() error = %v, want nil", err)
	}

	if _, err := os.Stat(configPath); err != nil {
		t.Errorf("Config file not created: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, DefaultAPIBaseURL)
	}
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want %d", cfg.TimeoutSeconds, DefaultTimeoutSeconds)
	}
	if filepath.Base(cfg.TokenFile) != "session_token" {
		t.Errorf("TokenFile = %q, want a session_token file", cfg.TokenFile)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://env.example.com")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.APIBaseURL != "http://env.example.com" {
		t.Errorf("APIBaseURL = %q, want env override", cfg.APIBaseURL)
	}
}

func TestApplyEnv_Unset(t *testing.T) {
	t.Setenv(EnvAPIURL, "")

	cfg := &Config{APIBaseURL: "http://file.example.com"}
	cfg.ApplyEnv()

	if cfg.APIBaseURL != "http://file.example.com" {
		t.Errorf("APIBaseURL = %q, want file value kept", cfg.APIBaseURL)
	}
}

func TestConfigDir_WithXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	dir := ConfigDir()

	want := "/custom/config/pm"
	if dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestConfigDir_WithoutXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := ConfigDir()

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", "pm")
	if dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestConfigPath_WithXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	path := ConfigPath()

	want := "/custom/config/pm/config.yaml"
	if path != want {
		t.Errorf("ConfigPath() = %q, want %q", path, want)
	}
}

func TestDefaultTokenFile_WithXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	want := "/custom/config/pm/session_token"
	if got := DefaultTokenFile(); got != want {
		t.Errorf("DefaultTokenFile() = %q, want %q", got, want)
	}
}
