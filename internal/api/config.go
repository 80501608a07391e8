package api

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds the gateway client settings. Values come from
// ~/.politask/config.toml when present, then POLITASK_* environment
// variables override individual fields.
type Config struct {
	BaseURL    string `toml:"base_url"`
	TimeoutMs  int    `toml:"timeout_ms"`
	MaxRetries int    `toml:"max_retries"`
	Debug      bool   `toml:"debug"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:8080",
		TimeoutMs:  10000,
		MaxRetries: 1,
	}
}

// PolitaskDir returns the per-user state directory (~/.politask).
func PolitaskDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".politask"), nil
}

// ConfigPath returns the location of the TOML config file.
func ConfigPath() (string, error) {
	dir, err := PolitaskDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// SessionPath returns the location of the persisted credentials.
func SessionPath() (string, error) {
	dir, err := PolitaskDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

// LoadConfig reads the config file and applies environment overrides,
// falling back to defaults for anything unset. A missing file is not an
// error; a malformed one is.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, decErr := toml.DecodeFile(path, &cfg); decErr != nil {
				return cfg, decErr
			}
		}
	}

	if v := os.Getenv("POLITASK_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("POLITASK_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("POLITASK_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("POLITASK_DEBUG"); v != "" {
		cfg.Debug, _ = strconv.ParseBool(v)
	}

	return cfg, nil
}
