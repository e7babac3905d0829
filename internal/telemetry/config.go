// Package telemetry manages anonymous, opt-in usage telemetry for codecrew.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/josephgoksu/codecrew/internal/config"
)

// ConfigFileName is the name of the telemetry state file.
const ConfigFileName = "telemetry.json"

// Config holds the telemetry state.
// Stored at ~/.codecrew/telemetry.json, separate from the main config.
type Config struct {
	// Enabled is the opt-in flag. The telemetry.enabled setting overrides it.
	Enabled bool `json:"enabled"`

	// AnonymousID is a random UUID generated on first load and never changed.
	AnonymousID string `json:"anonymous_id"`
}

var (
	configDirOverride   string
	configDirOverrideMu sync.RWMutex
)

// SetConfigDir overrides the directory holding telemetry.json.
// Pass an empty string to restore the default.
func SetConfigDir(dir string) {
	configDirOverrideMu.Lock()
	defer configDirOverrideMu.Unlock()
	configDirOverride = dir
}

func getConfigDir() (string, error) {
	configDirOverrideMu.RLock()
	override := configDirOverride
	configDirOverrideMu.RUnlock()

	if override != "" {
		return override, nil
	}
	return config.GetGlobalConfigDir()
}

// GetConfigPath returns the full path to the telemetry state file.
func GetConfigPath() (string, error) {
	dir, err := getConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load reads the telemetry state. A missing file yields a disabled config with a fresh ID.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if cfg.AnonymousID == "" {
		cfg.AnonymousID = uuid.New().String()
	}
	return cfg, nil
}

// Save writes the telemetry state with owner-only permissions.
func (c *Config) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// IsEnabled reports whether events may be sent.
func (c *Config) IsEnabled() bool {
	return c != nil && c.Enabled
}

// SetEnabled persists the opt-in choice.
func SetEnabled(enabled bool) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	cfg.Enabled = enabled
	if err := cfg.Save(); err != nil {
		return nil, err
	}
	return cfg, nil
}
