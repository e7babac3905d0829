package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/josephgoksu/codecrew/internal/config"
	"github.com/spf13/viper"
)

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present. A missing file is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(config.EnvPrefix)                   // e.g., CODECREW_LLM_MODEL
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // llm.model -> LLM_MODEL
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	path, err := findConfigFile(viper.GetString("config"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}
	if path == "" {
		LogError("No config file found. Using defaults and environment variables.", nil)
		return
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Error reading config file:", path, "-", err)
		return
	}
	LogError("Using config file: "+viper.ConfigFileUsed(), nil)
}

// configSearchPaths lists candidate config files in priority order.
func configSearchPaths() []string {
	paths := []string{config.ConfigName + ".yaml"}
	if global, err := config.GetGlobalConfigPath(); err == nil {
		paths = append(paths, global)
	}
	return paths
}

// findConfigFile returns the config file to load, or "" when none exists.
// An explicit --config path must exist.
func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("specified config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range configSearchPaths() {
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return filepath.Clean(p), nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("check config %s: %w", p, err)
		}
	}
	return "", nil
}
