// Package config provides centralized configuration for codecrew.
// All default values should be defined here to ensure a single source of truth.
package config

import (
	"github.com/josephgoksu/codecrew/internal/llm"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every environment override (e.g. CODECREW_LLM_MODEL).
	EnvPrefix = "CODECREW"

	// ConfigName is the project-local config file name, without extension.
	ConfigName = ".codecrew"

	// GlobalConfigFile is the file name inside the global config directory.
	GlobalConfigFile = "config.yaml"
)

// Output defaults
const (
	DefaultOutputDir = "."
	DefaultLogFormat = "text"
)

// SetDefaults registers every default with viper.
// llm.provider and telemetry.enabled have no default: an unset provider is
// inferred from --model and an unset telemetry.enabled defers to the stored opt-in.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("llm.maxTokens", llm.DefaultMaxTokens)
	v.SetDefault("llm.temperature", llm.DefaultTemperature)
	v.SetDefault("llm.timeoutSeconds", int(llm.DefaultTimeout.Seconds()))

	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.autoSave", false)

	v.SetDefault("log.format", DefaultLogFormat)
}
