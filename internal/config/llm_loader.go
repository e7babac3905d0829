package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/josephgoksu/codecrew/internal/llm"
	"github.com/spf13/viper"
)

// KeySource represents where an API key was loaded from.
type KeySource string

const (
	KeySourceConfig KeySource = "config_file"
	KeySourceEnv    KeySource = "environment"
	KeySourceNone   KeySource = "none"
)

// LoadLLMConfig loads LLM configuration from Viper and Environment variables.
// It handles precedence: Flags > Environment Variables > Config File > Defaults.
// It does NOT handle interactive prompts (that belongs in the CLI layer).
func LoadLLMConfig() (llm.Config, error) {
	// 1. Provider. An explicit model with no explicit provider picks the model's provider.
	provider := strings.TrimSpace(viper.GetString("llm.provider"))
	model := strings.TrimSpace(viper.GetString("llm.model"))
	if provider == "" {
		provider = llm.DefaultProvider
		if inferred, ok := llm.InferProvider(model); ok {
			provider = inferred
		}
	}

	llmProvider, err := llm.ValidateProvider(provider)
	if err != nil {
		return llm.Config{}, fmt.Errorf("invalid provider: %w", err)
	}

	// 2. Model
	if model == "" {
		model = llm.DefaultModelForProvider(string(llmProvider))
	}

	// 3. API Key. Missing keys are reported by RequireAPIKey so `config show` still works.
	apiKey, _ := ResolveAPIKey(llmProvider)

	// 4. Base URL (OpenAI-compatible gateways, Ollama)
	baseURL := strings.TrimSpace(viper.GetString("llm.baseURL"))
	if baseURL == "" && llmProvider == llm.ProviderOllama {
		baseURL = llm.DefaultOllamaURL
	}

	timeout := time.Duration(viper.GetInt("llm.timeoutSeconds")) * time.Second

	cfg := llm.Config{
		Provider:    llmProvider,
		Model:       model,
		APIKey:      apiKey,
		BaseURL:     baseURL,
		MaxTokens:   viper.GetInt("llm.maxTokens"),
		Temperature: viper.GetFloat64("llm.temperature"),
		Timeout:     timeout,
	}

	if err := Validate(SettingsFromLLMConfig(cfg)); err != nil {
		return llm.Config{}, err
	}
	return cfg, nil
}

// ResolveAPIKey returns the best API key for the given provider using
// per-provider config keys, provider-specific env vars, then the legacy config key.
func ResolveAPIKey(provider llm.Provider) (string, KeySource) {
	keyFromViper := func(path string) string {
		if viper.IsSet(path) {
			return strings.TrimSpace(viper.GetString(path))
		}
		return ""
	}

	// 1) Per-provider config key (llm.apiKeys.<provider>)
	if key := keyFromViper(fmt.Sprintf("llm.apiKeys.%s", provider)); key != "" {
		return key, KeySourceConfig
	}

	// 2) Provider-specific env vars
	if key := providerEnvKey(provider); key != "" {
		return key, KeySourceEnv
	}

	// 3) Legacy single key
	if key := keyFromViper("llm.apiKey"); key != "" {
		return key, KeySourceConfig
	}

	return "", KeySourceNone
}

func providerEnvKey(provider llm.Provider) string {
	switch provider {
	case llm.ProviderGemini:
		key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		if key == "" {
			key = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
		}
		return key
	default:
		name := llm.APIKeyEnvVar(string(provider))
		if name == "" {
			return ""
		}
		return strings.TrimSpace(os.Getenv(name))
	}
}

// RequireAPIKey fails with a wrapped llm.ErrMissingAPIKey naming the env var to set.
func RequireAPIKey(cfg llm.Config) error {
	if !llm.RequiresAPIKey(string(cfg.Provider)) || cfg.APIKey != "" {
		return nil
	}
	return &MissingKeyError{Provider: string(cfg.Provider), EnvVar: llm.APIKeyEnvVar(string(cfg.Provider))}
}

// MissingKeyError reports which credential is absent.
type MissingKeyError struct {
	Provider string
	EnvVar   string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s: set %s environment variable", e.Provider, e.EnvVar)
}

// Unwrap lets errors.Is match llm.ErrMissingAPIKey.
func (e *MissingKeyError) Unwrap() error { return llm.ErrMissingAPIKey }
