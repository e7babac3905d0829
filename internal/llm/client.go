// Package llm provides a unified interface for LLM providers using CloudWeGo Eino.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

var (
	// ErrUnsupportedProvider is returned for provider IDs outside the registry.
	ErrUnsupportedProvider = errors.New("unsupported LLM provider")

	// ErrMissingAPIKey is returned when a hosted provider is selected without credentials.
	ErrMissingAPIKey = errors.New("API key is required")
)

// Provider identifies the LLM provider to use.
type Provider string

// Config holds configuration for creating an LLM client.
type Config struct {
	Provider    Provider
	Model       string
	APIKey      string  // Required for every provider except Ollama
	BaseURL     string  // Overrides the provider endpoint (xAI, OpenAI-compatible gateways, Ollama)
	MaxTokens   int     // Completion budget per call
	Temperature float64 // Sampling temperature
	Timeout     time.Duration
}

// WithDefaults fills zero-valued fields with package defaults.
func (c Config) WithDefaults() Config {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Model == "" {
		c.Model = DefaultModelForProvider(string(c.Provider))
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// NewChatModel creates a ChatModel instance based on the provider configuration.
// It returns an Eino BaseChatModel that can be used for Generate() or Stream() calls.
func NewChatModel(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	cfg = cfg.WithDefaults()

	if RequiresAPIKey(string(cfg.Provider)) && cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrMissingAPIKey)
	}

	maxTokens := cfg.MaxTokens
	temperature := float32(cfg.Temperature)

	switch cfg.Provider {
	case ProviderXAI, ProviderOpenAI:
		baseURL := cfg.BaseURL
		if baseURL == "" && cfg.Provider == ProviderXAI {
			baseURL = DefaultXAIURL
		}
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     baseURL,
			Model:       cfg.Model,
			Timeout:     cfg.Timeout,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		})

	case ProviderAnthropic:
		claudeCfg := &claude.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			MaxTokens:   maxTokens,
			Temperature: &temperature,
		}
		if cfg.BaseURL != "" {
			baseURL := cfg.BaseURL
			claudeCfg.BaseURL = &baseURL
		}
		return claude.NewChatModel(ctx, claudeCfg)

	case ProviderGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:     cfg.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: &http.Client{Timeout: cfg.Timeout},
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		return gemini.NewChatModel(ctx, &gemini.Config{
			Client:      client,
			Model:       cfg.Model,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		})

	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = DefaultOllamaURL
		}
		return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})

	default:
		return nil, fmt.Errorf("%w: %s (supported: xai, openai, anthropic, gemini, ollama)", ErrUnsupportedProvider, cfg.Provider)
	}
}

// GenerateOptions returns the per-call options matching cfg.
// Providers that ignore construction-time sampling settings (Ollama) honour these instead.
func GenerateOptions(cfg Config) []model.Option {
	cfg = cfg.WithDefaults()
	return []model.Option{
		model.WithModel(cfg.Model),
		model.WithTemperature(float32(cfg.Temperature)),
		model.WithMaxTokens(cfg.MaxTokens),
	}
}

// ValidateProvider checks if the given provider string is supported.
func ValidateProvider(p string) (Provider, error) {
	switch p {
	case ProviderXAI, ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama:
		return Provider(p), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, p)
	}
}

// SupportedProviders lists provider IDs in display order.
func SupportedProviders() []string {
	return []string{ProviderXAI, ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama}
}
