package llm

import "time"

// Provider constants
const (
	// DefaultProvider is the default LLM provider
	DefaultProvider = ProviderXAI

	// ProviderXAI represents xAI's OpenAI-compatible API (Grok models)
	ProviderXAI = "xai"

	// ProviderOpenAI represents the OpenAI provider
	ProviderOpenAI = "openai"

	// ProviderAnthropic represents the Anthropic provider
	ProviderAnthropic = "anthropic"

	// ProviderGemini represents the Google Gemini provider
	ProviderGemini = "gemini"

	// ProviderOllama represents the Ollama provider
	ProviderOllama = "ollama"
)

// DefaultXAIURL is the OpenAI-compatible endpoint served by xAI.
const DefaultXAIURL = "https://api.x.ai/v1"

// DefaultOllamaURL is the default URL for Ollama server
const DefaultOllamaURL = "http://localhost:11434"

// Generation defaults. These match what every agent prompt was tuned against.
const (
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.7
	DefaultTimeout     = 120 * time.Second
)

// DefaultModelForProvider returns the default model ID for a given provider.
// This is a convenience wrapper around GetDefaultModelID in models.go.
func DefaultModelForProvider(provider string) string {
	return GetDefaultModelID(provider)
}

// APIKeyEnvVar returns the primary environment variable holding the key for a provider.
// Returns "" for providers that don't need one.
func APIKeyEnvVar(provider string) string {
	switch provider {
	case ProviderXAI:
		return "XAI_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

// RequiresAPIKey reports whether the provider is a hosted API that needs credentials.
func RequiresAPIKey(provider string) bool {
	return provider != ProviderOllama
}
