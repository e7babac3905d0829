package llm

import (
	"fmt"
	"sort"
	"strings"
)

// Model represents a complete model definition including metadata and pricing.
// This is the single source of truth for all model information.
type Model struct {
	ID          string   // Canonical model ID (e.g., "grok-4-0709")
	Provider    string   // Provider display name (e.g., "xAI")
	ProviderID  string   // Internal provider ID (e.g., "xai")
	Aliases     []string // Alternative IDs
	InputPer1M  float64  // $ per 1M input tokens
	OutputPer1M float64  // $ per 1M output tokens
	IsDefault   bool     // Whether this is the default model for its provider
}

// ModelRegistry is the single source of truth for all supported models.
// Prices last updated: 2025-12
var ModelRegistry = []Model{
	// xAI
	{
		ID:          "grok-4-0709",
		Provider:    "xAI",
		ProviderID:  ProviderXAI,
		Aliases:     []string{"grok-4", "grok-4-latest"},
		InputPer1M:  3.00,
		OutputPer1M: 15.00,
		IsDefault:   true,
	},
	{
		ID:          "grok-code-fast-1",
		Provider:    "xAI",
		ProviderID:  ProviderXAI,
		InputPer1M:  0.20,
		OutputPer1M: 1.50,
	},
	{
		ID:          "grok-3-mini",
		Provider:    "xAI",
		ProviderID:  ProviderXAI,
		InputPer1M:  0.30,
		OutputPer1M: 0.50,
	},
	{
		ID:          "grok-3",
		Provider:    "xAI",
		ProviderID:  ProviderXAI,
		InputPer1M:  3.00,
		OutputPer1M: 15.00,
	},

	// OpenAI
	{
		ID:          "gpt-4.1-nano",
		Provider:    "OpenAI",
		ProviderID:  ProviderOpenAI,
		Aliases:     []string{"gpt-4.1-nano-2025-04-14"},
		InputPer1M:  0.10,
		OutputPer1M: 0.40,
		IsDefault:   true,
	},
	{
		ID:          "gpt-4.1-mini",
		Provider:    "OpenAI",
		ProviderID:  ProviderOpenAI,
		Aliases:     []string{"gpt-4.1-mini-2025-04-14"},
		InputPer1M:  0.40,
		OutputPer1M: 1.60,
	},
	{
		ID:          "gpt-4.1",
		Provider:    "OpenAI",
		ProviderID:  ProviderOpenAI,
		Aliases:     []string{"gpt-4.1-2025-04-14"},
		InputPer1M:  2.00,
		OutputPer1M: 8.00,
	},
	{
		ID:          "gpt-4o-mini",
		Provider:    "OpenAI",
		ProviderID:  ProviderOpenAI,
		Aliases:     []string{"gpt-4o-mini-2024-07-18"},
		InputPer1M:  0.15,
		OutputPer1M: 0.60,
	},
	{
		ID:          "gpt-4o",
		Provider:    "OpenAI",
		ProviderID:  ProviderOpenAI,
		Aliases:     []string{"gpt-4o-2024-08-06"},
		InputPer1M:  2.50,
		OutputPer1M: 10.00,
	},

	// Anthropic
	{
		ID:          "claude-sonnet-4-5",
		Provider:    "Anthropic",
		ProviderID:  ProviderAnthropic,
		Aliases:     []string{"claude-sonnet-4-5-20250929"},
		InputPer1M:  3.00,
		OutputPer1M: 15.00,
		IsDefault:   true,
	},
	{
		ID:          "claude-haiku-4-5",
		Provider:    "Anthropic",
		ProviderID:  ProviderAnthropic,
		Aliases:     []string{"claude-haiku-4-5-20251001"},
		InputPer1M:  1.00,
		OutputPer1M: 5.00,
	},
	{
		ID:          "claude-opus-4-1",
		Provider:    "Anthropic",
		ProviderID:  ProviderAnthropic,
		Aliases:     []string{"claude-opus-4-1-20250805"},
		InputPer1M:  15.00,
		OutputPer1M: 75.00,
	},

	// Google
	{
		ID:          "gemini-2.5-flash",
		Provider:    "Google",
		ProviderID:  ProviderGemini,
		InputPer1M:  0.30,
		OutputPer1M: 2.50,
		IsDefault:   true,
	},
	{
		ID:          "gemini-2.5-pro",
		Provider:    "Google",
		ProviderID:  ProviderGemini,
		InputPer1M:  1.25,
		OutputPer1M: 10.00,
	},
	{
		ID:          "gemini-2.0-flash",
		Provider:    "Google",
		ProviderID:  ProviderGemini,
		InputPer1M:  0.10,
		OutputPer1M: 0.40,
	},

	// Ollama (local, no pricing)
	{
		ID:         "qwen2.5-coder",
		Provider:   "Ollama",
		ProviderID: ProviderOllama,
		IsDefault:  true,
	},
	{
		ID:         "llama3.2",
		Provider:   "Ollama",
		ProviderID: ProviderOllama,
	},
}

// modelIndex is built at init time for fast lookups
var modelIndex map[string]*Model

func init() {
	buildModelIndex()
}

func buildModelIndex() {
	modelIndex = make(map[string]*Model)
	for i := range ModelRegistry {
		m := &ModelRegistry[i]
		modelIndex[m.ID] = m
		for _, alias := range m.Aliases {
			modelIndex[alias] = m
		}
	}
}

// GetModel returns the model definition for a given model ID or alias.
// Returns nil if the model is not found.
func GetModel(modelID string) *Model {
	return modelIndex[modelID]
}

// GetDefaultModel returns the default model for a provider.
func GetDefaultModel(providerID string) *Model {
	for i := range ModelRegistry {
		m := &ModelRegistry[i]
		if m.ProviderID == providerID && m.IsDefault {
			return m
		}
	}
	return nil
}

// GetDefaultModelID returns the default model ID for a provider.
func GetDefaultModelID(providerID string) string {
	if m := GetDefaultModel(providerID); m != nil {
		return m.ID
	}
	return ""
}

// InferProvider attempts to determine the provider from a model name.
// Returns the provider ID and true if inference succeeded.
func InferProvider(modelID string) (string, bool) {
	if m := GetModel(modelID); m != nil {
		return m.ProviderID, true
	}

	// Fallback to prefix-based inference for unknown models
	switch {
	case strings.HasPrefix(modelID, "grok-"):
		return ProviderXAI, true
	case strings.HasPrefix(modelID, "gpt-"), strings.HasPrefix(modelID, "o1"),
		strings.HasPrefix(modelID, "o3"), strings.HasPrefix(modelID, "o4"):
		return ProviderOpenAI, true
	case strings.HasPrefix(modelID, "claude-"):
		return ProviderAnthropic, true
	case strings.HasPrefix(modelID, "gemini-"):
		return ProviderGemini, true
	case strings.HasPrefix(modelID, "llama"), strings.HasPrefix(modelID, "qwen"),
		strings.HasPrefix(modelID, "codellama"), strings.HasPrefix(modelID, "mistral"),
		strings.HasPrefix(modelID, "phi"):
		return ProviderOllama, true
	}

	return "", false
}

// ModelOption represents a model choice for selection UI
type ModelOption struct {
	ID          string
	DisplayName string
	PriceInfo   string
	IsDefault   bool
}

// GetModelsForProvider returns available models for a provider (for UI selection).
// The default model sorts first, the rest alphabetically.
func GetModelsForProvider(providerID string) []ModelOption {
	var options []ModelOption
	for _, m := range ModelRegistry {
		if m.ProviderID != providerID {
			continue
		}
		options = append(options, ModelOption{
			ID:          m.ID,
			DisplayName: m.ID,
			PriceInfo:   formatPriceInfo(m.InputPer1M, m.OutputPer1M),
			IsDefault:   m.IsDefault,
		})
	}

	sort.Slice(options, func(i, j int) bool {
		if options[i].IsDefault != options[j].IsDefault {
			return options[i].IsDefault
		}
		return options[i].ID < options[j].ID
	})

	return options
}

// ProviderInfo summarizes a provider for selection UIs.
type ProviderInfo struct {
	ID          string
	DisplayName string
	ModelCount  int
	MinPrice    float64
	MaxPrice    float64
	IsLocal     bool
}

// GetProviders returns provider summaries in SupportedProviders order.
func GetProviders() []ProviderInfo {
	infos := make([]ProviderInfo, 0, len(SupportedProviders()))
	for _, id := range SupportedProviders() {
		info := ProviderInfo{ID: id, IsLocal: !RequiresAPIKey(id)}
		first := true
		for _, m := range ModelRegistry {
			if m.ProviderID != id {
				continue
			}
			info.DisplayName = m.Provider
			info.ModelCount++
			if first || m.InputPer1M < info.MinPrice {
				info.MinPrice = m.InputPer1M
			}
			if first || m.OutputPer1M > info.MaxPrice {
				info.MaxPrice = m.OutputPer1M
			}
			first = false
		}
		if info.DisplayName == "" {
			info.DisplayName = id
		}
		infos = append(infos, info)
	}
	return infos
}

func formatPriceInfo(input, output float64) string {
	if input == 0 && output == 0 {
		return "local/free"
	}
	return fmt.Sprintf("$%.2f/$%.2f per 1M tokens", input, output)
}

// CalculateCost calculates cost in USD for token usage.
// Unknown models cost 0.
func CalculateCost(modelID string, inputTokens, outputTokens int) float64 {
	m := GetModel(modelID)
	if m == nil {
		return 0
	}
	inputCost := float64(inputTokens) / 1_000_000 * m.InputPer1M
	outputCost := float64(outputTokens) / 1_000_000 * m.OutputPer1M
	return inputCost + outputCost
}
