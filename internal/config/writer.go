package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/josephgoksu/codecrew/internal/llm"
	"gopkg.in/yaml.v3"
)

// SaveGlobalLLMConfig saves the LLM provider, model, and API key to ~/.codecrew/config.yaml.
// Other keys already in the file are preserved. Key can be empty for providers like Ollama.
func SaveGlobalLLMConfig(provider, model, key string) (string, error) {
	if provider == "" {
		return "", fmt.Errorf("provider cannot be empty")
	}
	if _, err := llm.ValidateProvider(provider); err != nil {
		return "", err
	}
	if model == "" {
		model = llm.DefaultModelForProvider(provider)
	}

	path, err := GetGlobalConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	doc := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return "", fmt.Errorf("parse %s: %w", path, err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	llmSection := childMap(doc, "llm")
	llmSection["provider"] = provider
	llmSection["model"] = model
	if key != "" {
		childMap(llmSection, "apiKeys")[provider] = key
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	header := []byte("# codecrew global configuration\n")
	if err := os.WriteFile(path, append(header, out...), 0600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// childMap returns parent[key] as a map, creating or replacing it if needed.
func childMap(parent map[string]any, key string) map[string]any {
	if existing, ok := parent[key].(map[string]any); ok {
		return existing
	}
	m := map[string]any{}
	parent[key] = m
	return m
}
