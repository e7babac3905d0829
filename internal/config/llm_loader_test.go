package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/josephgoksu/codecrew/internal/llm"
	"github.com/spf13/viper"
)

func resetViperForTest(t *testing.T) {
	t.Helper()
	viper.Reset()
	SetDefaults(viper.GetViper())
	t.Cleanup(viper.Reset)
	for _, name := range []string{"XAI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		t.Setenv(name, "")
	}
}

func TestLoadLLMConfig_Defaults(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("XAI_API_KEY", "xai-from-env")

	cfg, err := LoadLLMConfig()
	if err != nil {
		t.Fatalf("LoadLLMConfig() error = %v", err)
	}
	if cfg.Provider != llm.ProviderXAI {
		t.Errorf("Provider = %q, want xai", cfg.Provider)
	}
	if cfg.Model != "grok-4-0709" {
		t.Errorf("Model = %q, want grok-4-0709", cfg.Model)
	}
	if cfg.APIKey != "xai-from-env" {
		t.Errorf("APIKey = %q, want env value", cfg.APIKey)
	}
	if cfg.MaxTokens != 2000 || cfg.Temperature != 0.7 {
		t.Errorf("sampling = %d/%v, want 2000/0.7", cfg.MaxTokens, cfg.Temperature)
	}
	if cfg.Timeout != 120*time.Second {
		t.Errorf("Timeout = %v, want 120s", cfg.Timeout)
	}
}

func TestLoadLLMConfig_InfersProviderFromModel(t *testing.T) {
	resetViperForTest(t)
	viper.Set("llm.provider", "")
	viper.Set("llm.model", "claude-haiku-4-5")

	cfg, err := LoadLLMConfig()
	if err != nil {
		t.Fatalf("LoadLLMConfig() error = %v", err)
	}
	if cfg.Provider != llm.ProviderAnthropic {
		t.Errorf("Provider = %q, want anthropic", cfg.Provider)
	}
}

func TestLoadLLMConfig_InvalidProvider(t *testing.T) {
	resetViperForTest(t)
	viper.Set("llm.provider", "skynet")

	_, err := LoadLLMConfig()
	if !errors.Is(err, llm.ErrUnsupportedProvider) {
		t.Fatalf("LoadLLMConfig() error = %v, want ErrUnsupportedProvider", err)
	}
}

func TestLoadLLMConfig_RejectsOutOfRangeTemperature(t *testing.T) {
	resetViperForTest(t)
	viper.Set("llm.temperature", 3.5)

	_, err := LoadLLMConfig()
	if err == nil || !strings.Contains(err.Error(), "Temperature") {
		t.Fatalf("LoadLLMConfig() error = %v, want Temperature validation error", err)
	}
}

func TestLoadLLMConfig_OllamaBaseURL(t *testing.T) {
	resetViperForTest(t)
	viper.Set("llm.provider", "ollama")

	cfg, err := LoadLLMConfig()
	if err != nil {
		t.Fatalf("LoadLLMConfig() error = %v", err)
	}
	if cfg.BaseURL != llm.DefaultOllamaURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, llm.DefaultOllamaURL)
	}
	if err := RequireAPIKey(cfg); err != nil {
		t.Errorf("RequireAPIKey(ollama) = %v, want nil", err)
	}
}

func TestResolveAPIKey_Precedence(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	key, src := ResolveAPIKey(llm.ProviderOpenAI)
	if key != "sk-env" || src != KeySourceEnv {
		t.Errorf("env only: got %q/%s", key, src)
	}

	viper.Set("llm.apiKeys.openai", "sk-config")
	key, src = ResolveAPIKey(llm.ProviderOpenAI)
	if key != "sk-config" || src != KeySourceConfig {
		t.Errorf("per-provider config should win: got %q/%s", key, src)
	}
}

func TestResolveAPIKey_GeminiFallsBackToGoogleKey(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("GOOGLE_API_KEY", "g-key")

	key, src := ResolveAPIKey(llm.ProviderGemini)
	if key != "g-key" || src != KeySourceEnv {
		t.Errorf("ResolveAPIKey(gemini) = %q/%s", key, src)
	}
}

func TestResolveAPIKey_None(t *testing.T) {
	resetViperForTest(t)

	key, src := ResolveAPIKey(llm.ProviderXAI)
	if key != "" || src != KeySourceNone {
		t.Errorf("ResolveAPIKey() = %q/%s, want empty/none", key, src)
	}
}

func TestRequireAPIKey_NamesEnvVar(t *testing.T) {
	err := RequireAPIKey(llm.Config{Provider: llm.ProviderXAI})
	if err == nil {
		t.Fatal("RequireAPIKey() = nil, want error")
	}
	if !errors.Is(err, llm.ErrMissingAPIKey) {
		t.Errorf("error %v does not wrap ErrMissingAPIKey", err)
	}
	if !strings.Contains(err.Error(), "XAI_API_KEY") {
		t.Errorf("error %q should name XAI_API_KEY", err)
	}

	var mk *MissingKeyError
	if !errors.As(err, &mk) || mk.EnvVar != "XAI_API_KEY" {
		t.Errorf("errors.As MissingKeyError failed: %v", err)
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "(not set)"},
		{"short", "***"},
		{"xai-1234567890abcdef", "xai-...cdef"},
	}
	for _, tt := range tests {
		if got := MaskAPIKey(tt.in); got != tt.want {
			t.Errorf("MaskAPIKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
