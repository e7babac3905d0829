package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/josephgoksu/codecrew/internal/llm"
)

// GenerationSettings is the validated view of the LLM configuration.
type GenerationSettings struct {
	Provider    string        `validate:"required,oneof=xai openai anthropic gemini ollama"`
	Model       string        `validate:"required"`
	BaseURL     string        `validate:"omitempty,url"`
	MaxTokens   int           `validate:"gte=1,lte=200000"`
	Temperature float64       `validate:"gte=0,lte=2"`
	Timeout     time.Duration `validate:"gt=0"`
}

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// SettingsFromLLMConfig projects an llm.Config onto the validated settings.
func SettingsFromLLMConfig(cfg llm.Config) GenerationSettings {
	return GenerationSettings{
		Provider:    string(cfg.Provider),
		Model:       cfg.Model,
		BaseURL:     cfg.BaseURL,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     cfg.Timeout,
	}
}

// Validate checks settings and turns validator errors into one readable error.
func Validate(s GenerationSettings) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate settings: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
