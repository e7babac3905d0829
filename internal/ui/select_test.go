package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/codecrew/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestProviderSelectModel(t *testing.T) {
	m := providerSelectModel{options: []ProviderOption{{ID: "xai"}, {ID: "openai"}, {ID: "ollama"}}}

	var model tea.Model = m
	for _, k := range []string{"down", "down", "down", "up"} {
		model, _ = model.Update(key(k))
	}
	model, cmd := model.Update(key("enter"))

	got := model.(providerSelectModel)
	assert.Equal(t, "openai", got.selectedID)
	assert.False(t, got.quit)
	require.NotNil(t, cmd)
	assert.Contains(t, got.View(), "Select AI Provider")
}

func TestProviderSelectModel_Cancel(t *testing.T) {
	var model tea.Model = providerSelectModel{options: []ProviderOption{{ID: "xai"}}}
	model, _ = model.Update(key("esc"))
	assert.True(t, model.(providerSelectModel).quit)
}

func TestModelSelectModel_DefaultFirst(t *testing.T) {
	models := llm.GetModelsForProvider(llm.ProviderXAI)
	require.NotEmpty(t, models)

	var model tea.Model = modelSelectModel{provider: llm.ProviderXAI, models: models}
	model, _ = model.Update(key("enter"))
	assert.Equal(t, "grok-4-0709", model.(modelSelectModel).selectedID)

	var moved tea.Model = modelSelectModel{provider: llm.ProviderXAI, models: models}
	moved, _ = moved.Update(key("j"))
	moved, _ = moved.Update(key("enter"))
	assert.Equal(t, models[1].ID, moved.(modelSelectModel).selectedID)
	assert.Contains(t, moved.View(), "(default)")
}

func TestAPIKeyModel(t *testing.T) {
	var model tea.Model = newAPIKeyModel(llm.ProviderXAI)
	for _, r := range "xai-secret" {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	model, _ = model.Update(key("enter"))

	got := model.(apiKeyModel)
	assert.Equal(t, "xai-secret", got.value)
	assert.NotContains(t, got.View(), "xai-secret")
}

func TestBuildProviderOptions(t *testing.T) {
	t.Setenv("XAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	opts := buildProviderOptions()
	require.Len(t, opts, len(llm.SupportedProviders()))

	byID := map[string]ProviderOption{}
	for _, o := range opts {
		byID[o.ID] = o
	}
	assert.True(t, byID["openai"].HasAPIKey)
	assert.True(t, byID["ollama"].HasAPIKey)
	assert.Equal(t, "Local, private, free", byID["ollama"].Description)
	assert.Contains(t, byID["xai"].Description, "XAI_API_KEY not set")
}
