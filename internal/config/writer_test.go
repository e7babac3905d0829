package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func withTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig := GetGlobalConfigDir
	GetGlobalConfigDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { GetGlobalConfigDir = orig })
	return dir
}

func readConfig(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := map[string]any{}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	return doc
}

func TestSaveGlobalLLMConfig_NewFile(t *testing.T) {
	withTempConfigDir(t)

	path, err := SaveGlobalLLMConfig("xai", "", "xai-secret:with#chars")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	doc := readConfig(t, path)
	llmSection := doc["llm"].(map[string]any)
	assert.Equal(t, "xai", llmSection["provider"])
	assert.Equal(t, "grok-4-0709", llmSection["model"])
	assert.Equal(t, "xai-secret:with#chars", llmSection["apiKeys"].(map[string]any)["xai"])
}

func TestSaveGlobalLLMConfig_PreservesOtherKeys(t *testing.T) {
	dir := withTempConfigDir(t)
	existing := "output:\n  dir: build\nllm:\n  provider: openai\n  apiKeys:\n    openai: sk-old\n"
	require.NoError(t, os.WriteFile(dir+"/config.yaml", []byte(existing), 0600))

	path, err := SaveGlobalLLMConfig("anthropic", "claude-haiku-4-5", "ant-key")
	require.NoError(t, err)

	doc := readConfig(t, path)
	assert.Equal(t, "build", doc["output"].(map[string]any)["dir"])

	llmSection := doc["llm"].(map[string]any)
	assert.Equal(t, "anthropic", llmSection["provider"])
	keys := llmSection["apiKeys"].(map[string]any)
	assert.Equal(t, "sk-old", keys["openai"])
	assert.Equal(t, "ant-key", keys["anthropic"])
}

func TestSaveGlobalLLMConfig_OllamaWithoutKey(t *testing.T) {
	withTempConfigDir(t)

	path, err := SaveGlobalLLMConfig("ollama", "llama3.2", "")
	require.NoError(t, err)

	llmSection := readConfig(t, path)["llm"].(map[string]any)
	_, hasKeys := llmSection["apiKeys"]
	assert.False(t, hasKeys)
}

func TestSaveGlobalLLMConfig_RejectsUnknownProvider(t *testing.T) {
	withTempConfigDir(t)

	_, err := SaveGlobalLLMConfig("skynet", "", "k")
	assert.Error(t, err)

	_, err = SaveGlobalLLMConfig("", "", "k")
	assert.Error(t, err)
}
