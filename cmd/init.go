package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/codecrew/internal/config"
	"github.com/josephgoksu/codecrew/internal/llm"
	"github.com/josephgoksu/codecrew/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// isInteractive reports whether init may prompt. Tests force it off.
var isInteractive = ui.IsInteractive

// Prompts used by init on a terminal. Tests replace them.
var (
	promptLLMSelection = ui.PromptLLMSelection
	promptAPIKey       = ui.PromptAPIKey
)

var initAPIKey string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Configure the LLM provider, model and API key",
	Long: `Writes the provider, model and API key to ~/.codecrew/config.yaml.

On a terminal you pick the provider and model from a list. Otherwise pass them
with --provider, --model and --api-key.`,
	Example: `  codecrew init
  codecrew init --provider openai --model gpt-4.1-mini --api-key sk-...
  codecrew init --provider ollama`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initAPIKey, "api-key", "", "API key to store for the provider")
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	flags := cmd.Flags()
	provider := strings.TrimSpace(viper.GetString("llm.provider"))
	model := strings.TrimSpace(viper.GetString("llm.model"))
	key := strings.TrimSpace(initAPIKey)

	// The picker is skipped only when the choice was given on the command line,
	// not when it comes from an earlier init.
	interactive := isInteractive() && !flags.Changed("provider") && !flags.Changed("model")
	if interactive {
		ui.RenderPageHeader(out, "codecrew init", "Choose the model your agents will use")
		sel, err := promptLLMSelection()
		if err != nil {
			return err
		}
		provider, model = sel.Provider, sel.Model
	} else if !flags.Changed("provider") && flags.Changed("model") {
		if inferred, ok := llm.InferProvider(model); ok {
			provider = inferred
		}
	}
	if provider == "" {
		provider = llm.DefaultProvider
	}
	if !interactive && !flags.Changed("model") {
		if inferred, ok := llm.InferProvider(model); ok && inferred != provider {
			model = ""
		}
	}
	if _, err := llm.ValidateProvider(provider); err != nil {
		return err
	}

	if key == "" && llm.RequiresAPIKey(provider) {
		if existing, _ := config.ResolveAPIKey(llm.Provider(provider)); existing == "" && interactive {
			entered, err := promptAPIKey(provider)
			if err != nil {
				return err
			}
			key = entered
		}
	}

	path, err := config.SaveGlobalLLMConfig(provider, model, key)
	if err != nil {
		return err
	}

	if model == "" {
		model = llm.DefaultModelForProvider(provider)
	}
	lines := []string{
		fmt.Sprintf("Provider: %s", provider),
		fmt.Sprintf("Model:    %s", model),
	}
	switch {
	case key != "":
		lines = append(lines, fmt.Sprintf("API key:  %s", config.MaskAPIKey(key)))
	case llm.RequiresAPIKey(provider):
		lines = append(lines, fmt.Sprintf("API key:  not stored, set %s", llm.APIKeyEnvVar(provider)))
	}
	lines = append(lines, fmt.Sprintf("Saved to: %s", path))

	fmt.Fprintln(out, ui.RenderSuccessPanel("✅ Configuration saved", strings.Join(lines, "\n")))
	return nil
}
