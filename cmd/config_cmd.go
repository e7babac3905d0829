package cmd

import (
	"fmt"

	"github.com/josephgoksu/codecrew/internal/config"
	"github.com/josephgoksu/codecrew/internal/llm"
	"github.com/josephgoksu/codecrew/internal/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or locate codecrew configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadLLMConfig()
		if err != nil {
			return err
		}
		cfg = cfg.WithDefaults()
		out := cmd.OutOrStdout()

		_, source := config.ResolveAPIKey(cfg.Provider)
		var key string
		switch {
		case !llm.RequiresAPIKey(string(cfg.Provider)):
			key = "not required"
		case cfg.APIKey != "":
			key = fmt.Sprintf("%s (%s)", config.MaskAPIKey(cfg.APIKey), source)
		default:
			key = fmt.Sprintf("not set (export %s)", llm.APIKeyEnvVar(string(cfg.Provider)))
		}

		file := viper.ConfigFileUsed()
		if file == "" {
			file = "none (defaults and environment)"
		}

		fmt.Fprintf(out, "Config file:  %s\n", file)
		fmt.Fprintf(out, "Provider:     %s\n", cfg.Provider)
		fmt.Fprintf(out, "Model:        %s\n", cfg.Model)
		fmt.Fprintf(out, "API key:      %s\n", key)
		if cfg.BaseURL != "" {
			fmt.Fprintf(out, "Base URL:     %s\n", cfg.BaseURL)
		}
		fmt.Fprintf(out, "Max tokens:   %d\n", cfg.MaxTokens)
		fmt.Fprintf(out, "Temperature:  %.2f\n", cfg.Temperature)
		fmt.Fprintf(out, "Timeout:      %s\n", cfg.Timeout)
		fmt.Fprintf(out, "Output dir:   %s\n", viper.GetString("output.dir"))
		fmt.Fprintf(out, "Auto save:    %t\n", viper.GetBool("output.autoSave"))
		fmt.Fprintf(out, "Telemetry:    %t\n", telemetryEnabled())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the global config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetGlobalConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configTelemetryCmd = &cobra.Command{
	Use:       "telemetry on|off",
	Short:     "Opt in to or out of anonymous usage telemetry",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled := args[0] == "on"
		if _, err := telemetry.SetEnabled(enabled); err != nil {
			return err
		}
		if enabled {
			fmt.Fprintln(cmd.OutOrStdout(), "Telemetry enabled. Only event names, provider, model, language, score and timing are sent.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Telemetry disabled.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configPathCmd, configTelemetryCmd)
}

func telemetryEnabled() bool {
	if viper.IsSet("telemetry.enabled") {
		return viper.GetBool("telemetry.enabled")
	}
	cfg, err := telemetry.Load()
	return err == nil && cfg.IsEnabled()
}
