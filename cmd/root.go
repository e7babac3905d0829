/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/josephgoksu/codecrew/internal/config"
	"github.com/josephgoksu/codecrew/internal/logger"
	"github.com/josephgoksu/codecrew/internal/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version, overridden at build time.
	version = "0.1.0"

	rootOpts generateOptions
)

// rootCmd represents the base command. Given a goal it runs the generation pipeline.
var rootCmd = &cobra.Command{
	Use:   "codecrew [goal]",
	Short: "codecrew - a crew of AI agents that plans, writes, reviews and tests code",
	Long: `codecrew turns a one-line programming goal into working code.

Four agents run in sequence:
  planner  breaks the goal into tasks
  coder    writes the code
  critic   reviews it and scores it 1-10
  tester   writes unit tests for it`,
	Example: `  codecrew "Create a function to validate email addresses"
  codecrew "Build a REST API for user management" --save user_api
  codecrew "Implement binary search" --show-code --show-tests
  codecrew --provider openai --model gpt-4.1-mini "Parse CSV files" --json`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			printBanner(cmd.OutOrStdout())
			return nil
		}
		return runGenerate(cmd, args, rootOpts)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer logger.HandlePanic()

	err := rootCmd.Execute()
	_ = telemetry.Shutdown()
	if err != nil {
		PrintError(userMessage(err), err)
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	cobra.OnInitialize(InitConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.codecrew.yaml or ~/.codecrew/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.StringP("provider", "p", "", "LLM provider (xai, openai, anthropic, gemini, ollama)")
	flags.StringP("model", "m", "", "model ID (defaults to the provider's default model)")
	flags.Float64("temperature", 0, "sampling temperature (default 0.7)")
	flags.Int("max-tokens", 0, "completion token budget per agent call (default 2000)")
	flags.String("log-format", "", "log format: text or json")

	bindPersistentFlags()

	addGenerateFlags(rootCmd, &rootOpts)
}

// bindPersistentFlags binds the persistent flags to their viper keys.
func bindPersistentFlags() {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("llm.provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("llm.model", flags.Lookup("model"))
	_ = viper.BindPFlag("llm.temperature", flags.Lookup("temperature"))
	_ = viper.BindPFlag("llm.maxTokens", flags.Lookup("max-tokens"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
}

// setupRun configures logging, crash context and telemetry before any command runs.
func setupRun(cmd *cobra.Command, args []string) error {
	if _, err := logger.Setup(cmd.ErrOrStderr(), viper.GetBool("verbose"), viper.GetString("log.format")); err != nil {
		return err
	}

	logger.SetVersion(version)
	logger.SetCommand(strings.TrimSpace(cmd.CommandPath()))
	if dir, err := config.GetGlobalConfigDir(); err == nil {
		logger.SetBasePath(dir)
	}

	var enabled *bool
	if viper.IsSet("telemetry.enabled") {
		v := viper.GetBool("telemetry.enabled")
		enabled = &v
	}
	if err := telemetry.Init(version, enabled); err != nil {
		LogError("telemetry disabled", err)
	}
	return nil
}

func printBanner(w io.Writer) {
	fmt.Fprintln(w, "🤖 codecrew - Multi-Agent Code Generator")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, `  codecrew "Create a function to validate email addresses"`)
	fmt.Fprintln(w, `  codecrew "Build a REST API for user management" --save user_api`)
	fmt.Fprintln(w, `  codecrew "Implement binary search" --show-code --show-tests`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Setup:")
	fmt.Fprintln(w, "  export XAI_API_KEY=your-xai-key")
	fmt.Fprintln(w, "  or run: codecrew init")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `Run "codecrew --help" for all commands and flags.`)
}
