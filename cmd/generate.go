package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/josephgoksu/codecrew/internal/agents/core"
	"github.com/josephgoksu/codecrew/internal/agents/crew"
	"github.com/josephgoksu/codecrew/internal/artifact"
	"github.com/josephgoksu/codecrew/internal/config"
	"github.com/josephgoksu/codecrew/internal/llm"
	"github.com/josephgoksu/codecrew/internal/telemetry"
	"github.com/josephgoksu/codecrew/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// generateOptions are the per-run output flags.
type generateOptions struct {
	save      string
	showCode  bool
	showTests bool
	json      bool
}

// newChatModel builds chat models for the pipeline. Tests replace it with a fake.
var newChatModel core.ModelFactory = llm.NewChatModel

// artifactStore returns where --save writes. Tests replace it with a memory-backed store.
var artifactStore = func() *artifact.Store {
	return artifact.NewOsStore(viper.GetString("output.dir"))
}

var generateOpts generateOptions

var generateCmd = &cobra.Command{
	Use:   "generate <goal>",
	Short: "Plan, write, review and test code for a goal",
	Long: `Runs the planner, coder, critic and tester agents for the goal and prints a summary.

The API key for the selected provider is read from the config file or its
environment variable (XAI_API_KEY for the default xai provider).`,
	Example: `  codecrew generate "Create a function to validate email addresses" --show-code
  codecrew generate "Implement an LRU cache" --save lru --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args, generateOpts)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addGenerateFlags(generateCmd, &generateOpts)
}

func addGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	cmd.Flags().StringVarP(&opts.save, "save", "s", "", "save code, tests and metadata under this base name")
	cmd.Flags().BoolVar(&opts.showCode, "show-code", false, "print the generated code")
	cmd.Flags().BoolVar(&opts.showTests, "show-tests", false, "print the generated tests")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the full result as JSON")
}

func runGenerate(cmd *cobra.Command, args []string, opts generateOptions) error {
	goal := strings.TrimSpace(strings.Join(args, " "))
	if goal == "" {
		return crew.ErrEmptyGoal
	}

	cfg, err := config.LoadLLMConfig()
	if err != nil {
		return err
	}
	if err := config.RequireAPIKey(cfg); err != nil {
		return err
	}

	saving := opts.save != "" || viper.GetBool("output.autoSave")
	store := artifactStore()
	if saving {
		if err := store.Check(opts.save); err != nil {
			return fmt.Errorf("save output: %w", err)
		}
	}

	// Graceful shutdown context listening for SIGINT (Ctrl+C)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	// Progress goes to stderr in JSON mode so stdout stays parseable.
	progressOut := cmd.OutOrStdout()
	if opts.json {
		progressOut = cmd.ErrOrStderr()
	}
	progress := ui.NewProgressReporter(progressOut)
	defer progress.Stop()

	pipeline, err := crew.NewPipeline(cfg, crew.WithReporter(progress), crew.WithModelFactory(newChatModel))
	if err != nil {
		return err
	}

	res, err := pipeline.Generate(ctx, goal)
	progress.Stop()
	if err != nil {
		trackFailure(cfg, err)
		return err
	}

	// A failed write is reported after the result is shown so the run is not lost.
	var savedPaths []string
	var saveErr error
	if saving {
		saved, err := store.Save(res, opts.save)
		if err != nil {
			saveErr = fmt.Errorf("save output: %w", err)
		} else {
			savedPaths = saved.Paths()
		}
	}

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		if len(savedPaths) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved: %s\n", strings.Join(savedPaths, ", "))
		}
	} else {
		ui.RenderSummary(out, res, ui.SummaryOptions{
			ShowCode:   opts.showCode,
			ShowTests:  opts.showTests,
			ShowPlan:   viper.GetBool("verbose"),
			SavedPaths: savedPaths,
		})
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(cmd.ErrOrStderr(), "\nAgent metrics:\n%s\n", pipeline.Metrics())
	}

	telemetry.Track(telemetry.EventGenerationCompleted, telemetry.Generation{
		Provider: res.Provider,
		Model:    res.Model,
		Language: res.Language,
		Score:    res.QualityScore,
		Approved: res.Approved,
		Tokens:   res.Usage.TotalTokens(),
		Duration: res.Duration,
	}.Properties())
	return saveErr
}

func trackFailure(cfg llm.Config, err error) {
	failure := telemetry.Failure{Provider: string(cfg.Provider), Model: cfg.Model, ErrorType: errorType(err)}
	var stepErr *crew.StepError
	if errors.As(err, &stepErr) {
		failure.Step = string(stepErr.Step)
	}
	telemetry.Track(telemetry.EventGenerationFailed, failure.Properties())
}
