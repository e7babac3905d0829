package cmd

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/codecrew/internal/artifact"
	"github.com/josephgoksu/codecrew/internal/config"
	"github.com/josephgoksu/codecrew/internal/telemetry"
	"github.com/muesli/termenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// cmdEnv holds the captured output and fakes of one command test.
type cmdEnv struct {
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	home   string
	fs     afero.Fs
}

// setupCmdTest isolates viper, flags, the config directory and output for one test.
func setupCmdTest(t *testing.T) *cmdEnv {
	t.Helper()

	viper.Reset()
	bindPersistentFlags()
	resetFlags(rootCmd)

	env := &cmdEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		home:   t.TempDir(),
		fs:     afero.NewMemMapFs(),
	}
	t.Setenv("HOME", env.home)
	for _, name := range []string{"XAI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		t.Setenv(name, "")
	}

	prevConfigDir := config.GetGlobalConfigDir
	config.GetGlobalConfigDir = func() (string, error) { return filepath.Join(env.home, ".codecrew"), nil }
	telemetry.SetConfigDir(filepath.Join(env.home, ".codecrew"))

	prevModel, prevStore, prevInteractive, prevStderr := newChatModel, artifactStore, isInteractive, errStderr
	prevSelect, prevKey := promptLLMSelection, promptAPIKey
	artifactStore = func() *artifact.Store { return artifact.NewStore(env.fs, "out") }
	isInteractive = func() bool { return false }
	errStderr = env.stderr

	prevLogger := slog.Default()
	lipgloss.SetColorProfile(termenv.Ascii)

	rootCmd.SetOut(env.stdout)
	rootCmd.SetErr(env.stderr)

	t.Cleanup(func() {
		viper.Reset()
		bindPersistentFlags()
		resetFlags(rootCmd)
		config.GetGlobalConfigDir = prevConfigDir
		telemetry.SetConfigDir("")
		_ = telemetry.Shutdown()
		newChatModel, artifactStore, isInteractive, errStderr = prevModel, prevStore, prevInteractive, prevStderr
		promptLLMSelection, promptAPIKey = prevSelect, prevKey
		slog.SetDefault(prevLogger)
		rootCmd.SetArgs(nil)
	})
	return env
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args.
func execute(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
