package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/josephgoksu/codecrew/internal/agents/crew"
	"github.com/josephgoksu/codecrew/internal/config"
	"github.com/josephgoksu/codecrew/internal/llm"
	"github.com/josephgoksu/codecrew/internal/ui"
	"github.com/spf13/viper"
)

// errStderr is where errors are printed. Tests point it at a buffer.
var errStderr io.Writer = os.Stderr

// PrintError prints an error message without exiting, allowing for recovery.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		// In verbose mode, print the detailed, underlying technical error.
		fmt.Fprintln(errStderr, ui.StyleError.Render(fmt.Sprintf("Error: %v", technicalErr)))
		return
	}
	fmt.Fprintln(errStderr, userMsg)
}

// LogError logs an error only in verbose mode.
func LogError(msg string, err error) {
	if !viper.GetBool("verbose") {
		return
	}
	if err != nil {
		fmt.Fprintf(errStderr, "[DEBUG] %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(errStderr, "[DEBUG] %s\n", msg)
	}
}

// userMessage maps an error to the message shown without --verbose.
func userMessage(err error) string {
	var missing *config.MissingKeyError
	var stepErr *crew.StepError

	switch {
	case errors.As(err, &missing):
		return fmt.Sprintf("Error: set %s environment variable\n  export %s=your-key  (or run: codecrew init)", missing.EnvVar, missing.EnvVar)
	case errors.Is(err, crew.ErrEmptyGoal):
		return `Error: goal cannot be empty. Try: codecrew "Create a function to validate email addresses"`
	case errors.Is(err, llm.ErrUnsupportedProvider):
		return fmt.Sprintf("Error: %v", err)
	case errors.Is(err, context.Canceled):
		return "Cancelled."
	case errors.As(err, &stepErr):
		return fmt.Sprintf("Error: %s step failed: %s", stepErr.Step, firstLine(stepErr.Err.Error()))
	default:
		return "Error: " + firstLine(err.Error())
	}
}

// errorType is a coarse error category for telemetry. It never includes the message.
func errorType(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, llm.ErrMissingAPIKey):
		return "missing_api_key"
	case errors.Is(err, llm.ErrUnsupportedProvider):
		return "unsupported_provider"
	default:
		return "api_error"
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
