// Package logger provides structured logging setup and crash recovery for codecrew.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

const (
	// CrashLogDir is the directory for crash logs relative to the base path.
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is the maximum number of crash logs to keep.
	MaxCrashLogs = 10

	defaultBasePath = ".codecrew"
)

// crashFS is where crash logs are written. Tests swap it for a memory fs.
var crashFS afero.Fs = afero.NewOsFs()

// CrashContext stores what was running when a panic happened.
type CrashContext struct {
	mu       sync.RWMutex
	goal     string
	step     string
	prompt   string
	provider string
	model    string
	command  string
	version  string
	basePath string
}

var globalContext = &CrashContext{}

// SetBasePath sets the directory crash logs are written under (typically ~/.codecrew).
func SetBasePath(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.basePath = path
}

// SetVersion sets the application version for crash logs.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand sets the command line being executed.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
}

// SetModel records the provider and model in use.
func SetModel(provider, model string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.provider = provider
	globalContext.model = model
}

// SetGoal records the goal of the current run.
func SetGoal(goal string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.goal = truncateForLog(strings.TrimSpace(goal), 500)
}

// SetStep records the pipeline step in flight and the prompt it sent.
func SetStep(step, prompt string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.step = step
	globalContext.prompt = truncateForLog(prompt, 2000)
}

func truncateForLog(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashLog is one crash report.
type CrashLog struct {
	Timestamp  time.Time
	Version    string
	Command    string
	Provider   string
	Model      string
	Step       string
	PanicValue string
	StackTrace string
	Goal       string
	Prompt     string
	GoVersion  string
	OS         string
	Arch       string
}

// HandlePanic recovers from a panic, writes a crash log and exits with status 1.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	if r := recover(); r != nil {
		reportCrash(os.Stderr, r)
		os.Exit(1)
	}
}

func reportCrash(w io.Writer, panicValue any) {
	log := createCrashLog(panicValue)
	path, err := writeCrashLog(log)
	if err != nil {
		fmt.Fprintf(w, "\n[CRASH] Failed to write crash log: %v\n", err)
		fmt.Fprintf(w, "[CRASH] Panic: %v\n%s\n", panicValue, log.StackTrace)
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╭──────────────────────────────────────────────────────╮")
	fmt.Fprintln(w, "│ 🔴 codecrew encountered an unexpected error          │")
	fmt.Fprintln(w, "╰──────────────────────────────────────────────────────╯")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A crash log has been saved to:")
	fmt.Fprintf(w, "  %s\n\n", path)
}

func createCrashLog(panicValue any) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		Version:    globalContext.version,
		Command:    globalContext.command,
		Provider:   globalContext.provider,
		Model:      globalContext.model,
		Step:       globalContext.step,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		Goal:       globalContext.goal,
		Prompt:     globalContext.prompt,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

// writeCrashLog writes log to disk and returns its path.
func writeCrashLog(log CrashLog) (string, error) {
	dir := getCrashLogDir()
	if err := crashFS.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}

	path := getCrashLogPath(log.Timestamp)
	if err := afero.WriteFile(crashFS, path, []byte(formatCrashLog(log)), 0o600); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}

	// Non-fatal: the new log is already on disk.
	if err := cleanOldCrashLogs(dir); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to clean old crash logs: %v\n", err)
	}
	return path, nil
}

func getCrashLogDir() string {
	globalContext.mu.RLock()
	basePath := globalContext.basePath
	globalContext.mu.RUnlock()

	if basePath == "" {
		basePath = defaultBasePath
	}
	return filepath.Join(basePath, CrashLogDir)
}

func getCrashLogPath(t time.Time) string {
	return filepath.Join(getCrashLogDir(), fmt.Sprintf("crash_%s.log", t.Format("20060102_150405")))
}

func formatCrashLog(log CrashLog) string {
	var sb strings.Builder
	heavy := strings.Repeat("=", 80)

	section := func(title, body string) {
		sb.WriteString("\n" + strings.Repeat("-", 80) + "\n")
		sb.WriteString(title + "\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			sb.WriteString("\n")
		}
	}

	sb.WriteString(heavy + "\nCODECREW CRASH LOG\n" + heavy + "\n\n")
	fmt.Fprintf(&sb, "Timestamp: %s\n", log.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Version:   %s\n", log.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", log.Command)
	if log.Provider != "" {
		fmt.Fprintf(&sb, "Model:     %s/%s\n", log.Provider, log.Model)
	}
	if log.Step != "" {
		fmt.Fprintf(&sb, "Step:      %s\n", log.Step)
	}
	fmt.Fprintf(&sb, "Go:        %s\n", log.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:   %s/%s\n", log.OS, log.Arch)

	section("PANIC VALUE", log.PanicValue)
	section("STACK TRACE", log.StackTrace)
	if log.Goal != "" {
		section("GOAL", log.Goal)
	}
	if log.Prompt != "" {
		section("LAST LLM PROMPT", log.Prompt)
	}

	sb.WriteString("\n" + heavy + "\nEND OF CRASH LOG\n" + heavy + "\n")
	return sb.String()
}

// cleanOldCrashLogs removes the oldest logs beyond MaxCrashLogs.
func cleanOldCrashLogs(dir string) error {
	logs, err := listCrashLogs(dir)
	if err != nil || len(logs) <= MaxCrashLogs {
		return err
	}

	// Names embed the timestamp, so lexical order is chronological.
	for _, path := range logs[:len(logs)-MaxCrashLogs] {
		if err := crashFS.Remove(path); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

func listCrashLogs(dir string) ([]string, error) {
	entries, err := afero.ReadDir(crashFS, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(logs)
	return logs, nil
}
