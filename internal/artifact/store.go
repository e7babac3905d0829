// Package artifact writes generated code, tests and run metadata to disk.
package artifact

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/josephgoksu/codecrew/internal/agents/crew"
	"github.com/spf13/afero"
)

// DefaultNameLayout formats the timestamp used when no name is given.
const DefaultNameLayout = "20060102_150405"

var extensions = map[string]string{
	crew.LangPython:     ".py",
	crew.LangJavaScript: ".js",
	crew.LangJava:       ".java",
	crew.LangGo:         ".go",
	crew.LangTypeScript: ".ts",
	crew.LangRust:       ".rs",
	crew.LangRuby:       ".rb",
	crew.LangCSharp:     ".cs",
	crew.LangCPP:        ".cpp",
}

// ExtensionFor returns the file extension for a language, ".txt" when unknown.
func ExtensionFor(language string) string {
	if ext, ok := extensions[crew.NormalizeLanguage(language)]; ok {
		return ext
	}
	return ".txt"
}

// DefaultName returns generated_YYYYMMDD_HHMMSS for t.
func DefaultName(t time.Time) string {
	return "generated_" + t.Format(DefaultNameLayout)
}

// Saved lists the files a Save call wrote.
type Saved struct {
	CodePath  string `json:"code_path"`
	TestsPath string `json:"tests_path"`
	InfoPath  string `json:"info_path"`
}

// Paths returns the written paths in write order.
func (s Saved) Paths() []string {
	return []string{s.CodePath, s.TestsPath, s.InfoPath}
}

// Store writes artifacts below a base directory.
// Use afero.NewOsFs() for real output and afero.NewMemMapFs() in tests.
type Store struct {
	fs      afero.Fs
	baseDir string
	now     func() time.Time
}

// NewStore creates a store rooted at baseDir on fs.
func NewStore(fs afero.Fs, baseDir string) *Store {
	if baseDir == "" {
		baseDir = "."
	}
	return &Store{fs: fs, baseDir: baseDir, now: time.Now}
}

// NewOsStore creates a Store on the real filesystem.
func NewOsStore(baseDir string) *Store {
	return NewStore(afero.NewOsFs(), baseDir)
}

// Check validates name before any work is done, so a bad name fails
// before the pipeline spends model calls.
func (s *Store) Check(name string) error {
	base, err := s.resolve(name, "")
	if err != nil {
		return err
	}
	dir := filepath.Dir(base)
	info, err := s.fs.Stat(dir)
	if err == nil && !info.IsDir() {
		return fmt.Errorf("invalid output name %q: %s is not a directory", name, dir)
	}
	return nil
}

// Save writes <name><ext>, <name>_test<ext> and <name>_info.json.
// An empty name becomes a timestamped default. Relative names are placed
// under the base directory; absolute names are used as given.
// When a write fails the files already written are removed.
func (s *Store) Save(result *crew.Result, name string) (*Saved, error) {
	if result == nil {
		return nil, fmt.Errorf("save: nil result")
	}

	ext := ExtensionFor(result.Language)
	base, err := s.resolve(name, ext)
	if err != nil {
		return nil, err
	}
	if err := s.fs.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	saved := &Saved{
		CodePath:  base + ext,
		TestsPath: base + "_test" + ext,
		InfoPath:  base + "_info.json",
	}

	info, err := metadata(result)
	if err != nil {
		return nil, err
	}

	writes := []struct {
		path string
		data []byte
	}{
		{saved.CodePath, []byte(result.Code)},
		{saved.TestsPath, []byte(result.Tests)},
		{saved.InfoPath, info},
	}
	for i, w := range writes {
		if err := afero.WriteFile(s.fs, w.path, w.data, 0644); err != nil {
			for _, done := range writes[:i] {
				_ = s.fs.Remove(done.path)
			}
			return nil, fmt.Errorf("write %s: %w", w.path, err)
		}
	}
	return saved, nil
}

// resolve turns a user-supplied name into a base path without extension.
// A trailing extension matching ext is dropped.
func (s *Store) resolve(name, ext string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." {
		return filepath.Join(s.baseDir, DefaultName(s.now())), nil
	}
	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, string(filepath.Separator)) {
		return "", fmt.Errorf("invalid output name %q: must name a file, not a directory", name)
	}
	if trimmed := strings.TrimSuffix(name, ext); ext != "" && trimmed != "" {
		name = trimmed
	}
	clean := filepath.Clean(name)
	if leaf := filepath.Base(clean); leaf == "." || leaf == ".." || leaf == string(filepath.Separator) {
		return "", fmt.Errorf("invalid output name %q: must name a file, not a directory", name)
	}
	if filepath.IsAbs(clean) {
		return clean, nil
	}
	return filepath.Join(s.baseDir, clean), nil
}

// metadata is the result as indented JSON without the code and tests bodies.
func metadata(result *crew.Result) ([]byte, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	delete(fields, "code")
	delete(fields, "tests")

	out, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	return append(out, '\n'), nil
}
