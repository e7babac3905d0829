package crew

import (
	"regexp"
	"strings"
)

// Languages the detector and the artifact store know about.
const (
	LangPython     = "python"
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangJava       = "java"
	LangGo         = "go"
	LangRust       = "rust"
	LangRuby       = "ruby"
	LangCSharp     = "csharp"
	LangCPP        = "cpp"
)

var (
	// Whole response wrapped in one fence: ```lang\n ... ```
	wrappingFenceRegex = regexp.MustCompile("(?s)^```([\\w#+.-]*)[ \\t]*\\r?\\n(.*?)\\r?\\n?```$")

	goPackageRegex     = regexp.MustCompile(`(?m)^package \w+\s*$`)
	goFuncRegex        = regexp.MustCompile(`(?m)^func `)
	rustRegex          = regexp.MustCompile(`(?m)(^\s*(pub )?fn \w+|\blet mut\b|println!\(|^use std::|^impl\b)`)
	csharpRegex        = regexp.MustCompile(`(?m)(^using System\b|^namespace \w+|static void Main\(string\[\])`)
	javaRegex          = regexp.MustCompile(`(?m)(^import java\.|\bpublic class\b|System\.out\.print|public static void main\(String\[\])`)
	cppRegex           = regexp.MustCompile(`(?m)(^#include\s*[<"]|\bstd::)`)
	typescriptRegex    = regexp.MustCompile(`(?m)(\binterface \w+\s*\{|:\s*(string|number|boolean)\b|^export type\b)`)
	pythonRegex        = regexp.MustCompile(`(?m)(^\s*def \w+\(.*\)\s*(->\s*[^:]+)?:\s*$|^\s*(from [\w.]+ )?import \w+[\w., ]*$|^if __name__ ==)`)
	javascriptRegex    = regexp.MustCompile(`(\bfunction\b|\bconst\b|\blet\b|\bvar\b|=>|console\.log|module\.exports)`)
	rubyDefRegex       = regexp.MustCompile(`(?m)^\s*def \w+[^:\n]*$`)
	rubyEndRegex       = regexp.MustCompile(`(?m)^\s*end\s*$`)
	languageAliasTable = map[string]string{
		"py": LangPython, "python3": LangPython, "python": LangPython,
		"js": LangJavaScript, "javascript": LangJavaScript, "node": LangJavaScript, "jsx": LangJavaScript,
		"ts": LangTypeScript, "typescript": LangTypeScript, "tsx": LangTypeScript,
		"java": LangJava,
		"go":   LangGo, "golang": LangGo,
		"rs": LangRust, "rust": LangRust,
		"rb": LangRuby, "ruby": LangRuby,
		"cs": LangCSharp, "c#": LangCSharp, "csharp": LangCSharp,
		"cpp": LangCPP, "c++": LangCPP, "cxx": LangCPP,
	}
)

// ExtractCode strips a single markdown fence that wraps the whole response.
// It returns the code and the fence's language tag, normalized; the tag is empty when absent.
// Responses that are not wrapped lose only leading blank lines and trailing
// whitespace; indentation of the first line is kept.
func ExtractCode(raw string) (code, lang string) {
	m := wrappingFenceRegex.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil || strings.Contains(m[2], "```") {
		return strings.TrimRight(trimLeadingBlankLines(raw), " \t\r\n"), ""
	}
	return m[2], NormalizeLanguage(m[1])
}

func trimLeadingBlankLines(s string) string {
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 || strings.TrimSpace(s[:i]) != "" {
			return s
		}
		s = s[i+1:]
	}
}

// NormalizeLanguage maps fence tags and aliases to canonical language names.
func NormalizeLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if canonical, ok := languageAliasTable[tag]; ok {
		return canonical
	}
	return tag
}

// DetectLanguage guesses the language of code from keyword markers.
// Python is the fallback.
func DetectLanguage(code string) string {
	switch {
	case goPackageRegex.MatchString(code) && goFuncRegex.MatchString(code):
		return LangGo
	case rustRegex.MatchString(code):
		return LangRust
	case cppRegex.MatchString(code):
		return LangCPP
	case csharpRegex.MatchString(code):
		return LangCSharp
	case javaRegex.MatchString(code):
		return LangJava
	case pythonRegex.MatchString(code):
		return LangPython
	case rubyDefRegex.MatchString(code) && rubyEndRegex.MatchString(code):
		return LangRuby
	case typescriptRegex.MatchString(code) && javascriptRegex.MatchString(code):
		return LangTypeScript
	case javascriptRegex.MatchString(code):
		return LangJavaScript
	default:
		return LangPython
	}
}

// resolveLanguage prefers an explicit fence tag over detection.
func resolveLanguage(code, fenceLang string) string {
	if fenceLang != "" {
		return fenceLang
	}
	return DetectLanguage(code)
}
