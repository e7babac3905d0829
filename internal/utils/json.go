package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Pre-compiled regexes for JSON repair.
// They cover the syntax slips models make most often; deeply nested breakage is out of reach.
var (
	// "value"\n"key": -> "value", "key":
	missingCommaBeforeKeyRegex = regexp.MustCompile(`(")\s*\n\s*("[\w][^"]*"\s*:)`)

	// 7\n"key": -> 7, "key":
	missingCommaAfterValueRegex = regexp.MustCompile(`(\d|true|false|null)\s*\n\s*("[\w][^"]*"\s*:)`)

	// } "key" -> }, "key"
	missingCommaAfterBraceRegex = regexp.MustCompile(`([}\]])\s*\n?\s*("[\w])`)

	// ,} -> }
	trailingCommaRegex = regexp.MustCompile(`,\s*([}\]])`)

	// {'key': -> {"key":
	singleQuoteKeyRegex = regexp.MustCompile(`([{,]\s*)'(\w+)'(\s*:)`)

	// : 'value' -> : "value"
	singleQuoteValueRegex = regexp.MustCompile(`(:\s*)'((?:[^'\\]|\\.)*)'(\s*[,}\]])`)

	// {"priority": high} -> {"priority": "high"}
	unquotedValueRegex = regexp.MustCompile(`(:\s*)([a-zA-Z][a-zA-Z0-9_-]*)(\s*[,}\]])`)

	// ```json ... ``` anywhere in the response
	fencedBlockRegex = regexp.MustCompile("(?s)```[a-zA-Z0-9_+-]*[ \t]*\n?(.*?)```")
)

// ExtractAndParseJSON extracts JSON from LLM responses and unmarshals it.
// Leading prose, markdown fences and trailing text are ignored.
// Common LLM syntax errors are repaired before giving up.
func ExtractAndParseJSON[T any](response string) (T, error) {
	var result T

	cleaned := cleanLLMResponse(response)
	if cleaned == "" {
		return result, fmt.Errorf("no JSON found in response")
	}

	idx := strings.IndexAny(cleaned, "{[")
	if idx == -1 {
		// A JSON-encoded string wrapping the payload.
		var asString string
		if err := json.Unmarshal([]byte(cleaned), &asString); err == nil && asString != cleaned {
			return ExtractAndParseJSON[T](asString)
		}
		return result, fmt.Errorf("no JSON start ({ or [) found")
	}

	// Decoder reads a single value, so {"a":1} followed by prose still parses.
	jsonPart := cleaned[idx:]
	if err := decodeFirst(jsonPart, &result); err != nil {
		repaired := repairJSON(jsonPart)
		if repaired != jsonPart {
			var retry T
			if decodeFirst(repaired, &retry) == nil {
				return retry, nil
			}
		}

		if strings.Contains(jsonPart, `\"`) {
			unescaped := strings.ReplaceAll(jsonPart, `\"`, `"`)
			unescaped = strings.ReplaceAll(unescaped, `\n`, "\n")
			var retry T
			if decodeFirst(unescaped, &retry) == nil {
				return retry, nil
			}
			if decodeFirst(repairJSON(unescaped), &retry) == nil {
				return retry, nil
			}
		}
		return result, fmt.Errorf("parse JSON: %w", err)
	}

	return result, nil
}

func decodeFirst(s string, v any) error {
	return json.NewDecoder(strings.NewReader(s)).Decode(v)
}

// repairJSON attempts to fix common JSON syntax errors from LLMs.
func repairJSON(input string) string {
	result := sanitizeControlChars(input)

	result = missingCommaBeforeKeyRegex.ReplaceAllString(result, `$1, $2`)
	result = missingCommaAfterValueRegex.ReplaceAllString(result, `$1, $2`)
	result = missingCommaAfterBraceRegex.ReplaceAllString(result, `$1, $2`)
	result = trailingCommaRegex.ReplaceAllString(result, `$1`)
	result = singleQuoteKeyRegex.ReplaceAllString(result, `$1"$2"$3`)

	result = singleQuoteValueRegex.ReplaceAllStringFunc(result, func(match string) string {
		parts := singleQuoteValueRegex.FindStringSubmatch(match)
		if len(parts) != 4 {
			return match
		}
		value := strings.ReplaceAll(parts[2], `\'`, `'`)
		value = strings.ReplaceAll(value, `"`, `\"`)
		return parts[1] + `"` + value + `"` + parts[3]
	})

	result = unquotedValueRegex.ReplaceAllStringFunc(result, func(match string) string {
		parts := unquotedValueRegex.FindStringSubmatch(match)
		if len(parts) != 4 {
			return match
		}
		switch parts[2] {
		case "true", "false", "null":
			return match
		}
		return parts[1] + `"` + parts[2] + `"` + parts[3]
	})

	return fixTruncatedJSON(result)
}

// sanitizeControlChars escapes raw control characters inside JSON strings
// and doubles backslashes that do not start a valid JSON escape (regexes, Windows paths).
func sanitizeControlChars(input string) string {
	var b strings.Builder
	b.Grow(len(input))

	inString := false
	for i := 0; i < len(input); i++ {
		c := input[i]

		if !inString {
			if c == '"' {
				inString = true
			}
			b.WriteByte(c)
			continue
		}

		switch {
		case c == '\\':
			if i+1 < len(input) && isValidEscape(input[i+1:]) {
				b.WriteByte(c)
				b.WriteByte(input[i+1])
				i++
			} else {
				b.WriteString(`\\`)
			}
		case c == '"':
			inString = false
			b.WriteByte(c)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c < 0x20:
			fmt.Fprintf(&b, `\u%04x`, c)
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// isValidEscape reports whether rest (the text after a backslash) begins a JSON escape.
func isValidEscape(rest string) bool {
	switch rest[0] {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return true
	case 'u':
		if len(rest) < 5 {
			return false
		}
		for _, h := range rest[1:5] {
			if !strings.ContainsRune("0123456789abcdefABCDEF", h) {
				return false
			}
		}
		return true
	}
	return false
}

// fixTruncatedJSON closes a string and any structures left open by a cut-off response.
func fixTruncatedJSON(input string) string {
	quoteCount := 0
	escaped := false
	for _, c := range input {
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			quoteCount++
		}
	}
	if quoteCount%2 != 0 {
		input += `"`
	}

	openBraces := strings.Count(input, "{") - strings.Count(input, "}")
	openBrackets := strings.Count(input, "[") - strings.Count(input, "]")
	for i := 0; i < openBrackets; i++ {
		input += "]"
	}
	for i := 0; i < openBraces; i++ {
		input += "}"
	}
	return input
}

// cleanLLMResponse returns the body of the first markdown fence when there is one,
// otherwise the trimmed response.
func cleanLLMResponse(response string) string {
	response = strings.TrimSpace(response)

	if m := fencedBlockRegex.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}
	// Unterminated fence from a truncated response.
	if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```json")
		response = strings.TrimPrefix(response, "```")
	}
	return strings.TrimSpace(response)
}
