package utils

import (
	"testing"
)

type plannedTask struct {
	ID       string `json:"id"`
	Task     string `json:"task"`
	Priority string `json:"priority"`
}

type review struct {
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
	Approved    bool     `json:"approved"`
}

func TestExtractAndParseJSON_TaskArrays(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTasks int
		wantErr   bool
	}{
		{
			name:      "bare array",
			input:     `[{"id": "1", "task": "Parse input", "priority": "high"}]`,
			wantTasks: 1,
		},
		{
			name:      "json fence",
			input:     "```json\n[{\"id\": \"1\", \"task\": \"a\", \"priority\": \"high\"}, {\"id\": \"2\", \"task\": \"b\", \"priority\": \"low\"}]\n```",
			wantTasks: 2,
		},
		{
			name:      "prose around fence",
			input:     "Here is the plan:\n```json\n[{\"id\": \"1\", \"task\": \"a\", \"priority\": \"high\"}]\n```\nLet me know!",
			wantTasks: 1,
		},
		{
			name:      "trailing prose without fence",
			input:     `[{"id": "1", "task": "a", "priority": "medium"}] I hope this helps.`,
			wantTasks: 1,
		},
		{
			name:      "trailing comma",
			input:     `[{"id": "1", "task": "a", "priority": "medium"},]`,
			wantTasks: 1,
		},
		{
			name:      "unquoted priority",
			input:     `[{"id": "1", "task": "a", "priority": high}]`,
			wantTasks: 1,
		},
		{
			name:    "no json",
			input:   "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractAndParseJSON[[]plannedTask](tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ExtractAndParseJSON() expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractAndParseJSON() error = %v", err)
			}
			if len(got) != tt.wantTasks {
				t.Errorf("len = %d, want %d", len(got), tt.wantTasks)
			}
		})
	}
}

func TestExtractAndParseJSON_Review(t *testing.T) {
	input := `Review complete.
{
  "score": 8
  "issues": ["No input validation"],
  "suggestions": ["Add type hints",],
  "approved": true
}`

	got, err := ExtractAndParseJSON[review](input)
	if err != nil {
		t.Fatalf("ExtractAndParseJSON() error = %v", err)
	}
	if got.Score != 8 || !got.Approved {
		t.Errorf("got score=%d approved=%v", got.Score, got.Approved)
	}
	if len(got.Issues) != 1 || got.Issues[0] != "No input validation" {
		t.Errorf("Issues = %v", got.Issues)
	}
	if len(got.Suggestions) != 1 {
		t.Errorf("Suggestions = %v", got.Suggestions)
	}
}

func TestExtractAndParseJSON_Truncated(t *testing.T) {
	input := `{"score": 6, "issues": ["unbounded recursion`

	got, err := ExtractAndParseJSON[review](input)
	if err != nil {
		t.Fatalf("ExtractAndParseJSON() error = %v", err)
	}
	if got.Score != 6 || len(got.Issues) != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestExtractAndParseJSON_QuotedPayload(t *testing.T) {
	input := `"{\"score\": 9, \"approved\": true}"`

	got, err := ExtractAndParseJSON[review](input)
	if err != nil {
		t.Fatalf("ExtractAndParseJSON() error = %v", err)
	}
	if got.Score != 9 {
		t.Errorf("Score = %d, want 9", got.Score)
	}
}

func TestExtractAndParseJSON_InvalidEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"regex backslash-s", `{"issues": ["pattern ^\s+$ never matches tabs"]}`},
		{"regex backslash-d", `{"issues": ["use \d{3} instead"]}`},
		{"windows path", `{"issues": ["hardcoded C:\code\project path"]}`},
		{"bad unicode prefix", `{"issues": ["writes to C:\users\me"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractAndParseJSON[review](tt.input)
			if err != nil {
				t.Fatalf("ExtractAndParseJSON() error = %v", err)
			}
			if len(got.Issues) != 1 {
				t.Errorf("Issues = %v", got.Issues)
			}
		})
	}
}

func TestSanitizeControlChars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"invalid escape doubled", `{"k": "value\c"}`, `{"k": "value\\c"}`},
		{"valid escapes preserved", `{"k": "a\nb\tc"}`, `{"k": "a\nb\tc"}`},
		{"mixed", `{"k": "\n\s\t\d"}`, `{"k": "\n\\s\t\\d"}`},
		{"unicode escape preserved", `{"k": "\u00e9"}`, `{"k": "\u00e9"}`},
		{"escaped quote preserved", `{"k": "say \"hi\""}`, `{"k": "say \"hi\""}`},
		{"outside string unchanged", `{"k": "v"}\extra`, `{"k": "v"}\extra`},
		{"raw newline escaped", "{\"k\": \"a\nb\"}", `{"k": "a\nb"}`},
		{"raw tab escaped", "{\"k\": \"a\tb\"}", `{"k": "a\tb"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeControlChars(tt.input); got != tt.want {
				t.Errorf("sanitizeControlChars() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanLLMResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `  {"a":1}  `, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n[1]\n```", `[1]`},
		{"unterminated fence", "```json\n{\"a\":1", `{"a":1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanLLMResponse(tt.input); got != tt.want {
				t.Errorf("cleanLLMResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}
