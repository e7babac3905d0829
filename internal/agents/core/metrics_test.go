package core

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/josephgoksu/codecrew/internal/llm"
)

func TestAgentMetrics_RecordRun(t *testing.T) {
	m := NewAgentMetrics()

	m.RecordRun("planner", llm.Usage{PromptTokens: 10, CompletionTokens: 5}, 2*time.Second, nil)
	m.RecordRun("coder", llm.Usage{PromptTokens: 20, CompletionTokens: 80}, 4*time.Second, nil)
	m.RecordRun("coder", llm.Usage{}, time.Second, errors.New("boom"))

	s := m.GetSnapshot()
	if s.TotalRuns != 3 || s.TotalErrors != 1 || s.TotalTokens != 115 {
		t.Errorf("snapshot = %+v", s)
	}
	if s.AvgRunDuration != 7*time.Second/3 {
		t.Errorf("AvgRunDuration = %v", s.AvgRunDuration)
	}
	coder := s.AgentStats["coder"]
	if coder.Runs != 2 || coder.Errors != 1 || coder.Tokens != 100 || coder.Duration != 5*time.Second {
		t.Errorf("coder stats = %+v", coder)
	}

	out := s.String()
	for _, want := range []string{"Total Runs: 3", "coder: 2 runs, 1 errors, 100 tokens", "planner: 1 runs"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q:\n%s", want, out)
		}
	}
}

func TestAgentMetrics_Empty(t *testing.T) {
	s := NewAgentMetrics().GetSnapshot()
	if s.AvgRunDuration != 0 || len(s.AgentStats) != 0 {
		t.Errorf("empty snapshot = %+v", s)
	}
}

func TestContextValue(t *testing.T) {
	in := Input{ExistingContext: map[string]any{ContextLanguage: "go"}}

	if v, ok := ContextValue[string](in, ContextLanguage); !ok || v != "go" {
		t.Errorf("ContextValue() = %q, %v", v, ok)
	}
	if _, ok := ContextValue[int](in, ContextLanguage); ok {
		t.Error("wrong type should not match")
	}
	if _, ok := ContextValue[string](Input{}, ContextCode); ok {
		t.Error("nil context should not match")
	}
}
