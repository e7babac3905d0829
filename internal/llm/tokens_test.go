package llm

import (
	"testing"

	"github.com/cloudwego/eino/schema"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestUsageFromMessage_ProviderReported(t *testing.T) {
	out := &schema.Message{
		Role:    schema.Assistant,
		Content: "ok",
		ResponseMeta: &schema.ResponseMeta{
			Usage: &schema.TokenUsage{PromptTokens: 120, CompletionTokens: 30, TotalTokens: 150},
		},
	}
	u := UsageFromMessage(nil, out)
	if u.PromptTokens != 120 || u.CompletionTokens != 30 || u.Estimated {
		t.Errorf("UsageFromMessage() = %+v, want reported usage", u)
	}
	if u.TotalTokens() != 150 {
		t.Errorf("TotalTokens() = %d, want 150", u.TotalTokens())
	}
}

func TestUsageFromMessage_Estimated(t *testing.T) {
	in := []*schema.Message{schema.SystemMessage("12345678"), schema.UserMessage("1234")}
	out := &schema.Message{Role: schema.Assistant, Content: "12345678"}

	u := UsageFromMessage(in, out)
	if !u.Estimated {
		t.Error("expected estimated usage")
	}
	if u.PromptTokens != 3 || u.CompletionTokens != 2 {
		t.Errorf("UsageFromMessage() = %+v, want 3/2", u)
	}
}

func TestUsageAdd(t *testing.T) {
	a := Usage{PromptTokens: 1, CompletionTokens: 2}
	b := Usage{PromptTokens: 10, CompletionTokens: 20, Estimated: true}
	sum := a.Add(b)
	if sum.PromptTokens != 11 || sum.CompletionTokens != 22 || !sum.Estimated {
		t.Errorf("Add() = %+v", sum)
	}
}
