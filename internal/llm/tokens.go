// Token accounting for LLM calls.
package llm

import "github.com/cloudwego/eino/schema"

// EstimateTokens provides a heuristic-based token count estimate for text.
// Uses the common approximation of ~4 characters per token, rounded up.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + 3) / 4
}

// Usage tracks tokens consumed across one or more calls.
type Usage struct {
	PromptTokens     int  `json:"prompt_tokens"`
	CompletionTokens int  `json:"completion_tokens"`
	Estimated        bool `json:"estimated,omitempty"` // true if any call lacked provider-reported usage
}

// TotalTokens returns prompt plus completion tokens.
func (u Usage) TotalTokens() int {
	return u.PromptTokens + u.CompletionTokens
}

// Add returns the sum of u and other.
func (u Usage) Add(other Usage) Usage {
	return Usage{
		PromptTokens:     u.PromptTokens + other.PromptTokens,
		CompletionTokens: u.CompletionTokens + other.CompletionTokens,
		Estimated:        u.Estimated || other.Estimated,
	}
}

// UsageFromMessage reads provider-reported usage off a response, falling back
// to character-based estimates over the request and response text.
func UsageFromMessage(input []*schema.Message, output *schema.Message) Usage {
	if output != nil && output.ResponseMeta != nil && output.ResponseMeta.Usage != nil {
		u := output.ResponseMeta.Usage
		if u.PromptTokens > 0 || u.CompletionTokens > 0 {
			return Usage{PromptTokens: u.PromptTokens, CompletionTokens: u.CompletionTokens}
		}
	}

	usage := Usage{Estimated: true}
	for _, m := range input {
		if m != nil {
			usage.PromptTokens += EstimateTokens(m.Content)
		}
	}
	if output != nil {
		usage.CompletionTokens = EstimateTokens(output.Content)
	}
	return usage
}
