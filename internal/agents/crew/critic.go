package crew

import (
	"context"
	"log/slog"
	"math"

	"github.com/josephgoksu/codecrew/internal/agents/core"
	"github.com/josephgoksu/codecrew/internal/config"
	"github.com/josephgoksu/codecrew/internal/llm"
)

// Score bounds for a review.
const (
	MinScore = 1
	MaxScore = 10
)

// CriticAgent reviews generated code and scores it.
type CriticAgent struct {
	core.BaseAgent
}

// NewCriticAgent creates a new critic agent.
func NewCriticAgent(cfg llm.Config) *CriticAgent {
	return &CriticAgent{
		BaseAgent: core.NewBaseAgent(AgentCritic, "Reviews the code for bugs, security and quality issues", cfg),
	}
}

// FallbackReview is the verdict used when the model's reply cannot be parsed.
func FallbackReview() Review {
	return Review{
		Score:       7,
		Issues:      []string{"Could not parse review"},
		Suggestions: []string{"Manual review recommended"},
		Approved:    true,
	}
}

// Run executes the agent. It reads core.ContextCode and core.ContextLanguage; Output.Value is Review.
func (a *CriticAgent) Run(ctx context.Context, input core.Input) (core.Output, error) {
	chain, err := core.BuildChain[Review](ctx, &a.BaseAgent,
		config.SystemPromptCriticAgent, config.UserPromptCriticAgent, parseReview)
	if err != nil {
		return core.Output{AgentName: a.Name(), Error: err}, err
	}

	code, _ := core.ContextValue[string](input, core.ContextCode)
	language, _ := core.ContextValue[string](input, core.ContextLanguage)
	res, duration, err := chain.Invoke(ctx, map[string]any{
		"Code":     code,
		"Language": language,
	})
	if err != nil {
		return core.Output{AgentName: a.Name(), Error: err, Duration: duration}, err
	}

	review := res.Value
	if res.ParseErr != nil {
		slog.Debug("critic reply not parseable, using fallback review", "error", res.ParseErr)
		review = FallbackReview()
	}
	return core.BuildOutput(a.Name(), res, review, duration), nil
}

// parseReview reads the critic JSON. Scores are rounded and clamped to 1..10.
func parseReview(raw string) (Review, error) {
	parsed, err := core.ParseJSONResponse[struct {
		Score       float64  `json:"score"`
		Issues      []string `json:"issues"`
		Suggestions []string `json:"suggestions"`
		Approved    bool     `json:"approved"`
	}](raw)
	if err != nil {
		return Review{}, err
	}

	review := Review{
		Score:       clampScore(int(math.Round(parsed.Score))),
		Issues:      parsed.Issues,
		Suggestions: parsed.Suggestions,
		Approved:    parsed.Approved,
	}
	if review.Issues == nil {
		review.Issues = []string{}
	}
	if review.Suggestions == nil {
		review.Suggestions = []string{}
	}
	return review, nil
}

func clampScore(s int) int {
	if s < MinScore {
		return MinScore
	}
	if s > MaxScore {
		return MaxScore
	}
	return s
}
