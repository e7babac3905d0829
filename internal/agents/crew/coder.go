package crew

import (
	"context"

	"github.com/josephgoksu/codecrew/internal/agents/core"
	"github.com/josephgoksu/codecrew/internal/config"
	"github.com/josephgoksu/codecrew/internal/llm"
	"github.com/josephgoksu/codecrew/internal/utils"
)

// descriptionLength is how much of the goal the code description keeps.
const descriptionLength = 100

// CoderAgent writes code for the goal, guided by the planned tasks.
type CoderAgent struct {
	core.BaseAgent
}

// NewCoderAgent creates a new coder agent.
func NewCoderAgent(cfg llm.Config) *CoderAgent {
	return &CoderAgent{
		BaseAgent: core.NewBaseAgent(AgentCoder, "Writes the code for the planned tasks", cfg),
	}
}

// Run executes the agent. It reads []Task from core.ContextTasks; Output.Value is CodeResult.
func (a *CoderAgent) Run(ctx context.Context, input core.Input) (core.Output, error) {
	chain, err := core.BuildChain[string](ctx, &a.BaseAgent,
		config.SystemPromptCoderAgent, config.UserPromptCoderAgent, core.TextParser)
	if err != nil {
		return core.Output{AgentName: a.Name(), Error: err}, err
	}

	tasks, _ := core.ContextValue[[]Task](input, core.ContextTasks)
	res, duration, err := chain.Invoke(ctx, map[string]any{
		"Goal":  input.Goal,
		"Tasks": tasks,
	})
	if err != nil {
		return core.Output{AgentName: a.Name(), Error: err, Duration: duration}, err
	}

	code, fenceLang := ExtractCode(res.Value)
	result := CodeResult{
		Code:        code,
		Language:    resolveLanguage(code, fenceLang),
		Description: utils.Head(input.Goal, descriptionLength) + "...",
	}
	return core.BuildOutput(a.Name(), res, result, duration), nil
}
