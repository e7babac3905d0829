package crew

import (
	"context"

	"github.com/josephgoksu/codecrew/internal/agents/core"
	"github.com/josephgoksu/codecrew/internal/config"
	"github.com/josephgoksu/codecrew/internal/llm"
)

// TesterAgent writes unit tests for the generated code.
type TesterAgent struct {
	core.BaseAgent
}

// NewTesterAgent creates a new tester agent.
func NewTesterAgent(cfg llm.Config) *TesterAgent {
	return &TesterAgent{
		BaseAgent: core.NewBaseAgent(AgentTester, "Writes unit tests covering behaviour, edge cases and errors", cfg),
	}
}

// Run executes the agent. It reads code, language and description from the context;
// Output.Value is TestSuite.
func (a *TesterAgent) Run(ctx context.Context, input core.Input) (core.Output, error) {
	chain, err := core.BuildChain[string](ctx, &a.BaseAgent,
		config.SystemPromptTesterAgent, config.UserPromptTesterAgent, core.TextParser)
	if err != nil {
		return core.Output{AgentName: a.Name(), Error: err}, err
	}

	code, _ := core.ContextValue[string](input, core.ContextCode)
	language, _ := core.ContextValue[string](input, core.ContextLanguage)
	description, _ := core.ContextValue[string](input, core.ContextDescription)

	res, duration, err := chain.Invoke(ctx, map[string]any{
		"Code":     code,
		"Language": language,
	})
	if err != nil {
		return core.Output{AgentName: a.Name(), Error: err, Duration: duration}, err
	}

	testCode, _ := ExtractCode(res.Value)
	suite := TestSuite{
		TestCode:    testCode,
		Language:    language,
		Description: "Tests for " + description,
	}
	return core.BuildOutput(a.Name(), res, suite, duration), nil
}
