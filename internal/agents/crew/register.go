package crew

import (
	"github.com/josephgoksu/codecrew/internal/agents/core"
	"github.com/josephgoksu/codecrew/internal/llm"
)

// Agent IDs, in pipeline order.
const (
	AgentPlanner = "planner"
	AgentCoder   = "coder"
	AgentCritic  = "critic"
	AgentTester  = "tester"
)

func init() {
	core.RegisterAgent(AgentPlanner, func(cfg llm.Config) core.Agent { return NewPlannerAgent(cfg) },
		"Planner", "Breaks the goal into 3-5 prioritized micro-tasks")
	core.RegisterAgent(AgentCoder, func(cfg llm.Config) core.Agent { return NewCoderAgent(cfg) },
		"Coder", "Writes the code for the planned tasks")
	core.RegisterAgent(AgentCritic, func(cfg llm.Config) core.Agent { return NewCriticAgent(cfg) },
		"Critic", "Reviews the code and scores it from 1 to 10")
	core.RegisterAgent(AgentTester, func(cfg llm.Config) core.Agent { return NewTesterAgent(cfg) },
		"Tester", "Writes unit tests for the generated code")
}
