package crew

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/josephgoksu/codecrew/internal/agents/core"
	"github.com/josephgoksu/codecrew/internal/config"
	"github.com/josephgoksu/codecrew/internal/llm"
)

// PlannerAgent breaks a goal into 3-5 micro-tasks.
// Call it with Input.Goal set; Output.Value is []Task.
type PlannerAgent struct {
	core.BaseAgent
}

// NewPlannerAgent creates a new planner agent.
func NewPlannerAgent(cfg llm.Config) *PlannerAgent {
	return &PlannerAgent{
		BaseAgent: core.NewBaseAgent(AgentPlanner, "Breaks the goal into 3-5 prioritized micro-tasks", cfg),
	}
}

// FallbackTasks is the plan used when the model's reply cannot be parsed.
func FallbackTasks() []Task {
	return []Task{
		{ID: "1", Task: "Analyze requirements", Priority: PriorityHigh},
		{ID: "2", Task: "Implement solution", Priority: PriorityHigh},
	}
}

// Run executes the agent.
func (a *PlannerAgent) Run(ctx context.Context, input core.Input) (core.Output, error) {
	chain, err := core.BuildChain[[]Task](ctx, &a.BaseAgent,
		config.SystemPromptPlannerAgent, config.UserPromptPlannerAgent, parsePlan)
	if err != nil {
		return core.Output{AgentName: a.Name(), Error: err}, err
	}

	res, duration, err := chain.Invoke(ctx, map[string]any{"Goal": input.Goal})
	if err != nil {
		return core.Output{AgentName: a.Name(), Error: err, Duration: duration}, err
	}

	tasks := res.Value
	if res.ParseErr != nil {
		slog.Debug("planner reply not parseable, using fallback plan", "error", res.ParseErr)
		tasks = FallbackTasks()
	}
	return core.BuildOutput(a.Name(), res, tasks, duration), nil
}

type rawTask struct {
	ID          any    `json:"id"`
	Task        string `json:"task"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

var errEmptyPlan = errors.New("plan has no tasks")

// parsePlan accepts a bare task array or an object with a "tasks" array.
func parsePlan(raw string) ([]Task, error) {
	items, err := core.ParseJSONResponse[[]rawTask](raw)
	if err != nil {
		wrapped, werr := core.ParseJSONResponse[struct {
			Tasks []rawTask `json:"tasks"`
		}](raw)
		if werr != nil {
			return nil, err
		}
		items = wrapped.Tasks
	}

	tasks := make([]Task, 0, len(items))
	for _, it := range items {
		text := firstNonEmpty(it.Task, it.Title, it.Description)
		if text == "" {
			continue
		}
		id := ""
		if it.ID != nil {
			id = strings.TrimSpace(fmt.Sprint(it.ID))
		}
		if id == "" {
			id = fmt.Sprint(len(tasks) + 1)
		}
		tasks = append(tasks, Task{ID: id, Task: text, Priority: normalizePriority(it.Priority)})
	}
	if len(tasks) == 0 {
		return nil, errEmptyPlan
	}
	return tasks, nil
}

func normalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case PriorityHigh, "critical", "p0", "p1":
		return PriorityHigh
	case PriorityLow, "p3":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
