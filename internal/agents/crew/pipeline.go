package crew

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/josephgoksu/codecrew/internal/agents/core"
	"github.com/josephgoksu/codecrew/internal/llm"
	"github.com/josephgoksu/codecrew/internal/logger"
)

// ErrEmptyGoal is returned when Generate is called without a goal.
var ErrEmptyGoal = errors.New("goal cannot be empty")

// Step names one stage of the pipeline.
type Step string

const (
	StepPlan   Step = "plan"
	StepCode   Step = "code"
	StepReview Step = "review"
	StepTest   Step = "test"
)

// StepError reports which step a run failed in.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("%s: %v", e.Step, e.Err) }

func (e *StepError) Unwrap() error { return e.Err }

// Reporter receives progress while the pipeline runs.
type Reporter interface {
	Started(goal string)
	StepStarted(step Step)
	StepDone(step Step, detail string)
}

// NopReporter discards progress.
type NopReporter struct{}

func (NopReporter) Started(string)        {}
func (NopReporter) StepStarted(Step)      {}
func (NopReporter) StepDone(Step, string) {}

// Result is everything one run produced.
type Result struct {
	Prompt           string        `json:"prompt"`
	Tasks            []Task        `json:"tasks"`
	Code             string        `json:"code"`
	Language         string        `json:"language"`
	Description      string        `json:"description"`
	Review           Review        `json:"review"`
	Tests            string        `json:"tests"`
	TestsDescription string        `json:"tests_description"`
	QualityScore     int           `json:"quality_score"`
	Approved         bool          `json:"approved"`
	Usage            llm.Usage     `json:"usage"`
	EstimatedCostUSD float64       `json:"estimated_cost_usd"`
	Duration         time.Duration `json:"duration"`
	Provider         string        `json:"provider"`
	Model            string        `json:"model"`
	GeneratedAt      time.Time     `json:"generated_at"`
}

// MarshalJSON renders Duration as a human-readable string.
func (r Result) MarshalJSON() ([]byte, error) {
	type alias Result
	return json.Marshal(struct {
		alias
		Duration string `json:"duration"`
	}{alias: alias(r), Duration: r.Duration.Round(time.Millisecond).String()})
}

// Pipeline runs planner, coder, critic and tester in sequence.
type Pipeline struct {
	cfg      llm.Config
	planner  core.Agent
	coder    core.Agent
	critic   core.Agent
	tester   core.Agent
	reporter Reporter
	metrics  *core.AgentMetrics
	now      func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.reporter = r
		}
	}
}

// WithModelFactory replaces the chat-model factory of every agent.
func WithModelFactory(f core.ModelFactory) Option {
	return func(p *Pipeline) {
		for _, a := range []core.Agent{p.planner, p.coder, p.critic, p.tester} {
			if s, ok := a.(interface{ SetModelFactory(core.ModelFactory) }); ok {
				s.SetModelFactory(f)
			}
		}
	}
}

// WithClock sets the time source used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPipeline builds the four registered agents for cfg.
func NewPipeline(cfg llm.Config, opts ...Option) (*Pipeline, error) {
	cfg = cfg.WithDefaults()
	p := &Pipeline{
		cfg:      cfg,
		planner:  core.CreateAgent(AgentPlanner, cfg),
		coder:    core.CreateAgent(AgentCoder, cfg),
		critic:   core.CreateAgent(AgentCritic, cfg),
		tester:   core.CreateAgent(AgentTester, cfg),
		reporter: NopReporter{},
		metrics:  core.NewAgentMetrics(),
		now:      time.Now,
	}
	for id, a := range map[string]core.Agent{
		AgentPlanner: p.planner, AgentCoder: p.coder, AgentCritic: p.critic, AgentTester: p.tester,
	} {
		if a == nil {
			return nil, fmt.Errorf("agent %q is not registered", id)
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Metrics returns per-agent run statistics.
func (p *Pipeline) Metrics() core.MetricsSnapshot {
	return p.metrics.GetSnapshot()
}

// Generate runs the whole pipeline for goal. The first failing step aborts the run.
func (p *Pipeline) Generate(ctx context.Context, goal string) (*Result, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, ErrEmptyGoal
	}

	start := time.Now()
	logger.SetGoal(goal)
	logger.SetModel(string(p.cfg.Provider), p.cfg.Model)
	p.reporter.Started(goal)
	result := &Result{
		Prompt:   goal,
		Provider: string(p.cfg.Provider),
		Model:    p.cfg.Model,
	}

	// Plan
	out, err := p.runStep(ctx, StepPlan, p.planner, core.Input{Goal: goal})
	if err != nil {
		return nil, err
	}
	result.Tasks, _ = out.Value.([]Task)
	result.Usage = result.Usage.Add(out.Usage)
	p.reporter.StepDone(StepPlan, fmt.Sprintf("Created %d tasks", len(result.Tasks)))

	// Code
	out, err = p.runStep(ctx, StepCode, p.coder, core.Input{
		Goal:            goal,
		ExistingContext: map[string]any{core.ContextTasks: result.Tasks},
	})
	if err != nil {
		return nil, err
	}
	code, _ := out.Value.(CodeResult)
	result.Code, result.Language, result.Description = code.Code, code.Language, code.Description
	result.Usage = result.Usage.Add(out.Usage)
	p.reporter.StepDone(StepCode, fmt.Sprintf("Generated %s code", code.Language))

	codeContext := map[string]any{
		core.ContextCode:        code.Code,
		core.ContextLanguage:    code.Language,
		core.ContextDescription: code.Description,
	}

	// Review
	out, err = p.runStep(ctx, StepReview, p.critic, core.Input{Goal: goal, ExistingContext: codeContext})
	if err != nil {
		return nil, err
	}
	result.Review, _ = out.Value.(Review)
	result.QualityScore = result.Review.Score
	result.Approved = result.Review.Approved
	result.Usage = result.Usage.Add(out.Usage)
	p.reporter.StepDone(StepReview, fmt.Sprintf("Quality score: %d/10", result.QualityScore))

	// Test
	out, err = p.runStep(ctx, StepTest, p.tester, core.Input{Goal: goal, ExistingContext: codeContext})
	if err != nil {
		return nil, err
	}
	suite, _ := out.Value.(TestSuite)
	result.Tests = suite.TestCode
	result.TestsDescription = suite.Description
	result.Usage = result.Usage.Add(out.Usage)
	p.reporter.StepDone(StepTest, "Tests generated")

	result.EstimatedCostUSD = llm.CalculateCost(result.Model, result.Usage.PromptTokens, result.Usage.CompletionTokens)
	result.Duration = time.Since(start)
	result.GeneratedAt = p.now()
	return result, nil
}

func (p *Pipeline) runStep(ctx context.Context, step Step, agent core.Agent, input core.Input) (core.Output, error) {
	if err := ctx.Err(); err != nil {
		return core.Output{}, &StepError{Step: step, Err: err}
	}

	p.reporter.StepStarted(step)
	out, err := agent.Run(ctx, input)
	p.metrics.RecordRun(agent.Name(), out.Usage, out.Duration, err)
	if err != nil {
		return out, &StepError{Step: step, Err: err}
	}
	slog.Debug("agent finished", "agent", agent.Name(), "duration", out.Duration, "tokens", out.Usage.TotalTokens())
	return out, nil
}
