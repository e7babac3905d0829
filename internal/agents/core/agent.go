/*
Package core provides the foundational types and interfaces for codecrew agents.
*/
package core

import (
	"context"
	"time"

	"github.com/josephgoksu/codecrew/internal/llm"
)

// Agent is the interface all specialized agents must implement.
type Agent interface {
	Name() string
	Description() string
	Run(ctx context.Context, input Input) (Output, error)
}

// Input provides the goal and the results of earlier agents.
type Input struct {
	Goal            string
	ExistingContext map[string]any // Context from previous agents, keyed by Context* constants
}

// Keys agents use to hand results down the pipeline.
const (
	ContextTasks       = "tasks"
	ContextCode        = "code"
	ContextLanguage    = "language"
	ContextDescription = "description"
)

// Output captures the result of one agent run.
type Output struct {
	AgentName string
	Value     any // Typed payload, see each agent
	RawOutput string
	Usage     llm.Usage
	Duration  time.Duration
	Error     error
}

// BuildOutput creates a standard Output from a chain result.
func BuildOutput[T any](agentName string, res ChainResult[T], value any, duration time.Duration) Output {
	return Output{
		AgentName: agentName,
		Value:     value,
		RawOutput: res.Raw,
		Usage:     res.Usage,
		Duration:  duration,
	}
}

// ContextValue reads a typed value from the input context.
func ContextValue[T any](in Input, key string) (T, bool) {
	var zero T
	if in.ExistingContext == nil {
		return zero, false
	}
	v, ok := in.ExistingContext[key].(T)
	return v, ok
}
