package core

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/josephgoksu/codecrew/internal/llm"
)

// ModelFactory builds the chat model an agent talks to.
type ModelFactory func(ctx context.Context, cfg llm.Config) (model.BaseChatModel, error)

// BaseAgent provides shared functionality for all LLM-powered agents.
type BaseAgent struct {
	name         string
	description  string
	llmConfig    llm.Config
	modelFactory ModelFactory
}

// NewBaseAgent creates a new BaseAgent with the given configuration.
func NewBaseAgent(name, description string, cfg llm.Config) BaseAgent {
	return BaseAgent{
		name:         name,
		description:  description,
		llmConfig:    cfg,
		modelFactory: llm.NewChatModel,
	}
}

// Name returns the agent identifier.
func (b *BaseAgent) Name() string { return b.name }

// Description returns the agent description.
func (b *BaseAgent) Description() string { return b.description }

// SetModelFactory replaces how the chat model is built. Tests use it to inject fakes.
func (b *BaseAgent) SetModelFactory(f ModelFactory) {
	if f != nil {
		b.modelFactory = f
	}
}

// CreateChatModel creates an LLM chat model using the agent's config.
func (b *BaseAgent) CreateChatModel(ctx context.Context) (model.BaseChatModel, error) {
	chatModel, err := b.modelFactory(ctx, b.llmConfig)
	if err != nil {
		return nil, fmt.Errorf("create model: %w", err)
	}
	return chatModel, nil
}

// BuildChain creates the agent's chat model and wraps it in a Chain.
func BuildChain[T any](ctx context.Context, b *BaseAgent, systemTmpl, userTmpl string, parse Parser[T]) (*Chain[T], error) {
	chatModel, err := b.CreateChatModel(ctx)
	if err != nil {
		return nil, err
	}
	return NewChain(ctx, b.name, chatModel, systemTmpl, userTmpl, parse, llm.GenerateOptions(b.llmConfig)...)
}
