package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/josephgoksu/codecrew/internal/llm"
	"github.com/josephgoksu/codecrew/internal/logger"
)

// Parser turns raw model text into a typed value.
type Parser[T any] func(raw string) (T, error)

// TextParser returns the response unchanged.
func TextParser(raw string) (string, error) { return raw, nil }

// ChainResult is what a chain run produces.
// ParseErr is set when the response could not be parsed; Value is then the zero value.
type ChainResult[T any] struct {
	Value    T
	Raw      string
	ParseErr error
	Usage    llm.Usage
}

// modelTurn carries the request alongside the response so usage can be estimated.
type modelTurn struct {
	input  []*schema.Message
	output *schema.Message
}

// Chain is a reusable pipeline: Vars -> Template -> Model -> Parser -> Result
type Chain[T any] struct {
	runnable compose.Runnable[map[string]any, ChainResult[T]]
	name     string
}

// NewChain builds the eino graph for one agent call.
func NewChain[T any](
	ctx context.Context,
	name string,
	chatModel model.BaseChatModel,
	systemTmpl, userTmpl string,
	parse Parser[T],
	opts ...model.Option,
) (*Chain[T], error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chain %s: nil chat model", name)
	}
	if parse == nil {
		parse = ParseJSONResponse[T]
	}

	tpl := prompt.FromMessages(schema.GoTemplate,
		schema.SystemMessage(systemTmpl),
		schema.UserMessage(userTmpl),
	)

	promptFunc := func(ctx context.Context, vars map[string]any) ([]*schema.Message, error) {
		msgs, err := tpl.Format(ctx, vars)
		if err != nil {
			return nil, fmt.Errorf("render prompt: %w", err)
		}
		if len(msgs) > 0 {
			logger.SetStep(name, msgs[len(msgs)-1].Content)
		}
		return msgs, nil
	}

	// BaseChatModel sits behind a lambda so models without tool binding are accepted.
	modelFunc := func(ctx context.Context, msgs []*schema.Message) (modelTurn, error) {
		resp, err := chatModel.Generate(ctx, msgs, opts...)
		if err != nil {
			return modelTurn{}, fmt.Errorf("llm generate: %w", err)
		}
		if resp == nil {
			return modelTurn{}, fmt.Errorf("llm generate: empty response")
		}
		return modelTurn{input: msgs, output: resp}, nil
	}

	parserFunc := func(ctx context.Context, turn modelTurn) (ChainResult[T], error) {
		res := ChainResult[T]{
			Raw:   turn.output.Content,
			Usage: llm.UsageFromMessage(turn.input, turn.output),
		}
		res.Value, res.ParseErr = parse(turn.output.Content)
		return res, nil
	}

	graph := compose.NewGraph[map[string]any, ChainResult[T]]()

	if err := graph.AddLambdaNode("prompt", compose.InvokableLambda(promptFunc)); err != nil {
		return nil, fmt.Errorf("add prompt node: %w", err)
	}
	if err := graph.AddLambdaNode("model", compose.InvokableLambda(modelFunc)); err != nil {
		return nil, fmt.Errorf("add model node: %w", err)
	}
	if err := graph.AddLambdaNode("parser", compose.InvokableLambda(parserFunc)); err != nil {
		return nil, fmt.Errorf("add parser node: %w", err)
	}

	_ = graph.AddEdge(compose.START, "prompt")
	_ = graph.AddEdge("prompt", "model")
	_ = graph.AddEdge("model", "parser")
	_ = graph.AddEdge("parser", compose.END)

	runnable, err := graph.Compile(ctx, compose.WithGraphName(name))
	if err != nil {
		return nil, fmt.Errorf("compile chain: %w", err)
	}

	return &Chain[T]{runnable: runnable, name: name}, nil
}

// Name returns the chain name.
func (c *Chain[T]) Name() string { return c.name }

// Invoke renders the prompt with vars, calls the model and parses the reply.
// Only template and model failures are errors.
func (c *Chain[T]) Invoke(ctx context.Context, vars map[string]any) (ChainResult[T], time.Duration, error) {
	start := time.Now()

	var opts []compose.Option
	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		opts = append(opts, compose.WithCallbacks(NewLogHandler(slog.Default())))
	}

	res, err := c.runnable.Invoke(ctx, vars, opts...)
	return res, time.Since(start), err
}
