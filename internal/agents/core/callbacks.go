package core

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
)

// LogHandler writes eino node lifecycle events to a slog logger at debug level.
type LogHandler struct {
	logger     *slog.Logger
	mu         sync.Mutex
	startTimes map[string]time.Time
}

// NewLogHandler creates an eino callback handler that logs through logger.
func NewLogHandler(logger *slog.Logger) callbacks.Handler {
	h := &LogHandler{logger: logger, startTimes: make(map[string]time.Time)}
	return h.build()
}

func (h *LogHandler) key(info *callbacks.RunInfo) string {
	return string(info.Component) + "/" + info.Name
}

func (h *LogHandler) build() callbacks.Handler {
	return callbacks.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *callbacks.RunInfo, input callbacks.CallbackInput) context.Context {
			h.mu.Lock()
			h.startTimes[h.key(info)] = time.Now()
			h.mu.Unlock()

			attrs := []any{"node", info.Name, "component", string(info.Component)}
			if info.Component == components.ComponentOfChatModel {
				if in := model.ConvCallbackInput(input); in != nil {
					attrs = append(attrs, "messages", len(in.Messages))
				}
			}
			h.logger.DebugContext(ctx, "node start", attrs...)
			return ctx
		}).
		OnEndFn(func(ctx context.Context, info *callbacks.RunInfo, output callbacks.CallbackOutput) context.Context {
			attrs := []any{"node", info.Name, "component", string(info.Component), "duration", h.elapsed(info)}
			if info.Component == components.ComponentOfChatModel {
				if out := model.ConvCallbackOutput(output); out != nil && out.TokenUsage != nil {
					attrs = append(attrs, "total_tokens", out.TokenUsage.TotalTokens)
				}
			}
			h.logger.DebugContext(ctx, "node end", attrs...)
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
			h.logger.DebugContext(ctx, "node error", "node", info.Name, "duration", h.elapsed(info), "error", err)
			return ctx
		}).
		Build()
}

func (h *LogHandler) elapsed(info *callbacks.RunInfo) time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	k := h.key(info)
	start, ok := h.startTimes[k]
	if !ok {
		return 0
	}
	delete(h.startTimes, k)
	return time.Since(start)
}
