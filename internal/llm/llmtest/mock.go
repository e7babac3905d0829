// Package llmtest provides a scripted chat model for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/josephgoksu/codecrew/internal/llm"
)

// ErrNoResponse is returned when the script has run out of replies.
var ErrNoResponse = errors.New("llmtest: no scripted response left")

// Reply is one scripted model turn.
type Reply struct {
	Content string
	Usage   *schema.TokenUsage
	Err     error
}

// MockChatModel implements model.BaseChatModel by replaying Replies in order.
// Every request is recorded in Calls.
type MockChatModel struct {
	mu      sync.Mutex
	Replies []Reply
	Calls   [][]*schema.Message
}

// New returns a mock that answers with contents in order.
func New(contents ...string) *MockChatModel {
	m := &MockChatModel{}
	for _, c := range contents {
		m.Replies = append(m.Replies, Reply{Content: c})
	}
	return m
}

// Generate returns the next scripted reply.
func (m *MockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, input)

	if len(m.Replies) == 0 {
		return nil, ErrNoResponse
	}
	r := m.Replies[0]
	m.Replies = m.Replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}

	msg := schema.AssistantMessage(r.Content, nil)
	if r.Usage != nil {
		msg.ResponseMeta = &schema.ResponseMeta{Usage: r.Usage}
	}
	return msg, nil
}

// Stream is not used by codecrew agents.
func (m *MockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("llmtest: streaming not supported")
}

// CallCount returns how many requests were made.
func (m *MockChatModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Factory adapts the mock to the agent model-factory signature.
func (m *MockChatModel) Factory() func(context.Context, llm.Config) (model.BaseChatModel, error) {
	return func(context.Context, llm.Config) (model.BaseChatModel, error) {
		return m, nil
	}
}
