package llm

import (
	"context"
	"sync"
)

// MockClient replays canned replies. It records every prompt it receives.
type MockClient struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func NewMockClient(replies ...string) *MockClient {
	return &MockClient{replies: replies}
}

// WithError makes every call fail with err.
func (m *MockClient) WithError(err error) *MockClient {
	m.err = err
	return m
}

func (m *MockClient) Name() string { return "mock" }

func (m *MockClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, req.Prompt)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}

	reply := "[]"
	if len(m.replies) > 0 {
		reply = m.replies[0]
		if len(m.replies) > 1 {
			m.replies = m.replies[1:]
		}
	}
	return &CompletionResult{Model: "mock", Content: reply, FinishReason: "stop"}, nil
}

// Prompts returns the prompts received so far.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Calls returns the number of completion requests made.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
