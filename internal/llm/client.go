// Package llm defines the completion boundary used by extraction.
package llm

import (
	"context"
	"time"
)

// CompletionRequest is a single-turn prompt.
type CompletionRequest struct {
	Prompt      string
	Model       string   // overrides the client default when set
	Temperature *float64 // overrides the client default when set
}

// CompletionResult is the text reply plus accounting from the provider.
type CompletionResult struct {
	ID               string
	Model            string
	Content          string
	FinishReason     string
	PromptTokens     int64
	CompletionTokens int64
	Duration         time.Duration
}

// CompletionClient sends one synchronous completion request. Implementations
// must not retry; failures are returned to the caller as-is.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)
	Name() string
}
