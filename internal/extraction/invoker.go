package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/SAP-F-2025/question-parser-service/internal/errors"
	"github.com/SAP-F-2025/question-parser-service/internal/llm"
	"github.com/google/uuid"
)

// Invoker sends one rendered instruction to the completion service per call.
type Invoker struct {
	client      llm.CompletionClient
	instruction Instruction
	timeout     time.Duration
	logger      *slog.Logger
}

func NewInvoker(client llm.CompletionClient, instruction Instruction, timeout time.Duration, logger *slog.Logger) *Invoker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Invoker{
		client:      client,
		instruction: instruction,
		timeout:     timeout,
		logger:      logger.With("component", "extraction_invoker"),
	}
}

// Invoke returns the raw reply text for document. Failures come back as
// *errors.ExtractionServiceError and are never retried.
func (i *Invoker) Invoke(ctx context.Context, document string) (string, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	callID := uuid.NewString()
	prompt := i.instruction.Render(document)
	i.logger.DebugContext(ctx, "sending completion request",
		"call_id", callID, "provider", i.client.Name(), "prompt_chars", len(prompt))

	res, err := i.client.Complete(ctx, llm.CompletionRequest{Prompt: prompt})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("completion timed out after %s: %w", i.timeout, err)
		}
		i.logger.ErrorContext(ctx, "completion request failed", "call_id", callID, "error", err)
		return "", apperrors.NewExtractionServiceError("completion", err)
	}

	i.logger.InfoContext(ctx, "completion received",
		"call_id", callID,
		"model", res.Model,
		"finish_reason", res.FinishReason,
		"prompt_tokens", res.PromptTokens,
		"completion_tokens", res.CompletionTokens,
		"duration", res.Duration,
	)
	return res.Content, nil
}
