package extraction

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/SAP-F-2025/question-parser-service/internal/errors"
	"github.com/SAP-F-2025/question-parser-service/internal/llm"
	"github.com/SAP-F-2025/question-parser-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingClient struct{}

func (blockingClient) Name() string { return "blocking" }

func (blockingClient) Complete(ctx context.Context, _ llm.CompletionRequest) (*llm.CompletionResult, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func testInstruction() Instruction {
	return NewInstruction(NewSchemaDefinition(validator.ModePermissive))
}

func TestInvokeSendsRenderedInstruction(t *testing.T) {
	client := llm.NewMockClient(fourOptionReply)
	inv := NewInvoker(client, testInstruction(), time.Second, nil)

	raw, err := inv.Invoke(context.Background(), "Page 1:\nQ1")
	require.NoError(t, err)
	assert.Equal(t, fourOptionReply, raw)

	require.Equal(t, 1, client.Calls())
	assert.Equal(t, testInstruction().Render("Page 1:\nQ1"), client.Prompts()[0])
}

func TestInvokeWrapsServiceFailureWithoutRetry(t *testing.T) {
	cause := errors.New("OpenAI chat error (status 503)")
	client := llm.NewMockClient().WithError(cause)
	inv := NewInvoker(client, testInstruction(), time.Second, nil)

	_, err := inv.Invoke(context.Background(), "doc")
	require.Error(t, err)

	var ese *apperrors.ExtractionServiceError
	require.True(t, errors.As(err, &ese))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, client.Calls())
}

func TestInvokeTimeout(t *testing.T) {
	inv := NewInvoker(blockingClient{}, testInstruction(), 20*time.Millisecond, nil)

	_, err := inv.Invoke(context.Background(), "doc")
	require.Error(t, err)

	var ese *apperrors.ExtractionServiceError
	assert.True(t, errors.As(err, &ese))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
