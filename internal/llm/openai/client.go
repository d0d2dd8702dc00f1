// Package openai implements llm.CompletionClient on the OpenAI chat completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SAP-F-2025/question-parser-service/internal/llm"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	Name         = "openai"
	DefaultModel = "gpt-4o-mini"
)

// Config holds configuration for the OpenAI completion client.
type Config struct {
	APIKey      string
	Model       string  // "gpt-4o-mini" (default)
	Temperature float64 // 0 keeps extraction deterministic
	Timeout     time.Duration
	BaseURL     string       // Optional (tests, compatible gateways)
	HTTPClient  *http.Client // Optional (tests)
}

// Client implements llm.CompletionClient using the official OpenAI SDK.
type Client struct {
	model       string
	temperature float64
	client      openai.Client
}

var _ llm.CompletionClient = (*Client)(nil)

// NewClient creates a new OpenAI completion client. SDK retries are disabled:
// a failed extraction is reported, never re-sent.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		client:      openai.NewClient(opts...),
	}
}

func (c *Client) Name() string {
	return Name
}

// Model returns the configured default model.
func (c *Client) Model() string {
	return c.model
}

// Complete sends the prompt as a single user message.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResult, error) {
	start := time.Now()

	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	model := c.model
	if req.Model != "" {
		model = req.Model
	}
	temperature := c.temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	choice := resp.Choices[0]
	return &llm.CompletionResult{
		ID:               resp.ID,
		Model:            resp.Model,
		Content:          choice.Message.Content,
		FinishReason:     choice.FinishReason,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		Duration:         time.Since(start),
	}, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return fmt.Errorf("OpenAI chat error (status %d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("OpenAI chat error (status %d)", apiErr.StatusCode)
	}
	return err
}
