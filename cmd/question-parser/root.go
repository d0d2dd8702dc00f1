package main

import (
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/question-parser-service/internal/config"
	"github.com/SAP-F-2025/question-parser-service/internal/extraction"
	"github.com/SAP-F-2025/question-parser-service/internal/handlers"
	"github.com/SAP-F-2025/question-parser-service/internal/llm/openai"
	"github.com/SAP-F-2025/question-parser-service/internal/validator"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "question-parser",
	Short: "Extract SAT exam questions from PDFs with an LLM",
	Long: `question-parser turns SAT practice test PDFs into structured question sets.

Each document's page text is sent to the model in a single request, the reply
is checked against the question schema, and the result is cached in Redis
under parsed:<filename>.`,
	Version:      handlers.ServiceVersion,
	SilenceUsage: true,
}

// loadConfig reads and validates the environment for commands that call the model.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newExtractor builds the prompt, completion client and schema check shared by serve and parse.
func newExtractor(cfg *config.Config, rules *validator.Validator, logger *slog.Logger) (*extraction.Extractor, error) {
	def := extraction.NewSchemaDefinition(cfg.SchemaMode)

	responseValidator, err := extraction.NewResponseValidator(def, rules)
	if err != nil {
		return nil, fmt.Errorf("compile question schema: %w", err)
	}

	client := openai.NewClient(openai.Config{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.OpenAIModel,
		Temperature: cfg.OpenAITemperature,
		Timeout:     cfg.LLMTimeout,
		BaseURL:     cfg.OpenAIBaseURL,
	})
	logger.Info("Completion client ready", "provider", client.Name(), "model", client.Model(), "schema_mode", cfg.SchemaMode)

	invoker := extraction.NewInvoker(client, extraction.NewInstruction(def), cfg.LLMTimeout, logger)
	return extraction.NewExtractor(invoker, responseValidator, cfg.LLMMaxChunkChars, logger), nil
}
