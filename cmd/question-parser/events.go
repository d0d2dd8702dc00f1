package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/SAP-F-2025/question-parser-service/internal/config"
	"github.com/SAP-F-2025/question-parser-service/internal/events"
	"github.com/SAP-F-2025/question-parser-service/internal/utils"
	"github.com/spf13/cobra"
)

var eventsGroup string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print question events from Kafka as JSON lines",
	Long: `Subscribe to QUESTION_EVENTS_TOPIC on KAFKA_BROKERS and print each event
(questions.parsed, questions.finalized, questions.cache_deleted) to stdout.

Useful for checking what downstream consumers will see.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger := utils.NewLoggerTo(os.Stderr, cfg.IsProduction())
		slogger := utils.ToSlogLogger(logger)

		subscriber, err := cfg.Events.CreateEventSubscriber(eventsGroup, slogger)
		if err != nil {
			return err
		}
		defer subscriber.Close()

		enc := json.NewEncoder(os.Stdout)
		return events.Consume(cmd.Context(), subscriber, cfg.Events.QuestionTopic,
			func(_ context.Context, event *events.QuestionEvent) error {
				return enc.Encode(event)
			}, slogger)
	},
}

func init() {
	eventsCmd.Flags().StringVar(&eventsGroup, "group", "question-parser-cli", "Kafka consumer group")
	rootCmd.AddCommand(eventsCmd)
}
