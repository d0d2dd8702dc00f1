package main

import (
	"encoding/json"
	"os"

	"github.com/SAP-F-2025/question-parser-service/internal/pdf"
	"github.com/SAP-F-2025/question-parser-service/internal/services"
	"github.com/SAP-F-2025/question-parser-service/internal/utils"
	"github.com/SAP-F-2025/question-parser-service/internal/validator"
	"github.com/spf13/cobra"
)

var parseCompact bool

var parseCmd = &cobra.Command{
	Use:   "parse <file.pdf>",
	Short: "Extract questions from a local PDF and print them as JSON",
	Long: `Extract the questions of a local PDF and write them to stdout.

Nothing is cached and no events are published, so Redis and Kafka are not needed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// stdout carries the JSON; logs go to stderr
		logger := utils.NewLoggerTo(os.Stderr, cfg.IsProduction())
		slogger := utils.ToSlogLogger(logger)

		extractor, err := newExtractor(cfg, validator.New(cfg.SchemaMode), slogger)
		if err != nil {
			return err
		}

		parser := services.NewParseService(pdf.NewFitzSource(), extractor, nil, nil, services.ParseServiceConfig{}, slogger)
		result, err := parser.ParseFile(cmd.Context(), args[0])
		if err != nil {
			logger.LogError(err, "Parse failed", "file", args[0])
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		if !parseCompact {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(result)
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parseCompact, "compact", false, "Print JSON on a single line")
	rootCmd.AddCommand(parseCmd)
}
