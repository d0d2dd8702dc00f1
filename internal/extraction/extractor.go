package extraction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/question-parser-service/internal/models"
)

// Result is the outcome of extracting one document.
type Result struct {
	Questions []models.Question
	Chunks    int
}

// Extractor runs the invoke-then-validate pipeline over a document's pages.
type Extractor struct {
	invoker       *Invoker
	validator     *ResponseValidator
	maxChunkChars int
	logger        *slog.Logger
}

func NewExtractor(invoker *Invoker, validator *ResponseValidator, maxChunkChars int, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		invoker:       invoker,
		validator:     validator,
		maxChunkChars: maxChunkChars,
		logger:        logger.With("component", "extractor"),
	}
}

// Extract returns the questions found in pages. With chunking disabled, or
// when the document fits, exactly one completion call is made.
func (e *Extractor) Extract(ctx context.Context, pages []string) (*Result, error) {
	windows := SplitPages(pages, e.maxChunkChars)
	if len(windows) <= 1 {
		questions, err := e.extractDocument(ctx, AggregatePages(pages))
		if err != nil {
			return nil, err
		}
		return &Result{Questions: questions, Chunks: 1}, nil
	}

	e.logger.InfoContext(ctx, "document split for extraction", "pages", len(pages), "windows", len(windows))
	batches := make([][]models.Question, 0, len(windows))
	for i, w := range windows {
		questions, err := e.extractDocument(ctx, w.Document())
		if err != nil {
			return nil, fmt.Errorf("window %d (pages %d-%d): %w", i+1, w.First+1, w.First+len(w.Pages), err)
		}
		batches = append(batches, questions)
	}
	return &Result{Questions: MergeQuestions(batches...), Chunks: len(windows)}, nil
}

func (e *Extractor) extractDocument(ctx context.Context, document string) ([]models.Question, error) {
	raw, err := e.invoker.Invoke(ctx, document)
	if err != nil {
		return nil, err
	}
	return e.validator.Validate(raw)
}
