package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/SAP-F-2025/question-parser-service/internal/cache"
	"github.com/SAP-F-2025/question-parser-service/internal/events"
	"github.com/SAP-F-2025/question-parser-service/internal/extraction"
	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/SAP-F-2025/question-parser-service/internal/pdf"
)

// ParseService runs the PDF to question list pipeline.
type ParseService interface {
	// ParseUpload validates and extracts an uploaded PDF and caches the result under parsed:<fileName>.
	ParseUpload(ctx context.Context, fileName string, r io.Reader, size int64) (*ParseResult, error)
	// ParseFile extracts a local PDF without touching the cache or publishing events.
	ParseFile(ctx context.Context, path string) (*ParseResult, error)
}

// QuestionExtractor turns page texts into validated questions; *extraction.Extractor satisfies it.
type QuestionExtractor interface {
	Extract(ctx context.Context, pages []string) (*extraction.Result, error)
}

type ParseResult struct {
	Summary   models.ParseSummary `json:"summary"`
	Questions []models.Question   `json:"questions"`
}

type ParseServiceConfig struct {
	MaxUploadBytes int64
}

type parseService struct {
	source     pdf.TextSource
	extractor  QuestionExtractor
	cache      cache.QuestionCache
	publisher  events.EventPublisher
	countPages func(io.ReadSeeker) (int, error)
	config     ParseServiceConfig
	logger     *ServiceLogger
}

func NewParseService(
	source pdf.TextSource,
	extractor QuestionExtractor,
	questionCache cache.QuestionCache,
	publisher events.EventPublisher,
	config ParseServiceConfig,
	logger *slog.Logger,
) ParseService {
	return &parseService{
		source:     source,
		extractor:  extractor,
		cache:      questionCache,
		publisher:  publisher,
		countPages: pdf.PageCount,
		config:     config,
		logger:     NewServiceLogger(logger, LogConfig{Service: events.EventSource, Component: "parse"}),
	}
}

func (s *parseService) ParseUpload(ctx context.Context, fileName string, r io.Reader, size int64) (result *ParseResult, err error) {
	op := s.logger.WithOperation(ctx, "parse_upload")
	defer func() { op.LogResult("pdf", fileName, err) }()

	if err := s.checkUpload(fileName, size); err != nil {
		return nil, err
	}

	started := time.Now()
	err = pdf.WithTempFile(r, func(f *os.File) error {
		pageCount, err := s.countPages(f)
		if err != nil {
			return NewInputValidationError("file", err)
		}
		result, err = s.extract(ctx, fileName, f.Name(), pageCount)
		return err
	})
	if err != nil {
		return nil, err
	}

	key := cache.ParsedKey(fileName)
	if err := s.cache.Put(ctx, key, result.Questions); err != nil {
		return nil, fmt.Errorf("cache questions: %w", err)
	}
	result.Summary.CacheKey = key
	result.Summary.ProcessingTime = time.Since(started)

	publishEvent(ctx, s.publisher, s.logger, events.NewQuestionEvent(events.EventQuestionsParsed, events.QuestionsParsedEvent{
		FileName:       fileName,
		CacheKey:       key,
		PageCount:      result.Summary.PageCount,
		QuestionsCount: result.Summary.QuestionsCount,
		Chunks:         result.Summary.Chunks,
		DurationMs:     result.Summary.ProcessingTime.Milliseconds(),
	}))

	return result, nil
}

func (s *parseService) ParseFile(ctx context.Context, path string) (result *ParseResult, err error) {
	op := s.logger.WithOperation(ctx, "parse_file")
	defer func() { op.LogResult("pdf", path, err) }()

	if !strings.HasSuffix(path, ".pdf") {
		return nil, NewInputValidationError("file", ErrNotPDF)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, NewInputValidationError("file", err)
	}
	defer f.Close()

	started := time.Now()
	pageCount, err := s.countPages(f)
	if err != nil {
		return nil, NewInputValidationError("file", err)
	}
	result, err = s.extract(ctx, path, path, pageCount)
	if err != nil {
		return nil, err
	}
	result.Summary.ProcessingTime = time.Since(started)
	return result, nil
}

func (s *parseService) checkUpload(fileName string, size int64) error {
	if !strings.HasSuffix(fileName, ".pdf") {
		return NewInputValidationError("file", ErrNotPDF)
	}
	if size <= 0 {
		return NewInputValidationError("file", ErrEmptyUpload)
	}
	if s.config.MaxUploadBytes > 0 && size > s.config.MaxUploadBytes {
		return NewInputValidationError("file", fmt.Errorf("%w: %d bytes, limit %d", ErrUploadTooLarge, size, s.config.MaxUploadBytes))
	}
	return nil
}

func (s *parseService) extract(ctx context.Context, fileName, path string, pageCount int) (*ParseResult, error) {
	pages, err := s.source.PageTexts(ctx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, NewExtractionServiceError("read", err)
	}

	extracted, err := s.extractor.Extract(ctx, pages)
	if err != nil {
		return nil, err
	}

	if pageCount == 0 {
		pageCount = len(pages)
	}
	return &ParseResult{
		Summary: models.ParseSummary{
			FileName:       fileName,
			PageCount:      pageCount,
			QuestionsCount: len(extracted.Questions),
			Chunks:         extracted.Chunks,
		},
		Questions: extracted.Questions,
	}, nil
}

// publishEvent logs publisher failures instead of returning them; the state
// the event describes is already stored when it is called.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *ServiceLogger, event *events.QuestionEvent) {
	if publisher == nil {
		return
	}
	if requestID := requestIDFrom(ctx); requestID != "" {
		event.WithMetadata("request_id", requestID)
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.logger.WarnContext(ctx, "Failed to publish event", "event_type", event.Type, "event_id", event.ID, "error", err)
	}
}
