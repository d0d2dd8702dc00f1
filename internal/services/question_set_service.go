package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/question-parser-service/internal/cache"
	"github.com/SAP-F-2025/question-parser-service/internal/events"
	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/SAP-F-2025/question-parser-service/internal/repositories"
	"github.com/SAP-F-2025/question-parser-service/internal/validator"
	"gorm.io/datatypes"
)

// QuestionSetService finalizes reviewed question sets and serves the persisted ones.
type QuestionSetService interface {
	Finalize(ctx context.Context, req *models.FinalizeRequest) (*models.FinalizeResult, error)
	GetQuestionSet(ctx context.Context, fileName string) (*models.QuestionSet, error)
	ListQuestionSets(ctx context.Context, filters repositories.QuestionSetFilters) ([]*models.QuestionSet, int64, error)
	DeleteQuestionSet(ctx context.Context, fileName string) error
}

type questionSetService struct {
	repo      repositories.QuestionSetRepository // nil when DATABASE_URL is unset
	cache     cache.QuestionCache
	publisher events.EventPublisher
	validator *validator.Validator
	finalTTL  time.Duration
	logger    *ServiceLogger
}

func NewQuestionSetService(
	repo repositories.QuestionSetRepository,
	questionCache cache.QuestionCache,
	publisher events.EventPublisher,
	validator *validator.Validator,
	finalTTL time.Duration,
	logger *slog.Logger,
) QuestionSetService {
	return &questionSetService{
		repo:      repo,
		cache:     questionCache,
		publisher: publisher,
		validator: validator,
		finalTTL:  finalTTL,
		logger:    NewServiceLogger(logger, LogConfig{Service: events.EventSource, Component: "question_set"}),
	}
}

// Finalize stores the reviewed set under final:<file_name> and, when a
// database is configured, upserts it into the question set table.
func (s *questionSetService) Finalize(ctx context.Context, req *models.FinalizeRequest) (result *models.FinalizeResult, err error) {
	op := s.logger.WithOperation(ctx, "finalize")
	defer func() { op.LogResult("question_set", req.FileName, err) }()

	if err := s.validateFinalize(req); err != nil {
		return nil, err
	}

	data, err := cache.MarshalQuestions(req.Questions)
	if err != nil {
		return nil, fmt.Errorf("encode questions: %w", err)
	}

	key := cache.FinalKey(req.FileName)
	result = &models.FinalizeResult{
		FileName:       req.FileName,
		CacheKey:       key,
		QuestionsCount: len(req.Questions),
	}

	// Persist first: a failed upsert must not leave a final: entry behind.
	if s.repo != nil {
		set := &models.QuestionSet{
			FileName:       req.FileName,
			Questions:      datatypes.JSON(data),
			QuestionsCount: len(req.Questions),
			CacheKey:       key,
		}
		if err := s.repo.Upsert(ctx, set); err != nil {
			return nil, fmt.Errorf("persist question set: %w", err)
		}
		result.QuestionSetID = set.ID
		result.Persisted = true
	}

	if err := s.cache.PutRaw(ctx, key, data, s.finalTTL); err != nil {
		return nil, fmt.Errorf("cache finalized questions: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewQuestionEvent(events.EventQuestionsFinalized, events.QuestionsFinalizedEvent{
		FileName:       result.FileName,
		CacheKey:       result.CacheKey,
		QuestionSetID:  result.QuestionSetID,
		QuestionsCount: result.QuestionsCount,
		Persisted:      result.Persisted,
	}))

	return result, nil
}

func (s *questionSetService) validateFinalize(req *models.FinalizeRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	if strings.TrimSpace(req.FileName) == "" {
		return ValidationErrors{*NewValidationError("file_name", "must not be blank", req.FileName)}
	}
	if err := s.validator.Question().ValidateBatch(req.Questions); err != nil {
		return GetValidationErrors(err).WithPrefix("questions")
	}
	return nil
}

func (s *questionSetService) GetQuestionSet(ctx context.Context, fileName string) (set *models.QuestionSet, err error) {
	op := s.logger.WithOperation(ctx, "get_question_set")
	defer func() { op.LogResult("question_set", fileName, err) }()

	if s.repo == nil {
		return nil, ErrPersistenceDisabled
	}
	return s.repo.GetByFileName(ctx, fileName)
}

func (s *questionSetService) ListQuestionSets(ctx context.Context, filters repositories.QuestionSetFilters) (sets []*models.QuestionSet, total int64, err error) {
	op := s.logger.WithOperation(ctx, "list_question_sets")
	defer func() { op.LogResult("question_set", "", err) }()

	if s.repo == nil {
		return nil, 0, ErrPersistenceDisabled
	}
	return s.repo.List(ctx, filters)
}

// DeleteQuestionSet removes the persisted set and its final:<file_name> cache entry.
func (s *questionSetService) DeleteQuestionSet(ctx context.Context, fileName string) (err error) {
	op := s.logger.WithOperation(ctx, "delete_question_set")
	defer func() { op.LogResult("question_set", fileName, err) }()

	if s.repo == nil {
		return ErrPersistenceDisabled
	}
	if err := s.repo.Delete(ctx, fileName); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, cache.FinalKey(fileName)); err != nil && !IsNotFound(err) {
		return fmt.Errorf("delete finalized cache entry: %w", err)
	}
	return nil
}
