package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/question-parser-service/internal/extraction"
	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/SAP-F-2025/question-parser-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockQuestionCache is a mock implementation of cache.QuestionCache
type MockQuestionCache struct {
	mock.Mock
}

func (m *MockQuestionCache) Put(ctx context.Context, key string, questions []models.Question) error {
	args := m.Called(ctx, key, questions)
	return args.Error(0)
}

func (m *MockQuestionCache) PutRaw(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockQuestionCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockQuestionCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockQuestionCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *MockQuestionCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTextSource is a mock implementation of pdf.TextSource
type MockTextSource struct {
	mock.Mock
}

func (m *MockTextSource) PageTexts(ctx context.Context, path string) ([]string, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockExtractor is a mock implementation of QuestionExtractor
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, pages []string) (*extraction.Result, error) {
	args := m.Called(ctx, pages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extraction.Result), args.Error(1)
}

// MockQuestionSetRepository is a mock implementation of QuestionSetRepository
type MockQuestionSetRepository struct {
	mock.Mock
}

func (m *MockQuestionSetRepository) Upsert(ctx context.Context, set *models.QuestionSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockQuestionSetRepository) GetByFileName(ctx context.Context, fileName string) (*models.QuestionSet, error) {
	args := m.Called(ctx, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuestionSet), args.Error(1)
}

func (m *MockQuestionSetRepository) List(ctx context.Context, filters repositories.QuestionSetFilters) ([]*models.QuestionSet, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.QuestionSet), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionSetRepository) Delete(ctx context.Context, fileName string) error {
	args := m.Called(ctx, fileName)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleQuestions() []models.Question {
	return []models.Question{
		{
			Section:      models.SectionMath,
			Difficulty:   dptr(models.DifficultyEasy),
			Type:         models.TypePtr(models.MultipleChoice),
			QuestionText: "What is 2 + 3?",
			Options: []models.Option{
				{Label: "A", Text: "4"},
				{Label: "B", Text: "5"},
				{Label: "C", Text: "6"},
				{Label: "D", Text: "7"},
			},
			CorrectAnswer: models.StringPtr("B"),
		},
		{
			Section:      models.SectionMath,
			Type:         models.TypePtr(models.ShortAnswer),
			QuestionText: "Solve for x: 2x = 10",
		},
	}
}

func dptr(d models.Difficulty) *models.Difficulty {
	return &d
}
