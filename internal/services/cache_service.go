package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/question-parser-service/internal/cache"
	"github.com/SAP-F-2025/question-parser-service/internal/events"
)

// CacheService exposes stored parse results by their full cache key.
type CacheService interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

type cacheService struct {
	cache     cache.QuestionCache
	publisher events.EventPublisher
	logger    *ServiceLogger
}

func NewCacheService(questionCache cache.QuestionCache, publisher events.EventPublisher, logger *slog.Logger) CacheService {
	return &cacheService{
		cache:     questionCache,
		publisher: publisher,
		logger:    NewServiceLogger(logger, LogConfig{Service: events.EventSource, Component: "cache"}),
	}
}

func (s *cacheService) Get(ctx context.Context, key string) (data json.RawMessage, err error) {
	op := s.logger.WithOperation(ctx, "cache_get")
	defer func() { op.LogResult("cache_entry", key, err) }()

	if err := checkKey(key); err != nil {
		return nil, err
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		// Entries are only written as JSON; anything else was put there by hand.
		quoted, _ := json.Marshal(string(raw))
		return quoted, nil
	}
	return raw, nil
}

func (s *cacheService) Delete(ctx context.Context, key string) (err error) {
	op := s.logger.WithOperation(ctx, "cache_delete")
	defer func() { op.LogResult("cache_entry", key, err) }()

	if err := checkKey(key); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		return err
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewQuestionEvent(events.EventCacheEntryDeleted, events.CacheEntryDeletedEvent{Key: key}))
	return nil
}

func (s *cacheService) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return NewInputValidationError("key", ErrEmptyKey)
	}
	return nil
}
