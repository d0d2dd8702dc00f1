package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	ParsedKeyPrefix = "parsed:"
	FinalKeyPrefix  = "final:"

	DefaultTTL = time.Hour
)

var ErrCacheMiss = errors.New("cache key not found")

// ParsedKey is the key extraction results for fileName are stored under.
func ParsedKey(fileName string) string {
	return ParsedKeyPrefix + fileName
}

// FinalKey is the key a reviewed question set for fileName is stored under.
func FinalKey(fileName string) string {
	return FinalKeyPrefix + fileName
}

// Commander is the subset of redis commands the cache needs; *redis.Client satisfies it.
type Commander interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

type QuestionCache interface {
	// Put stores questions as canonical JSON under key with the default TTL.
	Put(ctx context.Context, key string, questions []models.Question) error
	// PutRaw stores value under key; ttl 0 means no expiry.
	PutRaw(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// TTL reports the remaining lifetime of key, 0 when it never expires.
	TTL(ctx context.Context, key string) (time.Duration, error)
	Ping(ctx context.Context) error
}

type redisCache struct {
	client Commander
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisCache(client Commander, ttl time.Duration, logger *slog.Logger) QuestionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &redisCache{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "question_cache"),
	}
}

func (r *redisCache) Put(ctx context.Context, key string, questions []models.Question) error {
	value, err := MarshalQuestions(questions)
	if err != nil {
		return err
	}
	return r.PutRaw(ctx, key, value, r.ttl)
}

func (r *redisCache) PutRaw(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	r.logger.DebugContext(ctx, "cache entry stored", "key", key, "bytes", len(value), "ttl", ttl)
	return nil
}

func (r *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	return value, nil
}

func (r *redisCache) Delete(ctx context.Context, key string) error {
	removed, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	if removed == 0 {
		return ErrCacheMiss
	}
	return nil
}

func (r *redisCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	d, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("cache ttl %s: %w", key, err)
	}
	// Redis answers -2 for a missing key and -1 for a key without expiry.
	switch {
	case d == -2 || d == -2*time.Second:
		return 0, ErrCacheMiss
	case d < 0:
		return 0, nil
	}
	return d, nil
}

func (r *redisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// MarshalQuestions renders questions as compact JSON without HTML escaping.
// A nil slice is rendered as an empty array.
func MarshalQuestions(questions []models.Question) ([]byte, error) {
	if questions == nil {
		questions = []models.Question{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(questions); err != nil {
		return nil, fmt.Errorf("encode questions: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
