package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/SAP-F-2025/question-parser-service/internal/config"
	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to REDIS_URL, retrying the initial ping once per
// second until the configured connect timeout has elapsed.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opt)

	attempts := uint(cfg.RedisConnectTimeout.Seconds())
	if attempts == 0 {
		attempts = 1
	}

	err = retry.Do(
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx).Err()
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(1*time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}
