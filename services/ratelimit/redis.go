package ratelimitsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

const keyPrefix = "rate_limit"

// RedisStore is a fixed-window counter per identifier, shared by every API instance.
// Redis failures let the request through.
type RedisStore struct {
	client  redis.UniversalClient
	limit   int64
	window  time.Duration
	timeout time.Duration
	logger  core.Logger
}

var _ middleware.RateLimiterStore = (*RedisStore)(nil)

func NewRedisStore(client redis.UniversalClient, limit int, window time.Duration, logger core.Logger) *RedisStore {
	return &RedisStore{
		client:  client,
		limit:   int64(limit),
		window:  window,
		timeout: 250 * time.Millisecond,
		logger:  logger,
	}
}

func (s *RedisStore) key(identifier string) string {
	return fmt.Sprintf("%s:api:%s", keyPrefix, identifier)
}

func (s *RedisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	key := s.key(identifier)
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		s.warn("rate limiter: redis INCR failed", err)
		return true, nil
	}
	// first hit of the window
	if count == 1 {
		if err = s.client.Expire(ctx, key, s.window).Err(); err != nil {
			s.warn("rate limiter: redis EXPIRE failed", err)
		}
	}
	return count <= s.limit, nil
}

// RetryAfter returns how long until the window of identifier resets.
func (s *RedisStore) RetryAfter(ctx context.Context, identifier string) time.Duration {
	ttl, err := s.client.TTL(ctx, s.key(identifier)).Result()
	if err != nil || ttl < 0 {
		return s.window
	}
	return ttl
}

func (s *RedisStore) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, err)
	}
}
