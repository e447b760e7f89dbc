package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrMiss is returned by Get when nothing is stored under the key.
var ErrMiss = errors.New("cache miss")

// RedisClient stores JSON encoded values of T under string keys.
type RedisClient[T any] struct {
	client     redis.Cmdable
	logger     zerolog.Logger
	expiration time.Duration
}

func NewRedisClient[T any](
	client redis.Cmdable,
	logger zerolog.Logger,
	expiration time.Duration,
) *RedisClient[T] {
	logger = logger.With().Str("component", "RedisCache").Logger()
	return &RedisClient[T]{client: client, logger: logger, expiration: expiration}
}

func (c *RedisClient[T]) Set(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error().
			Ctx(ctx).
			Str("key", key).
			Err(err).
			Msg("failed to encode weather card")
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, c.expiration).Err(); err != nil {
		c.logger.Error().
			Ctx(ctx).
			Str("key", key).
			Err(err).
			Msg("cache write failed")
		return fmt.Errorf("set %s: %w", key, err)
	}

	c.logger.Debug().
		Ctx(ctx).
		Str("key", key).
		Int("bytes", len(data)).
		Dur("expiration", c.expiration).
		Msg("weather card cached")
	return nil
}

// Get returns the value under key. A missing key yields an error matching
// both ErrMiss and redis.Nil; anything else is a read failure.
//
//nolint:ireturn
func (c *RedisClient[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return zero, fmt.Errorf("%w: %s: %w", ErrMiss, key, err)
	case err != nil:
		c.logger.Error().
			Ctx(ctx).
			Str("key", key).
			Err(err).
			Msg("cache read failed")
		return zero, fmt.Errorf("get %s: %w", key, err)
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		c.logger.Error().
			Ctx(ctx).
			Str("key", key).
			Err(err).
			Msg("cached weather card is not valid JSON")
		return zero, fmt.Errorf("unmarshal %s: %w", key, err)
	}

	c.logger.Debug().
		Ctx(ctx).
		Str("key", key).
		Msg("cache hit")
	return value, nil
}
