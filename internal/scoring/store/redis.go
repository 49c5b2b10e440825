package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	platformredis "scoregate/internal/platform/redis"
)

// Redis implements scoring.Store on top of the shared Redis client. Scores
// live as stringified floats under their fingerprint key; interests as
// JSON arrays under i:<client_id>. Every call is bounded by the configured
// timeout so a stalled store surfaces as an error instead of a hang.
type Redis struct {
	client  *platformredis.Client
	timeout time.Duration
}

// NewRedis wraps the shared client. A zero timeout disables the per-call bound.
func NewRedis(client *platformredis.Client, timeout time.Duration) *Redis {
	return &Redis{client: client, timeout: timeout}
}

func (s *Redis) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// CacheGet returns the cached score for key, or nil on a miss.
func (s *Redis) CacheGet(ctx context.Context, key string) (*float64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("redis get %q: parse %q: %w", key, raw, err)
	}
	return &value, nil
}

// CacheSet stores value under key for ttl.
func (s *Redis) CacheSet(ctx context.Context, key string, value float64, ttl time.Duration) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw := strconv.FormatFloat(value, 'f', -1, 64)
	if err := s.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// InterestsGet returns the interest tags stored for the client, or nil
// when the client has no entry.
func (s *Redis) InterestsGet(ctx context.Context, clientID int64) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	key := interestsKey(clientID)
	raw, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	var interests []string
	if err := json.Unmarshal([]byte(raw), &interests); err != nil {
		return nil, fmt.Errorf("redis get %q: decode %q: %w", key, raw, err)
	}
	return interests, nil
}

func interestsKey(clientID int64) string {
	return "i:" + strconv.FormatInt(clientID, 10)
}
