// Package scoring computes client scores against a cache-backed store and
// resolves client interest tags.
package scoring

//go:generate mockgen -source=scoring.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"scoregate/internal/platform/metrics"
)

// CacheTTL is how long a computed score stays valid in the store.
const CacheTTL = 3600 * time.Second

const cacheKeyPrefix = "uid:"

// Store is the backing key-value/interests collaborator. A nil cached
// value means a miss. Implementations must tolerate concurrent use; two
// callers computing the same key may both write (last write wins).
type Store interface {
	CacheGet(ctx context.Context, key string) (*float64, error)
	CacheSet(ctx context.Context, key string, value float64, ttl time.Duration) error
	InterestsGet(ctx context.Context, clientID int64) ([]string, error)
}

// Person holds the cleaned personal attributes scored by the engine.
// Empty strings mean the field was not supplied; Gender distinguishes an
// absent value from the valid 0.
type Person struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Birthday  string
	Gender    *int
}

// CacheKey returns the stable content fingerprint identifying a cached
// score: an MD5 digest over first name, last name, phone and birthday in
// that fixed order, absent fields contributing empty strings.
func CacheKey(p Person) string {
	sum := md5.Sum([]byte(p.FirstName + p.LastName + p.Phone + p.Birthday))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Engine is the scoring/interests service over a Store.
type Engine struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics attaches Prometheus metrics for cache hit/miss accounting.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New builds an Engine over the given store.
func New(store Store, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	e := &Engine{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Score returns the cached score for the person's fingerprint when the
// store has one, otherwise computes it additively, writes it back with
// CacheTTL and returns it. Store failures propagate unmasked.
func (e *Engine) Score(ctx context.Context, p Person) (float64, error) {
	key := CacheKey(p)

	cached, err := e.store.CacheGet(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("cache get: %w", err)
	}
	if cached != nil {
		if e.metrics != nil {
			e.metrics.IncrementCacheHits()
		}
		return *cached, nil
	}
	if e.metrics != nil {
		e.metrics.IncrementCacheMisses()
	}

	var score float64
	if p.Phone != "" {
		score += 1.5
	}
	if p.Email != "" {
		score += 1.5
	}
	if p.Birthday != "" && p.Gender != nil {
		score += 1.5
	}
	if p.FirstName != "" && p.LastName != "" {
		score += 0.5
	}

	if err := e.store.CacheSet(ctx, key, score, CacheTTL); err != nil {
		return 0, fmt.Errorf("cache set: %w", err)
	}
	e.logger.Debug("score computed", "key", key, "score", score)
	return score, nil
}

// Interests returns the store's interest tags for the client verbatim, or
// an empty list when the store has no entry. Never returns nil alongside a
// nil error.
func (e *Engine) Interests(ctx context.Context, clientID int64) ([]string, error) {
	interests, err := e.store.InterestsGet(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("interests get: %w", err)
	}
	if interests == nil {
		interests = []string{}
	}
	return interests, nil
}
