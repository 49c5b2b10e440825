// Package store provides the Redis-backed store used in production and an
// in-memory variant for tests and local runs.
package store

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	value     float64
	expiresAt time.Time
}

// Memory implements scoring.Store with TTL-aware in-process maps. Safe for
// concurrent use.
type Memory struct {
	mu        sync.RWMutex
	cache     map[string]cacheEntry
	interests map[int64][]string

	now func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		cache:     make(map[string]cacheEntry),
		interests: make(map[int64][]string),
		now:       time.Now,
	}
}

// CacheGet returns the cached score for key, or nil when absent or expired.
func (s *Memory) CacheGet(_ context.Context, key string) (*float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.cache[key]
	if !ok || s.now().After(entry.expiresAt) {
		return nil, nil
	}
	value := entry.value
	return &value, nil
}

// CacheSet stores value under key for ttl.
func (s *Memory) CacheSet(_ context.Context, key string, value float64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cacheEntry{value: value, expiresAt: s.now().Add(ttl)}
	return nil
}

// InterestsGet returns the interests seeded for the client, nil when unknown.
func (s *Memory) InterestsGet(_ context.Context, clientID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	interests, ok := s.interests[clientID]
	if !ok {
		return nil, nil
	}
	out := make([]string, len(interests))
	copy(out, interests)
	return out, nil
}

// SeedInterests sets the interest tags for a client.
func (s *Memory) SeedInterests(clientID int64, interests []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interests[clientID] = interests
}
