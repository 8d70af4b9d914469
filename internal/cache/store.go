package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL applies when callers pass a zero TTL.
const DefaultTTL = 5 * time.Minute

// Store is the shared read-through cache in front of all platform calls.
// Every operation except the initial connect is best-effort: a failing Redis
// degrades reads to misses and writes to no-ops, it never surfaces errors to
// callers.
type Store struct {
	client *redis.Client
}

// NewStore wraps an already-connected Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get returns the cached payload for key, or found=false on miss, expiry or
// any backend failure. A nil Store always misses.
func (s *Store) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	if s == nil {
		return nil, false
	}
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[warn] cache get failed key=%s error=%v", key, err)
		return nil, false
	}
	return json.RawMessage(data), true
}

// Set stores value under key with the given TTL. Failures are logged and
// swallowed; the cache is an optimization, not a source of truth.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s == nil {
		return
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("[warn] cache marshal failed key=%s error=%v", key, err)
		return
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("[warn] cache set failed key=%s error=%v", key, err)
	}
}

// Delete removes a single key.
func (s *Store) Delete(ctx context.Context, keys ...string) {
	if s == nil || len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[warn] cache delete failed keys=%v error=%v", keys, err)
	}
}

// DeleteMatching removes every key matching the glob pattern, e.g.
// "host:properties:*". Enumeration and deletion are not atomic: a concurrent
// writer may repopulate a key in between, which is acceptable because the
// entry still carries its own TTL.
func (s *Store) DeleteMatching(ctx context.Context, pattern string) {
	if s == nil {
		return
	}
	keys, err := s.client.Keys(ctx, pattern).Result()
	if err != nil {
		log.Printf("[warn] cache scan failed pattern=%s error=%v", pattern, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[warn] cache delete failed pattern=%s error=%v", pattern, err)
	}
}
