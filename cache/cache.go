// Package cache is a best-effort read-through cache in front of the durable
// stores. Every failure is swallowed and logged: a cache outage degrades to
// direct database reads with no behavioral difference other than latency.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore wraps a redis client. A nil client is valid and turns every
// operation into a no-op (Get always misses).
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Get unmarshals the cached value for key into dest and reports whether it
// was a hit. Any error counts as a miss.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) bool {
	if s == nil || s.client == nil {
		return false
	}

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: get %s failed: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("cache: unmarshal %s failed: %v", key, err)
		return false
	}
	return true
}

func (s *Store) Put(ctx context.Context, key string, value interface{}) {
	if s == nil || s.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: marshal %s failed: %v", key, err)
		return
	}

	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		log.Printf("cache: set %s failed: %v", key, err)
	}
}

func (s *Store) Evict(ctx context.Context, keys ...string) {
	if s == nil || s.client == nil || len(keys) == 0 {
		return
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache: evict %v failed: %v", keys, err)
	}
}

// EvictNamespace removes every key under prefix. Coarse by design: product
// and cart list entries are invalidated wholesale on mutation rather than
// computing precise deltas, with the TTL as a safety net.
func (s *Store) EvictNamespace(ctx context.Context, prefix string) {
	if s == nil || s.client == nil {
		return
	}

	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("cache: evict %s failed: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("cache: scan %s* failed: %v", prefix, err)
	}
}
