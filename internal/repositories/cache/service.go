// Package cache wraps the Redis client with JSON encode/decode helpers
// used by the config store and wallet lookups.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Service is a thin JSON cache over Redis. A nil *Service is valid and
// behaves as a cache that never hits, so callers do not need to branch
// on whether caching is enabled.
type Service struct {
	client *redis.Client
	ttl    time.Duration
}

// NewService creates a cache service with the given default TTL.
func NewService(client *redis.Client, defaultTTL time.Duration) *Service {
	return &Service{client: client, ttl: defaultTTL}
}

// Set stores a value under key with the default TTL.
func (s *Service) Set(ctx context.Context, key string, value interface{}) error {
	if s == nil {
		return nil
	}
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

// SetWithTTL stores a value under key with an explicit TTL.
func (s *Service) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get loads the value stored under key into dest. The bool result is
// false on a cache miss.
func (s *Service) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if s == nil {
		return false, nil
	}
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

// Delete removes the given keys.
func (s *Service) Delete(ctx context.Context, keys ...string) error {
	if s == nil || len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// HealthCheck pings Redis.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s == nil {
		return nil
	}
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *Service) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}
