// Package configstore exposes typed access to the business configuration
// table (fee thresholds, daily limits, fraud parameters). Reads go
// through Redis with a 24 hour TTL; writes and deletes invalidate the
// cached key immediately.
package configstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	apperrors "paylink/internal/errors"
	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/repositories/cache"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	cacheKeyPrefix = "config:"
	cacheTTL       = 24 * time.Hour
)

// Store is the cached key/value configuration lookup.
type Store struct {
	repo   repositories.ConfigurationRepository
	cache  *cache.Service
	logger *zap.Logger
}

// NewStore creates a configuration store.
func NewStore(repo repositories.ConfigurationRepository, cacheSvc *cache.Service, logger *zap.Logger) *Store {
	if repo == nil {
		panic("configuration repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{repo: repo, cache: cacheSvc, logger: logger}
}

// get returns the raw string value for key, with the bool reporting
// whether the key exists at all.
func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	cacheKey := cacheKeyPrefix + key

	var cached string
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached, true, nil
	}

	cfg, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrConfigNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	if err := s.cache.SetWithTTL(ctx, cacheKey, cfg.Value, cacheTTL); err != nil {
		s.logger.Warn("failed to cache configuration", zap.String("key", key), zap.Error(err))
	}
	return cfg.Value, true, nil
}

// GetString returns the configured value for key, or def when unset.
func (s *Store) GetString(ctx context.Context, key, def string) (string, error) {
	val, ok, err := s.get(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	return val, nil
}

// GetInt returns the configured value for key as an int, or def when
// unset. A stored value that does not parse is a configuration fault,
// not a silent default.
func (s *Store) GetInt(ctx context.Context, key string, def int) (int, error) {
	val, ok, err := s.get(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", apperrors.ErrConfigurationMissing, key, val)
	}
	return i, nil
}

// GetFloat returns the configured value for key as a float64, or def
// when unset.
func (s *Store) GetFloat(ctx context.Context, key string, def float64) (float64, error) {
	val, ok, err := s.get(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", apperrors.ErrConfigurationMissing, key, val)
	}
	return f, nil
}

// GetDecimal returns the configured value for key as a decimal, or def
// when unset.
func (s *Store) GetDecimal(ctx context.Context, key string, def decimal.Decimal) (decimal.Decimal, error) {
	val, ok, err := s.get(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	d, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s=%q is not a decimal", apperrors.ErrConfigurationMissing, key, val)
	}
	return d, nil
}

// Require returns the value for key, failing with ErrConfigurationMissing
// when the key has no value.
func (s *Store) Require(ctx context.Context, key string) (string, error) {
	val, ok, err := s.get(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", apperrors.ErrConfigurationMissing, key)
	}
	return val, nil
}

// List returns every configuration row. Listing is an admin operation
// and bypasses the cache.
func (s *Store) List(ctx context.Context) ([]*models.Configuration, error) {
	return s.repo.List(ctx)
}

// Set writes a configuration value and invalidates its cache entry.
func (s *Store) Set(ctx context.Context, key, value, description string) error {
	err := s.repo.Upsert(ctx, &models.Configuration{Key: key, Value: value, Description: description})
	if err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, cacheKeyPrefix+key); err != nil {
		s.logger.Warn("failed to invalidate configuration cache", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// Delete removes a configuration value and invalidates its cache entry.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, cacheKeyPrefix+key); err != nil {
		s.logger.Warn("failed to invalidate configuration cache", zap.String("key", key), zap.Error(err))
	}
	return nil
}
