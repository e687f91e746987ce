// Package cache stores search responses keyed by the full parameter set,
// so one external fetch serves every revisit of the same search.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skysearch-dev/skysearch/internal/models"
	"github.com/skysearch-dev/skysearch/internal/skyapi"
)

type Cache interface {
	Get(ctx context.Context, p skyapi.SearchParams) (*models.SearchResults, bool)
	Set(ctx context.Context, p skyapi.SearchParams, results *models.SearchResults) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, p skyapi.SearchParams) (*models.SearchResults, bool) {
	data, err := c.client.Get(ctx, generateKey(p)).Bytes()
	if err != nil {
		return nil, false
	}

	var results models.SearchResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false
	}
	return &results, true
}

func (c *RedisCache) Set(ctx context.Context, p skyapi.SearchParams, results *models.SearchResults) error {
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, generateKey(p), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, p skyapi.SearchParams) (*models.SearchResults, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, p skyapi.SearchParams, results *models.SearchResults) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func generateKey(p skyapi.SearchParams) string {
	hash := sha256.Sum256([]byte(p.Values().Encode()))
	return "search:" + hex.EncodeToString(hash[:])
}
