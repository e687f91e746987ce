package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skysearch-dev/skysearch/internal/models"
)

const defaultTheme = "light"

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an already-connected client. TTL applies per session
// key and is refreshed on every write.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) RecentAirports(ctx context.Context, sessionID string) ([]models.Airport, error) {
	data, err := s.client.Get(ctx, recentKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var airports []models.Airport
	if err := json.Unmarshal(data, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (s *RedisStore) SaveRecentAirports(ctx context.Context, sessionID string, airports []models.Airport) error {
	data, err := json.Marshal(airports)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, recentKey(sessionID), data, s.ttl).Err()
}

func (s *RedisStore) Theme(ctx context.Context, sessionID string) (string, error) {
	theme, err := s.client.Get(ctx, themeKey(sessionID)).Result()
	if err == redis.Nil {
		return defaultTheme, nil
	}
	if err != nil {
		return defaultTheme, err
	}
	return theme, nil
}

func (s *RedisStore) SetTheme(ctx context.Context, sessionID, theme string) error {
	return s.client.Set(ctx, themeKey(sessionID), theme, s.ttl).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func recentKey(sessionID string) string {
	return "recent:" + sessionID
}

func themeKey(sessionID string) string {
	return "theme:" + sessionID
}
