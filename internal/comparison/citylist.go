package comparison

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ListStore persists the ordered comparison city list between runs.
type ListStore interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, cities []string) error
}

// RedisListStore keeps the list as a JSON array under a fixed key, the same
// contract the dashboard always had with its browser storage.
type RedisListStore struct {
	client *redis.Client
	key    string
	logger zerolog.Logger
}

func NewRedisListStore(client *redis.Client, key string, logger zerolog.Logger) *RedisListStore {
	logger = logger.With().Str("component", "RedisListStore").Logger()
	return &RedisListStore{client: client, key: key, logger: logger}
}

// Load returns the stored list, or nil when nothing was saved yet.
func (s *RedisListStore) Load(ctx context.Context) ([]string, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error().Ctx(ctx).Str("key", s.key).Err(err).Msg("failed to load city list")
		return nil, err
	}

	var cities []string
	if err := json.Unmarshal(data, &cities); err != nil {
		s.logger.Error().Ctx(ctx).Str("key", s.key).Err(err).Msg("stored city list is corrupt")
		return nil, fmt.Errorf("unmarshal city list: %w", err)
	}
	return cities, nil
}

func (s *RedisListStore) Save(ctx context.Context, cities []string) error {
	data, err := json.Marshal(cities)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		s.logger.Error().Ctx(ctx).Str("key", s.key).Err(err).Msg("failed to save city list")
		return err
	}
	return nil
}
