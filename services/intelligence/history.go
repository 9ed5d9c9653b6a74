// File: services/intelligence/history.go
package ai

import (
	"context"
	"encoding/json"
	"time"

	"repairdesk/models"
	"repairdesk/utils"

	"github.com/go-redis/redis/v8"
)

// RedisHistoryStore keeps per-session chat transcripts in Redis so that
// clients that do not echo history back still get coherent conversations.
type RedisHistoryStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisHistoryStore(client *redis.Client, ttl time.Duration) *RedisHistoryStore {
	return &RedisHistoryStore{client: client, ttl: ttl}
}

func (s *RedisHistoryStore) Get(ctx context.Context, sessionID string) ([]models.ChatTurn, error) {
	key := utils.ChatHistoryPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var turns []models.ChatTurn
	if err := json.Unmarshal([]byte(data), &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

func (s *RedisHistoryStore) Set(ctx context.Context, sessionID string, turns []models.ChatTurn) error {
	key := utils.ChatHistoryPrefix + sessionID
	b, err := json.Marshal(turns)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisHistoryStore) Clear(ctx context.Context, sessionID string) error {
	key := utils.ChatHistoryPrefix + sessionID
	return s.client.Del(ctx, key).Err()
}
