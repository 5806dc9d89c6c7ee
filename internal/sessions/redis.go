package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists sessions in Redis, one JSON payload per token, with
// expiry delegated to the key TTL. Use it when several instances must
// share session state.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a session store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get returns the session for token, or (nil, nil) when the key is absent.
func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session failed: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("unmarshal stored session failed: %w", err)
	}
	return &session, nil
}

// Set stores the session under token for ttl.
func (s *RedisStore) Set(ctx context.Context, token string, session *Session, ttl time.Duration) error {
	if ttl <= 0 {
		return s.Clear(ctx, token)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := s.client.Set(ctx, s.key(token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session failed: %w", err)
	}
	return nil
}

// Clear removes the session for token. Clearing an absent token succeeds.
func (s *RedisStore) Clear(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("redis delete session failed: %w", err)
	}
	return nil
}

func (s *RedisStore) key(token string) string {
	return "session:" + token
}
