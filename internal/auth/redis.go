package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "sams:session:"

// RedisSessionStore keeps sessions in Redis so multiple API instances can
// share them. Expiry is handled by key TTLs.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore wraps a Redis client as a session store.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// Save stores a session with the given TTL.
func (s *RedisSessionStore) Save(ctx context.Context, id string, userID int, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKeyPrefix+id, userID, ttl).Err()
}

// Get resolves a session id to a user id.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (int, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNoSession
		}
		return 0, err
	}
	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, ErrNoSession
	}
	return userID, nil
}

// Delete removes a session.
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}
