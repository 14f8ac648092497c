package qr

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "sams:qr:"

// RedisStore keeps QR tokens in Redis with native key TTLs.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a Redis client as a token store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save stores a token for the given lifetime.
func (s *RedisStore) Save(ctx context.Context, token string, userID int, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKeyPrefix+token, userID, ttl).Err()
}

// Get resolves a token to a user id.
func (s *RedisStore) Get(ctx context.Context, token string) (int, error) {
	val, err := s.client.Get(ctx, tokenKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrTokenNotFound
		}
		return 0, err
	}
	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, ErrTokenNotFound
	}
	return userID, nil
}

// Delete removes a token.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, tokenKeyPrefix+token).Err()
}

// Sweep is a no-op; Redis expires keys on its own.
func (s *RedisStore) Sweep(context.Context) {}
