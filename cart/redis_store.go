package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisCartPrefix = "cart:"
	redisCartExpiry = 30 * 24 * time.Hour
)

// RedisStore persists carts as JSON blobs in redis. Carts survive sessions
// for the same user and expire after a month of inactivity.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func cartKey(userID uuid.UUID) string {
	return redisCartPrefix + userID.String()
}

func (s *RedisStore) Load(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	val, err := s.client.Get(ctx, cartKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return &Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c := &Cart{}
	if err := json.Unmarshal([]byte(val), c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return c, nil
}

func (s *RedisStore) Save(ctx context.Context, userID uuid.UUID, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(userID), data, redisCartExpiry).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
