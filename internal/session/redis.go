package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "elyubot:session:"

// RedisStore persists slot memory in Redis, one JSON value per conversation
// key, for deployments where turns may land on different processes.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing client. A zero ttl means keys never expire.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// DialRedis connects and pings a Redis server.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func (r *RedisStore) Get(ctx context.Context, conversationID string) (Slots, error) {
	raw, err := r.client.Get(ctx, keyPrefix+conversationID).Result()
	if errors.Is(err, redis.Nil) {
		return Slots{}, nil
	}
	if err != nil {
		return Slots{}, fmt.Errorf("get session %s: %w", conversationID, err)
	}
	var s Slots
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Slots{}, fmt.Errorf("decode session %s: %w", conversationID, err)
	}
	return s, nil
}

func (r *RedisStore) Put(ctx context.Context, conversationID string, slots Slots) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", conversationID, err)
	}
	if err := r.client.Set(ctx, keyPrefix+conversationID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("put session %s: %w", conversationID, err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, conversationID string) error {
	if err := r.client.Del(ctx, keyPrefix+conversationID).Err(); err != nil {
		return fmt.Errorf("clear session %s: %w", conversationID, err)
	}
	return nil
}
