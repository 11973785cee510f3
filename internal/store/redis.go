package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps records as JSON strings under "<collection>:<key>" keys.
// Records carry no TTL: expiry is an application-level attribute, and expired
// tokens stay in storage until deleted or overwritten.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a Redis-backed record store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(collection, key string) string {
	return collection + ":" + key
}

// Create stores a new record via SET NX, failing with ErrExists when the key
// is already present.
func (s *RedisStore) Create(ctx context.Context, collection, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	ok, err := s.client.SetNX(ctx, redisKey(collection, key), data, 0).Result()
	if err != nil {
		return fmt.Errorf("set record: %w", err)
	}
	if !ok {
		return ErrExists
	}
	return nil
}

// Read fetches a record and decodes it into out.
func (s *RedisStore) Read(ctx context.Context, collection, key string, out any) error {
	data, err := s.client.Get(ctx, redisKey(collection, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("get record: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// Update replaces an existing record via SET XX, failing with ErrNotFound
// when the key is absent.
func (s *RedisStore) Update(ctx context.Context, collection, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	res, err := s.client.SetXX(ctx, redisKey(collection, key), data, 0).Result()
	if err != nil {
		return fmt.Errorf("set record: %w", err)
	}
	if !res {
		return ErrNotFound
	}
	return nil
}

// Delete removes a record.
func (s *RedisStore) Delete(ctx context.Context, collection, key string) error {
	removed, err := s.client.Del(ctx, redisKey(collection, key)).Result()
	if err != nil {
		return fmt.Errorf("del record: %w", err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}
