package redis

// Package redis provides a Redis-backed session storage adapter.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	apperrors "github.com/target/storefront-client/internal/errors"
)

// Storage keeps session keys in Redis under a common prefix.
// A zero TTL keeps keys until they are removed.
type Storage struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStorage creates a Redis storage that keeps keys under prefix.
// A negative ttl is treated as zero.
func NewStorage(client redis.UniversalClient, prefix string, ttl time.Duration) *Storage {
	if ttl < 0 {
		ttl = 0
	}
	return &Storage{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Storage) GetItem(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", apperrors.NotFound("storage key is empty")
	}

	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.NotFoundf("storage key %q not found", key)
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("storage key cannot be empty")
	}
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	if key == "" {
		return nil // Nothing to delete
	}
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
