package cache

import (
	"context"
	"errors"

	"tiktok-planner/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RedisBlobStore keeps each slot as a plain redis string without expiry
type RedisBlobStore struct {
	client *redis.Client
	prefix string
}

func NewRedisBlobStore(client *redis.Client, prefix string) repository.IBlobStore {
	return &RedisBlobStore{client: client, prefix: prefix}
}

func (s *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrBlobNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *RedisBlobStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}
