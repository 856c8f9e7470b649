// Package redis 基于 Redis 的键值存储，适合多台终端共享游客状态
package redis

import (
	"context"
	"errors"

	"github.com/wyfcoding/storefront/internal/storefront/domain"
	"github.com/wyfcoding/storefront/pkg/cache"
)

type KVStore struct {
	cache  *cache.RedisCache
	prefix string
}

// NewKVStore 所有键加上 prefix，例如 storefront:cart
func NewKVStore(c *cache.RedisCache, prefix string) *KVStore {
	return &KVStore{cache: c, prefix: prefix}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.cache.Get(ctx, s.prefix+key)
	if errors.Is(err, cache.ErrMiss) {
		return nil, domain.ErrKeyNotFound
	}
	return v, err
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return s.cache.Set(ctx, s.prefix+key, value, 0)
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.cache.Delete(ctx, s.prefix+key)
}
