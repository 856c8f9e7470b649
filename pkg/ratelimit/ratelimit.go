// Package ratelimit 提供基于 Redis 固定窗口计数的限流器
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/storefront/pkg/cache"
)

// RateLimiter defines the interface for rate limiting
type RateLimiter interface {
	// Allow checks if the request is allowed for the given key and limit
	Allow(ctx context.Context, key string, limit Limit) (*Result, error)
}

// Limit 单个窗口内允许的请求数
type Limit struct {
	Rate   int
	Period time.Duration
}

// Result 限流检查结果
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RedisRateLimiter 使用 INCR + EXPIRE 实现的固定窗口限流
type RedisRateLimiter struct {
	cache *cache.RedisCache
}

// NewRedisRateLimiter creates a new RedisRateLimiter
func NewRedisRateLimiter(c *cache.RedisCache) *RedisRateLimiter {
	return &RedisRateLimiter{cache: c}
}

// Allow checks if the request is allowed
func (r *RedisRateLimiter) Allow(ctx context.Context, key string, limit Limit) (*Result, error) {
	count, err := r.cache.Incr(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}
	// 窗口内第一次请求时设置过期时间
	if count == 1 {
		if err := r.cache.Expire(ctx, key, limit.Period); err != nil {
			return nil, fmt.Errorf("rate limit expire failed: %w", err)
		}
	}

	res := &Result{
		Allowed:   count <= int64(limit.Rate),
		Remaining: max(limit.Rate-int(count), 0),
	}
	if !res.Allowed {
		ttl, err := r.cache.TTL(ctx, key)
		if err == nil && ttl > 0 {
			res.RetryAfter = ttl
		} else {
			res.RetryAfter = limit.Period
		}
	}
	return res, nil
}
