package redis

import (
	"context"
	"errors"
	"time"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/cache"
	"github.com/wyfcoding/storefront/pkg/logging"
)

const categoriesKey = "catalog:categories"

type categoryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// categoryCache 基于 Redis 的分类列表缓存，读写失败都按未命中处理
type categoryCache struct {
	client *cache.RedisCache
	ttl    time.Duration
}

// NewCategoryCache 创建分类缓存
func NewCategoryCache(client *cache.RedisCache, ttl time.Duration) domain.CategoryCache {
	return &categoryCache{client: client, ttl: ttl}
}

func (c *categoryCache) Get(ctx context.Context) ([]*domain.Category, bool) {
	var dtos []categoryDTO
	if err := c.client.GetJSON(ctx, categoriesKey, &dtos); err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logging.Warn(ctx, "Category cache read failed", "error", err)
		}
		return nil, false
	}
	categories := make([]*domain.Category, len(dtos))
	for i, d := range dtos {
		categories[i] = &domain.Category{ID: d.ID, Name: d.Name}
	}
	return categories, true
}

func (c *categoryCache) Set(ctx context.Context, categories []*domain.Category) {
	dtos := make([]categoryDTO, len(categories))
	for i, cat := range categories {
		dtos[i] = categoryDTO{ID: cat.ID, Name: cat.Name}
	}
	if err := c.client.SetJSON(ctx, categoriesKey, dtos, c.ttl); err != nil {
		logging.Warn(ctx, "Category cache write failed", "error", err)
	}
}

func (c *categoryCache) Invalidate(ctx context.Context) {
	if err := c.client.Delete(ctx, categoriesKey); err != nil {
		logging.Warn(ctx, "Category cache invalidate failed", "error", err)
	}
}
