package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/cache"
)

func TestCategoryCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	c := NewCategoryCache(rc, time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx)
	assert.False(t, ok)

	c.Set(ctx, []*domain.Category{{ID: 1, Name: "Stationery"}, {ID: 2, Name: "Plush Toys"}})
	got, ok := c.Get(ctx)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "Plush Toys", got[1].Name)
	assert.Equal(t, time.Minute, mr.TTL(categoriesKey))

	c.Invalidate(ctx)
	_, ok = c.Get(ctx)
	assert.False(t, ok)
}

func TestCategoryCacheCorruptValueIsMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	require.NoError(t, mr.Set(categoriesKey, "not json"))

	_, ok := NewCategoryCache(rc, time.Minute).Get(context.Background())
	assert.False(t, ok)
}
