package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/storefront/domain"
	"github.com/wyfcoding/storefront/pkg/cache"
)

func TestKVStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	s := NewKVStore(cache.NewFromClient(client), "storefront:")
	ctx := context.Background()

	_, err := s.Get(ctx, domain.KeyCart)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, domain.KeyCart, []byte(`[{"productId":"1","quantity":2}]`)))
	assert.True(t, mr.Exists("storefront:cart"))

	v, err := s.Get(ctx, domain.KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"1","quantity":2}]`, string(v))

	require.NoError(t, s.Delete(ctx, domain.KeyCart))
	assert.False(t, mr.Exists("storefront:cart"))
}
