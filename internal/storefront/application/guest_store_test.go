package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/storefront/domain"
	"github.com/wyfcoding/storefront/internal/storefront/infrastructure/persistence/memory"
)

func TestGuestStorePersistedLayout(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	s := NewGuestStore(kv)

	cart, wishlist, err := s.Load(ctx)
	require.NoError(t, err)

	cart, err = s.AddToCart(ctx, cart, "p1")
	require.NoError(t, err)
	cart, err = s.AddToCart(ctx, cart, "p1")
	require.NoError(t, err)
	_, err = s.ToggleWishlist(ctx, wishlist, "p3")
	require.NoError(t, err)

	rawCart, err := kv.Get(ctx, domain.KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"p1","quantity":2}]`, string(rawCart))

	rawWishlist, err := kv.Get(ctx, domain.KeyWishlist)
	require.NoError(t, err)
	assert.JSONEq(t, `["p3"]`, string(rawWishlist))
	assert.Equal(t, 2, cart.Quantity("p1"))
}

func TestGuestStoreMalformedDataFallsBackToEmpty(t *testing.T) {
	cases := []struct {
		name     string
		cart     string
		wishlist string
	}{
		{"syntax error", "{oops", `{"not":"a list"}`},
		{"type mismatch", `[{"productId":1,"quantity":2}]`, `["p1",7]`},
		{"wrong element shape", `["p1"]`, `[{"id":"p1"}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			kv := memory.NewKVStore()
			require.NoError(t, kv.Set(ctx, domain.KeyCart, []byte(tc.cart)))
			require.NoError(t, kv.Set(ctx, domain.KeyWishlist, []byte(tc.wishlist)))

			cart, wishlist, err := NewGuestStore(kv).Load(ctx)

			require.NoError(t, err)
			assert.True(t, cart.IsEmpty())
			assert.Equal(t, 0, cart.ItemCount())
			assert.Equal(t, 0, wishlist.Len())
		})
	}
}

func TestGuestStoreDropsEntriesWithoutProductID(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	require.NoError(t, kv.Set(ctx, domain.KeyCart, []byte(`[{"quantity":2},{"productId":"p2","quantity":1}]`)))
	require.NoError(t, kv.Set(ctx, domain.KeyWishlist, []byte(`["","p3"]`)))

	cart, wishlist, err := NewGuestStore(kv).Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, cart.Len())
	assert.Equal(t, 1, cart.Quantity("p2"))
	assert.Equal(t, []domain.ProductID{"p3"}, wishlist.IDs())
}

func TestGuestStoreWriteFailureLeavesInputUntouched(t *testing.T) {
	ctx := context.Background()
	s := NewGuestStore(failingKV{memory.NewKVStore()})
	cart := domain.NewLedger()

	_, err := s.AddToCart(ctx, cart, "p1")

	assert.ErrorIs(t, err, errBoom)
	assert.True(t, cart.IsEmpty())
}

func TestGuestStorePlaceOrder(t *testing.T) {
	ctx := context.Background()
	s := NewGuestStore(memory.NewKVStore())

	_, _, err := s.PlaceOrder(ctx, domain.NewLedger())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	cart := domain.NewLedger(domain.CartEntry{ProductID: "p1", Quantity: 1})
	next, conf, err := s.PlaceOrder(ctx, cart)
	require.NoError(t, err)
	assert.True(t, next.IsEmpty())
	assert.True(t, conf.Guest)
	assert.NotEmpty(t, conf.OrderID)
}
