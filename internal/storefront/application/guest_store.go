package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wyfcoding/storefront/internal/storefront/domain"
	"github.com/wyfcoding/storefront/pkg/logging"
)

// guestCartItem 游客购物车的持久化格式
type guestCartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// GuestStore 游客模式：购物车与心愿单保存在本地键值存储
type GuestStore struct {
	kv domain.KeyValueStore
}

// NewGuestStore 创建游客存储
func NewGuestStore(kv domain.KeyValueStore) *GuestStore {
	return &GuestStore{kv: kv}
}

func (s *GuestStore) Mode() domain.SessionMode { return domain.ModeGuest }

// Load 读取本地状态；存储不可用或数据损坏时返回空状态
func (s *GuestStore) Load(ctx context.Context) (*domain.Ledger, *domain.Wishlist, error) {
	items := readSlot[[]guestCartItem](ctx, s.kv, domain.KeyCart)
	entries := make([]domain.CartEntry, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" || it.Quantity < 1 {
			logging.Warn(ctx, "dropping invalid local cart entry", "product_id", it.ProductID, "quantity", it.Quantity)
			continue
		}
		entries = append(entries, domain.CartEntry{ProductID: domain.ProductID(it.ProductID), Quantity: it.Quantity})
	}

	ids := readSlot[[]string](ctx, s.kv, domain.KeyWishlist)
	wids := make([]domain.ProductID, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		wids = append(wids, domain.ProductID(id))
	}

	return domain.NewLedger(entries...), domain.NewWishlistFromIDs(wids...), nil
}

func (s *GuestStore) AddToCart(ctx context.Context, cart *domain.Ledger, id domain.ProductID) (*domain.Ledger, error) {
	next := cart.Clone()
	next.Add(id)
	if err := s.saveCart(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *GuestStore) RemoveFromCart(ctx context.Context, cart *domain.Ledger, id domain.ProductID) (*domain.Ledger, error) {
	next := cart.Clone()
	if !next.Remove(id) {
		return cart, nil
	}
	if err := s.saveCart(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *GuestStore) ToggleWishlist(ctx context.Context, wishlist *domain.Wishlist, id domain.ProductID) (*domain.Wishlist, error) {
	next := wishlist.Clone()
	next.Toggle(id)
	if err := s.saveWishlist(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// PlaceOrder 游客没有真实订单，清空购物车并返回本地确认
func (s *GuestStore) PlaceOrder(ctx context.Context, cart *domain.Ledger) (*domain.Ledger, *domain.OrderConfirmation, error) {
	if cart.IsEmpty() {
		return nil, nil, domain.ErrEmptyCart
	}
	next := domain.NewLedger()
	if err := s.saveCart(ctx, next); err != nil {
		return nil, nil, err
	}
	return next, &domain.OrderConfirmation{
		OrderID: uuid.NewString(),
		Message: "Order placed successfully! Thank you 💜",
		Guest:   true,
	}, nil
}

// readSlot 解码成功才返回结果，类型不匹配时不会留下部分解码的数据
func readSlot[T any](ctx context.Context, kv domain.KeyValueStore, key string) T {
	var zero T
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			logging.Warn(ctx, "local storage unavailable, using empty state", "key", key, "error", err)
		}
		return zero
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logging.Warn(ctx, "malformed local state, using empty state", "key", key, "error", err)
		return zero
	}
	return v
}

func (s *GuestStore) saveCart(ctx context.Context, cart *domain.Ledger) error {
	items := make([]guestCartItem, 0, cart.Len())
	for _, e := range cart.Entries() {
		items = append(items, guestCartItem{ProductID: string(e.ProductID), Quantity: e.Quantity})
	}
	return s.writeJSON(ctx, domain.KeyCart, items)
}

func (s *GuestStore) saveWishlist(ctx context.Context, wishlist *domain.Wishlist) error {
	ids := make([]string, 0, wishlist.Len())
	for _, id := range wishlist.IDs() {
		ids = append(ids, string(id))
	}
	return s.writeJSON(ctx, domain.KeyWishlist, ids)
}

func (s *GuestStore) writeJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		logging.Error(ctx, "failed to persist local state", "key", key, "error", err)
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}
