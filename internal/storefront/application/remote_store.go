package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/storefront/internal/storefront/domain"
	"github.com/wyfcoding/storefront/pkg/logging"
)

// RemoteStore 登录模式：状态以远端为准，每次变更成功后整体重新拉取
type RemoteStore struct {
	api CartAPI
}

// NewRemoteStore 创建远端存储
func NewRemoteStore(api CartAPI) *RemoteStore {
	return &RemoteStore{api: api}
}

func (s *RemoteStore) Mode() domain.SessionMode { return domain.ModeAuthenticated }

func (s *RemoteStore) Load(ctx context.Context) (*domain.Ledger, *domain.Wishlist, error) {
	cart, err := s.loadCart(ctx)
	if err != nil {
		return nil, nil, err
	}
	wishlist, err := s.loadWishlist(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cart, wishlist, nil
}

func (s *RemoteStore) AddToCart(ctx context.Context, _ *domain.Ledger, id domain.ProductID) (*domain.Ledger, error) {
	if err := s.api.AddToCart(ctx, id, 1); err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	next, err := s.loadCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("item added to cart but %w: %w", domain.ErrStaleState, err)
	}
	return next, nil
}

// RemoveFromCart 通过远端行 ID 删除；本地没有该商品时为空操作
func (s *RemoteStore) RemoveFromCart(ctx context.Context, cart *domain.Ledger, id domain.ProductID) (*domain.Ledger, error) {
	entry, ok := cart.Entry(id)
	if !ok {
		return cart, nil
	}
	if entry.EntryID == "" {
		return nil, fmt.Errorf("%w: cart entry for product %s has no remote id", domain.ErrValidation, id)
	}
	if err := s.api.RemoveCartItem(ctx, entry.EntryID); err != nil {
		return nil, fmt.Errorf("failed to remove item: %w", err)
	}
	next, err := s.loadCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("item removed from cart but %w: %w", domain.ErrStaleState, err)
	}
	return next, nil
}

func (s *RemoteStore) ToggleWishlist(ctx context.Context, wishlist *domain.Wishlist, id domain.ProductID) (*domain.Wishlist, error) {
	var err error
	if wishlist.Contains(id) {
		err = s.api.RemoveFromWishlist(ctx, id)
	} else {
		err = s.api.AddToWishlist(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update wishlist: %w", err)
	}
	next, err := s.loadWishlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("wishlist updated but %w: %w", domain.ErrStaleState, err)
	}
	return next, nil
}

// PlaceOrder 下单成功后重新拉取购物车
func (s *RemoteStore) PlaceOrder(ctx context.Context, cart *domain.Ledger) (*domain.Ledger, *domain.OrderConfirmation, error) {
	if cart.IsEmpty() {
		return nil, nil, domain.ErrEmptyCart
	}
	conf, err := s.api.PlaceOrder(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to place order: %w", err)
	}
	next, err := s.loadCart(ctx)
	if err != nil {
		// 订单已成功，后端会清空购物车
		logging.Warn(ctx, "failed to reload cart after order", "order_id", conf.OrderID, "error", err)
		next = domain.NewLedger()
	}
	return next, conf, nil
}

func (s *RemoteStore) loadCart(ctx context.Context) (*domain.Ledger, error) {
	entries, err := s.api.Cart(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return domain.NewLedger(entries...), nil
}

func (s *RemoteStore) loadWishlist(ctx context.Context) (*domain.Wishlist, error) {
	entries, err := s.api.Wishlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}
	return domain.NewWishlist(entries...), nil
}
