package application

import (
	"context"
	"errors"

	"github.com/wyfcoding/storefront/internal/cart/domain"
)

// CartQueryService 购物车查询服务
type CartQueryService struct {
	repo domain.CartRepository
}

// NewCartQueryService 创建购物车查询服务实例
func NewCartQueryService(repo domain.CartRepository) *CartQueryService {
	return &CartQueryService{repo: repo}
}

// GetCart 购物车条目及商品信息，没有购物车时返回空列表
func (s *CartQueryService) GetCart(ctx context.Context, userID uint) ([]*domain.CartLine, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrCartNotFound) {
		return []*domain.CartLine{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.repo.Lines(ctx, cart.ID)
}
