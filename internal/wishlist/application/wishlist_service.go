package application

import (
	"context"
	"strconv"
	"time"

	"github.com/wyfcoding/storefront/internal/wishlist/domain"
	"github.com/wyfcoding/storefront/pkg/metrics"
)

// WishlistService 心愿单服务，添加与删除都是幂等的
type WishlistService struct {
	repo      domain.WishlistRepository
	products  domain.ProductChecker
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
}

// NewWishlistService 创建心愿单服务实例
func NewWishlistService(
	repo domain.WishlistRepository,
	products domain.ProductChecker,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) *WishlistService {
	return &WishlistService{repo: repo, products: products, publisher: publisher, metrics: m}
}

// List 用户心愿单
func (s *WishlistService) List(ctx context.Context, userID uint) ([]*domain.WishlistLine, error) {
	return s.repo.Lines(ctx, userID)
}

// Add 加入心愿单，已存在时不做处理
func (s *WishlistService) Add(ctx context.Context, userID, productID uint) error {
	exists, err := s.products.ProductExists(ctx, productID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrProductNotFound
	}

	added, err := s.repo.Add(ctx, &domain.WishlistItem{UserID: userID, ProductID: productID})
	if err != nil || !added {
		return err
	}
	s.metrics.RecordWishlist("add")
	s.publish(ctx, domain.TopicWishlistItemAdded, userID, productID)
	return nil
}

// Remove 移出心愿单，不存在时不做处理
func (s *WishlistService) Remove(ctx context.Context, userID, productID uint) error {
	removed, err := s.repo.Remove(ctx, userID, productID)
	if err != nil || !removed {
		return err
	}
	s.metrics.RecordWishlist("remove")
	s.publish(ctx, domain.TopicWishlistItemRemoved, userID, productID)
	return nil
}

func (s *WishlistService) publish(ctx context.Context, topic string, userID, productID uint) {
	event := domain.WishlistChangedEvent{
		UserID:    userID,
		ProductID: productID,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, topic, strconv.FormatUint(uint64(userID), 10), event)
}
