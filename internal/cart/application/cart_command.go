package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/pkg/logging"
	"github.com/wyfcoding/storefront/pkg/metrics"
)

// AddItemCommand 添加商品到购物车命令
type AddItemCommand struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// RemoveItemCommand 从购物车移除条目命令
type RemoveItemCommand struct {
	UserID uint
	ItemID uint
}

// CartCommandService 购物车命令服务
type CartCommandService struct {
	repo      domain.CartRepository
	products  domain.ProductChecker
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
}

// NewCartCommandService 创建购物车命令服务实例
func NewCartCommandService(
	repo domain.CartRepository,
	products domain.ProductChecker,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) *CartCommandService {
	return &CartCommandService{
		repo:      repo,
		products:  products,
		publisher: publisher,
		metrics:   m,
	}
}

// CreateCart 为用户开通购物车，已存在时不做处理
func (s *CartCommandService) CreateCart(ctx context.Context, userID uint) error {
	_, err := s.cartOf(ctx, userID)
	return err
}

// cartOf 读取用户购物车，不存在时创建
func (s *CartCommandService) cartOf(ctx context.Context, userID uint) (*domain.Cart, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrCartNotFound) {
		return nil, err
	}

	cart = &domain.Cart{UserID: userID}
	if err := s.repo.Create(ctx, cart); err != nil {
		if errors.Is(err, domain.ErrCartExists) {
			return s.repo.GetByUserID(ctx, userID)
		}
		return nil, err
	}

	// 发布购物车创建事件
	event := domain.CartCreatedEvent{
		CartID:    cart.ID,
		UserID:    userID,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicCartCreated, key(userID), event)
	return cart, nil
}

// AddItem 处理添加商品到购物车，同一商品累加数量
func (s *CartCommandService) AddItem(ctx context.Context, cmd AddItemCommand) error {
	if cmd.Quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	exists, err := s.products.ProductExists(ctx, cmd.ProductID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrProductNotFound
	}

	cart, err := s.cartOf(ctx, cmd.UserID)
	if err != nil {
		return err
	}
	item, err := domain.NewCartItem(cart.ID, cmd.ProductID, cmd.Quantity)
	if err != nil {
		return err
	}
	if err := s.repo.AddItem(ctx, item); err != nil {
		return err
	}
	s.metrics.RecordCartAdd()

	// 发布添加商品事件
	event := domain.CartItemAddedEvent{
		CartID:    cart.ID,
		UserID:    cmd.UserID,
		ProductID: cmd.ProductID,
		Quantity:  cmd.Quantity,
		Total:     item.Quantity,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicCartItemAdded, key(cmd.UserID), event)

	logging.Debug(ctx, "Cart item added", "user_id", cmd.UserID, "product_id", cmd.ProductID, "quantity", item.Quantity)
	return nil
}

// RemoveItem 处理从购物车移除条目，只能删除自己购物车中的条目
func (s *CartCommandService) RemoveItem(ctx context.Context, cmd RemoveItemCommand) error {
	cart, err := s.repo.GetByUserID(ctx, cmd.UserID)
	if errors.Is(err, domain.ErrCartNotFound) {
		return domain.ErrItemNotFound
	}
	if err != nil {
		return err
	}

	item, err := cart.RemoveItem(cmd.ItemID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, item); err != nil {
		return err
	}
	s.metrics.RecordCartRemove()

	// 发布移除商品事件
	event := domain.CartItemRemovedEvent{
		CartID:    cart.ID,
		UserID:    cmd.UserID,
		ItemID:    item.ID,
		ProductID: item.ProductID,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicCartItemRemoved, key(cmd.UserID), event)

	return nil
}

func key(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}
