package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/logging"
	"github.com/wyfcoding/storefront/pkg/metrics"
)

// OrderCommandService 订单命令服务
type OrderCommandService struct {
	checkout  domain.CheckoutRepository
	orders    domain.OrderRepository
	tx        domain.Transactor
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewOrderCommandService 创建订单命令服务实例
func NewOrderCommandService(
	checkout domain.CheckoutRepository,
	orders domain.OrderRepository,
	tx domain.Transactor,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) *OrderCommandService {
	return &OrderCommandService{
		checkout:  checkout,
		orders:    orders,
		tx:        tx,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

// PlaceOrder 将用户购物车转为订单：校验库存、扣减库存、写入订单与支付、清空购物车，全部在一个事务内完成
func (s *OrderCommandService) PlaceOrder(ctx context.Context, userID uint) (*domain.Order, error) {
	defer logging.LogDuration(ctx, "Order placement finished", "user_id", userID)()

	var order *domain.Order
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		cartID, lines, err := s.checkout.LoadCart(ctx, userID)
		if err != nil {
			return err
		}
		order, err = domain.NewOrder(userID, lines, s.now())
		if err != nil {
			return err
		}

		for _, l := range lines {
			if err := s.checkout.DecrementStock(ctx, l.ProductID, l.Quantity); err != nil {
				if errors.Is(err, domain.ErrStockConflict) {
					return &domain.InsufficientStockError{ProductName: l.Name}
				}
				return err
			}
		}
		if err := s.orders.Save(ctx, order); err != nil {
			return err
		}
		return s.checkout.ClearCart(ctx, cartID)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordOrder(order.TotalAmount.InexactFloat64())

	// 发布下单事件
	event := domain.OrderPlacedEvent{
		OrderID:     order.ID,
		UserID:      userID,
		TotalAmount: order.TotalAmount.StringFixed(2),
		ItemCount:   len(order.Items),
		Timestamp:   time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicOrderPlaced, strconv.FormatUint(uint64(order.ID), 10), event)

	logging.Info(ctx, "Order placed", "order_id", order.ID, "user_id", userID, "total", order.TotalAmount.StringFixed(2))
	return order, nil
}
