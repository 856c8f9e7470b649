package domain

import "context"

// CheckoutRepository 结算所需的购物车与库存操作，须在事务内调用
type CheckoutRepository interface {
	// LoadCart 读取并锁定用户购物车条目，没有购物车时 cartID 为 0
	LoadCart(ctx context.Context, userID uint) (cartID uint, lines []*CheckoutLine, err error)
	// DecrementStock 库存不足时返回 ErrStockConflict
	DecrementStock(ctx context.Context, productID uint, qty int) error
	ClearCart(ctx context.Context, cartID uint) error
}

// OrderRepository 订单仓储接口
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
}

// Transactor 事务执行器
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
