package domain

import "context"

// CartRepository 购物车仓储接口
type CartRepository interface {
	// GetByUserID 不存在时返回 ErrCartNotFound
	GetByUserID(ctx context.Context, userID uint) (*Cart, error)
	// Create 用户已有购物车时返回 ErrCartExists
	Create(ctx context.Context, cart *Cart) error
	// AddItem 同一商品已存在时原子累加数量，回填条目 ID 与累加后的数量
	AddItem(ctx context.Context, item *CartItem) error
	DeleteItem(ctx context.Context, item *CartItem) error
	// Lines 联表商品信息，按条目 ID 排序
	Lines(ctx context.Context, cartID uint) ([]*CartLine, error)
}

// ProductChecker 校验商品是否存在
type ProductChecker interface {
	ProductExists(ctx context.Context, productID uint) (bool, error)
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
