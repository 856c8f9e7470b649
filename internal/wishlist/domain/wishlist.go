package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrProductNotFound 商品不存在
var ErrProductNotFound = errors.New("product not found")

// WishlistItem 心愿单条目，(UserID, ProductID) 唯一
type WishlistItem struct {
	ID        uint
	UserID    uint
	ProductID uint
	CreatedAt time.Time
}

// WishlistLine 心愿单条目与商品信息的联表视图
type WishlistLine struct {
	ProductID uint
	Name      string
	Price     decimal.Decimal
	ImageURL  string
}

// WishlistRepository 心愿单仓储接口
type WishlistRepository interface {
	// Add 已存在时返回 false
	Add(ctx context.Context, item *WishlistItem) (bool, error)
	// Remove 不存在时返回 false
	Remove(ctx context.Context, userID, productID uint) (bool, error)
	Lines(ctx context.Context, userID uint) ([]*WishlistLine, error)
}

// ProductChecker 校验商品是否存在
type ProductChecker interface {
	ProductExists(ctx context.Context, productID uint) (bool, error)
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
