package domain

import "context"

// CatalogRepository 商品目录仓储接口
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	SaveCategory(ctx context.Context, category *Category) error
	ListProducts(ctx context.Context, filter ProductFilter) ([]*Product, error)
	// GetProduct 不存在时返回 ErrProductNotFound
	GetProduct(ctx context.Context, id uint) (*Product, error)
	SaveProduct(ctx context.Context, product *Product) error
	CountProducts(ctx context.Context) (int64, error)
	ListReviews(ctx context.Context, productID uint) ([]*Review, error)
}

// CategoryCache 分类列表缓存，未命中返回 false
type CategoryCache interface {
	Get(ctx context.Context) ([]*Category, bool)
	Set(ctx context.Context, categories []*Category)
	Invalidate(ctx context.Context)
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
