package application

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/logging"
)

// CreateCategoryCommand 创建分类命令
type CreateCategoryCommand struct {
	Name string
}

// CreateProductCommand 创建商品命令
type CreateProductCommand struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  *uint
	ImageURL    string
}

// CatalogCommandService 商品目录命令服务
type CatalogCommandService struct {
	repo      domain.CatalogRepository
	cache     domain.CategoryCache
	publisher domain.EventPublisher
}

// NewCatalogCommandService 创建商品目录命令服务实例
func NewCatalogCommandService(
	repo domain.CatalogRepository,
	cache domain.CategoryCache,
	publisher domain.EventPublisher,
) *CatalogCommandService {
	return &CatalogCommandService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
	}
}

// CreateCategory 处理创建分类
func (s *CatalogCommandService) CreateCategory(ctx context.Context, cmd CreateCategoryCommand) (uint, error) {
	category := &domain.Category{Name: strings.TrimSpace(cmd.Name)}
	if category.Name == "" {
		return 0, domain.ErrInvalidProduct
	}
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		return 0, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	// 发布分类创建事件
	event := domain.CategoryCreatedEvent{
		CategoryID: category.ID,
		Name:       category.Name,
		Timestamp:  time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicCategoryCreated, category.Name, event)

	return category.ID, nil
}

// CreateProduct 处理创建商品
func (s *CatalogCommandService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (uint, error) {
	product, err := domain.NewProduct(cmd.Name, cmd.Description, cmd.Price, cmd.Stock, cmd.CategoryID, cmd.ImageURL)
	if err != nil {
		return 0, err
	}
	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return 0, err
	}

	// 发布商品创建事件
	event := domain.ProductCreatedEvent{
		ProductID:  product.ID,
		Name:       product.Name,
		Price:      product.Price.StringFixed(2),
		Stock:      product.Stock,
		CategoryID: product.CategoryID,
		Timestamp:  time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicProductCreated, product.Name, event)

	logging.Info(ctx, "Product created", "product_id", product.ID, "name", product.Name)
	return product.ID, nil
}
