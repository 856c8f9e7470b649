package application

import (
	"context"
	"strings"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

// CatalogQueryService 商品目录查询服务
type CatalogQueryService struct {
	repo  domain.CatalogRepository
	cache domain.CategoryCache
}

// NewCatalogQueryService 创建查询服务，cache 可为 nil
func NewCatalogQueryService(repo domain.CatalogRepository, cache domain.CategoryCache) *CatalogQueryService {
	return &CatalogQueryService{repo: repo, cache: cache}
}

// ListCategories 分类列表，优先读缓存
func (s *CatalogQueryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if s.cache != nil {
		if categories, ok := s.cache.Get(ctx); ok {
			return categories, nil
		}
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, categories)
	}
	return categories, nil
}

// ListProducts 按分类与关键字过滤商品
func (s *CatalogQueryService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	filter.Search = strings.ToLower(strings.TrimSpace(filter.Search))
	return s.repo.ListProducts(ctx, filter)
}

// GetProduct 商品详情
func (s *CatalogQueryService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// ListReviews 商品评价，商品不存在时返回 ErrProductNotFound
func (s *CatalogQueryService) ListReviews(ctx context.Context, productID uint) ([]*domain.Review, error) {
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListReviews(ctx, productID)
}
