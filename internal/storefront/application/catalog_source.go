package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/storefront/internal/storefront/domain"
)

// CatalogQuery 目录查询条件；Category 为类目名或 domain.AllCategories
type CatalogQuery struct {
	Category string
	Search   string
}

// CatalogSource 商品目录来源
type CatalogSource interface {
	// Load 返回满足查询的目录；实现可以忽略查询条件，本地筛选总会再执行一次
	Load(ctx context.Context, q CatalogQuery) (*domain.Catalog, error)
	Product(ctx context.Context, id domain.ProductID) (domain.Product, error)
	Reviews(ctx context.Context, id domain.ProductID) ([]domain.Review, error)
}

// StaticCatalog 固定目录，不访问网络
type StaticCatalog struct {
	catalog *domain.Catalog
}

// NewStaticCatalog catalog 为 nil 时使用 domain.SeedCatalog
func NewStaticCatalog(catalog *domain.Catalog) *StaticCatalog {
	if catalog == nil {
		catalog = domain.SeedCatalog()
	}
	return &StaticCatalog{catalog: catalog}
}

func (s *StaticCatalog) Load(context.Context, CatalogQuery) (*domain.Catalog, error) {
	return s.catalog, nil
}

func (s *StaticCatalog) Product(_ context.Context, id domain.ProductID) (domain.Product, error) {
	p, ok := s.catalog.Product(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return p, nil
}

func (s *StaticCatalog) Reviews(context.Context, domain.ProductID) ([]domain.Review, error) {
	return nil, nil
}

// RemoteCatalog 从后端加载目录，类目与搜索词下推为查询参数
type RemoteCatalog struct {
	api CatalogAPI
}

// NewRemoteCatalog 创建远端目录
func NewRemoteCatalog(api CatalogAPI) *RemoteCatalog {
	return &RemoteCatalog{api: api}
}

func (r *RemoteCatalog) Load(ctx context.Context, q CatalogQuery) (*domain.Catalog, error) {
	categories, err := r.api.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	var categoryID string
	if q.Category != "" && q.Category != domain.AllCategories {
		for _, c := range categories {
			if c.Name == q.Category {
				categoryID = c.ID
				break
			}
		}
	}

	products, err := r.api.Products(ctx, categoryID, q.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return domain.NewCatalog(categories, products), nil
}

func (r *RemoteCatalog) Product(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	return r.api.Product(ctx, id)
}

func (r *RemoteCatalog) Reviews(ctx context.Context, id domain.ProductID) ([]domain.Review, error) {
	return r.api.Reviews(ctx, id)
}
