package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建商品目录仓储
func NewCatalogRepository(db *gorm.DB) domain.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var models []*CategoryModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	categories := make([]*domain.Category, len(models))
	for i, m := range models {
		categories[i] = toCategory(m)
	}
	return categories, nil
}

func (r *catalogRepository) SaveCategory(ctx context.Context, category *domain.Category) error {
	m := &CategoryModel{ID: category.ID, Name: category.Name}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	category.ID = m.ID
	return nil
}

func (r *catalogRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	q := r.db.WithContext(ctx).
		Model(&ProductModel{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Preload("Category")
	if filter.CategoryID != 0 {
		q = q.Where("products.category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("LOWER(products.name) LIKE ? OR LOWER(categories.name) LIKE ?", pattern, pattern)
	}

	var models []*ProductModel
	if err := q.Order("products.id").Find(&models).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, len(models))
	for i, m := range models {
		products[i] = toProduct(m)
	}
	return products, nil
}

func (r *catalogRepository) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	var m ProductModel
	err := r.db.WithContext(ctx).Preload("Category").First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return toProduct(&m), nil
}

func (r *catalogRepository) SaveProduct(ctx context.Context, product *domain.Product) error {
	m := toProductModel(product)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	product.ID = m.ID
	product.CreatedAt = m.CreatedAt
	return nil
}

func (r *catalogRepository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ProductModel{}).Count(&count).Error
	return count, err
}

func (r *catalogRepository) ListReviews(ctx context.Context, productID uint) ([]*domain.Review, error) {
	var rows []*reviewRow
	err := r.db.WithContext(ctx).
		Model(&ReviewModel{}).
		Select("reviews.*, users.name AS user_name").
		Joins("LEFT JOIN users ON users.id = reviews.user_id").
		Where("reviews.product_id = ?", productID).
		Order("reviews.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	reviews := make([]*domain.Review, len(rows))
	for i, row := range rows {
		reviews[i] = toReview(row)
	}
	return reviews, nil
}
