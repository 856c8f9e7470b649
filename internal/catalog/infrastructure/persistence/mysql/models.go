package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

// CategoryModel MySQL 分类表映射
type CategoryModel struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:varchar(100);uniqueIndex;not null"`
}

func (CategoryModel) TableName() string { return "categories" }

// ProductModel MySQL 商品表映射
type ProductModel struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
	Name        string          `gorm:"column:name;type:varchar(150);not null"`
	Description string          `gorm:"column:description;type:text"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null"`
	Stock       int             `gorm:"column:stock;not null;default:0"`
	CategoryID  *uint           `gorm:"column:category_id;index"`
	Category    *CategoryModel  `gorm:"foreignKey:CategoryID"`
	ImageURL    string          `gorm:"column:img_url;type:varchar(500)"`
}

func (ProductModel) TableName() string { return "products" }

// ReviewModel MySQL 评价表映射
type ReviewModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"column:created_at"`
	ProductID uint      `gorm:"column:product_id;index;not null"`
	UserID    uint      `gorm:"column:user_id;index;not null"`
	Rating    int       `gorm:"column:rating;not null"`
	Comment   string    `gorm:"column:comment;type:text"`
}

func (ReviewModel) TableName() string { return "reviews" }

// reviewRow 评价与用户名的联表结果
type reviewRow struct {
	ReviewModel
	UserName string `gorm:"column:user_name"`
}

// Models 需要迁移的表，按依赖顺序排列
func Models() []any {
	return []any{&CategoryModel{}, &ProductModel{}, &ReviewModel{}}
}

func toCategory(m *CategoryModel) *domain.Category {
	if m == nil {
		return nil
	}
	return &domain.Category{ID: m.ID, Name: m.Name}
}

func toProductModel(p *domain.Product) *ProductModel {
	return &ProductModel{
		ID:          p.ID,
		CreatedAt:   p.CreatedAt,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
	}
}

func toProduct(m *ProductModel) *domain.Product {
	if m == nil {
		return nil
	}
	p := &domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
		CategoryID:  m.CategoryID,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
	}
	if m.Category != nil {
		p.CategoryName = m.Category.Name
	}
	return p
}

func toReview(r *reviewRow) *domain.Review {
	return &domain.Review{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
