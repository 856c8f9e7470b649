package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProduct 商品字段非法
	ErrInvalidProduct = errors.New("invalid product")
)

// Category 商品分类
type Category struct {
	ID   uint
	Name string
}

// Product 商品实体
type Product struct {
	ID          uint
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	// 可为空，表示未分类
	CategoryID   *uint
	CategoryName string
	ImageURL     string
	CreatedAt    time.Time
}

// NewProduct 创建商品，价格保留两位小数
func NewProduct(name, description string, price decimal.Decimal, stock int, categoryID *uint, imageURL string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Join(ErrInvalidProduct, errors.New("name is required"))
	}
	if price.IsNegative() {
		return nil, errors.Join(ErrInvalidProduct, errors.New("price must not be negative"))
	}
	if stock < 0 {
		return nil, errors.Join(ErrInvalidProduct, errors.New("stock must not be negative"))
	}
	return &Product{
		Name:        name,
		Description: description,
		Price:       price.Round(2),
		Stock:       stock,
		CategoryID:  categoryID,
		ImageURL:    imageURL,
	}, nil
}

// Review 商品评价
type Review struct {
	ID        uint
	ProductID uint
	UserID    uint
	UserName  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// ProductFilter 商品列表过滤条件，零值表示不过滤
type ProductFilter struct {
	CategoryID uint
	// 按商品名或分类名做不区分大小写的子串匹配
	Search string
}
