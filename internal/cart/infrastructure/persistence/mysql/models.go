package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/cart/domain"
)

// CartModel MySQL 购物车表映射
type CartModel struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UserID    uint            `gorm:"column:user_id;uniqueIndex;not null"`
	Items     []CartItemModel `gorm:"foreignKey:CartID"`
}

func (CartModel) TableName() string { return "carts" }

// CartItemModel MySQL 购物车条目表映射
type CartItemModel struct {
	ID        uint `gorm:"primaryKey;autoIncrement"`
	CartID    uint `gorm:"column:cart_id;uniqueIndex:idx_cart_items_cart_product;not null"`
	ProductID uint `gorm:"column:product_id;uniqueIndex:idx_cart_items_cart_product;index;not null"`
	Quantity  int  `gorm:"column:quantity;not null;default:1"`
}

func (CartItemModel) TableName() string { return "cart_items" }

// lineRow 条目与商品的联表结果
type lineRow struct {
	ItemID    uint
	ProductID uint
	Quantity  int
	Name      string
	Price     decimal.Decimal
	ImageURL  string
}

// Models 需要迁移的表
func Models() []any {
	return []any{&CartModel{}, &CartItemModel{}}
}

func toCart(m *CartModel) *domain.Cart {
	cart := &domain.Cart{
		ID:        m.ID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		Items:     make([]*domain.CartItem, len(m.Items)),
	}
	for i, it := range m.Items {
		cart.Items[i] = &domain.CartItem{ID: it.ID, CartID: it.CartID, ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return cart
}

func toCartItemModel(item *domain.CartItem) *CartItemModel {
	return &CartItemModel{ID: item.ID, CartID: item.CartID, ProductID: item.ProductID, Quantity: item.Quantity}
}
