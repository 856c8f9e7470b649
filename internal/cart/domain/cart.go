package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrCartNotFound 用户没有购物车
	ErrCartNotFound = errors.New("cart not found")
	// ErrItemNotFound 购物车中没有该条目
	ErrItemNotFound = errors.New("item not found in cart")
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidQuantity 数量非法
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrCartExists 用户购物车已被并发创建
	ErrCartExists = errors.New("cart already exists")
)

// Cart 购物车聚合，每个用户一辆
type Cart struct {
	ID        uint
	UserID    uint
	Items     []*CartItem
	CreatedAt time.Time
}

// CartItem 购物车条目，同一商品只占一行
type CartItem struct {
	ID        uint
	CartID    uint
	ProductID uint
	Quantity  int
}

// CartLine 购物车条目与商品信息的联表视图
type CartLine struct {
	ItemID    uint
	ProductID uint
	Quantity  int
	Name      string
	Price     decimal.Decimal
	ImageURL  string
}

// NewCartItem 创建待累加的条目，Quantity 为本次增量
func NewCartItem(cartID, productID uint, qty int) (*CartItem, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	return &CartItem{CartID: cartID, ProductID: productID, Quantity: qty}, nil
}

// RemoveItem 按条目 ID 删除
func (c *Cart) RemoveItem(itemID uint) (*CartItem, error) {
	for i, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return item, nil
		}
	}
	return nil, ErrItemNotFound
}

// Subtotal 按联表单价计算合计
func Subtotal(lines []*CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}
