package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyCart 购物车为空，无法下单
	ErrEmptyCart = errors.New("cart is empty")
	// ErrStockConflict 扣减库存时库存已不足
	ErrStockConflict = errors.New("stock changed during checkout")
)

// InsufficientStockError 某商品库存不足
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s", e.ProductName)
}

type OrderStatus string

const (
	StatusPending OrderStatus = "Pending"
)

const (
	PaymentMethodMock = "Mock Credit Card"
	PaymentCompleted  = "Completed"
)

// Order 订单聚合，包含条目与支付记录
type Order struct {
	ID          uint
	UserID      uint
	OrderDate   time.Time
	TotalAmount decimal.Decimal
	Status      OrderStatus
	Items       []*OrderItem
	Payment     *Payment
}

// OrderItem 订单条目，Price 为下单时单价
type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID uint
	Quantity  int
	Price     decimal.Decimal
}

// Payment 支付记录
type Payment struct {
	ID          uint
	OrderID     uint
	Amount      decimal.Decimal
	Method      string
	Status      string
	PaymentDate time.Time
}

// CheckoutLine 结算时读取的购物车条目与商品库存
type CheckoutLine struct {
	CartItemID uint
	ProductID  uint
	Name       string
	Quantity   int
	Price      decimal.Decimal
	Stock      int
}

// NewOrder 按购物车条目生成订单，库存不足时返回第一个不足的商品
func NewOrder(userID uint, lines []*CheckoutLine, now time.Time) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	items := make([]*OrderItem, 0, len(lines))
	for _, l := range lines {
		if l.Stock < l.Quantity {
			return nil, &InsufficientStockError{ProductName: l.Name}
		}
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		items = append(items, &OrderItem{ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price})
	}

	return &Order{
		UserID:      userID,
		OrderDate:   now,
		TotalAmount: total,
		Status:      StatusPending,
		Items:       items,
		Payment: &Payment{
			Amount:      total,
			Method:      PaymentMethodMock,
			Status:      PaymentCompleted,
			PaymentDate: now,
		},
	}, nil
}
