package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/order/domain"
)

// OrderModel MySQL 订单表映射
type OrderModel struct {
	ID          uint             `gorm:"primaryKey;autoIncrement"`
	UserID      uint             `gorm:"column:user_id;index;not null"`
	OrderDate   time.Time        `gorm:"column:order_date;not null"`
	TotalAmount decimal.Decimal  `gorm:"column:total_amount;type:decimal(10,2);not null"`
	Status      string           `gorm:"column:status;type:varchar(50);default:'Pending';not null"`
	Items       []OrderItemModel `gorm:"foreignKey:OrderID"`
	Payment     *PaymentModel    `gorm:"foreignKey:OrderID"`
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel MySQL 订单条目表映射
type OrderItemModel struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	OrderID   uint            `gorm:"column:order_id;index;not null"`
	ProductID uint            `gorm:"column:product_id;index;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null"`
}

func (OrderItemModel) TableName() string { return "order_items" }

// PaymentModel MySQL 支付表映射
type PaymentModel struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"`
	OrderID       uint            `gorm:"column:order_id;uniqueIndex;not null"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null"`
	PaymentMethod string          `gorm:"column:payment_method;type:varchar(50)"`
	Status        string          `gorm:"column:status;type:varchar(50)"`
	PaymentDate   time.Time       `gorm:"column:payment_date"`
}

func (PaymentModel) TableName() string { return "payments" }

// checkoutRow 购物车条目与商品库存的联表结果
type checkoutRow struct {
	CartItemID uint
	ProductID  uint
	Quantity   int
	Name       string
	Price      decimal.Decimal
	Stock      int
}

// Models 需要迁移的表
func Models() []any {
	return []any{&OrderModel{}, &OrderItemModel{}, &PaymentModel{}}
}

func toOrderModel(o *domain.Order) *OrderModel {
	m := &OrderModel{
		ID:          o.ID,
		UserID:      o.UserID,
		OrderDate:   o.OrderDate,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		Items:       make([]OrderItemModel, len(o.Items)),
	}
	for i, it := range o.Items {
		m.Items[i] = OrderItemModel{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
	}
	if p := o.Payment; p != nil {
		m.Payment = &PaymentModel{
			ID:            p.ID,
			Amount:        p.Amount,
			PaymentMethod: p.Method,
			Status:        p.Status,
			PaymentDate:   p.PaymentDate,
		}
	}
	return m
}

// syncIDs 把数据库生成的主键回写到领域对象
func syncIDs(o *domain.Order, m *OrderModel) {
	o.ID = m.ID
	for i := range m.Items {
		o.Items[i].ID = m.Items[i].ID
		o.Items[i].OrderID = m.ID
	}
	if o.Payment != nil && m.Payment != nil {
		o.Payment.ID = m.Payment.ID
		o.Payment.OrderID = m.ID
	}
}
