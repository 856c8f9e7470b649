package mysql

import (
	"context"

	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(gdb *gorm.DB) domain.OrderRepository {
	return &orderRepository{db: gdb}
}

// Save 连同条目与支付记录一并写入
func (r *orderRepository) Save(ctx context.Context, order *domain.Order) error {
	m := toOrderModel(order)
	if err := db.Conn(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	syncIDs(order, m)
	return nil
}

type checkoutRepository struct {
	db *gorm.DB
}

// NewCheckoutRepository 创建结算仓储，操作 carts、cart_items 与 products 表
func NewCheckoutRepository(gdb *gorm.DB) domain.CheckoutRepository {
	return &checkoutRepository{db: gdb}
}

func (r *checkoutRepository) LoadCart(ctx context.Context, userID uint) (uint, []*domain.CheckoutLine, error) {
	conn := db.Conn(ctx, r.db)

	var cartIDs []uint
	if err := conn.Table("carts").Where("user_id = ?", userID).Limit(1).Pluck("id", &cartIDs).Error; err != nil {
		return 0, nil, err
	}
	if len(cartIDs) == 0 {
		return 0, nil, nil
	}
	cartID := cartIDs[0]

	var rows []checkoutRow
	err := conn.Table("cart_items").
		Select("cart_items.id AS cart_item_id, cart_items.product_id, cart_items.quantity, " +
			"products.name, products.price, products.stock").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scan(&rows).Error
	if err != nil {
		return 0, nil, err
	}

	lines := make([]*domain.CheckoutLine, len(rows))
	for i, row := range rows {
		lines[i] = &domain.CheckoutLine{
			CartItemID: row.CartItemID,
			ProductID:  row.ProductID,
			Name:       row.Name,
			Quantity:   row.Quantity,
			Price:      row.Price,
			Stock:      row.Stock,
		}
	}
	return cartID, lines, nil
}

func (r *checkoutRepository) DecrementStock(ctx context.Context, productID uint, qty int) error {
	res := db.Conn(ctx, r.db).
		Table("products").
		Where("id = ? AND stock >= ?", productID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStockConflict
	}
	return nil
}

func (r *checkoutRepository) ClearCart(ctx context.Context, cartID uint) error {
	return db.Conn(ctx, r.db).Exec("DELETE FROM cart_items WHERE cart_id = ?", cartID).Error
}
