package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(gdb *gorm.DB) domain.CartRepository {
	return &cartRepository{db: gdb}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID uint) (*domain.Cart, error) {
	var m CartModel
	err := db.Conn(ctx, r.db).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Where("user_id = ?", userID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return toCart(&m), nil
}

func (r *cartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	m := &CartModel{UserID: cart.UserID}
	if err := db.Conn(ctx, r.db).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrCartExists
		}
		return err
	}
	cart.ID = m.ID
	cart.CreatedAt = m.CreatedAt
	return nil
}

// AddItem 依赖 (cart_id, product_id) 唯一索引做 upsert，并发加购不会丢失累加
func (r *cartRepository) AddItem(ctx context.Context, item *domain.CartItem) error {
	conn := db.Conn(ctx, r.db)
	m := toCartItemModel(item)
	err := conn.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity": gorm.Expr("cart_items.quantity + ?", item.Quantity),
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	var stored CartItemModel
	if err := conn.Where("cart_id = ? AND product_id = ?", item.CartID, item.ProductID).First(&stored).Error; err != nil {
		return err
	}
	item.ID = stored.ID
	item.Quantity = stored.Quantity
	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, item *domain.CartItem) error {
	return db.Conn(ctx, r.db).
		Where("id = ? AND cart_id = ?", item.ID, item.CartID).
		Delete(&CartItemModel{}).Error
}

func (r *cartRepository) Lines(ctx context.Context, cartID uint) ([]*domain.CartLine, error) {
	var rows []lineRow
	err := db.Conn(ctx, r.db).
		Model(&CartItemModel{}).
		Select("cart_items.id AS item_id, cart_items.product_id, cart_items.quantity, " +
			"products.name, products.price, products.img_url AS image_url").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	lines := make([]*domain.CartLine, len(rows))
	for i, row := range rows {
		lines[i] = &domain.CartLine{
			ItemID:    row.ItemID,
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			Name:      row.Name,
			Price:     row.Price,
			ImageURL:  row.ImageURL,
		}
	}
	return lines, nil
}

type productChecker struct {
	db *gorm.DB
}

// NewProductChecker 基于 products 表校验商品存在
func NewProductChecker(gdb *gorm.DB) domain.ProductChecker {
	return &productChecker{db: gdb}
}

func (c *productChecker) ProductExists(ctx context.Context, productID uint) (bool, error) {
	var count int64
	err := db.Conn(ctx, c.db).Table("products").Where("id = ?", productID).Count(&count).Error
	return count > 0, err
}
