package mysql

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/wishlist/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistItemModel MySQL 心愿单表映射
type WishlistItemModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UserID    uint      `gorm:"column:user_id;uniqueIndex:idx_wishlist_user_product;not null"`
	ProductID uint      `gorm:"column:product_id;uniqueIndex:idx_wishlist_user_product;not null"`
}

func (WishlistItemModel) TableName() string { return "wishlist_items" }

// Models 需要迁移的表
func Models() []any {
	return []any{&WishlistItemModel{}}
}

type lineRow struct {
	ProductID uint
	Name      string
	Price     decimal.Decimal
	ImageURL  string
}

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓储
func NewWishlistRepository(db *gorm.DB) domain.WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Add(ctx context.Context, item *domain.WishlistItem) (bool, error) {
	m := &WishlistItemModel{UserID: item.UserID, ProductID: item.ProductID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	item.ID = m.ID
	item.CreatedAt = m.CreatedAt
	return res.RowsAffected > 0, nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, productID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&WishlistItemModel{})
	return res.RowsAffected > 0, res.Error
}

func (r *wishlistRepository) Lines(ctx context.Context, userID uint) ([]*domain.WishlistLine, error) {
	var rows []lineRow
	err := r.db.WithContext(ctx).
		Model(&WishlistItemModel{}).
		Select("wishlist_items.product_id, products.name, products.price, products.img_url AS image_url").
		Joins("JOIN products ON products.id = wishlist_items.product_id").
		Where("wishlist_items.user_id = ?", userID).
		Order("wishlist_items.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	lines := make([]*domain.WishlistLine, len(rows))
	for i, row := range rows {
		lines[i] = &domain.WishlistLine{ProductID: row.ProductID, Name: row.Name, Price: row.Price, ImageURL: row.ImageURL}
	}
	return lines, nil
}
