package domain

import "time"

const (
	TopicWishlistItemAdded   = "wishlist.item.added"
	TopicWishlistItemRemoved = "wishlist.item.removed"
)

// WishlistChangedEvent 心愿单变更事件
type WishlistChangedEvent struct {
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}
