package domain

import "time"

const TopicOrderPlaced = "order.placed"

// OrderPlacedEvent 下单成功事件
type OrderPlacedEvent struct {
	OrderID     uint      `json:"order_id"`
	UserID      uint      `json:"user_id"`
	TotalAmount string    `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	Timestamp   time.Time `json:"timestamp"`
}
