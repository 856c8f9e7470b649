package domain

import "time"

const (
	TopicCategoryCreated = "catalog.category.created"
	TopicProductCreated  = "catalog.product.created"
)

// CategoryCreatedEvent 分类创建事件
type CategoryCreatedEvent struct {
	CategoryID uint      `json:"category_id"`
	Name       string    `json:"name"`
	Timestamp  time.Time `json:"timestamp"`
}

// ProductCreatedEvent 商品创建事件
type ProductCreatedEvent struct {
	ProductID  uint      `json:"product_id"`
	Name       string    `json:"name"`
	Price      string    `json:"price"`
	Stock      int       `json:"stock"`
	CategoryID *uint     `json:"category_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
