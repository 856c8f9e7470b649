package domain

import "context"

// UserRepository 用户仓储接口
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	// GetByEmail 不存在时返回 ErrUserNotFound
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
}

// CartProvisioner 注册时为用户开通购物车
type CartProvisioner interface {
	CreateCart(ctx context.Context, userID uint) error
}

// TokenIssuer 访问令牌签发
type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

// Transactor 事务执行器
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
