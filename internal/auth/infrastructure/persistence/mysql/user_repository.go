package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/storefront/internal/auth/domain"
	"github.com/wyfcoding/storefront/pkg/db"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储，支持通过 context 传递的事务
func NewUserRepository(gdb *gorm.DB) domain.UserRepository {
	return &userRepository{db: gdb}
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	m := toUserModel(user)
	if err := db.Conn(ctx, r.db).Save(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return err
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m UserModel
	err := db.Conn(ctx, r.db).Where("email = ?", email).First(&m).Error
	return r.found(&m, err)
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var m UserModel
	err := db.Conn(ctx, r.db).First(&m, id).Error
	return r.found(&m, err)
}

func (r *userRepository) found(m *UserModel, err error) (*domain.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return toUser(m), nil
}
