package application

import (
	"context"
	"errors"
	"time"

	"github.com/wyfcoding/storefront/internal/auth/domain"
	"github.com/wyfcoding/storefront/pkg/logging"
	"github.com/wyfcoding/storefront/pkg/metrics"
)

// RegisterCommand 注册命令
type RegisterCommand struct {
	Name     string
	Email    string
	Password string
}

// LoginCommand 登录命令
type LoginCommand struct {
	Email    string
	Password string
}

// AuthCommandService 认证命令服务
type AuthCommandService struct {
	users     domain.UserRepository
	carts     domain.CartProvisioner
	tokens    domain.TokenIssuer
	tx        domain.Transactor
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
}

// NewAuthCommandService 创建认证命令服务实例
func NewAuthCommandService(
	users domain.UserRepository,
	carts domain.CartProvisioner,
	tokens domain.TokenIssuer,
	tx domain.Transactor,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) *AuthCommandService {
	return &AuthCommandService{
		users:     users,
		carts:     carts,
		tokens:    tokens,
		tx:        tx,
		publisher: publisher,
		metrics:   m,
	}
}

// Register 注册用户，并在同一事务中为其创建购物车
func (s *AuthCommandService) Register(ctx context.Context, cmd RegisterCommand) (*domain.User, error) {
	user, err := domain.NewUser(cmd.Name, cmd.Email, cmd.Password)
	if err != nil {
		return nil, err
	}

	_, err = s.users.GetByEmail(ctx, user.Email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.users.Save(ctx, user); err != nil {
			return err
		}
		return s.carts.CreateCart(ctx, user.ID)
	})
	if err != nil {
		return nil, err
	}

	// 发布注册事件
	event := domain.UserRegisteredEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicUserRegistered, user.Email, event)

	logging.Info(ctx, "User registered", "user_id", user.ID)
	return user, nil
}

// Login 校验凭证并签发访问令牌
func (s *AuthCommandService) Login(ctx context.Context, cmd LoginCommand) (string, error) {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(cmd.Email))
	if errors.Is(err, domain.ErrUserNotFound) {
		s.metrics.RecordLogin("failure")
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !user.CheckPassword(cmd.Password) {
		s.metrics.RecordLogin("failure")
		logging.Warn(ctx, "Login failed", "user_id", user.ID)
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}
	s.metrics.RecordLogin("success")

	// 发布登录事件
	event := domain.UserLoggedInEvent{
		UserID:    user.ID,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicUserLoggedIn, user.Email, event)

	return token, nil
}
