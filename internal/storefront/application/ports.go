package application

import (
	"context"

	"github.com/wyfcoding/storefront/internal/storefront/domain"
)

// CatalogAPI 远端目录接口
type CatalogAPI interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Products(ctx context.Context, categoryID, search string) ([]domain.Product, error)
	Product(ctx context.Context, id domain.ProductID) (domain.Product, error)
	Reviews(ctx context.Context, id domain.ProductID) ([]domain.Review, error)
}

// CartAPI 远端购物车、心愿单与下单接口
type CartAPI interface {
	Cart(ctx context.Context) ([]domain.CartEntry, error)
	AddToCart(ctx context.Context, id domain.ProductID, quantity int) error
	RemoveCartItem(ctx context.Context, entryID string) error
	Wishlist(ctx context.Context) ([]domain.WishlistEntry, error)
	AddToWishlist(ctx context.Context, id domain.ProductID) error
	RemoveFromWishlist(ctx context.Context, id domain.ProductID) error
	PlaceOrder(ctx context.Context) (*domain.OrderConfirmation, error)
}

// AuthAPI 登录注册接口；SetToken 设置后续请求携带的令牌
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, name, email, password string) error
	SetToken(token string)
}

// RemoteAPI 后端完整接口
type RemoteAPI interface {
	CatalogAPI
	CartAPI
	AuthAPI
}
