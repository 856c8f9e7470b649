package domain

import "context"

// SessionMode 同步模式
type SessionMode string

const (
	// ModeGuest 未登录，状态保存在本地键值存储
	ModeGuest SessionMode = "guest"
	// ModeAuthenticated 已登录，状态以远端为准
	ModeAuthenticated SessionMode = "authenticated"
)

// 本地键值存储中使用的键
const (
	KeyCart      = "cart"
	KeyWishlist  = "wishlist"
	KeyAuthToken = "authToken"
)

// KeyValueStore 本地持久化键值存储。Get 在键不存在时返回 ErrKeyNotFound。
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// CartStore 购物车与心愿单的同步策略。
// 变更类方法接收当前状态并返回新状态，调用方仅在返回 nil error 时替换内存状态。
type CartStore interface {
	Mode() SessionMode
	Load(ctx context.Context) (*Ledger, *Wishlist, error)
	AddToCart(ctx context.Context, cart *Ledger, id ProductID) (*Ledger, error)
	RemoveFromCart(ctx context.Context, cart *Ledger, id ProductID) (*Ledger, error)
	ToggleWishlist(ctx context.Context, wishlist *Wishlist, id ProductID) (*Wishlist, error)
	PlaceOrder(ctx context.Context, cart *Ledger) (*Ledger, *OrderConfirmation, error)
}
