// Package application 店面客户端的会话状态与同步策略
package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/wyfcoding/storefront/internal/storefront/domain"
	"github.com/wyfcoding/storefront/pkg/logging"
)

// ErrRemoteUnavailable 离线目录模式下没有后端可用
var ErrRemoteUnavailable = errors.New("remote api is not configured")

// Listener 每次状态变更后收到最新快照
type Listener func(Snapshot)

// SessionDeps 会话依赖
type SessionDeps struct {
	Catalog CatalogSource
	// KV 保存游客购物车、心愿单与登录令牌
	KV domain.KeyValueStore
	// API 为 nil 时只能以游客身份使用
	API RemoteAPI
}

// Session 单个用户会话：目录、购物车、心愿单、当前类目与搜索词
type Session struct {
	mu sync.Mutex

	catalogSource CatalogSource
	kv            domain.KeyValueStore
	api           RemoteAPI
	store         domain.CartStore

	catalog  *domain.Catalog
	known    map[domain.ProductID]domain.Product
	cart     *domain.Ledger
	wishlist *domain.Wishlist
	category string
	search   string

	listenerSeq int
	listeners   map[int]Listener
}

// NewSession 创建会话，需调用 Start 加载数据
func NewSession(deps SessionDeps) *Session {
	return &Session{
		catalogSource: deps.Catalog,
		kv:            deps.KV,
		api:           deps.API,
		store:         NewGuestStore(deps.KV),
		catalog:       domain.NewCatalog(nil, nil),
		known:         make(map[domain.ProductID]domain.Product),
		cart:          domain.NewLedger(),
		wishlist:      domain.NewWishlist(),
		category:      domain.AllCategories,
		listeners:     make(map[int]Listener),
	}
}

// Start 根据本地是否有令牌选择同步策略，然后加载目录与购物车、心愿单。
// 出错时会话仍可使用，已加载的部分保留。
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	token := s.readToken(ctx)
	if token != "" && s.api != nil {
		s.api.SetToken(token)
		s.store = NewRemoteStore(s.api)
		s.cart = domain.NewLedger()
		s.wishlist = domain.NewWishlist()
	} else {
		s.store = NewGuestStore(s.kv)
	}
	logging.Info(ctx, "session starting", "mode", s.store.Mode())

	var errs []error
	if err := s.reloadCatalogLocked(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.reloadUserDataLocked(ctx); err != nil {
		errs = append(errs, err)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return errors.Join(errs...)
}

// Mode 当前同步模式
func (s *Session) Mode() domain.SessionMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Mode()
}

// Subscribe 注册监听器，返回取消函数
func (s *Session) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.listenerSeq
	s.listenerSeq++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Snapshot 当前状态的不可变快照
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SelectCategory 切换类目；name 为 domain.AllCategories 或已知类目名
func (s *Session) SelectCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.AllCategories
	}
	return s.mutate(ctx, func(ctx context.Context) error {
		if name != domain.AllCategories {
			if _, ok := s.catalog.CategoryByName(name); !ok {
				return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, name)
			}
		}
		prev := s.category
		s.category = name
		if err := s.reloadCatalogLocked(ctx); err != nil {
			s.category = prev
			return err
		}
		return nil
	})
}

// Search 设置搜索词并刷新目录
func (s *Session) Search(ctx context.Context, term string) error {
	return s.mutate(ctx, func(ctx context.Context) error {
		prev := s.search
		s.search = term
		if err := s.reloadCatalogLocked(ctx); err != nil {
			s.search = prev
			return err
		}
		return nil
	})
}

// AddToCart 加入购物车，已有条目数量加 1
func (s *Session) AddToCart(ctx context.Context, id domain.ProductID) error {
	return s.mutate(ctx, func(ctx context.Context) error {
		if _, ok := s.known[id]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		next, err := s.store.AddToCart(ctx, s.cart, id)
		if err != nil {
			return err
		}
		s.cart = next
		logging.Debug(ctx, "added to cart", "product_id", id, "quantity", next.Quantity(id))
		return nil
	})
}

// RemoveFromCart 从购物车删除商品，不存在时为空操作
func (s *Session) RemoveFromCart(ctx context.Context, id domain.ProductID) error {
	return s.mutate(ctx, func(ctx context.Context) error {
		next, err := s.store.RemoveFromCart(ctx, s.cart, id)
		if err != nil {
			return err
		}
		s.cart = next
		return nil
	})
}

// ToggleWishlist 切换心愿单状态，返回切换后是否在心愿单中
func (s *Session) ToggleWishlist(ctx context.Context, id domain.ProductID) (bool, error) {
	var added bool
	err := s.mutate(ctx, func(ctx context.Context) error {
		if !s.wishlist.Contains(id) {
			if _, ok := s.known[id]; !ok {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
			}
		}
		next, err := s.store.ToggleWishlist(ctx, s.wishlist, id)
		if err != nil {
			return err
		}
		s.wishlist = next
		added = next.Contains(id)
		return nil
	})
	return added, err
}

// Checkout 当前购物车的结算汇总
func (s *Session) Checkout() domain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Summarize(s.cart.Subtotal(s.priceOf))
}

// PlaceOrder 下单；空购物车返回 domain.ErrEmptyCart
func (s *Session) PlaceOrder(ctx context.Context) (*domain.OrderConfirmation, error) {
	var conf *domain.OrderConfirmation
	err := s.mutate(ctx, func(ctx context.Context) error {
		if s.cart.IsEmpty() {
			return domain.ErrEmptyCart
		}
		next, c, err := s.store.PlaceOrder(ctx, s.cart)
		if err != nil {
			return err
		}
		s.cart = next
		conf = c
		logging.Info(ctx, "order placed", "order_id", c.OrderID, "guest", c.Guest)
		return nil
	})
	return conf, err
}

// Product 商品详情，优先使用已加载的目录
func (s *Session) Product(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	s.mu.Lock()
	p, ok := s.known[id]
	src := s.catalogSource
	s.mu.Unlock()
	if ok {
		return p, nil
	}
	return src.Product(ctx, id)
}

// Reviews 商品评价
func (s *Session) Reviews(ctx context.Context, id domain.ProductID) ([]domain.Review, error) {
	return s.catalogSource.Reviews(ctx, id)
}

// Login 登录成功后保存令牌并切换到远端模式
func (s *Session) Login(ctx context.Context, email, password string) error {
	if s.api == nil {
		return ErrRemoteUnavailable
	}
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(ctx context.Context) error {
		if err := s.kv.Set(ctx, domain.KeyAuthToken, []byte(token)); err != nil {
			logging.Warn(ctx, "failed to persist auth token", "error", err)
		}
		s.api.SetToken(token)
		s.store = NewRemoteStore(s.api)
		s.cart = domain.NewLedger()
		s.wishlist = domain.NewWishlist()
		logging.Info(ctx, "logged in", "email", email)
		return s.reloadUserDataLocked(ctx)
	})
}

// Register 注册，不会自动登录
func (s *Session) Register(ctx context.Context, name, email, password string) error {
	if s.api == nil {
		return ErrRemoteUnavailable
	}
	return s.api.Register(ctx, name, email, password)
}

// Logout 丢弃令牌与内存中的远端缓存，不修改远端数据，随后回到游客模式
func (s *Session) Logout(ctx context.Context) error {
	return s.mutate(ctx, func(ctx context.Context) error {
		if err := s.kv.Delete(ctx, domain.KeyAuthToken); err != nil {
			logging.Warn(ctx, "failed to delete auth token", "error", err)
		}
		if s.api != nil {
			s.api.SetToken("")
		}
		s.cart = domain.NewLedger()
		s.wishlist = domain.NewWishlist()
		s.store = NewGuestStore(s.kv)
		return s.reloadUserDataLocked(ctx)
	})
}

// mutate 在锁内执行变更，成功后通知监听器
func (s *Session) mutate(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	if err := fn(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

func (s *Session) notify(snap Snapshot) {
	s.mu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func (s *Session) reloadCatalogLocked(ctx context.Context) error {
	catalog, err := s.catalogSource.Load(ctx, CatalogQuery{Category: s.category, Search: s.search})
	if err != nil {
		return err
	}
	s.catalog = catalog
	for _, p := range catalog.Products() {
		s.known[p.ID] = p
	}
	return nil
}

func (s *Session) reloadUserDataLocked(ctx context.Context) error {
	cart, wishlist, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.cart = cart
	s.wishlist = wishlist
	return nil
}

func (s *Session) readToken(ctx context.Context) string {
	raw, err := s.kv.Get(ctx, domain.KeyAuthToken)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			logging.Warn(ctx, "failed to read auth token", "error", err)
		}
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func (s *Session) priceOf(id domain.ProductID) (int64, bool) {
	p, ok := s.known[id]
	if !ok {
		return 0, false
	}
	return p.Price, true
}
