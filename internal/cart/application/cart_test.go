package application

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/cart/domain"
)

// memRepo 内存仓储，AddItem 与 Create 的并发语义与唯一索引一致
type memRepo struct {
	mu     sync.Mutex
	carts  map[uint]*domain.Cart
	nextID uint
	// missOnce 首次读取时假装购物车不存在，模拟并发创建
	missOnce bool
}

func newMemRepo() *memRepo { return &memRepo{carts: map[uint]*domain.Cart{}} }

func (r *memRepo) id() uint { r.nextID++; return r.nextID }

func (r *memRepo) GetByUserID(_ context.Context, userID uint) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[userID]
	if !ok || r.missOnce {
		r.missOnce = false
		return nil, domain.ErrCartNotFound
	}
	cp := &domain.Cart{ID: c.ID, UserID: c.UserID}
	for _, it := range c.Items {
		item := *it
		cp.Items = append(cp.Items, &item)
	}
	return cp, nil
}

func (r *memRepo) Create(_ context.Context, c *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[c.UserID]; ok {
		return domain.ErrCartExists
	}
	c.ID = r.id()
	r.carts[c.UserID] = &domain.Cart{ID: c.ID, UserID: c.UserID}
	return nil
}

func (r *memRepo) owner(cartID uint) *domain.Cart {
	for _, c := range r.carts {
		if c.ID == cartID {
			return c
		}
	}
	return nil
}

func (r *memRepo) AddItem(_ context.Context, item *domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.owner(item.CartID)
	for _, it := range c.Items {
		if it.ProductID == item.ProductID {
			it.Quantity += item.Quantity
			item.ID, item.Quantity = it.ID, it.Quantity
			return nil
		}
	}
	item.ID = r.id()
	cp := *item
	c.Items = append(c.Items, &cp)
	return nil
}

func (r *memRepo) DeleteItem(_ context.Context, item *domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.owner(item.CartID)
	_, err := c.RemoveItem(item.ID)
	return err
}

func (r *memRepo) Lines(_ context.Context, cartID uint) ([]*domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var lines []*domain.CartLine
	for _, it := range r.owner(cartID).Items {
		lines = append(lines, &domain.CartLine{ItemID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity, Price: decimal.NewFromInt(79)})
	}
	return lines, nil
}

type knownProducts map[uint]bool

func (k knownProducts) ProductExists(_ context.Context, id uint) (bool, error) { return k[id], nil }

type topics []string

func (t *topics) Publish(_ context.Context, topic, _ string, _ any) error {
	*t = append(*t, topic)
	return nil
}

type countingPublisher struct {
	mu sync.Mutex
	n  int
}

func (p *countingPublisher) Publish(context.Context, string, string, any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.n++
	return nil
}

func TestAddItemCreatesCartAndIncrements(t *testing.T) {
	repo := newMemRepo()
	pub := &topics{}
	svc := NewCartCommandService(repo, knownProducts{1: true}, pub, nil)
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, AddItemCommand{UserID: 9, ProductID: 1, Quantity: 1}))
	require.NoError(t, svc.AddItem(ctx, AddItemCommand{UserID: 9, ProductID: 1, Quantity: 2}))

	lines, err := NewCartQueryService(repo).GetCart(ctx, 9)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "237", domain.Subtotal(lines).String())
	assert.Equal(t, []string{domain.TopicCartCreated, domain.TopicCartItemAdded, domain.TopicCartItemAdded}, []string(*pub))
}

func TestAddItemRejectsUnknownProductAndBadQuantity(t *testing.T) {
	svc := NewCartCommandService(newMemRepo(), knownProducts{1: true}, &topics{}, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.AddItem(ctx, AddItemCommand{UserID: 9, ProductID: 2, Quantity: 1}), domain.ErrProductNotFound)
	assert.ErrorIs(t, svc.AddItem(ctx, AddItemCommand{UserID: 9, ProductID: 1, Quantity: 0}), domain.ErrInvalidQuantity)
}

func TestRemoveItemIsScopedToOwner(t *testing.T) {
	repo := newMemRepo()
	svc := NewCartCommandService(repo, knownProducts{1: true}, &topics{}, nil)
	ctx := context.Background()
	require.NoError(t, svc.AddItem(ctx, AddItemCommand{UserID: 9, ProductID: 1, Quantity: 1}))
	itemID := repo.carts[9].Items[0].ID

	assert.ErrorIs(t, svc.RemoveItem(ctx, RemoveItemCommand{UserID: 10, ItemID: itemID}), domain.ErrItemNotFound)
	require.NoError(t, svc.CreateCart(ctx, 10))
	assert.ErrorIs(t, svc.RemoveItem(ctx, RemoveItemCommand{UserID: 10, ItemID: itemID}), domain.ErrItemNotFound)

	require.NoError(t, svc.RemoveItem(ctx, RemoveItemCommand{UserID: 9, ItemID: itemID}))
	assert.ErrorIs(t, svc.RemoveItem(ctx, RemoveItemCommand{UserID: 9, ItemID: itemID}), domain.ErrItemNotFound)
}

func TestGetCartWithoutCartIsEmpty(t *testing.T) {
	lines, err := NewCartQueryService(newMemRepo()).GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.NotNil(t, lines)
}

func TestCreateCartIsIdempotent(t *testing.T) {
	repo := newMemRepo()
	svc := NewCartCommandService(repo, knownProducts{}, &topics{}, nil)
	require.NoError(t, svc.CreateCart(context.Background(), 3))
	first := repo.carts[3].ID
	require.NoError(t, svc.CreateCart(context.Background(), 3))
	assert.Equal(t, first, repo.carts[3].ID)
}

func TestConcurrentAddItemKeepsOneRowAndEveryIncrement(t *testing.T) {
	repo := newMemRepo()
	svc := NewCartCommandService(repo, knownProducts{1: true}, &countingPublisher{}, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.AddItem(ctx, AddItemCommand{UserID: 9, ProductID: 1, Quantity: 1}))
		}()
	}
	wg.Wait()

	lines, err := NewCartQueryService(repo).GetCart(ctx, 9)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 20, lines[0].Quantity)
	assert.Len(t, repo.carts, 1)
}

func TestCartCreatedConcurrentlyIsReused(t *testing.T) {
	repo := newMemRepo()
	svc := NewCartCommandService(repo, knownProducts{1: true}, &topics{}, nil)
	ctx := context.Background()
	require.NoError(t, svc.CreateCart(ctx, 9))
	first := repo.carts[9].ID

	repo.missOnce = true
	require.NoError(t, svc.AddItem(ctx, AddItemCommand{UserID: 9, ProductID: 1, Quantity: 1}))

	assert.Equal(t, first, repo.carts[9].ID)
	require.Len(t, repo.carts[9].Items, 1)
	assert.Equal(t, 1, repo.carts[9].Items[0].Quantity)
}
