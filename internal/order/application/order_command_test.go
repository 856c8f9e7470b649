package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/metrics"
)

// store 模拟购物车、库存与订单三张表
type store struct {
	lines   []*domain.CheckoutLine
	stock   map[uint]int
	orders  []*domain.Order
	saveErr error
	// stockRace 模拟结算读取后被并发扣减的库存
	stockRace map[uint]int
}

func (s *store) LoadCart(_ context.Context, _ uint) (uint, []*domain.CheckoutLine, error) {
	var out []*domain.CheckoutLine
	for _, l := range s.lines {
		cp := *l
		cp.Stock = s.stock[l.ProductID]
		out = append(out, &cp)
	}
	for id, n := range s.stockRace {
		s.stock[id] = n
	}
	return 1, out, nil
}

func (s *store) DecrementStock(_ context.Context, productID uint, qty int) error {
	if s.stock[productID] < qty {
		return domain.ErrStockConflict
	}
	s.stock[productID] -= qty
	return nil
}

func (s *store) ClearCart(context.Context, uint) error {
	s.lines = nil
	return nil
}

func (s *store) Save(_ context.Context, o *domain.Order) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	o.ID = uint(len(s.orders) + 100)
	s.orders = append(s.orders, o)
	return nil
}

type snapshot struct {
	lines []*domain.CheckoutLine
	stock map[uint]int
}

// rollbackTx 出错时恢复 store，模拟事务回滚
type rollbackTx struct{ s *store }

func (t rollbackTx) WithTx(ctx context.Context, fn func(context.Context) error) error {
	snap := snapshot{lines: append([]*domain.CheckoutLine(nil), t.s.lines...), stock: map[uint]int{}}
	for k, v := range t.s.stock {
		snap.stock[k] = v
	}
	if err := fn(ctx); err != nil {
		t.s.lines, t.s.stock = snap.lines, snap.stock
		return err
	}
	return nil
}

type topics []string

func (t *topics) Publish(_ context.Context, topic, _ string, _ any) error {
	*t = append(*t, topic)
	return nil
}

func newService(s *store) (*OrderCommandService, *topics) {
	pub := &topics{}
	return NewOrderCommandService(s, s, rollbackTx{s}, pub, metrics.New("order-test")), pub
}

func sampleStore() *store {
	return &store{
		lines: []*domain.CheckoutLine{
			{CartItemID: 1, ProductID: 1, Name: "Kawaii Cat Pen", Quantity: 2, Price: decimal.RequireFromString("79.00")},
			{CartItemID: 2, ProductID: 3, Name: "Lavender Hand Cream", Quantity: 1, Price: decimal.RequireFromString("139.00")},
		},
		stock: map[uint]int{1: 100, 3: 1},
	}
}

func TestPlaceOrder(t *testing.T) {
	s := sampleStore()
	svc, pub := newService(s)

	order, err := svc.PlaceOrder(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint(100), order.ID)
	assert.Equal(t, "297", order.TotalAmount.String())
	assert.Equal(t, map[uint]int{1: 98, 3: 0}, s.stock)
	assert.Empty(t, s.lines)
	assert.Equal(t, []string{domain.TopicOrderPlaced}, []string(*pub))
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, pub := newService(&store{stock: map[uint]int{}})
	_, err := svc.PlaceOrder(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, *pub)
}

func TestPlaceOrderInsufficientStockChangesNothing(t *testing.T) {
	s := sampleStore()
	s.stock[3] = 0
	svc, _ := newService(s)

	_, err := svc.PlaceOrder(context.Background(), 7)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Lavender Hand Cream", stockErr.ProductName)
	assert.Equal(t, 100, s.stock[1])
	assert.Len(t, s.lines, 2)
}

func TestPlaceOrderConcurrentStockDrainRollsBack(t *testing.T) {
	s := sampleStore()
	s.stockRace = map[uint]int{3: 0}
	svc, _ := newService(s)

	_, err := svc.PlaceOrder(context.Background(), 7)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 100, s.stock[1])
	assert.Len(t, s.lines, 2)
}

func TestPlaceOrderSaveFailureRollsBack(t *testing.T) {
	s := sampleStore()
	s.saveErr = errors.New("disk full")
	svc, pub := newService(s)

	_, err := svc.PlaceOrder(context.Background(), 7)
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, map[uint]int{1: 100, 3: 1}, s.stock)
	assert.Len(t, s.lines, 2)
	assert.Empty(t, *pub)
}
