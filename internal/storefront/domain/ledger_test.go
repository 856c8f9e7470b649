package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceTable(prices map[ProductID]int64) PriceLookup {
	return func(id ProductID) (int64, bool) {
		p, ok := prices[id]
		return p, ok
	}
}

func TestLedgerAddThenRemoveRestoresEmpty(t *testing.T) {
	l := NewLedger()
	l.Add("x")
	assert.True(t, l.Remove("x"))
	assert.True(t, l.IsEmpty())
	assert.Equal(t, 0, l.ItemCount())
	assert.False(t, l.Remove("x"))
}

func TestLedgerAddSameProductIncrements(t *testing.T) {
	prices := priceTable(map[ProductID]int64{"p1": 79})
	l := NewLedger()

	l.Add("p1")
	assert.Equal(t, int64(79), l.Subtotal(prices))
	assert.Equal(t, 1, l.ItemCount())

	assert.Equal(t, 2, l.Add("p1"))
	assert.Equal(t, 2, l.Quantity("p1"))
	assert.Equal(t, int64(158), l.Subtotal(prices))
	assert.Equal(t, 1, l.Len())
}

func TestLedgerSubtotalAdditive(t *testing.T) {
	prices := priceTable(map[ProductID]int64{"a": 79, "b": 349, "c": 139})
	l := NewLedger(CartEntry{ProductID: "a", Quantity: 2}, CartEntry{ProductID: "b", Quantity: 1})
	before := l.Subtotal(prices)

	extended := NewLedger(append(l.Entries(), CartEntry{ProductID: "c", Quantity: 3})...)

	assert.Equal(t, before+139*3, extended.Subtotal(prices))
}

func TestLedgerSubtotalFallsBackToUnitPrice(t *testing.T) {
	l := NewLedger(CartEntry{ProductID: "gone", Quantity: 2, UnitPrice: 50})
	assert.Equal(t, int64(100), l.Subtotal(priceTable(nil)))
	assert.Equal(t, int64(100), l.Subtotal(nil))
}

func TestNewLedgerNormalizesEntries(t *testing.T) {
	l := NewLedger(
		CartEntry{ProductID: "a", Quantity: 1},
		CartEntry{ProductID: "b", Quantity: 0},
		CartEntry{ProductID: "a", Quantity: 2},
	)
	require.Equal(t, 1, l.Len())
	assert.Equal(t, 3, l.Quantity("a"))
	assert.Equal(t, 0, l.Quantity("b"))
}

func TestLedgerRemoveKeepsIndexConsistent(t *testing.T) {
	l := NewLedger()
	l.Add("a")
	l.Add("b")
	l.Add("c")
	l.Remove("a")

	assert.Equal(t, 2, l.Add("c"))
	entries := l.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, ProductID("b"), entries[0].ProductID)
	assert.Equal(t, ProductID("c"), entries[1].ProductID)
}

func TestLedgerCloneIsIndependent(t *testing.T) {
	l := NewLedger()
	l.Add("a")
	c := l.Clone()
	c.Add("a")
	c.Add("b")

	assert.Equal(t, 1, l.ItemCount())
	assert.Equal(t, 3, c.ItemCount())
}

func TestNewLedgerDropsEntriesWithoutProduct(t *testing.T) {
	l := NewLedger(CartEntry{Quantity: 2}, CartEntry{ProductID: "p1", Quantity: 1})

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 1, l.ItemCount())
}
