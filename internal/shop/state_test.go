package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarly/sellerconsole/pkg/apperr"
)

// ============================================================================
// Inventory
// ============================================================================

func TestToggleStock_FlipsFlag(t *testing.T) {
	s := NewState()

	items, err := s.ToggleStock("Blue Ceramic Mug")
	require.NoError(t, err)

	for _, item := range items {
		if item.ProductName == "Blue Ceramic Mug" {
			assert.False(t, item.InStock)
			return
		}
	}
	t.Fatal("Blue Ceramic Mug not found in inventory")
}

func TestToggleStock_IsItsOwnInverse(t *testing.T) {
	s := NewState()
	before := s.Inventory()

	_, err := s.ToggleStock("Silk Scarf")
	require.NoError(t, err)
	after, err := s.ToggleStock("Silk Scarf")
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestToggleStock_UnknownProduct(t *testing.T) {
	s := NewState()

	_, err := s.ToggleStock("Wooden Bowl")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSummary_AggregatesSeedInventory(t *testing.T) {
	s := NewState()

	sum := s.Summary()

	// Seed rows: 124+89+45 sales, 2+0+5 returns, (4.8+4.5+4.2)/3 rating.
	assert.Equal(t, 258, sum.TotalSales)
	assert.Equal(t, 7, sum.TotalReturns)
	assert.InDelta(t, 4.5, sum.AverageRating, 0.001)
}

// ============================================================================
// Orders
// ============================================================================

func TestFilterOrders_EmptyFilterReturnsAll(t *testing.T) {
	s := NewState()

	got := s.FilterOrders("")

	require.Len(t, got, 3)
	assert.Equal(t, "ORD001", got[0].ID)
	assert.Equal(t, "ORD003", got[2].ID)
}

func TestFilterOrders_ByProductName(t *testing.T) {
	s := NewState()

	got := s.FilterOrders("Silk Scarf")

	require.Len(t, got, 1)
	assert.Equal(t, "ORD002", got[0].ID)
	assert.Equal(t, "Processing", got[0].Status)
}

func TestFilterOrders_NoMatchAndNonMutating(t *testing.T) {
	s := NewState()

	assert.Empty(t, s.FilterOrders("Wool Hat"))
	assert.Len(t, s.FilterOrders(""), 3, "filtering must not shrink the book")
}

func TestOrder_Lookup(t *testing.T) {
	s := NewState()

	o, err := s.Order("ORD001")
	require.NoError(t, err)
	assert.Equal(t, "Blue Ceramic Mug", o.ProductName)

	_, err = s.Order("ORD999")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

// ============================================================================
// Order detail and live stock
// ============================================================================

func TestOpenOrder_ResolvesStockFromInventory(t *testing.T) {
	s := NewState()

	detail, err := s.OpenOrder("ORD002")
	require.NoError(t, err)

	assert.Equal(t, "Silk Scarf", detail.Order.ProductName)
	assert.False(t, detail.InStock, "Silk Scarf is seeded out of stock")
}

func TestOpenedOrder_SeesStockToggleImmediately(t *testing.T) {
	s := NewState()

	_, err := s.OpenOrder("ORD002")
	require.NoError(t, err)

	_, err = s.ToggleStock("Silk Scarf")
	require.NoError(t, err)

	detail, err := s.OpenedOrder()
	require.NoError(t, err)
	assert.True(t, detail.InStock, "detail reads stock live, not at open time")
}

func TestOpenOrder_ShipmentLadderMatchesStatus(t *testing.T) {
	s := NewState()

	detail, err := s.OpenOrder("ORD001")
	require.NoError(t, err)

	// Shipped reaches the courier stage but not out-for-delivery.
	require.Len(t, detail.Shipment, 4)
	assert.True(t, detail.Shipment[2].Active)
	assert.False(t, detail.Shipment[3].Active)
}

func TestBack_LeavesDetailView(t *testing.T) {
	s := NewState()
	_, err := s.OpenOrder("ORD003")
	require.NoError(t, err)

	s.Back()

	_, err = s.OpenedOrder()
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOpenOrder_UnknownOrderKeepsViewClosed(t *testing.T) {
	s := NewState()

	_, err := s.OpenOrder("ORD999")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.OpenedOrder()
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestInventory_ReturnsCopy(t *testing.T) {
	s := NewState()

	items := s.Inventory()
	items[0].Sales = 9999

	fresh := s.Inventory()
	assert.NotEqual(t, 9999, fresh[0].Sales)
}
