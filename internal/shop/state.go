// Package shop holds the seller's inventory and order book for a session.
// Orders do not copy stock status; the order detail view reads it live from
// inventory so a stock toggle is visible immediately.
package shop

import (
	"sync"

	"github.com/bazaarly/sellerconsole/internal/domain"
	"github.com/bazaarly/sellerconsole/pkg/apperr"
)

// OrderDetail is an order joined with its live inventory view.
type OrderDetail struct {
	Order    domain.Order           `json:"order"`
	InStock  bool                   `json:"in_stock"`
	Shipment []domain.ShipmentStage `json:"shipment"`
}

// State is the per-session shop: inventory rows, orders and the currently
// opened order detail. Safe for concurrent use.
type State struct {
	mu        sync.RWMutex
	inventory []domain.InventoryItem
	orders    []domain.Order
	openOrder string
}

// NewState creates a shop seeded with the demo inventory and order book.
func NewState() *State {
	return &State{
		inventory: domain.SeedInventory(),
		orders:    domain.SeedOrders(),
	}
}

// Inventory returns the inventory rows in catalog order.
func (s *State) Inventory() []domain.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.InventoryItem, len(s.inventory))
	copy(out, s.inventory)
	return out
}

// ToggleStock flips the stock flag for every inventory row with the given
// product name. Unknown names are an error.
func (s *State) ToggleStock(productName string) ([]domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.inventory {
		if s.inventory[i].ProductName == productName {
			s.inventory[i].InStock = !s.inventory[i].InStock
			found = true
		}
	}
	if !found {
		return nil, apperr.NotFound("inventory item", productName)
	}

	out := make([]domain.InventoryItem, len(s.inventory))
	copy(out, s.inventory)
	return out, nil
}

// Summary aggregates sales, returns and the average rating across inventory.
func (s *State) Summary() domain.PerformanceSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum domain.PerformanceSummary
	if len(s.inventory) == 0 {
		return sum
	}

	var ratingTotal float64
	for _, item := range s.inventory {
		sum.TotalSales += item.Sales
		sum.TotalReturns += item.Returns
		ratingTotal += item.Rating
	}
	sum.AverageRating = ratingTotal / float64(len(s.inventory))
	return sum
}

// FilterOrders returns orders for the given product name in book order. An
// empty filter returns everything. Filtering never mutates the book.
func (s *State) FilterOrders(productName string) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if productName == "" || o.ProductName == productName {
			out = append(out, o)
		}
	}
	return out
}

// Order looks up a single order by id.
func (s *State) Order(orderID string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findOrder(orderID)
}

// OpenOrder switches the session into the order detail view and returns the
// detail with stock resolved from inventory at read time.
func (s *State) OpenOrder(orderID string) (*OrderDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.findOrder(orderID)
	if err != nil {
		return nil, err
	}
	s.openOrder = orderID
	return s.detail(order), nil
}

// OpenedOrder returns the detail currently in view, re-resolving stock so a
// toggle that happened after OpenOrder shows through.
func (s *State) OpenedOrder() (*OrderDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.openOrder == "" {
		return nil, apperr.NotFound("open order", "none")
	}
	order, err := s.findOrder(s.openOrder)
	if err != nil {
		return nil, err
	}
	return s.detail(order), nil
}

// Back leaves the order detail view.
func (s *State) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openOrder = ""
}

func (s *State) findOrder(orderID string) (domain.Order, error) {
	for _, o := range s.orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return domain.Order{}, apperr.NotFound("order", orderID)
}

// detail joins the order with the live stock flag. A product missing from
// inventory reads as out of stock.
func (s *State) detail(order domain.Order) *OrderDetail {
	inStock := false
	for _, item := range s.inventory {
		if item.ProductName == order.ProductName {
			inStock = item.InStock
			break
		}
	}
	return &OrderDetail{
		Order:    order,
		InStock:  inStock,
		Shipment: domain.ShipmentLadder(order.Status),
	}
}
