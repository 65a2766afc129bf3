package domain

// Order status constants.
const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusReturned   = "Returned"
)

// ValidOrderStatuses returns the set of valid order statuses.
func ValidOrderStatuses() []string {
	return []string{OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusReturned}
}

// IsValidOrderStatus checks whether the given status is a valid order status.
func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// Order references an InventoryItem by product name. The relation is a
// lookup, never an ownership edge.
type Order struct {
	ID           string `json:"id"`
	ProductName  string `json:"product_name"`
	Quantity     int    `json:"quantity"`
	BuyerAddress string `json:"buyer_address"`
	Platform     string `json:"platform"`
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
}

// Shipment ladder stage names, in progression order.
const (
	StageConfirmed      = "Confirmed"
	StagePacked         = "Packed"
	StageCourier        = "Courier"
	StageOutForDelivery = "Out for Delivery"
)

// ShipmentStage is one rung of the derived shipment progress ladder.
type ShipmentStage struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// ShipmentLadder derives the 4-stage progress ladder from an order status.
// The ladder is monotonic: a later-stage status implies all earlier stages
// are active, and there is no regression.
//
//	Processing          -> Confirmed
//	Shipped             -> Confirmed, Packed, Courier
//	Delivered, Returned -> all four
func ShipmentLadder(status string) []ShipmentStage {
	var reached int
	switch status {
	case OrderStatusProcessing:
		reached = 1
	case OrderStatusShipped:
		reached = 3
	case OrderStatusDelivered, OrderStatusReturned:
		reached = 4
	default:
		reached = 0
	}

	names := []string{StageConfirmed, StagePacked, StageCourier, StageOutForDelivery}
	ladder := make([]ShipmentStage, len(names))
	for i, name := range names {
		ladder[i] = ShipmentStage{Name: name, Active: i < reached}
	}
	return ladder
}

// SeedOrders returns the session's starting order book, in insertion order.
func SeedOrders() []Order {
	return []Order{
		{ID: "ORD001", ProductName: "Blue Ceramic Mug", Quantity: 2, BuyerAddress: "123 Tech Lane, Bangalore, KA", Platform: "Amazon", Status: OrderStatusShipped, Timestamp: "2023-10-27 10:30"},
		{ID: "ORD002", ProductName: "Silk Scarf", Quantity: 1, BuyerAddress: "456 Rose Gdns, Mumbai, MH", Platform: "Myntra", Status: OrderStatusProcessing, Timestamp: "2023-10-27 11:15"},
		{ID: "ORD003", ProductName: "Handmade Soap", Quantity: 5, BuyerAddress: "789 Ocean Dr, Goa", Platform: "Etsy", Status: OrderStatusDelivered, Timestamp: "2023-10-26 14:00"},
	}
}
