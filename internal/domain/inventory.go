package domain

// InventoryItem is a stock and performance record. It is keyed by product
// name, not a generated id: two products sharing a name are
// indistinguishable. That keying is part of the observable contract.
type InventoryItem struct {
	ProductName   string  `json:"product_name"`
	Sales         int     `json:"sales"`
	Reviews       int     `json:"reviews"`
	Rating        float64 `json:"rating"`
	Returns       int     `json:"returns"`
	Cancellations int     `json:"cancellations"`
	InStock       bool    `json:"in_stock"`
}

// PerformanceSummary aggregates inventory performance for the analytics tiles.
type PerformanceSummary struct {
	TotalSales    int     `json:"total_sales"`
	TotalReturns  int     `json:"total_returns"`
	AverageRating float64 `json:"average_rating"`
}

// SeedInventory returns the session's starting catalog.
func SeedInventory() []InventoryItem {
	return []InventoryItem{
		{ProductName: "Blue Ceramic Mug", Sales: 124, Reviews: 45, Rating: 4.8, Returns: 2, Cancellations: 1, InStock: true},
		{ProductName: "Handmade Soap", Sales: 89, Reviews: 20, Rating: 4.5, Returns: 0, Cancellations: 3, InStock: true},
		{ProductName: "Silk Scarf", Sales: 45, Reviews: 12, Rating: 4.2, Returns: 5, Cancellations: 2, InStock: false},
	}
}
