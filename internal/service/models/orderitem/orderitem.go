package orderitem

// OrderItem represents an item within an order.
//
// PriceAtTimeOfOrder is copied from the product catalog when the order is
// created and is never recomputed afterwards, so historical orders keep the
// price they were sold at. Prices are integers in minor currency units.
type OrderItem struct {
	ID                 int64 `json:"id"`
	OrderID            int64 `json:"orderId"`
	ProductID          int64 `json:"productId"`
	Quantity           int   `json:"quantity"`
	PriceAtTimeOfOrder int64 `json:"priceAtTimeOfOrder"`
}

// NewItem is the caller-supplied part of an order item.
type NewItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
